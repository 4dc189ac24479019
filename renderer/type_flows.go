package renderer

import (
	"fmt"

	"github.com/etnz/mwrr"
)

// Flows is the rendering view of the cash flows of a contract.
type Flows struct {
	Contract string     `json:"contract"`
	Rate     string     `json:"rate,omitempty"`
	Reason   string     `json:"reason,omitempty"`
	Span     string     `json:"span,omitempty"`
	Outside  int        `json:"outside,omitempty"`
	Lines    []FlowLine `json:"lines"`
	Net      string     `json:"net"`
}

// FlowLine is a single signed cash flow.
type FlowLine struct {
	Date   string `json:"date"`
	Origin string `json:"origin"`
	Amount string `json:"amount"`
}

// NewFlows prepares the cash flows of a contract, and its result, for rendering.
func NewFlows(res mwrr.ContractResult, flows []mwrr.CashFlow) *Flows {
	f := &Flows{Contract: string(res.Contract), Outside: res.Outside}
	if span := res.Span(); !span.IsZero() {
		f.Span = fmt.Sprintf("%s (%d days)", span, span.Days())
	}
	if rate, ok := res.Return(); ok {
		f.Rate = rate.String()
	} else {
		f.Reason = res.Reason
	}
	var net mwrr.Money
	for _, cf := range flows {
		f.Lines = append(f.Lines, FlowLine{
			Date:   cf.On.String(),
			Origin: cf.Origin.String(),
			Amount: cf.Amount.SignedString(),
		})
		net = net.Add(cf.Amount)
	}
	f.Net = net.SignedString()
	return f
}
