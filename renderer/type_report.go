package renderer

import (
	"github.com/etnz/mwrr"
)

// Report is the rendering view of an analysis.
type Report struct {
	Input       string           `json:"input,omitempty"`
	RunID       string           `json:"runId"`
	Total       int              `json:"total"`
	Succeeded   int              `json:"succeeded"`
	Contracts   []ContractLine   `json:"contracts"`
	Diagnostics mwrr.Diagnostics `json:"diagnostics"`
}

// ContractLine holds the formatted result of a single contract.
type ContractLine struct {
	Contract      string `json:"contract"`
	Rate          string `json:"rate,omitempty"` // empty if the rate could not be calculated
	Reason        string `json:"reason,omitempty"`
	Start         string `json:"start"`
	StartValue    string `json:"startValue"`
	End           string `json:"end"`
	EndValue      string `json:"endValue"`
	Contributions string `json:"contributions"`
	Distributions string `json:"distributions"`
}

// NewReport prepares an analysis for rendering. input names the statement it was read from.
func NewReport(a *mwrr.Analysis, input string) *Report {
	r := &Report{
		Input:       input,
		RunID:       a.RunID.String(),
		Diagnostics: a.Diagnostics,
	}
	r.Total, r.Succeeded = a.Summary()
	for _, c := range a.Contracts() {
		res := a.Results[c]
		line := ContractLine{
			Contract:      string(c),
			Start:         "-",
			StartValue:    "-",
			End:           "-",
			EndValue:      "-",
			Contributions: res.Contributions.String(),
			Distributions: res.Distributions.String(),
		}
		if rate, ok := res.Return(); ok {
			line.Rate = rate.String()
		} else {
			line.Reason = res.Status.Reason()
		}
		if !res.Start.IsZero() {
			line.Start, line.StartValue = res.Start.String(), res.StartValue.String()
			line.End, line.EndValue = res.End.String(), res.EndValue.String()
		}
		r.Contracts = append(r.Contracts, line)
	}
	return r
}
