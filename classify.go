package mwrr

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/mwrr/date"
	"github.com/etnz/mwrr/fold"
)

// Pattern associates a description fragment with the kind of cash flow it denotes.
type Pattern struct {
	Kind FlowKind
	Text string
}

// DefaultPatterns is the closed table of movement descriptions recognized as
// external cash flows. Matching ignores case and accents.
var DefaultPatterns = []Pattern{
	{Contribution, "DEPOSITO DE EFECTIVO"},
	{Contribution, "DEPOSITO DE EFECTIVO POR TRANSFERENCIA"},
	{Contribution, "Depósito"},
	{Contribution, "Compra en Reporto"},
	{Contribution, "Compra Soc. de Inv.- Cliente"},

	{Distribution, "RETIRO DE EFECTIVO"},
	{Distribution, "Retiro"},
	{Distribution, "Venta Normal"},
	{Distribution, "Venta Soc. de Inv.- Cliente"},
	{Distribution, "Vencimiento de Reporto"},
	{Distribution, "Amortización (cliente)"},
}

// Classifier tags movements as contributions or distributions.
//
// Contribution patterns are always tried first: a description matching both
// kinds is a contribution.
type Classifier struct {
	contributions []string // folded
	distributions []string // folded
}

// NewClassifier returns a Classifier using DefaultPatterns and the extra ones.
func NewClassifier(extra ...Pattern) *Classifier {
	c := new(Classifier)
	for _, p := range slices.Concat(DefaultPatterns, extra) {
		text := fold.String(p.Text)
		if text == "" {
			continue // would match everything
		}
		switch p.Kind {
		case Contribution:
			c.contributions = append(c.contributions, text)
		case Distribution:
			c.distributions = append(c.distributions, text)
		}
	}
	return c
}

// Kind returns the kind of cash flow denoted by a movement description.
func (c *Classifier) Kind(description string) FlowKind {
	folded := fold.String(description)
	if folded == "" {
		return Unclassified
	}
	for _, p := range c.contributions {
		if strings.Contains(folded, p) {
			return Contribution
		}
	}
	for _, p := range c.distributions {
		if strings.Contains(folded, p) {
			return Distribution
		}
	}
	return Unclassified
}

// Classify keeps the records that are external cash flows and have a valid date.
//
// Amounts are taken in absolute value, the direction of the flow is given by its kind.
func (c *Classifier) Classify(records []MovementRecord) ([]Movement, Diagnostics) {
	diag := Diagnostics{MovementRecords: len(records)}
	var movements []Movement
	for _, r := range records {
		kind := c.Kind(r.Description)
		if kind == Unclassified {
			diag.Unclassified++
			continue
		}
		on, ok := date.Normalize(r.Date)
		if !ok {
			diag.InvalidMovementDates++
			continue
		}
		movements = append(movements, Movement{
			Contract:    r.Contract,
			On:          on,
			Description: r.Description,
			Amount:      r.Amount.Abs(),
			Kind:        kind,
		})
	}
	return movements, diag
}

// DescriptionCount is the number of ledger records sharing a description.
type DescriptionCount struct {
	Description string
	Kind        FlowKind
	Count       int
}

// Describe lists the distinct descriptions of records, with their kind, most frequent first.
func (c *Classifier) Describe(records []MovementRecord) []DescriptionCount {
	index := make(map[string]int)
	var counts []DescriptionCount
	for _, r := range records {
		desc := strings.TrimSpace(r.Description)
		i, ok := index[desc]
		if !ok {
			i = len(counts)
			index[desc] = i
			counts = append(counts, DescriptionCount{Description: desc, Kind: c.Kind(desc)})
		}
		counts[i].Count++
	}
	slices.SortStableFunc(counts, func(a, b DescriptionCount) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return strings.Compare(a.Description, b.Description)
	})
	return counts
}
