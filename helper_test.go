package mwrr

import (
	"math"

	"github.com/etnz/mwrr/date"
)

// MXN is a helper for test to create peso money from const
func MXN(v float64) Money { return M(v, "MXN") }

// day is a helper for test to create dates from const.
func day(s string) date.Date { return date.MustParse(s) }

// flow is a helper for test to create a cash flow.
func flow(on string, amount float64) CashFlow {
	return CashFlow{On: day(on), Amount: MXN(amount)}
}

// npvAt discounts every flow independently at rate r, to the first day.
func npvAt(flows []CashFlow, r float64) float64 {
	first := flows[0].On
	for _, f := range flows {
		if f.On.Before(first) {
			first = f.On
		}
	}
	var sum float64
	for _, f := range flows {
		years := float64(f.On.DaysSince(first)) / DaysPerYear
		sum += f.Amount.AsFloat() / math.Pow(1+r, years)
	}
	return sum
}
