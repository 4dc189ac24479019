package mwrr

import "github.com/etnz/mwrr/date"

// Aggregate builds the valuation series of each contract.
//
// Records whose date cannot be normalized are dropped and counted. Records of
// the same contract on the same day are summed: a statement lists one line per
// position, the portfolio value is their total.
func Aggregate(records []BalanceRecord) (map[ContractID]*date.History[Money], Diagnostics) {
	diag := Diagnostics{BalanceRecords: len(records)}
	series := make(map[ContractID]*date.History[Money])
	for _, r := range records {
		on, ok := date.Normalize(r.Date)
		if !ok {
			diag.InvalidBalanceDates++
			continue
		}
		h, exists := series[r.Contract]
		if !exists {
			h = new(date.History[Money])
			series[r.Contract] = h
		}
		h.AppendWith(on, r.Value, Money.Add)
	}
	return series, diag
}
