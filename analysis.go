package mwrr

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/etnz/mwrr/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ContractResult is the outcome of the rate computation for a single contract.
type ContractResult struct {
	Contract ContractID
	Status   Status
	Rate     float64 // annual rate as a ratio, only meaningful if Status is StatusOK.
	Reason   string  // error details when Status is not StatusOK.

	// First and last valuations.
	Start, End           date.Date
	StartValue, EndValue Money
	// Totals of the classified movements.
	Contributions, Distributions Money
	// Number of cash flows used to compute the rate.
	Flows int
	// Classified movements dated outside of the valuations span.
	Outside int
}

// OK reports whether the rate has been computed.
func (r ContractResult) OK() bool { return r.Status == StatusOK }

// Span returns the dates of the first and last valuations.
func (r ContractResult) Span() date.Range { return date.Range{From: r.Start, To: r.End} }

// Return returns the annual rate in percent, and false if it could not be computed.
func (r ContractResult) Return() (Percent, bool) {
	if !r.OK() {
		return 0, false
	}
	return Ratio(r.Rate), true
}

func (r ContractResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("contract", r.Contract)
	w.Append("status", r.Status)
	if r.OK() {
		w.Append("rate", r.Rate)
	}
	w.Optional("reason", r.Reason)
	if !r.Start.IsZero() {
		w.Append("start", r.Start)
		w.Append("startValue", r.StartValue)
		w.Append("end", r.End)
		w.Append("endValue", r.EndValue)
	}
	w.Append("contributions", r.Contributions)
	w.Append("distributions", r.Distributions)
	w.Append("flows", r.Flows)
	if r.Outside > 0 {
		w.Append("outside", r.Outside)
	}
	return w.MarshalJSON()
}

// Analyzer computes the money-weighted rate of return of every contract.
type Analyzer struct {
	Classifier *Classifier
	Solver     Solver
	Currency   string // currency of the totals of contracts without movements
	Log        zerolog.Logger
}

// NewAnalyzer returns an Analyzer with the default pattern table and solver.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{
		Classifier: NewClassifier(),
		Solver:     DefaultSolver,
		Log:        log,
	}
}

// Analysis holds the results of an Analyzer run, and the intermediate series
// used to compute them.
type Analysis struct {
	RunID       uuid.UUID
	Results     map[ContractID]ContractResult
	Balances    map[ContractID]*date.History[Money]
	Movements   map[ContractID][]Movement
	Diagnostics Diagnostics
}

// Contracts returns the analyzed contracts, sorted.
func (a *Analysis) Contracts() []ContractID {
	return slices.Sorted(maps.Keys(a.Results))
}

// Summary returns the number of contracts analyzed and the number of computed rates.
func (a *Analysis) Summary() (total, succeeded int) {
	for _, r := range a.Results {
		total++
		if r.OK() {
			succeeded++
		}
	}
	return total, succeeded
}

// Flows returns the cash flow series of a contract, as used to compute its rate.
func (a *Analysis) Flows(contract ContractID) ([]CashFlow, error) {
	return Assemble(contract, a.Balances[contract], a.Movements[contract])
}

func (a *Analysis) MarshalJSON() ([]byte, error) {
	total, succeeded := a.Summary()
	var w jsonObjectWriter
	w.Append("runId", a.RunID)
	w.Append("total", total)
	w.Append("succeeded", succeeded)
	w.Append("diagnostics", a.Diagnostics)
	w.Append("results", a.Results)
	return w.MarshalJSON()
}

var _ json.Marshaler = (*Analysis)(nil)

// Analyze computes the rate of every contract found in balances or movements.
//
// Contracts present only in the movements are reported with
// StatusNoBalanceData. A failure on a contract never prevents the others from
// being computed.
func (az *Analyzer) Analyze(balances []BalanceRecord, movements []MovementRecord) *Analysis {
	a := &Analysis{
		RunID:     uuid.New(),
		Results:   make(map[ContractID]ContractResult),
		Movements: make(map[ContractID][]Movement),
	}
	log := az.Log.With().Str("run", a.RunID.String()).Logger()

	var bdiag, mdiag Diagnostics
	a.Balances, bdiag = Aggregate(balances)
	classified, mdiag := az.Classifier.Classify(movements)
	a.Diagnostics = bdiag.Add(mdiag)
	for _, m := range classified {
		a.Movements[m.Contract] = append(a.Movements[m.Contract], m)
	}

	contracts := make(map[ContractID]bool)
	for _, r := range balances {
		contracts[r.Contract] = true
	}
	for _, r := range movements {
		contracts[r.Contract] = true
	}

	for _, c := range slices.Sorted(maps.Keys(contracts)) {
		res := az.evaluate(c, a.Balances[c], a.Movements[c])
		a.Results[c] = res
		if res.Outside > 0 {
			log.Warn().Str("contract", string(c)).Stringer("span", res.Span()).Int("movements", res.Outside).
				Msg("movements outside of the valuations span")
		}
		ev := log.Debug().Str("contract", string(c)).Stringer("status", res.Status).Int("flows", res.Flows)
		if res.OK() {
			ev = ev.Float64("rate", res.Rate)
		} else {
			ev = ev.Str("reason", res.Reason)
		}
		ev.Msg("contract analyzed")
	}

	if d := a.Diagnostics; d.Dropped() > 0 {
		log.Warn().
			Int("invalidBalanceDates", d.InvalidBalanceDates).
			Int("invalidMovementDates", d.InvalidMovementDates).
			Int("invalidAmounts", d.InvalidAmounts).
			Msg("records dropped")
	}
	total, succeeded := a.Summary()
	log.Info().
		Int("contracts", total).
		Int("succeeded", succeeded).
		Int("unclassified", a.Diagnostics.Unclassified).
		Msg("analysis completed")
	return a
}

// evaluate runs the cash flow assembly and the solver for a single contract.
func (az *Analyzer) evaluate(contract ContractID, balances *date.History[Money], movements []Movement) ContractResult {
	res := ContractResult{
		Contract:      contract,
		Contributions: M(0, az.Currency),
		Distributions: M(0, az.Currency),
	}
	for _, m := range movements {
		switch m.Kind {
		case Contribution:
			res.Contributions = res.Contributions.Add(m.Amount)
		case Distribution:
			res.Distributions = res.Distributions.Add(m.Amount)
		}
	}
	if balances.Len() > 0 {
		res.Start, res.StartValue = balances.First()
		res.End, res.EndValue = balances.Latest()
		for _, m := range movements {
			if m.Kind != Unclassified && !res.Span().Contains(m.On) {
				res.Outside++
			}
		}
	}

	flows, err := Assemble(contract, balances, movements)
	if err != nil {
		res.Status, res.Reason = StatusOf(err), err.Error()
		return res
	}
	res.Flows = len(flows)

	rate, err := az.Solver.Solve(flows)
	if err != nil {
		res.Status, res.Reason = StatusOf(err), err.Error()
		return res
	}
	res.Status, res.Rate = StatusOK, rate
	return res
}
