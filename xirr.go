package mwrr

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// DaysPerYear is the day count convention used to annualize rates (actual/365).
const DaysPerYear = 365

// bisectIterations bounds the fallback bracketing search.
const bisectIterations = 200

// residualTolerance is the largest accepted |NPV| relative to the total absolute flows.
const residualTolerance = 1e-9

// bracketGrid are the rates probed to find a sign change of the NPV when Newton's method fails.
var bracketGrid = []float64{-0.999, -0.99, -0.9, -0.75, -0.5, -0.25, 0, 0.1, 0.25, 0.5, 1, 2, 5, 10, 100, 1e3, 1e4, 1e6}

// Solver finds the internal rate of return of irregular cash flows (XIRR).
//
// The rate r is the solution of
//
//	Σ amountᵢ / (1+r)^((dayᵢ - day₀)/365) = 0
//
// where day₀ is the earliest day. Flows of the same day are summed first.
//
// The search starts with Newton's method from Guess and falls back to a
// bisection over a bracket where the NPV changes sign. Cash flows with several
// sign changes may have several rates; the first one found is returned.
type Solver struct {
	Guess         float64 // initial rate for Newton's method
	MaxIterations int     // Newton's method budget
	Tolerance     float64 // relative step size to stop
}

// DefaultSolver is the Solver used by XIRR.
var DefaultSolver = Solver{Guess: 0.1, MaxIterations: 100, Tolerance: 1e-10}

// XIRR returns the annual rate of flows using the DefaultSolver.
func XIRR(flows []CashFlow) (float64, error) { return DefaultSolver.Solve(flows) }

// term is the sum of the flows of a day, 'years' after the first day.
type term struct {
	years  float64
	amount float64
}

// Solve returns the annual rate (0.05 for 5%) that zeroes the net present value of flows.
//
// It returns ErrInsufficientData if flows do not have both positive and
// negative amounts, and ErrSolverFailed if no rate can be found. When the
// amounts sum up to exactly zero, the rate is 0.
func (s Solver) Solve(flows []CashFlow) (float64, error) {
	if err := checkFlows(flows); err != nil {
		return 0, err
	}
	sum := decimal.Zero
	for _, f := range flows {
		sum = sum.Add(f.Amount.Decimal())
	}
	if sum.IsZero() {
		// NPV(0) is the plain sum.
		return 0, nil
	}

	terms := groupByDay(flows)
	if len(terms) == 1 {
		// no time elapsed, nothing can discount a non zero sum.
		return 0, fmt.Errorf("%w: all flows on %s do not sum up to zero", ErrSolverFailed, flows[0].On)
	}

	if r, ok := s.newton(terms); ok {
		return r, nil
	}
	if r, ok := s.bisect(terms); ok {
		return r, nil
	}
	return 0, ErrSolverFailed
}

// groupByDay sums flows per day and converts days into years since the first day.
func groupByDay(flows []CashFlow) []term {
	first := flows[0].On
	for _, f := range flows {
		if f.On.Before(first) {
			first = f.On
		}
	}
	sums := make(map[int]decimal.Decimal)
	for _, f := range flows {
		days := f.On.DaysSince(first)
		sums[days] = sums[days].Add(f.Amount.Decimal())
	}
	terms := make([]term, 0, len(sums))
	for days, amount := range sums {
		terms = append(terms, term{
			years:  float64(days) / DaysPerYear,
			amount: amount.InexactFloat64(),
		})
	}
	slices.SortFunc(terms, func(a, b term) int {
		switch {
		case a.years < b.years:
			return -1
		case a.years > b.years:
			return 1
		}
		return 0
	})
	return terms
}

// npv returns the net present value at rate r and its derivative.
func npv(terms []term, r float64) (f, df float64) {
	for _, t := range terms {
		v := math.Pow(1+r, -t.years)
		f += t.amount * v
		df -= t.years * t.amount * v / (1 + r)
	}
	return f, df
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// accept reports whether r is a root, up to the residual tolerance.
func accept(terms []term, r float64) bool {
	if !finite(r) || r <= -1 {
		return false
	}
	var scale float64
	for _, t := range terms {
		scale += math.Abs(t.amount)
	}
	f, _ := npv(terms, r)
	return finite(f) && math.Abs(f) <= residualTolerance*scale
}

// newton runs a safeguarded Newton's method: steps never go below -1.
func (s Solver) newton(terms []term) (float64, bool) {
	r := s.Guess
	if r <= -1 || !finite(r) {
		r = 0
	}
	for range s.MaxIterations {
		f, df := npv(terms, r)
		if !finite(f) || !finite(df) || df == 0 {
			return 0, false
		}
		next := r - f/df
		if next <= -1 {
			// stay in the domain, halfway to -1.
			next = (r - 1) / 2
		}
		if !finite(next) {
			return 0, false
		}
		if math.Abs(next-r) <= s.Tolerance*math.Max(1, math.Abs(r)) {
			return next, accept(terms, next)
		}
		r = next
	}
	return 0, false
}

// bisect looks for the first sign change of the NPV on the bracketGrid and bisects it.
func (s Solver) bisect(terms []term) (float64, bool) {
	lo, flo := math.NaN(), math.NaN()
	for _, r := range bracketGrid {
		f, _ := npv(terms, r)
		if !finite(f) {
			continue
		}
		if f == 0 {
			return r, true
		}
		if finite(flo) && (flo < 0) != (f < 0) {
			return s.bisectBracket(terms, lo, r, flo)
		}
		lo, flo = r, f
	}
	return 0, false
}

func (s Solver) bisectBracket(terms []term, lo, hi, flo float64) (float64, bool) {
	for range bisectIterations {
		mid := lo + (hi-lo)/2
		fmid, _ := npv(terms, mid)
		if !finite(fmid) {
			return 0, false
		}
		if fmid == 0 || hi-lo <= s.Tolerance*math.Max(1, math.Abs(mid)) {
			return mid, true
		}
		if (fmid < 0) == (flo < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	// the bracket is far below the tolerance by now.
	return lo + (hi-lo)/2, true
}
