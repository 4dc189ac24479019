package mwrr

import (
	"fmt"
	"slices"

	"github.com/etnz/mwrr/date"
)

// Origin tells where a cash flow comes from.
type Origin int

const (
	// InitialValue is the first known portfolio value, as if invested on that day.
	InitialValue Origin = iota
	// Deposit is a contribution movement.
	Deposit
	// Withdrawal is a distribution movement.
	Withdrawal
	// FinalValue is the last known portfolio value, as if paid out on that day.
	FinalValue
)

func (o Origin) String() string {
	switch o {
	case InitialValue:
		return "initial value"
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case FinalValue:
		return "final value"
	default:
		return "unknown"
	}
}

func (o Origin) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// CashFlow is a dated, signed amount of a contract's cash flow series.
//
// Money invested in the portfolio (initial value and contributions) is
// positive, money returned (distributions and final value) is negative.
type CashFlow struct {
	On     date.Date
	Amount Money
	Origin Origin
}

// Assemble builds the chronological cash flow series of a contract.
//
// The first and last values of the balances series are turned into an initial
// investment and a final payout. Movements of other contracts are ignored.
// Flows on the same day are all kept.
//
// It fails with ErrNoBalanceData if balances is empty, and with
// ErrInsufficientData if the series cannot have a rate.
func Assemble(contract ContractID, balances *date.History[Money], movements []Movement) ([]CashFlow, error) {
	if balances.Len() == 0 {
		return nil, fmt.Errorf("contract %s: %w", contract, ErrNoBalanceData)
	}
	firstDay, firstValue := balances.First()
	lastDay, lastValue := balances.Latest()

	flows := make([]CashFlow, 0, len(movements)+2)
	flows = append(flows, CashFlow{On: firstDay, Amount: firstValue, Origin: InitialValue})
	for _, m := range movements {
		if m.Contract != contract {
			continue
		}
		switch m.Kind {
		case Contribution:
			flows = append(flows, CashFlow{On: m.On, Amount: m.Amount, Origin: Deposit})
		case Distribution:
			flows = append(flows, CashFlow{On: m.On, Amount: m.Amount.Neg(), Origin: Withdrawal})
		}
	}
	flows = append(flows, CashFlow{On: lastDay, Amount: lastValue.Neg(), Origin: FinalValue})

	slices.SortStableFunc(flows, func(a, b CashFlow) int { return a.On.Compare(b.On) })

	if err := checkFlows(flows); err != nil {
		return nil, fmt.Errorf("contract %s: %w", contract, err)
	}
	return flows, nil
}

// checkFlows returns ErrInsufficientData unless flows has at least one
// positive and one negative amount.
func checkFlows(flows []CashFlow) error {
	if len(flows) < 2 {
		return fmt.Errorf("%w: %d flow(s)", ErrInsufficientData, len(flows))
	}
	var positive, negative bool
	for _, f := range flows {
		positive = positive || f.Amount.IsPositive()
		negative = negative || f.Amount.IsNegative()
	}
	if !positive || !negative {
		return fmt.Errorf("%w: no sign change", ErrInsufficientData)
	}
	return nil
}
