package mwrr

import (
	"fmt"

	"github.com/etnz/mwrr/date"
)

// ContractID identifies an investment contract. All balances and movements are grouped by contract.
type ContractID string

// BalanceRecord is a line of the balances sheet: the value of one position of a
// contract's portfolio on a given day. A contract usually has several records per day.
type BalanceRecord struct {
	Contract ContractID
	Date     any // raw cell value, see date.Normalize
	Value    Money
}

// MovementRecord is a line of the movements ledger, as found in the statement.
type MovementRecord struct {
	Contract    ContractID
	Date        any // raw cell value, see date.Normalize
	Description string
	Amount      Money // non-negative in the ledger
}

// Movement is a MovementRecord that has been recognized as an external cash flow.
type Movement struct {
	Contract    ContractID
	On          date.Date
	Description string
	Amount      Money // always non-negative, the sign is given by Kind.
	Kind        FlowKind
}

// FlowKind tells whether a movement brings money into the portfolio or takes it out.
type FlowKind int

const (
	// Unclassified movements are internal bookkeeping (fees, accruals, ...) and are not cash flows.
	Unclassified FlowKind = iota
	// Contribution is money entering the portfolio.
	Contribution
	// Distribution is money leaving the portfolio.
	Distribution
)

func (k FlowKind) String() string {
	switch k {
	case Contribution:
		return "contribution"
	case Distribution:
		return "distribution"
	default:
		return "unclassified"
	}
}

// ParseFlowKind parses a string into a FlowKind.
func ParseFlowKind(s string) (FlowKind, error) {
	switch s {
	case "contribution":
		return Contribution, nil
	case "distribution":
		return Distribution, nil
	case "unclassified":
		return Unclassified, nil
	default:
		return 0, fmt.Errorf("unknown flow kind: %q", s)
	}
}

func (k FlowKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Status is the outcome of the rate computation for a contract.
type Status int

const (
	StatusOK Status = iota
	StatusNoBalanceData
	StatusInsufficientData
	StatusSolverFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoBalanceData:
		return "no-balance-data"
	case StatusInsufficientData:
		return "insufficient-data"
	case StatusSolverFailed:
		return "solver-failed"
	default:
		return "unknown"
	}
}

// Reason returns a human readable explanation of a non OK status.
func (s Status) Reason() string {
	switch s {
	case StatusOK:
		return ""
	case StatusNoBalanceData:
		return "no valid balance"
	case StatusInsufficientData:
		return "not enough cash flows"
	case StatusSolverFailed:
		return "rate did not converge"
	default:
		return "unknown error"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
