package mwrr

import "errors"

var (
	// ErrNoBalanceData is returned when a contract has no valid balance record.
	ErrNoBalanceData = errors.New("no balance data")
	// ErrInsufficientData is returned when a cash flow series cannot have a rate:
	// fewer than two flows or no sign change.
	ErrInsufficientData = errors.New("insufficient cash flows")
	// ErrSolverFailed is returned when no rate could be found within the iteration budget.
	ErrSolverFailed = errors.New("rate solver did not converge")
)

// StatusOf maps an error returned by Assemble or Solver.Solve to a Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNoBalanceData):
		return StatusNoBalanceData
	case errors.Is(err, ErrInsufficientData):
		return StatusInsufficientData
	default:
		return StatusSolverFailed
	}
}

// Diagnostics counts the records read and dropped while preparing the cash flows.
type Diagnostics struct {
	BalanceRecords       int `json:"balanceRecords"`
	InvalidBalanceDates  int `json:"invalidBalanceDates"`
	MovementRecords      int `json:"movementRecords"`
	Unclassified         int `json:"unclassified"`
	InvalidMovementDates int `json:"invalidMovementDates"`
	InvalidAmounts       int `json:"invalidAmounts"`
}

// Add returns the field by field sum of d and o.
func (d Diagnostics) Add(o Diagnostics) Diagnostics {
	return Diagnostics{
		BalanceRecords:       d.BalanceRecords + o.BalanceRecords,
		InvalidBalanceDates:  d.InvalidBalanceDates + o.InvalidBalanceDates,
		MovementRecords:      d.MovementRecords + o.MovementRecords,
		Unclassified:         d.Unclassified + o.Unclassified,
		InvalidMovementDates: d.InvalidMovementDates + o.InvalidMovementDates,
		InvalidAmounts:       d.InvalidAmounts + o.InvalidAmounts,
	}
}

// Dropped returns the number of records excluded because of unreadable content.
// Unclassified movements are not counted, they are excluded on purpose.
func (d Diagnostics) Dropped() int {
	return d.InvalidBalanceDates + d.InvalidMovementDates + d.InvalidAmounts
}
