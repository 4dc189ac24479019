package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// IsZero reports whether the range has not been set.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Days returns the number of days elapsed from From to To.
func (r Range) Days() int { return r.To.DaysSince(r.From) }

func (r Range) String() string { return fmt.Sprintf("%s to %s", r.From, r.To) }
