package mwrr

import (
	"fmt"
	"math"
)

// Percent is a rate expressed in percent (5 means 5%).
type Percent float64

// Ratio converts a rate ratio (0.05) into a Percent (5%).
func Ratio(r float64) Percent { return Percent(100 * r) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
