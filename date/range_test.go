package date

import (
	"testing"
	"time"
)

func TestRange(t *testing.T) {
	r := Range{From: New(2023, time.January, 1), To: New(2024, time.January, 1)}

	tests := []struct {
		on   Date
		want bool
	}{
		{New(2022, time.December, 31), false},
		{New(2023, time.January, 1), true},
		{New(2023, time.July, 14), true},
		{New(2024, time.January, 1), true},
		{New(2024, time.January, 2), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.on); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", r, tt.on, got, tt.want)
		}
	}
	if got := r.Days(); got != 365 {
		t.Errorf("%v.Days() = %d, want 365", r, got)
	}
	if got, want := r.String(), "2023-01-01 to 2024-01-01"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if r.IsZero() || !(Range{}).IsZero() {
		t.Errorf("IsZero: unexpected result")
	}
}
