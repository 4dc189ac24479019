package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// time.Time are usually not comparable (there is a pointer for the location),
		// this also checks that the property remains true.
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestDaysSince(t *testing.T) {
	testCases := []struct {
		from, to Date
		want     int
	}{
		{New(2023, 1, 1), New(2023, 1, 1), 0},
		{New(2023, 1, 1), New(2023, 6, 1), 151},
		{New(2023, 1, 1), New(2023, 12, 31), 364},
		{New(2024, 1, 1), New(2025, 1, 1), 366},
		{New(2023, 6, 1), New(2023, 1, 1), -151},
	}
	for _, tc := range testCases {
		if got := tc.to.DaysSince(tc.from); got != tc.want {
			t.Errorf("%v.DaysSince(%v) = %d, want %d", tc.to, tc.from, got, tc.want)
		}
	}
}

func TestJSON(t *testing.T) {
	want := New(2024, time.February, 29)
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"2024-02-29"` {
		t.Errorf("json.Marshal() = %s, want %q", data, "2024-02-29")
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got != want {
		t.Errorf("json.Unmarshal() = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	for _, s := range []string{"2023-03-15", "15/03/2023", "15 de marzo de 2023"} {
		got, err := Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", s, err)
			continue
		}
		if want := New(2023, time.March, 15); got != want {
			t.Errorf("Parse(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := Parse("not a date"); err == nil {
		t.Errorf("Parse(%q) succeeded, want an error", "not a date")
	}
	var d Date
	if err := json.Unmarshal([]byte(`"31/12/2023"`), &d); err != nil || d != New(2023, time.December, 31) {
		t.Errorf("json.Unmarshal(31/12/2023) = %v, %v", d, err)
	}
}
