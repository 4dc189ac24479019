package date

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		raw  any
		want Date
		ok   bool
	}{
		{"nil", nil, Date{}, false},
		{"empty", "", Date{}, false},
		{"blank", "   ", Date{}, false},
		{"zero date", Date{}, Date{}, false},
		{"time", time.Date(2023, 6, 1, 17, 30, 0, 0, time.UTC), New(2023, 6, 1), true},
		{"day first slash", "05/03/2024", New(2024, 3, 5), true},
		{"day first dash", "5-3-2024", New(2024, 3, 5), true},
		{"ambiguous is day first", "02/01/2023", New(2023, 1, 2), true},
		{"two digit year", "31/12/23", New(2023, 12, 31), true},
		{"iso", "2023-12-31", New(2023, 12, 31), true},
		{"iso slash", "2023/12/31", New(2023, 12, 31), true},
		{"with clock", "15/01/2023 00:00:00", New(2023, 1, 15), true},
		{"iso with clock", "2023-01-15T10:20:00", New(2023, 1, 15), true},
		{"spanish long", "15 de enero de 2023", New(2023, 1, 15), true},
		{"spanish capitalized", "1 de Septiembre de 2022", New(2022, 9, 1), true},
		{"spanish no connector", "31 diciembre 2023", New(2023, 12, 31), true},
		{"month first", "marzo 5, 2024", New(2024, 3, 5), true},
		{"english", "5 March 2024", New(2024, 3, 5), true},
		{"overflow day", "31/02/2023", Date{}, false},
		{"overflow month", "12/13/2023", Date{}, false},
		{"mixed separators", "12/11-2023", Date{}, false},
		{"two fields", "12/2023", Date{}, false},
		{"letters", "ab/cd/efgh", Date{}, false},
		{"missing day", "enero 2023", Date{}, false},
		{"unknown month", "15 de brumario de 2023", Date{}, false},
		{"garbage", "not a date", Date{}, false},
		{"unsupported type", 45000.0, Date{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalize(tc.raw)
			if ok != tc.ok {
				t.Fatalf("Normalize(%v) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("Normalize(%v) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	d := New(2023, 12, 31)
	got, ok := Normalize(d)
	if !ok || got != d {
		t.Fatalf("Normalize(%v) = %v, %v want %v, true", d, got, ok, d)
	}
	again, ok := Normalize(got.String())
	if !ok || again != d {
		t.Errorf("Normalize(%q) = %v, %v want %v, true", got.String(), again, ok, d)
	}
}

func TestMonths(t *testing.T) {
	if len(Months) != 12 {
		t.Fatalf("Months has %d entries, want 12", len(Months))
	}
	seen := make(map[time.Month]bool)
	for name, m := range Months {
		if seen[m] {
			t.Errorf("month %v is mapped twice (last by %q)", m, name)
		}
		seen[m] = true
	}
}
