package mwrr

import "testing"

func TestAggregate_SumsSameDay(t *testing.T) {
	records := []BalanceRecord{
		{Contract: "A1", Date: "01/01/2023", Value: MXN(100)},
		{Contract: "A1", Date: "2023-01-01", Value: MXN(50)},
		{Contract: "A1", Date: "31/12/2023", Value: MXN(1200)},
		{Contract: "Z9", Date: "15 de marzo de 2023", Value: MXN(10)},
	}
	series, diag := Aggregate(records)

	if diag.BalanceRecords != 4 || diag.InvalidBalanceDates != 0 {
		t.Errorf("Aggregate() diagnostics = %+v, want 4 records and no invalid date", diag)
	}
	a1 := series["A1"]
	if a1.Len() != 2 {
		t.Fatalf("A1 has %d days, want 2", a1.Len())
	}
	if v, ok := a1.Get(day("2023-01-01")); !ok || !v.Equal(MXN(150)) {
		t.Errorf("A1 on 2023-01-01 = %v, %v want %v", v, ok, MXN(150))
	}
	if on, v := a1.Latest(); on != day("2023-12-31") || !v.Equal(MXN(1200)) {
		t.Errorf("A1 latest = %v %v, want 2023-12-31 %v", on, v, MXN(1200))
	}
	if series["Z9"].Len() != 1 {
		t.Errorf("Z9 has %d days, want 1", series["Z9"].Len())
	}
}

func TestAggregate_SortsWithinContract(t *testing.T) {
	records := []BalanceRecord{
		{Contract: "A1", Date: "2023-03-01", Value: MXN(3)},
		{Contract: "A1", Date: "2023-01-01", Value: MXN(1)},
		{Contract: "A1", Date: "2023-02-01", Value: MXN(2)},
	}
	series, _ := Aggregate(records)
	prev := day("2000-01-01")
	for on := range series["A1"].Values() {
		if !on.After(prev) {
			t.Errorf("series is not ascending: %v after %v", on, prev)
		}
		prev = on
	}
}

func TestAggregate_DropsInvalidDates(t *testing.T) {
	records := []BalanceRecord{
		{Contract: "A1", Date: "not a date", Value: MXN(100)},
		{Contract: "A1", Date: nil, Value: MXN(100)},
		{Contract: "B2", Date: "31/02/2023", Value: MXN(100)},
		{Contract: "A1", Date: "2023-01-01", Value: MXN(7)},
	}
	series, diag := Aggregate(records)
	if diag.InvalidBalanceDates != 3 {
		t.Errorf("InvalidBalanceDates = %d, want 3", diag.InvalidBalanceDates)
	}
	if series["A1"].Len() != 1 {
		t.Errorf("A1 has %d days, want 1", series["A1"].Len())
	}
	if _, ok := series["B2"]; ok {
		t.Errorf("B2 has no valid record and should have no series")
	}
}
