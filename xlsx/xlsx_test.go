package xlsx

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/etnz/mwrr"
	"github.com/etnz/mwrr/date"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory statement with a sheet per entry, first row is the header.
func workbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"balances": {
			{"contract", "balance_date", "value_pos_mdo", "issuer"},
			{"A1", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 100.0, "X"},
			{" A1 ", "31/12/2023", "1,100.00", "Y"},
			{"A1", "31/12/2023", "n/a", "Y"},
			{"", "31/12/2023", 10, "Z"},
		},
		"movements": {
			{"Contract", "Operation_Date", "Description", "Movement_Import"},
			{"A1", "15 de marzo de 2023", "DEPOSITO DE EFECTIVO", 500},
		},
	})

	wb, err := Read(buf, DefaultOptions)
	require.NoError(t, err)

	require.Len(t, wb.Balances, 2)
	require.Equal(t, 1, wb.Diagnostics.InvalidAmounts)

	first := wb.Balances[0]
	require.Equal(t, mwrr.ContractID("A1"), first.Contract)
	on, ok := date.Normalize(first.Date)
	require.True(t, ok, "date %v", first.Date)
	require.Equal(t, date.New(2023, time.January, 1), on)
	require.True(t, first.Value.Equal(mwrr.M(100, "MXN")), "got %v", first.Value)

	second := wb.Balances[1]
	require.Equal(t, mwrr.ContractID("A1"), second.Contract)
	require.Equal(t, "31/12/2023", second.Date)
	require.True(t, second.Value.Equal(mwrr.M(1100, "MXN")), "got %v", second.Value)

	require.Len(t, wb.Movements, 1)
	m := wb.Movements[0]
	require.Equal(t, "DEPOSITO DE EFECTIVO", m.Description)
	require.Equal(t, "15 de marzo de 2023", m.Date)
	require.True(t, m.Amount.Equal(mwrr.M(500, "MXN")), "got %v", m.Amount)
}

func TestReadMissingSheet(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"balances": {{"contract", "balance_date", "value_pos_mdo"}},
	})
	_, err := Read(buf, DefaultOptions)
	require.ErrorIs(t, err, ErrMissingSheet)
}

func TestReadMissingColumn(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"balances":  {{"contract", "value_pos_mdo"}},
		"movements": {{"contract", "description", "movement_import", "operation_date"}},
	})
	_, err := Read(buf, DefaultOptions)
	require.ErrorIs(t, err, ErrMissingColumn)
	require.Contains(t, err.Error(), ColBalanceDate)
}

func TestReadEmptySheets(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"balances":  {{}, {"contract", "balance_date", "value_pos_mdo"}},
		"movements": {{"contract", "description", "movement_import", "operation_date"}},
	})
	wb, err := Read(buf, DefaultOptions)
	require.NoError(t, err)
	require.Empty(t, wb.Balances)
	require.Empty(t, wb.Movements)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("does-not-exist.xlsx", DefaultOptions)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrMissingSheet))
}

func TestReadTextDates(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"balances": {
			{"contract", "balance_date", "value_pos_mdo"},
			{"A1", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 1000},
			{"A1", "15012024", 1100},
			{"A1", "2023", 1100},
			{"A1", 15012024, 1100},
			{"A1", 45291, 1100},
		},
		"movements": {{"contract", "description", "movement_import", "operation_date"}},
	})
	wb, err := Read(buf, DefaultOptions)
	require.NoError(t, err)
	require.Len(t, wb.Balances, 5)
	require.Equal(t, "15012024", wb.Balances[1].Date)
	require.Equal(t, "2023", wb.Balances[2].Date)
	require.Equal(t, "15012024", wb.Balances[3].Date)

	series, diag := mwrr.Aggregate(wb.Balances)
	require.Equal(t, 3, diag.InvalidBalanceDates)
	first, _ := series["A1"].First()
	last, _ := series["A1"].Latest()
	require.Equal(t, date.New(2023, time.January, 1), first)
	require.Equal(t, date.New(2023, time.December, 31), last)
}

func TestCellDate(t *testing.T) {
	got, ok := cellDate("45291", true, false).(time.Time)
	require.True(t, ok)
	require.Equal(t, date.New(2023, time.December, 31), date.FromTime(got))
	require.Equal(t, "enero 5 2023", cellDate("enero 5 2023", false, false))
	require.Equal(t, "45291", cellDate("45291", false, false))
	require.Equal(t, "0", cellDate("0", true, false))
	require.Equal(t, "3000000", cellDate("3000000", true, false))
}
