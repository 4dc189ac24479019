// Package xlsx loads the balances and movements sheets of a statement workbook.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/mwrr"
	"github.com/xuri/excelize/v2"
)

// Column names of the statement sheets.
const (
	ColContract      = "contract"
	ColBalanceDate   = "balance_date"
	ColValue         = "value_pos_mdo"
	ColDescription   = "description"
	ColAmount        = "movement_import"
	ColOperationDate = "operation_date"
)

var (
	// ErrMissingSheet is returned when a required sheet is not in the workbook.
	ErrMissingSheet = errors.New("missing sheet")
	// ErrMissingColumn is returned when a required column is not in a sheet header.
	ErrMissingColumn = errors.New("missing column")
)

// Options selects the sheets to read and the currency of the amounts.
type Options struct {
	BalancesSheet  string
	MovementsSheet string
	Currency       string
}

// DefaultOptions are the sheet names of the broker export.
var DefaultOptions = Options{
	BalancesSheet:  "balances",
	MovementsSheet: "movements",
	Currency:       "MXN",
}

// Workbook holds the records read from a statement.
type Workbook struct {
	Balances    []mwrr.BalanceRecord
	Movements   []mwrr.MovementRecord
	Diagnostics mwrr.Diagnostics // records dropped because of an unreadable amount
}

// Load reads the statement workbook at path.
func Load(path string, opts Options) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %q: %w", path, err)
	}
	defer f.Close()
	wb, err := read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading workbook %q: %w", path, err)
	}
	return wb, nil
}

// Read reads a statement workbook from r.
func Read(r io.Reader, opts Options) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return read(f, opts)
}

func read(f *excelize.File, opts Options) (*Workbook, error) {
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	balances, err := readSheet(f, opts.BalancesSheet, ColContract, ColBalanceDate, ColValue)
	if err != nil {
		return nil, err
	}
	movements, err := readSheet(f, opts.MovementsSheet, ColContract, ColDescription, ColAmount, ColOperationDate)
	if err != nil {
		return nil, err
	}

	wb := new(Workbook)
	for i, row := range balances.rows {
		contract := balances.get(row, ColContract)
		if contract == "" {
			continue
		}
		value, err := mwrr.ParseMoney(balances.get(row, ColValue), opts.Currency)
		if err != nil {
			wb.Diagnostics.InvalidAmounts++
			continue
		}
		wb.Balances = append(wb.Balances, mwrr.BalanceRecord{
			Contract: mwrr.ContractID(contract),
			Date:     cellDate(balances.get(row, ColBalanceDate), balances.numeric(f, i, ColBalanceDate), date1904),
			Value:    value,
		})
	}
	for i, row := range movements.rows {
		contract := movements.get(row, ColContract)
		if contract == "" {
			continue
		}
		amount, err := mwrr.ParseMoney(movements.get(row, ColAmount), opts.Currency)
		if err != nil {
			wb.Diagnostics.InvalidAmounts++
			continue
		}
		wb.Movements = append(wb.Movements, mwrr.MovementRecord{
			Contract:    mwrr.ContractID(contract),
			Date:        cellDate(movements.get(row, ColOperationDate), movements.numeric(f, i, ColOperationDate), date1904),
			Description: movements.get(row, ColDescription),
			Amount:      amount,
		})
	}
	return wb, nil
}

// sheet is the content of a sheet, with the position of each column by name.
type sheet struct {
	name    string
	header  int // 1-based row number of the header
	columns map[string]int
	rows    [][]string
}

// get returns the trimmed value of a column in row, or "" if the row is too short.
func (s *sheet) get(row []string, column string) string {
	i := s.columns[column]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// numeric reports whether the cell of column in the i-th data row is stored as a number.
func (s *sheet) numeric(f *excelize.File, i int, column string) bool {
	cell, err := excelize.CoordinatesToCellName(s.columns[column]+1, s.header+1+i)
	if err != nil {
		return false
	}
	typ, err := f.GetCellType(s.name, cell)
	if err != nil {
		return false
	}
	// numbers have no explicit type in most writers.
	return typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber
}

// readSheet reads all the rows of a sheet and checks that its header has the required columns.
func readSheet(f *excelize.File, name string, required ...string) (*sheet, error) {
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingSheet, name)
	}
	// raw values keep dates as serial numbers instead of locale dependent text.
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	s := &sheet{name: name, header: 1, columns: make(map[string]int)}
	// the header is the first non empty row.
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
		s.header++
	}
	if len(rows) > 0 {
		for i, cell := range rows[0] {
			key := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := s.columns[key]; !dup {
				s.columns[key] = i
			}
		}
		s.rows = rows[1:]
	}
	var errs error
	for _, col := range required {
		if _, ok := s.columns[col]; !ok {
			errs = errors.Join(errs, fmt.Errorf("%w %q in sheet %q", ErrMissingColumn, col, name))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return s, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Serial numbers of the first and last days a spreadsheet can represent.
const (
	minSerial = 1
	maxSerial = 2958465 // 9999-12-31
)

// cellDate returns the raw value of a date cell: a time.Time for spreadsheet
// dates (numeric cells holding a serial number), or the text as typed.
func cellDate(raw string, numeric, date1904 bool) any {
	if !numeric {
		return raw
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial < minSerial || serial > maxSerial {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return raw
	}
	return t
}
