// Package loader reads the planning inputs (airports, population/GDP tables and
// demand matrices) from CSV or XLSX spreadsheets.
package loader

import(
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type TableOptions struct {
	Sheet    string // XLSX only; defaults to the first sheet
	SkipRows int    // preamble rows above the header row
}

// A Table is a header row plus data rows, all cells trimmed, every row as wide as
// the header. Fully blank rows are dropped.
type Table struct {
	Name      string   // for error messages
	Headers []string
	Rows    [][]string
}

func (t Table)String() string {
	return fmt.Sprintf("table %s: %d cols x %d rows", t.Name, len(t.Headers), len(t.Rows))
}

// Row is one data row keyed by header name.
type Row map[string]string

// Row returns a row as a map from header to value. When headers repeat, the first
// column wins, as with Column.
func (t Table)Row(i int) Row {
	m := Row{}
	for j,h := range t.Headers {
		if _,exists := m[h]; !exists { m[h] = t.Rows[i][j] }
	}
	return m
}

// Column finds the first header matching any of the names, case-insensitively.
func (t Table)Column(names ...string) (int, bool) {
	for _,name := range names {
		for i,h := range t.Headers {
			if strings.EqualFold(h, name) { return i, true }
		}
	}
	return -1, false
}

// {{{ OpenTable

// OpenTable reads a table from a .csv or .xlsx file.
func OpenTable(path string, opt TableOptions) (Table, error) {
	f,err := os.Open(path)
	if err != nil { return Table{}, errors.Wrap(err, "open table") }
	defer f.Close()

	var t Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt": t,err = ReadCSV(f, opt)
	case ".xlsx", ".xlsm": t,err = ReadXLSX(f, opt)
	default:
		return Table{}, errors.Errorf("%s: unsupported table format %q", path, ext)
	}
	if err != nil { return Table{}, errors.Wrap(err, path) }

	t.Name = filepath.Base(path)
	return t, nil
}

// }}}
// {{{ ReadCSV

func ReadCSV(rdr io.Reader, opt TableOptions) (Table, error) {
	rowReader := NewRowReader(rdr, opt.SkipRows)
	t := Table{Name:"csv", Rows:[][]string{}}

	for {
		vals,err := rowReader.ReadValues()
		if err == io.EOF { break }
		if err != nil { return Table{}, err }
		if !isBlank(vals) { t.Rows = append(t.Rows, vals) }
	}
	t.Headers = rowReader.Headers()

	return t, nil
}

// }}}
// {{{ ReadXLSX

func ReadXLSX(rdr io.Reader, opt TableOptions) (Table, error) {
	f,err := excelize.OpenReader(rdr)
	if err != nil { return Table{}, errors.Wrap(err, "xlsx") }
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 { return Table{}, errors.New("xlsx: workbook has no sheets") }
		sheet = sheets[0]
	}

	rows,err := f.GetRows(sheet)
	if err != nil { return Table{}, errors.Wrapf(err, "xlsx sheet %q", sheet) }
	if len(rows) <= opt.SkipRows {
		return Table{}, errors.Errorf("xlsx sheet %q: no header row after %d skipped rows", sheet,
			opt.SkipRows)
	}

	t := Table{Name:sheet, Headers:trimAll(rows[opt.SkipRows]), Rows:[][]string{}}
	for i,row := range rows[opt.SkipRows+1:] {
		row = trimAll(row)
		if len(row) > len(t.Headers) {
			// Same rule as the CSV reader: blank overflow is fine, values are not
			for j,v := range row[len(t.Headers):] {
				if v == "" { continue }
				col,_ := excelize.ColumnNumberToName(len(t.Headers)+j+1)
				return Table{}, errors.Errorf("xlsx sheet %q row %d: value %q in column %s, beyond the %d headers",
					sheet, opt.SkipRows+i+2, v, col, len(t.Headers))
			}
			row = row[:len(t.Headers)]
		}
		for len(row) < len(t.Headers) { row = append(row, "") }
		if !isBlank(row) { t.Rows = append(t.Rows, row) }
	}

	return t, nil
}

// }}}

func isBlank(vals []string) bool {
	for _,v := range vals {
		if v != "" { return false }
	}
	return true
}
