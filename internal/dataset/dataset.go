// Package dataset loads a tabular file into a single immutable in-memory
// table and hands out a process-wide read handle to it.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat indicates the dataset path's extension is not one of
// .csv, .json, .xls, .xlsx.
var ErrUnsupportedFormat = errors.New("dataset: unsupported file format")

// ErrUnknownColumn indicates a column name absent from the loaded table.
var ErrUnknownColumn = errors.New("dataset: column not found")

// Table is the loaded dataset. Its shape and contents are fixed for the
// lifetime of the handle; no mutation is exposed.
type Table struct {
	id       string
	source   string
	loadedAt time.Time
	frame    dataframe.DataFrame
}

// ID returns the server-assigned handle ID for this load.
func (t *Table) ID() string { return t.id }

// Source returns the path the table was loaded from.
func (t *Table) Source() string { return t.source }

// Names returns the ordered column names.
func (t *Table) Names() []string { return t.frame.Names() }

// Rows returns the row count (excluding the header).
func (t *Table) Rows() int { return t.frame.Nrow() }

// Cols returns the column count.
func (t *Table) Cols() int { return t.frame.Ncol() }

// Shape returns (rows, cols).
func (t *Table) Shape() (int, int) { return t.frame.Nrow(), t.frame.Ncol() }

// HasColumn reports whether name is a column of the table.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.frame.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns the named column as a typed series.
func (t *Table) Column(name string) (series.Series, error) {
	if !t.HasColumn(name) {
		return series.Series{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	s := t.frame.Col(name)
	if s.Err != nil {
		return series.Series{}, s.Err
	}
	return s, nil
}

// NumericColumns returns the names of int- and float-typed columns in order.
func (t *Table) NumericColumns() []string {
	names := t.frame.Names()
	types := t.frame.Types()
	out := make([]string, 0, len(names))
	for i, typ := range types {
		if typ == series.Int || typ == series.Float {
			out = append(out, names[i])
		}
	}
	return out
}

// Load parses the file at path into a Table, dispatching on the extension
// (case-insensitive). Parse and IO failures are returned verbatim so the
// caller can treat them as startup-fatal.
func Load(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		frame dataframe.DataFrame
		err   error
	)
	switch ext {
	case ".csv":
		frame, err = readCSV(path)
	case ".json":
		frame, err = readJSON(path)
	case ".xlsx":
		frame, err = readXLSX(path)
	case ".xls":
		frame, err = readXLS(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: load %s: %w", path, err)
	}
	if frame.Err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, frame.Err)
	}

	return &Table{
		id:       uuid.NewString(),
		source:   path,
		loadedAt: time.Now(),
		frame:    frame,
	}, nil
}

func readCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	return dataframe.ReadCSV(f, dataframe.HasHeader(true), dataframe.DetectTypes(true)), nil
}

func readJSON(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	return dataframe.ReadJSON(f), nil
}

func readXLSX(path string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataframe.DataFrame{}, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return recordsFrame(rows)
}

func readXLS(path string) (dataframe.DataFrame, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return dataframe.DataFrame{}, errors.New("workbook has no sheets")
	}

	records := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		rec := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			rec = append(rec, row.Col(j))
		}
		records = append(records, rec)
	}
	return recordsFrame(records)
}

// recordsFrame converts raw sheet rows into a typed frame. Spreadsheet
// readers return ragged rows (trailing empty cells are dropped), so rows are
// padded to a uniform width before type detection.
func recordsFrame(records [][]string) (dataframe.DataFrame, error) {
	if len(records) == 0 {
		return dataframe.DataFrame{}, errors.New("sheet is empty")
	}
	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	if width == 0 {
		return dataframe.DataFrame{}, errors.New("sheet has no columns")
	}
	padded := make([][]string, len(records))
	for i, rec := range records {
		if len(rec) == width {
			padded[i] = rec
			continue
		}
		row := make([]string, width)
		copy(row, rec)
		padded[i] = row
	}
	return dataframe.LoadRecords(padded, dataframe.HasHeader(true), dataframe.DetectTypes(true)), nil
}
