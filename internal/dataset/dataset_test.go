package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "A,B,C\n1,10.5,x\n2,20.5,y\n3,30.5,z\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	tbl, err := Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	require.Equal(t, 3, rows)
	require.Equal(t, 3, cols)
	require.Equal(t, []string{"A", "B", "C"}, tbl.Names())
	require.True(t, tbl.HasColumn("B"))
	require.False(t, tbl.HasColumn("missing"))
	require.NotEmpty(t, tbl.ID())
}

func TestLoadCSVCaseInsensitiveExtension(t *testing.T) {
	tbl, err := Load(writeFile(t, "data.CSV", sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Rows())
}

func TestLoadJSON(t *testing.T) {
	content := `[{"a":1.5,"b":"x"},{"a":2.5,"b":"y"}]`
	tbl, err := Load(writeFile(t, "data.json", content))
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
	require.True(t, tbl.HasColumn("a"))
	require.True(t, tbl.HasColumn("b"))
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"A", "B"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, 10}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2, 20}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
	require.Equal(t, []string{"A", "B"}, tbl.Names())
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "data.txt", "nope"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadXLS(t *testing.T) {
	// testdata/sample.xls is a minimal BIFF8 workbook; its last data row has
	// no value in the final column, so loading exercises the padding path.
	tbl, err := Load(filepath.Join("testdata", "sample.xls"))
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	require.Equal(t, 3, rows)
	require.Equal(t, 3, cols)
	require.Equal(t, []string{"name", "total", "note"}, tbl.Names())
	require.Equal(t, []string{"total"}, tbl.NumericColumns())

	col, err := tbl.Column("note")
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y", ""}, col.Records())
}

func TestLoadMissingXLS(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.xls"))
	require.Error(t, err)
}

func TestRecordsFramePadsRaggedRows(t *testing.T) {
	frame, err := recordsFrame([][]string{
		{"A", "B", "C"},
		{"1", "x"},
		{"2", "y", "z"},
	})
	require.NoError(t, err)
	require.NoError(t, frame.Err)
	require.Equal(t, 2, frame.Nrow())
	require.Equal(t, 3, frame.Ncol())
	require.Equal(t, []string{"", "z"}, frame.Col("C").Records())
}

func TestRecordsFramePadsNilRows(t *testing.T) {
	// Sparse sheets yield nil entries for rows with no cells at all.
	frame, err := recordsFrame([][]string{
		{"A", "B"},
		nil,
		{"x", "y"},
	})
	require.NoError(t, err)
	require.NoError(t, frame.Err)
	require.Equal(t, 2, frame.Nrow())
	require.Equal(t, []string{"", "x"}, frame.Col("A").Records())
}

func TestRecordsFrameEmptySheet(t *testing.T) {
	_, err := recordsFrame(nil)
	require.Error(t, err)

	_, err = recordsFrame([][]string{{}, {}})
	require.Error(t, err)
}

func TestNumericColumns(t *testing.T) {
	tbl, err := Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, tbl.NumericColumns())
}

func TestColumnUnknown(t *testing.T) {
	tbl, err := Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)

	_, err = tbl.Column("missing")
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestStoreNotLoaded(t *testing.T) {
	store := NewStore(zerolog.Nop())
	require.False(t, store.Loaded())

	_, err := store.Get()
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestStoreLoadPublishesAtomically(t *testing.T) {
	store := NewStore(zerolog.Nop())

	tbl, err := store.Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)
	require.True(t, store.Loaded())

	got, err := store.Get()
	require.NoError(t, err)
	require.Same(t, tbl, got)
}

func TestStoreLoadFailureKeepsPrevious(t *testing.T) {
	store := NewStore(zerolog.Nop())
	tbl, err := store.Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)

	_, err = store.Load(writeFile(t, "data.txt", "nope"))
	require.Error(t, err)

	got, err := store.Get()
	require.NoError(t, err)
	require.Same(t, tbl, got)
}

func TestLoadErrorIsWrapped(t *testing.T) {
	// Malformed workbook: not a zip archive.
	_, err := Load(writeFile(t, "data.xlsx", "not a workbook"))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnsupportedFormat))
}
