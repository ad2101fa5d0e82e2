package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sampleRows = []Row{
	{Cycle: "Q1", Owner: "Sales", ObjectiveTitle: "Grow revenue", KeyResultTitle: "Close deals", StartValue: "0", TargetValue: "10", CurrentValue: "5", Progress: "50"},
	{Cycle: "Q1", Owner: "Sales", ObjectiveTitle: "Grow revenue", KeyResultTitle: "Raise NPS, fast", StartValue: "2.5", TargetValue: "7.5", CurrentValue: "2.5", Progress: "0"},
	{Cycle: "Q2", Owner: "Acme", ObjectiveTitle: "Hire \"great\" people", KeyResultTitle: NoKeyResults},
}

func TestCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleRows))
	require.True(t, strings.HasPrefix(buf.String(), strings.Join(Header, ",")+"\n"))

	rows, err := Read(&buf, FormatCSV)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRows, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleRows))

	rows, err := Read(bytes.NewReader(buf.Bytes()), FormatXLSX)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRows, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteXLSX_NumericCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleRows[:1]))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())
	typ, err := f.GetCellType(SheetName, "F2")
	require.NoError(t, err)
	require.NotEqual(t, excelize.CellTypeSharedString, typ)
	title, err := f.GetCellValue(SheetName, "C2")
	require.NoError(t, err)
	require.Equal(t, "Grow revenue", title)
}

func TestReadCSV_RaggedRecords(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("Objective Title,Owner,Cycle\nGrow,Sales\n"))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Objective Title", "Owner", "Cycle"}, {"Grow", "Sales"}}, table)
}

func TestFile_RoundTripByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"okrs.csv", "okrs.XLSX"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, sampleRows))
			rows, err := ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, sampleRows, rows)
		})
	}
}

func TestFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "okrs.ods")
	require.ErrorIs(t, WriteFile(path, sampleRows), ErrUnsupportedFormat)
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	_, err = ReadFile(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
