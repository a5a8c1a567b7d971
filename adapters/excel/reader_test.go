package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"limaprices/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "prices.csv", "\ufeffMonth, Miraflores ,Barranco\n2015-01,1800,\n\n2015-02, 1810 ,1500\n2015-03,1820\n")

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Month", "Miraflores", "Barranco"}, data.Headers)
	assert.Equal(t, [][]string{
		{"2015-01", "1800", ""},
		{"2015-02", "1810", "1500"},
		{"2015-03", "1820", ""},
	}, data.Records)
	assert.Equal(t, []string{"1800", "1810", "1820"}, data.Column(1))
}

func TestReadCSVSemicolon(t *testing.T) {
	config := DefaultExcelConfig()
	config.FilePath = "prices.csv"
	config.Comma = ';'

	data, err := NewDataReaderWithConfig(config).ReadCSV(strings.NewReader("Month;Lince\n2015-01;1200\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Month", "Lince"}, data.Headers)
	assert.Equal(t, [][]string{{"2015-01", "1200"}}, data.Records)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"header only", "Month,Lince\n", "at least a header row"},
		{"blank rows only", "Month,Lince\n,\n", "no data rows"},
		{"row wider than header", "Month,Lince\n2015-01,1,2\n", "row 2 has 3 cells"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataReader(writeFile(t, "prices.csv", tt.content)).ReadData()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV file not found")
}

func TestReadExcelRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, Sheet{
		Name:    "Prices",
		Headers: []string{"Month", "Miraflores", "Surco"},
		Rows: [][]interface{}{
			{"2015-01", 1800.5, 1500},
			{"2015-02", 1810, nil},
		},
	}))
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	reader := NewDataReader(path)
	assert.Equal(t, "xlsx", reader.FileType())

	data, err := reader.ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"Month", "Miraflores", "Surco"}, data.Headers)
	assert.Equal(t, [][]string{
		{"2015-01", "1800.5", "1500"},
		{"2015-02", "1810", ""},
	}, data.Records)
}

func TestWriteWorkbookSheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf,
		Sheet{Name: "Returns", Headers: []string{"District", "Percent"}, Rows: [][]interface{}{{"Lince", 12}}},
		Sheet{Name: "Stats", Headers: []string{"District"}},
	))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Returns", "Stats"}, f.GetSheetList())
	value, err := f.GetCellValue("Returns", "B2")
	require.NoError(t, err)
	assert.Equal(t, "12", value)

	assert.Error(t, WriteWorkbook(&buf))
}

func TestReaderLogsAtDebug(t *testing.T) {
	path := writeFile(t, "prices.csv", "Month,Lince\n2015-01,1500\n")

	var quiet bytes.Buffer
	_, err := NewDataReader(path).WithLogger(internal.NewLoggerTo(&quiet, internal.LogLevelWarn)).ReadData()
	require.NoError(t, err)
	assert.Empty(t, quiet.String())

	var verbose bytes.Buffer
	_, err = NewDataReader(path).WithLogger(internal.NewLoggerTo(&verbose, internal.LogLevelDebug)).ReadData()
	require.NoError(t, err)
	assert.Contains(t, verbose.String(), "[DEBUG] [DataReader] CSV read")
}
