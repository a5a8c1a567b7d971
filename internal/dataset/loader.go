// Package dataset loads the apartment price file into the immutable price
// series table shared by every request.
//
// The first column of the file is the month label used as the row index; the
// remaining columns are numeric district series. Rows are sorted by month and
// duplicate months are collapsed, the later row in the file winning.
package dataset

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"limaprices/adapters/excel"
	"limaprices/domain/core"
	"limaprices/domain/prices"
	"limaprices/internal"
	"limaprices/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// MissingValues are the cell spellings treated as a missing observation
var MissingValues = []string{"", "NA", "NaN", "nan", "null", "-"}

// Loader reads a price file into a prices.Table
type Loader struct {
	config excel.ExcelConfig
	logger *internal.Logger
}

// NewLoader creates a loader for the configured file
func NewLoader(config excel.ExcelConfig, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{config: config, logger: logger}
}

// Load reads the file at path with default reader settings
func Load(path string) (*prices.Table, error) {
	config := excel.DefaultExcelConfig()
	config.FilePath = path
	return NewLoader(config, nil).Load()
}

// Load reads, validates and converts the file into a table
func (l *Loader) Load() (*prices.Table, error) {
	path := l.config.FilePath
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.NotFound("dataset file "+path), "loading dataset")
		}
		return nil, errors.Wrapf(err, "reading dataset %s", path)
	}

	data, err := excel.NewDataReaderWithConfig(l.config).WithLogger(l.logger).ReadData()
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatasetInvalid, err)
	}

	table, err := BuildTable(data, core.NewDatasetHash(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "loading dataset %s", path)
	}

	l.logger.Info("Loaded %d districts over %d months (%s to %s) from %s [%s]",
		len(table.Districts()), table.Len(),
		core.FormatDate(table.MinMonth()), core.FormatDate(table.MaxMonth()),
		path, table.Fingerprint().Short())
	return table, nil
}

// BuildTable converts raw rows into a table. Malformed months, non-numeric
// cells and header problems are DATASET_INVALID errors.
func BuildTable(data *excel.ExcelData, hash core.DatasetHash) (*prices.Table, error) {
	if len(data.Headers) < 2 {
		return nil, errors.DatasetInvalid("dataset needs a month column and at least one district column")
	}

	districts := data.Headers[1:]
	seen := make(map[string]bool, len(districts))
	for i, name := range districts {
		if name == "" {
			return nil, errors.DatasetInvalid(fmt.Sprintf("column %d has an empty header", i+2))
		}
		if name == prices.AllDistricts {
			return nil, errors.DatasetInvalid(fmt.Sprintf("column name %q is reserved", name))
		}
		if seen[name] {
			return nil, errors.DatasetInvalid(fmt.Sprintf("duplicate district column %q", name))
		}
		seen[name] = true
	}

	months := make([]time.Time, len(data.Records))
	for i, label := range data.Column(0) {
		month, err := core.ParseMonth(label)
		if err != nil {
			return nil, errors.Wrapf(errors.DatasetInvalid(err.Error()), "row %d", i+2)
		}
		months[i] = month
	}

	columns, err := parseColumns(data)
	if err != nil {
		return nil, err
	}

	order := uniqueMonthOrder(months)
	sortedMonths := make([]time.Time, len(order))
	for i, idx := range order {
		sortedMonths[i] = months[idx]
	}
	sortedColumns := make(map[string][]float64, len(columns))
	for name, values := range columns {
		sorted := make([]float64, len(order))
		for i, idx := range order {
			sorted[i] = values[idx]
		}
		sortedColumns[name] = sorted
	}

	table, err := prices.NewTable(sortedMonths, districts, sortedColumns, hash)
	if err != nil {
		return nil, errors.DatasetInvalid(err.Error())
	}
	return table, nil
}

// parseColumns converts every district column to float64 through a gota
// frame, then rejects cells gota could only read as NaN.
func parseColumns(data *excel.ExcelData) (map[string][]float64, error) {
	records := make([][]string, 0, len(data.Records)+1)
	records = append(records, data.Headers[1:])
	for _, row := range data.Records {
		records = append(records, row[1:])
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.Float),
		dataframe.NaNValues(MissingValues),
	)
	if frame.Err != nil {
		return nil, errors.Wrap(errors.DatasetInvalid(frame.Err.Error()), "converting district columns")
	}

	columns := make(map[string][]float64, frame.Ncol())
	for j, name := range data.Headers[1:] {
		col := frame.Col(name)
		if col.Err != nil {
			return nil, errors.DatasetInvalid(fmt.Sprintf("district column %q: %v", name, col.Err))
		}
		values := col.Float()
		for i, isNaN := range col.IsNaN() {
			raw := data.Records[i][j+1]
			if isNaN && !isMissing(raw) {
				return nil, errors.DatasetInvalid(fmt.Sprintf("row %d, district %q: %q is not a number", i+2, name, raw))
			}
		}
		columns[name] = values
	}
	return columns, nil
}

// uniqueMonthOrder returns row indexes in ascending month order keeping only
// the last row of each month.
func uniqueMonthOrder(months []time.Time) []int {
	idx := make([]int, len(months))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return months[idx[a]].Before(months[idx[b]])
	})

	out := make([]int, 0, len(idx))
	for i, row := range idx {
		if i+1 < len(idx) && months[idx[i+1]].Equal(months[row]) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func isMissing(cell string) bool {
	cell = strings.TrimSpace(cell)
	for _, token := range MissingValues {
		if cell == token {
			return true
		}
	}
	return false
}
