package excel

// ExcelData represents a complete tabular file: a header row plus data rows
// whose cells are aligned with the headers (short rows are padded with "").
type ExcelData struct {
	Headers []string   // Column headers
	Records [][]string // Data rows
}

// Column returns the cells of one column by header index
func (d *ExcelData) Column(idx int) []string {
	out := make([]string, len(d.Records))
	for i, row := range d.Records {
		out[i] = row[idx]
	}
	return out
}
