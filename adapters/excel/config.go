package excel

// ExcelConfig holds configuration for the Excel/CSV data source
type ExcelConfig struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name"` // empty means the first sheet of the workbook
	Comma     rune   `json:"comma"`
}

// DefaultExcelConfig returns sensible defaults for reading price files
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Comma: ',',
	}
}
