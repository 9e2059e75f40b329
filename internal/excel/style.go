// Package excel renders report layouts into XLSX workbooks using excelize.
package excel

// Style is the single styling configuration for the generated workbook.
// The defaults match the house dashboard look; alternative palettes are a
// different Style value, not a different code path.
type Style struct {
	HeaderColor    string
	SubtitleColor  string
	TableStyle     string
	DataBarColor   string
	CurrencyFormat string
	PercentFormat  string
}

// DefaultStyle returns the standard dashboard styling.
func DefaultStyle() Style {
	return Style{
		HeaderColor:    "2F5597",
		SubtitleColor:  "666666",
		TableStyle:     "TableStyleMedium9",
		DataBarColor:   "638EC6",
		CurrencyFormat: `"$"#,##0.00_-`,
		PercentFormat:  "0.0%",
	}
}
