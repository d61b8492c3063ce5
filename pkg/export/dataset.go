package export

import (
	"fmt"
	"strconv"
)

// Row holds one record with values positioned to match Dataset.Headers.
type Row []interface{}

// Dataset defines tabular export content shared by every renderer.
type Dataset struct {
	Title    string
	Subtitle string
	Headers  []string
	Widths   []float64
	Rows     []Row
	Summary  Row
}

func (d Dataset) validate(format string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", format)
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("%s row %d has %d values, want %d", format, i, len(row), len(d.Headers))
		}
	}
	return nil
}

// formatValue renders a cell for text-based outputs.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
