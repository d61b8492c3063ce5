package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	titleRow  = 1
	periodRow = 2
	headerRow = 4
)

// CellFillFunc returns the RGB hex fill for a data cell, or "" for none.
type CellFillFunc func(header string, value interface{}) string

// XLSXExporter renders datasets into a single styled worksheet.
type XLSXExporter struct{}

// NewXLSXExporter constructs an xlsx exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render lays out a merged title and period row, a styled header, bordered
// data rows and a trailing summary row separated by a blank line.
func (e *XLSXExporter) Render(data Dataset, sheet string, fill CellFillFunc) ([]byte, error) {
	if err := data.validate("xlsx"); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(data.Headers))
	if err != nil {
		return nil, fmt.Errorf("resolve last column: %w", err)
	}

	if err := writeBanner(f, sheet, lastCol, titleRow, data.Title, styles.title); err != nil {
		return nil, err
	}
	if err := writeBanner(f, sheet, lastCol, periodRow, data.Subtitle, styles.period); err != nil {
		return nil, err
	}

	if err := writeRow(f, sheet, headerRow, toRow(data.Headers)); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, cell(1, headerRow), cell(len(data.Headers), headerRow), styles.header); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	rowNum := headerRow
	for _, row := range data.Rows {
		rowNum++
		if err := writeRow(f, sheet, rowNum, row); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell(1, rowNum), cell(len(row), rowNum), styles.body); err != nil {
			return nil, fmt.Errorf("style row %d: %w", rowNum, err)
		}
		if fill == nil {
			continue
		}
		for i, value := range row {
			colour := fill(data.Headers[i], value)
			if colour == "" {
				continue
			}
			styleID, err := styles.filled(f, colour)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheet, cell(i+1, rowNum), cell(i+1, rowNum), styleID); err != nil {
				return nil, fmt.Errorf("fill cell: %w", err)
			}
		}
	}

	if len(data.Summary) > 0 {
		rowNum += 2
		if err := writeRow(f, sheet, rowNum, data.Summary); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell(2, rowNum), cell(2, rowNum), styles.bold); err != nil {
			return nil, fmt.Errorf("style summary: %w", err)
		}
	}

	for i, width := range data.Widths {
		if i >= len(data.Headers) || width <= 0 {
			continue
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title  int
	period int
	header int
	body   int
	bold   int
	fills  map[string]int
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func newSheetStyles(f *excelize.File) (*sheetStyles, error) {
	s := &sheetStyles{fills: make(map[string]int)}
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "2F5597"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	if s.period, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return nil, fmt.Errorf("create period style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if s.body, err = f.NewStyle(&excelize.Style{Border: thinBorders()}); err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, fmt.Errorf("create summary style: %w", err)
	}
	return s, nil
}

func (s *sheetStyles) filled(f *excelize.File, colour string) (int, error) {
	if id, ok := s.fills[colour]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{colour}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return 0, fmt.Errorf("create fill style: %w", err)
	}
	s.fills[colour] = id
	return id, nil
}

func writeBanner(f *excelize.File, sheet, lastCol string, row int, text string, style int) error {
	first := cell(1, row)
	last := fmt.Sprintf("%s%d", lastCol, row)
	if err := f.MergeCell(sheet, first, last); err != nil {
		return fmt.Errorf("merge row %d: %w", row, err)
	}
	if err := f.SetCellValue(sheet, first, text); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values Row) error {
	slice := []interface{}(values)
	if err := f.SetSheetRow(sheet, cell(1, row), &slice); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toRow(values []string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
