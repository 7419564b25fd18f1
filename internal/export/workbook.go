package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the comparison sheet.
const SheetName = "Analyse"

// ErrNoBuildings is returned when there is nothing to export.
var ErrNoBuildings = errors.New("no buildings to export")

type styles struct {
	header, label, labelHighlight, value, valueHighlight int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{{Type: "bottom", Color: "334155", Style: 1}}
	highlight := excelize.Fill{Type: "pattern", Color: []string{"1E3A5F"}, Pattern: 1}
	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Family: "Arial", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"2563EB"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		{Font: &excelize.Font{Color: "94A3B8", Family: "Arial", Size: 10}, Border: border},
		{Font: &excelize.Font{Bold: true, Color: "94A3B8", Family: "Arial", Size: 10}, Border: border, Fill: highlight},
		{Font: &excelize.Font{Family: "Arial", Size: 10}, Border: border, Alignment: &excelize.Alignment{Horizontal: "right"}},
		{Font: &excelize.Font{Family: "Arial", Size: 10}, Border: border, Alignment: &excelize.Alignment{Horizontal: "right"}, Fill: highlight},
	}

	ids := make([]int, len(defs))
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, fmt.Errorf("failed to create style: %w", err)
		}
		ids[i] = id
	}
	return styles{header: ids[0], label: ids[1], labelHighlight: ids[2], value: ids[3], valueHighlight: ids[4]}, nil
}

// Workbook renders the comparison of columns as a spreadsheet.
func Workbook(columns []Column) (*excelize.File, error) {
	if len(columns) == 0 {
		return nil, ErrNoBuildings
	}

	f := excelize.NewFile()
	if err := render(f, columns); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func render(f *excelize.File, columns []Column) error {
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(columns) + 1)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(SheetName, "A1", ""); err != nil {
		return err
	}
	for j, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		if err := f.SetCellValue(SheetName, cell, c.Building.Name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", st.header); err != nil {
		return err
	}

	for i, row := range Rows(columns) {
		r := i + 2
		labelStyle, valueStyle := st.label, st.value
		if row.Highlight {
			labelStyle, valueStyle = st.labelHighlight, st.valueHighlight
		}

		labelCell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetCellValue(SheetName, labelCell, row.Label); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, labelCell, labelCell, labelStyle); err != nil {
			return err
		}

		for j, v := range row.Values {
			cell, _ := excelize.CoordinatesToCellName(j+2, r)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
		first, _ := excelize.CoordinatesToCellName(2, r)
		last, _ := excelize.CoordinatesToCellName(len(columns)+1, r)
		if err := f.SetCellStyle(SheetName, first, last, valueStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", lastCol, 22); err != nil {
		return err
	}
	return nil
}

// Write renders the workbook straight to w.
func Write(w io.Writer, columns []Column) error {
	f, err := Workbook(columns)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
