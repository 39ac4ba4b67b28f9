package well

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteWorkbook writes t as a single-sheet Excel workbook named after the
// well. The first column is the depth index; missing samples are left blank.
func WriteWorkbook(w io.Writer, wellName string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(wellName)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := t.Columns()
	header := make([]interface{}, 0, len(cols)+1)
	header = append(header, t.IndexName)
	for _, c := range cols {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	data := make([]Samples, len(cols))
	for i, c := range cols {
		data[i], _ = t.Column(c)
	}
	for r := 0; r < t.Len(); r++ {
		row := make([]interface{}, 0, len(cols)+1)
		row = append(row, cellValue(t.Index[r]))
		for _, col := range data {
			row = append(row, cellValue(col[r]))
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	_, err := f.WriteTo(w)
	return err
}

func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// sheetName strips characters Excel rejects and truncates to 31 runes.
func sheetName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(name, "'"))
	if clean == "" {
		clean = "Well"
	}
	if runes := []rune(clean); len(runes) > maxSheetName {
		clean = string(runes[:maxSheetName])
	}
	return clean
}
