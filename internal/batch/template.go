package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dkaras/relocost/internal/common"
)

// TemplateColumns is the header row the server expects in an uploaded
// spreadsheet, in order.
var TemplateColumns = []string{
	"employee_name",
	"home_country",
	"host_country",
	"monthly_salary",
	"duration_months",
	"daily_allowance",
	"working_days_per_month",
}

var templateSampleRow = []any{"Jane Smith", "Finland", "Brazil", 7000, 6, 72, 22}

const templateSheet = "Sheet1"

// WriteTemplate writes a batch upload template to path, picking the format
// from the extension (.csv or .xlsx).
func WriteTemplate(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create template: %w", err)
		}
		if err := WriteTemplateCSV(f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return WriteTemplateXLSX(path)
	default:
		return fmt.Errorf("%w: template supports .csv and .xlsx", common.ErrUnsupportedFileType)
	}
}

// WriteTemplateCSV writes the header and one sample row as CSV.
func WriteTemplateCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(TemplateColumns); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}

	sample := make([]string, len(templateSampleRow))
	for i, v := range templateSampleRow {
		sample[i] = fmt.Sprint(v)
	}
	if err := cw.Write(sample); err != nil {
		return fmt.Errorf("write template sample row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteTemplateXLSX writes the header and one sample row as a workbook.
func WriteTemplateXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, col := range TemplateColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("template header cell: %w", err)
		}
		if err := f.SetCellValue(templateSheet, cell, col); err != nil {
			return fmt.Errorf("set template header: %w", err)
		}
	}

	for i, v := range templateSampleRow {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return fmt.Errorf("template sample cell: %w", err)
		}
		if err := f.SetCellValue(templateSheet, cell, v); err != nil {
			return fmt.Errorf("set template sample: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}
