package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Preview describes a selected batch file before it is uploaded.
// Rows counts data rows (the header row is excluded); -1 means the count is
// not available for the format.
type Preview struct {
	Name string
	Size int64
	Rows int
}

// PreviewFile validates the file at path and, where the format allows,
// counts its data rows. Nothing is sent to the server.
func PreviewFile(path string) (*Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("inspect file: %w", err)
	}
	if err := ValidateFile(info.Name(), info.Size()); err != nil {
		return nil, err
	}

	p := &Preview{Name: info.Name(), Size: info.Size(), Rows: -1}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err := countCSVRows(path)
		if err != nil {
			return nil, err
		}
		p.Rows = rows
	case ".xlsx":
		rows, err := countXLSXRows(path)
		if err != nil {
			return nil, err
		}
		p.Rows = rows
	}
	// .xls: legacy format, row count stays unknown.

	return p, nil
}

func countCSVRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	count := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv: %w", err)
		}
		count++
	}

	return dataRows(count), nil
}

func countXLSXRows(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("read workbook rows: %w", err)
	}
	return dataRows(len(rows)), nil
}

// dataRows removes the header row from a total row count.
func dataRows(total int) int {
	if total <= 1 {
		return 0
	}
	return total - 1
}
