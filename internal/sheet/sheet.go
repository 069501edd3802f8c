// Package sheet reads supplier price spreadsheets. The expected layout has
// supplier display names in the second row, column labels in the third, and
// product data from the fourth row on. All cell access is positional; the
// reader does no interpretation beyond trimming and dropping blank rows.
package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet holds the rows of one worksheet split by their role.
type Sheet struct {
	// SupplierRow carries supplier display names aligned over their
	// column groups.
	SupplierRow []string
	// LabelRow carries the column labels, including the group markers.
	LabelRow []string
	// DataRows are the product rows, fully blank rows removed.
	DataRows [][]string
}

// Read opens the workbook at path and reads sheetName. An empty sheetName
// selects the first sheet.
func Read(path, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()
	return readSheet(f, sheetName)
}

// ReadFrom reads a workbook from r. Used by tests and anywhere the file is
// not on disk.
func ReadFrom(r io.Reader, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheetName)
}

func readSheet(f *excelize.File, sheetName string) (*Sheet, error) {
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(rows) < 4 {
		return nil, fmt.Errorf("sheet %q has %d rows, need at least 4 (names, labels, data)", sheetName, len(rows))
	}

	s := &Sheet{
		SupplierRow: rows[1],
		LabelRow:    rows[2],
	}
	for _, row := range rows[3:] {
		if !blankRow(row) {
			s.DataRows = append(s.DataRows, row)
		}
	}
	return s, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Cell returns the trimmed cell at idx, or "" when the row is shorter.
// Spreadsheet rows routinely omit trailing empty cells.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
