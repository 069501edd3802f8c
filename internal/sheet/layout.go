package sheet

import (
	"errors"
	"strings"
)

// Supplier column groups start after the fixed product columns and are
// three columns wide: a labeled marker column followed by price and lead
// time.
const (
	supplierGroupStart = 12
	supplierGroupWidth = 3
)

// Group markers appear in Cyrillic ("ПОСТАВЩИК") or Latin transliteration.
const (
	markerCyrillic = "П"
	markerLatin    = "P"
)

// ErrNoSupplierColumns is returned when the header yields no supplier
// groups at all, meaning the file does not match the expected template.
var ErrNoSupplierColumns = errors.New("no supplier column groups found in header")

// SupplierColumn describes one supplier's column group.
type SupplierColumn struct {
	Name     string
	PriceCol int
	LeadCol  int
}

// ExtractLayout scans the two header rows for supplier column groups.
// A group is accepted only when its label cell starts with the group
// marker and the aligned supplier name cell is non-blank. Rejected groups
// are skipped whole; the scan always advances by the full group width so
// later groups stay aligned.
func ExtractLayout(supplierRow, labelRow []string) ([]SupplierColumn, error) {
	var layout []SupplierColumn
	for idx := supplierGroupStart; idx < len(labelRow); idx += supplierGroupWidth {
		label := Cell(labelRow, idx)
		if !strings.HasPrefix(label, markerCyrillic) && !strings.HasPrefix(label, markerLatin) {
			continue
		}
		name := Cell(supplierRow, idx)
		if name == "" {
			continue
		}
		layout = append(layout, SupplierColumn{
			Name:     name,
			PriceCol: idx + 1,
			LeadCol:  idx + 2,
		})
	}
	if len(layout) == 0 {
		return nil, ErrNoSupplierColumns
	}
	return layout, nil
}
