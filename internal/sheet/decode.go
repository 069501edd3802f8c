package sheet

import (
	"github.com/hoppa1231/Handbook/pkg/parse"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// Fixed product column offsets. Column 0 is a row number in the source
// files and is ignored, as is the direction column.
const (
	colBrand      = 2
	colPartNumber = 3
	colName       = 4
	colModel      = 5
	colSerial     = 6
	colMaterial   = 7
	colSize       = 8
	colScheme     = 9
	colPosScheme  = 10
	colComment    = 11
)

// OfferCells holds the raw price and lead-time cells for one supplier on
// one data row. Parsing is left to the caller so a decode stays cheap for
// rows that end up skipped.
type OfferCells struct {
	Supplier SupplierColumn
	Price    string
	LeadTime string
}

// DecodeRow maps one data row into a candidate product and the raw offer
// cells for each supplier group. It returns ok=false when the row lacks a
// product name or a usable part number; such rows are separator or comment
// rows and contribute nothing downstream.
func DecodeRow(row []string, layout []SupplierColumn) (*domain.Product, []OfferCells, bool) {
	name := Cell(row, colName)
	partNumber := parse.PartNumber(Cell(row, colPartNumber))
	if name == "" || partNumber == "" {
		return nil, nil, false
	}

	p := &domain.Product{
		PartNumber: partNumber,
		Name:       name,
		Brand:      optional(row, colBrand),
		Model:      optional(row, colModel),
		Scheme:     optional(row, colScheme),
		PosScheme:  optional(row, colPosScheme),
		Material:   optional(row, colMaterial),
		Size:       optional(row, colSize),
		Comment:    optional(row, colComment),
	}
	if serial, ok := parse.SerialNumber(Cell(row, colSerial)); ok {
		p.SerialNumber = &serial
	}

	offers := make([]OfferCells, 0, len(layout))
	for _, sc := range layout {
		offers = append(offers, OfferCells{
			Supplier: sc,
			Price:    Cell(row, sc.PriceCol),
			LeadTime: Cell(row, sc.LeadCol),
		})
	}
	return p, offers, true
}

func optional(row []string, idx int) *string {
	v := Cell(row, idx)
	if v == "" {
		return nil
	}
	return &v
}
