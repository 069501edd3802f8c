// Package domain defines the core business types for the handbook service.
package domain

import (
	"fmt"
)

// LeadUnit is the unit a supplier quoted a lead time in.
type LeadUnit string

// Lead time units.
const (
	LeadDays  LeadUnit = "days"
	LeadWeeks LeadUnit = "weeks"
)

// LeadTime is a supplier delivery estimate. It keeps the unit the sheet
// quoted; values read back from storage are normalized to days.
type LeadTime struct {
	Value int      `json:"value"`
	Unit  LeadUnit `json:"unit"`
}

// Days returns the lead time in days.
func (lt LeadTime) Days() float64 {
	if lt.Unit == LeadWeeks {
		return float64(lt.Value) * 7
	}
	return float64(lt.Value)
}

// String renders the lead time as a PostgreSQL interval literal,
// e.g. "5 days" or "2 weeks".
func (lt LeadTime) String() string {
	return fmt.Sprintf("%d %s", lt.Value, lt.Unit)
}

// Product is a catalog entry. The identity key is
// (PartNumber, Name, Brand) with Brand allowed to be absent.
type Product struct {
	ID           int64   `json:"id"           db:"id"`
	PartNumber   string  `json:"partNumber"   db:"part_number"`
	Name         string  `json:"name"         db:"name"`
	Brand        *string `json:"brand"        db:"brand"`
	Model        *string `json:"model"        db:"model"`
	SerialNumber *int    `json:"serialNumber" db:"serial_number"`
	Scheme       *string `json:"scheme"       db:"scheme"`
	PosScheme    *string `json:"posScheme"    db:"pos_scheme"`
	Material     *string `json:"material"     db:"material"`
	Size         *string `json:"size"         db:"size"`
	Comment      *string `json:"comment"      db:"comment"`
	Category     *string `json:"category"     db:"category"`

	// Joined from product_categories on reads; never written.
	CategoryDescription *string `json:"categoryDescription,omitempty" db:"category_description"`
}

// ProductKey is the minimal attribute tuple deciding whether two product
// records denote the same real-world part. Brand is "" when absent, which
// matches the store's null-safe brand comparison.
type ProductKey struct {
	PartNumber string
	Name       string
	Brand      string
}

// Key returns the product's identity key and whether one can be formed.
// Products without a part number or name have no stable identity.
func (p *Product) Key() (ProductKey, bool) {
	if p.PartNumber == "" || p.Name == "" {
		return ProductKey{}, false
	}
	k := ProductKey{PartNumber: p.PartNumber, Name: p.Name}
	if p.Brand != nil {
		k.Brand = *p.Brand
	}
	return k, true
}

// Supplier is a vendor that quotes prices. The identity key is the exact
// name; contact metadata is only ever filled in by hand, not by import.
type Supplier struct {
	ID      int64    `json:"id"      db:"id"`
	Name    string   `json:"name"    db:"name"`
	Address *string  `json:"address" db:"address"`
	Contact *string  `json:"contact" db:"contact"`
	Website *string  `json:"website" db:"website"`
	Rating  *float64 `json:"rating"  db:"rating"`
}

// Offer is a priced, lead-timed relationship between exactly one product
// and one supplier. At most one offer exists per (ProductID, SupplierID).
type Offer struct {
	ID         int64     `json:"id"         db:"id"`
	ProductID  int64     `json:"productId"  db:"product_id"`
	SupplierID int64     `json:"supplierId" db:"supplier_id"`
	TotalPrice *float64  `json:"totalPrice" db:"total_price"`
	LeadTime   *LeadTime `json:"-"          db:"lead_time"`
	Currency   *string   `json:"currency"   db:"currency"`
}

// Category is a product category code with a human description.
type Category struct {
	Code        string `json:"code"        db:"code"`
	Description string `json:"description" db:"description"`
}
