package store

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// buildOffersQuery appends WHERE clauses for the filters set on q.
func buildOffersQuery(q OfferQuery) (string, pgx.NamedArgs) {
	var (
		sb    strings.Builder
		conds []string
		args  = pgx.NamedArgs{}
	)
	sb.WriteString(queryListOffers)

	if q.ProductID != nil {
		conds = append(conds, "product_id = @product_id")
		args["product_id"] = *q.ProductID
	}
	if q.SupplierID != nil {
		conds = append(conds, "supplier_id = @supplier_id")
		args["supplier_id"] = *q.SupplierID
	}
	if len(conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString("\nORDER BY id;")
	return sb.String(), args
}
