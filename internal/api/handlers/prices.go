package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hoppa1231/Handbook/internal/store"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// PricesHandler handles supplier price offer endpoints.
type PricesHandler struct {
	store store.Store
}

// NewPricesHandler creates a new PricesHandler.
func NewPricesHandler(s store.Store) *PricesHandler {
	return &PricesHandler{store: s}
}

// OfferResponse is the wire form of an offer. The stored lead time is an
// interval; clients get it as a number of days.
type OfferResponse struct {
	ID           int64    `json:"id"`
	ProductID    int64    `json:"productId"`
	SupplierID   int64    `json:"supplierId"`
	TotalPrice   *float64 `json:"totalPrice"`
	LeadTimeDays *float64 `json:"leadTimeDays"`
	Currency     *string  `json:"currency"`
}

func toOfferResponse(o domain.Offer) OfferResponse {
	resp := OfferResponse{
		ID:         o.ID,
		ProductID:  o.ProductID,
		SupplierID: o.SupplierID,
		TotalPrice: o.TotalPrice,
		Currency:   o.Currency,
	}
	if o.LeadTime != nil {
		days := o.LeadTime.Days()
		resp.LeadTimeDays = &days
	}
	return resp
}

// ListOffersInput is the input for listing offers with optional filters.
type ListOffersInput struct {
	ProductID  int64 `query:"productId"  doc:"Filter by product"  minimum:"0"`
	SupplierID int64 `query:"supplierId" doc:"Filter by supplier" minimum:"0"`
}

// ListOffersOutput is the response for listing offers.
type ListOffersOutput struct {
	Body struct {
		Offers []OfferResponse `json:"offers"`
		Total  int             `json:"total"`
	}
}

// ListOffers returns offers, optionally filtered by product or supplier.
func (h *PricesHandler) ListOffers(
	ctx context.Context,
	input *ListOffersInput,
) (*ListOffersOutput, error) {
	q := store.OfferQuery{}
	if input.ProductID != 0 {
		q.ProductID = &input.ProductID
	}
	if input.SupplierID != 0 {
		q.SupplierID = &input.SupplierID
	}

	offers, err := h.store.ListOffers(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("offer query failed: " + err.Error())
	}

	resp := &ListOffersOutput{}
	resp.Body.Offers = make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		resp.Body.Offers = append(resp.Body.Offers, toOfferResponse(o))
	}
	resp.Body.Total = len(offers)
	return resp, nil
}

// RegisterPriceRoutes registers offer endpoints with the Huma API.
func RegisterPriceRoutes(api huma.API, h *PricesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-supplier-prices",
		Method:      http.MethodGet,
		Path:        "/api/v1/supplier-prices",
		Summary:     "List supplier price offers",
		Description: "Returns offers, optionally filtered by product or supplier.",
		Tags:        []string{"prices"},
	}, h.ListOffers)
}
