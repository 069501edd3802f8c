package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hoppa1231/Handbook/internal/store"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// SuppliersHandler handles supplier endpoints.
type SuppliersHandler struct {
	store store.Store
}

// NewSuppliersHandler creates a new SuppliersHandler.
func NewSuppliersHandler(s store.Store) *SuppliersHandler {
	return &SuppliersHandler{store: s}
}

// ListSuppliersOutput is the response for listing suppliers.
type ListSuppliersOutput struct {
	Body struct {
		Suppliers []domain.Supplier `json:"suppliers"`
		Total     int               `json:"total"`
	}
}

// CreateSupplierInput is the request body for creating a supplier.
type CreateSupplierInput struct {
	Body struct {
		Name    string   `json:"name" minLength:"1" doc:"Supplier display name, unique"`
		Address *string  `json:"address,omitempty"`
		Contact *string  `json:"contact,omitempty"`
		Website *string  `json:"website,omitempty"`
		Rating  *float64 `json:"rating,omitempty"`
	}
}

// CreateSupplierOutput is the response for creating a supplier.
type CreateSupplierOutput struct {
	Body domain.Supplier
}

// DeleteSupplierInput is the input for deleting a supplier.
type DeleteSupplierInput struct {
	ID int64 `path:"id" doc:"Supplier identifier"`
}

// DeleteSupplierOutput is the empty response for a delete.
type DeleteSupplierOutput struct{}

// ListSuppliers returns all suppliers ordered by name.
func (h *SuppliersHandler) ListSuppliers(
	ctx context.Context,
	_ *struct{},
) (*ListSuppliersOutput, error) {
	suppliers, err := h.store.ListSuppliers(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("supplier query failed: " + err.Error())
	}

	resp := &ListSuppliersOutput{}
	resp.Body.Suppliers = suppliers
	resp.Body.Total = len(suppliers)
	return resp, nil
}

// CreateSupplier creates a supplier. Names are unique, so posting an
// existing name is a conflict rather than a second row.
func (h *SuppliersHandler) CreateSupplier(
	ctx context.Context,
	input *CreateSupplierInput,
) (*CreateSupplierOutput, error) {
	if _, found, err := h.store.FindSupplierByName(ctx, input.Body.Name); err != nil {
		return nil, huma.Error500InternalServerError("supplier query failed: " + err.Error())
	} else if found {
		return nil, huma.Error409Conflict(
			fmt.Sprintf("supplier %q already exists", input.Body.Name))
	}

	s := &domain.Supplier{
		Name:    input.Body.Name,
		Address: input.Body.Address,
		Contact: input.Body.Contact,
		Website: input.Body.Website,
		Rating:  input.Body.Rating,
	}
	id, err := h.store.CreateSupplier(ctx, s)
	if err != nil {
		return nil, huma.Error500InternalServerError("supplier insert failed: " + err.Error())
	}
	s.ID = id
	return &CreateSupplierOutput{Body: *s}, nil
}

// DeleteSupplier removes a supplier and its offers.
func (h *SuppliersHandler) DeleteSupplier(
	ctx context.Context,
	input *DeleteSupplierInput,
) (*DeleteSupplierOutput, error) {
	err := h.store.DeleteSupplier(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("supplier not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("supplier delete failed: " + err.Error())
	}
	return &DeleteSupplierOutput{}, nil
}

// RegisterSupplierRoutes registers supplier endpoints with the Huma API.
func RegisterSupplierRoutes(api huma.API, h *SuppliersHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-suppliers",
		Method:      http.MethodGet,
		Path:        "/api/v1/suppliers",
		Summary:     "List suppliers",
		Tags:        []string{"suppliers"},
	}, h.ListSuppliers)

	huma.Register(api, huma.Operation{
		OperationID:   "create-supplier",
		Method:        http.MethodPost,
		Path:          "/api/v1/suppliers",
		Summary:       "Create a supplier",
		Tags:          []string{"suppliers"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict},
	}, h.CreateSupplier)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-supplier",
		Method:        http.MethodDelete,
		Path:          "/api/v1/suppliers/{id}",
		Summary:       "Delete a supplier",
		Description:   "Removes a supplier and all offers referencing it.",
		Tags:          []string{"suppliers"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteSupplier)
}
