package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hoppa1231/Handbook/internal/store"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// ProductsHandler handles product and category endpoints.
type ProductsHandler struct {
	store store.Store
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s store.Store) *ProductsHandler {
	return &ProductsHandler{store: s}
}

// --- Input/Output types ---

// ListProductsOutput is the response for listing products.
type ListProductsOutput struct {
	Body struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
	}
}

// GetProductInput is the input for getting a single product.
type GetProductInput struct {
	ID int64 `path:"id" doc:"Product identifier"`
}

// GetProductOutput is the response for getting a single product.
type GetProductOutput struct {
	Body domain.Product
}

// CreateProductInput is the request body for creating a product.
type CreateProductInput struct {
	Body struct {
		PartNumber   string  `json:"partNumber" minLength:"1" doc:"Manufacturer part number"`
		Name         string  `json:"name" minLength:"1" doc:"Product name"`
		Brand        *string `json:"brand,omitempty"`
		Model        *string `json:"model,omitempty"`
		SerialNumber *int    `json:"serialNumber,omitempty"`
		Scheme       *string `json:"scheme,omitempty"`
		PosScheme    *string `json:"posScheme,omitempty"`
		Material     *string `json:"material,omitempty"`
		Size         *string `json:"size,omitempty"`
		Comment      *string `json:"comment,omitempty"`
		Category     *string `json:"category,omitempty" doc:"Category code; must already exist"`
	}
}

// CreateProductOutput is the response for creating a product.
type CreateProductOutput struct {
	Body domain.Product
}

// DeleteProductInput is the input for deleting a product.
type DeleteProductInput struct {
	ID int64 `path:"id" doc:"Product identifier"`
}

// DeleteProductOutput is the empty response for a delete.
type DeleteProductOutput struct{}

// ListCategoriesOutput is the response for listing product categories.
type ListCategoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories"`
	}
}

// --- Handlers ---

// ListProducts returns all products with their category descriptions.
func (h *ProductsHandler) ListProducts(
	ctx context.Context,
	_ *struct{},
) (*ListProductsOutput, error) {
	products, err := h.store.ListProducts(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("product query failed: " + err.Error())
	}

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = len(products)
	return resp, nil
}

// GetProduct returns a single product by ID.
func (h *ProductsHandler) GetProduct(
	ctx context.Context,
	input *GetProductInput,
) (*GetProductOutput, error) {
	product, err := h.store.GetProduct(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("product not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("product query failed: " + err.Error())
	}
	return &GetProductOutput{Body: *product}, nil
}

// CreateProduct creates a product after validating its identity fields and
// category reference.
func (h *ProductsHandler) CreateProduct(
	ctx context.Context,
	input *CreateProductInput,
) (*CreateProductOutput, error) {
	partNumber := strings.TrimSpace(input.Body.PartNumber)
	if partNumber == "" {
		return nil, huma.Error400BadRequest("partNumber is required")
	}

	if input.Body.Category != nil && *input.Body.Category != "" {
		exists, err := h.categoryExists(ctx, *input.Body.Category)
		if err != nil {
			return nil, huma.Error500InternalServerError("category query failed: " + err.Error())
		}
		if !exists {
			return nil, huma.Error400BadRequest(
				fmt.Sprintf("category %q does not exist, seed it first or use another code", *input.Body.Category))
		}
	}

	p := &domain.Product{
		PartNumber:   partNumber,
		Name:         input.Body.Name,
		Brand:        input.Body.Brand,
		Model:        input.Body.Model,
		SerialNumber: input.Body.SerialNumber,
		Scheme:       input.Body.Scheme,
		PosScheme:    input.Body.PosScheme,
		Material:     input.Body.Material,
		Size:         input.Body.Size,
		Comment:      input.Body.Comment,
		Category:     input.Body.Category,
	}

	key, _ := p.Key()
	if _, found, err := h.store.FindProductByKey(ctx, key); err != nil {
		return nil, huma.Error500InternalServerError("product query failed: " + err.Error())
	} else if found {
		return nil, huma.Error409Conflict(
			fmt.Sprintf("product %q with this name and brand already exists", partNumber))
	}

	id, err := h.store.CreateProduct(ctx, p)
	if err != nil {
		return nil, huma.Error500InternalServerError("product insert failed: " + err.Error())
	}

	created, err := h.store.GetProduct(ctx, id)
	if err != nil {
		return nil, huma.Error500InternalServerError("product query failed: " + err.Error())
	}
	return &CreateProductOutput{Body: *created}, nil
}

func (h *ProductsHandler) categoryExists(ctx context.Context, code string) (bool, error) {
	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// DeleteProduct removes a product and its offers.
func (h *ProductsHandler) DeleteProduct(
	ctx context.Context,
	input *DeleteProductInput,
) (*DeleteProductOutput, error) {
	err := h.store.DeleteProduct(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("product not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("product delete failed: " + err.Error())
	}
	return &DeleteProductOutput{}, nil
}

// ListCategories returns the known product categories.
func (h *ProductsHandler) ListCategories(
	ctx context.Context,
	_ *struct{},
) (*ListCategoriesOutput, error) {
	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("category query failed: " + err.Error())
	}

	resp := &ListCategoriesOutput{}
	resp.Body.Categories = categories
	return resp, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns all products with their category descriptions.",
		Tags:        []string{"products"},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Method:        http.MethodPost,
		Path:          "/api/v1/products",
		Summary:       "Create a product",
		Description:   "Creates a product. The category, when given, must already exist.",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusConflict},
	}, h.CreateProduct)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get a product by ID",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-product",
		Method:        http.MethodDelete,
		Path:          "/api/v1/products/{id}",
		Summary:       "Delete a product",
		Description:   "Removes a product and all offers referencing it.",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteProduct)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List product categories",
		Tags:        []string{"products"},
	}, h.ListCategories)
}
