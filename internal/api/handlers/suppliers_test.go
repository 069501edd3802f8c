package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoppa1231/Handbook/internal/api/handlers"
	"github.com/hoppa1231/Handbook/internal/store"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

func TestSuppliersHandler_List(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	_, err := st.CreateSupplier(context.Background(), &domain.Supplier{Name: "Бета"})
	require.NoError(t, err)
	_, err = st.CreateSupplier(context.Background(), &domain.Supplier{Name: "ACME"})
	require.NoError(t, err)

	_, api := humatest.New(t)
	handlers.RegisterSupplierRoutes(api, handlers.NewSuppliersHandler(st))

	resp := api.Get("/api/v1/suppliers")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":2`)
	// Sorted by name: ACME first.
	body := resp.Body.String()
	assert.Less(t, strings.Index(body, "ACME"), strings.Index(body, "Бета"))
}

func TestSuppliersHandler_Create(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()

	_, api := humatest.New(t)
	handlers.RegisterSupplierRoutes(api, handlers.NewSuppliersHandler(st))

	resp := api.Post("/api/v1/suppliers", map[string]any{
		"name":    "ACME",
		"website": "https://acme.example",
		"rating":  4.5,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"ACME"`)
	assert.Contains(t, resp.Body.String(), `"rating":4.5`)

	t.Run("duplicate name returns 409", func(t *testing.T) {
		resp := api.Post("/api/v1/suppliers", map[string]any{"name": "ACME"})
		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), `already exists`)
	})

	t.Run("missing name returns 422", func(t *testing.T) {
		resp := api.Post("/api/v1/suppliers", map[string]any{"rating": 3.0})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestSuppliersHandler_Delete(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	id, err := st.CreateSupplier(context.Background(), &domain.Supplier{Name: "ACME"})
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	_, api := humatest.New(t)
	handlers.RegisterSupplierRoutes(api, handlers.NewSuppliersHandler(st))

	resp := api.Delete("/api/v1/suppliers/1")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Delete("/api/v1/suppliers/1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
