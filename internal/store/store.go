// Package store defines the datastore abstraction for the handbook service.
// The import engine and the HTTP handlers depend on the Store interface,
// never on a concrete implementation, so both can be tested without a
// running database.
package store

import (
	"context"
	"errors"

	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// OfferQuery defines optional filters for offer queries.
type OfferQuery struct {
	ProductID  *int64
	SupplierID *int64
}

// Store defines all data access operations for the handbook service.
//
// The lookup-or-create pair used by the import engine
// (Find*/Create*) is not atomic: two concurrent imports can both observe a
// miss and both insert. The service assumes at most one import runs at a
// time; the unique constraints make the loser fail loudly rather than
// duplicate silently.
type Store interface {
	// Import contract
	FindSupplierByName(ctx context.Context, name string) (int64, bool, error)
	CreateSupplier(ctx context.Context, s *domain.Supplier) (int64, error)
	FindProductByKey(ctx context.Context, key domain.ProductKey) (int64, bool, error)
	CreateProduct(ctx context.Context, p *domain.Product) (int64, error)
	// BulkUpsertOffers writes all offers in one transaction. On conflict
	// (product_id, supplier_id), total_price and currency are replaced
	// unconditionally while lead_time keeps the stored value when the
	// incoming one is absent.
	BulkUpsertOffers(ctx context.Context, offers []domain.Offer) error

	// CRUD surface
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
	ListOffers(ctx context.Context, q OfferQuery) ([]domain.Offer, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
