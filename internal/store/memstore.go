package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// MemStore is an in-memory Store implementation. It mirrors the postgres
// semantics closely enough for handler and import-engine tests: unique
// supplier names, the (part_number, name, brand) product identity with an
// empty brand standing in for NULL, and the merge rule on offer conflicts.
type MemStore struct {
	mu sync.Mutex

	nextProductID  int64
	nextSupplierID int64
	nextOfferID    int64

	products   map[int64]domain.Product
	suppliers  map[int64]domain.Supplier
	offers     map[int64]domain.Offer
	categories map[string]domain.Category
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		products:   make(map[int64]domain.Product),
		suppliers:  make(map[int64]domain.Supplier),
		offers:     make(map[int64]domain.Offer),
		categories: make(map[string]domain.Category),
	}
}

func (m *MemStore) FindSupplierByName(_ context.Context, name string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.suppliers {
		if s.Name == name {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (m *MemStore) CreateSupplier(_ context.Context, s *domain.Supplier) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.suppliers {
		if existing.Name == s.Name {
			return 0, fmt.Errorf("creating supplier %q: duplicate name", s.Name)
		}
	}
	m.nextSupplierID++
	sup := *s
	sup.ID = m.nextSupplierID
	m.suppliers[sup.ID] = sup
	return sup.ID, nil
}

func (m *MemStore) FindProductByKey(_ context.Context, key domain.ProductKey) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.findProductLocked(key)
	return id, ok, nil
}

func (m *MemStore) findProductLocked(key domain.ProductKey) (int64, bool) {
	for id, p := range m.products {
		brand := ""
		if p.Brand != nil {
			brand = *p.Brand
		}
		if p.PartNumber == key.PartNumber && p.Name == key.Name && brand == key.Brand {
			return id, true
		}
	}
	return 0, false
}

func (m *MemStore) CreateProduct(_ context.Context, p *domain.Product) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := domain.ProductKey{PartNumber: p.PartNumber, Name: p.Name}
	if p.Brand != nil {
		key.Brand = *p.Brand
	}
	if _, exists := m.findProductLocked(key); exists {
		return 0, fmt.Errorf("creating product %q: duplicate identity", p.PartNumber)
	}
	m.nextProductID++
	prod := *p
	prod.ID = m.nextProductID
	m.products[prod.ID] = prod
	return prod.ID, nil
}

func (m *MemStore) BulkUpsertOffers(_ context.Context, offers []domain.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range offers {
		if existing, ok := m.findOfferLocked(o.ProductID, o.SupplierID); ok {
			existing.TotalPrice = o.TotalPrice
			existing.Currency = o.Currency
			if o.LeadTime != nil {
				existing.LeadTime = o.LeadTime
			}
			m.offers[existing.ID] = *existing
			continue
		}
		m.nextOfferID++
		o.ID = m.nextOfferID
		m.offers[o.ID] = o
	}
	return nil
}

func (m *MemStore) findOfferLocked(productID, supplierID int64) (*domain.Offer, bool) {
	for id, o := range m.offers {
		if o.ProductID == productID && o.SupplierID == supplierID {
			o := m.offers[id]
			return &o, true
		}
	}
	return nil, false
}

func (m *MemStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *MemStore) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemStore) DeleteProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	for oid, o := range m.offers {
		if o.ProductID == id {
			delete(m.offers, oid)
		}
	}
	return nil
}

func (m *MemStore) ListSuppliers(_ context.Context) ([]domain.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	suppliers := make([]domain.Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		suppliers = append(suppliers, s)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return suppliers, nil
}

func (m *MemStore) DeleteSupplier(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[id]; !ok {
		return ErrNotFound
	}
	delete(m.suppliers, id)
	for oid, o := range m.offers {
		if o.SupplierID == id {
			delete(m.offers, oid)
		}
	}
	return nil
}

func (m *MemStore) ListOffers(_ context.Context, q OfferQuery) ([]domain.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var offers []domain.Offer
	for _, o := range m.offers {
		if q.ProductID != nil && o.ProductID != *q.ProductID {
			continue
		}
		if q.SupplierID != nil && o.SupplierID != *q.SupplierID {
			continue
		}
		offers = append(offers, o)
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].ID < offers[j].ID })
	return offers, nil
}

func (m *MemStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Code < categories[j].Code })
	return categories, nil
}

// AddCategory seeds a category. Categories only arrive through migrations
// or fixtures, never through the import flow.
func (m *MemStore) AddCategory(c domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.Code] = c
}

func (m *MemStore) Migrate(context.Context) error { return nil }

func (m *MemStore) Ping(context.Context) error { return nil }
