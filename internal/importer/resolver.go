package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hoppa1231/Handbook/internal/metrics"
	"github.com/hoppa1231/Handbook/internal/store"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// resolver deduplicates suppliers and products against the store. Its
// caches are scoped to one import run: the store stays authoritative
// across runs, the caches only save repeat lookups within one file.
type resolver struct {
	store store.Store
	log   *slog.Logger

	suppliers map[string]int64
	products  map[domain.ProductKey]int64

	suppliersCreated int
	productsCreated  int
}

func newResolver(st store.Store, log *slog.Logger) *resolver {
	return &resolver{
		store:     st,
		log:       log,
		suppliers: make(map[string]int64),
		products:  make(map[domain.ProductKey]int64),
	}
}

// resolveSupplier returns the identifier for a supplier name, creating the
// supplier on first sight.
func (r *resolver) resolveSupplier(ctx context.Context, name string) (int64, error) {
	if id, ok := r.suppliers[name]; ok {
		return id, nil
	}

	id, found, err := r.store.FindSupplierByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if !found {
		id, err = r.store.CreateSupplier(ctx, &domain.Supplier{Name: name})
		if err != nil {
			return 0, err
		}
		r.suppliersCreated++
		metrics.ImportSuppliersCreated.Inc()
		r.log.Debug("created supplier", "name", name, "id", id)
	}

	r.suppliers[name] = id
	return id, nil
}

// resolveProduct returns the identifier for a product candidate, creating
// the product on first sight. ok is false when the candidate lacks the
// attributes needed for a stable identity.
//
// A create rejected by the store is fatal for the run. The full candidate
// is logged first so the offending row can be found in the source file.
func (r *resolver) resolveProduct(ctx context.Context, p *domain.Product) (int64, bool, error) {
	key, ok := p.Key()
	if !ok {
		return 0, false, nil
	}

	if id, cached := r.products[key]; cached {
		return id, true, nil
	}

	id, found, err := r.store.FindProductByKey(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if !found {
		id, err = r.store.CreateProduct(ctx, p)
		if err != nil {
			r.log.Error("failed to insert product",
				"part_number", p.PartNumber,
				"name", p.Name,
				"brand", strOrEmpty(p.Brand),
				"model", strOrEmpty(p.Model),
				"serial_number", intOrZero(p.SerialNumber),
				"scheme", strOrEmpty(p.Scheme),
				"pos_scheme", strOrEmpty(p.PosScheme),
				"material", strOrEmpty(p.Material),
				"size", strOrEmpty(p.Size),
				"comment", strOrEmpty(p.Comment),
				"error", err,
			)
			return 0, false, fmt.Errorf("inserting product %q: %w", p.PartNumber, err)
		}
		r.productsCreated++
		metrics.ImportProductsCreated.Inc()
	}

	r.products[key] = id
	return id, true, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrZero(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
