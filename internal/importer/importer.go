// Package importer turns a supplier price spreadsheet into normalized
// products, suppliers, and offers. Re-running an import on the same or an
// updated file converges: entities are deduplicated against the store and
// offers are merged rather than duplicated.
package importer

import (
	"context"
	"log/slog"
	"time"

	"github.com/hoppa1231/Handbook/internal/metrics"
	"github.com/hoppa1231/Handbook/internal/sheet"
	"github.com/hoppa1231/Handbook/internal/store"
	"github.com/hoppa1231/Handbook/pkg/parse"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// Options tunes one import run.
type Options struct {
	// SheetName selects the worksheet; empty means the first sheet.
	SheetName string
	// DefaultCurrency, when non-empty, is stamped on every offer.
	DefaultCurrency string
}

// Summary reports what one import run did.
type Summary struct {
	RowsProcessed    int
	RowsSkipped      int
	OffersUpserted   int
	SuppliersCreated int
	ProductsCreated  int
}

// Importer runs spreadsheet imports against a store. Runs are sequential;
// running two imports concurrently against the same store is not safe
// because entity resolution is lookup-then-create.
type Importer struct {
	store store.Store
	log   *slog.Logger
	opts  Options
}

// New creates an Importer.
func New(st store.Store, log *slog.Logger, opts Options) *Importer {
	return &Importer{store: st, log: log, opts: opts}
}

// ImportFile reads the workbook at path and runs the import.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Summary, error) {
	s, err := sheet.Read(path, i.opts.SheetName)
	if err != nil {
		return nil, err
	}
	return i.Run(ctx, s)
}

type offerKey struct {
	productID  int64
	supplierID int64
}

// Run imports one parsed sheet. The layout is extracted once, every data
// row is decoded and resolved, and the accumulated offers are flushed as a
// single batch write at the end.
func (i *Importer) Run(ctx context.Context, s *sheet.Sheet) (*Summary, error) {
	start := time.Now()
	defer func() {
		metrics.ImportDuration.Observe(time.Since(start).Seconds())
	}()

	layout, err := sheet.ExtractLayout(s.SupplierRow, s.LabelRow)
	if err != nil {
		return nil, err
	}
	i.log.Info("extracted supplier layout", "suppliers", len(layout))

	res := newResolver(i.store, i.log)
	summary := &Summary{}

	// Offers aggregate per (product, supplier) pair. Later rows win per
	// field, but an absent value never clears a captured one. keys keeps
	// the flush order stable.
	agg := make(map[offerKey]*domain.Offer)
	var keys []offerKey

	for _, row := range s.DataRows {
		product, cells, ok := sheet.DecodeRow(row, layout)
		if !ok {
			summary.RowsSkipped++
			metrics.ImportRowsSkipped.Inc()
			continue
		}

		productID, ok, err := res.resolveProduct(ctx, product)
		if err != nil {
			return nil, err
		}
		if !ok {
			summary.RowsSkipped++
			metrics.ImportRowsSkipped.Inc()
			continue
		}
		summary.RowsProcessed++
		metrics.ImportRowsProcessed.Inc()

		for _, c := range cells {
			price, hasPrice := parse.Price(c.Price)
			lead, hasLead := parse.LeadTime(c.LeadTime)
			if !hasPrice && !hasLead {
				continue
			}

			supplierID, err := res.resolveSupplier(ctx, c.Supplier.Name)
			if err != nil {
				return nil, err
			}

			key := offerKey{productID: productID, supplierID: supplierID}
			entry, exists := agg[key]
			if !exists {
				entry = &domain.Offer{ProductID: productID, SupplierID: supplierID}
				if i.opts.DefaultCurrency != "" {
					cy := i.opts.DefaultCurrency
					entry.Currency = &cy
				}
				agg[key] = entry
				keys = append(keys, key)
			}
			if hasPrice {
				entry.TotalPrice = &price
			}
			if hasLead {
				entry.LeadTime = &lead
			}
		}
	}

	offers := make([]domain.Offer, 0, len(keys))
	for _, key := range keys {
		offers = append(offers, *agg[key])
	}

	if err := i.store.BulkUpsertOffers(ctx, offers); err != nil {
		return nil, err
	}
	summary.OffersUpserted = len(offers)
	summary.SuppliersCreated = res.suppliersCreated
	summary.ProductsCreated = res.productsCreated
	metrics.ImportOffersUpserted.Add(float64(len(offers)))

	i.log.Info("import finished",
		"rows_processed", summary.RowsProcessed,
		"rows_skipped", summary.RowsSkipped,
		"offers_upserted", summary.OffersUpserted,
		"suppliers_created", summary.SuppliersCreated,
		"products_created", summary.ProductsCreated,
		"duration", time.Since(start),
	)
	return summary, nil
}
