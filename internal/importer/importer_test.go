package importer_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoppa1231/Handbook/internal/importer"
	"github.com/hoppa1231/Handbook/internal/sheet"
	"github.com/hoppa1231/Handbook/internal/store"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testSheet builds a sheet with one supplier group per name and the given
// data rows. Rows are maps of column offset to cell value.
func testSheet(supplierNames []string, rows []map[int]string) *sheet.Sheet {
	s := &sheet.Sheet{
		SupplierRow: make([]string, 12),
		LabelRow:    make([]string, 12),
	}
	for _, name := range supplierNames {
		s.SupplierRow = append(s.SupplierRow, name, "", "")
		s.LabelRow = append(s.LabelRow, "ПОСТАВЩИК", "Цена", "Срок")
	}
	for _, cells := range rows {
		row := make([]string, 12+3*len(supplierNames))
		for idx, v := range cells {
			row[idx] = v
		}
		s.DataRows = append(s.DataRows, row)
	}
	return s
}

func TestImporter_SingleRow(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	imp := importer.New(st, discardLogger(), importer.Options{})
	ctx := context.Background()

	s := testSheet([]string{"ACME"}, []map[int]string{
		{3: "A-100", 4: "Widget", 13: "1 234,50", 14: "5 days"},
	})

	summary, err := imp.Run(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RowsProcessed)
	assert.Equal(t, 0, summary.RowsSkipped)
	assert.Equal(t, 1, summary.OffersUpserted)
	assert.Equal(t, 1, summary.SuppliersCreated)
	assert.Equal(t, 1, summary.ProductsCreated)

	suppliers, err := st.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "ACME", suppliers[0].Name)

	offers, err := st.ListOffers(ctx, store.OfferQuery{})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.InDelta(t, 1234.50, *offers[0].TotalPrice, 0.001)
	require.NotNil(t, offers[0].LeadTime)
	assert.InDelta(t, 5, offers[0].LeadTime.Days(), 0.001)
}

func TestImporter_LaterRowWinsAbsentDoesNotClear(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	imp := importer.New(st, discardLogger(), importer.Options{})
	ctx := context.Background()

	// Same product twice: first row has price and lead time, second only
	// a price. The later price wins, the lead time survives.
	s := testSheet([]string{"ACME"}, []map[int]string{
		{3: "P1", 4: "Pump", 13: "100", 14: "3 days"},
		{3: "P1", 4: "Pump", 13: "150"},
	})

	summary, err := imp.Run(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.RowsProcessed)
	assert.Equal(t, 1, summary.OffersUpserted)
	assert.Equal(t, 1, summary.ProductsCreated)

	offers, err := st.ListOffers(ctx, store.OfferQuery{})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.InDelta(t, 150, *offers[0].TotalPrice, 0.001)
	require.NotNil(t, offers[0].LeadTime)
	assert.InDelta(t, 3, offers[0].LeadTime.Days(), 0.001)
}

func TestImporter_RerunConverges(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	imp := importer.New(st, discardLogger(), importer.Options{})
	ctx := context.Background()

	s := testSheet([]string{"ACME", "Бета"}, []map[int]string{
		{3: "A-100", 4: "Widget", 13: "100", 16: "200"},
		{3: "B-200", 4: "Gadget", 13: "50,5", 14: "2 weeks"},
	})

	first, err := imp.Run(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 2, first.SuppliersCreated)
	assert.Equal(t, 2, first.ProductsCreated)
	assert.Equal(t, 3, first.OffersUpserted)

	second, err := imp.Run(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 0, second.SuppliersCreated)
	assert.Equal(t, 0, second.ProductsCreated)
	assert.Equal(t, 3, second.OffersUpserted)

	products, err := st.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	offers, err := st.ListOffers(ctx, store.OfferQuery{})
	require.NoError(t, err)
	assert.Len(t, offers, 3)
}

func TestImporter_SkipsRowsWithoutIdentity(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	imp := importer.New(st, discardLogger(), importer.Options{})
	ctx := context.Background()

	s := testSheet([]string{"ACME"}, []map[int]string{
		{3: "A-100", 13: "100"},           // no name
		{4: "Widget", 13: "100"},          // no part number
		{3: "B-1", 4: "Bolt", 13: "9,99"}, // valid
	})

	summary, err := imp.Run(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RowsProcessed)
	assert.Equal(t, 2, summary.RowsSkipped)

	products, err := st.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestImporter_NoOfferWhenCellsUnparsable(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	imp := importer.New(st, discardLogger(), importer.Options{})
	ctx := context.Background()

	s := testSheet([]string{"ACME"}, []map[int]string{
		{3: "A-100", 4: "Widget", 13: "договорная", 14: "уточняется"},
	})

	summary, err := imp.Run(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RowsProcessed)
	assert.Equal(t, 0, summary.OffersUpserted)
	// The supplier is never touched, so it is not created either.
	assert.Equal(t, 0, summary.SuppliersCreated)
}

func TestImporter_NoSupplierColumnsIsFatal(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	imp := importer.New(st, discardLogger(), importer.Options{})

	s := testSheet(nil, []map[int]string{
		{3: "A-100", 4: "Widget"},
	})

	_, err := imp.Run(context.Background(), s)
	assert.ErrorIs(t, err, sheet.ErrNoSupplierColumns)
}

func TestImporter_DefaultCurrency(t *testing.T) {
	t.Parallel()
	st := store.NewMemStore()
	imp := importer.New(st, discardLogger(), importer.Options{DefaultCurrency: "RUB"})
	ctx := context.Background()

	s := testSheet([]string{"ACME"}, []map[int]string{
		{3: "A-100", 4: "Widget", 13: "100"},
	})

	_, err := imp.Run(ctx, s)
	require.NoError(t, err)

	offers, err := st.ListOffers(ctx, store.OfferQuery{})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.NotNil(t, offers[0].Currency)
	assert.Equal(t, "RUB", *offers[0].Currency)
}

// failingStore rejects product creates to exercise the fatal path.
type failingStore struct {
	*store.MemStore
}

func (f *failingStore) CreateProduct(context.Context, *domain.Product) (int64, error) {
	return 0, errors.New("value too long for type character varying(100)")
}

func TestImporter_ProductInsertFailureAborts(t *testing.T) {
	t.Parallel()
	st := &failingStore{MemStore: store.NewMemStore()}
	imp := importer.New(st, discardLogger(), importer.Options{})

	s := testSheet([]string{"ACME"}, []map[int]string{
		{3: "A-100", 4: "Widget", 13: "100"},
	})

	_, err := imp.Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting product")

	offers, err := st.ListOffers(context.Background(), store.OfferQuery{})
	require.NoError(t, err)
	assert.Empty(t, offers)
}
