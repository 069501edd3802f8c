package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/hoppa1231/Handbook/pkg/types"
)

// PostgresStore implements Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to the database and verifies the connection.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) FindSupplierByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx, queryFindSupplierByName, pgx.NamedArgs{"name": name}).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("finding supplier %q: %w", name, err)
	}
	return id, true, nil
}

func (s *PostgresStore) CreateSupplier(ctx context.Context, sup *domain.Supplier) (int64, error) {
	args := pgx.NamedArgs{
		"name":    sup.Name,
		"address": sup.Address,
		"contact": sup.Contact,
		"website": sup.Website,
		"rating":  sup.Rating,
	}
	var id int64
	if err := s.pool.QueryRow(ctx, queryCreateSupplier, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("creating supplier %q: %w", sup.Name, err)
	}
	return id, nil
}

func (s *PostgresStore) FindProductByKey(ctx context.Context, key domain.ProductKey) (int64, bool, error) {
	args := pgx.NamedArgs{
		"part_number": key.PartNumber,
		"name":        key.Name,
		"brand":       key.Brand,
	}
	var id int64
	err := s.pool.QueryRow(ctx, queryFindProductByKey, args).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("finding product %q: %w", key.PartNumber, err)
	}
	return id, true, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.Product) (int64, error) {
	args := pgx.NamedArgs{
		"part_number":   p.PartNumber,
		"name":          p.Name,
		"brand":         p.Brand,
		"model":         p.Model,
		"serial_number": p.SerialNumber,
		"scheme":        p.Scheme,
		"pos_scheme":    p.PosScheme,
		"material":      p.Material,
		"size":          p.Size,
		"comment":       p.Comment,
		"category":      p.Category,
	}
	var id int64
	if err := s.pool.QueryRow(ctx, queryCreateProduct, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("creating product %q: %w", p.PartNumber, err)
	}
	return id, nil
}

// BulkUpsertOffers writes all offers inside a single transaction so a
// failed import leaves no partial price data behind.
func (s *PostgresStore) BulkUpsertOffers(ctx context.Context, offers []domain.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, o := range offers {
		batch.Queue(queryUpsertOffer, pgx.NamedArgs{
			"product_id":  o.ProductID,
			"supplier_id": o.SupplierID,
			"total_price": o.TotalPrice,
			"lead_time":   leadTimeArg(o.LeadTime),
			"currency":    o.Currency,
		})
	}
	results := tx.SendBatch(ctx, batch)
	for range offers {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("upserting offer: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("closing batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, queryListProducts)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := scanProduct(s.pool.QueryRow(ctx, queryGetProduct, pgx.NamedArgs{"id": id}), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return &p, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, queryDeleteProduct, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := s.pool.Query(ctx, queryListSuppliers)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		var sup domain.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Address, &sup.Contact, &sup.Website, &sup.Rating); err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}

func (s *PostgresStore) DeleteSupplier(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, queryDeleteSupplier, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("deleting supplier %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListOffers(ctx context.Context, q OfferQuery) ([]domain.Offer, error) {
	query, args := buildOffersQuery(q)
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var (
			o  domain.Offer
			iv pgtype.Interval
		)
		if err := rows.Scan(&o.ID, &o.ProductID, &o.SupplierID, &o.TotalPrice, &iv, &o.Currency); err != nil {
			return nil, fmt.Errorf("scanning offer: %w", err)
		}
		o.LeadTime = leadTimeFromInterval(iv)
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.pool.Query(ctx, queryListCategories)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Code, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanProduct(row scannable, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.PartNumber, &p.Name, &p.Brand, &p.Model, &p.SerialNumber,
		&p.Scheme, &p.PosScheme, &p.Material, &p.Size, &p.Comment,
		&p.Category, &p.CategoryDescription,
	)
}

// leadTimeArg renders the lead time as an interval literal, or NULL when
// absent so the upsert's COALESCE keeps the stored value.
func leadTimeArg(lt *domain.LeadTime) *string {
	if lt == nil {
		return nil
	}
	s := lt.String()
	return &s
}

// leadTimeFromInterval converts a stored interval back into days.
// PostgreSQL normalizes weeks into days, so the unit is always days here.
func leadTimeFromInterval(iv pgtype.Interval) *domain.LeadTime {
	if !iv.Valid {
		return nil
	}
	days := float64(iv.Months)*30 + float64(iv.Days) + float64(iv.Microseconds)/(24*3600*1e6)
	return &domain.LeadTime{Value: int(math.Round(days)), Unit: domain.LeadDays}
}
