package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/port"
)

var ErrNotFound = errors.New("not found")

var _ port.CatalogReader = (*CatalogRepository)(nil)
var _ port.ProductsStorage = (*CatalogRepository)(nil)

type sqldb interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Close() error
}

// A CatalogRepository is the local read model of the external
// product catalog: written by the catalog consumer, read by the
// session service. The session itself never mutates records.
type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(ctx context.Context, dsn string) (CatalogRepository, error) {
	const op = "CatalogRepository"
	log := slog.With("op", op)

	connConfig, _ := pgx.ParseConfig(dsn)
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)

	r := CatalogRepository{db}
	if err := db.PingContext(ctx); err != nil {
		return CatalogRepository{}, fmt.Errorf(
			"%s: database is unavailable: %w", op, err,
		)
	}
	log.Info("catalog database is available")
	return r, nil
}

const productColumns = `
	product_id, name, sku, brand, category, origin, description,
	price_amount, price_currency, original_amount,
	rating, review_count, badge, available_stock, images`

// StoreProducts upserts catalog records received from the platform.
func (r CatalogRepository) StoreProducts(
	ctx context.Context, ps []domain.Product,
) (storeErr error) {
	const op = "CatalogRepository.StoreProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}
		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			sku = EXCLUDED.sku,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			origin = EXCLUDED.origin,
			description = EXCLUDED.description,
			price_amount = EXCLUDED.price_amount,
			price_currency = EXCLUDED.price_currency,
			original_amount = EXCLUDED.original_amount,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			badge = EXCLUDED.badge,
			available_stock = EXCLUDED.available_stock,
			images = EXCLUDED.images,
			updated_at = now();
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, p := range ps {
		imgB, _ := json.Marshal(toImagesV1(p.Images))
		_, err := stmt.ExecContext(ctx,
			p.ProductID, p.Name, p.SKU, p.Brand, p.Category,
			p.Origin, p.Description,
			p.Price.Amount, p.Price.Currency, p.OriginalPrice.Amount,
			p.Rating, p.ReviewCount, p.Badge, p.AvailableStock,
			string(imgB),
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

// ReadProduct returns the record for the exact product id.
func (r CatalogRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "CatalogRepository.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, productID)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// SearchProducts matches records by name prefix, case-insensitive.
func (r CatalogRepository) SearchProducts(
	ctx context.Context, name string, limit int,
) ([]domain.Product, error) {
	const op = "CatalogRepository.SearchProducts"

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1 ORDER BY name ASC LIMIT $2;`

	return r.queryProducts(ctx, op, query, name+"%", limit)
}

// ListNewest returns the most recently updated records.
func (r CatalogRepository) ListNewest(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	const op = "CatalogRepository.ListNewest"

	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY updated_at DESC LIMIT $1;`

	return r.queryProducts(ctx, op, query, limit)
}

func (r CatalogRepository) queryProducts(
	ctx context.Context, op, query string, args ...any,
) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func scanProduct(scan func(...any) error) (domain.Product, error) {
	var p domain.Product
	var imagesS string
	err := scan(
		&p.ProductID, &p.Name, &p.SKU, &p.Brand, &p.Category,
		&p.Origin, &p.Description,
		&p.Price.Amount, &p.Price.Currency, &p.OriginalPrice.Amount,
		&p.Rating, &p.ReviewCount, &p.Badge, &p.AvailableStock,
		&imagesS,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.OriginalPrice.Currency = p.Price.Currency
	if p.OriginalPrice.Amount == 0 {
		p.OriginalPrice = domain.ProductPrice{}
	}

	var imgs []imageV1
	if err := json.Unmarshal([]byte(imagesS), &imgs); err != nil {
		return domain.Product{}, err
	}
	for _, img := range imgs {
		p.Images = append(p.Images, domain.ProductImage{URL: img.URL, Alt: img.Alt})
	}
	return p, nil
}

func toImagesV1(imgs []domain.ProductImage) []imageV1 {
	vs := make([]imageV1, len(imgs))
	for i, img := range imgs {
		vs[i] = imageV1{URL: img.URL, Alt: img.Alt}
	}
	return vs
}

func (r CatalogRepository) Close() {
	const op = "CatalogRepository.Close"
	log := slog.With("op", op)

	log.Info("closing catalog database...")
	if err := r.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("catalog database is closed")
}
