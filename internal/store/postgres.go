package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/columbia-shop/columbia/backend/internal/models"
)

// NewPool opens a bounded pgx pool and verifies the store is reachable.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// PostgresStore handles shop_items reads and writes against PostgreSQL.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresStore wraps pool. Every operation, including the wait for a free
// connection, is bounded by timeout.
func NewPostgresStore(pool *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, timeout: timeout}
}

// Migrate creates the shop_items table if it doesn't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS shop_items (
			id        SERIAL PRIMARY KEY,
			name      TEXT             NOT NULL,
			price     DOUBLE PRECISION NOT NULL,
			image_url TEXT             NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate shop_items: %w", err)
	}
	return nil
}

// ListProducts returns every product, newest first.
func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, price, image_url FROM shop_items ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// AddProduct inserts a product and returns it with its generated id.
func (s *PostgresStore) AddProduct(ctx context.Context, np models.NewProduct) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var p models.Product
	err := s.pool.QueryRow(ctx,
		`INSERT INTO shop_items (name, price, image_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, price, image_url`,
		np.Name, np.Price, np.ImageURL,
	).Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	return &p, nil
}
