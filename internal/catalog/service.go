package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/columbia-shop/columbia/backend/internal/metrics"
	"github.com/columbia-shop/columbia/backend/internal/models"
)

// ErrCatalogDisabled is returned by the store wired in when no database is configured.
var ErrCatalogDisabled = errors.New("catalog is disabled")

// AddFailedMessage is the only failure text an add-product caller ever sees.
const AddFailedMessage = "failed to add product"

// ProductStore defines the interface for product persistence.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	AddProduct(ctx context.Context, np models.NewProduct) (*models.Product, error)
}

// ProductCache caches the full product list. Implementations must treat
// ok=false as a miss.
type ProductCache interface {
	Products(ctx context.Context) (products []models.Product, ok bool, err error)
	SetProducts(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

// DisabledStore stands in for the database when the catalog is turned off.
type DisabledStore struct{}

func (DisabledStore) ListProducts(context.Context) ([]models.Product, error) {
	return nil, ErrCatalogDisabled
}

func (DisabledStore) AddProduct(context.Context, models.NewProduct) (*models.Product, error) {
	return nil, ErrCatalogDisabled
}

// Service applies the catalog's error policy on top of a ProductStore:
// reads degrade to an empty list, writes surface only a generic failure.
// Store error text goes to the log, never to callers.
type Service struct {
	store ProductStore
	cache ProductCache
	log   *slog.Logger
}

// NewService builds a Service. cache may be nil.
func NewService(store ProductStore, cache ProductCache, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// List returns all products newest first. It never fails and never returns nil.
func (s *Service) List(ctx context.Context) []models.Product {
	if s.cache != nil {
		products, ok, err := s.cache.Products(ctx)
		if err != nil {
			s.log.Warn("catalog.cache_read_failed", "error", err)
		} else if ok {
			return nonNil(products)
		}
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		s.log.Error("catalog.list_failed", "error", err)
		return []models.Product{}
	}
	products = nonNil(products)

	if s.cache != nil {
		if err := s.cache.SetProducts(ctx, products); err != nil {
			s.log.Warn("catalog.cache_write_failed", "error", err)
		}
	}
	return products
}

// Add inserts a product and returns the result body for the caller.
func (s *Service) Add(ctx context.Context, np models.NewProduct) (models.Result, bool) {
	p, err := s.store.AddProduct(ctx, np)
	if err != nil {
		s.log.Error("catalog.add_failed", "name", np.Name, "error", err)
		return models.Result{Success: false, Message: AddFailedMessage}, false
	}

	metrics.ProductsAdded.Inc()
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("catalog.cache_invalidate_failed", "error", err)
		}
	}
	s.log.Info("catalog.product_added", "id", p.ID, "name", p.Name)
	return models.Result{Success: true, Message: fmt.Sprintf("Product '%s' added", p.Name)}, true
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
