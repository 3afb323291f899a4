package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/columbia-shop/columbia/backend/internal/models"
	"github.com/columbia-shop/columbia/backend/internal/store"
)

// memStore mimics the pooled Postgres store: ids are generated, listing is
// newest first, and at most slots operations run at once.
type memStore struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int64
	err      error

	slots    chan struct{}
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	lists    atomic.Int32
}

func newMemStore(slots int) *memStore {
	return &memStore{slots: make(chan struct{}, slots)}
}

func (s *memStore) acquire(ctx context.Context) (func(), error) {
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	n := s.inFlight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return func() {
		s.inFlight.Add(-1)
		<-s.slots
	}, nil
}

func (s *memStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.lists.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for i := len(s.products) - 1; i >= 0; i-- {
		out = append(out, s.products[i])
	}
	return out, nil
}

func (s *memStore) AddProduct(ctx context.Context, np models.NewProduct) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p := models.Product{ID: s.nextID, Name: np.Name, Price: np.Price, ImageURL: np.ImageURL}
	s.products = append(s.products, p)
	return &p, nil
}

type memCache struct {
	mu          sync.Mutex
	products    []models.Product
	ok          bool
	err         error
	invalidated int
}

func (c *memCache) Products(context.Context) ([]models.Product, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	return c.products, c.ok, nil
}

func (c *memCache) SetProducts(_ context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.products, c.ok = products, true
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products, c.ok = nil, false
	c.invalidated++
	return c.err
}

type storedImage struct {
	data        []byte
	contentType string
}

type memImages struct {
	mu      sync.Mutex
	objects map[string]storedImage
	err     error
}

func newMemImages() *memImages {
	return &memImages{objects: map[string]storedImage{}}
}

func (m *memImages) Upload(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = storedImage{data: data, contentType: contentType}
	return nil
}

func (m *memImages) Open(_ context.Context, key string) (io.ReadCloser, string, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", 0, store.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, int64(len(obj.data)), nil
}

var errStoreDown = errors.New(`dial tcp 10.0.0.5:5432: connect: connection refused (password "hunter2")`)
