package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trendora-backend/internal/domain"
)

// In-memory collaborators for usecase tests. The product repo applies stock
// decrements under a lock the same way the database applies a single
// arithmetic UPDATE.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = fmt.Sprintf("p-%d", len(r.products)+1)
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.NotFoundf("product %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetAll(_ context.Context, _ domain.ProductFilter) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetTopRated(_ context.Context, limit int) ([]domain.Product, error) {
	products, _, _ := r.GetAll(context.Background(), domain.ProductFilter{})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.NotFoundf("product %s not found", p.ID)
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.NotFoundf("product %s not found", id)
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.NotFoundf("product %s not found", productID)
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) stockOf(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.NotFoundf("order %s not found", id)
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByUserID(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAll(_ context.Context, _ domain.OrderFilter) ([]domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string, deliveredAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.NotFoundf("order %s not found", id)
	}
	o.Status = status
	if deliveredAt != nil {
		o.DeliveredAt = deliveredAt
	}
	return nil
}

func (r *fakeOrderRepo) UpdateReturnRequest(_ context.Context, id string, req *domain.RequestDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.NotFoundf("order %s not found", id)
	}
	o.ReturnRequest = *req
	return nil
}

func (r *fakeOrderRepo) UpdateReplaceRequest(_ context.Context, id string, req *domain.RequestDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.NotFoundf("order %s not found", id)
	}
	o.ReplaceRequest = *req
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.NotFoundf("order %s not found", id)
	}
	delete(r.orders, id)
	return nil
}

type fakeUserDirectory struct {
	users map[string]*domain.User
}

func (d *fakeUserDirectory) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, domain.NotFoundf("user %s not found", id)
	}
	return u, nil
}

type fakeCategoryRepo struct {
	categories map[string]*domain.Category
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.NotFoundf("category %s not found", id)
	}
	return c, nil
}

type fakeImageStore struct {
	mu      sync.Mutex
	deleted []string
	failAll bool
}

func (s *fakeImageStore) Upload(_ context.Context, _ []byte, _, folder string) (string, string, error) {
	return "https://cdn.test/" + folder + "/img.webp", folder + "/img.webp", nil
}

func (s *fakeImageStore) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return fmt.Errorf("storage unavailable")
	}
	s.deleted = append(s.deleted, publicID)
	return nil
}

type notifyCall struct {
	userID       string
	templateType string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (n *fakeNotifier) Notify(userID, templateType string, _ map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{userID: userID, templateType: templateType})
}

func (n *fakeNotifier) sent() []notifyCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifyCall(nil), n.calls...)
}

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	err          error
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, amountMinor int64, currency string, _ map[string]string) (*domain.PaymentIntent, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastAmount = amountMinor
	g.lastCurrency = currency
	return &domain.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

type fakeCache struct{}

func (fakeCache) Get(string) (interface{}, bool)         { return nil, false }
func (fakeCache) Set(string, interface{}, time.Duration) {}
func (fakeCache) Delete(string)                          {}
func (fakeCache) Flush()                                 {}

// recordingCache tracks which keys get evicted.
type recordingCache struct {
	mu      sync.Mutex
	deleted []string
}

func (c *recordingCache) Get(string) (interface{}, bool)         { return nil, false }
func (c *recordingCache) Set(string, interface{}, time.Duration) {}
func (c *recordingCache) Flush()                                 {}

func (c *recordingCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, key)
}

func (c *recordingCache) deletedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

// passTxManager runs the function directly; the fakes have no transactions.
type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
