package usecase

import (
	"context"
	"strconv"
	"sync"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
)

var testLog = logger.NewNop()

type fakeTx struct {
	calls int
	// failAfter: ошибка, которую вернёт "коммит" после успешного fn.
	failAfter error
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.failAfter
}

type fakeProductRepo struct {
	products    map[int64]*domain.Product
	nextID      int64
	activeErr   error
	activeCalls int
	upsertErr   error
	imageURLs   map[int64]string
	archived    []int64
	onGetActive func()
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int64]*domain.Product{}, imageURLs: map[int64]string{}, nextID: 100}
	for _, p := range products {
		p := p
		r.products[p.ID] = &p
	}
	return r
}

func (f *fakeProductRepo) Upsert(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.nextID++
	cp := *p
	cp.ID = f.nextID
	f.products[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeProductRepo) UpdateImageURL(_ context.Context, id int64, url string) error {
	f.imageURLs[id] = url
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok || p.IsArchived {
		return nil, e.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetActive(_ context.Context) ([]domain.Product, error) {
	f.activeCalls++
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	out := make([]domain.Product, 0, len(f.products))
	for id := int64(0); id <= f.nextID; id++ {
		if p, ok := f.products[id]; ok && !p.IsArchived {
			out = append(out, *p)
		}
	}
	// Срабатывает после чтения, как конкурентная запись в админке
	if f.onGetActive != nil {
		f.onGetActive()
	}
	return out, nil
}

func (f *fakeProductRepo) Archive(_ context.Context, id int64) error {
	p, ok := f.products[id]
	if !ok {
		return e.ErrProductNotFound
	}
	p.IsArchived = true
	f.archived = append(f.archived, id)
	return nil
}

type fakeCategoryRepo struct {
	byName   map[string]*domain.Category
	archived []int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byName: map[string]*domain.Category{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	if existing, ok := f.byName[c.Name]; ok {
		return existing, nil
	}
	cp := *c
	cp.ID = int64(len(f.byName) + 1)
	f.byName[c.Name] = &cp
	return &cp, nil
}

func (f *fakeCategoryRepo) GetAll(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.byName))
	for _, c := range f.byName {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Archive(_ context.Context, id int64) error {
	f.archived = append(f.archived, id)
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	catalog     []domain.Product
	version     int64
	getErr      error
	sets        int
	staleSets   int
	invalidated int
}

func (f *fakeCache) GetCatalog(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.catalog == nil {
		return nil, e.ErrCacheMiss
	}
	return f.catalog, nil
}

func (f *fakeCache) CatalogVersion(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version, nil
}

func (f *fakeCache) SetCatalog(_ context.Context, products []domain.Product, version int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if version != f.version {
		f.staleSets++
		return nil
	}
	f.catalog = products
	f.sets++
	return nil
}

func (f *fakeCache) InvalidateCatalog(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog = nil
	f.version++
	f.invalidated++
	return nil
}

func (f *fakeCache) staleSetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staleSets
}

func (f *fakeCache) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

type fakeImages struct {
	uploadErr error
	cleaned   []string
}

func (f *fakeImages) UploadImages(_ context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	keys := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		keys = append(keys, req.Name+"/"+img.Name)
	}
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImages) CleanupImages(keys []string) {
	f.cleaned = append(f.cleaned, keys...)
}

func (f *fakeImages) PublicURL(key string) string {
	return "http://cdn/" + key
}

type fakeCartRepo struct {
	carts   map[string][]domain.LineItem
	deleted []string
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string][]domain.LineItem{}}
}

func (f *fakeCartRepo) Get(_ context.Context, sid string) (*domain.Cart, error) {
	return domain.RestoreCart(f.carts[sid]), nil
}

func (f *fakeCartRepo) Update(_ context.Context, sid string, mutate func(*domain.Cart)) (*domain.Cart, error) {
	cart := domain.RestoreCart(f.carts[sid])
	mutate(cart)
	if cart.IsEmpty() {
		delete(f.carts, sid)
	} else {
		f.carts[sid] = cart.Items()
	}
	return cart, nil
}

func (f *fakeCartRepo) Delete(_ context.Context, sid string) error {
	delete(f.carts, sid)
	f.deleted = append(f.deleted, sid)
	return nil
}

type fakePricing struct {
	pc  domain.PricingContext
	err error
}

func (f fakePricing) PricingContext(context.Context) (domain.PricingContext, error) {
	return f.pc, f.err
}

type fakeOrderRepo struct {
	orders map[int64]*domain.Order
	nextID int64
	// sessions — id платёжных сессий, сохранённые по заказам.
	sessions map[int64]string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*domain.Order{}, sessions: map[int64]string{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	f.nextID++
	cp := *o
	cp.ID = f.nextID
	f.orders[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) GetLatestPending(_ context.Context, sessionID string) (*domain.Order, error) {
	for id := f.nextID; id >= 1; id-- {
		o, ok := f.orders[id]
		if ok && o.SessionID == sessionID && o.Status == domain.OrderPending {
			cp := *o
			return &cp, nil
		}
	}
	return nil, e.ErrOrderNotFound
}

func (f *fakeOrderRepo) SetPaymentSession(_ context.Context, id int64, sid string) error {
	f.sessions[id] = sid
	if o, ok := f.orders[id]; ok {
		o.PaymentSessionID = sid
	}
	return nil
}

func (f *fakeOrderRepo) MarkPaid(_ context.Context, id int64, paymentID string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	o.Status = domain.OrderPaid
	o.PaymentID = paymentID
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) List(_ context.Context, limit, offset int) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if o, ok := f.orders[id]; ok {
			out = append(out, *o)
		}
	}
	if offset >= len(out) {
		return []domain.Order{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeOutbox struct {
	events []*OutboxEvent
}

func (f *fakeOutbox) Create(_ context.Context, evt *OutboxEvent) (*OutboxEvent, error) {
	cp := *evt
	cp.ID = int64(len(f.events) + 1)
	f.events = append(f.events, &cp)
	return &cp, nil
}

func (f *fakeOutbox) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkAsProcessed(context.Context, int64) error { return nil }
func (f *fakeOutbox) MarkAsFailed(context.Context, int64) error    { return nil }
func (f *fakeOutbox) ReturnToPending(context.Context, int64) error { return nil }

type fakeEncoder struct{}

func (fakeEncoder) EncodeOrderEvent(evt *OrderEvent) ([]byte, error) {
	return []byte(string(evt.Type) + ":" + strconv.FormatInt(evt.OrderID, 10) + ":" + evt.AmountDueNow.String()), nil
}

type fakePayments struct {
	reqs []*InitiatePaymentReq
	err  error
}

func (f *fakePayments) InitiatePayment(_ context.Context, req *InitiatePaymentReq) (*PaymentSession, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &PaymentSession{ID: "pay_" + strconv.FormatInt(req.OrderID, 10), RedirectURL: "https://pay.example/checkout"}, nil
}

type fakeSettingsRepo struct {
	settings *domain.StoreSettings
	err      error
}

func (f *fakeSettingsRepo) Get(context.Context) (*domain.StoreSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, e.ErrSettingsNotFound
	}
	cp := *f.settings
	return &cp, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.StoreSettings) (*domain.StoreSettings, error) {
	cp := *s
	f.settings = &cp
	out := cp
	return &out, nil
}
