package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"
	"github.com/thriftly/checkout-service/pkg/trm"
)

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, fakeTx{}, nil
}

func (fakeTxManager) Do(ctx context.Context, cb func(ctx context.Context) error) error {
	return cb(ctx)
}

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

// fakeCartRepo implements CartRepo.
type fakeCartRepo struct {
	items   []entities.CartItem
	listErr error

	added     []entities.CartItem
	addErr    error
	removeErr error
}

func (f *fakeCartRepo) ListCartItems(_ context.Context, _ string) ([]entities.CartItem, error) {
	return f.items, f.listErr
}

func (f *fakeCartRepo) AddCartItem(_ context.Context, item entities.CartItem) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, item)
	return nil
}

func (f *fakeCartRepo) RemoveCartItem(_ context.Context, _, _ string) error {
	return f.removeErr
}

// fakeSellerAddressRepo resolves origin addresses; the address Name carries
// the seller id so fakeRateClient can tell requests apart.
type fakeSellerAddressRepo struct {
	missing map[string]bool
}

func (f *fakeSellerAddressRepo) GetSellerAddress(_ context.Context, sellerID string) (entities.Address, error) {
	if f.missing[sellerID] {
		return entities.Address{}, entities.ErrSellerNotFound
	}
	return entities.Address{
		Name: sellerID, Street1: "1 Seller St", City: "Portland", State: "OR", ZIP: "97201",
	}, nil
}

// fakeRateClient implements RateClient, keyed by the origin address name.
type fakeRateClient struct {
	mu      sync.Mutex
	rates   map[string][]entities.Rate
	errs    map[string]error
	parcels map[string]entities.Parcel
}

func (f *fakeRateClient) GetRates(_ context.Context, from, _ entities.Address, parcel entities.Parcel) ([]entities.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.parcels == nil {
		f.parcels = make(map[string]entities.Parcel)
	}
	f.parcels[from.Name] = parcel
	if err := f.errs[from.Name]; err != nil {
		return nil, err
	}
	return f.rates[from.Name], nil
}

// fakeCheckoutRepo implements CheckoutRepo.
type fakeCheckoutRepo struct {
	items   []entities.CartItem
	attempt entities.CheckoutAttempt
	getErr  error

	savedAttempt  *entities.CheckoutAttempt
	savedSessions []entities.CheckoutSession
	saveErr       error

	progressIndex  int
	progressStatus entities.CheckoutStatus
}

func (f *fakeCheckoutRepo) ListCartItems(_ context.Context, _ string) ([]entities.CartItem, error) {
	return f.items, nil
}

func (f *fakeCheckoutRepo) SaveAttempt(_ context.Context, a entities.CheckoutAttempt) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedAttempt = &a
	return nil
}

func (f *fakeCheckoutRepo) SaveSessions(_ context.Context, _ uuid.UUID, sessions []entities.CheckoutSession) error {
	f.savedSessions = sessions
	return nil
}

func (f *fakeCheckoutRepo) GetAttempt(_ context.Context, _ uuid.UUID) (entities.CheckoutAttempt, error) {
	return f.attempt, f.getErr
}

func (f *fakeCheckoutRepo) UpdateAttemptProgress(_ context.Context, _ uuid.UUID, currentIndex int, status entities.CheckoutStatus) error {
	f.progressIndex = currentIndex
	f.progressStatus = status
	return nil
}

// fakeGateway implements PaymentGateway; failFor makes one seller's
// session creation fail.
type fakeGateway struct {
	failFor string

	created []string
	expired []string
}

func (f *fakeGateway) CreateSession(_ context.Context, _ uuid.UUID, group entities.SellerGroup, shippingCents int64) (entities.CheckoutSession, error) {
	if group.SellerID == f.failFor {
		return entities.CheckoutSession{}, entities.ErrSessionCreation
	}
	sessionID := "cs_" + group.SellerID
	f.created = append(f.created, sessionID)
	return entities.CheckoutSession{
		SessionID:      sessionID,
		SellerID:       group.SellerID,
		SellerName:     group.SellerName,
		URL:            "https://pay.example/" + group.SellerID,
		ItemTotalCents: group.SubtotalCents,
		ShippingCents:  shippingCents,
		Items:          group.Items,
	}, nil
}

func (f *fakeGateway) ExpireSession(_ context.Context, sessionID string) error {
	f.expired = append(f.expired, sessionID)
	return nil
}

// fakeOrderRepo implements OrderRepo.
type fakeOrderRepo struct {
	session    entities.CheckoutSession
	sessionErr error
	buyerID    string

	order    entities.Order
	orderErr error
	latest   []entities.Order

	sessionStatus  entities.SessionStatus
	savedOrder     *entities.Order
	clearedSellers []string
	getOrderCalls  int
}

func (f *fakeOrderRepo) GetSession(_ context.Context, _ string) (entities.CheckoutSession, error) {
	return f.session, f.sessionErr
}

func (f *fakeOrderRepo) GetSessionBuyer(_ context.Context, _ string) (string, error) {
	return f.buyerID, f.sessionErr
}

func (f *fakeOrderRepo) UpdateSessionStatus(_ context.Context, _ string, status entities.SessionStatus) error {
	f.sessionStatus = status
	return nil
}

func (f *fakeOrderRepo) ClearSellerItems(_ context.Context, _, sellerID string) error {
	f.clearedSellers = append(f.clearedSellers, sellerID)
	return nil
}

func (f *fakeOrderRepo) SaveOrder(_ context.Context, o entities.Order) error {
	f.savedOrder = &o
	return nil
}

func (f *fakeOrderRepo) SaveOrderItems(_ context.Context, _ uuid.UUID, _ []entities.OrderItem) error {
	return nil
}

func (f *fakeOrderRepo) GetOrderBySessionID(_ context.Context, _ string) (entities.Order, error) {
	f.getOrderCalls++
	return f.order, f.orderErr
}

func (f *fakeOrderRepo) ListOrdersByBuyer(_ context.Context, _ string) ([]entities.Order, error) {
	return []entities.Order{f.order}, f.orderErr
}

func (f *fakeOrderRepo) LatestOrders(_ context.Context, _ int) ([]entities.Order, error) {
	return f.latest, nil
}

// fakeCache implements Cache.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(key string) ([]byte, bool) {
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeCache) Set(key string, value []byte) {
	f.data[key] = value
}
