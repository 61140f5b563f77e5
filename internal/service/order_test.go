package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidTestSession() entities.CheckoutSession {
	return entities.CheckoutSession{
		SessionID:      "cs_test",
		AttemptID:      uuid.New(),
		SellerID:       "alice",
		SellerName:     "Alice",
		Status:         entities.SessionStatusCreated,
		ItemTotalCents: 1950,
		ShippingCents:  550,
		Items: []entities.CartItem{
			{ItemID: "i1", Title: "Wool sweater", PriceCents: 1250, Quantity: 1},
			{ItemID: "i2", Title: "Scarf", PriceCents: 700, Quantity: 1},
		},
	}
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("creates order and clears seller items", func(t *testing.T) {
		repo := &fakeOrderRepo{session: paidTestSession(), buyerID: "buyer-1"}
		svc := NewOrderService(logger, fakeTxManager{}, repo, newFakeCache())

		err := svc.ConfirmPayment(context.Background(), "cs_test")
		require.NoError(t, err)

		assert.Equal(t, entities.SessionStatusPaid, repo.sessionStatus)
		require.NotNil(t, repo.savedOrder)
		assert.Equal(t, "buyer-1", repo.savedOrder.BuyerID)
		assert.Equal(t, "alice", repo.savedOrder.SellerID)
		assert.Equal(t, "cs_test", repo.savedOrder.StripeSessionID)
		assert.Equal(t, int64(2500), repo.savedOrder.TotalCents)
		assert.Len(t, repo.savedOrder.Items, 2)
		assert.Equal(t, []string{"alice"}, repo.clearedSellers)
	})

	t.Run("already paid session is a no-op", func(t *testing.T) {
		sess := paidTestSession()
		sess.Status = entities.SessionStatusPaid
		repo := &fakeOrderRepo{session: sess, buyerID: "buyer-1"}
		svc := NewOrderService(logger, fakeTxManager{}, repo, newFakeCache())

		err := svc.ConfirmPayment(context.Background(), "cs_test")
		require.NoError(t, err)

		assert.Nil(t, repo.savedOrder)
		assert.Empty(t, repo.clearedSellers)
	})

	t.Run("unknown session fails without retrying", func(t *testing.T) {
		repo := &fakeOrderRepo{sessionErr: entities.ErrSessionNotFound}
		svc := NewOrderService(logger, fakeTxManager{}, repo, newFakeCache())

		err := svc.ConfirmPayment(context.Background(), "cs_missing")
		assert.ErrorIs(t, err, entities.ErrSessionNotFound)
	})
}

func TestOrderService_GetOrderBySessionID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	order := entities.Order{
		ID:              uuid.New(),
		BuyerID:         "buyer-1",
		SellerID:        "alice",
		StripeSessionID: "cs_test",
		TotalCents:      2500,
	}

	t.Run("cache miss loads from repo and fills cache", func(t *testing.T) {
		repo := &fakeOrderRepo{order: order}
		cache := newFakeCache()
		svc := NewOrderService(logger, fakeTxManager{}, repo, cache)

		got, err := svc.GetOrderBySessionID(context.Background(), "cs_test")
		require.NoError(t, err)

		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, 1, repo.getOrderCalls)
		_, cached := cache.Get("cs_test")
		assert.True(t, cached)
	})

	t.Run("cache hit skips the repo", func(t *testing.T) {
		data, err := order.Marshal()
		require.NoError(t, err)

		repo := &fakeOrderRepo{}
		cache := newFakeCache()
		cache.Set("cs_test", data)
		svc := NewOrderService(logger, fakeTxManager{}, repo, cache)

		got, err := svc.GetOrderBySessionID(context.Background(), "cs_test")
		require.NoError(t, err)

		assert.Equal(t, order.ID, got.ID)
		assert.Zero(t, repo.getOrderCalls)
	})

	t.Run("corrupt cache entry surfaces an error", func(t *testing.T) {
		cache := newFakeCache()
		cache.Set("cs_test", []byte("not gob"))
		svc := NewOrderService(logger, fakeTxManager{}, &fakeOrderRepo{}, cache)

		_, err := svc.GetOrderBySessionID(context.Background(), "cs_test")
		assert.ErrorIs(t, err, entities.ErrInvalidOrder)
	})

	t.Run("missing order fails without retrying", func(t *testing.T) {
		repo := &fakeOrderRepo{orderErr: entities.ErrOrderNotFound}
		svc := NewOrderService(logger, fakeTxManager{}, repo, newFakeCache())

		_, err := svc.GetOrderBySessionID(context.Background(), "cs_missing")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
		assert.Equal(t, 1, repo.getOrderCalls)
	})
}

func TestOrderService_WarmUpCache(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	orders := []entities.Order{
		{ID: uuid.New(), StripeSessionID: "cs_a"},
		{ID: uuid.New(), StripeSessionID: "cs_b"},
	}
	repo := &fakeOrderRepo{latest: orders}
	cache := newFakeCache()
	svc := NewOrderService(logger, fakeTxManager{}, repo, cache)

	err := svc.WarmUpCache(context.Background(), 100)
	require.NoError(t, err)

	for _, o := range orders {
		_, ok := cache.Get(o.StripeSessionID)
		assert.True(t, ok)
	}
}
