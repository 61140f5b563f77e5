package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"
	"github.com/thriftly/checkout-service/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartService struct {
	cart      entities.Cart
	err       error
	added     []entities.CartItem
	addErr    error
	removeErr error
}

func (f *fakeCartService) GetCart(_ context.Context, _ string) (entities.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCartService) AddItem(_ context.Context, item entities.CartItem) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, item)
	return nil
}

func (f *fakeCartService) RemoveItem(_ context.Context, _, _ string) error {
	return f.removeErr
}

type fakeShippingService struct {
	quotes entities.QuoteSet
	err    error
}

func (f *fakeShippingService) QuoteRates(_ context.Context, _ []entities.SellerGroup, _ entities.Address) (entities.QuoteSet, error) {
	return f.quotes, f.err
}

type fakeCheckoutService struct {
	attempt  entities.CheckoutAttempt
	beginErr error

	url        string
	done       bool
	advanceErr error
}

func (f *fakeCheckoutService) Begin(_ context.Context, _ entities.CheckoutInput) (entities.CheckoutAttempt, error) {
	return f.attempt, f.beginErr
}

func (f *fakeCheckoutService) Advance(_ context.Context, _ uuid.UUID) (string, bool, error) {
	return f.url, f.done, f.advanceErr
}

type fakeOrderService struct {
	order entities.Order
	err   error
}

func (f *fakeOrderService) GetOrderBySessionID(_ context.Context, _ string) (entities.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) ListOrders(_ context.Context, _ string) ([]entities.Order, error) {
	return []entities.Order{f.order}, f.err
}

func newTestRouter(cart *fakeCartService, shipping *fakeShippingService, checkout *fakeCheckoutService, orders *fakeOrderService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, cart, shipping, checkout, orders)

	r := chi.NewRouter()
	h.Init(r)
	return r
}

func TestHTTPHandler_GetOrderBySession(t *testing.T) {
	validOrder := entities.Order{ID: uuid.New(), StripeSessionID: "cs_123", TotalCents: 2500}

	testCases := []struct {
		name       string
		sessionID  string
		orders     *fakeOrderService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			sessionID:  "cs_123",
			orders:     &fakeOrderService{order: validOrder},
			wantStatus: http.StatusOK,
			wantBody:   `"stripe_session_id":"cs_123"`,
		},
		{
			name:       "not found",
			sessionID:  "cs_missing",
			orders:     &fakeOrderService{err: entities.ErrOrderNotFound},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:       "internal error",
			sessionID:  "cs_123",
			orders:     &fakeOrderService{err: errors.New("db error")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{}, tc.orders)

			req := httptest.NewRequest(http.MethodGet, "/order/session/"+tc.sessionID, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
		})
	}
}

func TestHTTPHandler_GetCart(t *testing.T) {
	cart := entities.Cart{
		BuyerID: "buyer-1",
		Groups: []entities.SellerGroup{
			{SellerID: "alice", SubtotalCents: 1250, Items: []entities.CartItem{{ItemID: "i1", PriceCents: 1250, Quantity: 1}}},
		},
		TotalCents: 1250,
	}
	r := newTestRouter(&fakeCartService{cart: cart}, &fakeShippingService{}, &fakeCheckoutService{}, &fakeOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/cart/buyer-1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "buyer-1", resp["buyer_id"])
	assert.Equal(t, float64(1250), resp["total_cents"])
}

func TestHTTPHandler_AddCartItem(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"item_id":"i1","title":"Wool sweater","seller_id":"alice","price_cents":1250,"quantity":1}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title",
			body:       `{"item_id":"i1","seller_id":"alice","price_cents":1250,"quantity":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero quantity",
			body:       `{"item_id":"i1","title":"Wool sweater","seller_id":"alice","price_cents":1250,"quantity":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "broken json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cart := &fakeCartService{}
			r := newTestRouter(cart, &fakeShippingService{}, &fakeCheckoutService{}, &fakeOrderService{})

			req := httptest.NewRequest(http.MethodPost, "/cart/buyer-1/items", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantStatus == http.StatusCreated {
				require.Len(t, cart.added, 1)
				assert.Equal(t, "buyer-1", cart.added[0].BuyerID)
			}
		})
	}
}

func TestHTTPHandler_RemoveCartItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodDelete, "/cart/buyer-1/items/i1", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{removeErr: entities.ErrCartItemNotFound}, &fakeShippingService{}, &fakeCheckoutService{}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodDelete, "/cart/buyer-1/items/i1", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHTTPHandler_QuoteRates(t *testing.T) {
	quotes := entities.QuoteSet{
		Rates:    map[string][]entities.Rate{"alice": {{ObjectID: "r1", AmountCents: 550}}},
		Selected: map[string]entities.Rate{"alice": {ObjectID: "r1", AmountCents: 550}},
		Errors:   map[string]string{"bob": "carrier timeout"},
	}

	t.Run("success with per seller errors", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{quotes: quotes}, &fakeCheckoutService{}, &fakeOrderService{})

		body := `{"buyer_id":"buyer-1","to_address":{"street1":"5 Main St","city":"Austin","state":"TX","zip":"78701"}}`
		req := httptest.NewRequest(http.MethodPost, "/checkout/rates", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"object_id":"r1"`)
		assert.Contains(t, rr.Body.String(), `"bob":"carrier timeout"`)
	})

	t.Run("incomplete address", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{err: entities.ErrIncompleteAddress}, &fakeCheckoutService{}, &fakeOrderService{})

		body := `{"buyer_id":"buyer-1","to_address":{"street1":"5 Main St","city":"Austin","state":"TX","zip":"78701"}}`
		req := httptest.NewRequest(http.MethodPost, "/checkout/rates", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing buyer id fails validation", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{}, &fakeOrderService{})

		body := `{"to_address":{"street1":"5 Main St","city":"Austin","state":"TX","zip":"78701"}}`
		req := httptest.NewRequest(http.MethodPost, "/checkout/rates", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHTTPHandler_BeginCheckout(t *testing.T) {
	validBody := `{
		"buyer_id": "buyer-1",
		"to_address": {"street1":"5 Main St","city":"Austin","state":"TX","zip":"78701"},
		"selected_rates": {"alice":{"object_id":"r1","amount_cents":550}}
	}`

	t.Run("returns first url and queue size", func(t *testing.T) {
		attempt := entities.CheckoutAttempt{
			ID:            uuid.New(),
			Status:        entities.CheckoutStatusInProgress,
			CurrentIndex:  1,
			TotalSessions: 3,
			Sessions: []entities.CheckoutSession{
				{SessionID: "cs_0", URL: "https://pay.example/0"},
				{SessionID: "cs_1", URL: "https://pay.example/1"},
				{SessionID: "cs_2", URL: "https://pay.example/2"},
			},
		}
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{attempt: attempt}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(validBody))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, attempt.ID.String(), resp["attempt_id"])
		assert.Equal(t, "https://pay.example/0", resp["url"])
		assert.Equal(t, float64(3), resp["total_sessions"])
		assert.Equal(t, float64(2), resp["pending"])
	})

	t.Run("blocked checkout maps to conflict", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{beginErr: entities.ErrCheckoutBlocked}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(validBody))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("all sellers acknowledged surfaces the service error", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{beginErr: entities.ErrNothingToCheckout}, &fakeOrderService{})

		body := `{
			"buyer_id": "buyer-1",
			"to_address": {"street1":"5 Main St","city":"Austin","state":"TX","zip":"78701"},
			"acknowledged_sellers": {"alice":"no rates"}
		}`
		req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), entities.ErrNothingToCheckout.Error())
	})

	t.Run("empty cart maps to bad request", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{beginErr: entities.ErrCartEmpty}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(validBody))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHTTPHandler_AdvanceCheckout(t *testing.T) {
	attemptID := uuid.New()

	t.Run("returns next url", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{url: "https://pay.example/1"}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/checkout/"+attemptID.String()+"/advance", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"url":"https://pay.example/1"`)
		assert.Contains(t, rr.Body.String(), `"done":false`)
	})

	t.Run("done when queue exhausted", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{done: true}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/checkout/"+attemptID.String()+"/advance", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"done":true`)
	})

	t.Run("invalid attempt id", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/checkout/not-a-uuid/advance", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown attempt", func(t *testing.T) {
		r := newTestRouter(&fakeCartService{}, &fakeShippingService{}, &fakeCheckoutService{advanceErr: entities.ErrAttemptNotFound}, &fakeOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/checkout/"+attemptID.String()+"/advance", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
