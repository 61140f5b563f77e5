package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"
	"github.com/thriftly/checkout-service/pkg/trm"
	"github.com/thriftly/checkout-service/pkg/utils"
)

type OrderRepo interface {
	GetSession(ctx context.Context, sessionID string) (entities.CheckoutSession, error)
	GetSessionBuyer(ctx context.Context, sessionID string) (string, error)
	UpdateSessionStatus(ctx context.Context, sessionID string, status entities.SessionStatus) error
	ClearSellerItems(ctx context.Context, buyerID, sellerID string) error

	// Операции идемпотентны, т.к. используется ON CONFLICT DO NOTHING
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveOrderItems(ctx context.Context, orderID uuid.UUID, items []entities.OrderItem) error

	GetOrderBySessionID(ctx context.Context, sessionID string) (entities.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, cache Cache) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
	}
}

// ConfirmPayment turns a paid checkout session into an order and clears the
// seller's items from the buyer's cart. Safe to call more than once for the
// same session.
func (s *orderService) ConfirmPayment(ctx context.Context, sessionID string) error {
	fn := func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			sess, err := s.repo.GetSession(ctx, sessionID)
			if err != nil {
				return err
			}
			if sess.Status == entities.SessionStatusPaid {
				return nil
			}

			buyerID, err := s.repo.GetSessionBuyer(ctx, sessionID)
			if err != nil {
				return err
			}

			if err := s.repo.UpdateSessionStatus(ctx, sessionID, entities.SessionStatusPaid); err != nil {
				return fmt.Errorf("failed to mark session paid: %w", err)
			}

			order := orderFromSession(buyerID, sess)
			if err := s.repo.SaveOrder(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			if err := s.repo.SaveOrderItems(ctx, order.ID, order.Items); err != nil {
				return fmt.Errorf("failed to save order items: %w", err)
			}
			if err := s.repo.ClearSellerItems(ctx, buyerID, sess.SellerID); err != nil {
				return fmt.Errorf("failed to clear cart: %w", err)
			}

			s.logger.Debug("payment confirmed", "session_id", sessionID, "order_id", order.ID.String())
			return nil
		})
	}

	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  5,
		Multiplier:   2,
	}

	return utils.Retry(cfg, fn, entities.ErrSessionNotFound)
}

func (s *orderService) GetOrderBySessionID(ctx context.Context, sessionID string) (entities.Order, error) {
	if data, ok := s.cache.Get(sessionID); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal order", slog.String("session_id", sessionID), slog.Any("error", err))
			return entities.Order{}, err
		}
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderBySessionID(ctx, sessionID)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  5,
		Multiplier:   2,
	}
	if err := utils.Retry(cfg, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("session_id", sessionID), slog.Any("error", err))
		return entities.Order{}, err
	}
	s.cache.Set(sessionID, data)
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, buyerID string) ([]entities.Order, error) {
	return s.repo.ListOrdersByBuyer(ctx, buyerID)
}

// WarmUpCache preloads the newest orders so success pages hit the cache
// right after a restart.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}

	for _, order := range orders {
		data, err := order.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal order: %w", err)
		}
		s.cache.Set(order.StripeSessionID, data)
	}

	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func orderFromSession(buyerID string, sess entities.CheckoutSession) entities.Order {
	items := make([]entities.OrderItem, 0, len(sess.Items))
	for _, it := range sess.Items {
		items = append(items, entities.OrderItem{
			ItemID:     it.ItemID,
			Title:      it.Title,
			ImageURL:   it.ImageURL,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		})
	}

	return entities.Order{
		ID:              uuid.New(),
		BuyerID:         buyerID,
		SellerID:        sess.SellerID,
		SellerName:      sess.SellerName,
		StripeSessionID: sess.SessionID,
		ItemTotalCents:  sess.ItemTotalCents,
		ShippingCents:   sess.ShippingCents,
		TotalCents:      sess.ItemTotalCents + sess.ShippingCents,
		CreatedAt:       time.Now().UTC(),
		Items:           items,
	}
}
