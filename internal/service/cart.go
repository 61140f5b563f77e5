package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"
)

type CartRepo interface {
	ListCartItems(ctx context.Context, buyerID string) ([]entities.CartItem, error)
	AddCartItem(ctx context.Context, item entities.CartItem) error
	RemoveCartItem(ctx context.Context, buyerID, itemID string) error
}

type cartService struct {
	logger *slog.Logger
	repo   CartRepo
}

func NewCartService(logger *slog.Logger, repo CartRepo) *cartService {
	return &cartService{
		logger: logger.With(slog.String("service", "cart")),
		repo:   repo,
	}
}

// GetCart returns the buyer's cart grouped by seller with per-seller
// subtotals and a grand total.
func (s *cartService) GetCart(ctx context.Context, buyerID string) (entities.Cart, error) {
	items, err := s.repo.ListCartItems(ctx, buyerID)
	if err != nil {
		return entities.Cart{}, fmt.Errorf("failed to list cart items: %w", err)
	}

	groups := entities.GroupBySeller(items)

	var total int64
	for _, g := range groups {
		total += g.SubtotalCents
	}

	return entities.Cart{
		BuyerID:    buyerID,
		Groups:     groups,
		TotalCents: total,
	}, nil
}

func (s *cartService) AddItem(ctx context.Context, item entities.CartItem) error {
	if item.Quantity < 1 {
		return entities.ErrInvalidQuantity
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	if err := s.repo.AddCartItem(ctx, item); err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	s.logger.Debug("item added to cart",
		slog.String("buyer_id", item.BuyerID), slog.String("item_id", item.ItemID))
	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, buyerID, itemID string) error {
	return s.repo.RemoveCartItem(ctx, buyerID, itemID)
}
