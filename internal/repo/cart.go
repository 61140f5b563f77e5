package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thriftly/checkout-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) ListCartItems(ctx context.Context, buyerID string) ([]entities.CartItem, error) {
	query, args := r.qb.Select(
		"id", "buyer_id", "item_id", "seller_id", "seller_name",
		"title", "image_url", "price_cents", "quantity", "weight_tier_id").
		From("cart_items").
		Where(sq.Eq{"buyer_id": buyerID}).
		OrderBy("added_at ASC").
		MustSql()

	var rows []CartItem
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select cart items: %w", err)
	}

	items := make([]entities.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, CartItemToEntity(row))
	}
	return items, nil
}

func (r *postgresRepo) AddCartItem(ctx context.Context, item entities.CartItem) error {
	query, args := r.qb.Insert("cart_items").
		Columns("id", "buyer_id", "item_id", "seller_id", "seller_name",
			"title", "image_url", "price_cents", "quantity", "weight_tier_id").
		Values(item.ID, item.BuyerID, item.ItemID, item.SellerID, item.SellerName,
			item.Title, nullString(item.ImageURL), item.PriceCents, item.Quantity,
			nullString(item.WeightTierID)).
		Suffix("ON CONFLICT (buyer_id, item_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

func (r *postgresRepo) RemoveCartItem(ctx context.Context, buyerID, itemID string) error {
	query, args := r.qb.Delete("cart_items").
		Where(sq.Eq{"buyer_id": buyerID, "item_id": itemID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrCartItemNotFound
	}
	return nil
}

func (r *postgresRepo) ClearSellerItems(ctx context.Context, buyerID, sellerID string) error {
	query, args := r.qb.Delete("cart_items").
		Where(sq.Eq{"buyer_id": buyerID, "seller_id": sellerID}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear seller items: %w", err)
	}
	return nil
}

// GetSellerAddress resolves the origin address for rate quotes. The address
// stays server-side and is never returned through the HTTP API.
func (r *postgresRepo) GetSellerAddress(ctx context.Context, sellerID string) (entities.Address, error) {
	query, args := r.qb.Select(
		"seller_id", "name", "street1", "street2", "city",
		"state", "zip", "country", "phone", "email").
		From("seller_addresses").
		Where(sq.Eq{"seller_id": sellerID}).
		MustSql()

	var addr SellerAddress
	err := r.getContext(ctx, &addr, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Address{}, entities.ErrSellerNotFound
	}
	if err != nil {
		return entities.Address{}, fmt.Errorf("failed to get seller address: %w", err)
	}
	return SellerAddressToEntity(addr), nil
}
