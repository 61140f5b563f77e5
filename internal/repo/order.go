package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("id", "buyer_id", "seller_id", "seller_name", "stripe_session_id",
			"item_total_cents", "shipping_cents", "total_cents", "created_at").
		Values(o.ID, o.BuyerID, o.SellerID, o.SellerName, o.StripeSessionID,
			o.ItemTotalCents, o.ShippingCents, o.TotalCents, o.CreatedAt).
		Suffix("ON CONFLICT (stripe_session_id) DO NOTHING").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresRepo) SaveOrderItems(ctx context.Context, orderID uuid.UUID, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "item_id", "title", "image_url", "price_cents", "quantity").
		Suffix("ON CONFLICT (order_id, item_id) DO NOTHING")

	for _, it := range items {
		q = q.Values(orderID, it.ItemID, it.Title, nullString(it.ImageURL), it.PriceCents, it.Quantity)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderBySessionID(ctx context.Context, sessionID string) (entities.Order, error) {
	query, args := r.qb.Select(
		"id", "buyer_id", "seller_id", "seller_name", "stripe_session_id",
		"item_total_cents", "shipping_cents", "total_cents", "created_at").
		From("orders").
		Where(sq.Eq{"stripe_session_id": sessionID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.orderItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, items[order.ID]), nil
}

func (r *postgresRepo) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]entities.Order, error) {
	query, args := r.qb.Select(
		"id", "buyer_id", "seller_id", "seller_name", "stripe_session_id",
		"item_total_cents", "shipping_cents", "total_cents", "created_at").
		From("orders").
		Where(sq.Eq{"buyer_id": buyerID}).
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	itemsMap, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, itemsMap[o.ID]))
	}
	return result, nil
}

// LatestOrders feeds the cache warm-up at startup.
func (r *postgresRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	query, args := r.qb.Select(
		"id", "buyer_id", "seller_id", "seller_name", "stripe_session_id",
		"item_total_cents", "shipping_cents", "total_cents", "created_at").
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(count)).
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select latest orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	itemsMap, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, itemsMap[o.ID]))
	}
	return result, nil
}

func (r *postgresRepo) orderItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderItem, error) {
	query, args := r.qb.Select(
		"order_id", "item_id", "title", "image_url", "price_cents", "quantity").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}

	itemsMap := make(map[uuid.UUID][]OrderItem, len(orderIDs))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}
	return itemsMap, nil
}
