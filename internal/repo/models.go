package repo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"
)

type CartItem struct {
	ID           string         `db:"id"`
	BuyerID      string         `db:"buyer_id"`
	ItemID       string         `db:"item_id"`
	SellerID     string         `db:"seller_id"`
	SellerName   string         `db:"seller_name"`
	Title        string         `db:"title"`
	ImageURL     sql.NullString `db:"image_url"`
	PriceCents   int64          `db:"price_cents"`
	Quantity     int            `db:"quantity"`
	WeightTierID sql.NullString `db:"weight_tier_id"`
}

type SellerAddress struct {
	SellerID string         `db:"seller_id"`
	Name     string         `db:"name"`
	Street1  string         `db:"street1"`
	Street2  sql.NullString `db:"street2"`
	City     string         `db:"city"`
	State    string         `db:"state"`
	ZIP      string         `db:"zip"`
	Country  string         `db:"country"`
	Phone    sql.NullString `db:"phone"`
	Email    sql.NullString `db:"email"`
}

type CheckoutAttempt struct {
	ID            uuid.UUID `db:"id"`
	BuyerID       string    `db:"buyer_id"`
	Status        string    `db:"status"`
	CurrentIndex  int       `db:"current_index"`
	TotalSessions int       `db:"total_sessions"`
	CreatedAt     time.Time `db:"created_at"`
}

type CheckoutSession struct {
	SessionID      string    `db:"session_id"`
	AttemptID      uuid.UUID `db:"attempt_id"`
	SellerID       string    `db:"seller_id"`
	SellerName     string    `db:"seller_name"`
	URL            string    `db:"url"`
	Position       int       `db:"position"`
	Status         string    `db:"status"`
	ItemTotalCents int64     `db:"item_total_cents"`
	ShippingCents  int64     `db:"shipping_cents"`
}

type SessionItem struct {
	SessionID  string         `db:"session_id"`
	ItemID     string         `db:"item_id"`
	Title      string         `db:"title"`
	ImageURL   sql.NullString `db:"image_url"`
	PriceCents int64          `db:"price_cents"`
	Quantity   int            `db:"quantity"`
}

type Order struct {
	ID              uuid.UUID `db:"id"`
	BuyerID         string    `db:"buyer_id"`
	SellerID        string    `db:"seller_id"`
	SellerName      string    `db:"seller_name"`
	StripeSessionID string    `db:"stripe_session_id"`
	ItemTotalCents  int64     `db:"item_total_cents"`
	ShippingCents   int64     `db:"shipping_cents"`
	TotalCents      int64     `db:"total_cents"`
	CreatedAt       time.Time `db:"created_at"`
}

type OrderItem struct {
	OrderID    uuid.UUID      `db:"order_id"`
	ItemID     string         `db:"item_id"`
	Title      string         `db:"title"`
	ImageURL   sql.NullString `db:"image_url"`
	PriceCents int64          `db:"price_cents"`
	Quantity   int            `db:"quantity"`
}

func CartItemToEntity(c CartItem) entities.CartItem {
	return entities.CartItem{
		ID:           c.ID,
		ItemID:       c.ItemID,
		BuyerID:      c.BuyerID,
		SellerID:     c.SellerID,
		SellerName:   c.SellerName,
		Title:        c.Title,
		ImageURL:     nullStringToString(c.ImageURL),
		PriceCents:   c.PriceCents,
		Quantity:     c.Quantity,
		WeightTierID: nullStringToString(c.WeightTierID),
	}
}

func SellerAddressToEntity(a SellerAddress) entities.Address {
	return entities.Address{
		Name:    a.Name,
		Street1: a.Street1,
		Street2: nullStringToString(a.Street2),
		City:    a.City,
		State:   a.State,
		ZIP:     a.ZIP,
		Country: a.Country,
		Phone:   nullStringToString(a.Phone),
		Email:   nullStringToString(a.Email),
	}
}

func SessionToEntity(s CheckoutSession, items []SessionItem) entities.CheckoutSession {
	sess := entities.CheckoutSession{
		SessionID:      s.SessionID,
		AttemptID:      s.AttemptID,
		SellerID:       s.SellerID,
		SellerName:     s.SellerName,
		URL:            s.URL,
		Position:       s.Position,
		Status:         entities.SessionStatus(s.Status),
		ItemTotalCents: s.ItemTotalCents,
		ShippingCents:  s.ShippingCents,
	}

	if len(items) > 0 {
		sess.Items = make([]entities.CartItem, 0, len(items))
		for _, it := range items {
			sess.Items = append(sess.Items, entities.CartItem{
				ItemID:     it.ItemID,
				SellerID:   s.SellerID,
				SellerName: s.SellerName,
				Title:      it.Title,
				ImageURL:   nullStringToString(it.ImageURL),
				PriceCents: it.PriceCents,
				Quantity:   it.Quantity,
			})
		}
	}

	return sess
}

func AttemptToEntity(a CheckoutAttempt, sessions []entities.CheckoutSession) entities.CheckoutAttempt {
	return entities.CheckoutAttempt{
		ID:            a.ID,
		BuyerID:       a.BuyerID,
		Status:        entities.CheckoutStatus(a.Status),
		CurrentIndex:  a.CurrentIndex,
		TotalSessions: a.TotalSessions,
		CreatedAt:     a.CreatedAt,
		Sessions:      sessions,
	}
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	order := entities.Order{
		ID:              o.ID,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		SellerName:      o.SellerName,
		StripeSessionID: o.StripeSessionID,
		ItemTotalCents:  o.ItemTotalCents,
		ShippingCents:   o.ShippingCents,
		TotalCents:      o.TotalCents,
		CreatedAt:       o.CreatedAt,
	}

	if len(items) > 0 {
		order.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, entities.OrderItem{
				ItemID:     it.ItemID,
				Title:      it.Title,
				ImageURL:   nullStringToString(it.ImageURL),
				PriceCents: it.PriceCents,
				Quantity:   it.Quantity,
			})
		}
	}

	return order
}
