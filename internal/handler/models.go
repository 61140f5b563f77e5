package handler

import (
	"time"

	"github.com/thriftly/checkout-service/internal/entities"
)

// Address адрес доставки покупателя
type Address struct {
	Name    string `json:"name,omitempty"`
	Street1 string `json:"street1" validate:"required"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZIP     string `json:"zip" validate:"required"`
	Country string `json:"country,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// CartItem позиция корзины
type CartItem struct {
	ID           string `json:"id,omitempty"`
	ItemID       string `json:"item_id" validate:"required"`
	Title        string `json:"title" validate:"required"`
	ImageURL     string `json:"image_url,omitempty"`
	PriceCents   int64  `json:"price_cents" validate:"gte=0"`
	SellerID     string `json:"seller_id" validate:"required"`
	SellerName   string `json:"seller_name,omitempty"`
	Quantity     int    `json:"quantity" validate:"required,gte=1"`
	WeightTierID string `json:"weight_tier_id,omitempty"`
}

// SellerGroup товары одного продавца с промежуточным итогом
type SellerGroup struct {
	SellerID      string     `json:"seller_id"`
	SellerName    string     `json:"seller_name,omitempty"`
	Items         []CartItem `json:"items"`
	SubtotalCents int64      `json:"subtotal_cents"`
}

// Cart корзина, сгруппированная по продавцам
type Cart struct {
	BuyerID    string        `json:"buyer_id"`
	Groups     []SellerGroup `json:"groups"`
	TotalCents int64         `json:"total_cents"`
}

// Rate вариант доставки
type Rate struct {
	ObjectID      string `json:"object_id"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency,omitempty"`
	Provider      string `json:"provider,omitempty"`
	ServiceLevel  string `json:"servicelevel,omitempty"`
	EstimatedDays int    `json:"estimated_days,omitempty"`
}

// QuoteRequest запрос ставок доставки
type QuoteRequest struct {
	BuyerID   string  `json:"buyer_id" validate:"required"`
	ToAddress Address `json:"to_address" validate:"required"`
}

// QuoteResponse ставки по продавцам
type QuoteResponse struct {
	Rates    map[string][]Rate `json:"rates"`
	Selected map[string]Rate   `json:"selected"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// CheckoutRequest запуск оформления заказа
type CheckoutRequest struct {
	BuyerID             string            `json:"buyer_id" validate:"required"`
	ToAddress           Address           `json:"to_address" validate:"required"`
	SelectedRates       map[string]Rate   `json:"selected_rates"`
	AcknowledgedSellers map[string]string `json:"acknowledged_sellers,omitempty"`
}

// CheckoutResponse первая ссылка оплаты и размер очереди
type CheckoutResponse struct {
	AttemptID     string `json:"attempt_id"`
	URL           string `json:"url"`
	TotalSessions int    `json:"total_sessions"`
	Pending       int    `json:"pending"`
}

// AdvanceResponse следующая ссылка оплаты
type AdvanceResponse struct {
	URL  string `json:"url,omitempty"`
	Done bool   `json:"done"`
}

// OrderItem товар в заказе
type OrderItem struct {
	ItemID     string `json:"item_id"`
	Title      string `json:"title"`
	ImageURL   string `json:"image_url,omitempty"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Order оформленный заказ
type Order struct {
	ID              string      `json:"id"`
	BuyerID         string      `json:"buyer_id"`
	SellerID        string      `json:"seller_id"`
	SellerName      string      `json:"seller_name,omitempty"`
	StripeSessionID string      `json:"stripe_session_id"`
	ItemTotalCents  int64       `json:"item_total_cents"`
	ShippingCents   int64       `json:"shipping_cents"`
	TotalCents      int64       `json:"total_cents"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

// PaymentEvent событие оплаты из Kafka
type PaymentEvent struct {
	Type          string `json:"type" validate:"required"`
	SessionID     string `json:"session_id" validate:"required"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

func AddressJSONToEntity(a Address) entities.Address {
	return entities.Address{
		Name:    a.Name,
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		ZIP:     a.ZIP,
		Country: a.Country,
		Phone:   a.Phone,
		Email:   a.Email,
	}
}

func CartItemJSONToEntity(buyerID string, c CartItem) entities.CartItem {
	return entities.CartItem{
		ID:           c.ID,
		ItemID:       c.ItemID,
		BuyerID:      buyerID,
		SellerID:     c.SellerID,
		SellerName:   c.SellerName,
		Title:        c.Title,
		ImageURL:     c.ImageURL,
		PriceCents:   c.PriceCents,
		Quantity:     c.Quantity,
		WeightTierID: c.WeightTierID,
	}
}

func CartItemEntityToJSON(c entities.CartItem) CartItem {
	return CartItem{
		ID:           c.ID,
		ItemID:       c.ItemID,
		Title:        c.Title,
		ImageURL:     c.ImageURL,
		PriceCents:   c.PriceCents,
		SellerID:     c.SellerID,
		SellerName:   c.SellerName,
		Quantity:     c.Quantity,
		WeightTierID: c.WeightTierID,
	}
}

func CartEntityToJSON(c entities.Cart) Cart {
	groups := make([]SellerGroup, 0, len(c.Groups))
	for _, g := range c.Groups {
		items := make([]CartItem, 0, len(g.Items))
		for _, it := range g.Items {
			items = append(items, CartItemEntityToJSON(it))
		}
		groups = append(groups, SellerGroup{
			SellerID:      g.SellerID,
			SellerName:    g.SellerName,
			Items:         items,
			SubtotalCents: g.SubtotalCents,
		})
	}

	return Cart{
		BuyerID:    c.BuyerID,
		Groups:     groups,
		TotalCents: c.TotalCents,
	}
}

func RateEntityToJSON(r entities.Rate) Rate {
	return Rate{
		ObjectID:      r.ObjectID,
		AmountCents:   r.AmountCents,
		Currency:      r.Currency,
		Provider:      r.Provider,
		ServiceLevel:  r.ServiceLevel,
		EstimatedDays: r.EstimatedDays,
	}
}

func RateJSONToEntity(r Rate) entities.Rate {
	return entities.Rate{
		ObjectID:      r.ObjectID,
		AmountCents:   r.AmountCents,
		Currency:      r.Currency,
		Provider:      r.Provider,
		ServiceLevel:  r.ServiceLevel,
		EstimatedDays: r.EstimatedDays,
	}
}

func QuoteSetEntityToJSON(q entities.QuoteSet) QuoteResponse {
	res := QuoteResponse{
		Rates:    make(map[string][]Rate, len(q.Rates)),
		Selected: make(map[string]Rate, len(q.Selected)),
		Errors:   q.Errors,
	}
	for sellerID, rates := range q.Rates {
		list := make([]Rate, 0, len(rates))
		for _, r := range rates {
			list = append(list, RateEntityToJSON(r))
		}
		res.Rates[sellerID] = list
	}
	for sellerID, r := range q.Selected {
		res.Selected[sellerID] = RateEntityToJSON(r)
	}
	return res
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ItemID:     it.ItemID,
			Title:      it.Title,
			ImageURL:   it.ImageURL,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		})
	}

	return Order{
		ID:              o.ID.String(),
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		SellerName:      o.SellerName,
		StripeSessionID: o.StripeSessionID,
		ItemTotalCents:  o.ItemTotalCents,
		ShippingCents:   o.ShippingCents,
		TotalCents:      o.TotalCents,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}
