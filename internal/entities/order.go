package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"

	"github.com/google/uuid"
)

type OrderItem struct {
	ItemID     string
	Title      string
	ImageURL   string
	PriceCents int64
	Quantity   int
}

// Order is the durable record of one paid checkout session.
type Order struct {
	ID              uuid.UUID
	BuyerID         string
	SellerID        string
	SellerName      string
	StripeSessionID string
	ItemTotalCents  int64
	ShippingCents   int64
	TotalCents      int64
	CreatedAt       time.Time

	// присутствует всегда, заказ без товаров невозможен
	Items []OrderItem
}

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidOrder  = errors.New("invalid order data")
)

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return ErrInvalidOrder
	}
	return nil
}

func init() {
	gob.Register(Order{})
	gob.Register(OrderItem{})
}
