package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CheckoutStatus string

const (
	CheckoutStatusPending    CheckoutStatus = "PENDING"
	CheckoutStatusInProgress CheckoutStatus = "IN_PROGRESS"
	CheckoutStatusCompleted  CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed     CheckoutStatus = "FAILED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed
}

func (s CheckoutStatus) String() string {
	return string(s)
}

type SessionStatus string

const (
	SessionStatusCreated SessionStatus = "CREATED"
	SessionStatusPaid    SessionStatus = "PAID"
	SessionStatusExpired SessionStatus = "EXPIRED"
)

// CheckoutSession is one payment-provider session covering exactly one
// seller's items, with the cart snapshot it was created from.
type CheckoutSession struct {
	SessionID      string
	AttemptID      uuid.UUID
	SellerID       string
	SellerName     string
	URL            string
	Position       int
	Status         SessionStatus
	ItemTotalCents int64
	ShippingCents  int64
	Items          []CartItem
}

// CheckoutAttempt ties one buyer action to its N per-seller sessions.
// CurrentIndex counts sessions already handed to the buyer; sessions at
// Position >= CurrentIndex are the pending redirect queue.
type CheckoutAttempt struct {
	ID            uuid.UUID
	BuyerID       string
	Status        CheckoutStatus
	CurrentIndex  int
	TotalSessions int
	CreatedAt     time.Time
	Sessions      []CheckoutSession
}

func (a CheckoutAttempt) PendingSessions() []CheckoutSession {
	if a.CurrentIndex >= len(a.Sessions) {
		return nil
	}
	return a.Sessions[a.CurrentIndex:]
}

// CheckoutInput is what the buyer submits to start an attempt. Sellers in
// AcknowledgedSellers failed quoting and were accepted by the buyer as
// excluded from this attempt; their items stay in the cart.
type CheckoutInput struct {
	BuyerID             string
	To                  Address
	SelectedRates       map[string]Rate
	AcknowledgedSellers map[string]string
}

var (
	ErrCheckoutBlocked   = errors.New("every seller needs a selected rate or an acknowledged shipping error")
	ErrAttemptNotFound   = errors.New("checkout attempt not found")
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrSessionCreation   = errors.New("failed to create checkout session")
	ErrNothingToCheckout = errors.New("no seller group is eligible for checkout")
)
