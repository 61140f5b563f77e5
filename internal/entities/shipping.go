package entities

import "errors"

type Address struct {
	Name    string
	Street1 string
	Street2 string
	City    string
	State   string
	ZIP     string
	Country string
	Phone   string
	Email   string
}

// Complete reports whether the address carries every field required for a
// rate quote.
func (a Address) Complete() bool {
	return a.Street1 != "" && a.City != "" && a.State != "" && a.ZIP != ""
}

// Parcel dimensions are inches, weight is ounces.
type Parcel struct {
	Length   float64
	Width    float64
	Height   float64
	WeightOz float64
}

type Rate struct {
	ObjectID      string
	AmountCents   int64
	Currency      string
	Provider      string
	ServiceLevel  string
	EstimatedDays int
}

// QuoteSet is the outcome of quoting every seller group of one cart: full
// rate lists, the auto-selected cheapest rate, and per-seller failures.
// A seller appears in exactly one of Selected or Errors.
type QuoteSet struct {
	Rates    map[string][]Rate
	Selected map[string]Rate
	Errors   map[string]string
}

var (
	ErrIncompleteAddress = errors.New("shipping address is incomplete")
	ErrNoRates           = errors.New("no shipping rates available")
	ErrSellerNotFound    = errors.New("seller address not found")
	ErrUnknownWeightTier = errors.New("unknown weight tier")
)
