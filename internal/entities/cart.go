package entities

import "errors"

type CartItem struct {
	ID           string
	ItemID       string
	BuyerID      string
	SellerID     string
	SellerName   string
	Title        string
	ImageURL     string
	PriceCents   int64
	Quantity     int
	WeightTierID string
}

func (i CartItem) LineTotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// SellerGroup is the subset of a buyer's cart belonging to one seller,
// the unit of shipping quoting and checkout sessioning.
type SellerGroup struct {
	SellerID      string
	SellerName    string
	Items         []CartItem
	SubtotalCents int64
}

func (g SellerGroup) TotalQuantity() int {
	total := 0
	for _, it := range g.Items {
		total += it.Quantity
	}
	return total
}

type Cart struct {
	BuyerID    string
	Groups     []SellerGroup
	TotalCents int64
}

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// GroupBySeller splits flat cart items into per-seller groups, preserving
// the order in which sellers first appear. No item is dropped or duplicated.
func GroupBySeller(items []CartItem) []SellerGroup {
	index := make(map[string]int, len(items))
	groups := make([]SellerGroup, 0, len(items))

	for _, it := range items {
		i, ok := index[it.SellerID]
		if !ok {
			i = len(groups)
			index[it.SellerID] = i
			groups = append(groups, SellerGroup{
				SellerID:   it.SellerID,
				SellerName: it.SellerName,
			})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].SubtotalCents += it.LineTotalCents()
	}

	return groups
}
