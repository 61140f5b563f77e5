package entities

// WeightTier maps a listing's packaging weight bucket to parcel dimensions
// used for rate lookups.
type WeightTier struct {
	ID          string
	Label       string
	MaxWeightOz float64
	Length      float64
	Width       float64
	Height      float64
}

var weightTiers = []WeightTier{
	{ID: "up-to-4oz", Label: "Up to 4 oz", MaxWeightOz: 4, Length: 10, Width: 7, Height: 1},
	{ID: "up-to-8oz", Label: "Up to 8 oz", MaxWeightOz: 8, Length: 10, Width: 7, Height: 2},
	{ID: "up-to-16oz", Label: "Up to 1 lb", MaxWeightOz: 16, Length: 12, Width: 9, Height: 3},
	{ID: "up-to-32oz", Label: "Up to 2 lb", MaxWeightOz: 32, Length: 14, Width: 10, Height: 4},
	{ID: "up-to-80oz", Label: "Up to 5 lb", MaxWeightOz: 80, Length: 16, Width: 12, Height: 6},
	{ID: "up-to-160oz", Label: "Up to 10 lb", MaxWeightOz: 160, Length: 18, Width: 14, Height: 8},
}

const defaultWeightTierID = "up-to-16oz"

func WeightTierByID(id string) (WeightTier, bool) {
	for _, t := range weightTiers {
		if t.ID == id {
			return t, true
		}
	}
	return WeightTier{}, false
}

// HeaviestTier picks the tier with the maximum MaxWeightOz among the items.
// Items without a tier fall back to the default one; on equal weight the
// first occurrence wins.
func HeaviestTier(items []CartItem) (WeightTier, error) {
	if len(items) == 0 {
		return WeightTier{}, ErrCartEmpty
	}

	var heaviest WeightTier
	for _, it := range items {
		id := it.WeightTierID
		if id == "" {
			id = defaultWeightTierID
		}
		tier, ok := WeightTierByID(id)
		if !ok {
			return WeightTier{}, ErrUnknownWeightTier
		}
		if tier.MaxWeightOz > heaviest.MaxWeightOz {
			heaviest = tier
		}
	}
	return heaviest, nil
}

// BuildParcel sizes a parcel from the group's heaviest tier, scaling weight
// by the total item quantity.
func BuildParcel(group SellerGroup) (Parcel, error) {
	tier, err := HeaviestTier(group.Items)
	if err != nil {
		return Parcel{}, err
	}
	return Parcel{
		Length:   tier.Length,
		Width:    tier.Width,
		Height:   tier.Height,
		WeightOz: tier.MaxWeightOz * float64(group.TotalQuantity()),
	}, nil
}
