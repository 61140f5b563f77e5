package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thriftly/checkout-service/internal/entities"

	"golang.org/x/sync/errgroup"
)

type RateClient interface {
	GetRates(ctx context.Context, from, to entities.Address, parcel entities.Parcel) ([]entities.Rate, error)
}

type SellerAddressRepo interface {
	GetSellerAddress(ctx context.Context, sellerID string) (entities.Address, error)
}

type shippingService struct {
	logger *slog.Logger
	repo   SellerAddressRepo
	rates  RateClient
}

func NewShippingService(logger *slog.Logger, repo SellerAddressRepo, rates RateClient) *shippingService {
	return &shippingService{
		logger: logger.With(slog.String("service", "shipping")),
		repo:   repo,
		rates:  rates,
	}
}

// QuoteRates fetches rates for every seller group concurrently. One seller's
// failure is recorded under Errors for that seller only and never blocks the
// others; the cheapest rate per seller is auto-selected.
func (s *shippingService) QuoteRates(ctx context.Context, groups []entities.SellerGroup, to entities.Address) (entities.QuoteSet, error) {
	if !to.Complete() {
		return entities.QuoteSet{}, entities.ErrIncompleteAddress
	}
	if len(groups) == 0 {
		return entities.QuoteSet{}, entities.ErrCartEmpty
	}

	res := entities.QuoteSet{
		Rates:    make(map[string][]entities.Rate, len(groups)),
		Selected: make(map[string]entities.Rate, len(groups)),
		Errors:   make(map[string]string),
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, group := range groups {
		group := group
		g.Go(func() error {
			rates, err := s.quoteSeller(ctx, group, to)

			mu.Lock()
			defer mu.Unlock()

			// ошибки не прерывают группу, изоляция по продавцам
			if err != nil {
				s.logger.Warn("rate quote failed",
					slog.String("seller_id", group.SellerID), slog.Any("error", err))
				res.Errors[group.SellerID] = err.Error()
				return nil
			}

			res.Rates[group.SellerID] = rates
			res.Selected[group.SellerID] = cheapestRate(rates)
			return nil
		})
	}

	g.Wait()
	return res, nil
}

func (s *shippingService) quoteSeller(ctx context.Context, group entities.SellerGroup, to entities.Address) ([]entities.Rate, error) {
	from, err := s.repo.GetSellerAddress(ctx, group.SellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seller address: %w", err)
	}

	parcel, err := entities.BuildParcel(group)
	if err != nil {
		return nil, fmt.Errorf("failed to build parcel: %w", err)
	}

	rates, err := s.rates.GetRates(ctx, from, to, parcel)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	if len(rates) == 0 {
		return nil, entities.ErrNoRates
	}
	return rates, nil
}

func cheapestRate(rates []entities.Rate) entities.Rate {
	cheapest := rates[0]
	for _, r := range rates[1:] {
		if r.AmountCents < cheapest.AmountCents {
			cheapest = r
		}
	}
	return cheapest
}
