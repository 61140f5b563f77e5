package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/thriftly/checkout-service/internal/config"
	"github.com/thriftly/checkout-service/internal/entities"
)

// StripeGateway creates one hosted Checkout Session per seller group.
type StripeGateway struct {
	client     *client.API
	successURL string
	cancelURL  string
}

func NewStripeGateway(cfg config.Stripe) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)

	return &StripeGateway{
		client:     sc,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, attemptID uuid.UUID, group entities.SellerGroup, shippingCents int64) (entities.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(group.Items))
	for _, it := range group.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(it.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(it.PriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Title),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(attemptID.String()),
		LineItems:         lineItems,
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{{
			ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
				DisplayName: stripe.String("Shipping"),
				Type:        stripe.String("fixed_amount"),
				FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
					Amount:   stripe.Int64(shippingCents),
					Currency: stripe.String(string(stripe.CurrencyUSD)),
				},
			},
		}},
		Metadata: map[string]string{
			"attempt_id": attemptID.String(),
			"seller_id":  group.SellerID,
		},
	}
	params.Context = ctx
	// защита от дублей сессий при повторе сетевого вызова
	params.IdempotencyKey = stripe.String(attemptID.String() + ":" + group.SellerID)

	sess, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		return entities.CheckoutSession{}, fmt.Errorf("stripe session create failed: %w", err)
	}

	return entities.CheckoutSession{
		SessionID:      sess.ID,
		SellerID:       group.SellerID,
		SellerName:     group.SellerName,
		URL:            sess.URL,
		ItemTotalCents: group.SubtotalCents,
		ShippingCents:  shippingCents,
		Items:          group.Items,
	}, nil
}

func (g *StripeGateway) ExpireSession(ctx context.Context, sessionID string) error {
	params := &stripe.CheckoutSessionExpireParams{}
	params.Context = ctx

	if _, err := g.client.CheckoutSessions.Expire(sessionID, params); err != nil {
		return fmt.Errorf("stripe session expire failed: %w", err)
	}
	return nil
}
