package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"
	"github.com/thriftly/checkout-service/pkg/trm"
)

type PaymentGateway interface {
	CreateSession(ctx context.Context, attemptID uuid.UUID, group entities.SellerGroup, shippingCents int64) (entities.CheckoutSession, error)
	ExpireSession(ctx context.Context, sessionID string) error
}

type CheckoutRepo interface {
	ListCartItems(ctx context.Context, buyerID string) ([]entities.CartItem, error)

	// Вставки идемпотентны, используется ON CONFLICT DO NOTHING
	SaveAttempt(ctx context.Context, a entities.CheckoutAttempt) error
	SaveSessions(ctx context.Context, attemptID uuid.UUID, sessions []entities.CheckoutSession) error

	GetAttempt(ctx context.Context, id uuid.UUID) (entities.CheckoutAttempt, error)
	UpdateAttemptProgress(ctx context.Context, id uuid.UUID, currentIndex int, status entities.CheckoutStatus) error
}

type checkoutService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      CheckoutRepo
	gateway   PaymentGateway
}

func NewCheckoutService(logger *slog.Logger, txManager trm.Manager, repo CheckoutRepo, gateway PaymentGateway) *checkoutService {
	return &checkoutService{
		logger:    logger.With(slog.String("service", "checkout")),
		txManager: txManager,
		repo:      repo,
		gateway:   gateway,
	}
}

// Begin validates the buyer's input, creates one payment session per
// eligible seller group and persists the attempt with its redirect queue.
// No session call is issued unless every seller group has either a selected
// rate or an error the buyer acknowledged. If creating any session fails,
// sessions already created in this attempt are expired before returning.
func (s *checkoutService) Begin(ctx context.Context, in entities.CheckoutInput) (entities.CheckoutAttempt, error) {
	if !in.To.Complete() {
		return entities.CheckoutAttempt{}, entities.ErrIncompleteAddress
	}

	items, err := s.repo.ListCartItems(ctx, in.BuyerID)
	if err != nil {
		return entities.CheckoutAttempt{}, fmt.Errorf("failed to list cart items: %w", err)
	}
	if len(items) == 0 {
		return entities.CheckoutAttempt{}, entities.ErrCartEmpty
	}

	groups := entities.GroupBySeller(items)

	eligible := make([]entities.SellerGroup, 0, len(groups))
	for _, g := range groups {
		if _, ok := in.SelectedRates[g.SellerID]; ok {
			eligible = append(eligible, g)
			continue
		}
		if _, ok := in.AcknowledgedSellers[g.SellerID]; ok {
			continue
		}
		return entities.CheckoutAttempt{}, entities.ErrCheckoutBlocked
	}
	if len(eligible) == 0 {
		return entities.CheckoutAttempt{}, entities.ErrNothingToCheckout
	}

	attemptID := uuid.New()
	sessions := make([]entities.CheckoutSession, 0, len(eligible))

	for i, g := range eligible {
		rate := in.SelectedRates[g.SellerID]

		sess, err := s.gateway.CreateSession(ctx, attemptID, g, rate.AmountCents)
		if err != nil {
			s.compensate(ctx, sessions)
			return entities.CheckoutAttempt{}, fmt.Errorf("%w: seller %s: %v", entities.ErrSessionCreation, g.SellerID, err)
		}

		sess.AttemptID = attemptID
		sess.Position = i
		sess.Status = entities.SessionStatusCreated
		sess.ShippingCents = rate.AmountCents
		sessions = append(sessions, sess)
	}

	status := entities.CheckoutStatusInProgress
	if len(sessions) == 1 {
		// один продавец: очередь редиректов не нужна
		status = entities.CheckoutStatusCompleted
	}

	attempt := entities.CheckoutAttempt{
		ID:            attemptID,
		BuyerID:       in.BuyerID,
		Status:        status,
		CurrentIndex:  1,
		TotalSessions: len(sessions),
		CreatedAt:     time.Now().UTC(),
		Sessions:      sessions,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveAttempt(ctx, attempt); err != nil {
			return err
		}
		return s.repo.SaveSessions(ctx, attemptID, sessions)
	})
	if err != nil {
		s.compensate(ctx, sessions)
		return entities.CheckoutAttempt{}, fmt.Errorf("failed to persist attempt: %w", err)
	}

	s.logger.Info("checkout attempt started",
		slog.String("attempt_id", attemptID.String()),
		slog.String("buyer_id", in.BuyerID),
		slog.Int("sessions", len(sessions)),
	)

	return attempt, nil
}

// Advance pops the next redirect URL as the buyer lands on a success page.
// done is true when the queue is exhausted.
func (s *checkoutService) Advance(ctx context.Context, attemptID uuid.UUID) (url string, done bool, err error) {
	attempt, err := s.repo.GetAttempt(ctx, attemptID)
	if err != nil {
		return "", false, err
	}

	if attempt.Status.IsTerminal() || attempt.CurrentIndex >= attempt.TotalSessions {
		if !attempt.Status.IsTerminal() {
			if err := s.repo.UpdateAttemptProgress(ctx, attemptID, attempt.CurrentIndex, entities.CheckoutStatusCompleted); err != nil {
				return "", false, err
			}
		}
		return "", true, nil
	}

	next := attempt.Sessions[attempt.CurrentIndex]

	newIndex := attempt.CurrentIndex + 1
	status := entities.CheckoutStatusInProgress
	if newIndex >= attempt.TotalSessions {
		status = entities.CheckoutStatusCompleted
	}

	if err := s.repo.UpdateAttemptProgress(ctx, attemptID, newIndex, status); err != nil {
		return "", false, err
	}

	return next.URL, false, nil
}

func (s *checkoutService) compensate(ctx context.Context, sessions []entities.CheckoutSession) {
	for _, sess := range sessions {
		if err := s.gateway.ExpireSession(ctx, sess.SessionID); err != nil {
			s.logger.Error("failed to expire session during compensation",
				slog.String("session_id", sess.SessionID), slog.Any("error", err))
		}
	}
}
