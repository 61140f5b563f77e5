package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) SaveAttempt(ctx context.Context, a entities.CheckoutAttempt) error {
	query, args := r.qb.Insert("checkout_attempts").
		Columns("id", "buyer_id", "status", "current_index", "total_sessions", "created_at").
		Values(a.ID, a.BuyerID, a.Status.String(), a.CurrentIndex, a.TotalSessions, a.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

func (r *postgresRepo) SaveSessions(ctx context.Context, attemptID uuid.UUID, sessions []entities.CheckoutSession) error {
	if len(sessions) == 0 {
		return nil
	}

	q := r.qb.Insert("checkout_sessions").
		Columns("session_id", "attempt_id", "seller_id", "seller_name", "url",
			"position", "status", "item_total_cents", "shipping_cents").
		Suffix("ON CONFLICT (session_id) DO NOTHING")

	for _, s := range sessions {
		q = q.Values(s.SessionID, attemptID, s.SellerID, s.SellerName, s.URL,
			s.Position, string(s.Status), s.ItemTotalCents, s.ShippingCents)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	iq := r.qb.Insert("checkout_session_items").
		Columns("session_id", "item_id", "title", "image_url", "price_cents", "quantity").
		Suffix("ON CONFLICT (session_id, item_id) DO NOTHING")

	count := 0
	for _, s := range sessions {
		for _, it := range s.Items {
			iq = iq.Values(s.SessionID, it.ItemID, it.Title, nullString(it.ImageURL), it.PriceCents, it.Quantity)
			count++
		}
	}
	if count == 0 {
		return nil
	}

	query, args = iq.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save session items: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetAttempt(ctx context.Context, id uuid.UUID) (entities.CheckoutAttempt, error) {
	query, args := r.qb.Select(
		"id", "buyer_id", "status", "current_index", "total_sessions", "created_at").
		From("checkout_attempts").
		Where(sq.Eq{"id": id}).
		MustSql()

	var attempt CheckoutAttempt
	err := r.getContext(ctx, &attempt, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.CheckoutAttempt{}, entities.ErrAttemptNotFound
	}
	if err != nil {
		return entities.CheckoutAttempt{}, fmt.Errorf("failed to get attempt: %w", err)
	}

	query, args = r.qb.Select(
		"session_id", "attempt_id", "seller_id", "seller_name", "url",
		"position", "status", "item_total_cents", "shipping_cents").
		From("checkout_sessions").
		Where(sq.Eq{"attempt_id": id}).
		OrderBy("position ASC").
		MustSql()

	var rows []CheckoutSession
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return entities.CheckoutAttempt{}, fmt.Errorf("failed to select sessions: %w", err)
	}

	sessions := make([]entities.CheckoutSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, SessionToEntity(row, nil))
	}

	return AttemptToEntity(attempt, sessions), nil
}

func (r *postgresRepo) UpdateAttemptProgress(ctx context.Context, id uuid.UUID, currentIndex int, status entities.CheckoutStatus) error {
	query, args := r.qb.Update("checkout_attempts").
		Set("current_index", currentIndex).
		Set("status", status.String()).
		Where(sq.Eq{"id": id}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update attempt progress: %w", err)
	}
	return nil
}

// GetSession loads one session with its item snapshot.
func (r *postgresRepo) GetSession(ctx context.Context, sessionID string) (entities.CheckoutSession, error) {
	query, args := r.qb.Select(
		"session_id", "attempt_id", "seller_id", "seller_name", "url",
		"position", "status", "item_total_cents", "shipping_cents").
		From("checkout_sessions").
		Where(sq.Eq{"session_id": sessionID}).
		MustSql()

	var row CheckoutSession
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.CheckoutSession{}, entities.ErrSessionNotFound
	}
	if err != nil {
		return entities.CheckoutSession{}, fmt.Errorf("failed to get session: %w", err)
	}

	query, args = r.qb.Select(
		"session_id", "item_id", "title", "image_url", "price_cents", "quantity").
		From("checkout_session_items").
		Where(sq.Eq{"session_id": sessionID}).
		MustSql()

	var items []SessionItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return entities.CheckoutSession{}, fmt.Errorf("failed to select session items: %w", err)
	}

	return SessionToEntity(row, items), nil
}

func (r *postgresRepo) GetSessionBuyer(ctx context.Context, sessionID string) (string, error) {
	query, args := r.qb.Select("a.buyer_id").
		From("checkout_sessions s").
		Join("checkout_attempts a ON a.id = s.attempt_id").
		Where(sq.Eq{"s.session_id": sessionID}).
		MustSql()

	var buyerID string
	err := r.getContext(ctx, &buyerID, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return "", entities.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session buyer: %w", err)
	}
	return buyerID, nil
}

func (r *postgresRepo) UpdateSessionStatus(ctx context.Context, sessionID string, status entities.SessionStatus) error {
	query, args := r.qb.Update("checkout_sessions").
		Set("status", string(status)).
		Where(sq.Eq{"session_id": sessionID}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	return nil
}
