package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tubeautomator/backend/internal/billing"
	"github.com/tubeautomator/backend/internal/db"
	"github.com/tubeautomator/backend/internal/models"
)

// SubscriptionRepository defines the data access contract for subscriptions.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub models.Subscription) error
	FindByUser(ctx context.Context, userID string) (models.Subscription, error)
}

// PostgresSubscriptionRepository provides PostgreSQL-backed persistence for subscriptions.
type PostgresSubscriptionRepository struct {
	pool db.Pool
}

// NewPostgresSubscriptionRepository constructs a subscription repository backed by PostgreSQL.
func NewPostgresSubscriptionRepository(pool db.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

// Upsert stores the subscription, replacing any existing row for the user.
// A user holds at most one subscription.
func (r *PostgresSubscriptionRepository) Upsert(ctx context.Context, sub models.Subscription) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO subscriptions (id, user_id, plan_id, status, period_end, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (user_id) DO UPDATE
        SET plan_id = EXCLUDED.plan_id,
            status = EXCLUDED.status,
            period_end = EXCLUDED.period_end,
            updated_at = EXCLUDED.updated_at
    `, sub.ID, sub.UserID, sub.PlanID, sub.Status, sub.PeriodEnd, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	return nil
}

// FindByUser fetches the user's subscription. Limits are derived from the plan
// table rather than stored, so they can never drift from the plan definitions.
func (r *PostgresSubscriptionRepository) FindByUser(ctx context.Context, userID string) (models.Subscription, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, user_id, plan_id, status, period_end, created_at, updated_at
        FROM subscriptions
        WHERE user_id = $1
    `, userID)

	var sub models.Subscription
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status, &sub.PeriodEnd, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Subscription{}, ErrNotFound
		}
		return models.Subscription{}, fmt.Errorf("select subscription: %w", err)
	}

	sub.Limits = billing.LimitsFor(sub.PlanID)
	return sub, nil
}
