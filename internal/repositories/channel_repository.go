package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tubeautomator/backend/internal/db"
	"github.com/tubeautomator/backend/internal/models"
)

// ChannelRepository defines the data access contract for creator channels.
type ChannelRepository interface {
	Create(ctx context.Context, channel models.Channel) error
	FindByUser(ctx context.Context, userID string) (models.Channel, error)
}

// PostgresChannelRepository provides PostgreSQL-backed persistence for channels.
type PostgresChannelRepository struct {
	pool db.Pool
}

// NewPostgresChannelRepository constructs a channel repository backed by PostgreSQL.
func NewPostgresChannelRepository(pool db.Pool) *PostgresChannelRepository {
	return &PostgresChannelRepository{pool: pool}
}

// Create persists a new channel record. A user may own at most one channel.
func (r *PostgresChannelRepository) Create(ctx context.Context, channel models.Channel) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO channels (id, user_id, name, niche, platform_id, logo_url, banner_url, palette, api_key_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, channel.ID, channel.UserID, channel.Name, channel.Niche, channel.PlatformID, channel.LogoURL, channel.BannerURL, channel.Palette, channel.APIKeyID, channel.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert channel: %w", err)
	}

	return nil
}

// FindByUser fetches the channel owned by the user.
func (r *PostgresChannelRepository) FindByUser(ctx context.Context, userID string) (models.Channel, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Channel{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, user_id, name, niche, platform_id, logo_url, banner_url, palette, api_key_id, created_at
        FROM channels
        WHERE user_id = $1
    `, userID)

	var channel models.Channel
	if err := row.Scan(&channel.ID, &channel.UserID, &channel.Name, &channel.Niche, &channel.PlatformID, &channel.LogoURL, &channel.BannerURL, &channel.Palette, &channel.APIKeyID, &channel.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Channel{}, ErrNotFound
		}
		return models.Channel{}, fmt.Errorf("select channel: %w", err)
	}

	return channel, nil
}
