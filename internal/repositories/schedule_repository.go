package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tubeautomator/backend/internal/db"
	"github.com/tubeautomator/backend/internal/models"
)

// ScheduleRepository defines the data access contract for scheduled videos.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule models.ScheduledVideo) error
	ListForUser(ctx context.Context, userID string) ([]models.ScheduledVideo, error)
}

// PostgresScheduleRepository provides PostgreSQL-backed persistence for publish intents.
type PostgresScheduleRepository struct {
	pool db.Pool
}

// NewPostgresScheduleRepository constructs a schedule repository backed by PostgreSQL.
func NewPostgresScheduleRepository(pool db.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{pool: pool}
}

// Create persists a new publish intent.
func (r *PostgresScheduleRepository) Create(ctx context.Context, schedule models.ScheduledVideo) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO scheduled_videos (id, user_id, video_id, title, scheduled_time, visibility, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, schedule.ID, schedule.UserID, schedule.VideoID, schedule.Title, schedule.ScheduledTime, schedule.Visibility, schedule.Status, schedule.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert scheduled video: %w", err)
	}

	return nil
}

// ListForUser returns the user's publish intents ordered by scheduled time ascending.
func (r *PostgresScheduleRepository) ListForUser(ctx context.Context, userID string) ([]models.ScheduledVideo, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, user_id, video_id, title, scheduled_time, visibility, status, created_at
        FROM scheduled_videos
        WHERE user_id = $1
        ORDER BY scheduled_time ASC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query scheduled videos: %w", err)
	}
	defer rows.Close()

	var schedules []models.ScheduledVideo
	for rows.Next() {
		var schedule models.ScheduledVideo
		if err := rows.Scan(&schedule.ID, &schedule.UserID, &schedule.VideoID, &schedule.Title, &schedule.ScheduledTime, &schedule.Visibility, &schedule.Status, &schedule.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan scheduled video: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scheduled videos: %w", err)
	}

	return schedules, nil
}
