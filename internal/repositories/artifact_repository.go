package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tubeautomator/backend/internal/db"
	"github.com/tubeautomator/backend/internal/models"
)

// ArtifactRepository defines the data access contract for generated artifacts.
type ArtifactRepository interface {
	CreateAudio(ctx context.Context, artifact models.AudioArtifact, userID string) error
	MarkAudioReady(ctx context.Context, audioID, location string) error
	MarkAudioFailed(ctx context.Context, audioID string) error
	CreateVideo(ctx context.Context, artifact models.VideoArtifact, userID string) error
}

// PostgresArtifactRepository provides PostgreSQL-backed persistence for artifacts.
type PostgresArtifactRepository struct {
	pool db.Pool
}

// NewPostgresArtifactRepository constructs an artifact repository backed by PostgreSQL.
func NewPostgresArtifactRepository(pool db.Pool) *PostgresArtifactRepository {
	return &PostgresArtifactRepository{pool: pool}
}

// CreateAudio persists a new audio artifact record.
func (r *PostgresArtifactRepository) CreateAudio(ctx context.Context, artifact models.AudioArtifact, userID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO audio_artifacts (id, user_id, voice_id, audio_url, duration, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, artifact.ID, userID, artifact.VoiceID, artifact.AudioURL, artifact.Duration, artifact.Status, artifact.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert audio artifact: %w", err)
	}

	return nil
}

// MarkAudioReady records the final location of a persisted audio artifact.
func (r *PostgresArtifactRepository) MarkAudioReady(ctx context.Context, audioID, location string) error {
	return r.setAudioStatus(ctx, audioID, models.ArtifactStatusReady, location)
}

// MarkAudioFailed flags an audio artifact whose persistence failed.
func (r *PostgresArtifactRepository) MarkAudioFailed(ctx context.Context, audioID string) error {
	return r.setAudioStatus(ctx, audioID, models.ArtifactStatusFailed, "")
}

func (r *PostgresArtifactRepository) setAudioStatus(ctx context.Context, audioID, status, location string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE audio_artifacts
        SET status = $2, audio_url = COALESCE(NULLIF($3, ''), audio_url)
        WHERE id = $1
    `, audioID, status, location)
	if err != nil {
		return fmt.Errorf("update audio artifact: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// CreateVideo persists a new video artifact record.
func (r *PostgresArtifactRepository) CreateVideo(ctx context.Context, artifact models.VideoArtifact, userID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO video_artifacts (id, user_id, script_id, audio_id, status, video_url, thumbnail_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, artifact.ID, userID, artifact.ScriptID, artifact.AudioID, artifact.Status, artifact.VideoURL, artifact.ThumbnailURL, artifact.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert video artifact: %w", err)
	}

	return nil
}
