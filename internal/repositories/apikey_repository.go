package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tubeautomator/backend/internal/db"
	"github.com/tubeautomator/backend/internal/models"
)

// APIKeyRepository defines the data access contract for per-user credentials.
type APIKeyRepository interface {
	Upsert(ctx context.Context, record models.APIKeyRecord) error
	Find(ctx context.Context, userID, service string) (models.APIKeyRecord, error)
	StatusForUser(ctx context.Context, userID string) (map[string]bool, error)
}

// PostgresAPIKeyRepository provides PostgreSQL-backed persistence for API keys.
type PostgresAPIKeyRepository struct {
	pool db.Pool
}

// NewPostgresAPIKeyRepository constructs an API key repository backed by PostgreSQL.
func NewPostgresAPIKeyRepository(pool db.Pool) *PostgresAPIKeyRepository {
	return &PostgresAPIKeyRepository{pool: pool}
}

// Upsert stores the credential, replacing any existing key for the same service.
func (r *PostgresAPIKeyRepository) Upsert(ctx context.Context, record models.APIKeyRecord) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO api_keys (id, user_id, service, key_material, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id, service) DO UPDATE
        SET key_material = EXCLUDED.key_material,
            updated_at = EXCLUDED.updated_at
    `, record.ID, record.UserID, record.Service, record.Key, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert api key: %w", err)
	}

	return nil
}

// Find fetches the stored credential for the user and service.
func (r *PostgresAPIKeyRepository) Find(ctx context.Context, userID, service string) (models.APIKeyRecord, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.APIKeyRecord{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, user_id, service, key_material, created_at, updated_at
        FROM api_keys
        WHERE user_id = $1 AND service = $2
    `, userID, service)

	var record models.APIKeyRecord
	if err := row.Scan(&record.ID, &record.UserID, &record.Service, &record.Key, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.APIKeyRecord{}, ErrNotFound
		}
		return models.APIKeyRecord{}, fmt.Errorf("select api key: %w", err)
	}

	record.Configured = record.Key != ""
	return record, nil
}

// StatusForUser reports which services have a stored credential. Key material
// never leaves this layer through the status path.
func (r *PostgresAPIKeyRepository) StatusForUser(ctx context.Context, userID string) (map[string]bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT service, key_material <> ''
        FROM api_keys
        WHERE user_id = $1
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query api key status: %w", err)
	}
	defer rows.Close()

	status := make(map[string]bool)
	for rows.Next() {
		var (
			service    string
			configured bool
		)
		if err := rows.Scan(&service, &configured); err != nil {
			return nil, fmt.Errorf("scan api key status: %w", err)
		}
		status[service] = configured
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api key status: %w", err)
	}

	return status, nil
}
