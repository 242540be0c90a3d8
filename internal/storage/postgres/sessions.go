package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sessionRequestsStorage struct {
	pool *pgxpool.Pool
}

func newSessionRequestsStorage(pool *pgxpool.Pool) *sessionRequestsStorage {
	return &sessionRequestsStorage{pool: pool}
}

const sessionRequestColumns = `
	id, nutritionist_id, client_name, session_type,
	preferred_date, preferred_time, notes, status,
	approved_date, approved_time, session_price_cents, nutritionist_notes,
	created_at, updated_at
`

func scanSessionRequest(row pgx.Row) (storage.SessionRequest, error) {
	var r storage.SessionRequest
	err := row.Scan(
		&r.ID, &r.NutritionistID, &r.ClientName, &r.SessionType,
		&r.PreferredDate, &r.PreferredTime, &r.Notes, &r.Status,
		&r.ApprovedDate, &r.ApprovedTime, &r.SessionPriceCents, &r.NutritionistNotes,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (s *sessionRequestsStorage) List(ctx context.Context, nutritionistID string) ([]storage.SessionRequest, error) {
	query := `
		SELECT ` + sessionRequestColumns + `
		FROM session_requests
		WHERE nutritionist_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, nutritionistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session requests: %w", err)
	}
	defer rows.Close()

	out := []storage.SessionRequest{}
	for rows.Next() {
		r, err := scanSessionRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sessionRequestsStorage) Get(ctx context.Context, nutritionistID string, id uuid.UUID) (storage.SessionRequest, bool, error) {
	query := `
		SELECT ` + sessionRequestColumns + `
		FROM session_requests
		WHERE nutritionist_id = $1 AND id = $2
	`

	r, err := scanSessionRequest(s.pool.QueryRow(ctx, query, nutritionistID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.SessionRequest{}, false, nil
	}
	if err != nil {
		return storage.SessionRequest{}, false, fmt.Errorf("failed to get session request: %w", err)
	}
	return r, true, nil
}

func (s *sessionRequestsStorage) Create(ctx context.Context, req *storage.SessionRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = storage.StatusPending
	}

	query := `
		INSERT INTO session_requests (` + sessionRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := s.pool.Exec(ctx, query,
		req.ID, req.NutritionistID, req.ClientName, req.SessionType,
		req.PreferredDate, req.PreferredTime, req.Notes, req.Status,
		req.ApprovedDate, req.ApprovedTime, req.SessionPriceCents, req.NutritionistNotes,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session request: %w", err)
	}
	return nil
}

func (s *sessionRequestsStorage) Update(ctx context.Context, req *storage.SessionRequest) error {
	query := `
		UPDATE session_requests
		SET status = $3, approved_date = $4, approved_time = $5,
			session_price_cents = $6, nutritionist_notes = $7, updated_at = $8
		WHERE nutritionist_id = $1 AND id = $2
	`

	tag, err := s.pool.Exec(ctx, query,
		req.NutritionistID, req.ID,
		req.Status, req.ApprovedDate, req.ApprovedTime,
		req.SessionPriceCents, req.NutritionistNotes, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update session request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
