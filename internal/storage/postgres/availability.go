package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type availabilityStorage struct {
	pool *pgxpool.Pool
}

func newAvailabilityStorage(pool *pgxpool.Pool) *availabilityStorage {
	return &availabilityStorage{pool: pool}
}

func (s *availabilityStorage) ListWeeklyRules(ctx context.Context, nutritionistID string) ([]storage.AvailabilityRule, error) {
	query := `
		SELECT id, nutritionist_id, day_of_week, start_minutes, end_minutes, slot_minutes, is_available, created_at, updated_at
		FROM availability_rules
		WHERE nutritionist_id = $1
		ORDER BY day_of_week ASC
	`

	rows, err := s.pool.Query(ctx, query, nutritionistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules: %w", err)
	}
	defer rows.Close()

	out := []storage.AvailabilityRule{}
	for rows.Next() {
		var r storage.AvailabilityRule
		if err := rows.Scan(
			&r.ID, &r.NutritionistID, &r.DayOfWeek,
			&r.StartMinutes, &r.EndMinutes, &r.SlotMinutes, &r.IsAvailable,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan availability rule: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceWeeklyRules swaps the full rule set inside one transaction so readers
// never observe a partially replaced week.
func (s *availabilityStorage) ReplaceWeeklyRules(ctx context.Context, nutritionistID string, rules []storage.AvailabilityRuleUpsert) ([]storage.AvailabilityRule, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules WHERE nutritionist_id = $1`, nutritionistID); err != nil {
		return nil, fmt.Errorf("failed to clear availability rules: %w", err)
	}

	now := time.Now().UTC()
	out := make([]storage.AvailabilityRule, 0, len(rules))
	for _, up := range rules {
		row := storage.AvailabilityRule{
			ID:             uuid.New(),
			NutritionistID: nutritionistID,
			DayOfWeek:      up.DayOfWeek,
			StartMinutes:   up.StartMinutes,
			EndMinutes:     up.EndMinutes,
			SlotMinutes:    up.SlotMinutes,
			IsAvailable:    up.IsAvailable,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO availability_rules (id, nutritionist_id, day_of_week, start_minutes, end_minutes, slot_minutes, is_available, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, row.ID, row.NutritionistID, row.DayOfWeek, row.StartMinutes, row.EndMinutes, row.SlotMinutes, row.IsAvailable, row.CreatedAt, row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert availability rule: %w", err)
		}
		out = append(out, row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit availability rules: %w", err)
	}
	return out, nil
}

func (s *availabilityStorage) ListBlocks(ctx context.Context, nutritionistID string, from, to string) ([]storage.BlockedRange, error) {
	query := `
		SELECT id, nutritionist_id, date, start_minutes, end_minutes, reason, created_at
		FROM blocked_ranges
		WHERE nutritionist_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, start_minutes ASC
	`

	rows, err := s.pool.Query(ctx, query, nutritionistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked ranges: %w", err)
	}
	defer rows.Close()

	out := []storage.BlockedRange{}
	for rows.Next() {
		var b storage.BlockedRange
		if err := rows.Scan(&b.ID, &b.NutritionistID, &b.Date, &b.StartMinutes, &b.EndMinutes, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blocked range: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *availabilityStorage) CreateBlock(ctx context.Context, block *storage.BlockedRange) error {
	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO blocked_ranges (id, nutritionist_id, date, start_minutes, end_minutes, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		block.ID, block.NutritionistID, block.Date, block.StartMinutes, block.EndMinutes, block.Reason, block.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blocked range: %w", err)
	}
	return nil
}

func (s *availabilityStorage) DeleteBlock(ctx context.Context, nutritionistID string, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blocked_ranges WHERE nutritionist_id = $1 AND id = $2`, nutritionistID, id)
	if err != nil {
		return fmt.Errorf("failed to delete blocked range: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
