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

type dietPlansStorage struct {
	pool *pgxpool.Pool
}

func newDietPlansStorage(pool *pgxpool.Pool) *dietPlansStorage {
	return &dietPlansStorage{pool: pool}
}

func (s *dietPlansStorage) Get(ctx context.Context, nutritionistID string, requestID uuid.UUID) (storage.DietPlanRecord, bool, error) {
	query := `
		SELECT id, request_id, nutritionist_id, plan_name, description, total_weeks, status, payload, created_at, updated_at
		FROM diet_plans
		WHERE nutritionist_id = $1 AND request_id = $2
	`

	var rec storage.DietPlanRecord
	err := s.pool.QueryRow(ctx, query, nutritionistID, requestID).Scan(
		&rec.ID, &rec.RequestID, &rec.NutritionistID,
		&rec.PlanName, &rec.Description, &rec.TotalWeeks, &rec.Status, &rec.Payload,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.DietPlanRecord{}, false, nil
	}
	if err != nil {
		return storage.DietPlanRecord{}, false, fmt.Errorf("failed to get diet plan: %w", err)
	}
	return rec, true, nil
}

// Replace upserts the single plan record per request. request_id is unique so
// a repeated save keeps the original row id and created_at.
func (s *dietPlansStorage) Replace(ctx context.Context, record *storage.DietPlanRecord) (storage.DietPlanRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO diet_plans (id, request_id, nutritionist_id, plan_name, description, total_weeks, status, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (request_id) DO UPDATE
		SET plan_name = EXCLUDED.plan_name,
			description = EXCLUDED.description,
			total_weeks = EXCLUDED.total_weeks,
			status = EXCLUDED.status,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
		WHERE diet_plans.nutritionist_id = EXCLUDED.nutritionist_id
		RETURNING id, request_id, nutritionist_id, plan_name, description, total_weeks, status, payload, created_at, updated_at
	`

	var rec storage.DietPlanRecord
	err := s.pool.QueryRow(ctx, query,
		record.ID, record.RequestID, record.NutritionistID,
		record.PlanName, record.Description, record.TotalWeeks, record.Status, record.Payload,
		now,
	).Scan(
		&rec.ID, &rec.RequestID, &rec.NutritionistID,
		&rec.PlanName, &rec.Description, &rec.TotalWeeks, &rec.Status, &rec.Payload,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return storage.DietPlanRecord{}, fmt.Errorf("failed to replace diet plan: %w", err)
	}
	return rec, nil
}
