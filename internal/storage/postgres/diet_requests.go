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

type dietRequestsStorage struct {
	pool *pgxpool.Pool
}

func newDietRequestsStorage(pool *pgxpool.Pool) *dietRequestsStorage {
	return &dietRequestsStorage{pool: pool}
}

const dietRequestColumns = `
	id, nutritionist_id, client_name, client_email,
	current_weight_kg, height_cm, target_weight_kg,
	fitness_goal, monthly_budget, dietary_restrictions, notes,
	status, diet_plan_completed, nutritionist_notes, preparation_time, meal_plan,
	created_at, updated_at
`

func scanDietRequest(row pgx.Row) (storage.DietPlanRequest, error) {
	var r storage.DietPlanRequest
	err := row.Scan(
		&r.ID, &r.NutritionistID, &r.ClientName, &r.ClientEmail,
		&r.CurrentWeightKg, &r.HeightCm, &r.TargetWeightKg,
		&r.FitnessGoal, &r.MonthlyBudget, &r.DietaryRestrictions, &r.Notes,
		&r.Status, &r.DietPlanCompleted, &r.NutritionistNotes, &r.PreparationTime, &r.MealPlan,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (s *dietRequestsStorage) List(ctx context.Context, nutritionistID string) ([]storage.DietPlanRequest, error) {
	query := `
		SELECT ` + dietRequestColumns + `
		FROM diet_plan_requests
		WHERE nutritionist_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, nutritionistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list diet requests: %w", err)
	}
	defer rows.Close()

	out := []storage.DietPlanRequest{}
	for rows.Next() {
		r, err := scanDietRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diet request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *dietRequestsStorage) Get(ctx context.Context, nutritionistID string, id uuid.UUID) (storage.DietPlanRequest, bool, error) {
	query := `
		SELECT ` + dietRequestColumns + `
		FROM diet_plan_requests
		WHERE nutritionist_id = $1 AND id = $2
	`

	r, err := scanDietRequest(s.pool.QueryRow(ctx, query, nutritionistID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.DietPlanRequest{}, false, nil
	}
	if err != nil {
		return storage.DietPlanRequest{}, false, fmt.Errorf("failed to get diet request: %w", err)
	}
	return r, true, nil
}

func (s *dietRequestsStorage) Create(ctx context.Context, req *storage.DietPlanRequest) error {
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
		INSERT INTO diet_plan_requests (` + dietRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := s.pool.Exec(ctx, query,
		req.ID, req.NutritionistID, req.ClientName, req.ClientEmail,
		req.CurrentWeightKg, req.HeightCm, req.TargetWeightKg,
		req.FitnessGoal, req.MonthlyBudget, req.DietaryRestrictions, req.Notes,
		req.Status, req.DietPlanCompleted, req.NutritionistNotes, req.PreparationTime, req.MealPlan,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create diet request: %w", err)
	}
	return nil
}

func (s *dietRequestsStorage) Update(ctx context.Context, req *storage.DietPlanRequest) error {
	query := `
		UPDATE diet_plan_requests
		SET status = $3, diet_plan_completed = $4, nutritionist_notes = $5,
			preparation_time = $6, meal_plan = $7, updated_at = $8
		WHERE nutritionist_id = $1 AND id = $2
	`

	tag, err := s.pool.Exec(ctx, query,
		req.NutritionistID, req.ID,
		req.Status, req.DietPlanCompleted, req.NutritionistNotes,
		req.PreparationTime, req.MealPlan, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update diet request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
