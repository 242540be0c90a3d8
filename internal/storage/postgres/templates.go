package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type templatesStorage struct {
	pool *pgxpool.Pool
}

func newTemplatesStorage(pool *pgxpool.Pool) *templatesStorage {
	return &templatesStorage{pool: pool}
}

func (s *templatesStorage) List(ctx context.Context, nutritionistID string) ([]storage.MealPlanTemplate, error) {
	query := `
		SELECT id, nutritionist_id, name, type, target_calories, target_protein_g, target_carbs_g, target_fats_g,
			meal_count, duration_weeks, difficulty_level, payload, created_at
		FROM meal_plan_templates
		WHERE nutritionist_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, nutritionistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	out := []storage.MealPlanTemplate{}
	for rows.Next() {
		var tpl storage.MealPlanTemplate
		if err := rows.Scan(
			&tpl.ID, &tpl.NutritionistID, &tpl.Name, &tpl.Type,
			&tpl.TargetCalories, &tpl.TargetProteinG, &tpl.TargetCarbsG, &tpl.TargetFatsG,
			&tpl.MealCount, &tpl.DurationWeeks, &tpl.DifficultyLevel, &tpl.Payload, &tpl.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		out = append(out, tpl)
	}
	return out, rows.Err()
}

func (s *templatesStorage) Create(ctx context.Context, tpl *storage.MealPlanTemplate) error {
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO meal_plan_templates (id, nutritionist_id, name, type, target_calories, target_protein_g,
			target_carbs_g, target_fats_g, meal_count, duration_weeks, difficulty_level, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := s.pool.Exec(ctx, query,
		tpl.ID, tpl.NutritionistID, tpl.Name, tpl.Type,
		tpl.TargetCalories, tpl.TargetProteinG, tpl.TargetCarbsG, tpl.TargetFatsG,
		tpl.MealCount, tpl.DurationWeeks, tpl.DifficultyLevel, tpl.Payload, tpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}
