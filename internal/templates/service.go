package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

// Service manages reusable meal plan templates.
type Service struct {
	storage storage.TemplatesStorage
}

func NewService(storage storage.TemplatesStorage) *Service {
	return &Service{storage: storage}
}

// List returns the nutritionist's templates.
func (s *Service) List(ctx context.Context, nutritionistID string) ([]TemplateDTO, error) {
	rows, err := s.storage.ListTemplates(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}

	out := make([]TemplateDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := toDTO(row)
		if err != nil {
			log.Printf("WARN templates: skipping unreadable template id=%s: %v", row.ID, err)
			continue
		}
		out = append(out, dto)
	}
	return out, nil
}

// Create validates and stores a template. The meal count is always derived
// from the meal list, never trusted from input.
func (s *Service) Create(ctx context.Context, nutritionistID string, req CreateTemplateRequest) (TemplateDTO, error) {
	if err := req.Validate(); err != nil {
		return TemplateDTO{}, fmt.Errorf("validation failed: %w", err)
	}
	if !KnownTemplateTypes[req.Type] {
		log.Printf("WARN templates: unknown template type %q accepted", req.Type)
	}

	payload, err := json.Marshal(req.Meals)
	if err != nil {
		return TemplateDTO{}, fmt.Errorf("failed to encode meals: %w", err)
	}

	row := &storage.MealPlanTemplate{
		ID:              uuid.New(),
		NutritionistID:  nutritionistID,
		Name:            req.Name,
		Type:            req.Type,
		TargetCalories:  req.TargetCalories,
		TargetProteinG:  req.TargetProteinG,
		TargetCarbsG:    req.TargetCarbsG,
		TargetFatsG:     req.TargetFatsG,
		MealCount:       len(req.Meals),
		DurationWeeks:   req.DurationWeeks,
		DifficultyLevel: req.DifficultyLevel,
		Payload:         payload,
	}
	if err := s.storage.CreateTemplate(ctx, row); err != nil {
		return TemplateDTO{}, err
	}
	return toDTO(*row)
}

func toDTO(row storage.MealPlanTemplate) (TemplateDTO, error) {
	var meals []TemplateMeal
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &meals); err != nil {
			return TemplateDTO{}, fmt.Errorf("failed to decode meals: %w", err)
		}
	}
	return TemplateDTO{
		ID:              row.ID,
		Name:            row.Name,
		Type:            row.Type,
		TargetCalories:  row.TargetCalories,
		TargetProteinG:  row.TargetProteinG,
		TargetCarbsG:    row.TargetCarbsG,
		TargetFatsG:     row.TargetFatsG,
		MealCount:       row.MealCount,
		DurationWeeks:   row.DurationWeeks,
		DifficultyLevel: row.DifficultyLevel,
		Meals:           meals,
		CreatedAt:       row.CreatedAt,
	}, nil
}
