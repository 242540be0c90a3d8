package templates

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Target calorie bounds for a template.
const (
	MinTargetCalories = 100
	MaxTargetCalories = 9999
)

// Known template types. Unknown values are accepted with a warning, the set
// is advisory for the UI picker.
var KnownTemplateTypes = map[string]bool{
	"weight_loss":   true,
	"muscle_gain":   true,
	"maintenance":   true,
	"cutting":       true,
	"bulking":       true,
	"keto":          true,
	"vegetarian":    true,
	"mediterranean": true,
}

// TemplateFood is one food row inside a template meal.
type TemplateFood struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// TemplateMeal is one meal skeleton. Every meal carries at least one food.
type TemplateMeal struct {
	Name  string         `json:"name"`
	Time  string         `json:"time,omitempty"`
	Foods []TemplateFood `json:"foods"`
}

// TemplateDTO is the API shape of a stored template.
type TemplateDTO struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	TargetCalories  int            `json:"target_calories"`
	TargetProteinG  int            `json:"target_protein_g"`
	TargetCarbsG    int            `json:"target_carbs_g"`
	TargetFatsG     int            `json:"target_fats_g"`
	MealCount       int            `json:"meal_count"`
	DurationWeeks   int            `json:"duration_weeks"`
	DifficultyLevel string         `json:"difficulty_level"`
	Meals           []TemplateMeal `json:"meals"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CreateTemplateRequest is the template wizard's final payload.
type CreateTemplateRequest struct {
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	TargetCalories  int            `json:"target_calories"`
	TargetProteinG  int            `json:"target_protein_g"`
	TargetCarbsG    int            `json:"target_carbs_g"`
	TargetFatsG     int            `json:"target_fats_g"`
	DurationWeeks   int            `json:"duration_weeks"`
	DifficultyLevel string         `json:"difficulty_level"`
	Meals           []TemplateMeal `json:"meals"`
}

// ValidateBasics checks the step-1 fields: name, type and calorie target.
func (r *CreateTemplateRequest) ValidateBasics() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Type == "" {
		return fmt.Errorf("type is required")
	}
	if r.TargetCalories < MinTargetCalories || r.TargetCalories > MaxTargetCalories {
		return fmt.Errorf("target_calories must be between %d and %d", MinTargetCalories, MaxTargetCalories)
	}
	return nil
}

// Validate checks the full payload including the meal list.
func (r *CreateTemplateRequest) Validate() error {
	if err := r.ValidateBasics(); err != nil {
		return err
	}
	if r.TargetProteinG < 0 || r.TargetCarbsG < 0 || r.TargetFatsG < 0 {
		return fmt.Errorf("macro targets must be non-negative")
	}
	if len(r.Meals) == 0 {
		return fmt.Errorf("at least one meal is required")
	}
	for i, meal := range r.Meals {
		if meal.Name == "" {
			return fmt.Errorf("meals[%d]: name is required", i)
		}
		if len(meal.Foods) == 0 {
			return fmt.Errorf("meals[%d] (%s): at least one food is required", i, meal.Name)
		}
		for j, food := range meal.Foods {
			if food.FoodName == "" {
				return fmt.Errorf("meals[%d].foods[%d]: food_name is required", i, j)
			}
			if food.Quantity <= 0 {
				return fmt.Errorf("meals[%d].foods[%d]: quantity must be positive", i, j)
			}
		}
	}
	return nil
}

// ListTemplatesResponse wraps the template list.
type ListTemplatesResponse struct {
	Templates []TemplateDTO `json:"templates"`
}
