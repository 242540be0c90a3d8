package dietrequests

import (
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

// Buckets filter the request list for the two review queues.
const (
	BucketPendingPlans = "pending_plans"
	BucketFinalReview  = "final_review"
)

// DietRequestDTO is the API shape of a diet plan request.
type DietRequestDTO struct {
	ID                  uuid.UUID `json:"id"`
	ClientName          string    `json:"client_name"`
	ClientEmail         string    `json:"client_email"`
	CurrentWeightKg     float64   `json:"current_weight_kg"`
	HeightCm            float64   `json:"height_cm"`
	TargetWeightKg      float64   `json:"target_weight_kg"`
	FitnessGoal         string    `json:"fitness_goal"`
	MonthlyBudget       string    `json:"monthly_budget"`
	DietaryRestrictions string    `json:"dietary_restrictions"`
	Notes               string    `json:"notes"`
	Status              string    `json:"status"`
	DietPlanCompleted   bool      `json:"diet_plan_completed"`
	NutritionistNotes   string    `json:"nutritionist_notes"`
	PreparationTime     string    `json:"preparation_time"`
	MealPlan            string    `json:"meal_plan"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func toDTO(row storage.DietPlanRequest) DietRequestDTO {
	return DietRequestDTO{
		ID:                  row.ID,
		ClientName:          row.ClientName,
		ClientEmail:         row.ClientEmail,
		CurrentWeightKg:     row.CurrentWeightKg,
		HeightCm:            row.HeightCm,
		TargetWeightKg:      row.TargetWeightKg,
		FitnessGoal:         row.FitnessGoal,
		MonthlyBudget:       row.MonthlyBudget,
		DietaryRestrictions: row.DietaryRestrictions,
		Notes:               row.Notes,
		Status:              row.Status,
		DietPlanCompleted:   row.DietPlanCompleted,
		NutritionistNotes:   row.NutritionistNotes,
		PreparationTime:     row.PreparationTime,
		MealPlan:            row.MealPlan,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

// UpdateDietRequestPayload carries a lifecycle transition. Which transition
// runs is decided from the fields present, see Handler.HandleUpdate.
type UpdateDietRequestPayload struct {
	Status            *string `json:"status"`
	NutritionistNotes *string `json:"nutritionist_notes"`
	PreparationTime   *string `json:"preparation_time"`
	MealPlan          *string `json:"meal_plan"`
	DietPlanCompleted *bool   `json:"diet_plan_completed"`
}

// ListDietRequestsResponse wraps the request list.
type ListDietRequestsResponse struct {
	Requests []DietRequestDTO `json:"requests"`
}
