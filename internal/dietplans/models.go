package dietplans

import (
	"fmt"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/plan"
	"github.com/google/uuid"
)

// Plan record statuses.
const (
	PlanStatusDraft     = "draft"
	PlanStatusCompleted = "completed"
)

// PlanRecordDTO is the API shape of a stored comprehensive plan.
type PlanRecordDTO struct {
	ID          uuid.UUID `json:"id"`
	RequestID   uuid.UUID `json:"request_id"`
	PlanName    string    `json:"plan_name"`
	Description string    `json:"description"`
	TotalWeeks  int       `json:"total_weeks"`
	Status      string    `json:"status"`
	Plan        plan.Plan `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReplacePlanRequest fully replaces the plan record for a request.
type ReplacePlanRequest struct {
	RequestID uuid.UUID `json:"request_id"`
	Status    string    `json:"status"`
	Plan      plan.Plan `json:"plan"`
}

func (r *ReplacePlanRequest) Validate() error {
	if r.RequestID == uuid.Nil {
		return fmt.Errorf("request_id is required")
	}
	if r.Status != PlanStatusDraft && r.Status != PlanStatusCompleted {
		return fmt.Errorf("status must be %q or %q", PlanStatusDraft, PlanStatusCompleted)
	}
	if r.Plan.PlanName == "" {
		return fmt.Errorf("plan_name is required")
	}
	// Restore also checks total_weeks bounds and week/day key uniqueness.
	if _, err := plan.Restore(r.Plan); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	for _, week := range r.Plan.WeeklyPlans {
		for _, day := range week.DailyPlans {
			for _, meal := range day.Meals {
				if len(meal.Items) == 0 {
					return fmt.Errorf("week %d day %d: meal %q has no items", week.WeekNumber, day.DayOfWeek, meal.MealType)
				}
			}
		}
	}
	return nil
}
