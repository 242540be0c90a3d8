package dietrequests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrNotFound                = errors.New("diet request not found")
	ErrUnknownBucket           = errors.New("unknown bucket")
	ErrNotPending              = errors.New("request is not pending")
	ErrNotApproved             = errors.New("request is not approved")
	ErrTerminalStatus          = errors.New("request is in a terminal status")
	ErrAlreadyCompleted        = errors.New("request is already completed")
	ErrNotesRequired           = errors.New("notes are required")
	ErrPreparationTimeRequired = errors.New("preparation time is required")
	ErrMealPlanRequired        = errors.New("meal plan text is required")
	ErrPlanNotCompleted        = errors.New("diet plan is not marked complete")
)

// Service owns the diet request lifecycle. Every transition checks its
// preconditions and returns a sentinel error before touching storage; there
// is no silent status coercion.
type Service struct {
	storage storage.DietRequestsStorage
}

func NewService(storage storage.DietRequestsStorage) *Service {
	return &Service{storage: storage}
}

// List returns the nutritionist's requests, optionally narrowed to a bucket:
// pending_plans (approved, plan not yet authored) or final_review (plan
// authored, review not finished).
func (s *Service) List(ctx context.Context, nutritionistID, bucket string) ([]DietRequestDTO, error) {
	rows, err := s.storage.ListDietRequests(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}

	out := make([]DietRequestDTO, 0, len(rows))
	for _, row := range rows {
		switch bucket {
		case "":
			// no filter
		case BucketPendingPlans:
			if !(row.Status == storage.StatusApproved && !row.DietPlanCompleted) {
				continue
			}
		case BucketFinalReview:
			if !(row.DietPlanCompleted && row.Status != storage.StatusCompleted) {
				continue
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
		}
		out = append(out, toDTO(row))
	}
	return out, nil
}

// Get returns one request by id.
func (s *Service) Get(ctx context.Context, nutritionistID string, id uuid.UUID) (DietRequestDTO, error) {
	row, found, err := s.storage.GetDietRequest(ctx, nutritionistID, id)
	if err != nil {
		return DietRequestDTO{}, err
	}
	if !found {
		return DietRequestDTO{}, ErrNotFound
	}
	return toDTO(row), nil
}

// Approve moves a pending request to approved. Preparation time is the
// client-facing commitment and is mandatory; notes and an initial meal plan
// sketch are optional.
func (s *Service) Approve(ctx context.Context, nutritionistID string, id uuid.UUID, notes, preparationTime, mealPlan string) (DietRequestDTO, error) {
	if strings.TrimSpace(preparationTime) == "" {
		return DietRequestDTO{}, ErrPreparationTimeRequired
	}

	row, found, err := s.storage.GetDietRequest(ctx, nutritionistID, id)
	if err != nil {
		return DietRequestDTO{}, err
	}
	if !found {
		return DietRequestDTO{}, ErrNotFound
	}
	if row.Status != storage.StatusPending {
		return DietRequestDTO{}, ErrNotPending
	}

	row.Status = storage.StatusApproved
	row.NutritionistNotes = notes
	row.PreparationTime = preparationTime
	if mealPlan != "" {
		row.MealPlan = mealPlan
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateDietRequest(ctx, &row); err != nil {
		return DietRequestDTO{}, err
	}
	return toDTO(row), nil
}

// Reject moves a pending request to rejected. Notes explaining the decision
// are mandatory.
func (s *Service) Reject(ctx context.Context, nutritionistID string, id uuid.UUID, notes string) (DietRequestDTO, error) {
	if strings.TrimSpace(notes) == "" {
		return DietRequestDTO{}, ErrNotesRequired
	}

	row, found, err := s.storage.GetDietRequest(ctx, nutritionistID, id)
	if err != nil {
		return DietRequestDTO{}, err
	}
	if !found {
		return DietRequestDTO{}, ErrNotFound
	}
	if row.Status != storage.StatusPending {
		return DietRequestDTO{}, ErrNotPending
	}

	row.Status = storage.StatusRejected
	row.NutritionistNotes = notes
	row.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateDietRequest(ctx, &row); err != nil {
		return DietRequestDTO{}, err
	}
	return toDTO(row), nil
}

// MarkDietPlanComplete sets the plan-authored flag without touching the
// status. Idempotent: marking an already-marked request succeeds unchanged.
func (s *Service) MarkDietPlanComplete(ctx context.Context, nutritionistID string, id uuid.UUID) (DietRequestDTO, error) {
	row, found, err := s.storage.GetDietRequest(ctx, nutritionistID, id)
	if err != nil {
		return DietRequestDTO{}, err
	}
	if !found {
		return DietRequestDTO{}, ErrNotFound
	}
	if row.Status == storage.StatusRejected || row.Status == storage.StatusCompleted {
		return DietRequestDTO{}, ErrTerminalStatus
	}
	if row.DietPlanCompleted {
		return toDTO(row), nil
	}

	row.DietPlanCompleted = true
	row.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateDietRequest(ctx, &row); err != nil {
		return DietRequestDTO{}, err
	}
	return toDTO(row), nil
}

// FinalizeReview closes a request whose plan was authored: requires the flag
// and sets status=completed.
func (s *Service) FinalizeReview(ctx context.Context, nutritionistID string, id uuid.UUID) (DietRequestDTO, error) {
	row, found, err := s.storage.GetDietRequest(ctx, nutritionistID, id)
	if err != nil {
		return DietRequestDTO{}, err
	}
	if !found {
		return DietRequestDTO{}, ErrNotFound
	}
	if row.Status == storage.StatusCompleted {
		return DietRequestDTO{}, ErrAlreadyCompleted
	}
	if !row.DietPlanCompleted {
		return DietRequestDTO{}, ErrPlanNotCompleted
	}

	row.Status = storage.StatusCompleted
	row.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateDietRequest(ctx, &row); err != nil {
		return DietRequestDTO{}, err
	}
	return toDTO(row), nil
}

// CompleteDirectly finishes an approved request in one step, attaching the
// final meal plan text and skipping the separate mark-complete/finalize pair.
func (s *Service) CompleteDirectly(ctx context.Context, nutritionistID string, id uuid.UUID, mealPlan string) (DietRequestDTO, error) {
	if strings.TrimSpace(mealPlan) == "" {
		return DietRequestDTO{}, ErrMealPlanRequired
	}

	row, found, err := s.storage.GetDietRequest(ctx, nutritionistID, id)
	if err != nil {
		return DietRequestDTO{}, err
	}
	if !found {
		return DietRequestDTO{}, ErrNotFound
	}
	if row.Status != storage.StatusApproved {
		return DietRequestDTO{}, ErrNotApproved
	}

	row.Status = storage.StatusCompleted
	row.MealPlan = mealPlan
	row.DietPlanCompleted = true
	row.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateDietRequest(ctx, &row); err != nil {
		return DietRequestDTO{}, err
	}
	return toDTO(row), nil
}
