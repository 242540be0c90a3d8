package dietplans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fitdesk/nutrition-hub/internal/plan"
	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("diet plan not found")

// Service manages stored comprehensive plans, one per diet plan request.
type Service struct {
	storage storage.DietPlansStorage
}

func NewService(storage storage.DietPlansStorage) *Service {
	return &Service{storage: storage}
}

// Get returns the plan record for a request.
func (s *Service) Get(ctx context.Context, nutritionistID string, requestID uuid.UUID) (PlanRecordDTO, error) {
	record, found, err := s.storage.GetDietPlan(ctx, nutritionistID, requestID)
	if err != nil {
		return PlanRecordDTO{}, err
	}
	if !found {
		return PlanRecordDTO{}, ErrNotFound
	}
	return toDTO(record)
}

// Replace creates or fully replaces the plan record for a request.
func (s *Service) Replace(ctx context.Context, nutritionistID string, req ReplacePlanRequest) (PlanRecordDTO, error) {
	if err := req.Validate(); err != nil {
		return PlanRecordDTO{}, fmt.Errorf("validation failed: %w", err)
	}

	payload, err := json.Marshal(req.Plan)
	if err != nil {
		return PlanRecordDTO{}, fmt.Errorf("failed to encode plan: %w", err)
	}

	record := &storage.DietPlanRecord{
		RequestID:      req.RequestID,
		NutritionistID: nutritionistID,
		PlanName:       req.Plan.PlanName,
		Description:    req.Plan.Description,
		TotalWeeks:     req.Plan.TotalWeeks,
		Status:         req.Status,
		Payload:        payload,
	}
	stored, err := s.storage.ReplaceDietPlan(ctx, record)
	if err != nil {
		return PlanRecordDTO{}, err
	}
	return toDTO(stored)
}

func toDTO(record storage.DietPlanRecord) (PlanRecordDTO, error) {
	var p plan.Plan
	if len(record.Payload) > 0 {
		if err := json.Unmarshal(record.Payload, &p); err != nil {
			return PlanRecordDTO{}, fmt.Errorf("failed to decode stored plan: %w", err)
		}
	}
	return PlanRecordDTO{
		ID:          record.ID,
		RequestID:   record.RequestID,
		PlanName:    record.PlanName,
		Description: record.Description,
		TotalWeeks:  record.TotalWeeks,
		Status:      record.Status,
		Plan:        p,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}
