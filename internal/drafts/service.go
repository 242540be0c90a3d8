package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/blob"
	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

// Service persists wizard drafts to two independent sinks: the diet plan
// record in storage (remote) and the blob store (local). Resume reads the
// local sink only.
type Service struct {
	local  blob.Store
	remote storage.DietPlansStorage
}

func NewService(local blob.Store, remote storage.DietPlansStorage) *Service {
	return &Service{local: local, remote: remote}
}

func draftKey(nutritionistID string, requestID uuid.UUID) string {
	return fmt.Sprintf("drafts/%s/%s.json", nutritionistID, requestID)
}

// Save writes the snapshot to both sinks. The remote write happens first and
// its failure is reported but never blocks the local write; a local write
// failure is the only hard error.
func (s *Service) Save(ctx context.Context, nutritionistID string, requestID uuid.UUID, snap Snapshot) (SaveResult, error) {
	if err := snap.Validate(); err != nil {
		return SaveResult{}, fmt.Errorf("validation failed: %w", err)
	}
	snap.SavedAt = time.Now().UTC()

	var result SaveResult

	payload, err := json.Marshal(snap.Plan)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to encode plan: %w", err)
	}
	record := &storage.DietPlanRecord{
		RequestID:      requestID,
		NutritionistID: nutritionistID,
		PlanName:       snap.Plan.PlanName,
		Description:    snap.Plan.Description,
		TotalWeeks:     snap.Plan.TotalWeeks,
		Status:         "draft",
		Payload:        payload,
	}
	if _, err := s.remote.ReplaceDietPlan(ctx, record); err != nil {
		log.Printf("WARN drafts: remote save failed request_id=%s: %v", requestID, err)
		result.RemoteError = err.Error()
	} else {
		result.RemoteSaved = true
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return result, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if _, err := s.local.PutObject(ctx, draftKey(nutritionistID, requestID), data, "application/json"); err != nil {
		return result, fmt.Errorf("failed to save draft locally: %w", err)
	}
	result.LocalSaved = true

	return result, nil
}

// Load reads the snapshot from the local sink. A missing or unreadable draft
// is "no draft", not an error: a corrupt snapshot must never block starting
// the wizard fresh.
func (s *Service) Load(ctx context.Context, nutritionistID string, requestID uuid.UUID) (*Snapshot, bool, error) {
	data, err := s.local.GetObject(ctx, draftKey(nutritionistID, requestID))
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("WARN drafts: unreadable snapshot request_id=%s: %v", requestID, err)
		return nil, false, nil
	}
	return &snap, true, nil
}

// Clear removes the local draft. The remote record is left alone, it doubles
// as the plan-in-progress visible to the rest of the system.
func (s *Service) Clear(ctx context.Context, nutritionistID string, requestID uuid.UUID) error {
	return s.local.DeleteObject(ctx, draftKey(nutritionistID, requestID))
}

// HasProgress reports whether a resumable draft exists, i.e. the wizard moved
// past the first step before it was saved.
func (s *Service) HasProgress(ctx context.Context, nutritionistID string, requestID uuid.UUID) (bool, error) {
	snap, found, err := s.Load(ctx, nutritionistID, requestID)
	if err != nil {
		return false, err
	}
	return found && snap.CurrentStep > 1, nil
}
