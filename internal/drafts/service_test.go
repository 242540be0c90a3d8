package drafts

import (
	"context"
	"errors"
	"testing"

	"github.com/fitdesk/nutrition-hub/internal/blob"
	"github.com/fitdesk/nutrition-hub/internal/plan"
	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

type mockPlansStorage struct {
	records map[uuid.UUID]storage.DietPlanRecord
	failPut bool
}

func newMockPlansStorage() *mockPlansStorage {
	return &mockPlansStorage{records: map[uuid.UUID]storage.DietPlanRecord{}}
}

func (m *mockPlansStorage) GetDietPlan(ctx context.Context, nutritionistID string, requestID uuid.UUID) (storage.DietPlanRecord, bool, error) {
	rec, ok := m.records[requestID]
	return rec, ok, nil
}

func (m *mockPlansStorage) ReplaceDietPlan(ctx context.Context, record *storage.DietPlanRecord) (storage.DietPlanRecord, error) {
	if m.failPut {
		return storage.DietPlanRecord{}, errors.New("connection refused")
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records[record.RequestID] = *record
	return m.records[record.RequestID], nil
}

func newTestService(t *testing.T, remote storage.DietPlansStorage) (*Service, blob.Store) {
	t.Helper()
	local, err := blob.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return NewService(local, remote), local
}

func testSnapshot(step int) Snapshot {
	return Snapshot{
		Status:      "approved",
		CurrentStep: step,
		TotalSteps:  plan.ComprehensiveSteps,
		Plan: plan.Plan{
			PlanName:   "Lean bulk",
			TotalWeeks: 4,
		},
	}
}

func TestSaveWritesBothSinks(t *testing.T) {
	remote := newMockPlansStorage()
	svc, _ := newTestService(t, remote)
	ctx := context.Background()
	requestID := uuid.New()

	result, err := svc.Save(ctx, "nutri-1", requestID, testSnapshot(3))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !result.RemoteSaved || !result.LocalSaved {
		t.Fatalf("result = %+v, want both sinks saved", result)
	}

	rec, ok := remote.records[requestID]
	if !ok {
		t.Fatal("remote record missing")
	}
	if rec.Status != "draft" || rec.PlanName != "Lean bulk" {
		t.Errorf("remote record = %+v", rec)
	}

	snap, found, err := svc.Load(ctx, "nutri-1", requestID)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if snap.CurrentStep != 3 || snap.Plan.PlanName != "Lean bulk" {
		t.Errorf("loaded snapshot = %+v", snap)
	}
	if snap.SavedAt.IsZero() {
		t.Error("saved_at not stamped")
	}
}

func TestSaveSurvivesRemoteFailure(t *testing.T) {
	remote := newMockPlansStorage()
	remote.failPut = true
	svc, _ := newTestService(t, remote)
	ctx := context.Background()
	requestID := uuid.New()

	result, err := svc.Save(ctx, "nutri-1", requestID, testSnapshot(4))
	if err != nil {
		t.Fatalf("Save must not fail on remote error: %v", err)
	}
	if result.RemoteSaved {
		t.Error("remote_saved must be false")
	}
	if result.RemoteError == "" {
		t.Error("remote_error must carry the reason")
	}
	if !result.LocalSaved {
		t.Error("local sink must still be written")
	}

	// The draft is fully resumable from the local sink alone.
	snap, found, err := svc.Load(ctx, "nutri-1", requestID)
	if err != nil || !found {
		t.Fatalf("Load after remote failure: found=%v err=%v", found, err)
	}
	if snap.CurrentStep != 4 {
		t.Errorf("current_step = %d, want 4", snap.CurrentStep)
	}
}

func TestSaveRejectsInvalidSnapshot(t *testing.T) {
	svc, _ := newTestService(t, newMockPlansStorage())
	ctx := context.Background()

	snap := testSnapshot(3)
	snap.CurrentStep = 9
	if _, err := svc.Save(ctx, "nutri-1", uuid.New(), snap); err == nil {
		t.Error("current_step beyond total_steps must be rejected")
	}

	snap = testSnapshot(1)
	snap.Plan.TotalWeeks = 0
	if _, err := svc.Save(ctx, "nutri-1", uuid.New(), snap); err == nil {
		t.Error("zero total_weeks must be rejected")
	}
}

func TestLoadTreatsGarbageAsNoDraft(t *testing.T) {
	svc, local := newTestService(t, newMockPlansStorage())
	ctx := context.Background()
	requestID := uuid.New()

	key := draftKey("nutri-1", requestID)
	if _, err := local.PutObject(ctx, key, []byte("{not json"), "application/json"); err != nil {
		t.Fatalf("PutObject: %v", err)
	}

	snap, found, err := svc.Load(ctx, "nutri-1", requestID)
	if err != nil {
		t.Fatalf("unreadable draft must not error: %v", err)
	}
	if found || snap != nil {
		t.Errorf("unreadable draft must read as no draft, got found=%v snap=%+v", found, snap)
	}
}

func TestHasProgress(t *testing.T) {
	svc, _ := newTestService(t, newMockPlansStorage())
	ctx := context.Background()
	requestID := uuid.New()

	has, err := svc.HasProgress(ctx, "nutri-1", requestID)
	if err != nil || has {
		t.Fatalf("no draft: has=%v err=%v, want false", has, err)
	}

	if _, err := svc.Save(ctx, "nutri-1", requestID, testSnapshot(1)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	has, err = svc.HasProgress(ctx, "nutri-1", requestID)
	if err != nil || has {
		t.Fatalf("step 1 draft: has=%v err=%v, want false", has, err)
	}

	if _, err := svc.Save(ctx, "nutri-1", requestID, testSnapshot(2)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	has, err = svc.HasProgress(ctx, "nutri-1", requestID)
	if err != nil || !has {
		t.Fatalf("step 2 draft: has=%v err=%v, want true", has, err)
	}

	if err := svc.Clear(ctx, "nutri-1", requestID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	has, err = svc.HasProgress(ctx, "nutri-1", requestID)
	if err != nil || has {
		t.Fatalf("after clear: has=%v err=%v, want false", has, err)
	}
}

func TestDraftsScopedByNutritionist(t *testing.T) {
	svc, _ := newTestService(t, newMockPlansStorage())
	ctx := context.Background()
	requestID := uuid.New()

	if _, err := svc.Save(ctx, "nutri-1", requestID, testSnapshot(2)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, found, err := svc.Load(ctx, "nutri-2", requestID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Error("draft must not be visible to another nutritionist")
	}
}
