package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

func TestDietRequestsScopingAndOrder(t *testing.T) {
	m := New()
	ctx := context.Background()

	first := &storage.DietPlanRequest{NutritionistID: "nutri-1", ClientName: "Anna", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	second := &storage.DietPlanRequest{NutritionistID: "nutri-1", ClientName: "Boris"}
	other := &storage.DietPlanRequest{NutritionistID: "nutri-2", ClientName: "Vera"}
	for _, row := range []*storage.DietPlanRequest{first, second, other} {
		if err := m.CreateDietRequest(ctx, row); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rows, err := m.ListDietRequests(ctx, "nutri-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].ClientName != "Boris" {
		t.Errorf("newest first violated: rows[0] = %q", rows[0].ClientName)
	}

	if _, found, _ := m.GetDietRequest(ctx, "nutri-2", first.ID); found {
		t.Error("cross-nutritionist get should miss")
	}

	first.Status = storage.StatusApproved
	if err := m.UpdateDietRequest(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, found, _ := m.GetDietRequest(ctx, "nutri-1", first.ID)
	if !found || got.Status != storage.StatusApproved {
		t.Errorf("update not persisted: %+v", got)
	}

	missing := &storage.DietPlanRequest{ID: uuid.New(), NutritionistID: "nutri-1"}
	if err := m.UpdateDietRequest(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestReplaceDietPlanPreservesIdentity(t *testing.T) {
	m := New()
	ctx := context.Background()
	requestID := uuid.New()

	created, err := m.ReplaceDietPlan(ctx, &storage.DietPlanRecord{
		RequestID:      requestID,
		NutritionistID: "nutri-1",
		PlanName:       "v1",
		Status:         "draft",
		Payload:        []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	replaced, err := m.ReplaceDietPlan(ctx, &storage.DietPlanRecord{
		RequestID:      requestID,
		NutritionistID: "nutri-1",
		PlanName:       "v2",
		Status:         "completed",
		Payload:        []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("replace again: %v", err)
	}
	if replaced.ID != created.ID {
		t.Errorf("record id changed across replace")
	}
	if !replaced.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed across replace")
	}
	if replaced.PlanName != "v2" || replaced.Status != "completed" {
		t.Errorf("replace did not overwrite content: %+v", replaced)
	}

	if _, found, _ := m.GetDietPlan(ctx, "nutri-2", requestID); found {
		t.Error("cross-nutritionist plan get should miss")
	}
}

func TestReplaceWeeklyRules(t *testing.T) {
	m := New()
	ctx := context.Background()

	rules, err := m.ReplaceWeeklyRules(ctx, "nutri-1", []storage.AvailabilityRuleUpsert{
		{DayOfWeek: 3, StartMinutes: 540, EndMinutes: 720, SlotMinutes: 60, IsAvailable: true},
		{DayOfWeek: 1, StartMinutes: 600, EndMinutes: 660, SlotMinutes: 30, IsAvailable: true},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(rules) != 2 || rules[0].DayOfWeek != 1 || rules[1].DayOfWeek != 3 {
		t.Fatalf("rules not ordered by day: %+v", rules)
	}

	rules, err = m.ReplaceWeeklyRules(ctx, "nutri-1", []storage.AvailabilityRuleUpsert{
		{DayOfWeek: 5, StartMinutes: 480, EndMinutes: 600, SlotMinutes: 60, IsAvailable: true},
	})
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if len(rules) != 1 || rules[0].DayOfWeek != 5 {
		t.Fatalf("replace is not a full overwrite: %+v", rules)
	}

	listed, _ := m.ListWeeklyRules(ctx, "nutri-2")
	if len(listed) != 0 {
		t.Errorf("rules leaked across nutritionists: %+v", listed)
	}
}

func TestBlocksRangeAndDelete(t *testing.T) {
	m := New()
	ctx := context.Background()

	inRange := &storage.BlockedRange{NutritionistID: "nutri-1", Date: "2026-09-02", StartMinutes: 600, EndMinutes: 660, Reason: "dentist"}
	outOfRange := &storage.BlockedRange{NutritionistID: "nutri-1", Date: "2026-09-20", StartMinutes: 600, EndMinutes: 660}
	for _, b := range []*storage.BlockedRange{inRange, outOfRange} {
		if err := m.CreateBlock(ctx, b); err != nil {
			t.Fatalf("create block: %v", err)
		}
	}

	blocks, err := m.ListBlocks(ctx, "nutri-1", "2026-09-01", "2026-09-07")
	if err != nil {
		t.Fatalf("list blocks: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Reason != "dentist" {
		t.Fatalf("blocks = %+v", blocks)
	}

	if err := m.DeleteBlock(ctx, "nutri-2", inRange.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-nutritionist delete: got %v, want ErrNotFound", err)
	}
	if err := m.DeleteBlock(ctx, "nutri-1", inRange.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := m.DeleteBlock(ctx, "nutri-1", inRange.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestSessionRequestsRoundTrip(t *testing.T) {
	m := New()
	ctx := context.Background()

	row := &storage.SessionRequest{NutritionistID: "nutri-1", ClientName: "Pavel", PreferredDate: "2026-09-01", PreferredTime: "10:00"}
	if err := m.CreateSessionRequest(ctx, row); err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.Status != storage.StatusPending {
		t.Errorf("default status = %q", row.Status)
	}

	row.Status = storage.StatusApproved
	row.ApprovedDate = "2026-09-01"
	row.SessionPriceCents = 5000
	if err := m.UpdateSessionRequest(ctx, row); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, found, _ := m.GetSessionRequest(ctx, "nutri-1", row.ID)
	if !found || got.SessionPriceCents != 5000 {
		t.Errorf("got %+v", got)
	}

	if rows, _ := m.ListSessionRequests(ctx, "nutri-2"); len(rows) != 0 {
		t.Errorf("sessions leaked across nutritionists")
	}
}

func TestTemplates(t *testing.T) {
	m := New()
	ctx := context.Background()

	if err := m.CreateTemplate(ctx, &storage.MealPlanTemplate{
		NutritionistID: "nutri-1",
		Name:           "Keto starter",
		Type:           "keto",
		TargetCalories: 1800,
		MealCount:      3,
		Payload:        []byte(`[]`),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := m.ListTemplates(ctx, "nutri-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Keto starter" {
		t.Fatalf("rows = %+v", rows)
	}
}
