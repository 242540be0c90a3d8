package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fitdesk/nutrition-hub/internal/plan"
	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

type mockPlans struct {
	records map[uuid.UUID]storage.DietPlanRecord
}

func (m *mockPlans) GetDietPlan(ctx context.Context, nutritionistID string, requestID uuid.UUID) (storage.DietPlanRecord, bool, error) {
	rec, ok := m.records[requestID]
	return rec, ok, nil
}

func (m *mockPlans) ReplaceDietPlan(ctx context.Context, record *storage.DietPlanRecord) (storage.DietPlanRecord, error) {
	m.records[record.RequestID] = *record
	return *record, nil
}

type mockRequests struct {
	rows map[uuid.UUID]storage.DietPlanRequest
}

func (m *mockRequests) ListDietRequests(ctx context.Context, nutritionistID string) ([]storage.DietPlanRequest, error) {
	return nil, nil
}

func (m *mockRequests) GetDietRequest(ctx context.Context, nutritionistID string, id uuid.UUID) (storage.DietPlanRequest, bool, error) {
	row, ok := m.rows[id]
	return row, ok, nil
}

func (m *mockRequests) CreateDietRequest(ctx context.Context, req *storage.DietPlanRequest) error {
	m.rows[req.ID] = *req
	return nil
}

func (m *mockRequests) UpdateDietRequest(ctx context.Context, req *storage.DietPlanRequest) error {
	m.rows[req.ID] = *req
	return nil
}

func TestGeneratePDF(t *testing.T) {
	requestID := uuid.New()

	a, err := plan.NewAggregate(2)
	if err != nil {
		t.Fatalf("NewAggregate: %v", err)
	}
	a.Plan.PlanName = "Cutting phase"
	a.Plan.Description = "Moderate deficit with high protein."
	a.Plan.OverallGoals = plan.DefaultGoals(80)
	a.AddGuideline()
	if err := a.UpdateGuideline(0, "No sugary drinks"); err != nil {
		t.Fatalf("UpdateGuideline: %v", err)
	}
	meal := plan.Meal{MealType: "Breakfast"}
	if err := plan.AddFoodItem(&meal, plan.MealItem{FoodName: "Oats", Quantity: 80, Unit: "g", CaloriesPer100: 380}); err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}
	if err := a.AddMeal(1, 1, meal); err != nil {
		t.Fatalf("AddMeal: %v", err)
	}

	payload, err := json.Marshal(a.Plan)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	plans := &mockPlans{records: map[uuid.UUID]storage.DietPlanRecord{
		requestID: {
			ID:        uuid.New(),
			RequestID: requestID,
			PlanName:  "Cutting phase",
			Status:    "completed",
			Payload:   payload,
		},
	}}
	requests := &mockRequests{rows: map[uuid.UUID]storage.DietPlanRequest{
		requestID: {ID: requestID, ClientName: "Ivan"},
	}}

	g := NewGenerator(plans, requests)
	data, err := g.Generate(context.Background(), "nutri-1", requestID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF, starts with %q", data[:4])
	}
	if len(data) < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestGenerateMissingPlan(t *testing.T) {
	g := NewGenerator(&mockPlans{records: map[uuid.UUID]storage.DietPlanRecord{}},
		&mockRequests{rows: map[uuid.UUID]storage.DietPlanRequest{}})

	if _, err := g.Generate(context.Background(), "nutri-1", uuid.New()); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("got %v, want ErrPlanNotFound", err)
	}
}
