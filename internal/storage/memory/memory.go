package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

// MemoryStorage is the in-memory Storage implementation, used when
// DATABASE_URL is not configured and in tests.
type MemoryStorage struct {
	mu        sync.RWMutex
	requests  map[uuid.UUID]storage.DietPlanRequest
	plans     map[uuid.UUID]storage.DietPlanRecord // keyed by request id
	templates map[uuid.UUID]storage.MealPlanTemplate
	rules     map[string][]storage.AvailabilityRule // keyed by nutritionist id
	blocks    map[uuid.UUID]storage.BlockedRange
	sessions  map[uuid.UUID]storage.SessionRequest
}

func New() *MemoryStorage {
	return &MemoryStorage{
		requests:  map[uuid.UUID]storage.DietPlanRequest{},
		plans:     map[uuid.UUID]storage.DietPlanRecord{},
		templates: map[uuid.UUID]storage.MealPlanTemplate{},
		rules:     map[string][]storage.AvailabilityRule{},
		blocks:    map[uuid.UUID]storage.BlockedRange{},
		sessions:  map[uuid.UUID]storage.SessionRequest{},
	}
}

// ---------- Diet requests ----------

func (m *MemoryStorage) ListDietRequests(ctx context.Context, nutritionistID string) ([]storage.DietPlanRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []storage.DietPlanRequest{}
	for _, row := range m.requests {
		if row.NutritionistID == nutritionistID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStorage) GetDietRequest(ctx context.Context, nutritionistID string, id uuid.UUID) (storage.DietPlanRequest, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.requests[id]
	if !ok || row.NutritionistID != nutritionistID {
		return storage.DietPlanRequest{}, false, nil
	}
	return row, true, nil
}

func (m *MemoryStorage) CreateDietRequest(ctx context.Context, req *storage.DietPlanRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = storage.StatusPending
	}
	m.requests[req.ID] = *req
	return nil
}

func (m *MemoryStorage) UpdateDietRequest(ctx context.Context, req *storage.DietPlanRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[req.ID]; !ok {
		return storage.ErrNotFound
	}
	m.requests[req.ID] = *req
	return nil
}

// ---------- Diet plan records ----------

func (m *MemoryStorage) GetDietPlan(ctx context.Context, nutritionistID string, requestID uuid.UUID) (storage.DietPlanRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.plans[requestID]
	if !ok || rec.NutritionistID != nutritionistID {
		return storage.DietPlanRecord{}, false, nil
	}
	return rec, true, nil
}

func (m *MemoryStorage) ReplaceDietPlan(ctx context.Context, record *storage.DietPlanRecord) (storage.DietPlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if prev, ok := m.plans[record.RequestID]; ok && prev.NutritionistID == record.NutritionistID {
		record.ID = prev.ID
		record.CreatedAt = prev.CreatedAt
	} else {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	m.plans[record.RequestID] = *record
	return *record, nil
}

// ---------- Templates ----------

func (m *MemoryStorage) ListTemplates(ctx context.Context, nutritionistID string) ([]storage.MealPlanTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []storage.MealPlanTemplate{}
	for _, row := range m.templates {
		if row.NutritionistID == nutritionistID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStorage) CreateTemplate(ctx context.Context, tpl *storage.MealPlanTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now().UTC()
	}
	m.templates[tpl.ID] = *tpl
	return nil
}

// ---------- Availability ----------

func (m *MemoryStorage) ListWeeklyRules(ctx context.Context, nutritionistID string) ([]storage.AvailabilityRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := append([]storage.AvailabilityRule(nil), m.rules[nutritionistID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (m *MemoryStorage) ReplaceWeeklyRules(ctx context.Context, nutritionistID string, rules []storage.AvailabilityRuleUpsert) ([]storage.AvailabilityRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	rows := make([]storage.AvailabilityRule, len(rules))
	for i, up := range rules {
		rows[i] = storage.AvailabilityRule{
			ID:             uuid.New(),
			NutritionistID: nutritionistID,
			DayOfWeek:      up.DayOfWeek,
			StartMinutes:   up.StartMinutes,
			EndMinutes:     up.EndMinutes,
			SlotMinutes:    up.SlotMinutes,
			IsAvailable:    up.IsAvailable,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}
	m.rules[nutritionistID] = rows

	out := append([]storage.AvailabilityRule(nil), rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (m *MemoryStorage) ListBlocks(ctx context.Context, nutritionistID string, from, to string) ([]storage.BlockedRange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []storage.BlockedRange{}
	for _, row := range m.blocks {
		if row.NutritionistID != nutritionistID {
			continue
		}
		if row.Date < from || row.Date > to {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartMinutes < out[j].StartMinutes
	})
	return out, nil
}

func (m *MemoryStorage) CreateBlock(ctx context.Context, block *storage.BlockedRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now().UTC()
	}
	m.blocks[block.ID] = *block
	return nil
}

func (m *MemoryStorage) DeleteBlock(ctx context.Context, nutritionistID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.blocks[id]
	if !ok || row.NutritionistID != nutritionistID {
		return storage.ErrNotFound
	}
	delete(m.blocks, id)
	return nil
}

// ---------- Session requests ----------

func (m *MemoryStorage) ListSessionRequests(ctx context.Context, nutritionistID string) ([]storage.SessionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []storage.SessionRequest{}
	for _, row := range m.sessions {
		if row.NutritionistID == nutritionistID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStorage) GetSessionRequest(ctx context.Context, nutritionistID string, id uuid.UUID) (storage.SessionRequest, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.sessions[id]
	if !ok || row.NutritionistID != nutritionistID {
		return storage.SessionRequest{}, false, nil
	}
	return row, true, nil
}

func (m *MemoryStorage) CreateSessionRequest(ctx context.Context, req *storage.SessionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = storage.StatusPending
	}
	m.sessions[req.ID] = *req
	return nil
}

func (m *MemoryStorage) UpdateSessionRequest(ctx context.Context, req *storage.SessionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[req.ID]; !ok {
		return storage.ErrNotFound
	}
	m.sessions[req.ID] = *req
	return nil
}

// Close is a no-op for the in-memory storage.
func (m *MemoryStorage) Close() error {
	return nil
}
