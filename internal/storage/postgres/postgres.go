package postgres

import (
	"context"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is the Postgres implementation of storage.Storage.
type PostgresStorage struct {
	pool         *pgxpool.Pool
	dietRequests *dietRequestsStorage
	dietPlans    *dietPlansStorage
	templates    *templatesStorage
	availability *availabilityStorage
	sessions     *sessionRequestsStorage
}

func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStorage{
		pool:         pool,
		dietRequests: newDietRequestsStorage(pool),
		dietPlans:    newDietPlansStorage(pool),
		templates:    newTemplatesStorage(pool),
		availability: newAvailabilityStorage(pool),
		sessions:     newSessionRequestsStorage(pool),
	}, nil
}

func (p *PostgresStorage) ListDietRequests(ctx context.Context, nutritionistID string) ([]storage.DietPlanRequest, error) {
	return p.dietRequests.List(ctx, nutritionistID)
}

func (p *PostgresStorage) GetDietRequest(ctx context.Context, nutritionistID string, id uuid.UUID) (storage.DietPlanRequest, bool, error) {
	return p.dietRequests.Get(ctx, nutritionistID, id)
}

func (p *PostgresStorage) CreateDietRequest(ctx context.Context, req *storage.DietPlanRequest) error {
	return p.dietRequests.Create(ctx, req)
}

func (p *PostgresStorage) UpdateDietRequest(ctx context.Context, req *storage.DietPlanRequest) error {
	return p.dietRequests.Update(ctx, req)
}

func (p *PostgresStorage) GetDietPlan(ctx context.Context, nutritionistID string, requestID uuid.UUID) (storage.DietPlanRecord, bool, error) {
	return p.dietPlans.Get(ctx, nutritionistID, requestID)
}

func (p *PostgresStorage) ReplaceDietPlan(ctx context.Context, record *storage.DietPlanRecord) (storage.DietPlanRecord, error) {
	return p.dietPlans.Replace(ctx, record)
}

func (p *PostgresStorage) ListTemplates(ctx context.Context, nutritionistID string) ([]storage.MealPlanTemplate, error) {
	return p.templates.List(ctx, nutritionistID)
}

func (p *PostgresStorage) CreateTemplate(ctx context.Context, tpl *storage.MealPlanTemplate) error {
	return p.templates.Create(ctx, tpl)
}

func (p *PostgresStorage) ListWeeklyRules(ctx context.Context, nutritionistID string) ([]storage.AvailabilityRule, error) {
	return p.availability.ListWeeklyRules(ctx, nutritionistID)
}

func (p *PostgresStorage) ReplaceWeeklyRules(ctx context.Context, nutritionistID string, rules []storage.AvailabilityRuleUpsert) ([]storage.AvailabilityRule, error) {
	return p.availability.ReplaceWeeklyRules(ctx, nutritionistID, rules)
}

func (p *PostgresStorage) ListBlocks(ctx context.Context, nutritionistID string, from, to string) ([]storage.BlockedRange, error) {
	return p.availability.ListBlocks(ctx, nutritionistID, from, to)
}

func (p *PostgresStorage) CreateBlock(ctx context.Context, block *storage.BlockedRange) error {
	return p.availability.CreateBlock(ctx, block)
}

func (p *PostgresStorage) DeleteBlock(ctx context.Context, nutritionistID string, id uuid.UUID) error {
	return p.availability.DeleteBlock(ctx, nutritionistID, id)
}

func (p *PostgresStorage) ListSessionRequests(ctx context.Context, nutritionistID string) ([]storage.SessionRequest, error) {
	return p.sessions.List(ctx, nutritionistID)
}

func (p *PostgresStorage) GetSessionRequest(ctx context.Context, nutritionistID string, id uuid.UUID) (storage.SessionRequest, bool, error) {
	return p.sessions.Get(ctx, nutritionistID, id)
}

func (p *PostgresStorage) CreateSessionRequest(ctx context.Context, req *storage.SessionRequest) error {
	return p.sessions.Create(ctx, req)
}

func (p *PostgresStorage) UpdateSessionRequest(ctx context.Context, req *storage.SessionRequest) error {
	return p.sessions.Update(ctx, req)
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}
