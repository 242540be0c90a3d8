package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by delete operations when the row does not exist.
// Read operations report misses through their bool return instead.
var ErrNotFound = errors.New("not found")

// Diet plan request statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// DietRequestsStorage manages diet plan requests submitted by clients.
type DietRequestsStorage interface {
	// ListDietRequests returns all requests assigned to a nutritionist, newest first.
	ListDietRequests(ctx context.Context, nutritionistID string) ([]DietPlanRequest, error)

	// GetDietRequest returns a request by id scoped to the nutritionist. bool=false means not found.
	GetDietRequest(ctx context.Context, nutritionistID string, id uuid.UUID) (DietPlanRequest, bool, error)

	// CreateDietRequest stores a new request (client submission).
	CreateDietRequest(ctx context.Context, req *DietPlanRequest) error

	// UpdateDietRequest persists lifecycle mutations of an existing request.
	UpdateDietRequest(ctx context.Context, req *DietPlanRequest) error
}

// DietPlanRequest is a client's request for a diet plan.
// Status and DietPlanCompleted are deliberately independent: a plan can be
// authored (flag set) while the request still awaits final review.
type DietPlanRequest struct {
	ID                  uuid.UUID
	NutritionistID      string
	ClientName          string
	ClientEmail         string
	CurrentWeightKg     float64
	HeightCm            float64
	TargetWeightKg      float64
	FitnessGoal         string
	MonthlyBudget       string
	DietaryRestrictions string
	Notes               string
	Status              string
	DietPlanCompleted   bool
	NutritionistNotes   string
	PreparationTime     string
	MealPlan            string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DietPlansStorage manages comprehensive diet plan records keyed by request id.
type DietPlansStorage interface {
	// GetDietPlan returns the plan record for a request. bool=false means not found.
	GetDietPlan(ctx context.Context, nutritionistID string, requestID uuid.UUID) (DietPlanRecord, bool, error)

	// ReplaceDietPlan creates or fully replaces the plan record for a request.
	ReplaceDietPlan(ctx context.Context, record *DietPlanRecord) (DietPlanRecord, error)
}

// DietPlanRecord is the stored comprehensive plan for one request.
// Payload holds the serialized week/day/meal tree (JSON).
type DietPlanRecord struct {
	ID             uuid.UUID
	RequestID      uuid.UUID
	NutritionistID string
	PlanName       string
	Description    string
	TotalWeeks     int
	Status         string // "draft" or "completed"
	Payload        []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TemplatesStorage manages reusable meal plan templates.
type TemplatesStorage interface {
	// ListTemplates returns templates owned by a nutritionist, newest first.
	ListTemplates(ctx context.Context, nutritionistID string) ([]MealPlanTemplate, error)

	// CreateTemplate stores a new template.
	CreateTemplate(ctx context.Context, tpl *MealPlanTemplate) error
}

// MealPlanTemplate is a reusable plan skeleton. MealCount is always recomputed
// from the serialized meals before storage, never trusted from input.
type MealPlanTemplate struct {
	ID              uuid.UUID
	NutritionistID  string
	Name            string
	Type            string
	TargetCalories  int
	TargetProteinG  int
	TargetCarbsG    int
	TargetFatsG     int
	MealCount       int
	DurationWeeks   int
	DifficultyLevel string
	Payload         []byte // serialized meals with their foods (JSON)
	CreatedAt       time.Time
}

// AvailabilityStorage manages a nutritionist's weekly availability and blocks.
type AvailabilityStorage interface {
	// ListWeeklyRules returns the weekly availability rules ordered by day.
	ListWeeklyRules(ctx context.Context, nutritionistID string) ([]AvailabilityRule, error)

	// ReplaceWeeklyRules atomically replaces the full weekly rule set.
	ReplaceWeeklyRules(ctx context.Context, nutritionistID string, rules []AvailabilityRuleUpsert) ([]AvailabilityRule, error)

	// ListBlocks returns blocked ranges within [from, to] (YYYY-MM-DD, inclusive).
	ListBlocks(ctx context.Context, nutritionistID string, from, to string) ([]BlockedRange, error)

	// CreateBlock stores a blocked date-time range.
	CreateBlock(ctx context.Context, block *BlockedRange) error

	// DeleteBlock removes a block by id within the nutritionist scope.
	DeleteBlock(ctx context.Context, nutritionistID string, id uuid.UUID) error
}

// AvailabilityRule is one weekday's working window.
// DayOfWeek: 1 = Monday ... 7 = Sunday. Minutes count from midnight.
type AvailabilityRule struct {
	ID             uuid.UUID
	NutritionistID string
	DayOfWeek      int
	StartMinutes   int
	EndMinutes     int
	SlotMinutes    int
	IsAvailable    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AvailabilityRuleUpsert is the input for replacing weekly rules.
type AvailabilityRuleUpsert struct {
	DayOfWeek    int
	StartMinutes int
	EndMinutes   int
	SlotMinutes  int
	IsAvailable  bool
}

// BlockedRange is a blocked date-time range (vacation, meeting, etc).
type BlockedRange struct {
	ID             uuid.UUID
	NutritionistID string
	Date           string // YYYY-MM-DD
	StartMinutes   int
	EndMinutes     int
	Reason         string
	CreatedAt      time.Time
}

// SessionRequestsStorage manages one-on-one session requests.
type SessionRequestsStorage interface {
	// ListSessionRequests returns session requests for a nutritionist, newest first.
	ListSessionRequests(ctx context.Context, nutritionistID string) ([]SessionRequest, error)

	// GetSessionRequest returns a session request by id. bool=false means not found.
	GetSessionRequest(ctx context.Context, nutritionistID string, id uuid.UUID) (SessionRequest, bool, error)

	// CreateSessionRequest stores a new session request (client submission).
	CreateSessionRequest(ctx context.Context, req *SessionRequest) error

	// UpdateSessionRequest persists lifecycle mutations of an existing session request.
	UpdateSessionRequest(ctx context.Context, req *SessionRequest) error
}

// SessionRequest is a client's request for a coaching session.
type SessionRequest struct {
	ID                uuid.UUID
	NutritionistID    string
	ClientName        string
	SessionType       string
	PreferredDate     string // YYYY-MM-DD
	PreferredTime     string // HH:MM
	Notes             string
	Status            string
	ApprovedDate      string
	ApprovedTime      string
	SessionPriceCents int
	NutritionistNotes string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Storage is the full persistence surface of the service. Both the in-memory
// and the Postgres implementations satisfy it.
type Storage interface {
	DietRequestsStorage
	DietPlansStorage
	TemplatesStorage
	AvailabilityStorage
	SessionRequestsStorage

	// Close releases the underlying connection (Postgres only).
	Close() error
}
