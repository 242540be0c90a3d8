package drafts

import (
	"fmt"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/plan"
)

// Snapshot is a resumable wizard state for one diet plan request: the plan
// tree as edited so far plus the wizard position.
type Snapshot struct {
	Status      string    `json:"status"`
	CurrentStep int       `json:"current_step"`
	TotalSteps  int       `json:"total_steps"`
	Plan        plan.Plan `json:"plan"`
	SavedAt     time.Time `json:"saved_at"`
}

func (s *Snapshot) Validate() error {
	if s.TotalSteps < 1 {
		return fmt.Errorf("total_steps must be positive")
	}
	if s.CurrentStep < 1 || s.CurrentStep > s.TotalSteps {
		return fmt.Errorf("current_step must be between 1 and total_steps")
	}
	if s.Plan.TotalWeeks < 1 || s.Plan.TotalWeeks > plan.MaxTotalWeeks {
		return fmt.Errorf("plan total_weeks must be between 1 and %d", plan.MaxTotalWeeks)
	}
	return nil
}

// SaveResult reports the outcome of both draft sinks. Remote failure is
// recoverable (the local copy supersedes it on resume), so it is carried as
// data instead of an error.
type SaveResult struct {
	RemoteSaved bool   `json:"remote_saved"`
	RemoteError string `json:"remote_error,omitempty"`
	LocalSaved  bool   `json:"local_saved"`
}

// GetDraftResponse wraps an optional snapshot.
type GetDraftResponse struct {
	Draft       *Snapshot `json:"draft"`
	HasProgress bool      `json:"has_progress"`
}
