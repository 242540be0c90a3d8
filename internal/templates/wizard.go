package templates

import (
	"fmt"

	"github.com/fitdesk/nutrition-hub/internal/plan"
)

// TemplateSteps is the template wizard step count: basics, targets, meals.
const TemplateSteps = 3

// Wizard is the gated template builder. Unlike the comprehensive plan wizard,
// moving forward validates the current step first; a failed gate leaves the
// position unchanged.
type Wizard struct {
	seq   *plan.Sequencer
	Draft CreateTemplateRequest
}

func NewWizard() *Wizard {
	return &Wizard{seq: plan.NewSequencer(TemplateSteps)}
}

func (w *Wizard) Current() int         { return w.seq.Current() }
func (w *Wizard) Total() int           { return w.seq.Total() }
func (w *Wizard) PercentComplete() int { return w.seq.PercentComplete() }

// Advance validates the current step's gate, then moves forward.
func (w *Wizard) Advance() error {
	switch w.seq.Current() {
	case 1:
		if err := w.Draft.ValidateBasics(); err != nil {
			return err
		}
	case 2:
		if w.Draft.TargetProteinG < 0 || w.Draft.TargetCarbsG < 0 || w.Draft.TargetFatsG < 0 {
			return fmt.Errorf("macro targets must be non-negative")
		}
	}
	w.seq.Advance()
	return nil
}

// Retreat moves one step back, never gated.
func (w *Wizard) Retreat() {
	w.seq.Retreat()
}

// Finish validates the meals step and returns the complete request. The
// wizard must be on the last step.
func (w *Wizard) Finish() (CreateTemplateRequest, error) {
	if w.seq.Current() != TemplateSteps {
		return CreateTemplateRequest{}, fmt.Errorf("wizard is on step %d of %d", w.seq.Current(), TemplateSteps)
	}
	if err := w.Draft.Validate(); err != nil {
		return CreateTemplateRequest{}, err
	}
	return w.Draft, nil
}
