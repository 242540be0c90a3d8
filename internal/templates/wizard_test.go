package templates

import (
	"strings"
	"testing"
)

func TestWizardGateOnBasics(t *testing.T) {
	w := NewWizard()
	if w.Current() != 1 {
		t.Fatalf("start = %d", w.Current())
	}

	// Empty draft fails the step-1 gate and stays put.
	if err := w.Advance(); err == nil {
		t.Fatal("empty basics must fail the gate")
	}
	if w.Current() != 1 {
		t.Fatalf("failed gate moved the wizard to %d", w.Current())
	}

	// Calories below the floor.
	w.Draft.Name = "Keto starter"
	w.Draft.Type = "keto"
	w.Draft.TargetCalories = 50
	if err := w.Advance(); err == nil || !strings.Contains(err.Error(), "target_calories") {
		t.Fatalf("calories=50 must fail: %v", err)
	}
	if w.Current() != 1 {
		t.Fatalf("failed gate moved the wizard to %d", w.Current())
	}

	// Upper bound is inclusive.
	w.Draft.TargetCalories = 9999
	if err := w.Advance(); err != nil {
		t.Fatalf("calories=9999 must pass: %v", err)
	}
	if w.Current() != 2 {
		t.Fatalf("current = %d, want 2", w.Current())
	}
}

func TestWizardFinishRequiresMeals(t *testing.T) {
	w := NewWizard()
	w.Draft.Name = "Cutting basics"
	w.Draft.Type = "cutting"
	w.Draft.TargetCalories = 1800

	if err := w.Advance(); err != nil {
		t.Fatalf("step 1: %v", err)
	}
	if err := w.Advance(); err != nil {
		t.Fatalf("step 2: %v", err)
	}
	if w.Current() != 3 {
		t.Fatalf("current = %d, want 3", w.Current())
	}

	if _, err := w.Finish(); err == nil {
		t.Fatal("finishing without meals must fail")
	}

	w.Draft.Meals = []TemplateMeal{{
		Name:  "Breakfast",
		Foods: []TemplateFood{{FoodName: "Eggs", Quantity: 120, Calories: 186}},
	}}
	req, err := w.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(req.Meals) != 1 {
		t.Errorf("meals = %d", len(req.Meals))
	}
}

func TestWizardFinishOnlyOnLastStep(t *testing.T) {
	w := NewWizard()
	if _, err := w.Finish(); err == nil {
		t.Error("Finish on step 1 must fail")
	}
}

func TestWizardRetreatUngated(t *testing.T) {
	w := NewWizard()
	w.Draft.Name = "Bulk"
	w.Draft.Type = "bulking"
	w.Draft.TargetCalories = 3200
	if err := w.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	// Break the draft, retreat must still work.
	w.Draft.Name = ""
	w.Retreat()
	if w.Current() != 1 {
		t.Errorf("current = %d, want 1", w.Current())
	}
}

func TestWizardPercentComplete(t *testing.T) {
	w := NewWizard()
	if got := w.PercentComplete(); got != 33 {
		t.Errorf("step 1 of 3 = %d%%, want 33", got)
	}
}
