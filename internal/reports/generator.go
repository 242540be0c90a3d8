package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/fitdesk/nutrition-hub/internal/plan"
	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

var ErrPlanNotFound = errors.New("diet plan not found")

// Generator renders a stored comprehensive plan as a PDF handout.
type Generator struct {
	plans    storage.DietPlansStorage
	requests storage.DietRequestsStorage
}

func NewGenerator(plans storage.DietPlansStorage, requests storage.DietRequestsStorage) *Generator {
	return &Generator{plans: plans, requests: requests}
}

// Generate builds the PDF for a request's plan.
func (g *Generator) Generate(ctx context.Context, nutritionistID string, requestID uuid.UUID) ([]byte, error) {
	record, found, err := g.plans.GetDietPlan(ctx, nutritionistID, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diet plan: %w", err)
	}
	if !found {
		return nil, ErrPlanNotFound
	}

	var p plan.Plan
	if err := json.Unmarshal(record.Payload, &p); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan: %w", err)
	}

	clientName := ""
	if req, ok, err := g.requests.GetDietRequest(ctx, nutritionistID, requestID); err == nil && ok {
		clientName = req.ClientName
	}

	return g.render(p, clientName)
}

func (g *Generator) render(p plan.Plan, clientName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, p.PlanName)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	if clientName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Prepared for: %s", clientName))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Duration: %d weeks", p.TotalWeeks))
	pdf.Ln(8)

	if p.Description != "" {
		pdf.MultiCell(0, 5, p.Description, "", "L", false)
		pdf.Ln(4)
	}

	g.drawGoals(pdf, p.OverallGoals)
	g.drawList(pdf, "Dietary guidelines", p.DietaryGuidelines)
	g.drawList(pdf, "Shopping list", p.ShoppingList)
	g.drawList(pdf, "Preparation tips", p.PreparationTips)
	g.drawWeeks(pdf, p)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawGoals(pdf *gofpdf.Fpdf, goals plan.Goals) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Daily targets")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Calories: %.0f kcal    Protein: %.0f g    Carbs: %.0f g    Fats: %.0f g",
		goals.Calories, goals.ProteinG, goals.CarbsG, goals.FatsG))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Fiber: %.0f g    Sodium: %.0f mg    Sugar: %.0f g",
		goals.FiberG, goals.SodiumMg, goals.SugarG))
	pdf.Ln(8)
}

func (g *Generator) drawList(pdf *gofpdf.Fpdf, title string, items []string) {
	nonEmpty := items[:0:0]
	for _, item := range items {
		if item != "" {
			nonEmpty = append(nonEmpty, item)
		}
	}
	if len(nonEmpty) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, item := range nonEmpty {
		pdf.MultiCell(0, 5, "- "+item, "", "L", false)
	}
	pdf.Ln(4)
}

func (g *Generator) drawWeeks(pdf *gofpdf.Fpdf, p plan.Plan) {
	weeks := append([]plan.WeeklyPlan(nil), p.WeeklyPlans...)
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekNumber < weeks[j].WeekNumber })

	for _, week := range weeks {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("Week %d (%s - %s)", week.WeekNumber, week.StartDate, week.EndDate))
		pdf.Ln(8)

		days := append([]plan.DailyPlan(nil), week.DailyPlans...)
		sort.Slice(days, func(i, j int) bool { return days[i].DayOfWeek < days[j].DayOfWeek })

		for _, day := range days {
			pdf.SetFont("Arial", "B", 11)
			label := dayName(day.DayOfWeek)
			if day.IsCheatDay {
				label += " (cheat day)"
			}
			pdf.Cell(0, 6, fmt.Sprintf("%s - %.0f kcal, %.0f g protein", label, day.SumCalories(), day.SumProteinG()))
			pdf.Ln(6)

			pdf.SetFont("Arial", "", 10)
			for _, meal := range day.Meals {
				pdf.Cell(0, 5, fmt.Sprintf("  %s (%.0f kcal)", meal.MealType, meal.Calories))
				pdf.Ln(5)
				for _, item := range meal.Items {
					name := item.FoodName
					if name == "" {
						name = item.RecipeName
					}
					pdf.Cell(0, 5, fmt.Sprintf("    %s - %.0f %s", name, item.Quantity, item.Unit))
					pdf.Ln(5)
				}
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}
}

func dayName(day int) string {
	names := []string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if day >= 1 && day <= 7 {
		return names[day]
	}
	return fmt.Sprintf("Day %d", day)
}
