package plan

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrWeekOutOfRange    = errors.New("week number out of range")
	ErrDayOfWeekInvalid  = errors.New("day of week must be between 1 and 7")
	ErrMealTypeInvalid   = errors.New("unknown meal type")
	ErrMealWithoutItems  = errors.New("meal must contain at least one item")
	ErrMealIndexRange    = errors.New("meal index out of range")
	ErrItemNameRequired  = errors.New("food item name is required")
	ErrItemQuantity      = errors.New("food item quantity must be positive")
	ErrListIndexRange    = errors.New("list index out of range")
	ErrTotalWeeksInvalid = errors.New("total weeks must be between 1 and 12")
)

// MaxTotalWeeks caps plan duration.
const MaxTotalWeeks = 12

type dayKey struct {
	week int
	day  int
}

// Aggregate wraps a Plan with week/day lookup maps so wizard edits stay O(1).
// Weeks and days are created lazily on first touch and appended in touch
// order; WeekNumber and DayOfWeek stay unique because all access goes through
// the upsert methods.
type Aggregate struct {
	Plan    Plan
	weekIdx map[int]int    // week number -> index in Plan.WeeklyPlans
	dayIdx  map[dayKey]int // (week, day)  -> index in that week's DailyPlans
}

// NewAggregate starts an empty plan with the given duration.
func NewAggregate(totalWeeks int) (*Aggregate, error) {
	if totalWeeks < 1 || totalWeeks > MaxTotalWeeks {
		return nil, ErrTotalWeeksInvalid
	}
	return &Aggregate{
		Plan: Plan{
			TotalWeeks:        totalWeeks,
			DietaryGuidelines: []string{},
			ShoppingList:      []string{},
			PreparationTips:   []string{},
			WeeklyPlans:       []WeeklyPlan{},
		},
		weekIdx: map[int]int{},
		dayIdx:  map[dayKey]int{},
	}, nil
}

// Restore rebuilds an aggregate around an existing plan, e.g. one loaded from
// a draft snapshot. Duplicate week or day keys in the input are rejected.
func Restore(p Plan) (*Aggregate, error) {
	if p.TotalWeeks < 1 || p.TotalWeeks > MaxTotalWeeks {
		return nil, ErrTotalWeeksInvalid
	}
	a := &Aggregate{
		Plan:    p,
		weekIdx: map[int]int{},
		dayIdx:  map[dayKey]int{},
	}
	for wi, w := range p.WeeklyPlans {
		if _, dup := a.weekIdx[w.WeekNumber]; dup {
			return nil, fmt.Errorf("duplicate week %d", w.WeekNumber)
		}
		a.weekIdx[w.WeekNumber] = wi
		for di, d := range w.DailyPlans {
			k := dayKey{week: w.WeekNumber, day: d.DayOfWeek}
			if _, dup := a.dayIdx[k]; dup {
				return nil, fmt.Errorf("duplicate day %d in week %d", d.DayOfWeek, w.WeekNumber)
			}
			a.dayIdx[k] = di
		}
	}
	return a, nil
}

// UpsertWeek returns the week with the given number, creating it on first
// access. New weeks start with today's date for both bounds and zeroed goals.
func (a *Aggregate) UpsertWeek(week int) (*WeeklyPlan, error) {
	if week < 1 || week > a.Plan.TotalWeeks {
		return nil, ErrWeekOutOfRange
	}
	if i, ok := a.weekIdx[week]; ok {
		return &a.Plan.WeeklyPlans[i], nil
	}
	today := time.Now().UTC().Format("2006-01-02")
	a.Plan.WeeklyPlans = append(a.Plan.WeeklyPlans, WeeklyPlan{
		WeekNumber: week,
		StartDate:  today,
		EndDate:    today,
		DailyPlans: []DailyPlan{},
	})
	i := len(a.Plan.WeeklyPlans) - 1
	a.weekIdx[week] = i
	return &a.Plan.WeeklyPlans[i], nil
}

// UpsertDay returns the day within a week, creating week and day as needed.
// New days are regular days (is_cheat_day=false) with no meals.
func (a *Aggregate) UpsertDay(week, day int) (*DailyPlan, error) {
	if day < 1 || day > 7 {
		return nil, ErrDayOfWeekInvalid
	}
	w, err := a.UpsertWeek(week)
	if err != nil {
		return nil, err
	}
	k := dayKey{week: week, day: day}
	if i, ok := a.dayIdx[k]; ok {
		return &w.DailyPlans[i], nil
	}
	w.DailyPlans = append(w.DailyPlans, DailyPlan{
		DayOfWeek: day,
		Meals:     []Meal{},
	})
	i := len(w.DailyPlans) - 1
	a.dayIdx[k] = i
	return &w.DailyPlans[i], nil
}

// SetCheatDay toggles the cheat flag for a day, creating it if missing.
// Existing meals are left untouched either way.
func (a *Aggregate) SetCheatDay(week, day int, cheat bool) error {
	d, err := a.UpsertDay(week, day)
	if err != nil {
		return err
	}
	d.IsCheatDay = cheat
	return nil
}

// AddMeal appends a meal to a day. The meal must already carry at least one
// item; meal totals are derived from the items and day totals are refreshed.
func (a *Aggregate) AddMeal(week, day int, meal Meal) error {
	if !ValidMealTypes[meal.MealType] {
		return ErrMealTypeInvalid
	}
	if len(meal.Items) == 0 {
		return ErrMealWithoutItems
	}
	d, err := a.UpsertDay(week, day)
	if err != nil {
		return err
	}
	recomputeMealTotals(&meal)
	meal.Order = len(d.Meals) + 1
	d.Meals = append(d.Meals, meal)
	refreshDayTotals(d)
	return nil
}

// RemoveMeal deletes a meal by index and refreshes the day totals.
func (a *Aggregate) RemoveMeal(week, day, idx int) error {
	d, err := a.UpsertDay(week, day)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(d.Meals) {
		return ErrMealIndexRange
	}
	d.Meals = append(d.Meals[:idx], d.Meals[idx+1:]...)
	for i := range d.Meals {
		d.Meals[i].Order = i + 1
	}
	refreshDayTotals(d)
	return nil
}

// AddFoodItem validates an item, derives its macro contribution from the
// per-100g rates (rate * quantity / 100) and appends it to the meal, then
// refreshes the meal totals. Items that arrive with precomputed macros and no
// rates are taken as-is.
func AddFoodItem(meal *Meal, item MealItem) error {
	if item.FoodName == "" && item.RecipeName == "" {
		return ErrItemNameRequired
	}
	if item.Quantity <= 0 {
		return ErrItemQuantity
	}
	if item.CaloriesPer100 != 0 || item.ProteinPer100 != 0 || item.CarbsPer100 != 0 || item.FatsPer100 != 0 {
		factor := item.Quantity / 100
		item.Calories = item.CaloriesPer100 * factor
		item.ProteinG = item.ProteinPer100 * factor
		item.CarbsG = item.CarbsPer100 * factor
		item.FatsG = item.FatsPer100 * factor
	}
	meal.Items = append(meal.Items, item)
	recomputeMealTotals(meal)
	return nil
}

// RemoveFoodItem deletes an item by index and refreshes the meal totals.
func RemoveFoodItem(meal *Meal, idx int) error {
	if idx < 0 || idx >= len(meal.Items) {
		return ErrListIndexRange
	}
	meal.Items = append(meal.Items[:idx], meal.Items[idx+1:]...)
	recomputeMealTotals(meal)
	return nil
}

func recomputeMealTotals(m *Meal) {
	m.Calories, m.ProteinG, m.CarbsG, m.FatsG = 0, 0, 0, 0
	for _, it := range m.Items {
		m.Calories += it.Calories
		m.ProteinG += it.ProteinG
		m.CarbsG += it.CarbsG
		m.FatsG += it.FatsG
	}
}

func refreshDayTotals(d *DailyPlan) {
	d.TotalCalories = d.SumCalories()
	d.TotalProteinG = d.SumProteinG()
	d.TotalCarbsG = d.SumCarbsG()
	d.TotalFatsG = d.SumFatsG()
}

// Free-text list editors. The three plan lists (guidelines, shopping list,
// preparation tips) share one implementation: Add appends an empty row the UI
// then fills in via Update.

func listAdd(list *[]string) {
	*list = append(*list, "")
}

func listUpdate(list []string, idx int, value string) error {
	if idx < 0 || idx >= len(list) {
		return ErrListIndexRange
	}
	list[idx] = value
	return nil
}

func listRemove(list *[]string, idx int) error {
	if idx < 0 || idx >= len(*list) {
		return ErrListIndexRange
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	return nil
}

func (a *Aggregate) AddGuideline() { listAdd(&a.Plan.DietaryGuidelines) }

func (a *Aggregate) UpdateGuideline(i int, v string) error {
	return listUpdate(a.Plan.DietaryGuidelines, i, v)
}

func (a *Aggregate) RemoveGuideline(i int) error { return listRemove(&a.Plan.DietaryGuidelines, i) }

func (a *Aggregate) AddShoppingItem() { listAdd(&a.Plan.ShoppingList) }

func (a *Aggregate) UpdateShoppingItem(i int, v string) error {
	return listUpdate(a.Plan.ShoppingList, i, v)
}

func (a *Aggregate) RemoveShoppingItem(i int) error { return listRemove(&a.Plan.ShoppingList, i) }

func (a *Aggregate) AddPrepTip() { listAdd(&a.Plan.PreparationTips) }

func (a *Aggregate) UpdatePrepTip(i int, v string) error {
	return listUpdate(a.Plan.PreparationTips, i, v)
}

func (a *Aggregate) RemovePrepTip(i int) error { return listRemove(&a.Plan.PreparationTips, i) }
