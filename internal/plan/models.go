package plan

// Valid meal types for comprehensive plans.
var ValidMealTypes = map[string]bool{
	"Breakfast":    true,
	"Lunch":        true,
	"Dinner":       true,
	"Snack":        true,
	"Pre-Workout":  true,
	"Post-Workout": true,
}

// Goals holds nutrition targets. All values are non-negative.
type Goals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMg float64 `json:"sodium_mg"`
	SugarG   float64 `json:"sugar_g"`
}

// MealItem is a single food or recipe entry inside a meal. Per-100g rates are
// kept alongside the computed contribution so an item can be re-derived after
// a quantity edit.
type MealItem struct {
	FoodName       string  `json:"food_name"`
	RecipeName     string  `json:"recipe_name,omitempty"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	CaloriesPer100 float64 `json:"calories_per_100,omitempty"`
	ProteinPer100  float64 `json:"protein_per_100,omitempty"`
	CarbsPer100    float64 `json:"carbs_per_100,omitempty"`
	FatsPer100     float64 `json:"fats_per_100,omitempty"`
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbsG         float64 `json:"carbs_g"`
	FatsG          float64 `json:"fats_g"`
	Notes          string  `json:"notes,omitempty"`
}

// Meal is one meal of a day. Calories and macros are always the sum of the
// item contributions.
type Meal struct {
	MealType string     `json:"meal_type"`
	Order    int        `json:"meal_order"`
	Time     string     `json:"time,omitempty"`
	Items    []MealItem `json:"items"`
	Calories float64    `json:"calories"`
	ProteinG float64    `json:"protein_g"`
	CarbsG   float64    `json:"carbs_g"`
	FatsG    float64    `json:"fats_g"`
	Notes    string     `json:"notes,omitempty"`
}

// DailyPlan is one day inside a week. DayOfWeek: 1 = Monday ... 7 = Sunday.
// Total fields are derived from Meals and must never be set directly.
type DailyPlan struct {
	DayOfWeek     int     `json:"day_of_week"`
	IsCheatDay    bool    `json:"is_cheat_day"`
	Meals         []Meal  `json:"meals"`
	TotalCalories float64 `json:"total_calories"`
	TotalProteinG float64 `json:"total_protein_g"`
	TotalCarbsG   float64 `json:"total_carbs_g"`
	TotalFatsG    float64 `json:"total_fats_g"`
}

// SumCalories recomputes the day's calories from its meals. The getters
// intentionally ignore the cached total fields so callers always observe a
// value consistent with the current meal list.
func (d *DailyPlan) SumCalories() float64 {
	var sum float64
	for _, m := range d.Meals {
		sum += m.Calories
	}
	return sum
}

// SumProteinG recomputes the day's protein from its meals.
func (d *DailyPlan) SumProteinG() float64 {
	var sum float64
	for _, m := range d.Meals {
		sum += m.ProteinG
	}
	return sum
}

// SumCarbsG recomputes the day's carbs from its meals.
func (d *DailyPlan) SumCarbsG() float64 {
	var sum float64
	for _, m := range d.Meals {
		sum += m.CarbsG
	}
	return sum
}

// SumFatsG recomputes the day's fats from its meals.
func (d *DailyPlan) SumFatsG() float64 {
	var sum float64
	for _, m := range d.Meals {
		sum += m.FatsG
	}
	return sum
}

// WeeklyPlan is one week of the plan. WeekNumber is unique within a plan.
type WeeklyPlan struct {
	WeekNumber  int         `json:"week_number"`
	StartDate   string      `json:"start_date"` // YYYY-MM-DD
	EndDate     string      `json:"end_date"`   // YYYY-MM-DD
	WeeklyGoals Goals       `json:"weekly_goals"`
	DailyPlans  []DailyPlan `json:"daily_plans"`
}

// Plan is the full comprehensive diet plan tree.
type Plan struct {
	PlanName          string       `json:"plan_name"`
	Description       string       `json:"description"`
	TotalWeeks        int          `json:"total_weeks"`
	OverallGoals      Goals        `json:"overall_goals"`
	DietaryGuidelines []string     `json:"dietary_guidelines"`
	ShoppingList      []string     `json:"shopping_list"`
	PreparationTips   []string     `json:"preparation_tips"`
	WeeklyPlans       []WeeklyPlan `json:"weekly_plans"`
}
