package plan

// DefaultGoals seeds overall nutrition targets from the client's current
// weight. The multipliers are a rough starting point the nutritionist is
// expected to adjust per client, not validated nutrition science.
// TODO: replace the flat multipliers with goal-specific presets once the
// fitness_goal taxonomy is finalized.
func DefaultGoals(weightKg float64) Goals {
	if weightKg <= 0 {
		return Goals{}
	}
	return Goals{
		Calories: weightKg * 15,
		ProteinG: weightKg * 2,
		CarbsG:   weightKg * 3,
		FatsG:    weightKg * 0.8,
		FiberG:   30,
		SodiumMg: 2300,
		SugarG:   50,
	}
}
