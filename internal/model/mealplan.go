package model

import "time"

// MealType slots a planned recipe into a part of the day.
type MealType string

const (
	// MealBreakfast is the morning slot.
	MealBreakfast MealType = "breakfast"
	// MealLunch is the midday slot.
	MealLunch MealType = "lunch"
	// MealDinner is the evening slot.
	MealDinner MealType = "dinner"
)

// ParseMealType maps input to a meal slot, defaulting to dinner.
func ParseMealType(s string) MealType {
	switch MealType(normalizeLower(s)) {
	case MealBreakfast:
		return MealBreakfast
	case MealLunch:
		return MealLunch
	default:
		return MealDinner
	}
}

// MealPlanEntry schedules a recipe on a date. Entries in a date range are
// folded into a shopping list one aggregation pass per entry.
type MealPlanEntry struct {
	Date       time.Time
	ID         string
	RecipeID   string
	RecipeName string
	Meal       MealType
}
