package exercise

import "strings"

// Known category keys.
const (
	CategoryUpperBody   = "upper-body"
	CategoryLowerBody   = "lower-body"
	CategoryCore        = "core"
	CategoryCardio      = "cardio"
	CategoryFlexibility = "flexibility"
	CategoryFullBody    = "full-body"
)

// Known difficulty levels, ordered.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// UnknownDifficultyOrder sorts records with an unrecognized difficulty after
// every known level.
const UnknownDifficultyOrder = 99

// categoryDisplayNames is the fixed lookup used for mobile display names and
// category facets. Unknown keys pass through unchanged.
var categoryDisplayNames = map[string]string{
	CategoryUpperBody:   "Upper Body",
	CategoryLowerBody:   "Lower Body",
	CategoryCore:        "Core",
	CategoryCardio:      "Cardio",
	CategoryFlexibility: "Flexibility",
	CategoryFullBody:    "Full Body",
}

var difficultyOrder = map[string]int{
	DifficultyBeginner:     1,
	DifficultyIntermediate: 2,
	DifficultyAdvanced:     3,
}

var difficultyMultiplier = map[string]float64{
	DifficultyBeginner:     1.0,
	DifficultyIntermediate: 1.2,
	DifficultyAdvanced:     1.5,
}

// CategoryDisplayName maps a category key to its human display name. Unknown
// keys are returned unchanged.
func CategoryDisplayName(category string) string {
	if display, ok := categoryDisplayNames[strings.ToLower(strings.TrimSpace(category))]; ok {
		return display
	}
	return category
}

// DifficultyOrder maps a difficulty level to its ordinal. Unknown levels sort
// last via UnknownDifficultyOrder.
func DifficultyOrder(difficulty string) int {
	if order, ok := difficultyOrder[strings.ToLower(strings.TrimSpace(difficulty))]; ok {
		return order
	}
	return UnknownDifficultyOrder
}

// DifficultyMultiplier returns the duration multiplier for a difficulty
// level, defaulting to 1.0 for unknown levels.
func DifficultyMultiplier(difficulty string) float64 {
	if mult, ok := difficultyMultiplier[strings.ToLower(strings.TrimSpace(difficulty))]; ok {
		return mult
	}
	return 1.0
}

// Categories enumerates the known category keys in display order.
func Categories() []string {
	return []string{
		CategoryUpperBody,
		CategoryLowerBody,
		CategoryCore,
		CategoryCardio,
		CategoryFlexibility,
		CategoryFullBody,
	}
}
