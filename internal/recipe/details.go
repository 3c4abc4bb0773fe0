package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipecards/pkg/models"
)

const detailsPromptFmt = `Analyze this recipe and estimate the missing details. Return only a JSON object with these fields:
- servings: Number of servings (e.g., "6 servings", "24 cookies", "1 loaf")
- prep_time: Preparation time (e.g., "15 minutes", "30 minutes")
- cook_time: Cooking/baking time (e.g., "45 minutes", "1 hour", "12-15 minutes")

Recipe: %s
Ingredients: %s
Instructions: %s

Consider:
- Recipe type (cookies, cake, bread, etc.)
- Ingredient quantities
- Number of steps
- Typical cooking methods mentioned

IMPORTANT: Always use standardized formats:
- servings: Use "X servings" for general recipes, "X cookies/bars" for cookies, "1 loaf/cake" for breads/cakes
- prep_time: Always include "minutes" or "hours" (e.g., "20 minutes", "1 hour")
- cook_time: Always include "minutes" or "hours" (e.g., "45 minutes", "1 hour")

Return only valid JSON: {"servings": "X servings", "prep_time": "X minutes", "cook_time": "X minutes"}`

// EstimateDetails estimates servings and timing for a recipe. Model failures
// degrade to estimates keyed off the recipe type, never to an error.
func (s *GPTService) EstimateDetails(ctx context.Context, r *models.Recipe) Details {
	prompt := fmt.Sprintf(detailsPromptFmt,
		r.Title,
		strings.Join(r.Ingredients, ", "),
		strings.Join(r.Instructions, " "))

	response, err := s.askGPT(ctx, prompt, 500)
	if err != nil {
		s.log.Warn().Err(err).Msg("Detail estimation request failed, using type-based estimates")
		return detailsByRecipeType(r.Title)
	}

	blob := extractJSON(response)
	if blob == "" {
		s.log.Warn().Msg("No JSON in detail estimation response, using type-based estimates")
		return detailsByRecipeType(r.Title)
	}

	var estimated Details
	if err := json.Unmarshal([]byte(blob), &estimated); err != nil {
		s.log.Warn().Err(err).Msg("Detail estimation JSON invalid, using type-based estimates")
		return detailsByRecipeType(r.Title)
	}

	s.log.Debug().
		Str("servings", estimated.Servings).
		Str("prep_time", estimated.PrepTime).
		Str("cook_time", estimated.CookTime).
		Msg("Recipe details estimated")

	return estimated
}

// detailsByRecipeType returns fixed estimates keyed off the recipe title.
func detailsByRecipeType(title string) Details {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, []string{"cookie", "cookies"}):
		return Details{Servings: "24 cookies", PrepTime: "15 minutes", CookTime: "12 minutes"}
	case containsAny(lower, []string{"cake", "bread"}):
		return Details{Servings: "8 servings", PrepTime: "20 minutes", CookTime: "45 minutes"}
	case containsAny(lower, []string{"pie", "tart"}):
		return Details{Servings: "8 servings", PrepTime: "30 minutes", CookTime: "1 hour"}
	case containsAny(lower, []string{"brownie", "brownies"}):
		return Details{Servings: "16 brownies", PrepTime: "15 minutes", CookTime: "25 minutes"}
	case containsAny(lower, []string{"bar", "bars"}):
		return Details{Servings: "16 bars", PrepTime: "15 minutes", CookTime: "25 minutes"}
	default:
		return Details{Servings: "8 servings", PrepTime: "20 minutes", CookTime: "30 minutes"}
	}
}

// MergeDetails fills the recipe's serving and timing fields from estimates,
// keeping whatever the card itself answered meaningfully.
func MergeDetails(r *models.Recipe, estimated Details) {
	if !isMeaningfulServings(r.Servings) {
		r.Servings = estimated.Servings
	}
	if !isMeaningfulTime(r.PrepTime) {
		r.PrepTime = estimated.PrepTime
	}
	if !isMeaningfulTime(r.CookTime) {
		r.CookTime = estimated.CookTime
	}
}

// unknownValues are model phrasings of "no answer".
var unknownValues = map[string]bool{
	"unknown": true, "not mentioned": true, "n/a": true, "none": true,
	"unspecified": true, "not specified": true, "not given": true,
	"missing": true, "blank": true, "": true, "null": true,
	"undefined": true, "tbd": true, "to be determined": true,
}

func isUnknown(value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	return normalized, unknownValues[normalized]
}

var servingTerms = []string{"serving", "cookie", "slice", "piece", "loaf", "cake", "bar", "cup", "portion"}

// isMeaningfulServings reports whether a servings value carries a number or a
// countable serving term.
func isMeaningfulServings(value string) bool {
	normalized, unknown := isUnknown(value)
	if unknown {
		return false
	}
	return strings.ContainsAny(normalized, "0123456789") || containsAny(normalized, servingTerms)
}

var timeTerms = []string{"minute", "hour", "second", "min", "hr", "sec"}

// isMeaningfulTime reports whether a time value carries both a number and a
// time unit.
func isMeaningfulTime(value string) bool {
	normalized, unknown := isUnknown(value)
	if unknown {
		return false
	}
	return strings.ContainsAny(normalized, "0123456789") && containsAny(normalized, timeTerms)
}
