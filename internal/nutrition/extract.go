package nutrition

import (
	"strings"

	"recipecards/internal/fdc"
)

// nutrientAlias maps one NutrientKey to the identifiers and name fragments
// that recognize it in a FoodData Central record: legacy nutrient numbers,
// tagnames, and free-text names.
type nutrientAlias struct {
	key   NutrientKey
	terms []string
}

var nutrientAliases = []nutrientAlias{
	{Calories, []string{"208", "ENERC_KCAL", "calories", "energy"}},
	{Protein, []string{"203", "PROCNT", "protein"}},
	{Fat, []string{"204", "FAT", "total fat", "fat"}},
	{Carbs, []string{"205", "CHOCDF", "carbohydrate", "carbs"}},
	{Fiber, []string{"291", "FIBTG", "fiber", "dietary fiber"}},
	{Sugar, []string{"269", "SUGAR", "sugar", "total sugars"}},
	{Sodium, []string{"307", "NA", "sodium"}},
	{Calcium, []string{"301", "CA", "calcium"}},
	{Iron, []string{"303", "FE", "iron"}},
	{VitaminC, []string{"401", "VITC", "vitamin c", "ascorbic acid"}},
	{VitaminA, []string{"320", "VITA_RAE", "vitamin a"}},
}

// milligramKeys are reported in mg by the database and normalized to grams.
var milligramKeys = map[NutrientKey]bool{
	Sodium:  true,
	Calcium: true,
	Iron:    true,
}

// ExtractNutrients pulls the tracked nutrient set out of a raw food record,
// normalized to canonical units on a per-100g basis. Matching is
// first-match-wins per key. Keys with no matching entry are absent from the
// result, not zero.
func ExtractNutrients(record *fdc.FoodRecord) Nutrients {
	out := make(Nutrients)
	if record == nil || len(record.FoodNutrients) == 0 {
		return out
	}

	for _, alias := range nutrientAliases {
		for _, fn := range record.FoodNutrients {
			if !matchesAlias(alias.terms, fn) {
				continue
			}

			value, _ := fn.ResolvedAmount()
			unit := strings.ToLower(fn.ResolvedUnit())

			// Normalize reporting units to the canonical scale.
			switch {
			case milligramKeys[alias.key] && (unit == "mg" || unit == "milligram"):
				value /= 1000 // mg -> g
			case alias.key == VitaminA && (unit == "mcg" || unit == "ug" || unit == "µg" || unit == "microgram"):
				value /= 1000 // mcg -> mg
			}

			out[alias.key] = value
			break
		}
	}

	return out
}

// matchesAlias reports whether a nutrient entry matches any of the alias
// terms, either by identifier (exact) or by name (substring against the
// lowercased name; uppercase tagname terms only match as identifiers).
func matchesAlias(terms []string, fn fdc.FoodNutrient) bool {
	id := fn.ResolvedID()
	number := fn.ResolvedNumber()
	name := strings.ToLower(fn.ResolvedName())

	for _, term := range terms {
		if term == id || (number != "" && term == number) {
			return true
		}
		if name != "" && strings.Contains(name, term) {
			return true
		}
	}
	return false
}
