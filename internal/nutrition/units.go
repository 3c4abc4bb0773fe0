package nutrition

import (
	"regexp"
	"strings"
)

// unitPattern pairs a canonical unit name with the token pattern that
// recognizes it (including abbreviations) inside an ingredient line.
type unitPattern struct {
	name    string
	pattern *regexp.Regexp
}

// unitPatterns is checked in order; the first table unit whose pattern
// matches the remainder of an ingredient line wins.
var unitPatterns = []unitPattern{
	{"cup", regexp.MustCompile(`(?i)\b(c\.?|cup|cups)\b`)},
	{"tablespoon", regexp.MustCompile(`(?i)\b(tbsp\.?|tablespoon|tablespoons)\b`)},
	{"teaspoon", regexp.MustCompile(`(?i)\b(tsp\.?|teaspoon|teaspoons)\b`)},
	{"ounce", regexp.MustCompile(`(?i)\b(oz\.?|ounce|ounces)\b`)},
	{"pound", regexp.MustCompile(`(?i)\b(lb\.?|pound|pounds)\b`)},
	{"gram", regexp.MustCompile(`(?i)\b(g\.?|gram|grams)\b`)},
	{"pint", regexp.MustCompile(`(?i)\b(pint|pints)\b`)},
	{"quart", regexp.MustCompile(`(?i)\b(qt\.?|quart|quarts)\b`)},
	{"gallon", regexp.MustCompile(`(?i)\b(gal\.?|gallon|gallons)\b`)},
}

// gramsPerUnit holds approximate mass equivalents for volume and weight
// units.
var gramsPerUnit = map[string]float64{
	"cup":        240,
	"tablespoon": 15,
	"teaspoon":   5,
	"ounce":      28.35,
	"pound":      453.59,
	"gram":       1,
}

// gramsPerItem approximates the mass of one counted item ("2 eggs") and of
// units the parser recognizes but the mass table does not cover.
const gramsPerItem = 50.0

// UnitGrams returns the approximate grams of one unit. Unknown or empty
// units fall back to the per-item heuristic.
func UnitGrams(unit string) float64 {
	if g, ok := gramsPerUnit[strings.ToLower(unit)]; ok {
		return g
	}
	return gramsPerItem
}
