package nutrition

import (
	"regexp"
	"strings"
)

var (
	// Parenthesized asides are informational ("(cereal)") and never carry
	// the quantity or unit.
	parenRe = regexp.MustCompile(`\([^)]*\)`)

	// Descriptive adjectives that obscure the food name for database search.
	adjectiveRe = regexp.MustCompile(`(?i)\b(fresh|dried|frozen|organic|large|small|medium|ripe|unripe)\b`)

	// Leading filler stripped before quantity detection, so phrases like
	// "about 2 cups flour" still expose the leading number.
	leadingFillerRes = []*regexp.Regexp{
		regexp.MustCompile(`^\.\s*`),
		regexp.MustCompile(`(?i)^at least\s+`),
		regexp.MustCompile(`(?i)^about\s+`),
		regexp.MustCompile(`(?i)^approximately\s+`),
		regexp.MustCompile(`(?i)^to taste\s+`),
		regexp.MustCompile(`(?i)^for decoration\s*`),
		regexp.MustCompile(`(?i)^chopped\s+`),
		regexp.MustCompile(`(?i)^diced\s+`),
		regexp.MustCompile(`(?i)^minced\s+`),
		regexp.MustCompile(`(?i)^sliced\s+`),
		regexp.MustCompile(`(?i)^grated\s+`),
	}

	trailingFillerRes = []*regexp.Regexp{
		regexp.MustCompile(`\.$`),
		regexp.MustCompile(`(?i),\s*chopped$`),
		regexp.MustCompile(`(?i),\s*diced$`),
		regexp.MustCompile(`(?i),\s*minced$`),
		regexp.MustCompile(`(?i),\s*sliced$`),
		regexp.MustCompile(`(?i),\s*grated$`),
		regexp.MustCompile(`(?i)\s+for decoration$`),
	}

	fractionRe = regexp.MustCompile(`^\d+/\d+`)
	decimalRe  = regexp.MustCompile(`^\d+(?:\.\d+)?`)
)

// ParseIngredient turns one free-text ingredient line into its
// quantity/unit/food-name triple. It never fails: a line with no leading
// number parses as quantity "1" with the whole remainder as the food name,
// and a line that strips down to nothing yields an empty food name the
// caller must skip.
func ParseIngredient(text string) ParsedIngredient {
	s := parenRe.ReplaceAllString(text, "")
	s = adjectiveRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, re := range leadingFillerRes {
		s = re.ReplaceAllString(s, "")
	}
	s = strings.TrimSpace(s)

	for _, re := range trailingFillerRes {
		s = re.ReplaceAllString(s, "")
	}
	s = strings.TrimSpace(s)

	// Fractions first so "3/4" is not consumed as the decimal "3".
	if qty := fractionRe.FindString(s); qty != "" {
		unit, food := splitUnit(strings.TrimSpace(s[len(qty):]))
		return ParsedIngredient{Quantity: qty, Unit: unit, FoodName: food}
	}

	if qty := decimalRe.FindString(s); qty != "" {
		unit, food := splitUnit(strings.TrimSpace(s[len(qty):]))
		return ParsedIngredient{Quantity: qty, Unit: unit, FoodName: food}
	}

	// No quantity found; the whole remainder is the food name.
	return ParsedIngredient{Quantity: "1", Unit: "", FoodName: s}
}

// splitUnit finds the first unit-table token in the remainder, removes it,
// and returns the canonical unit name with the residual food name.
func splitUnit(remaining string) (unit, food string) {
	for _, u := range unitPatterns {
		if loc := u.pattern.FindStringIndex(remaining); loc != nil {
			food := strings.TrimSpace(remaining[:loc[0]] + remaining[loc[1]:])
			return u.name, food
		}
	}
	return "", strings.TrimSpace(remaining)
}
