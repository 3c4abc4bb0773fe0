package models

import (
	"regexp"
	"strconv"
)

// Recipe is the structured form of one recipe card, as produced by the
// recipe structuring step from raw OCR text.
type Recipe struct {
	// Title is the recipe name, e.g. "Grandma's Apple Pie"
	Title string `json:"title"`

	// Ingredients are complete ingredient lines including quantity, unit and
	// food name, e.g. "3/4 c. dry farina (cereal)". Always plain strings; the
	// structuring layer normalizes any quantity/name pairs the language model
	// returns into a single line.
	Ingredients []string `json:"ingredients"`

	// Instructions are the numbered preparation steps, in order.
	Instructions []string `json:"instructions"`

	// Free-text details as written on the card (or AI-estimated when absent).
	Servings string `json:"servings,omitempty"`
	PrepTime string `json:"prep_time,omitempty"`
	CookTime string `json:"cook_time,omitempty"`
}

// DefaultServings is used when a recipe does not state a serving count.
const DefaultServings = 8

var leadingInt = regexp.MustCompile(`\d+`)

// ServingCount extracts an integer serving count from the free-text Servings
// field ("8 servings", "24 cookies"). Returns DefaultServings when the field
// is absent or carries no number.
func (r *Recipe) ServingCount() int {
	if r == nil || r.Servings == "" {
		return DefaultServings
	}
	m := leadingInt.FindString(r.Servings)
	if m == "" {
		return DefaultServings
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 {
		return DefaultServings
	}
	return n
}
