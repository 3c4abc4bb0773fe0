// Package nutrition estimates the nutrient content of a recipe from its
// free-text ingredient lines.
//
// Each line is parsed into a quantity/unit/food-name triple, the food name
// is resolved against a nutrition database (see internal/fdc), the record's
// nutrients are extracted on a per-100g basis, scaled to the estimated gram
// mass of the parsed quantity, and accumulated into recipe totals divided by
// the serving count.
//
// There is no fatal error path. Any ingredient that cannot be parsed,
// matched, or extracted
// contributes zero and the analysis continues, so a recipe always yields a
// result even with partial database coverage. Callers that need to judge
// coverage inspect the per-ingredient breakdown; the per-serving numbers
// alone cannot convey confidence.
//
// Mass equivalents are approximations (a cup is 240 g regardless of what is
// in it, a counted item is 50 g). The output is a plausible estimate for a
// nutrition label, not an analytical measurement.
package nutrition

import (
	"context"

	"github.com/rs/zerolog"

	"recipecards/internal/fdc"
	"recipecards/internal/logger"
)

// DefaultServings is the divisor used when the caller cannot supply a
// serving count.
const DefaultServings = 8

// Analyzer aggregates per-ingredient nutrition into recipe totals. It owns
// no shared state across recipes; the food source is injected by the caller.
type Analyzer struct {
	source fdc.FoodSource
	log    zerolog.Logger
}

// NewAnalyzer creates an analyzer over the given food source.
func NewAnalyzer(source fdc.FoodSource) *Analyzer {
	return &Analyzer{
		source: source,
		log:    logger.WithComponent("nutrition"),
	}
}

// AnalyzeRecipe processes ingredient lines in input order and returns recipe
// totals plus per-serving values. servings < 1 falls back to
// DefaultServings, so the division is always defined. Every input line
// appears in the result's breakdown, including lines that contributed
// nothing.
func (a *Analyzer) AnalyzeRecipe(ctx context.Context, ingredients []string, servings int) *RecipeNutrition {
	if servings < 1 {
		servings = DefaultServings
	}

	a.log.Info().
		Int("ingredients", len(ingredients)).
		Int("servings", servings).
		Msg("Starting recipe nutrition analysis")

	total := zeroNutrients()
	breakdown := make([]IngredientContribution, 0, len(ingredients))

	for _, line := range ingredients {
		contrib := a.analyzeIngredient(ctx, line)
		for key, value := range contrib.Nutrients {
			total[key] += value
		}
		breakdown = append(breakdown, contrib)
	}

	perServing := make(Nutrients, len(total))
	for key, value := range total {
		perServing[key] = value / float64(servings)
	}

	resolved := 0
	for i := range breakdown {
		if breakdown[i].Resolved() {
			resolved++
		}
	}
	a.log.Info().
		Int("resolved", resolved).
		Int("skipped", len(breakdown)-resolved).
		Float64("calories_per_serving", perServing[Calories]).
		Msg("Recipe nutrition analysis complete")

	return &RecipeNutrition{
		Total:       total,
		PerServing:  perServing,
		Ingredients: breakdown,
		Servings:    servings,
	}
}

// analyzeIngredient runs parse -> resolve -> extract -> scale for one line.
// Every failure mode returns an empty contribution; none of them aborts the
// recipe.
func (a *Analyzer) analyzeIngredient(ctx context.Context, line string) IngredientContribution {
	parsed := ParseIngredient(line)
	contrib := IngredientContribution{Ingredient: line, Parsed: parsed}
	log := a.log.With().Str("ingredient", line).Logger()

	log.Debug().
		Str("quantity", parsed.Quantity).
		Str("unit", parsed.Unit).
		Str("food", parsed.FoodName).
		Msg("Parsed ingredient line")

	if parsed.FoodName == "" {
		log.Warn().Msg("No food name left after stripping, skipping ingredient")
		return contrib
	}

	hits, err := a.source.SearchFoods(ctx, parsed.FoodName)
	if err != nil {
		log.Warn().Err(err).Msg("Food search failed, skipping ingredient")
		return contrib
	}
	if len(hits) == 0 {
		log.Warn().Str("food", parsed.FoodName).Msg("No database match, skipping ingredient")
		return contrib
	}

	// The search service ranks candidates; take its best match as-is.
	best := hits[0]
	contrib.Match = &FoodMatch{FDCID: best.FDCID, Description: best.Description}

	record, err := a.source.FoodDetails(ctx, best.FDCID)
	if err != nil || record == nil {
		log.Warn().Err(err).Int64("fdc_id", best.FDCID).Msg("Food details unavailable, skipping ingredient")
		return contrib
	}

	per100g := ExtractNutrients(record)
	if len(per100g) == 0 {
		log.Warn().Int64("fdc_id", best.FDCID).Msg("No recognized nutrients in record, skipping ingredient")
		return contrib
	}
	contrib.Match.Per100g = per100g

	contrib.Nutrients = Scale(per100g, parsed.Quantity, parsed.Unit)

	log.Debug().
		Str("matched", best.Description).
		Float64("calories", contrib.Nutrients[Calories]).
		Msg("Ingredient contribution scaled")

	return contrib
}
