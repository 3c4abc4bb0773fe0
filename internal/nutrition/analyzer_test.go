package nutrition

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipecards/internal/fdc"
)

// stubSource is a canned FoodSource for analyzer tests.
type stubSource struct {
	hits      map[string][]fdc.FoodHit
	records   map[int64]*fdc.FoodRecord
	searchErr error
}

func (s *stubSource) SearchFoods(_ context.Context, query string) ([]fdc.FoodHit, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.hits[query], nil
}

func (s *stubSource) FoodDetails(_ context.Context, fdcID int64) (*fdc.FoodRecord, error) {
	record, ok := s.records[fdcID]
	if !ok {
		return nil, fdc.ErrFoodNotFound
	}
	return record, nil
}

func sugarSource() *stubSource {
	return &stubSource{
		hits: map[string][]fdc.FoodHit{
			"sugar": {{FDCID: 169655, Description: "Sugars, granulated"}},
		},
		records: map[int64]*fdc.FoodRecord{
			169655: {
				FDCID:       169655,
				Description: "Sugars, granulated",
				FoodNutrients: []fdc.FoodNutrient{
					{NutrientName: "Energy", UnitName: "KCAL", Value: f64(100)},
					{NutrientName: "Total Sugars", UnitName: "G", Value: f64(99.8)},
				},
			},
		},
	}
}

func TestAnalyzeRecipePerServing(t *testing.T) {
	analyzer := NewAnalyzer(sugarSource())

	// 2 cups = 480 g of a 100 kcal/100g food: 480 kcal total, 60 per serving.
	result := analyzer.AnalyzeRecipe(context.Background(), []string{"2 cups sugar"}, 8)

	require.NotNil(t, result)
	assert.Equal(t, 8, result.Servings)
	assert.InDelta(t, 480.0, result.Total[Calories], 1e-9)
	assert.InDelta(t, 60.0, result.PerServing[Calories], 1e-9)

	require.Len(t, result.Ingredients, 1)
	contrib := result.Ingredients[0]
	assert.True(t, contrib.Resolved())
	require.NotNil(t, contrib.Match)
	assert.Equal(t, int64(169655), contrib.Match.FDCID)
	assert.Equal(t, "Sugars, granulated", contrib.Match.Description)
}

func TestAnalyzeRecipeServingsFallback(t *testing.T) {
	analyzer := NewAnalyzer(sugarSource())

	result := analyzer.AnalyzeRecipe(context.Background(), []string{"2 cups sugar"}, 0)

	assert.Equal(t, DefaultServings, result.Servings)
	assert.InDelta(t, 480.0/float64(DefaultServings), result.PerServing[Calories], 1e-9)
}

func TestAnalyzeRecipeUnmatchedIngredientStaysInBreakdown(t *testing.T) {
	analyzer := NewAnalyzer(&stubSource{})

	result := analyzer.AnalyzeRecipe(context.Background(), []string{"1 cup unobtainium"}, 4)

	// Nothing resolved, but the line is still accounted for.
	require.Len(t, result.Ingredients, 1)
	assert.False(t, result.Ingredients[0].Resolved())
	assert.Equal(t, "1 cup unobtainium", result.Ingredients[0].Ingredient)

	// Totals carry explicit zeros for every tracked nutrient.
	for _, key := range NutrientKeys() {
		assert.Equal(t, 0.0, result.Total[key])
		assert.Equal(t, 0.0, result.PerServing[key])
	}
}

func TestAnalyzeRecipeSearchErrorSkipsIngredient(t *testing.T) {
	analyzer := NewAnalyzer(&stubSource{searchErr: errors.New("boom")})

	result := analyzer.AnalyzeRecipe(context.Background(), []string{"2 cups sugar", "3 eggs"}, 8)

	// Lookup failures never abort the recipe.
	require.Len(t, result.Ingredients, 2)
	assert.False(t, result.Ingredients[0].Resolved())
	assert.False(t, result.Ingredients[1].Resolved())
	assert.Equal(t, 0.0, result.Total[Calories])
}

func TestAnalyzeRecipeDetailsLookupFailureSkips(t *testing.T) {
	source := sugarSource()
	// Search resolves but the detail record is gone.
	delete(source.records, 169655)
	analyzer := NewAnalyzer(source)

	result := analyzer.AnalyzeRecipe(context.Background(), []string{"2 cups sugar"}, 8)

	require.Len(t, result.Ingredients, 1)
	contrib := result.Ingredients[0]
	assert.False(t, contrib.Resolved())
	// The match is still recorded for the audit trail.
	require.NotNil(t, contrib.Match)
	assert.Equal(t, int64(169655), contrib.Match.FDCID)
}

func TestAnalyzeRecipeEmptyIngredientList(t *testing.T) {
	analyzer := NewAnalyzer(&stubSource{})

	result := analyzer.AnalyzeRecipe(context.Background(), nil, 8)

	assert.Empty(t, result.Ingredients)
	for _, key := range NutrientKeys() {
		assert.Equal(t, 0.0, result.Total[key])
	}
}

func TestAnalyzeRecipeMixedResolution(t *testing.T) {
	analyzer := NewAnalyzer(sugarSource())

	result := analyzer.AnalyzeRecipe(context.Background(),
		[]string{"2 cups sugar", "1 cup unobtainium"}, 8)

	require.Len(t, result.Ingredients, 2)
	assert.True(t, result.Ingredients[0].Resolved())
	assert.False(t, result.Ingredients[1].Resolved())

	// The skipped line contributes nothing to the totals.
	assert.InDelta(t, 480.0, result.Total[Calories], 1e-9)
}
