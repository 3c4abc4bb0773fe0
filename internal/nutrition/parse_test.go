package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantQuantity string
		wantUnit     string
		wantFood     string
	}{
		{
			name:         "fraction with cup abbreviation",
			line:         "3/4 c. butter",
			wantQuantity: "3/4",
			wantUnit:     "cup",
			wantFood:     ". butter",
		},
		{
			name:         "bare count",
			line:         "2 eggs",
			wantQuantity: "2",
			wantUnit:     "",
			wantFood:     "eggs",
		},
		{
			name:         "decimal quantity",
			line:         "1.5 cups flour",
			wantQuantity: "1.5",
			wantUnit:     "cup",
			wantFood:     "flour",
		},
		{
			name:         "leading filler before quantity",
			line:         "about 2 cups flour",
			wantQuantity: "2",
			wantUnit:     "cup",
			wantFood:     "flour",
		},
		{
			name:         "parenthetical removed",
			line:         "3/4 c. dry farina (cereal)",
			wantQuantity: "3/4",
			wantUnit:     "cup",
			wantFood:     ". dry farina",
		},
		{
			name:         "adjective and trailing filler removed",
			line:         "fresh basil for decoration",
			wantQuantity: "1",
			wantUnit:     "",
			wantFood:     "basil",
		},
		{
			name:         "leading to taste",
			line:         "to taste salt",
			wantQuantity: "1",
			wantUnit:     "",
			wantFood:     "salt",
		},
		{
			name:         "tablespoon abbreviation",
			line:         "2 tbsp sugar",
			wantQuantity: "2",
			wantUnit:     "tablespoon",
			wantFood:     "sugar",
		},
		{
			name:         "trailing comma modifier",
			line:         "1 onion, chopped",
			wantQuantity: "1",
			wantUnit:     "",
			wantFood:     "onion",
		},
		{
			name:         "pound abbreviation",
			line:         "1 lb ground beef",
			wantQuantity: "1",
			wantUnit:     "pound",
			wantFood:     "ground beef",
		},
		{
			name:         "empty line",
			line:         "",
			wantQuantity: "1",
			wantUnit:     "",
			wantFood:     "",
		},
		{
			name:         "only a parenthetical",
			line:         "(optional)",
			wantQuantity: "1",
			wantUnit:     "",
			wantFood:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIngredient(tt.line)
			assert.Equal(t, tt.wantQuantity, got.Quantity)
			assert.Equal(t, tt.wantUnit, got.Unit)
			assert.Equal(t, tt.wantFood, got.FoodName)
		})
	}
}

func TestSplitUnitFirstTableMatchWins(t *testing.T) {
	// "cup" is checked before "gram", so a line carrying both resolves to cup.
	unit, food := splitUnit("cup g sugar")
	assert.Equal(t, "cup", unit)
	assert.Equal(t, "g sugar", food)
}

func TestUnitGrams(t *testing.T) {
	assert.Equal(t, 240.0, UnitGrams("cup"))
	assert.Equal(t, 15.0, UnitGrams("tablespoon"))
	assert.Equal(t, 5.0, UnitGrams("teaspoon"))
	assert.Equal(t, 28.35, UnitGrams("ounce"))
	assert.Equal(t, 453.59, UnitGrams("pound"))
	assert.Equal(t, 1.0, UnitGrams("gram"))

	// Units outside the mass table use the per-item heuristic, as does the
	// empty unit of a bare count.
	assert.Equal(t, gramsPerItem, UnitGrams("pint"))
	assert.Equal(t, gramsPerItem, UnitGrams(""))
	assert.Equal(t, gramsPerItem, UnitGrams("slice"))
}
