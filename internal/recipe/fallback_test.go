package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackParse(t *testing.T) {
	text := `Cherry Cobbler
Ingredients:
- 2 cups pitted cherries
• 1 cup sugar
* 1/2 cup butter
2 tbsp cornstarch
Instructions:
1. Preheat oven to 375
2. Toss cherries with sugar
and cornstarch until coated`

	r := fallbackParse(text)

	assert.Equal(t, "Cherry Cobbler", r.Title)
	assert.Equal(t, []string{
		"2 cups pitted cherries",
		"1 cup sugar",
		"1/2 cup butter",
		"2 tbsp cornstarch",
	}, r.Ingredients)
	assert.Equal(t, []string{
		"1. Preheat oven to 375",
		"2. Toss cherries with sugar and cornstarch until coated",
	}, r.Instructions)
	assert.Equal(t, "Unknown", r.Servings)
	assert.Equal(t, "Unknown", r.PrepTime)
	assert.Equal(t, "Unknown", r.CookTime)
}

func TestFallbackParseNoSections(t *testing.T) {
	r := fallbackParse("Cherry Cobbler\nsome stray text\nmore text")

	assert.Equal(t, "Cherry Cobbler", r.Title)
	assert.Empty(t, r.Ingredients)
	assert.Empty(t, r.Instructions)
}

func TestFallbackParseTitleSkipsSectionHeader(t *testing.T) {
	r := fallbackParse("Ingredients\nCherry Cobbler\n- 1 cup sugar")

	assert.Equal(t, "Cherry Cobbler", r.Title)
	assert.Equal(t, []string{"1 cup sugar"}, r.Ingredients)
}

func TestFallbackParseDirectionsHeader(t *testing.T) {
	r := fallbackParse("Pound Cake\nDirections\n1) Cream the butter")

	assert.Equal(t, []string{"1) Cream the butter"}, r.Instructions)
}

func TestTrimBullet(t *testing.T) {
	tests := []struct {
		line     string
		want     string
		wantFlag bool
	}{
		{"- 1 cup sugar", "1 cup sugar", true},
		{"• 1 cup sugar", "1 cup sugar", true},
		{"* 1 cup sugar", "1 cup sugar", true},
		{"1 cup sugar", "1 cup sugar", false},
	}

	for _, tt := range tests {
		got, ok := trimBullet(tt.line)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.wantFlag, ok)
	}
}
