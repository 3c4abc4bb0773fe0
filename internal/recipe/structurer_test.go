package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "bare object",
			response: `{"title": "Apple Pie"}`,
			want:     `{"title": "Apple Pie"}`,
		},
		{
			name:     "code fenced",
			response: "```json\n{\"title\": \"Apple Pie\"}\n```",
			want:     `{"title": "Apple Pie"}`,
		},
		{
			name:     "surrounded by prose",
			response: "Here is the recipe:\n{\"title\": \"Apple Pie\"}\nLet me know if you need anything else.",
			want:     `{"title": "Apple Pie"}`,
		},
		{
			name:     "no object",
			response: "I could not read this recipe.",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.response))
		})
	}
}

func TestLooseStringUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"plain string", `"2 cups flour"`, "2 cups flour"},
		{"number", `6`, "6"},
		{"decimal number", `1.5`, "1.5"},
		{"quantity and ingredient object", `{"quantity": "2 cups", "ingredient": "flour"}`, "2 cups flour"},
		{"numeric quantity object", `{"quantity": 2, "ingredient": "eggs"}`, "2 eggs"},
		{"ingredient only object", `{"ingredient": "salt"}`, "salt"},
		{"quantity only object", `{"quantity": "a pinch"}`, "a pinch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got looseString
			require.NoError(t, json.Unmarshal([]byte(tt.data), &got))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRawRecipeToModel(t *testing.T) {
	blob := `{
		"title": "  Grandma's Farina Pudding  ",
		"ingredients": ["6 egg yolks", {"quantity": "3/4 c.", "ingredient": "dry farina"}, ""],
		"instructions": ["Beat the yolks", "Fold in farina"],
		"servings": 6,
		"prep_time": "20 minutes",
		"cook_time": "45 minutes"
	}`

	var raw rawRecipe
	require.NoError(t, json.Unmarshal([]byte(blob), &raw))

	r := raw.toModel()
	assert.Equal(t, "Grandma's Farina Pudding", r.Title)
	assert.Equal(t, []string{"6 egg yolks", "3/4 c. dry farina"}, r.Ingredients)
	assert.Equal(t, []string{"Beat the yolks", "Fold in farina"}, r.Instructions)
	assert.Equal(t, "6", r.Servings)
	assert.Equal(t, "20 minutes", r.PrepTime)
	assert.Equal(t, "45 minutes", r.CookTime)
}

func TestRecoverTitle(t *testing.T) {
	tests := []struct {
		name    string
		ocrText string
		want    string
	}{
		{
			name:    "first plausible line",
			ocrText: "Cherry Cobbler\n2 cups cherries\n1 cup sugar",
			want:    "Cherry Cobbler",
		},
		{
			name:    "skips short fragments",
			ocrText: "p.2\nCherry Cobbler\nIngredients",
			want:    "Cherry Cobbler",
		},
		{
			name:    "section headers disqualified",
			ocrText: "Ingredients\nInstructions for baking\nPreheat oven to 350",
			want:    "",
		},
		{
			name:    "only scans the first five lines",
			ocrText: "a\nb\nc\nd\ne\nCherry Cobbler",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recoverTitle(tt.ocrText))
		})
	}
}

func TestTitleFromIngredients(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		want        string
	}{
		{"chocolate chip", []string{"2 cups chocolate chips", "1 cup flour"}, "Vintage Chocolate Chip Cookies"},
		{"chocolate without chips", []string{"1/2 cup cocoa powder"}, "Vintage Chocolate Cake"},
		{"apple", []string{"4 apples, peeled"}, "Vintage Apple Pie"},
		{"banana", []string{"3 ripe bananas"}, "Vintage Banana Bread"},
		{"pumpkin", []string{"1 can pumpkin puree"}, "Vintage Pumpkin Bread"},
		{"no keyword match", []string{"2 cups flour", "1 cup milk"}, "Vintage Family Dessert"},
		{"no ingredients", nil, "Vintage Family Recipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titleFromIngredients(tt.ingredients))
		})
	}
}

func TestGenericRecipe(t *testing.T) {
	r := genericRecipe()

	assert.Equal(t, "Vintage Family Recipe", r.Title)
	assert.NotEmpty(t, r.Ingredients)
	assert.NotEmpty(t, r.Instructions)
	assert.Equal(t, "24 cookies", r.Servings)
}
