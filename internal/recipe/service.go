// Package recipe turns raw OCR text into structured recipe data and derives
// the listing content around it.
//
// The language model is the primary parser: it receives the OCR text and
// returns a JSON recipe. Every model output is treated as untrusted; the JSON
// is located by pattern inside the response, ingredient entries that arrive
// as quantity/name objects are flattened to single lines, and a heuristic
// line parser takes over entirely when no JSON can be recovered. Missing
// serving counts and times are estimated in a second pass and merged only
// over fields the card itself did not answer.
package recipe

import (
	"context"

	"recipecards/pkg/models"
)

// Service defines recipe structuring and content generation.
type Service interface {
	// StructureRecipe parses OCR text into a structured recipe.
	StructureRecipe(ctx context.Context, ocrText string) (*models.Recipe, error)

	// EstimateDetails estimates servings, prep time and cook time for a
	// recipe that does not state them.
	EstimateDetails(ctx context.Context, r *models.Recipe) Details

	// GenerateDescription writes the listing description.
	GenerateDescription(ctx context.Context, r *models.Recipe) (string, error)

	// AnalyzeAllergens lists potential allergens in the ingredients.
	AnalyzeAllergens(ctx context.Context, ingredients []string) []string

	// AnalyzeDiets reports diet compatibility of the recipe.
	AnalyzeDiets(ctx context.Context, ingredients, instructions []string) DietInfo

	// GenerateSocialContent writes Instagram and Pinterest copy.
	GenerateSocialContent(ctx context.Context, r *models.Recipe, description string) (SocialContent, error)

	// GenerateTags produces up to 13 listing tags.
	GenerateTags(ctx context.Context, r *models.Recipe, description string) []string
}

// Details holds the free-text serving count and timing fields of a recipe.
type Details struct {
	Servings string `json:"servings"`
	PrepTime string `json:"prep_time"`
	CookTime string `json:"cook_time"`
}

// DietInfo reports which diets a recipe fits and which it conflicts with.
type DietInfo struct {
	Diets         []string `json:"diets"`
	NotCompatible []string `json:"not_compatible"`
}

// SocialContent holds generated social media copy.
type SocialContent struct {
	Instagram string `json:"instagram"`
	Pinterest string `json:"pinterest"`
}
