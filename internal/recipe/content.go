package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipecards/pkg/models"
)

const descriptionPromptFmt = `Create an enticing Etsy listing description for this vintage recipe. The description should:
- Be warm and nostalgic, mentioning family traditions and vintage cookbooks
- Describe the end result appealingly
- Mention it's a digital download
- Include suggested uses (gifting, printing, etc.)
- Be 2-3 paragraphs long

Recipe: %s
Servings: %s
Prep Time: %s
Cook Time: %s
Ingredients: %s
Instructions: %d steps

Write a compelling description:`

// GenerateDescription writes the listing description for a recipe.
func (s *GPTService) GenerateDescription(ctx context.Context, r *models.Recipe) (string, error) {
	ingredients := "Traditional ingredients"
	if len(r.Ingredients) > 0 {
		sample := r.Ingredients
		if len(sample) > 5 {
			sample = sample[:5]
		}
		ingredients = strings.Join(sample, ", ")
	}

	prompt := fmt.Sprintf(descriptionPromptFmt,
		r.Title, orUnknown(r.Servings), orUnknown(r.PrepTime), orUnknown(r.CookTime),
		ingredients, len(r.Instructions))

	return s.askGPT(ctx, prompt, 1000)
}

const allergensPromptFmt = `Analyze these ingredients for potential allergies. Return a JSON list of allergens:
%s

Common allergens: gluten, dairy, eggs, nuts, soy, shellfish, fish, peanuts
Consider that "cake mix" contains gluten, "milk" contains dairy, etc.

Return JSON: {"allergens": ["allergen1", "allergen2"]}`

// AnalyzeAllergens lists potential allergens in the ingredients. Failures
// yield an empty list.
func (s *GPTService) AnalyzeAllergens(ctx context.Context, ingredients []string) []string {
	if len(ingredients) == 0 {
		return nil
	}

	response, err := s.askGPT(ctx, fmt.Sprintf(allergensPromptFmt, strings.Join(ingredients, ", ")), 300)
	if err != nil {
		s.log.Warn().Err(err).Msg("Allergen analysis request failed")
		return nil
	}

	var parsed struct {
		Allergens []string `json:"allergens"`
	}
	if blob := extractJSON(response); blob != "" {
		if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
			s.log.Warn().Err(err).Msg("Allergen analysis JSON invalid")
		}
	}
	return parsed.Allergens
}

const dietsPromptFmt = `Analyze this recipe for diet compatibility. Return a JSON object:

Ingredients: %s
Instructions: %s

Check for: vegan, vegetarian, gluten-free, dairy-free, paleo, keto, low-carb, nut-free

Return JSON: {"diets": ["diet1", "diet2"], "not_compatible": ["diet3"]}`

// AnalyzeDiets reports diet compatibility. Failures yield an empty report.
func (s *GPTService) AnalyzeDiets(ctx context.Context, ingredients, instructions []string) DietInfo {
	if len(ingredients) == 0 {
		return DietInfo{}
	}

	prompt := fmt.Sprintf(dietsPromptFmt, strings.Join(ingredients, ", "), strings.Join(instructions, " "))
	response, err := s.askGPT(ctx, prompt, 300)
	if err != nil {
		s.log.Warn().Err(err).Msg("Diet analysis request failed")
		return DietInfo{}
	}

	var parsed DietInfo
	if blob := extractJSON(response); blob != "" {
		if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
			s.log.Warn().Err(err).Msg("Diet analysis JSON invalid")
			return DietInfo{}
		}
	}
	return parsed
}

const instagramPromptFmt = `Create an Instagram post for this recipe. Include:
- Engaging opening with emojis
- Brief description
- Call to action
- Relevant hashtags

Recipe: %s
Description: %s...

Format with emojis and hashtags.`

const pinterestPromptFmt = `Create a Pinterest description for this recipe. Keep it under 500 characters.

Recipe: %s
Description: %s...`

// GenerateSocialContent writes Instagram and Pinterest copy.
func (s *GPTService) GenerateSocialContent(ctx context.Context, r *models.Recipe, description string) (SocialContent, error) {
	instagram, err := s.askGPT(ctx, fmt.Sprintf(instagramPromptFmt, r.Title, truncate(description, 200)), 500)
	if err != nil {
		return SocialContent{}, err
	}

	pinterest, err := s.askGPT(ctx, fmt.Sprintf(pinterestPromptFmt, r.Title, truncate(description, 100)), 300)
	if err != nil {
		return SocialContent{}, err
	}

	return SocialContent{Instagram: instagram, Pinterest: pinterest}, nil
}

// maxListingTags is the marketplace tag limit.
const maxListingTags = 13

const tagsPromptFmt = `Generate 13 relevant Etsy tags for this recipe listing. Include:
- Recipe type
- Vintage/retro themes
- Digital download
- Cooking/baking terms

Recipe: %s
Description: %s...

Return as comma-separated list.`

// GenerateTags produces up to 13 listing tags. Failures yield an empty list.
func (s *GPTService) GenerateTags(ctx context.Context, r *models.Recipe, description string) []string {
	response, err := s.askGPT(ctx, fmt.Sprintf(tagsPromptFmt, r.Title, truncate(description, 200)), 300)
	if err != nil {
		s.log.Warn().Err(err).Msg("Tag generation request failed")
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(response, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxListingTags {
			break
		}
	}
	return tags
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	return value
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
