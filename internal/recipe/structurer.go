package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"recipecards/internal/logger"
	"recipecards/pkg/models"
)

// minUsableOCRLength is the OCR text length below which structuring is not
// attempted and a generic recipe is returned instead.
const minUsableOCRLength = 30

// GPTService implements Service using the OpenAI chat API.
type GPTService struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewGPTService creates a service with the API key from OPENAI_API_KEY.
// OPENAI_MODEL overrides the default GPT-4o model.
func NewGPTService() (*GPTService, error) {
	const op = "NewGPTService"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, WrapRecipeError(op, ErrMissingAPIKey, "OPENAI_API_KEY environment variable is required")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4o
	}

	return &GPTService{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.WithComponent("recipe"),
	}, nil
}

// NewGPTServiceWithClient creates a service with an explicit client (for testing).
func NewGPTServiceWithClient(client *openai.Client, model string) *GPTService {
	if model == "" {
		model = openai.GPT4o
	}
	return &GPTService{
		client: client,
		model:  model,
		log:    logger.WithComponent("recipe"),
	}
}

// askGPT sends one user prompt and returns the raw response text.
func (s *GPTService) askGPT(ctx context.Context, prompt string, maxTokens int) (string, error) {
	const op = "askGPT"

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", WrapRecipeError(op, ErrCompletionFailed, fmt.Sprintf("OpenAI API call failed: %v", err))
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", WrapRecipeError(op, ErrNoResponse, "")
	}
	return resp.Choices[0].Message.Content, nil
}

// jsonBlobRe locates the outermost JSON object in a model response that may
// carry prose or code fences around it.
var jsonBlobRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON returns the JSON object embedded in a model response, or "".
func extractJSON(response string) string {
	return jsonBlobRe.FindString(response)
}

// looseString decodes a JSON value that may arrive as a string, a number, or
// a quantity/ingredient object, into a single display string.
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = looseString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*l = looseString(n.String())
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	quantity := stringify(obj["quantity"])
	name := stringify(obj["ingredient"])
	switch {
	case quantity != "" && name != "":
		*l = looseString(quantity + " " + name)
	case name != "":
		*l = looseString(name)
	case quantity != "":
		*l = looseString(quantity)
	default:
		// Unknown object shape: take any value it carries.
		for _, v := range obj {
			if s := stringify(v); s != "" {
				*l = looseString(s)
				break
			}
		}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// rawRecipe is the tolerant decoding target for model output.
type rawRecipe struct {
	Title        string        `json:"title"`
	Ingredients  []looseString `json:"ingredients"`
	Instructions []looseString `json:"instructions"`
	Servings     looseString   `json:"servings"`
	PrepTime     looseString   `json:"prep_time"`
	CookTime     looseString   `json:"cook_time"`
}

func (r *rawRecipe) toModel() *models.Recipe {
	out := &models.Recipe{
		Title:    strings.TrimSpace(r.Title),
		Servings: string(r.Servings),
		PrepTime: string(r.PrepTime),
		CookTime: string(r.CookTime),
	}
	for _, ing := range r.Ingredients {
		if s := strings.TrimSpace(string(ing)); s != "" {
			out.Ingredients = append(out.Ingredients, s)
		}
	}
	for _, inst := range r.Instructions {
		if s := strings.TrimSpace(string(inst)); s != "" {
			out.Instructions = append(out.Instructions, s)
		}
	}
	return out
}

const structurePromptFmt = `Parse this recipe text into a JSON structure. Extract:
- title: Recipe name (be specific and descriptive)
- ingredients: List of ingredients with quantities (each ingredient should be a complete string like "6 egg yolks", "3/4 c. dry farina (cereal)")
- instructions: Step-by-step cooking instructions
- servings: Number of servings (if mentioned)
- prep_time: Preparation time (if mentioned)
- cook_time: Cooking time (if mentioned)

IMPORTANT: For ingredients, extract the COMPLETE ingredient line including quantity, unit, and ingredient name.
Do NOT separate quantity and ingredient name. Keep them together as one string per ingredient.

Handle dual-part recipes (like cake + frosting) by separating them clearly.
Remove any personal names from the recipe.

If the OCR text is unclear or too short, try to extract what you can and make reasonable assumptions.
If you can't determine specific ingredients, use common ingredients for the type of recipe.

OCR Text:
%s

Return only valid JSON with ingredients as complete strings:`

// StructureRecipe parses OCR text into a structured recipe. Unusable OCR text
// yields a generic placeholder recipe; a response without recoverable JSON
// falls back to heuristic line parsing. Only a failed API call is an error.
func (s *GPTService) StructureRecipe(ctx context.Context, ocrText string) (*models.Recipe, error) {
	if len(strings.TrimSpace(ocrText)) < minUsableOCRLength {
		s.log.Warn().Int("ocr_length", len(ocrText)).Msg("OCR text too short, using generic recipe")
		return genericRecipe(), nil
	}

	response, err := s.askGPT(ctx, fmt.Sprintf(structurePromptFmt, ocrText), 2000)
	if err != nil {
		return nil, err
	}

	blob := extractJSON(response)
	if blob == "" {
		s.log.Warn().Msg("No JSON in structuring response, falling back to line parsing")
		return fallbackParse(ocrText), nil
	}

	var raw rawRecipe
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		s.log.Warn().Err(err).Msg("Structuring response is not valid JSON, falling back to line parsing")
		return fallbackParse(ocrText), nil
	}

	parsed := raw.toModel()
	if parsed.Title == "" || parsed.Title == untitledRecipe {
		parsed.Title = recoverTitle(ocrText)
	}
	if parsed.Title == "" || parsed.Title == untitledRecipe {
		parsed.Title = titleFromIngredients(parsed.Ingredients)
	}

	s.log.Info().
		Str("title", parsed.Title).
		Int("ingredients", len(parsed.Ingredients)).
		Int("instructions", len(parsed.Instructions)).
		Msg("Recipe structured")

	return parsed, nil
}

// genericRecipe stands in when the OCR text carries nothing to parse.
func genericRecipe() *models.Recipe {
	return &models.Recipe{
		Title: "Vintage Family Recipe",
		Ingredients: []string{
			"2 cups all-purpose flour",
			"1 cup sugar",
			"1/2 cup butter or margarine",
			"2 eggs",
			"1 tsp vanilla extract",
			"1 tsp baking powder",
			"1/4 tsp salt",
		},
		Instructions: []string{
			"Preheat oven to 350°F (175°C)",
			"Cream together butter and sugar until light and fluffy",
			"Beat in eggs one at a time, then stir in vanilla",
			"In a separate bowl, whisk together flour, baking powder, and salt",
			"Gradually mix dry ingredients into wet ingredients",
			"Drop by rounded tablespoons onto greased baking sheet",
			"Bake for 10-12 minutes or until edges are lightly golden",
		},
		Servings: "24 cookies",
		PrepTime: "15 minutes",
		CookTime: "12 minutes",
	}
}

// sectionWords disqualify a line from being a recipe title.
var sectionWords = []string{"ingredients", "instructions", "directions", "preheat"}

// recoverTitle scans the first OCR lines for a plausible title.
func recoverTitle(ocrText string) string {
	lines := strings.Split(ocrText, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 3 || len(line) >= 100 {
			continue
		}
		lower := strings.ToLower(line)
		disqualified := false
		for _, word := range sectionWords {
			if strings.Contains(lower, word) {
				disqualified = true
				break
			}
		}
		if !disqualified {
			return line
		}
	}
	return ""
}

// titleFromIngredients names the recipe after its dominant ingredient.
func titleFromIngredients(ingredients []string) string {
	if len(ingredients) == 0 {
		return "Vintage Family Recipe"
	}

	text := strings.ToLower(strings.Join(ingredients, " "))
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("chocolate", "cocoa"):
		if contains("chip", "chips") {
			return "Vintage Chocolate Chip Cookies"
		}
		return "Vintage Chocolate Cake"
	case contains("apple", "apples"):
		return "Vintage Apple Pie"
	case contains("banana", "bananas"):
		return "Vintage Banana Bread"
	case contains("pumpkin"):
		return "Vintage Pumpkin Bread"
	case contains("brownie", "brownies"):
		return "Vintage Brownies"
	case contains("cookie", "cookies"):
		return "Vintage Sugar Cookies"
	case contains("cake", "cakes"):
		return "Vintage Layer Cake"
	case contains("pie", "pies"):
		return "Vintage Fruit Pie"
	default:
		return "Vintage Family Dessert"
	}
}
