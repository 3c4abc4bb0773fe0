package recipe

import (
	"regexp"
	"strings"

	"recipecards/pkg/models"
)

const untitledRecipe = "Untitled Recipe"

var (
	leadingNumberRe = regexp.MustCompile(`^\d+`)
	numberedStepRe  = regexp.MustCompile(`^\d+[.)]`)
)

// fallbackParse structures OCR text with line heuristics when the model
// response carries no usable JSON. The first short line becomes the title,
// section headers switch ingredient/instruction mode, bulleted or numbered
// lines become entries, and unnumbered lines continue the previous step.
func fallbackParse(text string) *models.Recipe {
	out := &models.Recipe{
		Title:    untitledRecipe,
		Servings: "Unknown",
		PrepTime: "Unknown",
		CookTime: "Unknown",
	}

	inIngredients := false
	inInstructions := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if out.Title == untitledRecipe {
			if len(line) < 100 && !containsAny(lower, sectionWords) {
				out.Title = line
				continue
			}
		}

		if containsAny(lower, []string{"ingredients", "ingredient"}) {
			inIngredients, inInstructions = true, false
			continue
		}
		if containsAny(lower, []string{"instructions", "directions", "method", "steps"}) {
			inIngredients, inInstructions = false, true
			continue
		}

		switch {
		case inIngredients && !containsAny(lower, []string{"instructions", "directions"}):
			if bullet, ok := trimBullet(line); ok {
				out.Ingredients = append(out.Ingredients, bullet)
			} else if leadingNumberRe.MatchString(line) {
				out.Ingredients = append(out.Ingredients, line)
			}
		case inInstructions:
			if numberedStepRe.MatchString(line) {
				out.Instructions = append(out.Instructions, line)
			} else if len(out.Instructions) > 0 {
				// Wrapped line, continuation of the previous step.
				out.Instructions[len(out.Instructions)-1] += " " + line
			}
		}
	}

	return out
}

// trimBullet strips a leading list marker, reporting whether one was present.
func trimBullet(line string) (string, bool) {
	for _, marker := range []string{"-", "•", "*"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return line, false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
