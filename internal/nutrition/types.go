package nutrition

// NutrientKey names one of the nutrients recipe analysis tracks. The set is
// closed: database entries outside it are ignored during extraction.
type NutrientKey string

const (
	Calories NutrientKey = "calories"
	Protein  NutrientKey = "protein"
	Fat      NutrientKey = "fat"
	Carbs    NutrientKey = "carbs"
	Fiber    NutrientKey = "fiber"
	Sugar    NutrientKey = "sugar"
	Sodium   NutrientKey = "sodium"
	Calcium  NutrientKey = "calcium"
	Iron     NutrientKey = "iron"
	VitaminC NutrientKey = "vitamin_c"
	VitaminA NutrientKey = "vitamin_a"
)

// NutrientKeys returns all tracked nutrients in reporting order.
func NutrientKeys() []NutrientKey {
	return []NutrientKey{
		Calories, Protein, Fat, Carbs, Fiber, Sugar,
		Sodium, Calcium, Iron, VitaminC, VitaminA,
	}
}

// Nutrients maps nutrient keys to values. Canonical units: kcal for
// calories, grams for mass-based nutrients, milligrams for vitamin A.
// A missing key means "no data", which is distinct from an explicit zero.
type Nutrients map[NutrientKey]float64

func zeroNutrients() Nutrients {
	n := make(Nutrients, len(NutrientKeys()))
	for _, k := range NutrientKeys() {
		n[k] = 0
	}
	return n
}

// ParsedIngredient is the quantity/unit/food-name triple parsed from one
// free-text ingredient line.
type ParsedIngredient struct {
	// Quantity is kept as the original text ("3/4", "2", "1.5") so fraction
	// semantics survive until scaling; defaults to "1" when absent.
	Quantity string `json:"quantity"`

	// Unit is a canonical unit name from the unit table, or empty for a bare
	// count like "2 eggs".
	Unit string `json:"unit"`

	// FoodName is the residual text after quantity, unit and descriptive
	// modifiers are removed. Empty means the line is unusable.
	FoodName string `json:"food_name"`
}

// FoodMatch is the database record an ingredient resolved to.
type FoodMatch struct {
	FDCID       int64     `json:"fdc_id"`
	Description string    `json:"description"`
	Per100g     Nutrients `json:"nutrients_per_100g,omitempty"`
}

// IngredientContribution records what one ingredient line added to the
// recipe totals, for audit and debugging. Match is nil and Nutrients empty
// when the ingredient could not be resolved.
type IngredientContribution struct {
	Ingredient string           `json:"ingredient"`
	Parsed     ParsedIngredient `json:"parsed"`
	Match      *FoodMatch       `json:"match,omitempty"`
	Nutrients  Nutrients        `json:"nutrients,omitempty"`
}

// Resolved reports whether this ingredient contributed nutrient data.
func (c *IngredientContribution) Resolved() bool {
	return len(c.Nutrients) > 0
}

// RecipeNutrition is the aggregated result for a whole recipe.
type RecipeNutrition struct {
	Total       Nutrients                `json:"total"`
	PerServing  Nutrients                `json:"per_serving"`
	Ingredients []IngredientContribution `json:"ingredients"`
	Servings    int                      `json:"servings"`
}
