package product

import (
	"fmt"

	"recipecards/internal/nutrition"
)

// NutritionLabel holds per-serving values formatted for display. Empty fields
// render as "Unknown".
type NutritionLabel struct {
	Calories string
	Fat      string
	Carbs    string
	Protein  string
	Fiber    string
	Sugar    string
	Sodium   string
}

// LabelFromAnalysis formats a recipe analysis into label strings. Calories are
// whole numbers, macronutrients are grams with one decimal, sodium is whole
// milligrams (the analysis carries it in grams).
func LabelFromAnalysis(n *nutrition.RecipeNutrition) NutritionLabel {
	if n == nil {
		return NutritionLabel{}
	}
	ps := n.PerServing
	return NutritionLabel{
		Calories: fmt.Sprintf("%.0f", ps[nutrition.Calories]),
		Fat:      fmt.Sprintf("%.1fg", ps[nutrition.Fat]),
		Carbs:    fmt.Sprintf("%.1fg", ps[nutrition.Carbs]),
		Protein:  fmt.Sprintf("%.1fg", ps[nutrition.Protein]),
		Fiber:    fmt.Sprintf("%.1fg", ps[nutrition.Fiber]),
		Sugar:    fmt.Sprintf("%.1fg", ps[nutrition.Sugar]),
		Sodium:   fmt.Sprintf("%.0fmg", ps[nutrition.Sodium]*1000),
	}
}

// Known reports whether the label carries real values.
func (l NutritionLabel) Known() bool {
	return l.Calories != "" && l.Calories != "Unknown"
}
