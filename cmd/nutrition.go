package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"recipecards/internal/fdc"
	"recipecards/internal/logger"
	"recipecards/internal/nutrition"
)

var nutritionCmd = &cobra.Command{
	Use:   "nutrition [ingredient]...",
	Short: "Analyze nutrition for a list of ingredient lines",
	Long: `Analyze free-text ingredient lines against the USDA FoodData
Central database and print recipe totals plus per-serving values.

Ingredients are given as arguments or read from a file (one line per
ingredient, blank lines ignored). Lines that cannot be parsed or matched
contribute zero and appear in the breakdown as skipped.

Required environment variables:
  USDA_API_KEY - FoodData Central API key`,
	Example: `  # Analyze three ingredient lines for 12 servings
  recipecards nutrition "2 cups flour" "1 cup sugar" "3 eggs" --servings 12

  # Read ingredients from a file, emit JSON
  recipecards nutrition --file ingredients.txt --json`,
	Args: cobra.ArbitraryArgs,
	RunE: runNutrition,
}

func init() {
	rootCmd.AddCommand(nutritionCmd)

	nutritionCmd.Flags().StringP("file", "f", "", "File with one ingredient line per row")
	nutritionCmd.Flags().IntP("servings", "s", nutrition.DefaultServings, "Serving count for per-serving values")
	nutritionCmd.Flags().Bool("json", false, "Emit the full analysis as JSON")
	nutritionCmd.Flags().Int("timeout", 120, "Analysis timeout in seconds")
}

func runNutrition(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("nutrition-cmd")

	filePath, _ := cmd.Flags().GetString("file")
	servings, _ := cmd.Flags().GetInt("servings")
	asJSON, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	ingredients := args
	if filePath != "" {
		fromFile, err := readIngredientLines(filePath)
		if err != nil {
			return err
		}
		ingredients = append(ingredients, fromFile...)
	}
	if len(ingredients) == 0 {
		return fmt.Errorf("no ingredients given: pass them as arguments or via --file")
	}

	log.Info().
		Int("ingredients", len(ingredients)).
		Int("servings", servings).
		Msg("Starting nutrition analysis")

	ctx, cancel := runContext(timeoutSecs)
	defer cancel()

	client, err := fdc.NewClient()
	if err != nil {
		return err
	}

	result := nutrition.NewAnalyzer(client).AnalyzeRecipe(ctx, ingredients, servings)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printNutritionReport(result)
	return nil
}

func readIngredientLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ingredient file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func printNutritionReport(result *nutrition.RecipeNutrition) {
	fmt.Printf("Nutrition analysis (%d servings)\n\n", result.Servings)

	fmt.Println("Per serving:")
	for _, key := range nutrition.NutrientKeys() {
		fmt.Printf("  %-10s %10.1f\n", key, result.PerServing[key])
	}

	fmt.Println("\nRecipe total:")
	for _, key := range nutrition.NutrientKeys() {
		fmt.Printf("  %-10s %10.1f\n", key, result.Total[key])
	}

	fmt.Println("\nIngredients:")
	for _, contrib := range result.Ingredients {
		status := "skipped"
		if contrib.Resolved() {
			status = fmt.Sprintf("matched %q (%.0f kcal)",
				contrib.Match.Description, contrib.Nutrients[nutrition.Calories])
		}
		fmt.Printf("  %-40s %s\n", contrib.Ingredient, status)
	}
}
