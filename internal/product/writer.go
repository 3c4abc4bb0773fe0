// Package product writes the deliverable artifacts for one processed recipe:
// a uniquely named product folder holding the original photograph, the recipe
// and listing text files, social media copy, a marketplace-import CSV, and a
// printable recipe-card PDF. A separate export step merges all per-product
// CSVs into master listing files.
package product

import (
	"crypto/rand"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"recipecards/internal/logger"
	"recipecards/internal/recipe"
	"recipecards/pkg/models"
)

// OriginalImagePrefix marks the copied source photograph inside a product
// folder. The images command locates product folders by it.
const OriginalImagePrefix = "original-"

// ListingPrice is the suggested marketplace price for every listing.
const ListingPrice = "4.99"

// Content bundles everything generated for one recipe besides the recipe
// itself.
type Content struct {
	Description string
	Social      recipe.SocialContent
	Tags        []string
	Nutrition   NutritionLabel
	Allergens   []string
	Diets       recipe.DietInfo
}

// Writer creates product folders and their artifact files.
type Writer struct {
	productsDir string
	log         zerolog.Logger
}

// NewWriter creates a writer rooted at productsDir.
func NewWriter(productsDir string) *Writer {
	return &Writer{
		productsDir: productsDir,
		log:         logger.WithComponent("product"),
	}
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a title and collapses everything non-alphanumeric into
// single dashes.
func Slugify(title string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "recipe"
	}
	return slug
}

// randomHash returns 6 hex characters for folder uniqueness.
func randomHash() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("product: reading random bytes: %v", err))
	}
	return hex.EncodeToString(b)
}

// CreateFolder creates the product folder for a recipe and copies the source
// photograph into it. It returns the folder path, the title slug, and the
// unique folder ID.
func (w *Writer) CreateFolder(r *models.Recipe, imagePath string) (productDir, slug, uniqueID string, err error) {
	slug = Slugify(r.Title)
	uniqueID = fmt.Sprintf("%s-%s", slug, randomHash())
	productDir = filepath.Join(w.productsDir, uniqueID)

	if err = os.MkdirAll(productDir, 0o755); err != nil {
		return "", "", "", fmt.Errorf("product: creating folder: %w", err)
	}

	if imagePath != "" {
		dest := filepath.Join(productDir, OriginalImagePrefix+filepath.Base(imagePath))
		if err = copyFile(imagePath, dest); err != nil {
			return "", "", "", fmt.Errorf("product: copying original image: %w", err)
		}
	}

	w.log.Debug().Str("dir", productDir).Msg("Product folder created")
	return productDir, slug, uniqueID, nil
}

// SaveContentFiles writes the text, social and CSV artifacts for one recipe
// into its product folder.
func (w *Writer) SaveContentFiles(productDir string, r *models.Recipe, content Content) error {
	ingredients := r.Ingredients
	if len(ingredients) == 0 {
		ingredients = []string{"Traditional ingredients"}
	}
	instructions := r.Instructions
	if len(instructions) == 0 {
		instructions = []string{"Follow traditional baking methods"}
	}

	files := map[string]string{
		"Recipe.txt":    recipeText(r, ingredients, instructions, content),
		"Listing.txt":   listingText(r, content),
		"Instagram.txt": content.Social.Instagram,
		"Pinterest.txt": content.Social.Pinterest,
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(productDir, name), []byte(text), 0o644); err != nil {
			return fmt.Errorf("product: writing %s: %w", name, err)
		}
	}

	if err := w.writeListingCSV(productDir, r, content); err != nil {
		return err
	}

	w.log.Info().Str("dir", productDir).Msg("Content files saved")
	return nil
}

func recipeText(r *models.Recipe, ingredients, instructions []string, content Content) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\n", r.Title)
	fmt.Fprintf(&b, "Servings: %s\n", orUnknown(r.Servings))
	fmt.Fprintf(&b, "Prep Time: %s\n", orUnknown(r.PrepTime))
	fmt.Fprintf(&b, "Cook Time: %s\n\n", orUnknown(r.CookTime))

	b.WriteString("Ingredients:\n")
	for _, ing := range ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}

	b.WriteString("\nInstructions:\n")
	for i, inst := range instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, inst)
	}

	n := content.Nutrition
	b.WriteString("\nNutrition Information (per serving):\n")
	fmt.Fprintf(&b, "Calories: %s\n", orUnknown(n.Calories))
	fmt.Fprintf(&b, "Fat: %s\n", orUnknown(n.Fat))
	fmt.Fprintf(&b, "Carbohydrates: %s\n", orUnknown(n.Carbs))
	fmt.Fprintf(&b, "Protein: %s\n", orUnknown(n.Protein))
	fmt.Fprintf(&b, "Fiber: %s\n", orUnknown(n.Fiber))
	fmt.Fprintf(&b, "Sugar: %s\n", orUnknown(n.Sugar))
	fmt.Fprintf(&b, "Sodium: %s\n\n", orUnknown(n.Sodium))

	fmt.Fprintf(&b, "Allergies: %s\n", strings.Join(content.Allergens, ", "))
	fmt.Fprintf(&b, "Diet Compatibility: %s\n", strings.Join(content.Diets.Diets, ", "))
	return b.String()
}

func listingText(r *models.Recipe, content Content) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title:\n%s | Digital Recipe Download\n\n", r.Title)
	fmt.Fprintf(&b, "Servings: %s\n", orUnknown(r.Servings))
	fmt.Fprintf(&b, "Prep Time: %s\n", orUnknown(r.PrepTime))
	fmt.Fprintf(&b, "Cook Time: %s\n\n", orUnknown(r.CookTime))
	fmt.Fprintf(&b, "Tags:\n%s\n\n", strings.Join(content.Tags, ", "))
	fmt.Fprintf(&b, "Description:\n%s\n\n", content.Description)
	fmt.Fprintf(&b, "Suggested Price: $%s\n", ListingPrice)
	return b.String()
}

// listingColumns is the marketplace import header, shared with the master
// export.
var listingColumns = []string{"Title", "Description", "Price", "Currency Code", "Quantity", "Tags"}

func (w *Writer) writeListingCSV(productDir string, r *models.Recipe, content Content) error {
	f, err := os.Create(filepath.Join(productDir, "listing.csv"))
	if err != nil {
		return fmt.Errorf("product: creating listing.csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	row := []string{
		r.Title + " | Digital Recipe Download",
		content.Description,
		ListingPrice,
		"USD",
		"100",
		strings.Join(content.Tags, ", "),
	}
	if err := cw.WriteAll([][]string{listingColumns, row}); err != nil {
		return fmt.Errorf("product: writing listing.csv: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	return value
}
