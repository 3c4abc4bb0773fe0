package product

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipecards/internal/recipe"
	"recipecards/pkg/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Grandma's Apple Pie", "grandma-s-apple-pie"},
		{"Chocolate Chip Cookies!", "chocolate-chip-cookies"},
		{"  Pound   Cake  ", "pound-cake"},
		{"100% Whole Wheat Bread", "100-whole-wheat-bread"},
		{"***", "recipe"},
		{"", "recipe"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestRandomHash(t *testing.T) {
	a, b := randomHash(), randomHash()
	assert.Len(t, a, 6)
	assert.NotEqual(t, a, b)
}

func TestCreateFolder(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "recipe-photo.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("jpeg bytes"), 0o644))

	w := NewWriter(filepath.Join(dir, "Products"))
	r := &models.Recipe{Title: "Cherry Cobbler"}

	productDir, slug, uniqueID, err := w.CreateFolder(r, imagePath)
	require.NoError(t, err)

	assert.Equal(t, "cherry-cobbler", slug)
	assert.True(t, strings.HasPrefix(uniqueID, "cherry-cobbler-"))
	assert.Len(t, uniqueID, len("cherry-cobbler-")+6)
	assert.DirExists(t, productDir)

	copied, err := os.ReadFile(filepath.Join(productDir, OriginalImagePrefix+"recipe-photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(copied))
}

func TestCreateFolderWithoutImage(t *testing.T) {
	w := NewWriter(t.TempDir())
	productDir, _, _, err := w.CreateFolder(&models.Recipe{Title: "Pound Cake"}, "")
	require.NoError(t, err)
	assert.DirExists(t, productDir)
}

func testRecipe() *models.Recipe {
	return &models.Recipe{
		Title:        "Cherry Cobbler",
		Ingredients:  []string{"2 cups pitted cherries", "1 cup sugar"},
		Instructions: []string{"Toss cherries with sugar", "Bake until golden"},
		Servings:     "8 servings",
		PrepTime:     "20 minutes",
		CookTime:     "45 minutes",
	}
}

func testContent() Content {
	return Content{
		Description: "A beloved family dessert.",
		Social: recipe.SocialContent{
			Instagram: "insta caption",
			Pinterest: "pinterest caption",
		},
		Tags: []string{"vintage recipe", "cobbler", "digital download"},
		Nutrition: NutritionLabel{
			Calories: "320", Fat: "8.0g", Carbs: "60.0g", Protein: "3.0g",
			Fiber: "2.0g", Sugar: "45.0g", Sodium: "95mg",
		},
		Allergens: []string{"wheat", "dairy"},
		Diets:     recipe.DietInfo{Diets: []string{"vegetarian"}},
	}
}

func TestSaveContentFiles(t *testing.T) {
	productDir := t.TempDir()
	w := NewWriter(filepath.Dir(productDir))

	require.NoError(t, w.SaveContentFiles(productDir, testRecipe(), testContent()))

	recipeTxt := readFile(t, filepath.Join(productDir, "Recipe.txt"))
	assert.Contains(t, recipeTxt, "Title: Cherry Cobbler")
	assert.Contains(t, recipeTxt, "Servings: 8 servings")
	assert.Contains(t, recipeTxt, "- 2 cups pitted cherries")
	assert.Contains(t, recipeTxt, "1. Toss cherries with sugar")
	assert.Contains(t, recipeTxt, "2. Bake until golden")
	assert.Contains(t, recipeTxt, "Calories: 320")
	assert.Contains(t, recipeTxt, "Sodium: 95mg")
	assert.Contains(t, recipeTxt, "Allergies: wheat, dairy")
	assert.Contains(t, recipeTxt, "Diet Compatibility: vegetarian")

	listingTxt := readFile(t, filepath.Join(productDir, "Listing.txt"))
	assert.Contains(t, listingTxt, "Cherry Cobbler | Digital Recipe Download")
	assert.Contains(t, listingTxt, "Tags:\nvintage recipe, cobbler, digital download")
	assert.Contains(t, listingTxt, "Suggested Price: $4.99")

	assert.Equal(t, "insta caption", readFile(t, filepath.Join(productDir, "Instagram.txt")))
	assert.Equal(t, "pinterest caption", readFile(t, filepath.Join(productDir, "Pinterest.txt")))
}

func TestSaveContentFilesEmptyRecipeGetsPlaceholders(t *testing.T) {
	productDir := t.TempDir()
	w := NewWriter(filepath.Dir(productDir))

	r := &models.Recipe{Title: "Mystery Card"}
	require.NoError(t, w.SaveContentFiles(productDir, r, Content{}))

	recipeTxt := readFile(t, filepath.Join(productDir, "Recipe.txt"))
	assert.Contains(t, recipeTxt, "- Traditional ingredients")
	assert.Contains(t, recipeTxt, "1. Follow traditional baking methods")
	assert.Contains(t, recipeTxt, "Servings: Unknown")
	assert.Contains(t, recipeTxt, "Calories: Unknown")
}

func TestWriteListingCSV(t *testing.T) {
	productDir := t.TempDir()
	w := NewWriter(filepath.Dir(productDir))

	require.NoError(t, w.SaveContentFiles(productDir, testRecipe(), testContent()))

	f, err := os.Open(filepath.Join(productDir, "listing.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, listingColumns, records[0])
	assert.Equal(t, []string{
		"Cherry Cobbler | Digital Recipe Download",
		"A beloved family dessert.",
		"4.99",
		"USD",
		"100",
		"vintage recipe, cobbler, digital download",
	}, records[1])
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
