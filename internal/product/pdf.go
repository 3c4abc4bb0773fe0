package product

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"recipecards/pkg/models"
)

// WriteRecipeCard renders the printable recipe card: centered title, details
// line, ingredient bullets, numbered instructions, and a nutrition line when
// values are known.
func WriteRecipeCard(r *models.Recipe, label NutritionLabel, outputPath string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; translate so fractions and degree signs survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 12, tr(r.Title), "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	details := fmt.Sprintf("Servings: %s | Prep Time: %s | Cook Time: %s",
		orUnknown(r.Servings), orUnknown(r.PrepTime), orUnknown(r.CookTime))
	pdf.MultiCell(0, 6, tr(details), "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Ingredients", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, ing := range r.Ingredients {
		pdf.MultiCell(0, 6, tr("- "+ing), "", "L", false)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Instructions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, inst := range r.Instructions {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, inst)), "", "L", false)
	}

	if label.Known() {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 9, "Nutrition Information (per serving)", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		line := fmt.Sprintf("Calories: %s | Fat: %s | Carbs: %s | Protein: %s | Fiber: %s | Sugar: %s | Sodium: %s",
			label.Calories, label.Fat, label.Carbs, label.Protein, label.Fiber, label.Sugar, label.Sodium)
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("product: writing recipe card PDF: %w", err)
	}
	return nil
}
