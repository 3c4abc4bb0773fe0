package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recipecards/internal/config"
	"recipecards/internal/logger"
	"recipecards/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [image-file]",
	Short: "Process one recipe photograph into a product folder",
	Long: `Process a single recipe-card photograph end to end: OCR, recipe
structuring, detail estimation, nutrition analysis, listing content, and the
product folder with its recipe-card PDF.

Required environment variables:
  OPENAI_API_KEY - OpenAI key for structuring, content and GPT vision OCR
  USDA_API_KEY   - FoodData Central key for nutrition analysis

The Google OCR backends additionally need GOOGLE_APPLICATION_CREDENTIALS (or
GOOGLE_CREDENTIALS), and Document AI needs GOOGLE_CLOUD_PROJECT plus
DOCUMENT_AI_PROCESSOR_ID.`,
	Example: `  # Process one image with the default GPT vision OCR
  recipecards process Original-Images/card-017.jpg

  # Use Google Cloud Vision instead
  recipecards process card-017.jpg --ocr-method google-vision

  # Reprocess a finished image and render product photos
  recipecards process card-017.jpg --force-reprocess --generate-images`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().String("ocr-method", "", "OCR backend: gpt-vision, google-vision, document-ai (default from OCR_METHOD)")
	processCmd.Flags().Bool("generate-images", false, "Generate DALL-E product photos")
	processCmd.Flags().Bool("force-reprocess", false, "Reprocess even when the ledger marks the image done")
	processCmd.Flags().Int("timeout", 600, "Processing timeout in seconds")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")

	ocrMethod, _ := cmd.Flags().GetString("ocr-method")
	generateImages, _ := cmd.Flags().GetBool("generate-images")
	forceReprocess, _ := cmd.Flags().GetBool("force-reprocess")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	imagePath := args[0]
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("image file not accessible: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ocrMethod != "" {
		cfg.OCRMethod = ocrMethod
	}

	log.Info().
		Str("image", imagePath).
		Str("ocr_method", cfg.OCRMethod).
		Bool("generate_images", generateImages).
		Msg("Starting recipe processing")

	ctx, cancel := runContext(timeoutSecs)
	defer cancel()

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.ProcessImage(ctx, imagePath, pipeline.Options{
		GenerateImages: generateImages,
		ForceReprocess: forceReprocess,
	})
}
