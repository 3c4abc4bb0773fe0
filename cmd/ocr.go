package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recipecards/internal/logger"
	"recipecards/internal/ocr"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [image-file]",
	Short: "Extract text from a recipe photograph",
	Long: `Extract text from one recipe-card photograph with the selected OCR
backend and print it, without running the rest of the pipeline. Useful for
checking what a backend sees before committing to a full processing run.

Backends:
  gpt-vision    - OpenAI GPT-4o vision (default; needs OPENAI_API_KEY)
  google-vision - Google Cloud Vision document text detection
  document-ai   - Google Document AI OCR processor`,
	Example: `  # Extract text with the default backend
  recipecards ocr card-017.jpg

  # Compare against Google Cloud Vision, with metadata
  recipecards ocr card-017.jpg --method google-vision --json`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringP("method", "m", ocr.MethodGPTVision, "OCR backend: gpt-vision, google-vision, document-ai")
	ocrCmd.Flags().Bool("json", false, "Emit text plus processing metadata as JSON")
	ocrCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runOCR(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ocr-cmd")

	method, _ := cmd.Flags().GetString("method")
	asJSON, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	imagePath := args[0]

	log.Info().
		Str("image", imagePath).
		Str("method", method).
		Msg("Starting OCR extraction")

	ctx, cancel := runContext(timeoutSecs)
	defer cancel()

	extractor, err := ocr.New(ctx, method)
	if err != nil {
		return err
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	result, err := extractor.ExtractImage(ctx, f)
	if err != nil {
		return err
	}

	log.Info().
		Int("chars", len(result.Text)).
		Float32("confidence", result.Confidence).
		Dur("duration", result.ProcessingDuration).
		Msg("OCR extraction completed")

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(result.Text)
	return nil
}
