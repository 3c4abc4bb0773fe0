package cmd

import (
	"github.com/spf13/cobra"

	"recipecards/internal/config"
	"recipecards/internal/logger"
	"recipecards/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every recipe photograph in the image directory",
	Long: `Process all *.jpg, *.jpeg and *.png files in the image directory
(IMAGE_DIR, default ./Original-Images) in sorted order. Images already marked
done in the ledger are skipped, so interrupted runs resume where they left
off. The run pauses between images and batches to stay inside API rate
limits.`,
	Example: `  # Process everything new
  recipecards batch

  # Process 10 images starting from the 50th, in batches of 5
  recipecards batch --start-index 50 --limit 10 --batch-size 5

  # Full run including DALL-E product photos
  recipecards batch --generate-images`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("start-index", 0, "Index in the sorted image list to start from")
	batchCmd.Flags().Int("limit", 0, "Maximum number of images to process (0 = all)")
	batchCmd.Flags().Int("batch-size", 0, "Images per batch (default from BATCH_SIZE)")
	batchCmd.Flags().String("ocr-method", "", "OCR backend: gpt-vision, google-vision, document-ai (default from OCR_METHOD)")
	batchCmd.Flags().Bool("generate-images", false, "Generate DALL-E product photos")
	batchCmd.Flags().Bool("force-reprocess", false, "Reprocess images the ledger marks done")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")

	startIndex, _ := cmd.Flags().GetInt("start-index")
	limit, _ := cmd.Flags().GetInt("limit")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	ocrMethod, _ := cmd.Flags().GetString("ocr-method")
	generateImages, _ := cmd.Flags().GetBool("generate-images")
	forceReprocess, _ := cmd.Flags().GetBool("force-reprocess")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ocrMethod != "" {
		cfg.OCRMethod = ocrMethod
	}

	log.Info().
		Str("image_dir", cfg.ImageDir).
		Str("ocr_method", cfg.OCRMethod).
		Int("start_index", startIndex).
		Int("limit", limit).
		Msg("Starting batch processing")

	ctx, cancel := runContext(0)
	defer cancel()

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	processed, failed, err := p.ProcessAll(ctx, pipeline.BatchOptions{
		Options: pipeline.Options{
			GenerateImages: generateImages,
			ForceReprocess: forceReprocess,
		},
		StartIndex: startIndex,
		Limit:      limit,
		BatchSize:  batchSize,
	})

	log.Info().
		Int("processed", processed).
		Int("failed", failed).
		Msg("Batch run finished")

	return err
}
