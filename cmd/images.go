package cmd

import (
	"github.com/spf13/cobra"

	"recipecards/internal/config"
	"recipecards/internal/logger"
	"recipecards/internal/pipeline"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Generate product photos for recipes processed without them",
	Long: `Render the DALL-E product photographs (finished dish and single
serving) for every recipe that was processed without --generate-images. The
ledger tracks which recipes already have photos, so the command only touches
what is missing.`,
	Example: `  # Generate all missing product photos
  recipecards images

  # Only the first 20, in batches of 5
  recipecards images --limit 20 --batch-size 5`,
	Args: cobra.NoArgs,
	RunE: runImages,
}

func init() {
	rootCmd.AddCommand(imagesCmd)

	imagesCmd.Flags().Int("limit", 0, "Maximum number of recipes to generate photos for (0 = all)")
	imagesCmd.Flags().Int("batch-size", 0, "Recipes per batch (default from BATCH_SIZE)")
}

func runImages(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("images")

	limit, _ := cmd.Flags().GetInt("limit")
	batchSize, _ := cmd.Flags().GetInt("batch-size")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := runContext(0)
	defer cancel()

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	generated, failed, err := p.GenerateMissingImages(ctx, batchSize, limit)

	log.Info().
		Int("generated", generated).
		Int("failed", failed).
		Msg("Image generation run finished")

	return err
}
