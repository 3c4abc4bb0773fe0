package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recipecards/internal/logger"
	"recipecards/internal/product"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Merge per-product listings into master listing files",
	Long: `Collect the listing.csv from every product folder and merge them
into master_listing.csv and master_listing.xlsx at the products directory
root, ready for bulk marketplace import.`,
	Example: `  # Export from the default products directory
  recipecards export

  # Export from a specific directory
  recipecards export --products-dir ./Products`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("products-dir", "", "Products directory (default from PRODUCTS_DIR or ./Products)")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	productsDir, _ := cmd.Flags().GetString("products-dir")
	if productsDir == "" {
		productsDir = os.Getenv("PRODUCTS_DIR")
	}
	if productsDir == "" {
		productsDir = "./Products"
	}

	log.Info().Str("products_dir", productsDir).Msg("Starting master listing export")

	count, err := product.NewWriter(productsDir).ExportMasterListing()
	if err != nil {
		return err
	}

	log.Info().Int("listings", count).Msg("Master listing export completed")
	fmt.Printf("Exported %d listings to %s and %s\n", count, product.MasterCSVName, product.MasterXLSXName)
	return nil
}
