package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"recipecards/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "recipecards",
	Short: "Recipe Cards CLI - turn recipe photographs into sellable digital listings",
	Long: `Recipe Cards CLI processes photographed recipe cards into complete
digital products: it extracts the text with OCR, structures it into a recipe,
analyzes nutrition against the USDA FoodData Central database, generates
listing content and social media copy, and writes the product folder with a
printable recipe-card PDF.

Single images are processed with "process", whole directories with "batch".
Nutrition analysis is also available standalone via "nutrition".`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Recipe Cards CLI executed")

		fmt.Println("Welcome to Recipe Cards CLI!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// runContext returns a context that ends on SIGINT/SIGTERM and, when
// timeoutSecs > 0, after the timeout.
func runContext(timeoutSecs int) (context.Context, context.CancelFunc) {
	ctx := context.Background()
	var cancel context.CancelFunc
	if timeoutSecs > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log := logger.WithComponent("cmd")
			log.Warn().
				Str("signal", sig.String()).
				Msg("Received signal, canceling")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
