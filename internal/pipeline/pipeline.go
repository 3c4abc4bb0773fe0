// Package pipeline runs the recipe-card workflow end to end: OCR the
// photograph, structure the text into a recipe, estimate missing details,
// generate the listing content, analyze nutrition, and write the product
// artifacts. A sqlite ledger makes runs resumable; already-processed images
// are skipped unless reprocessing is forced.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"recipecards/internal/config"
	"recipecards/internal/fdc"
	"recipecards/internal/imagegen"
	"recipecards/internal/logger"
	"recipecards/internal/nutrition"
	"recipecards/internal/ocr"
	"recipecards/internal/product"
	"recipecards/internal/recipe"
	"recipecards/internal/state"
	"recipecards/pkg/models"
)

// Pacing between API-heavy operations.
const (
	interImagePause = 2 * time.Second
	interBatchPause = 30 * time.Second
)

// Options control one processing run.
type Options struct {
	// GenerateImages renders DALL-E product photos for each recipe.
	GenerateImages bool

	// ForceReprocess ignores the ledger and reprocesses finished images.
	ForceReprocess bool
}

// BatchOptions control a multi-image run.
type BatchOptions struct {
	Options

	// StartIndex is the position in the sorted image list to start from.
	StartIndex int

	// Limit caps how many images are considered; 0 means no cap.
	Limit int

	// BatchSize is the number of images between long pauses.
	BatchSize int
}

// Pipeline owns the collaborating services for recipe processing.
type Pipeline struct {
	cfg       *config.Config
	extractor ocr.TextExtractor
	recipes   recipe.Service
	analyzer  *nutrition.Analyzer
	writer    *product.Writer
	images    *imagegen.Generator
	ledger    *state.Ledger
	log       zerolog.Logger
}

// New wires a pipeline from configuration and environment credentials.
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	extractor, err := ocr.New(ctx, cfg.OCRMethod)
	if err != nil {
		return nil, fmt.Errorf("pipeline: creating OCR backend: %w", err)
	}

	recipes, err := recipe.NewGPTService()
	if err != nil {
		return nil, fmt.Errorf("pipeline: creating recipe service: %w", err)
	}

	fdcClient, err := fdc.NewClient()
	if err != nil {
		return nil, fmt.Errorf("pipeline: creating food data client: %w", err)
	}

	images, err := imagegen.NewGenerator()
	if err != nil {
		return nil, fmt.Errorf("pipeline: creating image generator: %w", err)
	}

	ledger, err := state.Open(cfg.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: opening state ledger: %w", err)
	}

	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		recipes:   recipes,
		analyzer:  nutrition.NewAnalyzer(fdcClient),
		writer:    product.NewWriter(cfg.ProductsDir),
		images:    images,
		ledger:    ledger,
		log:       logger.WithComponent("pipeline"),
	}, nil
}

// NewWithDeps wires a pipeline from explicit collaborators (for testing).
func NewWithDeps(cfg *config.Config, extractor ocr.TextExtractor, recipes recipe.Service,
	analyzer *nutrition.Analyzer, writer *product.Writer, images *imagegen.Generator,
	ledger *state.Ledger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		recipes:   recipes,
		analyzer:  analyzer,
		writer:    writer,
		images:    images,
		ledger:    ledger,
		log:       logger.WithComponent("pipeline"),
	}
}

// Close releases the ledger.
func (p *Pipeline) Close() error {
	if p.ledger != nil {
		return p.ledger.Close()
	}
	return nil
}

// ProcessImage runs the full workflow for one photograph. Failures are
// recorded in the ledger before returning.
func (p *Pipeline) ProcessImage(ctx context.Context, imagePath string, opts Options) error {
	imageName := filepath.Base(imagePath)
	log := p.log.With().Str("image", imageName).Logger()

	if !opts.ForceReprocess {
		done, err := p.ledger.IsProcessed(imageName)
		if err != nil {
			return err
		}
		if done {
			log.Info().Msg("Skipping already processed image")
			return nil
		}
	}

	log.Info().Msg("Processing recipe image")

	ocrResult, err := p.extractText(ctx, imagePath)
	if err != nil || strings.TrimSpace(ocrResult.Text) == "" {
		p.markFailed(imageName, "No OCR text")
		if err != nil {
			return fmt.Errorf("pipeline: OCR failed for %s: %w", imageName, err)
		}
		return fmt.Errorf("pipeline: no OCR text in %s", imageName)
	}

	log.Debug().Int("ocr_chars", len(ocrResult.Text)).Msg("OCR text extracted")

	rec, err := p.recipes.StructureRecipe(ctx, ocrResult.Text)
	if err != nil {
		p.markFailed(imageName, "Structuring failed")
		return fmt.Errorf("pipeline: structuring failed for %s: %w", imageName, err)
	}
	if rec.Title == "" || rec.Title == "Untitled Recipe" {
		p.markFailed(imageName, "No recipe title")
		return fmt.Errorf("pipeline: no recipe title in %s", imageName)
	}

	log.Info().
		Str("title", rec.Title).
		Int("ingredients", len(rec.Ingredients)).
		Int("instructions", len(rec.Instructions)).
		Msg("Recipe structured")

	productDir, slug, uniqueID, err := p.writer.CreateFolder(rec, imagePath)
	if err != nil {
		p.markFailed(imageName, "Folder creation failed")
		return err
	}

	// Fill only the detail fields the card itself did not answer.
	estimated := p.recipes.EstimateDetails(ctx, rec)
	recipe.MergeDetails(rec, estimated)

	content, err := p.generateContent(ctx, rec)
	if err != nil {
		p.markFailed(imageName, "Content generation failed")
		return fmt.Errorf("pipeline: content generation failed for %s: %w", imageName, err)
	}

	if err := p.writer.SaveContentFiles(productDir, rec, content); err != nil {
		p.markFailed(imageName, "Saving content failed")
		return err
	}

	pdfPath := filepath.Join(productDir, slug+"_Recipe-Card.pdf")
	if err := product.WriteRecipeCard(rec, content.Nutrition, pdfPath); err != nil {
		p.markFailed(imageName, "PDF rendering failed")
		return err
	}

	if opts.GenerateImages {
		if err := p.images.GenerateProductImages(ctx, rec.Title, productDir); err != nil {
			log.Warn().Err(err).Msg("Product image generation failed")
		} else if err := p.ledger.MarkImagesGenerated(imageName); err != nil {
			log.Warn().Err(err).Msg("Could not flag generated images")
		}
	}

	if err := p.ledger.MarkProcessed(imageName, rec.Title, p.cfg.OCRMethod, true); err != nil {
		return err
	}

	log.Info().Str("title", rec.Title).Str("product", uniqueID).Msg("Recipe processed")
	return nil
}

func (p *Pipeline) extractText(ctx context.Context, imagePath string) (*ocr.ImageResult, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: opening image: %w", err)
	}
	defer f.Close()
	return p.extractor.ExtractImage(ctx, f)
}

// generateContent produces everything around the recipe: description,
// allergens, diets, nutrition label, social copy and tags.
func (p *Pipeline) generateContent(ctx context.Context, rec *models.Recipe) (product.Content, error) {
	description, err := p.recipes.GenerateDescription(ctx, rec)
	if err != nil {
		return product.Content{}, err
	}

	analysis := p.analyzer.AnalyzeRecipe(ctx, rec.Ingredients, rec.ServingCount())

	social, err := p.recipes.GenerateSocialContent(ctx, rec, description)
	if err != nil {
		return product.Content{}, err
	}

	return product.Content{
		Description: description,
		Social:      social,
		Tags:        p.recipes.GenerateTags(ctx, rec, description),
		Nutrition:   product.LabelFromAnalysis(analysis),
		Allergens:   p.recipes.AnalyzeAllergens(ctx, rec.Ingredients),
		Diets:       p.recipes.AnalyzeDiets(ctx, rec.Ingredients, rec.Instructions),
	}, nil
}

func (p *Pipeline) markFailed(imageName, reason string) {
	if err := p.ledger.MarkProcessed(imageName, "Failed - "+reason, p.cfg.OCRMethod, false); err != nil {
		p.log.Warn().Err(err).Str("image", imageName).Msg("Could not record failure")
	}
}

// ProcessAll runs the workflow over the sorted image directory in batches
// with pauses between images and batches. It returns processed and failed
// counts; per-image failures do not stop the run.
func (p *Pipeline) ProcessAll(ctx context.Context, opts BatchOptions) (processed, failed int, err error) {
	images, err := p.listImages()
	if err != nil {
		return 0, 0, err
	}

	total := len(images)
	p.log.Info().Int("images", total).Msg("Found images to process")

	if opts.Limit > 0 && opts.StartIndex+opts.Limit < total {
		total = opts.StartIndex + opts.Limit
		p.log.Info().Int("limit", opts.Limit).Int("start_index", opts.StartIndex).Msg("Limiting run")
	}

	batchSize := opts.BatchSize
	if batchSize < 1 {
		batchSize = p.cfg.BatchSize
	}

	for i := opts.StartIndex; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}
		p.log.Info().
			Int("batch", i/batchSize+1).
			Int("from", i+1).
			Int("to", end).
			Msg("Processing batch")

		for _, name := range images[i:end] {
			if err := p.ProcessImage(ctx, filepath.Join(p.cfg.ImageDir, name), opts.Options); err != nil {
				p.log.Error().Err(err).Str("image", name).Msg("Image processing failed")
				failed++
			} else {
				processed++
			}
			if err := pause(ctx, interImagePause); err != nil {
				return processed, failed, err
			}
		}

		p.log.Info().Int("processed", processed).Int("failed", failed).Msg("Batch complete")

		if end < total {
			p.log.Info().Dur("pause", interBatchPause).Msg("Waiting before next batch")
			if err := pause(ctx, interBatchPause); err != nil {
				return processed, failed, err
			}
		}
	}

	p.log.Info().Int("processed", processed).Int("failed", failed).Msg("Processing complete")
	return processed, failed, nil
}

// GenerateMissingImages renders product photos for recipes that were
// processed without them.
func (p *Pipeline) GenerateMissingImages(ctx context.Context, batchSize, limit int) (generated, failed int, err error) {
	images, err := p.listImages()
	if err != nil {
		return 0, 0, err
	}

	var pending []string
	for _, name := range images {
		done, err := p.ledger.IsProcessed(name)
		if err != nil {
			return 0, 0, err
		}
		has, err := p.ledger.HasImagesGenerated(name)
		if err != nil {
			return 0, 0, err
		}
		if done && !has {
			pending = append(pending, name)
		}
	}

	p.log.Info().Int("pending", len(pending)).Msg("Found processed recipes without images")
	if len(pending) == 0 {
		return 0, 0, nil
	}
	if limit > 0 && limit < len(pending) {
		pending = pending[:limit]
	}
	if batchSize < 1 {
		batchSize = p.cfg.BatchSize
	}

	for i, name := range pending {
		if err := p.generateImagesFor(ctx, name); err != nil {
			p.log.Error().Err(err).Str("image", name).Msg("Image generation failed")
			failed++
		} else {
			generated++
		}
		if err := pause(ctx, interImagePause); err != nil {
			return generated, failed, err
		}
		if (i+1)%batchSize == 0 && i+1 < len(pending) {
			p.log.Info().Dur("pause", interBatchPause).Msg("Waiting before next batch")
			if err := pause(ctx, interBatchPause); err != nil {
				return generated, failed, err
			}
		}
	}

	p.log.Info().Int("generated", generated).Int("failed", failed).Msg("Image generation complete")
	return generated, failed, nil
}

// generateImagesFor locates the product folder holding the original image
// copy, recovers the recipe title from Recipe.txt, and renders the photos.
func (p *Pipeline) generateImagesFor(ctx context.Context, imageName string) error {
	productDir, err := p.findProductDir(imageName)
	if err != nil {
		return err
	}

	title, err := titleFromRecipeFile(filepath.Join(productDir, "Recipe.txt"))
	if err != nil {
		return err
	}

	if err := p.images.GenerateProductImages(ctx, title, productDir); err != nil {
		return err
	}
	return p.ledger.MarkImagesGenerated(imageName)
}

// findProductDir scans the products directory for the folder holding
// original-<imageName>.
func (p *Pipeline) findProductDir(imageName string) (string, error) {
	entries, err := os.ReadDir(p.cfg.ProductsDir)
	if err != nil {
		return "", fmt.Errorf("pipeline: reading products directory: %w", err)
	}
	marker := product.OriginalImagePrefix + imageName
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(p.cfg.ProductsDir, e.Name())
		if _, err := os.Stat(filepath.Join(candidate, marker)); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("pipeline: no product folder for %s", imageName)
}

func titleFromRecipeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("pipeline: reading recipe file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "Title:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Title:")), nil
		}
	}
	return "Vintage Recipe", nil
}

// listImages returns the sorted photograph file names in the image directory.
func (p *Pipeline) listImages() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.ImageDir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading image directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// pause sleeps unless the context ends first.
func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ExportMasterListing merges per-product listings into the master files.
func (p *Pipeline) ExportMasterListing() (int, error) {
	return p.writer.ExportMasterListing()
}
