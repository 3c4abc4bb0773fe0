// Package imagegen produces product photographs for a recipe listing with
// DALL-E: one finished-dish shot and one plated single serving.
package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"recipecards/internal/logger"
)

// Product image file names inside a product folder.
const (
	MainImageName   = "image-main.png"
	ServedImageName = "image-served.png"
)

const mainImagePromptFmt = `Professional food photography of %s, beautifully presented on a rustic wooden table with natural lighting, vintage aesthetic, warm colors, appetizing appearance, high quality, no text or watermarks`

const servedImagePromptFmt = `Close-up photography of a single serving of %s, elegantly plated on a vintage dish, soft natural lighting, appetizing presentation, high quality, no text or watermarks`

// Generator creates listing photographs via the OpenAI image API.
type Generator struct {
	client     *openai.Client
	httpClient *http.Client
	log        zerolog.Logger
}

// NewGenerator creates a generator with the API key from OPENAI_API_KEY.
func NewGenerator() (*Generator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("imagegen: OPENAI_API_KEY environment variable is required")
	}
	return &Generator{
		client:     openai.NewClient(apiKey),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        logger.WithComponent("imagegen"),
	}, nil
}

// NewGeneratorWithClient creates a generator with explicit clients (for testing).
func NewGeneratorWithClient(client *openai.Client, httpClient *http.Client) *Generator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Generator{
		client:     client,
		httpClient: httpClient,
		log:        logger.WithComponent("imagegen"),
	}
}

// GenerateImage renders one prompt and writes the PNG to outputPath.
func (g *Generator) GenerateImage(ctx context.Context, prompt, outputPath string) error {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt: prompt,
		N:      1,
		Size:   openai.CreateImageSize1024x1024,
	})
	if err != nil {
		return fmt.Errorf("imagegen: image request failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return fmt.Errorf("imagegen: no image URL in response")
	}

	if err := g.download(ctx, resp.Data[0].URL, outputPath); err != nil {
		return err
	}

	g.log.Info().Str("path", outputPath).Msg("Image generated")
	return nil
}

// GenerateProductImages renders the two listing photographs for a recipe
// into its product folder.
func (g *Generator) GenerateProductImages(ctx context.Context, recipeTitle, productDir string) error {
	mainPath := filepath.Join(productDir, MainImageName)
	if err := g.GenerateImage(ctx, fmt.Sprintf(mainImagePromptFmt, recipeTitle), mainPath); err != nil {
		return fmt.Errorf("imagegen: finished-dish image for %q: %w", recipeTitle, err)
	}

	servedPath := filepath.Join(productDir, ServedImageName)
	if err := g.GenerateImage(ctx, fmt.Sprintf(servedImagePromptFmt, recipeTitle), servedPath); err != nil {
		return fmt.Errorf("imagegen: serving image for %q: %w", recipeTitle, err)
	}

	g.log.Info().Str("recipe", recipeTitle).Str("dir", productDir).Msg("Product images generated")
	return nil
}

// download fetches a generated image URL to a local file.
func (g *Generator) download(ctx context.Context, url, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("imagegen: building download request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("imagegen: downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("imagegen: image download returned status %d", resp.StatusCode)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("imagegen: creating image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("imagegen: writing image file: %w", err)
	}
	return nil
}
