package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// GoogleVisionExtractor implements TextExtractor using Google Cloud Vision API.
type GoogleVisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionExtractor creates an extractor with credentials from environment.
// It expects either GOOGLE_APPLICATION_CREDENTIALS path or GOOGLE_CREDENTIALS JSON in env.
func NewGoogleVisionExtractor(ctx context.Context) (*GoogleVisionExtractor, error) {
	const op = "NewGoogleVisionExtractor"

	var client *vision.ImageAnnotatorClient
	var err error

	// Check for inline credentials first
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleVisionExtractor{client: client}, nil
}

// NewGoogleVisionExtractorWithClient creates an extractor with an explicit client (for testing).
func NewGoogleVisionExtractorWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionExtractor {
	return &GoogleVisionExtractor{client: client}
}

// ExtractImage extracts text from one recipe-card photograph.
func (g *GoogleVisionExtractor) ExtractImage(ctx context.Context, image io.Reader) (*ImageResult, error) {
	const op = "ExtractImage"
	startTime := time.Now()

	data, _, err := readImage(op, image)
	if err != nil {
		return nil, err
	}

	// DOCUMENT_TEXT_DETECTION preserves reading order better than plain
	// TEXT_DETECTION on dense handwritten cards.
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}

	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrOCRFailed, "no response from Vision API")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", annotation.Error.Message))
	}

	if annotation.FullTextAnnotation == nil || strings.TrimSpace(annotation.FullTextAnnotation.Text) == "" {
		return nil, WrapOCRError(op, ErrEmptyDocument, "no text detected in image")
	}

	// Average block confidence across the page.
	var confidenceSum float32
	var confidenceCount int
	for _, page := range annotation.FullTextAnnotation.Pages {
		for _, block := range page.Blocks {
			if block.Confidence > 0 {
				confidenceSum += block.Confidence
				confidenceCount++
			}
		}
	}
	var avgConfidence float32
	if confidenceCount > 0 {
		avgConfidence = confidenceSum / float32(confidenceCount)
	}

	processedAt := time.Now()
	return &ImageResult{
		Text:               annotation.FullTextAnnotation.Text,
		Confidence:         avgConfidence,
		Method:             MethodGoogleVision,
		ProcessedAt:        processedAt,
		ProcessingDuration: processedAt.Sub(startTime),
	}, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
