// Package ocr extracts text from photographed recipe cards.
//
// Three interchangeable backends are provided, selected by name:
//
//   - "google-vision": Google Cloud Vision document text detection
//   - "document-ai":   Google Document AI OCR processor
//   - "gpt-vision":    OpenAI GPT-4o vision transcription
//
// Required Environment Variables:
//   - google-vision / document-ai: GOOGLE_APPLICATION_CREDENTIALS path or
//     GOOGLE_CREDENTIALS inline JSON; document-ai additionally needs
//     GOOGLE_CLOUD_PROJECT and DOCUMENT_AI_PROCESSOR_ID
//   - gpt-vision: OPENAI_API_KEY
//
// Limitations:
//   - Maximum image size: 20MB (synchronous processing limit of both Google
//     backends; enforced uniformly)
//   - Supported formats: JPEG and PNG photographs
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// Backend names accepted by New.
const (
	MethodGoogleVision = "google-vision"
	MethodDocumentAI   = "document-ai"
	MethodGPTVision    = "gpt-vision"
)

// MaxImageSizeBytes is the maximum image size for synchronous processing (20MB).
const MaxImageSizeBytes = 20 * 1024 * 1024

// TextExtractor defines the interface for recipe-card OCR services.
type TextExtractor interface {
	// ExtractImage extracts text from one photograph.
	ExtractImage(ctx context.Context, image io.Reader) (*ImageResult, error)
}

// ImageResult contains extracted text with processing metadata.
type ImageResult struct {
	// Text is the extracted text content in reading order.
	Text string `json:"text"`

	// Confidence is the average detection confidence (0.0 to 1.0), when the
	// backend reports one.
	Confidence float32 `json:"confidence,omitempty"`

	// Method is the backend that produced this result.
	Method string `json:"method"`

	// ProcessedAt is when the extraction completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long the extraction took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}

// New creates the named OCR backend.
func New(ctx context.Context, method string) (TextExtractor, error) {
	switch method {
	case MethodGoogleVision:
		return NewGoogleVisionExtractor(ctx)
	case MethodDocumentAI:
		return NewDocumentAIExtractor(ctx)
	case MethodGPTVision:
		return NewGPTVisionExtractor()
	default:
		return nil, WrapOCRError("New", ErrUnknownMethod, fmt.Sprintf("method: %q", method))
	}
}

// readImage buffers and validates one image payload.
func readImage(op string, image io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, "", WrapOCRError(op, err, "failed to read image data")
	}
	if len(data) > MaxImageSizeBytes {
		return nil, "", WrapOCRError(op, ErrImageTooLarge, fmt.Sprintf("image size: %d bytes", len(data)))
	}
	mime := detectImageMIME(data)
	if mime == "" {
		return nil, "", WrapOCRError(op, ErrInvalidImage, "unrecognized image format")
	}
	return data, mime, nil
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
)

// detectImageMIME sniffs the payload type; empty means unsupported.
func detectImageMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return "image/jpeg"
	case bytes.HasPrefix(data, pngMagic):
		return "image/png"
	default:
		return ""
	}
}
