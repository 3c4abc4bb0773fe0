package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const visionPrompt = `Extract ALL text from this recipe image. Include the recipe title, ` +
	`ingredients with quantities, instructions, and any other text visible. ` +
	`Preserve the structure and layout as much as possible. Return only the extracted text.`

// GPTVisionExtractor implements TextExtractor using the OpenAI vision API.
// It is the default backend: recipe cards are often handwritten, where a
// vision model transcribes more reliably than classical OCR.
type GPTVisionExtractor struct {
	client *openai.Client
	model  string
}

// NewGPTVisionExtractor creates an extractor with the API key from
// OPENAI_API_KEY. OPENAI_MODEL overrides the default GPT-4o model.
func NewGPTVisionExtractor() (*GPTVisionExtractor, error) {
	const op = "NewGPTVisionExtractor"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, WrapOCRError(op, ErrMissingCredentials, "OPENAI_API_KEY environment variable is required")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4o
	}

	return &GPTVisionExtractor{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// NewGPTVisionExtractorWithClient creates an extractor with an explicit client (for testing).
func NewGPTVisionExtractorWithClient(client *openai.Client, model string) *GPTVisionExtractor {
	if model == "" {
		model = openai.GPT4o
	}
	return &GPTVisionExtractor{client: client, model: model}
}

// ExtractImage transcribes one recipe-card photograph.
func (g *GPTVisionExtractor) ExtractImage(ctx context.Context, image io.Reader) (*ImageResult, error) {
	const op = "ExtractImage"
	startTime := time.Now()

	data, mime, err := readImage(op, image)
	if err != nil {
		return nil, err
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: 4096,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: visionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("OpenAI API call failed: %v", err))
	}

	if len(resp.Choices) == 0 {
		return nil, WrapOCRError(op, ErrOCRFailed, "no choices in OpenAI response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, WrapOCRError(op, ErrEmptyDocument, "model returned no text")
	}

	processedAt := time.Now()
	return &ImageResult{
		Text:               text,
		Method:             MethodGPTVision,
		ProcessedAt:        processedAt,
		ProcessingDuration: processedAt.Sub(startTime),
	}, nil
}
