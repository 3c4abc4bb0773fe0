package fdc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"recipecards/internal/logger"
)

const (
	// DefaultBaseURL is the FoodData Central v1 API endpoint.
	DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

	// searchPageSize limits how many ranked candidates one search returns.
	searchPageSize = 10
)

// Client implements FoodSource against the FoodData Central HTTP API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client with the API key from the environment.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("USDA_API_KEY")
	if apiKey == "" {
		return nil, WrapFDCError("NewClient", ErrMissingAPIKey, "")
	}
	return NewClientWithKey(apiKey), nil
}

// NewClientWithKey creates a client with an explicit API key.
func NewClientWithKey(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.WithComponent("fdc"),
	}
}

// NewClientWithHTTP creates a client with explicit base URL and HTTP client
// (for testing).
func NewClientWithHTTP(apiKey, baseURL string, httpClient *http.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        logger.WithComponent("fdc"),
	}
}

type searchResponse struct {
	TotalHits int       `json:"totalHits"`
	Foods     []FoodHit `json:"foods"`
}

// SearchFoods returns ranked candidate foods for a free-text name, searching
// the Foundation and SR Legacy datasets.
func (c *Client) SearchFoods(ctx context.Context, query string) ([]FoodHit, error) {
	const op = "SearchFoods"

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(searchPageSize))
	params.Add("dataType", "Foundation")
	params.Add("dataType", "SR Legacy")

	c.log.Debug().Str("query", query).Msg("Searching FoodData Central")

	var result searchResponse
	if err := c.getJSON(ctx, op, c.baseURL+"/foods/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("query", query).
		Int("total_hits", result.TotalHits).
		Int("returned", len(result.Foods)).
		Msg("Food search completed")

	return result.Foods, nil
}

// FoodDetails returns the full nutrient record for one food.
func (c *Client) FoodDetails(ctx context.Context, fdcID int64) (*FoodRecord, error) {
	const op = "FoodDetails"

	params := url.Values{}
	params.Set("api_key", c.apiKey)

	c.log.Debug().Int64("fdc_id", fdcID).Msg("Fetching food details")

	var record FoodRecord
	endpoint := fmt.Sprintf("%s/food/%d?%s", c.baseURL, fdcID, params.Encode())
	if err := c.getJSON(ctx, op, endpoint, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// getJSON performs one GET request and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return WrapFDCError(op, err, "failed to build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return WrapFDCError(op, ErrLookupFailed, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	c.logRateLimit(resp)

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return WrapFDCError(op, ErrFoodNotFound, "")
	case resp.StatusCode == http.StatusTooManyRequests:
		return WrapFDCError(op, ErrRateLimited, "")
	default:
		return WrapFDCError(op, ErrLookupFailed, fmt.Sprintf("status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return WrapFDCError(op, err, "failed to decode response body")
	}
	return nil
}

// logRateLimit surfaces the shared-key quota headers so batch runs can be
// paced against the account limit.
func (c *Client) logRateLimit(resp *http.Response) {
	limit := resp.Header.Get("X-RateLimit-Limit")
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if limit == "" && remaining == "" {
		return
	}
	c.log.Debug().
		Str("rate_limit", limit).
		Str("rate_remaining", remaining).
		Int("status", resp.StatusCode).
		Msg("FoodData Central rate limit info")
}
