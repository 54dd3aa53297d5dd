package pixabay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pixelfall/galleria/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Galleria/1.0"
)

// Client implements domain.SearchRepository and domain.ImageFetcher
// against the Pixabay REST API.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Pixabay API client
func NewClient(baseURL, key string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		key:     key,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Search performs one paged image search. Results decode into a typed
// schema; any shape mismatch surfaces as an error rather than silently
// propagating zero values.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.SearchResult, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("key", c.key)
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(domain.PageSize))
	params.Set("image_type", "photo")
	params.Set("safesearch", "true")

	body, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("search response parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &domain.SearchResult{
		Total:     resp.Total,
		TotalHits: resp.TotalHits,
		Hits:      MapHits(resp.Hits),
	}, nil
}

// Fetch retrieves raw image bytes from an image URL reported in a hit.
func (c *Client) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	return c.doRequest(ctx, imageURL)
}

// doRequest performs an HTTP GET and returns the response body
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("pixabay request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("pixabay request failed", "error", err)
		return nil, domain.ErrServiceOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("pixabay request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}
