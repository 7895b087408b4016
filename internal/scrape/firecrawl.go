package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.firecrawl.dev/v1"
	defaultTimeout = 30 * time.Second
)

// Client communicates with the Firecrawl scraping API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Firecrawl client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Scrape fetches the page at url and returns its content as Markdown.
// Upstream failure modes (rate limiting, auth, missing or private pages)
// are surfaced in the error text, which the API layer classifies by
// substring — keep the wording stable.
func (c *Client) Scrape(ctx context.Context, url string) (string, error) {
	body, err := json.Marshal(scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("firecrawl network error: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("firecrawl rate limit exceeded (HTTP %d)", resp.StatusCode)
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("firecrawl authentication failed: invalid api key (HTTP %d)", resp.StatusCode)
	case http.StatusNotFound:
		return "", fmt.Errorf("firecrawl: profile not found or private (HTTP %d)", resp.StatusCode)
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("firecrawl unavailable: unexpected status %d: %s", resp.StatusCode, string(detail))
	}

	var sr scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decoding firecrawl response: %w", err)
	}
	if !sr.Success {
		return "", fmt.Errorf("firecrawl scrape failed: %s", sr.Error)
	}
	if sr.Data.Markdown == "" {
		return "", fmt.Errorf("firecrawl returned no markdown content")
	}

	return sr.Data.Markdown, nil
}
