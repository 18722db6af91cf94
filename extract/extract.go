// Package extract talks to a Firecrawl-compatible scrape API, which renders
// a page (JavaScript included) and returns it as markdown. The rest of the
// pipeline only ever sees the markdown payload.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// DefaultBaseURL is the hosted Firecrawl endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev"

// Result is the scrape response envelope, also the on-disk shape of saved
// extractions so they can be re-converted offline.
type Result struct {
	Success bool   `json:"success"`
	Data    Page   `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Page holds the rendered page content.
type Page struct {
	Markdown string `json:"markdown"`
}

// ReadResult loads a saved scrape envelope from disk.
func ReadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction file: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse extraction file: %w", err)
	}

	return &result, nil
}

// Client calls the scrape endpoint. The zero value is not usable; build one
// with NewClient.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a client for the given API base URL. The key is sent as
// a bearer token on every request.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// scrapeRequest mirrors the v1 scrape API payload. WaitFor gives the page's
// scripts time to populate the stream before rendering.
type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	WaitFor int      `json:"waitFor"`
	Timeout int      `json:"timeout"`
}

// Scrape renders pageURL and returns the response envelope. An HTTP-level
// failure is an error; an envelope with Success=false is returned as-is for
// the caller to inspect.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*Result, error) {
	payload, err := json.Marshal(scrapeRequest{
		URL:     pageURL,
		Formats: []string{"markdown"},
		WaitFor: 2000,
		Timeout: 30000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call scrape API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape API returned HTTP %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode scrape response: %w", err)
	}

	return &result, nil
}

// Markdown scrapes pageURL and returns just the markdown payload, turning
// an unsuccessful envelope into an error. This is the entry point the
// conversion pipeline uses.
func (c *Client) Markdown(ctx context.Context, pageURL string) (string, error) {
	result, err := c.Scrape(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "unknown error"
		}
		return "", fmt.Errorf("scrape failed: %s", msg)
	}
	return result.Data.Markdown, nil
}
