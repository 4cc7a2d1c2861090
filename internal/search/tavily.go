package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.tavily.com"

// Result is one ranked web search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Searcher is the web search capability consumed by the search tool.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// TavilyClient queries the Tavily search API. The API key is read from the
// environment; BaseURL is overridable for tests.
type TavilyClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewTavilyClient constructs a Tavily-backed search client using the
// TAVILY_API_KEY environment variable.
func NewTavilyClient() *TavilyClient {
	return &TavilyClient{
		apiKey:  os.Getenv("TAVILY_API_KEY"),
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NewTavilyClientWithBase constructs a client against a custom endpoint.
func NewTavilyClientWithBase(apiKey, baseURL string, httpc *http.Client) *TavilyClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &TavilyClient{apiKey: apiKey, baseURL: baseURL, httpc: httpc}
}

type tavilyRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs one query and returns at most maxResults ranked snippets.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	body, err := json.Marshal(tavilyRequest{Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]Result, 0, maxResults)
	for _, r := range decoded.Results {
		if len(out) >= maxResults {
			break
		}
		out = append(out, Result{Title: r.Title, Snippet: r.Content, URL: r.URL})
	}
	return out, nil
}
