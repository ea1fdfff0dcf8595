package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jarvis/clients"
)

const (
	googleSearchURL = "https://www.googleapis.com/customsearch/v1"
	duckDuckGoURL   = "https://api.duckduckgo.com/"

	maxResults = 5
)

// SearchClient implements the clients.SearchClient interface. It uses the
// Google Custom Search API when credentials are configured and falls back to
// the keyless DuckDuckGo Instant Answer API otherwise.
type SearchClient struct {
	httpClient     *http.Client
	googleAPIKey   string
	googleEngineID string
	googleBaseURL  string
	duckDuckGoBase string
}

func NewSearchClient(googleAPIKey, googleEngineID string) *SearchClient {
	return &SearchClient{
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		googleAPIKey:   googleAPIKey,
		googleEngineID: googleEngineID,
		googleBaseURL:  googleSearchURL,
		duckDuckGoBase: duckDuckGoURL,
	}
}

// QuickAnswer performs a search and condenses the first hit into an answer,
// keeping the full result list attached.
func (c *SearchClient) QuickAnswer(ctx context.Context, query string) (*clients.QuickAnswer, error) {
	results, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &clients.QuickAnswer{
			Answer:     "No results found",
			AllResults: []clients.SearchResult{},
		}, nil
	}

	return &clients.QuickAnswer{
		Answer:     results[0].Snippet,
		Source:     results[0].Link,
		AllResults: results,
	}, nil
}

func (c *SearchClient) search(ctx context.Context, query string) ([]clients.SearchResult, error) {
	if c.googleAPIKey != "" && c.googleEngineID != "" {
		return c.googleSearch(ctx, query)
	}
	return c.duckDuckGoSearch(ctx, query)
}

type googleSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (c *SearchClient) googleSearch(ctx context.Context, query string) ([]clients.SearchResult, error) {
	params := url.Values{}
	params.Set("key", c.googleAPIKey)
	params.Set("cx", c.googleEngineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", maxResults))

	var parsed googleSearchResponse
	if err := c.getJSON(ctx, c.googleBaseURL+"?"+params.Encode(), &parsed); err != nil {
		return nil, fmt.Errorf("google search failed: %w", err)
	}

	results := make([]clients.SearchResult, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, clients.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	log.Printf("📋 Google search for %q returned %d results", query, len(results))
	return results, nil
}

type duckDuckGoResponse struct {
	Heading       string `json:"Heading"`
	Abstract      string `json:"Abstract"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (c *SearchClient) duckDuckGoSearch(ctx context.Context, query string) ([]clients.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	var parsed duckDuckGoResponse
	if err := c.getJSON(ctx, c.duckDuckGoBase+"?"+params.Encode(), &parsed); err != nil {
		return nil, fmt.Errorf("duckduckgo search failed: %w", err)
	}

	var results []clients.SearchResult
	if parsed.Abstract != "" {
		results = append(results, clients.SearchResult{
			Title:   parsed.Heading,
			Snippet: parsed.Abstract,
			Link:    parsed.AbstractURL,
		})
	}

	for _, topic := range parsed.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		title := topic.Text
		if idx := strings.Index(title, " - "); idx > 0 {
			title = title[:idx]
		}
		results = append(results, clients.SearchResult{
			Title:   title,
			Snippet: topic.Text,
			Link:    topic.FirstURL,
		})
	}

	log.Printf("📋 DuckDuckGo search for %q returned %d results", query, len(results))
	return results, nil
}

func (c *SearchClient) getJSON(ctx context.Context, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
