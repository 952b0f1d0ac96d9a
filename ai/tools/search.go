package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mindwell-ai/mindwell/ai/agent"
)

// SearchResult is one hit returned by a search provider.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchProvider performs web searches on behalf of the search specialist.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// HTTPSearchProvider queries a Tavily-compatible search API.
type HTTPSearchProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPSearchProvider creates a provider for the given endpoint and key.
func NewHTTPSearchProvider(endpoint, apiKey string) *HTTPSearchProvider {
	return &HTTPSearchProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPSearchProvider) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	body, err := json.Marshal(map[string]any{
		"api_key":     p.apiKey,
		"query":       query,
		"max_results": maxResults,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode search request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build search request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("search API returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "decode search response")
	}
	return decoded.Results, nil
}

// NewWebSearch returns the web_search tool backed by the given provider.
func NewWebSearch(provider SearchProvider) agent.Tool {
	return agent.NewNativeTool(
		"web_search",
		"Search the web for factual, evidence-based information. Returns titles, snippets and URLs.",
		agent.ObjectSchema(map[string]any{
			"query": agent.StringProperty("The search query. Be specific; include terms like \"research\" or \"evidence\" for scientific topics."),
		}, "query"),
		func(ctx context.Context, input string) (string, error) {
			var args struct {
				Query string `json:"query"`
			}
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			if strings.TrimSpace(args.Query) == "" {
				return "", errors.New("empty search query")
			}
			results, err := provider.Search(ctx, args.Query, 5)
			if err != nil {
				return "", err
			}
			if len(results) == 0 {
				return "No results found.", nil
			}
			var b strings.Builder
			for i, r := range results {
				fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.Content, r.URL)
			}
			return strings.TrimSpace(b.String()), nil
		},
	)
}
