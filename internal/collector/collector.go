// Package collector fetches raw postings for one profession query from the
// job-search API, paginating until exhaustion or the page cap. Upstream
// failures truncate pagination instead of failing the run: an empty or short
// result is a valid, if sparse, collection.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/projeto-datajobs/go-etl/internal/domain"
)

const (
	// DefaultBaseURL is the search endpoint used when none is configured.
	DefaultBaseURL = "https://serpapi.com/search.json"

	// pageSize is the fixed upstream page size; a shorter page means the
	// listing is exhausted.
	pageSize = 10

	// maxOffset caps pagination at three pages per profession.
	maxOffset = 30
)

// Client queries the job-search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a search client. baseURL may be empty to use the default
// endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// searchResponse is one page of the search API. A non-empty Error means the
// upstream rejected the request; Chips carry filter metadata that is fetched
// but not used downstream.
type searchResponse struct {
	Error       string           `json:"error"`
	JobsResults []map[string]any `json:"jobs_results"`
	Chips       []map[string]any `json:"chips"`
}

// Collect fetches "posted today" postings in Brazil for the profession
// query, page by page, and returns everything gathered before the first
// error, short page, or the page cap. It never returns an error: callers
// must treat a short or empty list as a valid result.
func (c *Client) Collect(ctx context.Context, profession, apiKey string) []*domain.RawPosting {
	var postings []*domain.RawPosting

	for start := 0; ; {
		page, chips, err := c.fetchPage(ctx, profession, apiKey, start)
		if err != nil {
			log.Printf("[collector] %s: page at offset %d: %v", profession, start, err)
			break
		}

		for _, item := range page {
			postings = append(postings, &domain.RawPosting{
				Profession: profession,
				RawData:    item,
				FetchedAt:  time.Now(),
			})
		}
		log.Printf("[collector] %s: offset %d: %d postings, %d chips", profession, start, len(page), len(chips))

		if len(page) < pageSize {
			break
		}
		start += pageSize
		if start >= maxOffset {
			break
		}
	}

	log.Printf("[collector] %s: collected %d postings", profession, len(postings))
	return postings
}

// fetchPage requests a single page at the given offset.
func (c *Client) fetchPage(ctx context.Context, profession, apiKey string, start int) ([]map[string]any, []map[string]any, error) {
	q := url.Values{}
	q.Set("engine", "google_jobs")
	q.Set("q", profession)
	q.Set("google_domain", "google.com.br")
	q.Set("gl", "br")
	q.Set("hl", "pt-br")
	q.Set("location", "Brazil")
	q.Set("start", strconv.Itoa(start))
	q.Set("date_posted", "today")
	q.Set("chips", "date_posted:today")
	q.Set("api_key", apiKey)
	q.Set("output", "JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	var page searchResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, nil, fmt.Errorf("parse response: %w", err)
	}
	if page.Error != "" {
		return nil, nil, fmt.Errorf("upstream error: %s", page.Error)
	}

	return page.JobsResults, page.Chips, nil
}
