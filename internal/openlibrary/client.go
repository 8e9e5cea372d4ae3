// Package openlibrary implements the Open Library catalog gateway.
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when the catalog has no record for the
// requested identifier.
var ErrNotFound = errors.New("not found in Open Library")

// WorkMetadata is the normalized result of a work lookup.
type WorkMetadata struct {
	Title    string   `json:"title,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	CoverURL string   `json:"cover_url,omitempty"`
	Year     int      `json:"year,omitempty"`
}

// EditionDetail is the detailed result of an edition lookup.
type EditionDetail struct {
	WorkOLID    string   `json:"work_olid,omitempty"`
	Title       string   `json:"title,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Description string   `json:"description,omitempty"`
	Languages   []string `json:"language,omitempty"`
	Year        int      `json:"year,omitempty"`
	ISBN        []string `json:"isbn,omitempty"`
	Pages       int      `json:"pages,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Subjects    []string `json:"subject,omitempty"`
	Publishers  []string `json:"publisher,omitempty"`
}

// SearchDoc is a single normalized search result.
type SearchDoc struct {
	WorkOLID string   `json:"work_olid"`
	Title    string   `json:"title,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	Year     int      `json:"year,omitempty"`
	CoverURL string   `json:"cover_url,omitempty"`
}

// SearchResult is a page of search results.
type SearchResult struct {
	NumFound int         `json:"num_found"`
	Docs     []SearchDoc `json:"docs"`
}

// Client fetches book data from the Open Library API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	coversURL   string
	userAgent   string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a new Open Library API client with rate limiting.
func NewClient(baseURL string, timeout, rateInterval time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		coversURL:   "https://covers.openlibrary.org",
		userAgent:   "LibraryHub/1.0 (personal book tracker)",
		rateLimiter: newRateLimiter(rateInterval),
	}
}

// GetWork looks up a work by its OLID and returns normalized metadata.
// Referenced author keys are resolved to names with follow-up requests.
func (c *Client) GetWork(ctx context.Context, workOLID string) (*WorkMetadata, error) {
	var work openLibraryWork
	if err := c.getJSON(ctx, fmt.Sprintf("/works/%s.json", url.PathEscape(workOLID)), &work); err != nil {
		return nil, err
	}

	metadata := &WorkMetadata{
		Title: work.Title,
		Year:  extractYear(work.FirstPublishDate),
	}

	if len(work.Covers) > 0 && work.Covers[0] > 0 {
		metadata.CoverURL = fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversURL, work.Covers[0])
	}

	// Resolve author references, capped to keep lookup latency bounded
	refs := work.Authors
	if len(refs) > 3 {
		refs = refs[:3]
	}
	for _, ref := range refs {
		name, err := c.fetchAuthorName(ctx, ref.Author.Key)
		if err != nil {
			continue
		}
		metadata.Authors = append(metadata.Authors, name)
	}

	return metadata, nil
}

// GetEdition looks up an edition by its OLID and returns detailed data.
func (c *Client) GetEdition(ctx context.Context, editionOLID string) (*EditionDetail, error) {
	var edition openLibraryEdition
	if err := c.getJSON(ctx, fmt.Sprintf("/books/%s.json", url.PathEscape(editionOLID)), &edition); err != nil {
		return nil, err
	}

	detail := &EditionDetail{
		Title:      edition.Title,
		Year:       extractYear(edition.PublishDate),
		Pages:      edition.NumberOfPages,
		Subjects:   edition.Subjects,
		Publishers: edition.Publishers,
	}

	if len(edition.Works) > 0 {
		detail.WorkOLID = lastPathSegment(edition.Works[0].Key)
	}

	detail.ISBN = append(detail.ISBN, edition.ISBN13...)
	detail.ISBN = append(detail.ISBN, edition.ISBN10...)

	for _, lang := range edition.Languages {
		detail.Languages = append(detail.Languages, lastPathSegment(lang.Key))
	}

	switch v := edition.Description.(type) {
	case string:
		detail.Description = v
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			detail.Description = val
		}
	}

	if len(edition.Covers) > 0 && edition.Covers[0] > 0 {
		detail.CoverURL = fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversURL, edition.Covers[0])
	}

	refs := edition.Authors
	if len(refs) > 3 {
		refs = refs[:3]
	}
	for _, ref := range refs {
		name, err := c.fetchAuthorName(ctx, ref.Key)
		if err != nil {
			continue
		}
		detail.Authors = append(detail.Authors, name)
	}

	return detail, nil
}

// Search runs a search query against the catalog and normalizes the page
// of results.
func (c *Client) Search(ctx context.Context, query string, offset, limit int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("offset", fmt.Sprintf("%d", offset))
	params.Set("limit", fmt.Sprintf("%d", limit))

	var raw openLibrarySearchResult
	if err := c.getJSON(ctx, "/search.json?"+params.Encode(), &raw); err != nil {
		return nil, err
	}

	result := &SearchResult{
		NumFound: raw.NumFound,
		Docs:     make([]SearchDoc, 0, len(raw.Docs)),
	}
	for _, doc := range raw.Docs {
		item := SearchDoc{
			WorkOLID: lastPathSegment(doc.Key),
			Title:    doc.Title,
			Authors:  doc.AuthorName,
			Year:     doc.FirstPublishYear,
		}
		if doc.CoverI != 0 {
			item.CoverURL = fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversURL, doc.CoverI)
		}
		result.Docs = append(result.Docs, item)
	}

	return result, nil
}

func (c *Client) fetchAuthorName(ctx context.Context, authorKey string) (string, error) {
	if authorKey == "" {
		return "", fmt.Errorf("empty author key")
	}

	var authorData struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s.json", authorKey), &authorData); err != nil {
		return "", err
	}
	return authorData.Name, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	c.rateLimiter.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// lastPathSegment extracts the OLID from keys like "/works/OL45883W".
func lastPathSegment(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "/")
	return parts[len(parts)-1]
}

// extractYear tries to extract a 4-digit year from a date string.
func extractYear(dateStr string) int {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) < 4 {
		return 0
	}

	formats := []string{
		"2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2006-01-02",
		"January 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.Year()
		}
	}

	// Last resort: find 4 consecutive digits
	for i := 0; i <= len(dateStr)-4; i++ {
		if dateStr[i] >= '0' && dateStr[i] <= '9' {
			yearStr := dateStr[i : i+4]
			var year int
			if _, err := fmt.Sscanf(yearStr, "%d", &year); err == nil && year > 1000 && year < 3000 {
				return year
			}
		}
	}

	return 0
}

// Open Library API response types (internal)

type openLibraryWork struct {
	Key              string          `json:"key"`
	Title            string          `json:"title"`
	Authors          []workAuthorRef `json:"authors"`
	Covers           []int           `json:"covers"`
	FirstPublishDate string          `json:"first_publish_date"`
}

type workAuthorRef struct {
	Author authorRef `json:"author"`
}

type authorRef struct {
	Key string `json:"key"`
}

type openLibraryEdition struct {
	Key           string      `json:"key"`
	Title         string      `json:"title"`
	Authors       []authorRef `json:"authors"`
	Works         []authorRef `json:"works"`
	Publishers    []string    `json:"publishers"`
	PublishDate   string      `json:"publish_date"`
	ISBN10        []string    `json:"isbn_10"`
	ISBN13        []string    `json:"isbn_13"`
	NumberOfPages int         `json:"number_of_pages"`
	Description   any         `json:"description"` // Can be string or {type, value}
	Subjects      []string    `json:"subjects"`
	Covers        []int       `json:"covers"`
	Languages     []authorRef `json:"languages"`
}

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverI           int      `json:"cover_i"`
}
