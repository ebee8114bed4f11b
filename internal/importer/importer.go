// Package importer turns a published web article into the starting point of
// a new draft.
package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxWords caps the imported body length.
	DefaultMaxWords = 5000
)

// ErrInvalidURL is returned when the article URL is not an absolute http(s)
// URL.
var ErrInvalidURL = errors.New("invalid article URL")

// Article is the readable part of a fetched web page.
type Article struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	SiteName string `json:"siteName,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Content  string `json:"content"`
}

// Importer fetches web pages and extracts their main text.
type Importer struct {
	client   *http.Client
	maxWords int
}

// New creates an Importer. A zero timeout or maxWords selects the defaults.
func New(timeout time.Duration, maxWords int) *Importer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Importer{
		client:   &http.Client{Timeout: timeout},
		maxWords: maxWords,
	}
}

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Draftpad/1.0; +https://github.com/hoanghai1803/draftpad)")
}

// FromURL fetches the page at rawURL and returns its readable content.
func (im *Importer) FromURL(ctx context.Context, rawURL string) (*Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	browserHeaders(req)

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	parsed, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	return &Article{
		URL:      pageURL.String(),
		Title:    strings.TrimSpace(parsed.Title),
		SiteName: parsed.SiteName,
		Excerpt:  strings.TrimSpace(parsed.Excerpt),
		Content:  truncateWords(strings.TrimSpace(parsed.TextContent), im.maxWords),
	}, nil
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
