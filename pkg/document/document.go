// Package document fetches web pages and extracts their readable text.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/go-shiori/go-readability"
)

// MaxBodySize caps the HTML read from an untrusted URL.
const MaxBodySize = 10 * 1024 * 1024

// ErrTooLarge is returned when a page exceeds MaxBodySize.
var ErrTooLarge = errors.New("document: response body too large")

// Article is the readable part of a page.
type Article struct {
	Title    string
	Byline   string
	SiteName string
	Text     string
}

var (
	// (?s) lets dot match newlines, (?i) ignores case
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes ruby text (<rt>) and ruby parentheses (<rp>) so that
// annotated words are not counted twice ("漢字かんじ").
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, nil)
	return reRP.ReplaceAll(cleaned, nil)
}

// Fetch downloads rawURL and extracts its article.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Article{}, fmt.Errorf("document: create request: %w", err)
	}
	// Some sites reject clients that do not look like a browser.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("document: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("document: fetch %s: status %d", rawURL, resp.StatusCode)
	}
	if resp.ContentLength > MaxBodySize {
		return Article{}, fmt.Errorf("%w: content-length %d", ErrTooLarge, resp.ContentLength)
	}

	// One extra byte tells a body of exactly MaxBodySize from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return Article{}, fmt.Errorf("document: read body: %w", err)
	}
	if len(body) > MaxBodySize {
		return Article{}, ErrTooLarge
	}
	return Extract(body, rawURL)
}

// Extract runs readability over html. rawURL resolves relative links and may
// be empty.
func Extract(html []byte, rawURL string) (Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return Article{}, fmt.Errorf("document: parse url: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(SanitizeRuby(html)), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("document: extract: %w", err)
	}
	return Article{
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Text:     article.TextContent,
	}, nil
}
