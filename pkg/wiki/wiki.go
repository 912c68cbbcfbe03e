// Package wiki appends translation suggestions to a MediaWiki page.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// ErrBadLangPair is returned for a suggestion whose pair is not "src|dst".
var ErrBadLangPair = errors.New("language pair must be src|dst")

// Suggestion is a user-proposed correction of a translated word.
type Suggestion struct {
	LangPair string
	Word     string
	NewWord  string
	Context  string
}

// Client talks to the MediaWiki action API. The cookie jar keeps the login
// session the edit token belongs to.
type Client struct {
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the api.php endpoint at apiURL.
func NewClient(apiURL string, timeout time.Duration, logger *slog.Logger) *Client {
	// cookiejar.New only fails on a bad PublicSuffixList, and none is given.
	jar, _ := cookiejar.New(nil)
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		log:        logger.With("adapter", "wiki"),
	}
}

type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Missing   *string `json:"missing"`
			Revisions []struct {
				Content string `json:"*"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// EditResult is the decoded answer to an edit.
type EditResult struct {
	Edit *struct {
		Result string `json:"result"`
	} `json:"edit"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// GetPage returns the wikitext of title, or "" if the page does not exist.
func (c *Client) GetPage(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action": {"query"},
		"format": {"json"},
		"titles": {title},
		"prop":   {"revisions"},
		"rvprop": {"content"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("wiki: create request: %w", err)
	}

	var resp queryResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("wiki: get %s: %w", title, err)
	}
	for _, page := range resp.Query.Pages {
		if page.Missing != nil || len(page.Revisions) == 0 {
			return "", nil
		}
		return page.Revisions[0].Content, nil
	}
	return "", nil
}

// EditPage replaces the content of title.
func (c *Client) EditPage(ctx context.Context, title, content, editToken string) (*EditResult, error) {
	form := url.Values{
		"action":       {"edit"},
		"format":       {"json"},
		"title":        {title},
		"text":         {content},
		"bot":          {"True"},
		"contentmodel": {"wikitext"},
		"token":        {editToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("wiki: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result EditResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("wiki: edit %s: %w", title, err)
	}
	return &result, nil
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// AddText appends s to content as a {{suggest}} template line.
func AddText(content string, s Suggestion) (string, error) {
	src, dst, ok := strings.Cut(s.LangPair, "|")
	if !ok || src == "" || dst == "" {
		return "", fmt.Errorf("%w: %q", ErrBadLangPair, s.LangPair)
	}
	return content + fmt.Sprintf("\n* {{suggest|%s|%s|%s|%s|%s}}", src, dst, s.Word, s.NewWord, s.Context), nil
}

// AddSuggestion appends s to page and reports whether the wiki accepted the
// edit. Failures are logged, never returned.
func (c *Client) AddSuggestion(ctx context.Context, page, editToken string, s Suggestion) bool {
	content, err := c.GetPage(ctx, page)
	if err != nil {
		c.log.ErrorContext(ctx, "fetch of page failed", slog.String("page", page), slog.String("error", err.Error()))
		return false
	}
	content, err = AddText(content, s)
	if err != nil {
		c.log.ErrorContext(ctx, "invalid suggestion", slog.String("page", page), slog.String("error", err.Error()))
		return false
	}
	result, err := c.EditPage(ctx, page, content, editToken)
	if err != nil {
		c.log.ErrorContext(ctx, "update of page failed", slog.String("page", page), slog.String("error", err.Error()))
		return false
	}
	if result.Edit == nil {
		if result.Error != nil {
			c.log.ErrorContext(ctx, "update of page failed", slog.String("page", page),
				slog.String("code", result.Error.Code), slog.String("info", result.Error.Info))
		}
		return false
	}
	if result.Edit.Result != "Success" {
		c.log.ErrorContext(ctx, "update of page failed", slog.String("page", page), slog.String("result", result.Edit.Result))
		return false
	}
	c.log.InfoContext(ctx, "update of page", slog.String("page", page))
	return true
}
