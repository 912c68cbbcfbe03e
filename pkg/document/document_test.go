package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>猫の話</title></head>
<body>
<nav><a href="/">Home</a> | <a href="/about">About</a></nav>
<article>
<h1>猫の話</h1>
<p><ruby>吾輩<rp>(</rp><rt>わがはい</rt><rp>)</rp></ruby>は猫である。名前はまだ無い。どこで生れたかとんと見当がつかぬ。
何でも薄暗いじめじめした所でニャーニャー泣いていた事だけは記憶している。</p>
<p>The cat sat on the mat and looked at the <ruby>漢字<rt>かんじ</rt></ruby> on the wall for a long time,
wondering what it might mean and whether anyone would ever explain it.</p>
<p>Afterwards the cat went to sleep, because there was nothing else to do on such a quiet afternoon
in the old house at the end of the street.</p>
</article>
</body></html>`

func TestSanitizeRuby(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "<ruby>漢字<rt>かんじ</rt></ruby>", "<ruby>漢字</ruby>"},
		{"with rp", "<ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>", "<ruby>漢字</ruby>"},
		{"multiple", "<ruby>私<rt>わたし</rt></ruby>は<ruby>猫<rt>ねこ</rt></ruby>である", "<ruby>私</ruby>は<ruby>猫</ruby>である"},
		{"attributes", "<ruby class='test'>漢字<RT class='reading'>かんじ</RT></ruby>", "<ruby class='test'>漢字</ruby>"},
		{"no ruby", "<p>plain</p>", "<p>plain</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeRuby([]byte(tt.input))
			if string(result) != tt.expected {
				t.Errorf("SanitizeRuby(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	article, err := Extract([]byte(articleHTML), "http://localhost/neko")
	require.NoError(t, err)

	assert.Contains(t, article.Text, "は猫である")
	assert.Contains(t, article.Text, "The cat sat on the mat")
	assert.NotContains(t, article.Text, "漢字かんじ")
	assert.NotContains(t, article.Text, "わがはい")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	article, err := Fetch(context.Background(), &http.Client{Timeout: 5 * time.Second}, srv.URL)
	require.NoError(t, err)
	assert.Contains(t, article.Text, "名前はまだ無い")
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestFetchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Chunked, so the limit is hit while reading rather than from Content-Length.
		w.Write([]byte(strings.Repeat("a", 4096)))
		w.(http.Flusher).Flush()
		w.Write([]byte(strings.Repeat("a", MaxBodySize)))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	assert.ErrorIs(t, err, ErrTooLarge)
}
