package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/share-with-me/apertium-apy/pkg/config"
	"github.com/share-with-me/apertium-apy/pkg/langcode"
	"github.com/share-with-me/apertium-apy/pkg/langnames"

	_ "github.com/mattn/go-sqlite3"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Engine:   config.EngineConfig{AnalyzerBin: "apertium", LookupBin: "lt-proc"},
		Pairs:    config.PairsConfig{Roots: t.TempDir()},
		Coverage: config.CoverageConfig{MaxParallel: 2},
		PerWord:  config.PerWordConfig{LookupWorkers: 2},
		Wiki:     config.WikiConfig{SuggestPage: "Suggestions", Timeout: 5 * time.Second},
	}
}

// installAnalyzer writes a fake analyzer binary and an eng-morph mode for it.
func installAnalyzer(t *testing.T, cfg *config.Config, output string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	bin := filepath.Join(t.TempDir(), "apertium")
	script := "#!/bin/sh\ncat >/dev/null\nprintf '%s\\n' '" + output + "'\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	cfg.Engine.AnalyzerBin = bin

	modeDir := filepath.Join(cfg.Pairs.Roots, "apertium-eng", "modes")
	require.NoError(t, os.MkdirAll(modeDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modeDir, "eng-morph.mode"), nil, 0o644))
}

func runJSON(t *testing.T, cfg *config.Config, opts options, v any) {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, opts, &out, newTestLogger()))
	require.NoError(t, json.Unmarshal(out.Bytes(), v))
}

func TestRunConvert(t *testing.T) {
	var got map[string]string
	runJSON(t, testConfig(t), options{cmd: "convert", code: "en_US"}, &got)
	assert.Equal(t, map[string]string{"alpha2": "en_US", "alpha3": "eng_US"}, got)
}

func TestRunCoverage(t *testing.T) {
	cfg := testConfig(t)
	installAnalyzer(t, cfg, `^the/the<det>$ ^cat/*cat$^./.<sent>$`)

	var all map[string]float64
	runJSON(t, cfg, options{cmd: "coverage", text: "the cat"}, &all)
	assert.Equal(t, map[string]float64{"eng": 0.5}, all)

	var one map[string]float64
	runJSON(t, cfg, options{cmd: "coverage", text: "the cat", lang: "en"}, &one)
	assert.Equal(t, map[string]float64{"eng": 0.5}, one)

	err := run(context.Background(), cfg, options{cmd: "coverage", text: "x", lang: "fin"}, io.Discard, newTestLogger())
	assert.ErrorIs(t, err, errUnsupported)
}

func TestRunCoverageURL(t *testing.T) {
	cfg := testConfig(t)
	installAnalyzer(t, cfg, `^the/the<det>$^./.<sent>$`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, `<html><head><title>the</title></head><body><article>
<p>the the the the the the the the the the the the the the the the the the the the the the the the,
the the the the the the the the the the the the the the the the the the the the the the the the.</p>
</article></body></html>`)
	}))
	defer srv.Close()

	var got map[string]float64
	runJSON(t, cfg, options{cmd: "coverage", url: srv.URL, lang: "eng"}, &got)
	assert.Equal(t, map[string]float64{"eng": 1}, got)
}

func TestRunPerWord(t *testing.T) {
	cfg := testConfig(t)
	installAnalyzer(t, cfg, `^cat/cat<n><sg>$`)

	var got map[string]any
	runJSON(t, cfg, options{cmd: "perword", text: "cat", lang: "eng", stages: "morph"}, &got)
	assert.Equal(t, []any{[]any{"cat<n><sg>"}}, got["morph"])
	assert.Equal(t, []any{"cat"}, got["morph_inputs"])

	err := run(context.Background(), cfg, options{cmd: "perword", text: "cat", lang: "eng", stages: "tagger"}, io.Discard, newTestLogger())
	assert.ErrorIs(t, err, errUnsupported)
}

func TestRunLanguages(t *testing.T) {
	cfg := testConfig(t)
	cfg.LangNames.DBPath = filepath.Join(t.TempDir(), "langNames.db")

	conn, err := sql.Open("sqlite3", cfg.LangNames.DBPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, langnames.InitDB(ctx, conn))
	store := langnames.New(conn, langcode.NewMapper(), newTestLogger())
	require.NoError(t, store.AddName(ctx, "en", "es", "Spanish"))
	require.NoError(t, store.AddName(ctx, "en", "ca", "Catalan"))
	require.NoError(t, conn.Close())

	var got map[string]string
	runJSON(t, cfg, options{cmd: "languages", locale: "eng", langs: "spa"}, &got)
	assert.Equal(t, map[string]string{"spa": "Spanish"}, got)
}

func TestRunSuggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, `{"query":{"pages":{"-1":{"missing":""}}}}`)
			return
		}
		io.WriteString(w, `{"edit":{"result":"Success"}}`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Wiki.APIURL = srv.URL

	var got map[string]bool
	runJSON(t, cfg, options{cmd: "suggest", pair: "eng|spa", word: "cat", newWord: "gato", token: "t"}, &got)
	assert.True(t, got["ok"])
}

func TestRunUnknownCommand(t *testing.T) {
	err := run(context.Background(), testConfig(t), options{cmd: "translate"}, io.Discard, newTestLogger())
	assert.Error(t, err)
}

func TestRunImportNames(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	cfg.LangNames.DBPath = filepath.Join(dir, "langNames.db")
	names := filepath.Join(dir, "names.tsv")
	require.NoError(t, os.WriteFile(names, []byte("en\tfi\tFinnish\nen\tsv\tSwedish\n"), 0o644))

	var imported map[string]int
	runJSON(t, cfg, options{cmd: "import-names", file: names}, &imported)
	assert.Equal(t, map[string]int{"imported": 2}, imported)

	var got map[string]string
	runJSON(t, cfg, options{cmd: "languages", locale: "en", langs: "fin,sv"}, &got)
	assert.Equal(t, map[string]string{"fin": "Finnish", "sv": "Swedish"}, got)
}
