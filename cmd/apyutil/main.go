package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/share-with-me/apertium-apy/pkg/config"
	"github.com/share-with-me/apertium-apy/pkg/coverage"
	"github.com/share-with-me/apertium-apy/pkg/document"
	"github.com/share-with-me/apertium-apy/pkg/engine"
	"github.com/share-with-me/apertium-apy/pkg/langcode"
	"github.com/share-with-me/apertium-apy/pkg/langnames"
	"github.com/share-with-me/apertium-apy/pkg/logging"
	"github.com/share-with-me/apertium-apy/pkg/modes"
	"github.com/share-with-me/apertium-apy/pkg/perword"
	"github.com/share-with-me/apertium-apy/pkg/wiki"
)

var errUnsupported = errors.New("language not supported")

type options struct {
	cmd      string
	text     string
	url      string
	lang     string
	stages   string
	locale   string
	langs    string
	code     string
	pair     string
	word     string
	newWord  string
	context  string
	token    string
	file     string
	penalize bool
}

func main() {
	var opts options
	flag.StringVar(&opts.cmd, "cmd", "", "coverage | perword | languages | import-names | convert | suggest")
	flag.StringVar(&opts.text, "text", "", "Input text")
	flag.StringVar(&opts.url, "url", "", "Page to score instead of -text (coverage)")
	flag.StringVar(&opts.lang, "lang", "", "Language code; coverage scores every analyzer when empty")
	flag.StringVar(&opts.stages, "stages", "morph", "Comma separated per-word stages")
	flag.StringVar(&opts.locale, "locale", "en", "Locale for language names")
	flag.StringVar(&opts.langs, "langs", "", "Comma separated codes to name (all when empty)")
	flag.StringVar(&opts.code, "code", "", "Language code to convert")
	flag.StringVar(&opts.pair, "pair", "", "Language pair src|dst (suggest)")
	flag.StringVar(&opts.word, "word", "", "Translated word (suggest)")
	flag.StringVar(&opts.newWord, "new-word", "", "Proposed word (suggest)")
	flag.StringVar(&opts.context, "context", "", "Sentence the word appeared in (suggest)")
	flag.StringVar(&opts.token, "token", "", "Wiki edit token (suggest)")
	flag.StringVar(&opts.file, "file", "", "Tab separated language names to load (import-names)")
	flag.BoolVar(&opts.penalize, "penalize", false, "Penalize coverage by unanalyzed characters")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Log)

	if err := run(ctx, cfg, opts, os.Stdout, logger); err != nil {
		logger.Error("command failed", slog.String("cmd", opts.cmd), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, out io.Writer, logger *slog.Logger) error {
	codes := langcode.NewMapper()

	var result any
	var err error
	switch opts.cmd {
	case "convert":
		result = map[string]string{
			"alpha2": codes.ToAlpha2(opts.code),
			"alpha3": codes.ToAlpha3(opts.code),
		}
	case "languages":
		result, err = runLanguages(ctx, cfg, opts, codes, logger)
	case "import-names":
		result, err = runImportNames(ctx, cfg, opts, codes, logger)
	case "suggest":
		result, err = runSuggest(ctx, cfg, opts, logger)
	case "coverage", "perword":
		var eng engine.Engine
		eng, err = newEngine(cfg, logger)
		if err != nil {
			return err
		}
		var cat modes.Catalog
		cat, err = modes.Discover(cfg.Pairs.PairRoots()...)
		if err != nil {
			return err
		}
		// In-process modes need no files on disk.
		for _, name := range cfg.Engine.Modes() {
			cat.Add("", name)
		}
		logger.Debug("modes discovered",
			slog.Int("analyzers", len(cat.Analyzers)),
			slog.Int("taggers", len(cat.Taggers)),
			slog.Int("pairs", len(cat.Pairs)))
		if opts.cmd == "coverage" {
			result, err = runCoverage(ctx, cfg, opts, eng, cat, codes, logger)
		} else {
			result, err = runPerWord(ctx, cfg, opts, eng, cat, codes, logger)
		}
	default:
		return fmt.Errorf("unknown command %q", opts.cmd)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func newEngine(cfg *config.Config, logger *slog.Logger) (engine.Engine, error) {
	exec := engine.NewExec(cfg.Engine.AnalyzerBin, cfg.Engine.LookupBin, logger)
	names := cfg.Engine.Modes()
	if len(names) == 0 {
		return exec, nil
	}
	kagome, err := engine.NewKagome()
	if err != nil {
		return nil, fmt.Errorf("create kagome engine: %w", err)
	}
	router := engine.NewRouter(exec)
	router.Route(kagome, names...)
	return router, nil
}

func runCoverage(ctx context.Context, cfg *config.Config, opts options, eng engine.Engine, cat modes.Catalog, codes *langcode.Mapper, logger *slog.Logger) (map[string]float64, error) {
	text := opts.text
	if opts.url != "" {
		article, err := document.Fetch(ctx, &http.Client{Timeout: 30 * time.Second}, opts.url)
		if err != nil {
			return nil, err
		}
		logger.Info("page extracted", slog.String("title", article.Title), slog.Int("chars", len(article.Text)))
		text = article.Text
	}

	scorer := coverage.NewScorer(eng, logger)
	scorer.MaxParallel = cfg.Coverage.MaxParallel
	penalize := opts.penalize || cfg.Coverage.Penalize

	if opts.lang == "" {
		return scorer.Coverages(ctx, text, cat.Analyzers, penalize)
	}
	lang := codes.ToAlpha3(opts.lang)
	mode, ok := cat.Analyzers[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnsupported, lang)
	}
	score, err := scorer.Coverage(ctx, text, mode, penalize)
	if err != nil {
		return nil, err
	}
	return map[string]float64{lang: score}, nil
}

func runPerWord(ctx context.Context, cfg *config.Config, opts options, eng engine.Engine, cat modes.Catalog, codes *langcode.Mapper, logger *slog.Logger) (perword.Outputs, error) {
	pipeline := perword.NewPipeline(eng, logger)
	pipeline.Workers = cfg.PerWord.LookupWorkers

	lang := codes.ToAlpha3(opts.lang)
	res, ok, err := pipeline.Process(ctx, cat.Analyzers, cat.Taggers, lang, splitFlag(opts.stages), opts.text)
	if err != nil {
		return perword.Outputs{}, err
	}
	if !ok {
		return perword.Outputs{}, fmt.Errorf("%w: %s", errUnsupported, lang)
	}
	return res.Outputs, nil
}

func runLanguages(ctx context.Context, cfg *config.Config, opts options, codes *langcode.Mapper, logger *slog.Logger) (map[string]string, error) {
	store, err := langnames.Open(ctx, cfg.LangNames.DBPath, codes, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LocalizedLanguages(ctx, opts.locale, splitFlag(opts.langs))
}

// runImportNames creates the database when it does not exist yet.
func runImportNames(ctx context.Context, cfg *config.Config, opts options, codes *langcode.Mapper, logger *slog.Logger) (map[string]int, error) {
	f, err := os.Open(opts.file)
	if err != nil {
		return nil, fmt.Errorf("open names file: %w", err)
	}
	defer f.Close()

	conn, err := sql.Open("sqlite3", cfg.LangNames.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()
	if err := langnames.InitDB(ctx, conn); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	n, err := langnames.New(conn, codes, logger).Import(ctx, f, langnames.DefaultBatchSize)
	if err != nil {
		return nil, err
	}
	return map[string]int{"imported": n}, nil
}

func runSuggest(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) (map[string]bool, error) {
	client := wiki.NewClient(cfg.Wiki.APIURL, cfg.Wiki.Timeout, logger)
	ok := client.AddSuggestion(ctx, cfg.Wiki.SuggestPage, opts.token, wiki.Suggestion{
		LangPair: opts.pair,
		Word:     opts.word,
		NewWord:  opts.newWord,
		Context:  opts.context,
	})
	return map[string]bool{"ok": ok}, nil
}

func splitFlag(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
