// Package coverage scores how much of a text an analysis mode recognizes.
package coverage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/share-with-me/apertium-apy/pkg/engine"
	"github.com/share-with-me/apertium-apy/pkg/lexical"
)

// NoUnits is returned when the analysis yielded no lexical units.
const NoUnits = -1.0

// Scorer computes coverage using an analysis engine.
type Scorer struct {
	engine engine.Engine
	log    *slog.Logger
	// MaxParallel bounds concurrent analyses in Coverages; <= 0 means unbounded.
	MaxParallel int
}

// NewScorer creates a Scorer.
func NewScorer(e engine.Engine, logger *slog.Logger) *Scorer {
	return &Scorer{
		engine:      e,
		log:         logger.With("component", "coverage"),
		MaxParallel: 4,
	}
}

// Coverage returns the fraction of lexical units in text that mode analyzed.
// With penalize set, the score is reduced by the share of text the input
// forms do not account for, so it can go negative.
func (s *Scorer) Coverage(ctx context.Context, text string, mode engine.Mode, penalize bool) (float64, error) {
	text = norm.NFC.String(text)

	raw, err := s.engine.Analyze(ctx, text, mode, engine.FormatTxt)
	if err != nil {
		return 0, fmt.Errorf("coverage: analyze with %s: %w", mode.Name, err)
	}
	units := lexical.Parse(raw)
	if text != "" {
		// Error is impossible for a non-empty query.
		units, _ = lexical.TrimDeformat(text, units)
	}

	score := Score(text, units, penalize)
	s.log.DebugContext(ctx, "coverage",
		slog.String("mode", mode.Name),
		slog.Int("units", len(units)),
		slog.Float64("score", score),
	)
	return score, nil
}

// Score computes the coverage metric over already parsed units.
func Score(text string, units []lexical.LexicalUnit, penalize bool) float64 {
	if len(units) == 0 {
		return NoUnits
	}
	analyzed := 0
	for _, u := range units {
		if u.Analyzed() {
			analyzed++
		}
	}
	ratio := float64(analyzed) / float64(len(units))
	if !penalize {
		return ratio
	}

	textLen := utf8.RuneCountInString(text)
	if textLen == 0 {
		// Units from empty text; the engine should never produce this.
		return NoUnits
	}
	formLen := 0
	for _, u := range units {
		formLen += utf8.RuneCountInString(u.InputForm())
	}
	return ratio - (1 - float64(formLen)/float64(textLen))
}

// Coverages scores text against every named mode independently.
func (s *Scorer) Coverages(ctx context.Context, text string, modes map[string]engine.Mode, penalize bool) (map[string]float64, error) {
	var mu sync.Mutex
	out := make(map[string]float64, len(modes))

	g, ctx := errgroup.WithContext(ctx)
	if s.MaxParallel > 0 {
		g.SetLimit(s.MaxParallel)
	}
	for name, mode := range modes {
		g.Go(func() error {
			score, err := s.Coverage(ctx, text, mode, penalize)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mu.Lock()
			out[name] = score
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
