// Package perword assembles the per-word analysis shown by the web service:
// morphological readings, tagger output and bilingual dictionary candidates
// for every lexical unit of a query.
package perword

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/share-with-me/apertium-apy/pkg/engine"
	"github.com/share-with-me/apertium-apy/pkg/lexical"
)

// Stage names accepted by Process.
const (
	StageMorph     = "morph"
	StageTagger    = "tagger"
	StageDisambig  = "disambig"
	StageBiltrans  = "biltrans"
	StageTranslate = "translate"
)

// Reading is the tagger output for one unit: its tag readings, or the raw
// unit text when the tagger emitted no readings.
type Reading struct {
	Tags []string
	Raw  string
}

func (r Reading) MarshalJSON() ([]byte, error) {
	if r.Tags == nil {
		return json.Marshal(r.Raw)
	}
	return json.Marshal(r.Tags)
}

// Outputs holds one slice per stage, each aligned index-for-index with the
// lexical units of the stage that produced it. Stages that did not run are nil.
type Outputs struct {
	Morph           [][]string
	MorphInputs     []string
	Tagger          []Reading
	TaggerInputs    []string
	Biltrans        [][]string
	Translate       [][]string
	TranslateInputs []string
}

// MarshalJSON omits stages that did not run and keeps empty ones.
func (o Outputs) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 7)
	if o.Morph != nil {
		m["morph"] = o.Morph
	}
	if o.MorphInputs != nil {
		m["morph_inputs"] = o.MorphInputs
	}
	if o.Tagger != nil {
		m["tagger"] = o.Tagger
	}
	if o.TaggerInputs != nil {
		m["tagger_inputs"] = o.TaggerInputs
	}
	if o.Biltrans != nil {
		m["biltrans"] = o.Biltrans
	}
	if o.Translate != nil {
		m["translate"] = o.Translate
	}
	if o.TranslateInputs != nil {
		m["translate_inputs"] = o.TranslateInputs
	}
	return json.Marshal(m)
}

// Result is the outcome of a supported Process call.
type Result struct {
	Outputs     Outputs
	TaggerUnits []string
	MorphUnits  []string
}

// Pipeline runs the per-word stages against an engine.
type Pipeline struct {
	engine engine.Engine
	log    *slog.Logger
	// Workers bounds concurrent bilingual lookups; <= 0 means unbounded.
	Workers int
}

// NewPipeline creates a Pipeline.
func NewPipeline(e engine.Engine, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		engine:  e,
		log:     logger.With("component", "perword"),
		Workers: 4,
	}
}

// Process analyzes query for lang with the requested stages. The boolean is
// false when lang has no mode for a requested stage (or biltrans/translate
// have no units to work from); the Result is then empty. Stages always run
// in the order morph, tagger, biltrans, translate.
func (p *Pipeline) Process(ctx context.Context, analyzers, taggers map[string]engine.Mode, lang string, stages []string, query string) (Result, bool, error) {
	if query == "" {
		return Result{}, false, lexical.ErrEmptyQuery
	}
	want := func(names ...string) bool {
		for _, n := range names {
			if slices.Contains(stages, n) {
				return true
			}
		}
		return false
	}

	var res Result
	var morphMode, taggerMode engine.Mode

	if want(StageMorph, StageBiltrans) {
		mode, ok := analyzers[lang]
		if !ok {
			p.log.DebugContext(ctx, "no analyzer", slog.String("lang", lang))
			return Result{}, false, nil
		}
		morphMode = mode
		units, err := p.analyze(ctx, query, mode)
		if err != nil {
			return Result{}, false, err
		}
		res.MorphUnits = units
		res.Outputs.Morph = make([][]string, 0, len(units))
		res.Outputs.MorphInputs = make([]string, 0, len(units))
		for _, u := range units {
			input, readings := lexical.Split(u)
			res.Outputs.Morph = append(res.Outputs.Morph, readings)
			res.Outputs.MorphInputs = append(res.Outputs.MorphInputs, lexical.Unescape(lexical.StripTags(input)))
		}
	}

	if want(StageTagger, StageDisambig, StageTranslate) {
		mode, ok := taggers[lang]
		if !ok {
			p.log.DebugContext(ctx, "no tagger", slog.String("lang", lang))
			return Result{}, false, nil
		}
		taggerMode = mode
		units, err := p.analyze(ctx, query, mode)
		if err != nil {
			return Result{}, false, err
		}
		res.TaggerUnits = units
		res.Outputs.Tagger = make([]Reading, 0, len(units))
		res.Outputs.TaggerInputs = make([]string, 0, len(units))
		for _, u := range units {
			input, readings := lexical.Split(u)
			r := Reading{Raw: u}
			if len(readings) > 0 {
				r = Reading{Tags: readings}
			}
			res.Outputs.Tagger = append(res.Outputs.Tagger, r)
			res.Outputs.TaggerInputs = append(res.Outputs.TaggerInputs, lexical.Unescape(lexical.StripTags(input)))
		}
	}

	if want(StageBiltrans) {
		if len(res.MorphUnits) == 0 {
			return Result{}, false, nil
		}
		candidates, err := p.translateUnits(ctx, res.MorphUnits, morphMode.Dir, lang)
		if err != nil {
			return Result{}, false, err
		}
		res.Outputs.Biltrans = candidates
		res.Outputs.TranslateInputs = res.Outputs.MorphInputs
	}

	if want(StageTranslate) {
		if len(res.TaggerUnits) == 0 {
			return Result{}, false, nil
		}
		candidates, err := p.translateUnits(ctx, res.TaggerUnits, taggerMode.Dir, lang)
		if err != nil {
			return Result{}, false, err
		}
		res.Outputs.Translate = candidates
		res.Outputs.TranslateInputs = res.Outputs.TaggerInputs
	}

	return res, true, nil
}

func (p *Pipeline) analyze(ctx context.Context, query string, mode engine.Mode) ([]string, error) {
	raw, err := p.engine.Analyze(ctx, query, mode, engine.FormatTxt)
	if err != nil {
		return nil, fmt.Errorf("perword: analyze with %s: %w", mode.Name, err)
	}
	return lexical.TrimDeformat(query, lexical.ParseAnalyses(raw))
}

// translateUnits looks up the readings of every unit in the bilingual
// dictionary of lang and returns the candidate translations per unit.
func (p *Pipeline) translateUnits(ctx context.Context, units []string, dir, lang string) ([][]string, error) {
	binary := lang + ".autobil.bin"
	out := make([][]string, len(units))

	// Once a lookup fails the remaining ones are skipped, not run.
	g, gctx := errgroup.WithContext(ctx)
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}
	for i, unit := range units {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			raw, err := p.engine.Lookup(gctx, lookupQuery(unit), dir, binary)
			if err != nil {
				return fmt.Errorf("perword: lookup %q: %w", unit, err)
			}
			out[i] = candidates(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// lookupQuery wraps each reading of unit (or the unit itself when it has
// none) as a lexical unit for the bilingual transducer.
func lookupQuery(unit string) string {
	input, forms := lexical.Split(unit)
	if len(forms) == 0 {
		forms = []string{input}
	}
	var b strings.Builder
	for _, f := range forms {
		b.WriteByte('^')
		b.WriteString(f)
		b.WriteByte('$')
	}
	return b.String()
}

// candidates returns the translation part of every unit in raw, readings
// rejoined with '/'.
func candidates(raw string) []string {
	analyses := lexical.ParseAnalyses(raw)
	out := make([]string, 0, len(analyses))
	for _, a := range analyses {
		_, readings := lexical.Split(a)
		out = append(out, strings.Join(readings, "/"))
	}
	return out
}
