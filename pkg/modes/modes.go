// Package modes finds compiled analyzer, tagger and translation modes on disk.
package modes

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/share-with-me/apertium-apy/pkg/engine"
)

const modeExt = ".mode"

var (
	reAnalysis = regexp.MustCompile(`^([a-z]{2,3}(?:_[A-Za-z]+)?)-(morph|tagger)$`)
	rePair     = regexp.MustCompile(`^([a-z]{2,3}(?:_[A-Za-z]+)?)-([a-z]{2,3}(?:_[A-Za-z]+)?)$`)
)

// Catalog holds the modes found under a set of roots. Analyzers and Taggers
// are keyed by language code, Pairs by "src-dst".
type Catalog struct {
	Analyzers map[string]engine.Mode
	Taggers   map[string]engine.Mode
	Pairs     map[string]engine.Mode
}

func newCatalog() Catalog {
	return Catalog{
		Analyzers: make(map[string]engine.Mode),
		Taggers:   make(map[string]engine.Mode),
		Pairs:     make(map[string]engine.Mode),
	}
}

// Discover walks each root for files named modes/*.mode. A mode's directory
// is the parent of its modes/ directory. When a mode name appears more than
// once, the first one found is kept.
func Discover(roots ...string) (Catalog, error) {
	cat := newCatalog()
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != modeExt {
				return nil
			}
			parent := filepath.Dir(path)
			if filepath.Base(parent) != "modes" {
				return nil
			}
			cat.Add(filepath.Dir(parent), strings.TrimSuffix(d.Name(), modeExt))
			return nil
		})
		if err != nil {
			return Catalog{}, fmt.Errorf("modes: walk %s: %w", root, err)
		}
	}
	return cat, nil
}

// Add files a mode by name. Names that are neither xxx-morph, xxx-tagger
// nor xxx-yyy are ignored, as are names already present.
func (c Catalog) Add(dir, name string) {
	mode := engine.Mode{Dir: dir, Name: name}
	if m := reAnalysis.FindStringSubmatch(name); m != nil {
		target := c.Analyzers
		if m[2] == "tagger" {
			target = c.Taggers
		}
		if _, ok := target[m[1]]; !ok {
			target[m[1]] = mode
		}
		return
	}
	if rePair.MatchString(name) {
		if _, ok := c.Pairs[name]; !ok {
			c.Pairs[name] = mode
		}
	}
}

// AnalyzerNames returns the languages that have an analyzer, sorted.
func (c Catalog) AnalyzerNames() []string {
	names := make([]string, 0, len(c.Analyzers))
	for lang := range c.Analyzers {
		names = append(names, lang)
	}
	sort.Strings(names)
	return names
}
