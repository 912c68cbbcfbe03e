// Package lexical parses the caret-delimited stream format emitted by the
// analysis engine.
//
// Every analyzed unit is written as ^form$trailing, where form is
// input/reading1/reading2/... and trailing is the unanalyzed text (usually
// whitespace and punctuation blanks) up to the next caret. Reserved
// characters occurring in text are escaped with a backslash.
package lexical

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyQuery is returned when a query with no characters reaches logic
// that inspects its final character.
var ErrEmptyQuery = errors.New("empty query")

var (
	reUnit     = regexp.MustCompile(`\^((?:[^$\\]|\\.)*)\$((?:[^^\\]|\\.)*)`)
	reAnalysis = regexp.MustCompile(`\^((?:[^$\\]|\\.)*)\$`)
)

// Reserved are the characters escaped inside the stream.
const Reserved = `^$/<>{}[]@\`

// deformatDot is the unit the txt deformatter appends to unterminated input.
const deformatDot = "./.<sent>"

// unanalyzedMarks prefix the first reading of words the engine could not analyze.
const unanalyzedMarks = "*&#"

// LexicalUnit is one ^...$ record and the text that follows it.
type LexicalUnit struct {
	Analysis string
	Trailing string
}

// Parse returns every non-overlapping lexical unit in raw, in order.
func Parse(raw string) []LexicalUnit {
	matches := reUnit.FindAllStringSubmatch(raw, -1)
	units := make([]LexicalUnit, 0, len(matches))
	for _, m := range matches {
		units = append(units, LexicalUnit{Analysis: m[1], Trailing: m[2]})
	}
	return units
}

// ParseAnalyses returns the bracketed part of every unit in raw, dropping
// trailing text.
func ParseAnalyses(raw string) []string {
	matches := reAnalysis.FindAllStringSubmatch(raw, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// Escape backslash-escapes the reserved characters of s.
func Escape(s string) string {
	if !strings.ContainsAny(s, Reserved) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(Reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unescape removes the backslash escapes from s.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// Split breaks an analysis into its input form and readings at unescaped
// slashes. Escapes are left in place.
func Split(analysis string) (input string, readings []string) {
	var parts []string
	start := 0
	for i := 0; i < len(analysis); i++ {
		switch analysis[i] {
		case '\\':
			i++
		case '/':
			parts = append(parts, analysis[start:i])
			start = i + 1
		}
	}
	parts = append(parts, analysis[start:])
	return parts[0], parts[1:]
}

// InputForm is the surface text the unit was analyzed from, markup included
// and escapes removed.
func (u LexicalUnit) InputForm() string {
	input, _ := Split(u.Analysis)
	return Unescape(input)
}

// Readings returns the tag readings of the unit (everything after the first /).
func (u LexicalUnit) Readings() []string {
	_, readings := Split(u.Analysis)
	return readings
}

// Analyzed reports whether the engine recognized the unit.
func (u LexicalUnit) Analyzed() bool {
	readings := u.Readings()
	if len(readings) == 0 || readings[0] == "" {
		return false
	}
	return !strings.ContainsRune(unanalyzedMarks, rune(readings[0][0]))
}

// StripTags returns the part of analysis before the first unescaped '<'.
func StripTags(analysis string) string {
	for i := 0; i < len(analysis); i++ {
		switch analysis[i] {
		case '\\':
			i++
		case '<':
			return analysis[:i]
		}
	}
	return analysis
}

// RemoveDotFromDeformat drops the final unit when query does not end in '.'.
// The txt deformatter appends a sentence-final period (and blank lines) to
// input lacking one, which shows up as an extra trailing unit.
func RemoveDotFromDeformat[T any](query string, units []T) ([]T, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if strings.HasSuffix(query, ".") || len(units) == 0 {
		return units, nil
	}
	return units[:len(units)-1], nil
}

// TrimDeformat is RemoveDotFromDeformat for engine output. A lone unit
// analyzed from a query with visible content is kept, unless it is the
// appended period itself.
func TrimDeformat[T LexicalUnit | string](query string, units []T) ([]T, error) {
	if len(units) == 1 && strings.TrimSpace(query) != "" && analysisOf(units[0]) != deformatDot {
		return units, nil
	}
	return RemoveDotFromDeformat(query, units)
}

func analysisOf(unit any) string {
	switch u := unit.(type) {
	case LexicalUnit:
		return u.Analysis
	case string:
		return u
	}
	return ""
}
