package engine

import (
	"context"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/share-with-me/apertium-apy/pkg/lexical"
)

// Kagome analyzes Japanese in-process and writes the result in the same
// stream format the external analyzer produces, so Japanese text can be
// scored without a compiled jpn mode on disk.
type Kagome struct {
	t *tokenizer.Tokenizer
}

// NewKagome creates a tokenizer backed by the IPA dictionary.
func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Kagome{t: t}, nil
}

// Analyze ignores mode and format: there is only one dictionary.
func (k *Kagome) Analyze(_ context.Context, input string, _ Mode, _ string) (string, error) {
	var b strings.Builder
	for _, token := range k.t.Tokenize(input) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		// Blanks go between units, never inside one.
		if strings.TrimSpace(token.Surface) == "" {
			b.WriteString(token.Surface)
			continue
		}

		surface := lexical.Escape(token.Surface)
		b.WriteByte('^')
		b.WriteString(surface)
		b.WriteByte('/')
		if token.Class == tokenizer.UNKNOWN {
			b.WriteByte('*')
			b.WriteString(surface)
		} else {
			writeReading(&b, surface, token.Features())
		}
		b.WriteByte('$')
	}

	// Same artifact as the txt deformatter.
	if !strings.HasSuffix(input, ".") {
		b.WriteString("^./.<sent>$\n")
	}
	return b.String(), nil
}

// Lookup is not available: kagome has no bilingual dictionary.
func (k *Kagome) Lookup(context.Context, string, string, string) (string, error) {
	return "", ErrUnsupported
}

// IPA features:
// 0-3: part of speech and sub-classes, 4: conjugation type,
// 5: conjugation form, 6: base form, 7: reading, 8: pronunciation.
func writeReading(b *strings.Builder, surface string, features []string) {
	base := surface
	if len(features) > 6 && features[6] != "*" {
		base = lexical.Escape(features[6])
	}
	b.WriteString(base)
	for i := 0; i < len(features) && i < 4; i++ {
		if features[i] == "*" {
			continue
		}
		b.WriteByte('<')
		b.WriteString(lexical.Escape(features[i]))
		b.WriteByte('>')
	}
}
