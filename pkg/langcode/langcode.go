// Package langcode converts between ISO 639-1 and ISO 639-2/3 language codes.
//
// Codes may carry a variant after an underscore (en_US, oci_aran); the
// variant is kept verbatim and only the base code is converted. Unknown
// codes are returned unchanged.
package langcode

import "strings"

// Mapper holds both directions of the code table. It is read-only after
// NewMapper and safe for concurrent use.
type Mapper struct {
	toAlpha2 map[string]string
	toAlpha3 map[string]string
}

// NewMapper builds the forward and inverse tables.
func NewMapper() *Mapper {
	m := &Mapper{
		toAlpha2: make(map[string]string, len(iso639)),
		toAlpha3: make(map[string]string, len(iso639)),
	}
	for _, p := range iso639 {
		alpha3, alpha2 := p[0], p[1]
		m.toAlpha2[alpha3] = alpha2
		if _, ok := m.toAlpha3[alpha2]; !ok {
			m.toAlpha3[alpha2] = alpha3
		}
	}
	return m
}

var defaultMapper = NewMapper()

// Default returns the shared Mapper.
func Default() *Mapper { return defaultMapper }

// ToAlpha2 converts a 3-letter code to its 2-letter equivalent.
func (m *Mapper) ToAlpha2(code string) string { return convert(m.toAlpha2, code) }

// ToAlpha3 converts a 2-letter code to its 3-letter equivalent.
func (m *Mapper) ToAlpha3(code string) string { return convert(m.toAlpha3, code) }

// Alpha2Of reports the 2-letter equivalent of a bare 3-letter code.
func (m *Mapper) Alpha2Of(alpha3 string) (string, bool) {
	alpha2, ok := m.toAlpha2[alpha3]
	return alpha2, ok
}

func convert(table map[string]string, code string) string {
	base, variant, hasVariant := strings.Cut(code, "_")
	if converted, ok := table[base]; ok {
		base = converted
	}
	if hasVariant {
		return base + "_" + variant
	}
	return base
}

// ToAlpha2 converts code using the default Mapper.
func ToAlpha2(code string) string { return defaultMapper.ToAlpha2(code) }

// ToAlpha3 converts code using the default Mapper.
func ToAlpha3(code string) string { return defaultMapper.ToAlpha3(code) }
