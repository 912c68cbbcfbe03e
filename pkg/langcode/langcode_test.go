package langcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	m := NewMapper()
	tests := []struct {
		in, alpha2, alpha3 string
	}{
		{"eng", "en", "eng"},
		{"en", "en", "eng"},
		{"en_US", "en_US", "eng_US"},
		{"eng_US", "en_US", "eng_US"},
		{"oci_aran", "oc_aran", "oci_aran"},
		{"sme", "se", "sme"},
		{"hbs", "sh", "hbs"},
		// Unknown codes pass through, variant or not.
		{"xyz", "xyz", "xyz"},
		{"xx_YY", "xx_YY", "xx_YY"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.alpha2, m.ToAlpha2(tt.in), "ToAlpha2(%q)", tt.in)
		assert.Equal(t, tt.alpha3, m.ToAlpha3(tt.in), "ToAlpha3(%q)", tt.in)
	}
}

func TestAliasesResolveToCanonical(t *testing.T) {
	m := NewMapper()
	assert.Equal(t, "az", m.ToAlpha2("azb"))
	assert.Equal(t, "aze", m.ToAlpha3("az"))
	assert.Equal(t, "fa", m.ToAlpha2("pes"))
	assert.Equal(t, "fas", m.ToAlpha3("fa"))
}

func TestRoundTrip(t *testing.T) {
	m := NewMapper()
	aliases := map[string]bool{"azb": true, "pes": true}
	for _, p := range iso639 {
		alpha3, alpha2 := p[0], p[1]
		assert.Equal(t, alpha2, m.ToAlpha2(m.ToAlpha3(alpha2)))
		assert.Equal(t, alpha2+"_X", m.ToAlpha2(m.ToAlpha3(alpha2+"_X")))
		if aliases[alpha3] {
			continue
		}
		assert.Equal(t, alpha3, m.ToAlpha3(m.ToAlpha2(alpha3)))
		assert.Equal(t, alpha3+"_X", m.ToAlpha3(m.ToAlpha2(alpha3+"_X")))
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	assert.Equal(t, "eng_US", ToAlpha3("en_US"))
	assert.Equal(t, "en_US", ToAlpha2("eng_US"))

	alpha2, ok := Default().Alpha2Of("cat")
	assert.True(t, ok)
	assert.Equal(t, "ca", alpha2)
	_, ok = Default().Alpha2Of("ca")
	assert.False(t, ok)
}
