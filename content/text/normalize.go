package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizer prepares raw extracted string for tokenization.
type Normalizer interface {
	Normalize(in string) string
}

// NormalizerFunc adapts ordinary function to Normalizer.
type NormalizerFunc func(in string) string

func (f NormalizerFunc) Normalize(in string) string {
	return f(in)
}

// UnicodeNormalizer applies compatibility composition (which also unfolds
// typographic ligatures), unifies exotic spaces and dashes and drops control
// characters. Result is trimmed.
type UnicodeNormalizer struct {
	form norm.Form
}

func NewNormalizer() *UnicodeNormalizer {
	return &UnicodeNormalizer{form: norm.NFKC}
}

func (n *UnicodeNormalizer) Normalize(in string) string {
	in = strings.TrimSpace(in)
	if len(in) == 0 {
		return in
	}
	out := n.form.String(in)
	out = strings.Map(mapSymbol, out)
	return strings.TrimSpace(out)
}

func mapSymbol(sym rune) rune {
	switch {
	case sym == '\t' || sym == '\n':
		return ' '
	case sym == unicode.ReplacementChar:
		return -1
	case sym == 0xAD: // soft hyphen is never visible
		return -1
	case sym == '‐' || sym == '‑' || sym == '‒' || sym == '−':
		return '-'
	case unicode.Is(unicode.Zs, sym):
		return ' '
	case unicode.IsControl(sym), unicode.Is(unicode.Cf, sym):
		return -1
	}
	return sym
}
