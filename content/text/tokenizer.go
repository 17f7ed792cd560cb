// Package text holds language level text processing used while rebuilding
// documents: normalization of extracted strings, splitting them into
// sub-tokens and sentence segmentation of the resulting text.
package text

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrInvalidText is returned by tokenizers for input which is not valid UTF-8.
var ErrInvalidText = errors.New("text is not valid UTF-8")

// Tokenizer splits normalized string into sub-tokens.
type Tokenizer interface {
	Tokenize(in string) ([]string, error)
}

// TokenizerFunc adapts ordinary function to Tokenizer.
type TokenizerFunc func(in string) ([]string, error)

func (f TokenizerFunc) Tokenize(in string) ([]string, error) {
	return f(in)
}

// Delimiters is the default set of characters which terminate sub-tokens.
// Every delimiter becomes a sub-token of its own.
const Delimiters = "\n\r\t\f\u00a0([ •*,:;?.!/)-−–‐«»„\"“”‘’'`$#@]*♦♥♣♠"

// DelimiterTokenizer splits text at delimiter characters keeping delimiters
// as separate single character sub-tokens, so concatenation of the result is
// always equal to the input.
type DelimiterTokenizer struct {
	delimiters string
}

// NewTokenizer returns tokenizer using provided delimiter set, empty set
// means Delimiters.
func NewTokenizer(delimiters string) *DelimiterTokenizer {
	if len(delimiters) == 0 {
		delimiters = Delimiters
	}
	return &DelimiterTokenizer{delimiters: delimiters}
}

func (t *DelimiterTokenizer) Tokenize(in string) ([]string, error) {
	if !utf8.ValidString(in) {
		return nil, ErrInvalidText
	}

	var (
		result []string
		start  int
	)
	for i, sym := range in {
		if !strings.ContainsRune(t.delimiters, sym) {
			continue
		}
		if i > start {
			result = append(result, in[start:i])
		}
		size := utf8.RuneLen(sym)
		result = append(result, in[i:i+size])
		start = i + size
	}
	if start < len(in) {
		result = append(result, in[start:])
	}
	return result, nil
}
