package text

import (
	"iter"
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Splitter segments reconstructed text into sentences. Nil splitter is valid
// and returns input as a single sentence.
type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns sentence splitter for requested language or nil if
// there is no trained model for it.
func NewSplitter(lang language.Tag, log *zap.Logger) *Splitter {
	base, confidence := lang.Base()
	if confidence == language.No {
		log.Warn("Unable to determine language base", zap.Stringer("tag", lang), zap.Stringer("base", base))
		return nil
	}

	name := strings.ToLower(display.English.Languages().Name(base))
	switch name {
	case "english":
		tok, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			log.Warn("Unable to load sentences tokenizer data", zap.Stringer("tag", lang), zap.Error(err))
			return nil
		}
		return &Splitter{tok}
	default:
	}

	log.Warn("Unable to find suitable sentence tokenizer model, turning off sentence splitting", zap.Stringer("language", lang))
	return nil
}

// Split returns slice of sentences.
func (s *Splitter) Split(in string) []string {
	var result []string
	for sentence := range s.Sentences(in) {
		result = append(result, sentence)
	}
	return result
}

// Sentences returns an iterator over sentences. Whitespace separating two
// sentences is kept at the end of the first one rather than at the start of
// the next.
func (s *Splitter) Sentences(in string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			if len(in) > 0 {
				yield(in)
			}
			return
		}

		sents := s.Tokenize(in)
		for i := 0; i < len(sents)-1; i++ {
			text := sents[i].Text
			next := sents[i+1].Text
			for idx, sym := range next {
				if !unicode.IsSpace(sym) {
					text = text + next[0:idx]
					sents[i+1].Text = next[idx:]
					break
				}
			}
			if !yield(text) {
				return
			}
		}
		if len(sents) > 0 {
			yield(sents[len(sents)-1].Text)
		}
	}
}
