package alto

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"altodoc/content/text"
	"altodoc/layout"
)

// textRun is a single positioned string with its resolved style.
type textRun struct {
	content string
	style   TextStyle
	rotated bool
	box     Geometry
	page    int
}

// subTokenizer splits runs into sub-tokens and apportions run geometry
// between them.
type subTokenizer struct {
	tokenizer  text.Tokenizer
	normalizer text.Normalizer
	log        *zap.Logger
}

// Split returns positioned sub-tokens of the run. Second value reports
// whether normalized run text was not empty, this is true even if tokenizer
// failed and no tokens were produced.
//
// Only X and width are apportioned, proportionally to sub-token length in
// characters. It is an approximation, real glyph widths are unknown here.
func (s *subTokenizer) Split(run textRun) ([]layout.Token, bool) {
	cleaned := s.normalizer.Normalize(run.content)
	if len(cleaned) == 0 {
		return nil, false
	}

	parts, err := s.tokenizer.Tokenize(cleaned)
	if err != nil {
		s.log.Debug("Sub-tokenization of run has failed, dropping it", zap.String("text", cleaned), zap.Error(err))
		return nil, true
	}

	total := 0
	for _, p := range parts {
		total += utf8.RuneCountInString(p)
	}
	if total == 0 {
		return nil, true
	}

	style := run.style
	if run.rotated {
		style = style.Rotated()
	}
	font := style.TokenFont()

	var (
		tokens = make([]layout.Token, 0, len(parts))
		prev   float64
	)
	for _, p := range parts {
		n := utf8.RuneCountInString(p)
		width := run.box.Width * (float64(n) / float64(total))
		x := run.box.X + prev
		prev += width
		if n == 0 {
			continue
		}
		tokens = append(tokens, layout.Token{
			Text:        p,
			Page:        run.page,
			X:           x,
			Y:           run.box.Y,
			Width:       width,
			Height:      run.box.Height,
			Font:        font,
			FontSize:    style.FontSize,
			FontColor:   style.FontColor,
			Bold:        style.Bold,
			Italic:      style.Italic,
			Subscript:   style.Subscript,
			Superscript: style.Superscript,
			Rotation:    run.rotated,
			BlockPtr:    layout.NoBlock,
		})
	}
	return tokens, true
}
