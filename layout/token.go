package layout

import "strings"

// NoBlock marks token which was emitted while no block was open.
const NoBlock = -1

// Token is the atomic unit of the reconstructed text stream. Text is either a
// sub-token produced by the tokenizer or a single structural separator
// (newline or space).
type Token struct {
	Text        string  `yaml:"text"`
	Page        int     `yaml:"page"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Font        string  `yaml:"font,omitempty"`
	FontSize    float64 `yaml:"font_size,omitempty"`
	FontColor   string  `yaml:"font_color,omitempty"`
	Bold        bool    `yaml:"bold,omitempty"`
	Italic      bool    `yaml:"italic,omitempty"`
	Subscript   bool    `yaml:"subscript,omitempty"`
	Superscript bool    `yaml:"superscript,omitempty"`
	Rotation    bool    `yaml:"rotation,omitempty"`
	// Offset is character (rune) offset of the token in the concatenated
	// text of the document.
	Offset   int `yaml:"offset"`
	BlockPtr int `yaml:"block"`
}

// NewStructuralToken returns separator token without geometry or style.
func NewStructuralToken(text string, page int) Token {
	return Token{Text: text, Page: page, BlockPtr: NoBlock}
}

// Len returns length of token text in characters.
func (t *Token) Len() int {
	return len([]rune(t.Text))
}

// IsStructural reports whether token is a synthetic newline or space.
func (t *Token) IsStructural() bool {
	return t.Text == "\n" || t.Text == " "
}

func (t *Token) EndsWithHyphen() bool {
	return strings.HasSuffix(t.Text, "-")
}

func (t *Token) BoundingBox() BoundingBox {
	return BoundingBox{Page: t.Page, X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}
