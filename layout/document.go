package layout

import (
	"iter"
	"strings"
)

// Block is a contiguous range of tokens [Start, End) corresponding to one
// text region on a page. Style hints are taken from its first tokens.
type Block struct {
	Start     int    `yaml:"start"`
	End       int    `yaml:"end"`
	Page      int    `yaml:"page"`
	Font      string `yaml:"font,omitempty"`
	FontColor string `yaml:"font_color,omitempty"`
	Bold      bool   `yaml:"bold,omitempty"`
	Italic    bool   `yaml:"italic,omitempty"`
}

// NewBlock returns block starting at token index start.
func NewBlock(start int) *Block {
	return &Block{Start: start, End: start}
}

// IsEmpty reports whether block covers no tokens and must not be attached to
// a document.
func (b *Block) IsEmpty() bool {
	return b == nil || b.Start < 0 || b.Start >= b.End
}

func (b *Block) Len() int {
	if b.IsEmpty() {
		return 0
	}
	return b.End - b.Start
}

// Tokens returns tokens of the block from the owning document.
func (b *Block) Tokens(doc *Document) []Token {
	if b.IsEmpty() || doc == nil || b.End > len(doc.Tokens) {
		return nil
	}
	return doc.Tokens[b.Start:b.End]
}

// Page is one page of the document, numbered from 1.
type Page struct {
	Number int      `yaml:"number"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Blocks []*Block `yaml:"-"`
}

func NewPage(number int) *Page {
	return &Page{Number: number}
}

func (p *Page) AddBlock(b *Block) {
	p.Blocks = append(p.Blocks, b)
}

// Document is the complete reconstructed model. Blocks is flat and spans all
// pages, page and block membership partition Tokens into contiguous ranges.
type Document struct {
	Pages  []*Page         `yaml:"pages"`
	Blocks []*Block        `yaml:"blocks"`
	Tokens []Token         `yaml:"tokens,omitempty"`
	Images []GraphicObject `yaml:"images,omitempty"`
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) AddPage(p *Page) {
	d.Pages = append(d.Pages, p)
}

func (d *Document) AddBlock(b *Block) {
	d.Blocks = append(d.Blocks, b)
}

// TokenAt returns token by index or false when index is out of range.
func (d *Document) TokenAt(i int) (Token, bool) {
	if i < 0 || i >= len(d.Tokens) {
		return Token{}, false
	}
	return d.Tokens[i], true
}

// All iterates over tokens in emission order.
func (d *Document) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, t := range d.Tokens {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Text concatenates all token texts. Token offsets index into the result
// (in characters).
func (d *Document) Text() string {
	var b strings.Builder
	for _, t := range d.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// PageOf returns page by its number.
func (d *Document) PageOf(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}
