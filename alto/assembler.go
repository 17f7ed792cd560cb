package alto

import (
	"go.uber.org/zap"

	"altodoc/layout"
)

// assembler owns growing token sequence and blocks and pages under
// construction.
type assembler struct {
	doc    *layout.Document
	offset int

	pageNumber int
	page       *layout.Page
	block      *layout.Block
	seeded     bool // bold and italic were taken from first content token of the block

	log *zap.Logger
}

func newAssembler(log *zap.Logger) *assembler {
	return &assembler{doc: layout.NewDocument(), log: log}
}

func (a *assembler) count() int {
	return len(a.doc.Tokens)
}

func (a *assembler) openPage(width, height float64) {
	if a.page != nil {
		a.log.Warn("Page started before previous one was closed, closing it", zap.Int("page", a.pageNumber))
		a.closePage()
	}
	a.pageNumber++
	a.page = layout.NewPage(a.pageNumber)
	a.page.Width, a.page.Height = width, height
}

func (a *assembler) openBlock() {
	if a.page == nil {
		a.log.Warn("Text block outside of page, starting implicit page", zap.Int("page", a.pageNumber+1))
		a.openPage(0, 0)
	}
	if a.block != nil {
		a.log.Warn("Text block started before previous one was closed, closing it", zap.Int("start", a.block.Start))
		a.finalizeBlock()
	}
	a.block = layout.NewBlock(a.count())
	a.seeded = false
}

// addToken assigns offset and block pointer and appends token. Token is kept
// even when there is no open block.
func (a *assembler) addToken(t layout.Token) {
	t.Offset = a.offset
	a.offset += t.Len()
	if a.block == nil {
		t.BlockPtr = layout.NoBlock
		a.log.Debug("Token added outside of text block", zap.String("text", t.Text), zap.Int("page", t.Page))
	} else {
		t.BlockPtr = len(a.doc.Blocks)
	}
	a.doc.Tokens = append(a.doc.Tokens, t)
	if a.block != nil {
		a.block.End = a.count()
	}
}

func (a *assembler) addStructural(text string) {
	a.addToken(layout.NewStructuralToken(text, a.pageNumber))
}

// addRun appends sub-tokens of a single run. When run text was not empty a
// separating space is added unless the last token ends with hyphen, which is
// taken as word wrap.
func (a *assembler) addRun(tokens []layout.Token, nonEmpty bool) {
	for _, t := range tokens {
		if b := a.block; b != nil {
			if !a.seeded {
				b.Bold, b.Italic = t.Bold, t.Italic
				a.seeded = true
			}
			// font and color are the first ones seen in the block
			if len(b.Font) == 0 {
				b.Font = t.Font
			}
			if len(b.FontColor) == 0 {
				b.FontColor = t.FontColor
			}
		}
		a.addToken(t)
	}
	if !nonEmpty || a.count() == 0 {
		return
	}
	if last := a.doc.Tokens[a.count()-1]; !last.EndsWithHyphen() {
		a.addStructural(" ")
	}
}

func (a *assembler) closeLine() {
	a.addStructural("\n")
}

// closeBlock always ends text with newline, even when block was already
// finalized by an illustration.
func (a *assembler) closeBlock() {
	a.addStructural("\n")
	if a.block == nil {
		a.log.Debug("Text block closed while none is open", zap.Int("page", a.pageNumber))
		return
	}
	a.finalizeBlock()
}

// finalizeBlock attaches open block to document and page unless it is empty
// and forgets it.
func (a *assembler) finalizeBlock() {
	b := a.block
	if b == nil {
		return
	}
	a.block, a.seeded = nil, false

	b.End = a.count()
	if b.IsEmpty() {
		a.log.Debug("Dropping empty text block", zap.Int("start", b.Start), zap.Int("end", b.End))
		return
	}
	b.Page = a.pageNumber
	a.doc.AddBlock(b)
	if a.page != nil {
		a.page.AddBlock(b)
	}
}

func (a *assembler) closePage() {
	if a.page == nil {
		a.log.Warn("Page closed while none is open")
		return
	}
	if a.block != nil {
		a.addStructural("\n")
		a.finalizeBlock()
	}
	a.doc.AddPage(a.page)
	a.page = nil
}
