package content

import (
	"altodoc/layout"
	"altodoc/utils/debug"
)

// String returns a readable tree of the reconstructed document. It exists
// solely for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil || c.Document == nil {
		return "<nil Content>"
	}
	doc := c.Document

	tw := debug.NewTreeWriter()
	tw.Line(0, "Document %s from %q", c.RefID, c.SrcName)
	tw.Line(1, "Language: %s", c.Language)
	tw.Line(1, "Pages: %d, blocks: %d, tokens: %d, images: %d", len(doc.Pages), len(doc.Blocks), len(doc.Tokens), len(doc.Images))

	for _, p := range doc.Pages {
		tw.Line(1, "Page[%d] size[%.2fx%.2f] blocks[%d]", p.Number, p.Width, p.Height, len(p.Blocks))
		for _, b := range p.Blocks {
			tw.Line(2, "Block[%d:%d] font[%q] color[%q] bold[%t] italic[%t]", b.Start, b.End, b.Font, b.FontColor, b.Bold, b.Italic)
			tw.TextBlock(3, "Text", blockText(b, doc))
		}
	}

	for i, img := range doc.Images {
		tw.Line(1, "Image[%d] type[%s] file[%q] box[%s] anchor[%d]", i, img.Type, img.FilePath, img.Box, img.Start)
	}

	if loose := looseTokens(doc); loose > 0 {
		tw.Line(1, "Tokens outside of blocks: %d", loose)
	}
	return tw.String()
}

func blockText(b *layout.Block, doc *layout.Document) string {
	var out []byte
	for _, t := range b.Tokens(doc) {
		out = append(out, t.Text...)
	}
	return string(out)
}

func looseTokens(doc *layout.Document) (count int) {
	for _, t := range doc.All() {
		if t.BlockPtr == layout.NoBlock && !t.IsStructural() {
			count++
		}
	}
	return count
}
