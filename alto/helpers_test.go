package alto

import (
	"context"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"altodoc/layout"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// buildFromString runs both event sources over the same input and makes
// sure they agree before returning result.
func buildFromString(t *testing.T, src string, opts Options) *layout.Document {
	t.Helper()
	log := zaptest.NewLogger(t)

	doc, err := ReadDocument(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	replayed, err := Build(context.Background(), doc, opts, log)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	streamed, err := BuildStream(context.Background(), strings.NewReader(src), Options{
		Tokenizer:    opts.Tokenizer,
		Normalizer:   opts.Normalizer,
		UnknownStyle: opts.UnknownStyle,
		DefaultStyle: opts.DefaultStyle,
	}, log)
	if err != nil {
		t.Fatalf("BuildStream() error = %v", err)
	}
	if !opts.PreloadStyles && replayed.Text() != streamed.Text() {
		t.Fatalf("Replay and Stream disagree:\n%q\n%q", replayed.Text(), streamed.Text())
	}
	checkInvariants(t, replayed)
	return replayed
}

// checkInvariants verifies structural properties every document must have.
func checkInvariants(t *testing.T, doc *layout.Document) {
	t.Helper()

	offset := 0
	for i, tok := range doc.Tokens {
		if tok.Offset != offset {
			t.Errorf("token %d (%q) offset = %d, want %d", i, tok.Text, tok.Offset, offset)
		}
		offset += tok.Len()
	}

	prevEnd := 0
	for i, b := range doc.Blocks {
		if b.Start >= b.End {
			t.Errorf("block %d is degenerate: [%d, %d)", i, b.Start, b.End)
		}
		if b.Start < prevEnd {
			t.Errorf("block %d overlaps previous one: starts at %d, previous ended at %d", i, b.Start, prevEnd)
		}
		prevEnd = b.End
		for j := b.Start; j < b.End; j++ {
			if doc.Tokens[j].BlockPtr != i {
				t.Errorf("token %d (%q) block pointer = %d, want %d", j, doc.Tokens[j].Text, doc.Tokens[j].BlockPtr, i)
			}
		}
	}

	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			if b.Page != p.Number {
				t.Errorf("block [%d, %d) on page %d references page %d", b.Start, b.End, p.Number, b.Page)
			}
		}
	}
}

func texts(tokens []layout.Token) []string {
	result := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		result = append(result, tok.Text)
	}
	return result
}

func findToken(t *testing.T, doc *layout.Document, text string) layout.Token {
	t.Helper()
	for _, tok := range doc.Tokens {
		if tok.Text == text {
			return tok
		}
	}
	t.Fatalf("token %q not found in %q", text, texts(doc.Tokens))
	return layout.Token{}
}

// page wraps body into minimal ALTO document with single page.
func page(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
  <Layout>
    <Page ID="Page1" WIDTH="600" HEIGHT="800">
      <PrintSpace>` + body + `</PrintSpace>
    </Page>
  </Layout>
</alto>`
}
