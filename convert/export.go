package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"altodoc/config"
	"altodoc/content"
	"altodoc/layout"
)

type (
	blockDump struct {
		layout.Block `yaml:",inline"`
		Text         string `yaml:"text"`
	}

	pageDump struct {
		layout.Page `yaml:",inline"`
		Blocks      []blockDump `yaml:"blocks,omitempty"`
	}

	documentDump struct {
		ID     string                 `yaml:"id"`
		Source string                 `yaml:"source"`
		Pages  []pageDump             `yaml:"pages"`
		Images []layout.GraphicObject `yaml:"images,omitempty"`
	}

	tokensDump struct {
		ID     string         `yaml:"id"`
		Source string         `yaml:"source"`
		Tokens []layout.Token `yaml:"tokens"`
	}
)

// export writes reconstructed document in requested format.
func export(c *content.Content, format config.OutputFmt, w io.Writer) error {
	switch format {
	case config.OutputFmtText:
		return exportText(c, w)
	case config.OutputFmtYaml:
		return exportYAML(w, buildDocumentDump(c))
	case config.OutputFmtTokens:
		return exportYAML(w, tokensDump{ID: c.RefID.String(), Source: c.SrcName, Tokens: c.Document.Tokens})
	}
	return fmt.Errorf("unsupported output format %s", format)
}

func exportYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("unable to encode document: %w", err)
	}
	return enc.Close()
}

func blockText(b *layout.Block, doc *layout.Document) string {
	var sb strings.Builder
	for _, t := range b.Tokens(doc) {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func buildDocumentDump(c *content.Content) documentDump {
	doc := c.Document
	dump := documentDump{
		ID:     c.RefID.String(),
		Source: c.SrcName,
		Pages:  make([]pageDump, 0, len(doc.Pages)),
		Images: doc.Images,
	}
	for _, p := range doc.Pages {
		pd := pageDump{Page: *p, Blocks: make([]blockDump, 0, len(p.Blocks))}
		for _, b := range p.Blocks {
			pd.Blocks = append(pd.Blocks, blockDump{Block: *b, Text: blockText(b, doc)})
		}
		dump.Pages = append(dump.Pages, pd)
	}
	return dump
}

// exportText writes concatenated token text. When sentence splitting is on
// every block is unwrapped and written one sentence per line, blocks are
// separated by empty line.
func exportText(c *content.Content, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if c.Splitter == nil {
		if _, err := bw.WriteString(c.Document.Text()); err != nil {
			return err
		}
		return bw.Flush()
	}

	first := true
	for _, p := range c.Document.Pages {
		for _, b := range p.Blocks {
			text := unwrapLines(blockText(b, c.Document))
			if len(text) == 0 {
				continue
			}
			if !first {
				bw.WriteByte('\n')
			}
			first = false
			for sentence := range c.Splitter.Sentences(text) {
				if sentence = strings.TrimSpace(sentence); len(sentence) > 0 {
					bw.WriteString(sentence)
					bw.WriteByte('\n')
				}
			}
		}
	}
	return bw.Flush()
}

// unwrapLines joins block lines. Line ending with hyphen is glued to the next
// one as the hyphen most likely breaks a word.
func unwrapLines(in string) string {
	lines := strings.Split(in, "\n")
	var sb strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if sb.Len() > 0 {
			if prev := sb.String(); !strings.HasSuffix(prev, "-") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(line)
	}
	return sb.String()
}
