package alto

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"altodoc/layout"
)

// EventHandler consumes document events in document order.
type EventHandler interface {
	OnOpen(tag string, attrs Attrs) error
	OnText(chars string)
	OnClose(tag string) error
}

// charsetReader converts legacy encodings declared in XML prolog. Input in
// UTF-16 or UTF-32 can only reach XML decoder already transcoded (BOM is
// handled by caller), so such labels are passed through.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch l := strings.ToLower(strings.TrimSpace(label)); {
	case strings.HasPrefix(l, "utf-16"), strings.HasPrefix(l, "utf16"),
		strings.HasPrefix(l, "utf-32"), strings.HasPrefix(l, "utf32"):
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// ReadDocument parses XML into etree document. Non UTF-8 encodings declared in
// XML prolog are converted.
func ReadDocument(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read ALTO: %w", err)
	}
	if doc.Root() == nil {
		return nil, errors.New("document has no root element")
	}
	return doc, nil
}

// Replay walks etree document depth first delivering events to handler.
func Replay(ctx context.Context, doc *etree.Document, h EventHandler) error {
	if doc == nil {
		return errors.New("nil document")
	}
	root := doc.Root()
	if root == nil {
		return errors.New("document has no root element")
	}
	return replayElement(ctx, root, h)
}

func replayElement(ctx context.Context, el *etree.Element, h EventHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := h.OnOpen(el.Tag, elementAttrs(el)); err != nil {
		return fmt.Errorf("%s: %w", el.Tag, err)
	}
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.Element:
			if err := replayElement(ctx, c, h); err != nil {
				return err
			}
		case *etree.CharData:
			h.OnText(c.Data)
		}
	}
	if err := h.OnClose(el.Tag); err != nil {
		return fmt.Errorf("%s: %w", el.Tag, err)
	}
	return nil
}

func elementAttrs(el *etree.Element) Attrs {
	if len(el.Attr) == 0 {
		return nil
	}
	attrs := make(Attrs, 0, len(el.Attr))
	for _, a := range el.Attr {
		attrs = append(attrs, Attr{Name: a.Key, Value: a.Value})
	}
	return attrs
}

// Stream decodes XML from r and delivers events to handler as they are read,
// without building the whole tree in memory.
func Stream(ctx context.Context, r io.Reader, h EventHandler) error {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	dec.Strict = false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("unable to decode ALTO: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(Attrs, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if err := h.OnOpen(t.Name.Local, attrs); err != nil {
				return fmt.Errorf("%s: %w", t.Name.Local, err)
			}
		case xml.EndElement:
			if err := h.OnClose(t.Name.Local); err != nil {
				return fmt.Errorf("%s: %w", t.Name.Local, err)
			}
		case xml.CharData:
			h.OnText(string(t))
		}
	}
}

// PreloadStyles defines every TextStyle element of the document in registry
// and returns number of definitions found.
func PreloadStyles(doc *etree.Document, reg *StyleRegistry, log *zap.Logger) int {
	count := 0
	for _, el := range doc.FindElements("//" + TagTextStyle) {
		if _, ok := reg.DefineFrom(elementAttrs(el), log); ok {
			count++
		}
	}
	return count
}

// Build reconstructs layout document from parsed ALTO.
func Build(ctx context.Context, doc *etree.Document, opts Options, log *zap.Logger) (*layout.Document, error) {
	h := NewHandler(opts, log)
	if opts.PreloadStyles {
		n := PreloadStyles(doc, h.Styles(), h.log)
		h.log.Debug("Text styles preloaded", zap.Int("count", n))
	}
	if err := Replay(ctx, doc, h); err != nil {
		return nil, err
	}
	return h.EndDocument(), nil
}

// BuildStream reconstructs layout document reading ALTO from r. Styles cannot
// be preloaded here and must be defined before use.
func BuildStream(ctx context.Context, r io.Reader, opts Options, log *zap.Logger) (*layout.Document, error) {
	h := NewHandler(opts, log)
	if opts.PreloadStyles {
		h.log.Debug("Style preloading is not possible when streaming, ignoring")
	}
	if err := Stream(ctx, r, h); err != nil {
		return nil, err
	}
	return h.EndDocument(), nil
}
