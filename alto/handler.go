package alto

import (
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"altodoc/content/text"
	"altodoc/layout"
)

// Options control reconstruction.
type Options struct {
	// Tokenizer splits run text into sub-tokens, text.NewTokenizer("") if nil.
	Tokenizer text.Tokenizer
	// Normalizer cleans run text before tokenization, text.NewNormalizer() if nil.
	Normalizer text.Normalizer
	// UnknownStyle selects behavior for runs referencing undefined styles.
	UnknownStyle StylePolicy
	// DefaultStyle is used for unresolved runs in lenient mode.
	DefaultStyle TextStyle
	// PreloadStyles makes Build collect all style definitions before
	// replaying the document, so styles may be referenced before they are
	// defined.
	PreloadStyles bool
}

// pendingRun is a String element between its open and close events.
type pendingRun struct {
	content    string
	hasContent bool
	styleRef   string
}

// Handler is a reconstruction session for a single document. It is not safe
// for concurrent use and must not be reused for another document.
type Handler struct {
	opts Options
	log  *zap.Logger

	styles   *StyleRegistry
	geometry geometryTracker
	splitter subTokenizer
	asm      *assembler
	images   imageRegistry

	rotated     bool
	accumulator strings.Builder
	run         *pendingRun
	image       Attrs
	inImage     bool
	finished    bool
}

// NewHandler creates reconstruction session.
func NewHandler(opts Options, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = text.NewTokenizer("")
	}
	if opts.Normalizer == nil {
		opts.Normalizer = text.NewNormalizer()
	}
	return &Handler{
		opts:     opts,
		log:      log,
		styles:   NewStyleRegistry(),
		geometry: geometryTracker{log: log},
		splitter: subTokenizer{tokenizer: opts.Tokenizer, normalizer: opts.Normalizer, log: log},
		asm:      newAssembler(log),
		images:   imageRegistry{log: log},
	}
}

// Styles gives access to style registry, for example to preload definitions.
func (h *Handler) Styles() *StyleRegistry {
	return h.styles
}

// OnOpen handles element start.
func (h *Handler) OnOpen(tag string, attrs Attrs) error {
	if h.finished {
		return fmt.Errorf("event %q after end of document", tag)
	}
	switch tag {
	case TagPage:
		var width, height float64
		if v, ok := attrs.Get("WIDTH"); ok {
			width = numberOrZero("WIDTH", v, h.log)
		}
		if v, ok := attrs.Get("HEIGHT"); ok {
			height = numberOrZero("HEIGHT", v, h.log)
		}
		h.asm.openPage(width, height)
	case TagPrintSpace:
		h.geometry.UpdateFrom(attrs)
	case TagTextBlock:
		h.asm.openBlock()
	case TagString:
		h.openRun(attrs)
	case TagTextStyle:
		h.styles.DefineFrom(attrs, h.log)
	case TagIllustration:
		h.image, h.inImage = attrs, true
	}
	return nil
}

// OnText handles character data. Text is accumulated until the enclosing run
// is closed.
func (h *Handler) OnText(chars string) {
	h.accumulator.WriteString(chars)
}

// OnClose handles element end.
func (h *Handler) OnClose(tag string) error {
	if h.finished {
		return fmt.Errorf("event %q after end of document", tag)
	}
	switch tag {
	case TagTextLine:
		h.accumulator.Reset()
		h.asm.closeLine()
	case TagDescription:
		h.accumulator.Reset()
	case TagString:
		err := h.closeRun()
		h.accumulator.Reset()
		return err
	case TagTextBlock:
		h.asm.closeBlock()
	case TagIllustration:
		h.closeImage()
	case TagPage:
		h.asm.closePage()
	}
	return nil
}

// EndDocument attaches collected images to the document and returns it. No
// events are accepted afterwards.
func (h *Handler) EndDocument() *layout.Document {
	if h.inImage {
		h.closeImage()
	}
	h.finished = true
	h.asm.doc.Images = h.images.all()
	return h.asm.doc
}

// Document returns the document under construction. Everything closed so far
// is well formed even when stream has not ended yet.
func (h *Handler) Document() *layout.Document {
	return h.asm.doc
}

// Tokens iterates over tokens produced so far.
func (h *Handler) Tokens() iter.Seq2[int, layout.Token] {
	return h.asm.doc.All()
}

func (h *Handler) openRun(attrs Attrs) {
	h.accumulator.Reset()
	run := &pendingRun{}
	for _, a := range attrs {
		switch a.Name {
		case "CONTENT":
			run.content, run.hasContent = a.Value, true
		case "STYLEREFS":
			run.styleRef = a.Value
		case "rotation":
			h.rotated = a.Value != "0"
		case "base":
			parseNumber(a.Name, a.Value, h.log)
		case "HPOS":
			h.geometry.UpdateX(a.Value)
		case "VPOS":
			h.geometry.UpdateY(a.Value)
		case "WIDTH":
			h.geometry.UpdateWidth(a.Value)
		case "HEIGHT":
			h.geometry.UpdateHeight(a.Value)
		}
	}
	h.run = run
}

func (h *Handler) closeRun() error {
	run := h.run
	h.run = nil
	if run == nil {
		h.log.Warn("Run closed while none is open")
		return nil
	}
	if !run.hasContent {
		run.content = h.accumulator.String()
	}

	style, err := h.styles.Resolve(run.styleRef)
	if err != nil {
		if h.opts.UnknownStyle == StylePolicyStrict {
			return err
		}
		h.log.Warn("Run references unknown style, using default", zap.String("ref", run.styleRef), zap.Int("page", h.asm.pageNumber))
		style = h.opts.DefaultStyle
	}

	if h.asm.block == nil {
		h.log.Warn("Run outside of text block", zap.String("content", run.content), zap.Int("page", h.asm.pageNumber))
	}

	tokens, nonEmpty := h.splitter.Split(textRun{
		content: run.content,
		style:   style,
		rotated: h.rotated,
		box:     h.geometry.Current(),
		page:    h.asm.pageNumber,
	})
	h.asm.addRun(tokens, nonEmpty)
	return nil
}

// closeImage finishes open block, if any, so image acts as block terminator
// and registers the image at the resulting position.
func (h *Handler) closeImage() {
	attrs := h.image
	h.image, h.inImage = nil, false
	h.asm.finalizeBlock()
	g := h.images.register(attrs, h.asm.pageNumber, h.asm.count())
	h.log.Debug("Image registered", zap.String("file", g.FilePath), zap.Stringer("type", g.Type), zap.Stringer("box", g.Box), zap.Int("anchor", g.Start))
}
