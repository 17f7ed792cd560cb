// Package alto rebuilds positional document model (see package layout) from
// stream of ALTO XML events as produced by pdfalto or OCR engines.
//
// Handler is an explicit state machine which consumes open, close and text
// events one at a time. It does not care where events come from: Replay
// walks already parsed etree document, Stream decodes XML on the fly.
package alto

import "errors"

// Element names handled by the reconstruction.
const (
	TagPage         = "Page"
	TagPrintSpace   = "PrintSpace"
	TagTextBlock    = "TextBlock"
	TagTextLine     = "TextLine"
	TagString       = "String"
	TagTextStyle    = "TextStyle"
	TagIllustration = "Illustration"
	TagDescription  = "Description"
)

// ErrUnknownStyle is reported in strict mode when run references style which
// was never defined.
var ErrUnknownStyle = errors.New("unknown text style")

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list of an element.
type Attrs []Attr

// Get returns value of the first attribute with given name.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

//go:generate go tool go-enum --names --nocase

// StylePolicy tells what to do with runs referencing undefined styles.
/*
ENUM(
lenient // substitutes default style and logs a warning
strict  // stops processing with ErrUnknownStyle
)
*/
type StylePolicy int
