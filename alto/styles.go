package alto

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// TextStyle is a resolved typographic style. Registry hands out copies, so
// modifying returned value never affects other runs.
type TextStyle struct {
	FontName    string
	FontSize    float64
	FontColor   string
	Bold        bool
	Italic      bool
	Subscript   bool
	Superscript bool
}

// Rotated returns style compensated for rotated runs: pdfalto reports font
// size of rotated text doubled.
func (s TextStyle) Rotated() TextStyle {
	s.FontSize /= 2
	return s
}

// TokenFont returns font name as it is stored on tokens.
func (s TextStyle) TokenFont() string {
	if len(s.FontName) == 0 {
		return "default"
	}
	return strings.ToLower(s.FontName)
}

// ParseTextStyle builds style from TextStyle element attributes. Empty names
// and values are skipped. Returned id is empty when element has no ID.
func ParseTextStyle(attrs Attrs, log *zap.Logger) (string, TextStyle) {
	var (
		id    string
		style TextStyle
	)
	for _, a := range attrs {
		if len(strings.TrimSpace(a.Name)) == 0 || len(strings.TrimSpace(a.Value)) == 0 {
			continue
		}
		switch a.Name {
		case "ID":
			id = a.Value
		case "FONTFAMILY":
			style.FontName = a.Value
		case "FONTSIZE":
			style.FontSize = numberOrZero(a.Name, a.Value, log)
		case "FONTSTYLE":
			v := strings.ToLower(a.Value)
			style.Subscript = strings.Contains(v, "subscript")
			style.Superscript = strings.Contains(v, "superscript")
			style.Bold = strings.Contains(v, "bold")
			// "italics" is covered as well
			style.Italic = strings.Contains(v, "italic")
		case "FONTCOLOR":
			style.FontColor = a.Value
		}
	}
	return id, style
}

// StyleRegistry maps style ids to styles.
type StyleRegistry struct {
	styles map[string]TextStyle
}

func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{styles: make(map[string]TextStyle)}
}

// Define stores style under id, replacing previous definition.
func (r *StyleRegistry) Define(id string, style TextStyle) {
	r.styles[id] = style
}

// DefineFrom parses TextStyle element attributes and stores result. Elements
// without ID are ignored.
func (r *StyleRegistry) DefineFrom(attrs Attrs, log *zap.Logger) (string, bool) {
	id, style := ParseTextStyle(attrs, log)
	if len(id) == 0 {
		log.Debug("Text style without ID, ignoring")
		return "", false
	}
	r.Define(id, style)
	return id, true
}

// Resolve returns copy of style for reference. Reference is tried as a whole
// first, ALTO allows several space separated ids in STYLEREFS so each of them
// is tried next in order.
func (r *StyleRegistry) Resolve(ref string) (TextStyle, error) {
	if style, ok := r.styles[ref]; ok {
		return style, nil
	}
	for _, id := range strings.Fields(ref) {
		if style, ok := r.styles[id]; ok {
			return style, nil
		}
	}
	return TextStyle{}, fmt.Errorf("%w: %q", ErrUnknownStyle, ref)
}

func (r *StyleRegistry) Len() int {
	return len(r.styles)
}
