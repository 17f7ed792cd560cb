package alto

import (
	"go.uber.org/zap"

	"altodoc/layout"
)

// imageRegistry collects graphic objects found on pages.
type imageRegistry struct {
	images []layout.GraphicObject
	log    *zap.Logger
}

// register builds graphic object from Illustration attributes and anchors it
// at current token count. Explicit TYPE wins over type guessed from FILEID.
func (r *imageRegistry) register(attrs Attrs, page, count int) layout.GraphicObject {
	var (
		g          = layout.GraphicObject{Page: page, Start: count, End: count}
		x, y, w, h float64
		explicit   bool
	)
	for _, a := range attrs {
		switch a.Name {
		case "FILEID":
			g.FilePath = a.Value
			if !explicit {
				g.Type = layout.GraphicTypeFromPath(a.Value)
			}
		case "TYPE":
			g.Type = layout.GraphicTypeFromName(a.Value)
			explicit = true
		case "HPOS":
			x = numberOrZero(a.Name, a.Value, r.log)
		case "VPOS":
			y = numberOrZero(a.Name, a.Value, r.log)
		case "WIDTH":
			w = numberOrZero(a.Name, a.Value, r.log)
		case "HEIGHT":
			h = numberOrZero(a.Name, a.Value, r.log)
		}
	}
	g.Box = layout.BoxFromPointAndDimensions(page, x, y, w, h)
	r.images = append(r.images, g)
	return g
}

func (r *imageRegistry) all() []layout.GraphicObject {
	return r.images
}
