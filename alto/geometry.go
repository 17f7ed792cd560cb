package alto

import (
	"math"

	"go.uber.org/zap"
)

// Geometry is position and size of the current run in page coordinates.
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// geometryTracker keeps last seen non-zero geometry. Layout tools only emit
// attributes when they change, so absent or zero values keep previous ones.
// State is never reset on block or page boundaries.
type geometryTracker struct {
	current Geometry
	log     *zap.Logger
}

func (g *geometryTracker) UpdateX(raw string)      { g.update(&g.current.X, "HPOS", raw) }
func (g *geometryTracker) UpdateY(raw string)      { g.update(&g.current.Y, "VPOS", raw) }
func (g *geometryTracker) UpdateWidth(raw string)  { g.update(&g.current.Width, "WIDTH", raw) }
func (g *geometryTracker) UpdateHeight(raw string) { g.update(&g.current.Height, "HEIGHT", raw) }

func (g *geometryTracker) update(dst *float64, name, raw string) {
	v, ok := parseNumber(name, raw, g.log)
	if !ok {
		return
	}
	if v != 0 && v != *dst {
		*dst = math.Abs(v)
	}
}

// UpdateFrom applies all geometry attributes found in attrs.
func (g *geometryTracker) UpdateFrom(attrs Attrs) {
	for _, a := range attrs {
		switch a.Name {
		case "HPOS":
			g.UpdateX(a.Value)
		case "VPOS":
			g.UpdateY(a.Value)
		case "WIDTH":
			g.UpdateWidth(a.Value)
		case "HEIGHT":
			g.UpdateHeight(a.Value)
		}
	}
}

func (g *geometryTracker) Current() Geometry {
	return g.current
}
