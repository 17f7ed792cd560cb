package layout

import (
	"fmt"
	"math"
)

// BoundingBox is a page relative rectangle in source coordinates.
type BoundingBox struct {
	Page   int     `yaml:"page"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BoxFromPointAndDimensions builds bounding box from its top-left corner and
// size. Negative values are taken by absolute value.
func BoxFromPointAndDimensions(page int, x, y, width, height float64) BoundingBox {
	return BoundingBox{
		Page:   page,
		X:      math.Abs(x),
		Y:      math.Abs(y),
		Width:  math.Abs(width),
		Height: math.Abs(height),
	}
}

func (b BoundingBox) X2() float64 { return b.X + b.Width }
func (b BoundingBox) Y2() float64 { return b.Y + b.Height }

func (b BoundingBox) Area() float64 { return b.Width * b.Height }

// Contains reports whether point lies inside the box (edges included).
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X2() && y >= b.Y && y <= b.Y2()
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%d:%.2f,%.2f,%.2f,%.2f", b.Page, b.X, b.Y, b.Width, b.Height)
}
