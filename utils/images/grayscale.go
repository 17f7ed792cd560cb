package images

import (
	"image"
	"image/color"
)

// IsGrayscale reports whether illustration carries no color, so every pixel
// has equal red, green and blue channels.
func IsGrayscale(img image.Image) bool {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	case *image.NRGBA:
		// imaging always hands back NRGBA, walk its buffer directly
		return grayNRGBA(m)
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !grayColor(img.At(x, y)) {
				return false
			}
		}
	}
	return true
}

func grayNRGBA(m *image.NRGBA) bool {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[m.PixOffset(b.Min.X, y):m.PixOffset(b.Max.X, y)]
		for i := 0; i+2 < len(row); i += 4 {
			if row[i] != row[i+1] || row[i+1] != row[i+2] {
				return false
			}
		}
	}
	return true
}

func grayColor(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == g && g == b
}
