package layout

import "strings"

//go:generate go tool go-enum --marshal --noprefix --prefix=Graphic

// GraphicObjectType distinguishes vector drawings from raster images.
// ENUM(unknown, bitmap, vector)
type GraphicObjectType int

// GraphicTypeFromPath infers graphic type from file path or resource id.
func GraphicTypeFromPath(path string) GraphicObjectType {
	if strings.Contains(path, ".svg") {
		return GraphicVector
	}
	return GraphicBitmap
}

// GraphicTypeFromName maps explicit type attribute value.
func GraphicTypeFromName(name string) GraphicObjectType {
	if name == "svg" {
		return GraphicVector
	}
	return GraphicBitmap
}

// GraphicObject is an embedded image anchored into the token stream. Start and
// End are both token counts at the moment the image was processed, so the
// anchor marks a position rather than a span.
type GraphicObject struct {
	FilePath string            `yaml:"file,omitempty"`
	Type     GraphicObjectType `yaml:"type"`
	Box      BoundingBox       `yaml:"box"`
	Page     int               `yaml:"page"`
	Start    int               `yaml:"start"`
	End      int               `yaml:"end"`

	// filled only when image file was found and probed
	Format      string `yaml:"format,omitempty"`
	PixelWidth  int    `yaml:"pixel_width,omitempty"`
	PixelHeight int    `yaml:"pixel_height,omitempty"`
	Grayscale   bool   `yaml:"grayscale,omitempty"`
}
