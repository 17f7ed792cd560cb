// Package images inspects illustration files referenced from ALTO documents.
package images

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/webp"
)

// Info describes image file as it is stored on disk.
type Info struct {
	Format    string
	Width     int
	Height    int
	Grayscale bool
}

// Probe decodes image file and reports its pixel size. Raster images are
// EXIF oriented so size matches what would be displayed. For SVG intrinsic
// viewBox size is reported and nothing is rendered.
func Probe(path string) (Info, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return probeSVG(path)
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		// webp and friends are not known to imaging by name, image.Decode
		// still handles them
		format = -1
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Info{}, fmt.Errorf("unable to decode image: %w", err)
	}

	info := Info{
		Format:    strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		Grayscale: IsGrayscale(img),
	}
	if format >= 0 {
		info.Format = strings.ToLower(format.String())
	}
	return info, nil
}

func probeSVG(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f, oksvg.IgnoreErrorMode)
	if err != nil {
		return Info{}, fmt.Errorf("unable to parse svg: %w", err)
	}
	return Info{
		Format: "svg",
		Width:  int(math.Ceil(icon.ViewBox.W)),
		Height: int(math.Ceil(icon.ViewBox.H)),
	}, nil
}
