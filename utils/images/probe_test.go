package images

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()

	colored := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	colored.Set(1, 1, color.NRGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(dir, "color.png"), colored)

	gray := image.NewGray(image.Rect(0, 0, 8, 4))
	writePNG(t, filepath.Join(dir, "gray.png"), gray)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.5 50"><rect width="100" height="50"/></svg>`
	if err := os.WriteFile(filepath.Join(dir, "drawing.svg"), []byte(svg), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		file string
		want Info
	}{
		{"color.png", Info{Format: "png", Width: 30, Height: 20}},
		{"gray.png", Info{Format: "png", Width: 8, Height: 4, Grayscale: true}},
		{"drawing.svg", Info{Format: "svg", Width: 101, Height: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := Probe(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProbe_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Probe(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(bad); err == nil {
		t.Error("expected error for broken image")
	}
	if _, err := Probe(filepath.Join(dir, "missing.svg")); err == nil {
		t.Error("expected error for missing svg")
	}
}

func TestIsGrayscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := range 2 {
		for y := range 2 {
			img.Set(x, y, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}
	if !IsGrayscale(img) {
		t.Error("uniform gray pixels must be grayscale")
	}
	img.Set(0, 0, color.NRGBA{R: 10, G: 11, B: 10, A: 255})
	if IsGrayscale(img) {
		t.Error("colored pixel must not be grayscale")
	}
	// colored pixel lies outside of the sub image
	if sub := img.SubImage(image.Rect(1, 0, 2, 2)); !IsGrayscale(sub) {
		t.Error("gray sub image must be grayscale")
	}

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.RGBA{R: 200, G: 0, B: 0, A: 255})
	if IsGrayscale(rgba) {
		t.Error("red RGBA pixel must not be grayscale")
	}
	if !IsGrayscale(image.NewGray(image.Rect(0, 0, 1, 1))) {
		t.Error("Gray image must be grayscale")
	}
}
