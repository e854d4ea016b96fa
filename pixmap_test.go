package bindcheck

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestNewPixmap(t *testing.T) {
	pm := NewPixmap(7, 3)
	if pm.Width() != 7 || pm.Height() != 3 {
		t.Errorf("size = %dx%d, want 7x3", pm.Width(), pm.Height())
	}
	if len(pm.Data()) != 7*3*4 {
		t.Errorf("len(Data()) = %d, want %d", len(pm.Data()), 7*3*4)
	}
	if pm.Stride() != 28 {
		t.Errorf("Stride() = %d, want 28", pm.Stride())
	}
	if got := pm.PixelAt(3, 1); got != (color.NRGBA{}) {
		t.Errorf("new pixmap pixel = %v, want transparent", got)
	}
}

func TestPixmap_SetPixel(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(1, 2, Gray(0.75))

	if got, want := pm.PixelAt(1, 2), (color.NRGBA{191, 191, 191, 255}); got != want {
		t.Errorf("PixelAt(1,2) = %v, want %v", got, want)
	}

	// Out of bounds is ignored on write and transparent on read.
	pm.SetPixel(-1, 0, RGB(1, 0, 0))
	pm.SetPixel(4, 0, RGB(1, 0, 0))
	if got := pm.PixelAt(4, 0); got != (color.NRGBA{}) {
		t.Errorf("PixelAt(4,0) = %v, want zero", got)
	}
}

// filledPixmap returns a w x h pixmap holding c everywhere.
func filledPixmap(w, h int, c RGBA) *Pixmap {
	pm := NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetPixel(x, y, c)
		}
	}
	return pm
}

func TestPixmap_ImageInterface(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(1, 1, RGB(1, 1, 0))

	var img image.Image = pm
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	if img.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBAModel")
	}
	if got := img.At(1, 1); got != (color.NRGBA{255, 255, 0, 255}) {
		t.Errorf("At(1,1) = %v", got)
	}
}

func TestPixmap_ToImageIsCopy(t *testing.T) {
	pm := NewPixmap(2, 1)
	img := pm.ToImage()
	img.Pix[0] = 99
	if pm.Data()[0] != 0 {
		t.Error("ToImage() aliases pixmap data")
	}
}

func TestPixmap_SavePNG(t *testing.T) {
	pm := filledPixmap(3, 3, DiagnosticReflectance.Color())
	path := filepath.Join(t.TempDir(), "out.png")

	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if !SameImage(img, pm) {
		t.Error("PNG round trip changed pixels")
	}

	if err := pm.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG() into a missing directory succeeded")
	}
}
