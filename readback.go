package bindcheck

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG render target dumps
	"os"

	_ "golang.org/x/image/bmp"  // BMP render target dumps
	_ "golang.org/x/image/tiff" // TIFF render target dumps
	_ "golang.org/x/image/webp" // lossless WebP captures
)

// Classify maps a read-back pixel to its diagnostic class. Palette colors
// are matched exactly after 8-bit quantization; any other color is reported
// as DiagnosticNone with ok == false, meaning a sampled texel or the clear
// color.
func Classify(c color.Color) (d Diagnostic, ok bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for _, cand := range Diagnostics {
		if cand.Color().NRGBA() == n {
			return cand, true
		}
	}
	return DiagnosticNone, false
}

// Summary is the classification of a whole read-back image.
type Summary struct {
	Width  int
	Height int

	// Counts tallies pixels per class. Pixels that match no palette color
	// are counted under DiagnosticNone.
	Counts Counts

	// First holds the first pixel, in row-major order, of every failure
	// class present in the image.
	First map[Diagnostic]image.Point
}

// Summarize classifies every pixel of img.
func Summarize(img image.Image) Summary {
	b := img.Bounds()
	s := Summary{
		Width:  b.Dx(),
		Height: b.Dy(),
		First:  make(map[Diagnostic]image.Point),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d, _ := Classify(img.At(x, y))
			s.Counts.ByDiagnostic[d]++
			if _, seen := s.First[d]; d.Failed() && !seen {
				s.First[d] = image.Pt(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	return s
}

// Clean reports whether no pixel carries a diagnostic color.
func (s *Summary) Clean() bool {
	return s.Counts.Failed() == 0
}

// Present returns the failure classes found in the image, in chain order.
func (s *Summary) Present() []Diagnostic {
	var out []Diagnostic
	for _, d := range Diagnostics {
		if s.Counts.Of(d) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// FirstMismatch compares two images pixel by pixel after 8-bit
// quantization and returns the first differing pixel, relative to the
// images' origins. Images of different sizes mismatch at (0, 0).
func FirstMismatch(got, want image.Image) (image.Point, bool) {
	gb, wb := got.Bounds(), want.Bounds()
	if gb.Dx() != wb.Dx() || gb.Dy() != wb.Dy() {
		return image.Point{}, true
	}
	for y := range gb.Dy() {
		for x := range gb.Dx() {
			g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			w := color.NRGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			if g != w {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}

// SameImage reports whether got and want hold the same 8-bit pixels.
func SameImage(got, want image.Image) bool {
	_, differ := FirstMismatch(got, want)
	return !differ
}

// LoadImage decodes a read-back dump. PNG, BMP, TIFF and WebP are
// recognized.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("bindcheck: decode %s: %w", path, err)
	}
	Logger().Debug("bindcheck: loaded image", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}
