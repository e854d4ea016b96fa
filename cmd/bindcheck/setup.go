package main

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/profile"
)

// defaultSize is the target edge used when neither flags nor a texture
// file fix the dispatch size.
const defaultSize = 256

// setup is the resolved input of a verification draw.
type setup struct {
	profile *profile.Profile
	ref     bindcheck.Reference
	answer  *image.NRGBA
	texture *bindcheck.ImageTexture
}

// loadReference resolves the --profile reference, or the default one.
func loadReference() (*profile.Profile, bindcheck.Reference, error) {
	p := profile.Default()
	if profilePath != "" {
		var err error
		if p, err = profile.Load(profilePath); err != nil {
			return nil, bindcheck.Reference{}, err
		}
	}
	ref, err := p.Reference()
	if err != nil {
		return nil, bindcheck.Reference{}, err
	}
	return p, ref, nil
}

// loadSetup resolves the reference profile and the bound texture. A profile
// without a texture path gets a generated gradient of width x height, zero
// selecting defaultSize. A texture file fixes the dispatch size to its own.
func loadSetup(width, height int) (*setup, error) {
	p, ref, err := loadReference()
	if err != nil {
		return nil, err
	}
	sampler, err := p.Sampler()
	if err != nil {
		return nil, err
	}

	var src image.Image
	if p.Texture.Path != "" {
		if src, err = bindcheck.LoadImage(p.Texture.Path); err != nil {
			return nil, err
		}
		width, height = src.Bounds().Dx(), src.Bounds().Dy()
	} else {
		if width <= 0 {
			width = defaultSize
		}
		if height <= 0 {
			height = defaultSize
		}
		src = answerTexture(width, height)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", bindcheck.ErrInvalidSize, width, height)
	}

	tex := bindcheck.NewImageTexture(src, sampler)
	return &setup{
		profile: p,
		ref:     ref,
		answer:  tex.Image(),
		texture: tex,
	}, nil
}

// Width returns the dispatch width, which is the texture width.
func (s *setup) Width() int { return s.answer.Bounds().Dx() }

// Height returns the dispatch height.
func (s *setup) Height() int { return s.answer.Bounds().Dy() }

// answerTexture generates an opaque gradient that never collides with a
// diagnostic color: its blue channel is fixed off the palette levels.
func answerTexture(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 32,
				A: 255,
			})
		}
	}
	return img
}

// printer formats counts with digit grouping.
var printer = message.NewPrinter(language.English)

// printSummary writes the per-class pixel counts of s.
func printSummary(w io.Writer, s *bindcheck.Summary) {
	total := s.Width * s.Height
	printer.Fprintf(w, "%dx%d, %d pixels\n", s.Width, s.Height, total)
	printer.Fprintf(w, "  %-14s %10d\n", "pass", s.Counts.Of(bindcheck.DiagnosticNone))
	for _, d := range bindcheck.Diagnostics {
		n := s.Counts.Of(d)
		if n == 0 {
			continue
		}
		p := s.First[d]
		printer.Fprintf(w, "  %-14s %10d  first at (%d, %d)\n", d, n, p.X, p.Y)
	}
	if s.Clean() {
		fmt.Fprintln(w, "clean")
	}
}
