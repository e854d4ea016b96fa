package bindcheck

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

// Texture is a bound image and sampler pair. Sample takes a normalized
// texture coordinate with (0,0) at the top-left corner.
type Texture interface {
	Sample(st Vec2) RGBA
}

// FilterMode selects how texels are combined.
type FilterMode uint8

const (
	// FilterNearest returns the texel containing the coordinate.
	FilterNearest FilterMode = iota
	// FilterLinear blends the four nearest texel centers.
	FilterLinear
)

// AddressMode selects how out-of-range coordinates are resolved.
type AddressMode uint8

const (
	// AddressClampToEdge clamps to the border texel.
	AddressClampToEdge AddressMode = iota
	// AddressRepeat wraps around.
	AddressRepeat
	// AddressMirrorRepeat wraps around, flipping every other period.
	AddressMirrorRepeat
)

// Sampler configures texture lookups.
type Sampler struct {
	Filter   FilterMode
	AddressU AddressMode
	AddressV AddressMode
}

// ImageTexture samples an in-memory image.
type ImageTexture struct {
	img     *image.NRGBA
	sampler Sampler
}

var _ Texture = (*ImageTexture)(nil)

// NewImageTexture copies img into a non-premultiplied RGBA texture.
func NewImageTexture(img image.Image, s Sampler) *ImageTexture {
	b := img.Bounds()
	dst, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return &ImageTexture{img: dst, sampler: s}
}

// Image returns the texture contents.
func (t *ImageTexture) Image() *image.NRGBA {
	return t.img
}

// Sample implements Texture.
func (t *ImageTexture) Sample(st Vec2) RGBA {
	w, h := t.img.Rect.Dx(), t.img.Rect.Dy()
	if w == 0 || h == 0 {
		return RGBA{}
	}

	x := st.X() * float32(w)
	y := st.Y() * float32(h)

	if t.sampler.Filter == FilterNearest {
		return t.texel(
			address(int(math32.Floor(x)), w, t.sampler.AddressU),
			address(int(math32.Floor(y)), h, t.sampler.AddressV),
		)
	}

	x -= 0.5
	y -= 0.5
	x0, y0 := math32.Floor(x), math32.Floor(y)
	fx, fy := x-x0, y-y0

	ix0 := address(int(x0), w, t.sampler.AddressU)
	ix1 := address(int(x0)+1, w, t.sampler.AddressU)
	iy0 := address(int(y0), h, t.sampler.AddressV)
	iy1 := address(int(y0)+1, h, t.sampler.AddressV)

	top := t.texel(ix0, iy0).Lerp(t.texel(ix1, iy0), fx)
	bottom := t.texel(ix0, iy1).Lerp(t.texel(ix1, iy1), fx)
	return top.Lerp(bottom, fy)
}

func (t *ImageTexture) texel(x, y int) RGBA {
	return FromColor(t.img.NRGBAAt(x, y))
}

// address maps an integer texel index into [0, n).
func address(i, n int, mode AddressMode) int {
	switch mode {
	case AddressRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case AddressMirrorRepeat:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		return min(max(i, 0), n-1)
	}
}

// SolidTexture is a texture of one color everywhere.
type SolidTexture RGBA

var _ Texture = SolidTexture{}

// Sample implements Texture.
func (s SolidTexture) Sample(Vec2) RGBA {
	return RGBA(s)
}
