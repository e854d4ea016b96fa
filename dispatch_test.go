package bindcheck_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"go.uber.org/goleak"

	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/scenario"
)

// gradient returns a w x h image whose every pixel is distinct within a row
// or column.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 5), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func newVerifier(t *testing.T, b bindcheck.Bindings, opts ...bindcheck.VerifierOption) *bindcheck.Verifier {
	t.Helper()
	v, err := bindcheck.NewVerifier(b, opts...)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	t.Cleanup(v.Close)
	return v
}

// =============================================================================
// Dispatch
// =============================================================================

func TestDispatch_CleanReproducesTexture(t *testing.T) {
	defer goleak.VerifyNone(t)

	const w, h = 80, 70 // spans several tiles with ragged edges
	ref := bindcheck.DefaultReference()
	answer := gradient(w, h)
	tex := bindcheck.NewImageTexture(answer, bindcheck.Sampler{})

	v, err := bindcheck.NewVerifier(ref.Bindings(tex), bindcheck.WithWorkers(3))
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	defer v.Close()

	out, err := v.Dispatch(context.Background(), w, h, scenario.Quad(ref))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if p, differ := bindcheck.FirstMismatch(out, answer); differ {
		t.Fatalf("clean draw differs from texture at %v: got %v want %v",
			p, out.At(p.X, p.Y), answer.At(p.X, p.Y))
	}
}

func TestDispatch_EveryFault(t *testing.T) {
	const w, h = 32, 24
	ref := bindcheck.DefaultReference()
	answer := gradient(w, h)
	tex := bindcheck.NewImageTexture(answer, bindcheck.Sampler{})

	for _, sc := range scenario.All(ref, tex) {
		t.Run(sc.Name(), func(t *testing.T) {
			v := newVerifier(t, sc.Bindings, bindcheck.WithWorkers(2))
			out, err := v.Dispatch(context.Background(), w, h, sc.Source)
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}

			s := bindcheck.Summarize(out)
			want := sc.Expect()
			if !want.Failed() {
				if !bindcheck.SameImage(out, answer) {
					t.Error("clean draw differs from the texture")
				}
				return
			}
			if got := s.Counts.Of(want); got != w*h {
				t.Errorf("%v pixels = %d, want %d (present: %v)", want, got, w*h, s.Present())
			}
			if bindcheck.SameImage(out, answer) {
				t.Error("faulty draw equals the texture")
			}
		})
	}
}

func TestDispatch_Uncovered(t *testing.T) {
	ref := bindcheck.DefaultReference()
	v := newVerifier(t, ref.Bindings(bindcheck.SolidTexture(bindcheck.RGB(1, 1, 1))),
		bindcheck.WithClearColor(bindcheck.RGB(0, 0, 0)))

	quad := scenario.Quad(ref)
	leftOnly := func(x, y, w, h int) (bindcheck.Invocation, bool) {
		if x >= w/2 {
			return bindcheck.Invocation{}, false
		}
		return quad(x, y, w, h)
	}

	out, err := v.Dispatch(context.Background(), 8, 4, leftOnly)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	for y := range 4 {
		for x := range 8 {
			want := white
			if x >= 4 {
				want = black
			}
			if got := out.PixelAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDispatch_InvalidSize(t *testing.T) {
	ref := bindcheck.DefaultReference()
	v := newVerifier(t, ref.Bindings(bindcheck.SolidTexture{}))

	for _, sz := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		_, err := v.Dispatch(context.Background(), sz[0], sz[1], scenario.Quad(ref))
		if !errors.Is(err, bindcheck.ErrInvalidSize) {
			t.Errorf("Dispatch(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestDispatch_Cancelled(t *testing.T) {
	ref := bindcheck.DefaultReference()
	v := newVerifier(t, ref.Bindings(bindcheck.SolidTexture{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Dispatch(ctx, 256, 256, scenario.Quad(ref))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Dispatch() error = %v, want context.Canceled", err)
	}
}

func TestDispatch_AfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	ref := bindcheck.DefaultReference()
	v, err := bindcheck.NewVerifier(ref.Bindings(bindcheck.SolidTexture{}))
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	if _, err := v.Dispatch(context.Background(), 4, 4, scenario.Quad(ref)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	v.Close()
	v.Close()

	if _, err := v.Dispatch(context.Background(), 4, 4, scenario.Quad(ref)); !errors.Is(err, bindcheck.ErrClosed) {
		t.Errorf("Dispatch() after Close error = %v, want ErrClosed", err)
	}
	if res := v.Evaluate(scenario.Consistent(scenario.Position(0, 0, 4, 4), ref.Transform)); !res.Passed() {
		t.Errorf("Evaluate() after Close failed at %q", res.Check)
	}
}

// =============================================================================
// NewVerifier preconditions
// =============================================================================

func TestNewVerifier_Preconditions(t *testing.T) {
	ref := bindcheck.DefaultReference()

	noTexture := ref.Bindings(nil)
	if _, err := bindcheck.NewVerifier(noTexture); !errors.Is(err, bindcheck.ErrNoTexture) {
		t.Errorf("missing texture: error = %v, want ErrNoTexture", err)
	}

	short := ref.Bindings(bindcheck.SolidTexture{})
	short.Storage = short.Storage[:7]
	if _, err := bindcheck.NewVerifier(short); !errors.Is(err, bindcheck.ErrStorageTooSmall) {
		t.Errorf("short storage: error = %v, want ErrStorageTooSmall", err)
	}

	bad := ref
	bad.Material.Roughness = float32(0) / zero()
	if _, err := bindcheck.NewVerifier(ref.Bindings(bindcheck.SolidTexture{}), bindcheck.WithReference(bad)); !errors.Is(err, bindcheck.ErrInvalidReference) {
		t.Errorf("NaN reference: error = %v, want ErrInvalidReference", err)
	}
}

// zero defeats constant folding of 0/0.
func zero() float32 { return 0 }
