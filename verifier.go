package bindcheck

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/bindcheck/internal/parallel"
)

// InvocationSource produces the fragment input for output pixel (x, y) of a
// width x height dispatch. Returning false leaves the pixel uncovered, and
// it keeps the clear color.
type InvocationSource func(x, y, width, height int) (Invocation, bool)

// Verifier evaluates the assertion chain against one set of bindings.
//
// Evaluate is safe for concurrent use. Dispatch runs one invocation per
// output pixel on a worker pool; call Close to stop the pool.
type Verifier struct {
	ref      Reference
	bindings Bindings
	opts     verifierOptions

	mu     sync.Mutex
	pool   *parallel.Pool
	closed bool
}

// NewVerifier validates the reference and bindings and returns a verifier.
// Validation only covers host-side preconditions; a binding whose values
// differ from the reference is accepted and shows up as diagnostic colors.
func NewVerifier(b Bindings, opts ...VerifierOption) (*Verifier, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.reference.Validate(); err != nil {
		Logger().Warn("bindcheck: reference rejected", "err", err)
		return nil, err
	}
	if err := b.Validate(); err != nil {
		Logger().Warn("bindcheck: bindings rejected", "err", err)
		return nil, err
	}

	return &Verifier{ref: o.reference, bindings: b, opts: o}, nil
}

// Reference returns the reference constants in use.
func (v *Verifier) Reference() Reference {
	return v.ref
}

// Bindings returns the bindings under test.
func (v *Verifier) Bindings() Bindings {
	return v.bindings
}

// Evaluate runs the chain for a single invocation.
func (v *Verifier) Evaluate(inv Invocation) Result {
	return Evaluate(&v.ref, &v.bindings, &inv)
}

// Dispatch evaluates src for every pixel of a width x height target and
// returns the resulting image, as a render target would hold it after the
// draw. Invocations are independent and run in parallel by tile.
func (v *Verifier) Dispatch(ctx context.Context, width, height int, src InvocationSource) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	pool, err := v.workerPool()
	if err != nil {
		return nil, err
	}

	grid := parallel.NewTileGrid(width, height)
	counts := make([]Counts, grid.TileCount())
	bg := v.opts.clearColor.NRGBA()

	Logger().Debug("bindcheck: dispatch",
		"width", width, "height", height,
		"tiles", grid.TileCount(), "workers", pool.Workers())

	jobs := grid.Jobs(func(i int, t *parallel.Tile) {
		ox, oy, tw, th := t.Bounds()
		c := &counts[i]
		for py := range th {
			for px := range tw {
				inv, ok := src(ox+px, oy+py, width, height)
				if !ok {
					t.SetPixel(px, py, bg.R, bg.G, bg.B, bg.A)
					c.Uncovered++
					continue
				}
				res := Evaluate(&v.ref, &v.bindings, &inv)
				n := res.Color.NRGBA()
				t.SetPixel(px, py, n.R, n.G, n.B, n.A)
				c.ByDiagnostic[res.Diagnostic]++
			}
		}
	})

	if err := pool.Run(ctx, jobs); err != nil {
		return nil, fmt.Errorf("bindcheck: dispatch %dx%d: %w", width, height, err)
	}

	pm := NewPixmap(width, height)
	grid.Composite(pm.Data(), pm.Stride())

	var total Counts
	for i := range counts {
		total.Add(counts[i])
	}
	Logger().Info("bindcheck: dispatch complete",
		"width", width, "height", height,
		"passed", total.ByDiagnostic[DiagnosticNone],
		"failed", total.Failed(),
		"uncovered", total.Uncovered)

	return pm, nil
}

// workerPool starts the pool on first use.
func (v *Verifier) workerPool() (*parallel.Pool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, ErrClosed
	}
	if v.pool == nil {
		v.pool = parallel.NewPool(v.opts.workers)
	}
	return v.pool, nil
}

// Close stops the dispatch workers. Evaluate keeps working after Close;
// Dispatch returns ErrClosed. Close is safe to call multiple times.
func (v *Verifier) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.pool != nil {
		v.pool.Close()
	}
}

// Counts tallies invocation outcomes by diagnostic class.
type Counts struct {
	// ByDiagnostic is indexed by Diagnostic; DiagnosticNone counts passes.
	ByDiagnostic [diagnosticCount]int

	// Uncovered counts pixels no invocation wrote.
	Uncovered int
}

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	for i, n := range o.ByDiagnostic {
		c.ByDiagnostic[i] += n
	}
	c.Uncovered += o.Uncovered
}

// Failed returns the number of failing invocations.
func (c *Counts) Failed() int {
	n := 0
	for _, d := range Diagnostics {
		n += c.ByDiagnostic[d]
	}
	return n
}

// Of returns the count for d.
func (c *Counts) Of(d Diagnostic) int {
	if d >= diagnosticCount {
		return 0
	}
	return c.ByDiagnostic[d]
}
