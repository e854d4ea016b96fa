package bindcheck

import (
	"fmt"

	"github.com/gogpu/bindcheck/internal/oracle"
	"github.com/gogpu/bindcheck/internal/storage"
	"github.com/gogpu/bindcheck/internal/tolerance"
)

// frame is everything one invocation can observe.
type frame struct {
	ref *Reference
	b   *Bindings
	inv *Invocation
}

// check is one (predicate, diagnostic) pair of the chain.
type check struct {
	name string
	diag Diagnostic
	pass func(f *frame) bool
}

// chain is evaluated in order; the first failing check decides the output.
// The order is part of the readback contract: when several faults coexist,
// the earliest one wins.
var chain = []check{
	{"uv.x", DiagnosticUV, func(f *frame) bool {
		want := oracle.ExpectedUV(f.inv.Position)
		return tolerance.NearlyEqualCyclic(f.inv.UV.X(), want.X())
	}},
	{"uv.y", DiagnosticUV, func(f *frame) bool {
		want := oracle.ExpectedUV(f.inv.Position)
		return tolerance.NearlyEqual(f.inv.UV.Y(), want.Y())
	}},
	{"normal", DiagnosticNormal, func(f *frame) bool {
		want := oracle.ExpectedNormal(f.inv.UV, f.inv.Position)
		return tolerance.NearlyEqualVec3(f.inv.Normal, want)
	}},
	{"instance_matrix", DiagnosticTransform, func(f *frame) bool {
		return tolerance.NearlyEqualMat4(f.inv.InstanceMatrix, f.b.Transform)
	}},
	transformColumn(0),
	transformColumn(1),
	transformColumn(2),
	transformColumn(3),
	{"albedo", DiagnosticAlbedo, func(f *frame) bool {
		return tolerance.NearlyEqualVec4(f.b.Material.Albedo, f.ref.Material.Albedo)
	}},
	{"roughness", DiagnosticRoughness, func(f *frame) bool {
		return tolerance.NearlyEqual(f.b.Material.Roughness, f.ref.Material.Roughness)
	}},
	{"reflectance", DiagnosticReflectance, func(f *frame) bool {
		return tolerance.NearlyEqual(f.b.Material.Reflectance, f.ref.Material.Reflectance)
	}},
	{"ambient_ratio", DiagnosticAmbientRatio, func(f *frame) bool {
		return tolerance.NearlyEqual(f.b.Material.AmbientRatio, f.ref.Material.AmbientRatio)
	}},
	{"boundary", DiagnosticBoundary, func(f *frame) bool {
		lo, hi := oracle.ExpectedRange(f.inv.Position)
		return f.inv.Boundary == Range{Lo: lo, Hi: hi}
	}},
	storageEntry(0),
	storageEntry(1),
	storageEntry(2),
	storageEntry(3),
}

// transformColumn compares column i of the global uniform matrix, as the
// shader indexes it with m[i], against the reference.
func transformColumn(i int) check {
	return check{
		name: fmt.Sprintf("transform[%d]", i),
		diag: DiagnosticTransform,
		pass: func(f *frame) bool {
			return tolerance.NearlyEqualVec4(f.b.Transform.Col(i), f.ref.Transform.Col(i))
		},
	}
}

// storageEntry compares entry i of the invocation's storage segment against
// the reference segment of its side. A segment that cannot be read fails.
func storageEntry(i int) check {
	return check{
		name: fmt.Sprintf("storage[%d]", i),
		diag: DiagnosticStorage,
		pass: func(f *frame) bool {
			seg, err := storage.Segment(f.b.Storage, f.inv.Boundary)
			if err != nil || i >= len(seg) {
				return false
			}
			want := f.ref.Segment(oracle.SideOf(f.inv.Position))
			return tolerance.NearlyEqualVec4(seg[i], want[i])
		},
	}
}

// Step describes one check of the chain.
type Step struct {
	// Index is the 1-based position in the chain.
	Index int
	// Name identifies the check, e.g. "uv.x" or "storage[2]".
	Name string
	// Diagnostic is reported when the check fails.
	Diagnostic Diagnostic
}

// Steps returns the chain in evaluation order.
func Steps() []Step {
	steps := make([]Step, len(chain))
	for i, c := range chain {
		steps[i] = Step{Index: i + 1, Name: c.name, Diagnostic: c.diag}
	}
	return steps
}

// Result is the outcome of one invocation.
type Result struct {
	// Diagnostic is the failure class, or DiagnosticNone on success.
	Diagnostic Diagnostic

	// Step is the 1-based index of the failing check, 0 on success.
	Step int

	// Check names the failing check, empty on success.
	Check string

	// Color is the output color: the diagnostic color, or the sampled
	// texture on success.
	Color RGBA
}

// Passed reports whether every check passed.
func (r Result) Passed() bool {
	return r.Diagnostic == DiagnosticNone
}

// Evaluate runs the chain for one invocation. It is a pure function of its
// arguments: it never mutates them, holds no state and never logs. The
// texture is sampled only when every check passes; a nil texture then
// yields transparent black.
func Evaluate(ref *Reference, b *Bindings, inv *Invocation) Result {
	f := frame{ref: ref, b: b, inv: inv}
	for i := range chain {
		c := &chain[i]
		if !c.pass(&f) {
			return Result{Diagnostic: c.diag, Step: i + 1, Check: c.name, Color: c.diag.Color()}
		}
	}

	var out RGBA
	if b.Texture != nil {
		out = b.Texture.Sample(oracle.SampleCoord(inv.Position))
	}
	return Result{Color: out}
}
