package shader

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/bindcheck"
)

var (
	vec4Literal  = regexp.MustCompile(`vec4<f32>\(([^)]*)\)`)
	checkReturn  = regexp.MustCompile(`(?m)^\s*if \((.+)\) \{\n\s*return (vec4<f32>\([^)]*\));`)
	columnCheck  = regexp.MustCompile(`near4\(transform\.matrix\[(\d)\], (vec4<f32>\([^)]*\))\)`)
	entryCheck   = regexp.MustCompile(`near4\(entries\[lo \+ (\d)u\], (vec4<f32>\([^)]*\))\)`)
	albedoCheck  = regexp.MustCompile(`near4\(material\.albedo, (vec4<f32>\([^)]*\))\)`)
	scalarChecks = regexp.MustCompile(`near\(material\.(\w+), ([-0-9.e]+)\)`)
)

// parseVec4 parses a WGSL vec4<f32> literal.
func parseVec4(t *testing.T, lit string) bindcheck.Vec4 {
	t.Helper()
	m := vec4Literal.FindStringSubmatch(lit)
	if m == nil {
		t.Fatalf("not a vec4 literal: %q", lit)
	}
	parts := strings.Split(m[1], ", ")
	if len(parts) != 4 {
		t.Fatalf("vec4 literal %q has %d components", lit, len(parts))
	}
	var v bindcheck.Vec4
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			t.Fatalf("component %q: %v", p, err)
		}
		v[i] = float32(f)
	}
	return v
}

// checkedConstants reads back every reference constant the source checks
// against and compares it with ref.
func checkedConstants(t *testing.T, src string, ref *bindcheck.Reference) {
	t.Helper()

	cols := columnCheck.FindAllStringSubmatch(src, -1)
	if len(cols) != 4 {
		t.Fatalf("found %d transform column checks, want 4", len(cols))
	}
	for _, m := range cols {
		i, _ := strconv.Atoi(m[1])
		if got, want := parseVec4(t, m[2]), ref.Transform.Col(i); got != want {
			t.Errorf("transform column %d = %v, want %v", i, got, want)
		}
	}

	a := albedoCheck.FindStringSubmatch(src)
	if a == nil {
		t.Fatal("albedo check missing")
	}
	if got := parseVec4(t, a[1]); got != ref.Material.Albedo {
		t.Errorf("albedo = %v, want %v", got, ref.Material.Albedo)
	}

	want := map[string]float32{
		"roughness":     ref.Material.Roughness,
		"reflectance":   ref.Material.Reflectance,
		"ambient_ratio": ref.Material.AmbientRatio,
	}
	got := make(map[string]float32)
	for _, m := range scalarChecks.FindAllStringSubmatch(src, -1) {
		f, err := strconv.ParseFloat(m[2], 32)
		if err != nil {
			t.Fatalf("%s literal %q: %v", m[1], m[2], err)
		}
		got[m[1]] = float32(f)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("material scalars mismatch (-want +got):\n%s", diff)
	}

	entries := entryCheck.FindAllStringSubmatch(src, -1)
	if len(entries) != 2*bindcheck.SegmentLen {
		t.Fatalf("found %d storage checks, want %d", len(entries), 2*bindcheck.SegmentLen)
	}
	for k, m := range entries {
		side := bindcheck.SideNegative
		if k >= bindcheck.SegmentLen {
			side = bindcheck.SidePositive
		}
		i, _ := strconv.Atoi(m[1])
		if got, want := parseVec4(t, m[2]), ref.Segment(side)[i]; got != want {
			t.Errorf("%v storage entry %d = %v, want %v", side, i, got, want)
		}
	}
}

// customReference differs from the default in every configurable constant.
func customReference() bindcheck.Reference {
	ref := bindcheck.DefaultReference()
	ref.Transform[7] = -2.5
	ref.Material.Albedo = bindcheck.Vec4{0.9, 0.1, 0.3, 0.75}
	ref.Material.Roughness = 0.75
	ref.Material.Reflectance = 0.125
	ref.Material.AmbientRatio = 0.33
	ref.Segments[bindcheck.SidePositive][2] = bindcheck.Vec4{0.5, 0.25, 0, 1}
	return ref
}

// =============================================================================
// Rendering
// =============================================================================

func TestDefault_MatchesDefaultReference(t *testing.T) {
	ref := bindcheck.DefaultReference()
	if diff := cmp.Diff(ref, Default().Reference()); diff != "" {
		t.Errorf("Default().Reference() mismatch (-want +got):\n%s", diff)
	}
	checkedConstants(t, Source(), &ref)
}

func TestNew_CustomReference(t *testing.T) {
	ref := customReference()
	p, err := New(ref)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	checkedConstants(t, p.Source(), &ref)

	if strings.Contains(p.Source(), "0.31415") {
		t.Error("custom source still checks the default roughness")
	}

	outs, err := p.Translate(TargetWGSL)
	if err != nil {
		t.Fatalf("Translate(wgsl) error = %v", err)
	}
	if string(outs[0].Code) != p.Source() {
		t.Error("WGSL output differs from Source()")
	}
}

func TestNew_CustomReferenceValidates(t *testing.T) {
	p, err := New(customReference())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := p.Module(); err != nil {
		skipOnNagaLimitation(t, err)
	}
}

func TestNew_InvalidReference(t *testing.T) {
	ref := bindcheck.DefaultReference()
	zero := float32(0)
	ref.Material.Roughness = zero / zero
	if _, err := New(ref); !errors.Is(err, bindcheck.ErrInvalidReference) {
		t.Errorf("New(NaN roughness) error = %v, want ErrInvalidReference", err)
	}
}

// TestPaletteLiterals verifies every diagnostic return writes the color the
// readback side classifies for that check.
func TestPaletteLiterals(t *testing.T) {
	classes := []struct {
		marker string
		diag   bindcheck.Diagnostic
	}{
		{"entries", bindcheck.DiagnosticStorage},
		{"boundary", bindcheck.DiagnosticBoundary},
		{"ambient_ratio", bindcheck.DiagnosticAmbientRatio},
		{"reflectance", bindcheck.DiagnosticReflectance},
		{"roughness", bindcheck.DiagnosticRoughness},
		{"albedo", bindcheck.DiagnosticAlbedo},
		{"matrix", bindcheck.DiagnosticTransform},
		{"normal", bindcheck.DiagnosticNormal},
		{"uv", bindcheck.DiagnosticUV},
	}

	returns := checkReturn.FindAllStringSubmatch(Source(), -1)
	// uv 2, normal 1, transform 5, material 4, boundary 1, storage guard 1,
	// storage entries once per side.
	if want := 14 + 2*bindcheck.SegmentLen; len(returns) != want {
		t.Fatalf("found %d diagnostic returns, want %d", len(returns), want)
	}
	seen := make(map[bindcheck.Diagnostic]bool)
	for _, m := range returns {
		cond, lit := m[1], m[2]
		found := false
		for _, c := range classes {
			if !strings.Contains(cond, c.marker) {
				continue
			}
			found = true
			seen[c.diag] = true
			if got, want := parseVec4(t, lit), c.diag.Color().Vec4(); got != want {
				t.Errorf("%q returns %v, want %v color %v", cond, got, c.diag, want)
			}
			break
		}
		if !found {
			t.Errorf("cannot classify check %q", cond)
		}
	}
	for _, d := range bindcheck.Diagnostics {
		if !seen[d] {
			t.Errorf("no check returns the %v color", d)
		}
	}
}

func TestF32Literal(t *testing.T) {
	tests := []struct {
		v    float32
		want string
	}{
		{13, "13.0"},
		{0, "0.0"},
		{-0.5, "-0.5"},
		{0.31415, "0.31415"},
		{1e-6, "0.000001"},
	}
	for _, tt := range tests {
		if got := f32(tt.v); got != tt.want {
			t.Errorf("f32(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
