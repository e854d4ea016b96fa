package shader

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/internal/oracle"
	"github.com/gogpu/bindcheck/internal/tolerance"
)

var chainTemplate = template.Must(template.New("bindcheck.wgsl").Parse(wgslTemplate))

// templateData holds the WGSL literals the chain template is rendered with.
type templateData struct {
	Epsilon string
	Radius  string
	Bevel   string
	Flat    string

	Columns      [4]string
	Albedo       string
	Roughness    string
	Reflectance  string
	AmbientRatio string

	SegmentLen uint32
	Negative   segmentData
	Positive   segmentData

	Colors colorData
}

type segmentData struct {
	Lo, Hi  uint32
	Entries []string
}

// colorData holds one vec4 literal per diagnostic class.
type colorData struct {
	UV           string
	Normal       string
	Transform    string
	Albedo       string
	Roughness    string
	Reflectance  string
	AmbientRatio string
	Boundary     string
	Storage      string
}

func newTemplateData(ref *bindcheck.Reference) templateData {
	d := templateData{
		Epsilon:      f32(tolerance.Epsilon),
		Radius:       f32(oracle.RegionRadius),
		Bevel:        vec3(oracle.RegionBevel.Normal()),
		Flat:         vec3(oracle.RegionFlat.Normal()),
		Albedo:       vec4(ref.Material.Albedo),
		Roughness:    f32(ref.Material.Roughness),
		Reflectance:  f32(ref.Material.Reflectance),
		AmbientRatio: f32(ref.Material.AmbientRatio),
		SegmentLen:   bindcheck.SegmentLen,
		Negative:     newSegmentData(ref, bindcheck.SideNegative),
		Positive:     newSegmentData(ref, bindcheck.SidePositive),
		Colors: colorData{
			UV:           paletteColor(bindcheck.DiagnosticUV),
			Normal:       paletteColor(bindcheck.DiagnosticNormal),
			Transform:    paletteColor(bindcheck.DiagnosticTransform),
			Albedo:       paletteColor(bindcheck.DiagnosticAlbedo),
			Roughness:    paletteColor(bindcheck.DiagnosticRoughness),
			Reflectance:  paletteColor(bindcheck.DiagnosticReflectance),
			AmbientRatio: paletteColor(bindcheck.DiagnosticAmbientRatio),
			Boundary:     paletteColor(bindcheck.DiagnosticBoundary),
			Storage:      paletteColor(bindcheck.DiagnosticStorage),
		},
	}
	for i := range d.Columns {
		d.Columns[i] = vec4(ref.Transform.Col(i))
	}
	return d
}

func newSegmentData(ref *bindcheck.Reference, s bindcheck.Side) segmentData {
	lo, hi := s.Range()
	seg := ref.Segment(s)
	d := segmentData{Lo: lo, Hi: hi, Entries: make([]string, len(seg))}
	for i, e := range seg {
		d.Entries[i] = vec4(e)
	}
	return d
}

// f32 formats v as the shortest WGSL float literal that round-trips to the
// same float32.
func f32(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func vec3(v bindcheck.Vec3) string {
	return "vec3<f32>(" + f32(v[0]) + ", " + f32(v[1]) + ", " + f32(v[2]) + ")"
}

func vec4(v bindcheck.Vec4) string {
	return "vec4<f32>(" + f32(v[0]) + ", " + f32(v[1]) + ", " + f32(v[2]) + ", " + f32(v[3]) + ")"
}

func paletteColor(d bindcheck.Diagnostic) string {
	return vec4(d.Color().Vec4())
}
