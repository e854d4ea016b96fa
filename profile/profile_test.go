package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/bindcheck"
)

func TestDefault_RoundTripsReference(t *testing.T) {
	ref, err := Default().Reference()
	if err != nil {
		t.Fatalf("Reference() error = %v", err)
	}
	if diff := cmp.Diff(bindcheck.DefaultReference(), ref); diff != "" {
		t.Errorf("default profile mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Overrides(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml", FormatYAML, `
name: rough
material:
  roughness: 0.5
segments:
  positive:
    - [1, 1, 1, 1]
    - [1, 0, 1, 1]
    - [1, 1, 0, 1]
    - [0, 1, 0, 0]
`},
		{"toml", FormatTOML, `
name = "rough"

[material]
roughness = 0.5

[segments]
positive = [[1, 1, 1, 1], [1, 0, 1, 1], [1, 1, 0, 1], [0, 1, 0, 0]]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if p.Name != "rough" {
				t.Errorf("Name = %q", p.Name)
			}
			ref, err := p.Reference()
			if err != nil {
				t.Fatalf("Reference() error = %v", err)
			}

			want := bindcheck.DefaultReference()
			want.Material.Roughness = 0.5
			want.Segments[bindcheck.SidePositive][0] = bindcheck.Vec4{1, 1, 1, 1}
			if diff := cmp.Diff(want, ref); diff != "" {
				t.Errorf("reference mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatTOML} {
		p, err := Parse(nil, f)
		if err != nil {
			t.Fatalf("Parse(empty %s) error = %v", f, err)
		}
		if p.Name != "default" {
			t.Errorf("Parse(empty %s).Name = %q", f, p.Name)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml unknown field", FormatYAML, "colour: red\n"},
		{"yaml syntax", FormatYAML, "material: [\n"},
		{"toml unknown field", FormatTOML, "colour = \"red\"\n"},
		{"toml syntax", FormatTOML, "material = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), tt.format); err == nil {
				t.Error("Parse() succeeded")
			}
		})
	}

	if _, err := Parse(nil, Format("json")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Parse(json) error = %v, want ErrUnknownFormat", err)
	}
}

func TestReference_Shape(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"three columns", func(p *Profile) { p.Transform = p.Transform[:3] }},
		{"short column", func(p *Profile) { p.Transform[2] = []float32{1, 2} }},
		{"albedo", func(p *Profile) { p.Material.Albedo = []float32{1, 1, 1} }},
		{"segment length", func(p *Profile) { p.Segments.Negative = p.Segments.Negative[:3] }},
		{"segment entry", func(p *Profile) { p.Segments.Positive[1] = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			if _, err := p.Reference(); !errors.Is(err, ErrShape) {
				t.Errorf("Reference() error = %v, want ErrShape", err)
			}
		})
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		filter, address string
		want            bindcheck.Sampler
		wantErr         bool
	}{
		{"", "", bindcheck.Sampler{}, false},
		{"linear", "repeat", bindcheck.Sampler{
			Filter:   bindcheck.FilterLinear,
			AddressU: bindcheck.AddressRepeat,
			AddressV: bindcheck.AddressRepeat,
		}, false},
		{"Nearest", "MIRROR", bindcheck.Sampler{
			AddressU: bindcheck.AddressMirrorRepeat,
			AddressV: bindcheck.AddressMirrorRepeat,
		}, false},
		{"cubic", "", bindcheck.Sampler{}, true},
		{"", "border", bindcheck.Sampler{}, true},
	}
	for _, tt := range tests {
		p := Default()
		p.Texture.Filter, p.Texture.Address = tt.filter, tt.address
		got, err := p.Sampler()
		if (err != nil) != tt.wantErr {
			t.Errorf("Sampler(%q, %q) error = %v, wantErr %v", tt.filter, tt.address, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Sampler(%q, %q) = %+v, want %+v", tt.filter, tt.address, got, tt.want)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := Default()
	src.Name = "saved"
	src.Material.Reflectance = 0.25
	src.Texture.Path = "answer.png"

	for _, name := range []string{"p.yaml", "p.yml", "p.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := src.Save(path); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			want := *src
			want.Texture.Path = filepath.Join(dir, "answer.png")
			if diff := cmp.Diff(&want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "p.json")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(json) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}
