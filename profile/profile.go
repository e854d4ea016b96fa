// Package profile loads reference profiles: the constants a pipeline under
// test is expected to bind, plus how the success texture is sampled.
//
// Profiles are YAML or TOML documents. Fields left out keep the default
// reference values, so a profile only needs to name what it changes:
//
//	name: rough
//	material:
//	  roughness: 0.5
//
// The transform is written as four columns.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/bindcheck"
)

// Errors returned while loading profiles.
var (
	ErrUnknownFormat = errors.New("profile: unknown format")
	ErrShape         = errors.New("profile: wrong shape")
)

// Format is a profile encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Profile is the serialized form of a reference.
type Profile struct {
	Name      string      `yaml:"name" toml:"name"`
	Transform [][]float32 `yaml:"transform" toml:"transform"`
	Material  Material    `yaml:"material" toml:"material"`
	Segments  Segments    `yaml:"segments" toml:"segments"`
	Texture   Texture     `yaml:"texture" toml:"texture"`
}

// Material mirrors bindcheck.Material.
type Material struct {
	Albedo       []float32 `yaml:"albedo" toml:"albedo"`
	Roughness    float32   `yaml:"roughness" toml:"roughness"`
	Reflectance  float32   `yaml:"reflectance" toml:"reflectance"`
	AmbientRatio float32   `yaml:"ambient_ratio" toml:"ambient_ratio"`
}

// Segments holds the expected storage contents per side.
type Segments struct {
	Negative [][]float32 `yaml:"negative" toml:"negative"`
	Positive [][]float32 `yaml:"positive" toml:"positive"`
}

// Texture configures the success texture.
type Texture struct {
	// Path names an image file; empty means a generated texture.
	Path    string `yaml:"path,omitempty" toml:"path,omitempty"`
	Filter  string `yaml:"filter" toml:"filter"`
	Address string `yaml:"address" toml:"address"`
}

// Default returns the profile of bindcheck.DefaultReference.
func Default() *Profile {
	return FromReference("default", bindcheck.DefaultReference())
}

// FromReference converts a reference to its profile.
func FromReference(name string, ref bindcheck.Reference) *Profile {
	p := &Profile{
		Name: name,
		Material: Material{
			Albedo:       vec(ref.Material.Albedo),
			Roughness:    ref.Material.Roughness,
			Reflectance:  ref.Material.Reflectance,
			AmbientRatio: ref.Material.AmbientRatio,
		},
		Segments: Segments{
			Negative: segment(ref.Segment(bindcheck.SideNegative)),
			Positive: segment(ref.Segment(bindcheck.SidePositive)),
		},
		Texture: Texture{Filter: "nearest", Address: "clamp"},
	}
	for i := range 4 {
		p.Transform = append(p.Transform, vec(ref.Transform.Col(i)))
	}
	return p
}

func vec(v bindcheck.Vec4) []float32 {
	return []float32{v[0], v[1], v[2], v[3]}
}

func segment(s bindcheck.Segment) [][]float32 {
	out := make([][]float32, len(s))
	for i, e := range s {
		out[i] = vec(e)
	}
	return out
}

// Load reads a profile file, picking the format from its extension.
func Load(path string) (*Profile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("profile: failed to read: %w", err)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	if p.Texture.Path != "" && !filepath.IsAbs(p.Texture.Path) {
		p.Texture.Path = filepath.Join(filepath.Dir(path), p.Texture.Path)
	}
	bindcheck.Logger().Debug("profile: loaded", "path", path, "name", p.Name)
	return p, nil
}

// Parse decodes a profile over the defaults.
func Parse(data []byte, format Format) (*Profile, error) {
	p := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("profile: failed to parse yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return nil, fmt.Errorf("profile: failed to parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return p, nil
}

// Marshal encodes the profile.
func (p *Profile) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(p)
	case FormatTOML:
		return toml.Marshal(p)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes the profile, picking the format from the extension.
func (p *Profile) Save(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := p.Marshal(format)
	if err != nil {
		return fmt.Errorf("profile: failed to marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // profiles are not secret
		return fmt.Errorf("profile: failed to write: %w", err)
	}
	return nil
}

// Reference converts the profile to a validated reference.
func (p *Profile) Reference() (bindcheck.Reference, error) {
	var ref bindcheck.Reference

	if len(p.Transform) != 4 {
		return ref, fmt.Errorf("%w: transform has %d columns, want 4", ErrShape, len(p.Transform))
	}
	var cols [4]bindcheck.Vec4
	for i, c := range p.Transform {
		v, err := toVec4(c)
		if err != nil {
			return ref, fmt.Errorf("transform column %d: %w", i, err)
		}
		cols[i] = v
	}
	ref.Transform = bindcheck.MatFromCols(cols[0], cols[1], cols[2], cols[3])

	albedo, err := toVec4(p.Material.Albedo)
	if err != nil {
		return ref, fmt.Errorf("albedo: %w", err)
	}
	ref.Material = bindcheck.Material{
		Albedo:       albedo,
		Roughness:    p.Material.Roughness,
		Reflectance:  p.Material.Reflectance,
		AmbientRatio: p.Material.AmbientRatio,
	}

	sides := []struct {
		side    bindcheck.Side
		entries [][]float32
	}{
		{bindcheck.SideNegative, p.Segments.Negative},
		{bindcheck.SidePositive, p.Segments.Positive},
	}
	for _, sd := range sides {
		side, entries := sd.side, sd.entries
		if len(entries) != bindcheck.SegmentLen {
			return ref, fmt.Errorf("%w: %v segment has %d entries, want %d",
				ErrShape, side, len(entries), bindcheck.SegmentLen)
		}
		for i, e := range entries {
			v, err := toVec4(e)
			if err != nil {
				return ref, fmt.Errorf("%v segment entry %d: %w", side, i, err)
			}
			ref.Segments[side][i] = v
		}
	}

	if err := ref.Validate(); err != nil {
		return ref, err
	}
	return ref, nil
}

func toVec4(v []float32) (bindcheck.Vec4, error) {
	if len(v) != 4 {
		return bindcheck.Vec4{}, fmt.Errorf("%w: %d components, want 4", ErrShape, len(v))
	}
	return bindcheck.Vec4{v[0], v[1], v[2], v[3]}, nil
}

// Sampler returns the sampler the texture section names.
func (p *Profile) Sampler() (bindcheck.Sampler, error) {
	var s bindcheck.Sampler
	switch strings.ToLower(p.Texture.Filter) {
	case "", "nearest":
		s.Filter = bindcheck.FilterNearest
	case "linear":
		s.Filter = bindcheck.FilterLinear
	default:
		return s, fmt.Errorf("%w: filter %q", ErrShape, p.Texture.Filter)
	}
	switch strings.ToLower(p.Texture.Address) {
	case "", "clamp":
		s.AddressU, s.AddressV = bindcheck.AddressClampToEdge, bindcheck.AddressClampToEdge
	case "repeat":
		s.AddressU, s.AddressV = bindcheck.AddressRepeat, bindcheck.AddressRepeat
	case "mirror":
		s.AddressU, s.AddressV = bindcheck.AddressMirrorRepeat, bindcheck.AddressMirrorRepeat
	default:
		return s, fmt.Errorf("%w: address mode %q", ErrShape, p.Texture.Address)
	}
	return s, nil
}
