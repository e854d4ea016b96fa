// Package shader holds the GPU rendition of the binding verification chain:
// the WGSL source specialized to a reference, its resource and vertex
// layouts, byte encodings for the uniform and storage buffers, and
// translation through naga to SPIR-V, GLSL, MSL and HLSL.
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"

	"github.com/gogpu/bindcheck"
)

//go:embed bindcheck.wgsl.tmpl
var wgslTemplate string

// Entry point names.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Errors returned by compilation.
var (
	ErrEmptySource   = errors.New("shader: source is empty")
	ErrValidation    = errors.New("shader: validation failed")
	ErrUnknownTarget = errors.New("shader: unknown target")
)

// Program is the verification shader specialized to one reference: the
// constants it checks against are the values the host uploads.
type Program struct {
	ref bindcheck.Reference
	src string
}

// New renders the shader for ref. The reference must pass Validate.
func New(ref bindcheck.Reference) (*Program, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	var b strings.Builder
	if err := chainTemplate.Execute(&b, newTemplateData(&ref)); err != nil {
		return nil, fmt.Errorf("shader: failed to render: %w", err)
	}
	bindcheck.Logger().Debug("shader: rendered", "bytes", b.Len())
	return &Program{ref: ref, src: b.String()}, nil
}

// defaultProgram is the shader for bindcheck.DefaultReference.
var defaultProgram = sync.OnceValue(func() *Program {
	p, err := New(bindcheck.DefaultReference())
	if err != nil {
		panic(fmt.Sprintf("shader: default reference: %v", err))
	}
	return p
})

// Default returns the shader for bindcheck.DefaultReference.
func Default() *Program {
	return defaultProgram()
}

// Reference returns the reference the program checks against.
func (p *Program) Reference() bindcheck.Reference {
	return p.ref
}

// Source returns the WGSL source.
func (p *Program) Source() string {
	return p.src
}

// Source returns the WGSL source of the default program.
func Source() string {
	return Default().Source()
}

// Target is a shading language the chain can be emitted in.
type Target uint8

const (
	TargetWGSL Target = iota
	TargetSPIRV
	TargetGLSL
	TargetMSL
	TargetHLSL
)

var targetNames = [...]string{
	TargetWGSL:  "wgsl",
	TargetSPIRV: "spirv",
	TargetGLSL:  "glsl",
	TargetMSL:   "msl",
	TargetHLSL:  "hlsl",
}

// Targets lists every target.
func Targets() []Target {
	return []Target{TargetWGSL, TargetSPIRV, TargetGLSL, TargetMSL, TargetHLSL}
}

func (t Target) String() string {
	if int(t) >= len(targetNames) {
		return fmt.Sprintf("Target(%d)", uint8(t))
	}
	return targetNames[t]
}

// Binary reports whether the target output is not text.
func (t Target) Binary() bool {
	return t == TargetSPIRV
}

// ParseTarget returns the target with the given name, case-insensitively.
func ParseTarget(name string) (Target, error) {
	for i, n := range targetNames {
		if strings.EqualFold(n, name) {
			return Target(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// Module parses, lowers and validates the WGSL source.
func (p *Program) Module() (*ir.Module, error) {
	if p.src == "" {
		return nil, ErrEmptySource
	}
	ast, err := naga.Parse(p.src)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, p.src)
	if err != nil {
		return nil, fmt.Errorf("shader: lowering error: %w", err)
	}
	errs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidation, &errs[0])
	}
	return module, nil
}

// CompileSPIRV compiles the source to SPIR-V words.
func (p *Program) CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(p.src)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	bindcheck.Logger().Debug("shader: compiled SPIR-V", "words", len(words))
	return words, nil
}

// Output is one translated shader. EntryPoint is empty when the code holds
// every entry point.
type Output struct {
	Target     Target
	EntryPoint string
	Code       []byte
}

// Translate emits the chain for target t. GLSL and HLSL produce one output
// per entry point; the other targets produce a single output.
func (p *Program) Translate(t Target) ([]Output, error) {
	switch t {
	case TargetWGSL:
		return []Output{{Target: t, Code: []byte(p.src)}}, nil

	case TargetSPIRV:
		spirvBytes, err := naga.Compile(p.src)
		if err != nil {
			return nil, fmt.Errorf("shader: failed to compile: %w", err)
		}
		return []Output{{Target: t, Code: spirvBytes}}, nil

	case TargetGLSL:
		return p.perEntryPoint(t, func(m *ir.Module, entry string) (string, error) {
			opts := glsl.DefaultOptions()
			opts.LangVersion = glsl.Version450
			opts.EntryPoint = entry
			code, _, err := glsl.Compile(m, opts)
			return code, err
		})

	case TargetHLSL:
		return p.perEntryPoint(t, func(m *ir.Module, entry string) (string, error) {
			opts := hlsl.DefaultOptions()
			opts.EntryPoint = entry
			code, _, err := hlsl.Compile(m, opts)
			return code, err
		})

	case TargetMSL:
		m, err := p.Module()
		if err != nil {
			return nil, err
		}
		code, _, err := msl.Compile(m, msl.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("shader: msl: %w", err)
		}
		return []Output{{Target: t, Code: []byte(code)}}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownTarget, t)
}

func (p *Program) perEntryPoint(t Target, compile func(m *ir.Module, entry string) (string, error)) ([]Output, error) {
	out := make([]Output, 0, 2)
	for _, entry := range []string{VertexEntryPoint, FragmentEntryPoint} {
		// Backends may mutate the module.
		m, err := p.Module()
		if err != nil {
			return nil, err
		}
		code, err := compile(m, entry)
		if err != nil {
			return nil, fmt.Errorf("shader: %v %s: %w", t, entry, err)
		}
		out = append(out, Output{Target: t, EntryPoint: entry, Code: []byte(code)})
	}
	bindcheck.Logger().Debug("shader: translated", "target", t.String(), "outputs", len(out))
	return out, nil
}

// Translate emits the default program for target t.
func Translate(t Target) ([]Output, error) {
	return Default().Translate(t)
}
