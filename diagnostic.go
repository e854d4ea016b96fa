package bindcheck

import "fmt"

// Diagnostic is the failure class an invocation encodes in its output color.
// Related checks share a class: both UV components report DiagnosticUV and
// all five transform checks report DiagnosticTransform.
type Diagnostic uint8

const (
	// DiagnosticNone means every check passed and the texture was sampled.
	DiagnosticNone Diagnostic = iota
	DiagnosticUV
	DiagnosticNormal
	DiagnosticTransform
	DiagnosticAlbedo
	DiagnosticRoughness
	DiagnosticReflectance
	DiagnosticAmbientRatio
	DiagnosticBoundary
	DiagnosticStorage

	diagnosticCount
)

// Diagnostics lists every failure class in chain order.
var Diagnostics = [...]Diagnostic{
	DiagnosticUV,
	DiagnosticNormal,
	DiagnosticTransform,
	DiagnosticAlbedo,
	DiagnosticRoughness,
	DiagnosticReflectance,
	DiagnosticAmbientRatio,
	DiagnosticBoundary,
	DiagnosticStorage,
}

// palette is the color-literal contract with the readback side.
var palette = [diagnosticCount]RGBA{
	DiagnosticUV:           RGB(1, 0, 0),
	DiagnosticNormal:       RGB(0, 1, 0),
	DiagnosticTransform:    RGB(0, 0, 1),
	DiagnosticAlbedo:       RGB(1, 1, 0),
	DiagnosticRoughness:    RGB(1, 0, 1),
	DiagnosticReflectance:  RGB(0, 1, 1),
	DiagnosticAmbientRatio: Gray(0.25),
	DiagnosticBoundary:     Gray(0.5),
	DiagnosticStorage:      Gray(0.75),
}

var diagnosticNames = [diagnosticCount]string{
	DiagnosticNone:         "none",
	DiagnosticUV:           "uv",
	DiagnosticNormal:       "normal",
	DiagnosticTransform:    "transform",
	DiagnosticAlbedo:       "albedo",
	DiagnosticRoughness:    "roughness",
	DiagnosticReflectance:  "reflectance",
	DiagnosticAmbientRatio: "ambient_ratio",
	DiagnosticBoundary:     "boundary",
	DiagnosticStorage:      "storage",
}

// Color returns the diagnostic color. DiagnosticNone has no fixed color and
// returns the zero RGBA.
func (d Diagnostic) Color() RGBA {
	if d >= diagnosticCount {
		return RGBA{}
	}
	return palette[d]
}

// Failed reports whether d is a failure class.
func (d Diagnostic) Failed() bool {
	return d != DiagnosticNone
}

// String returns the snake_case name of the class.
func (d Diagnostic) String() string {
	if d >= diagnosticCount {
		return fmt.Sprintf("Diagnostic(%d)", d)
	}
	return diagnosticNames[d]
}

// ParseDiagnostic returns the class with the given String name.
func ParseDiagnostic(name string) (Diagnostic, error) {
	for d, n := range diagnosticNames {
		if n == name {
			return Diagnostic(d), nil
		}
	}
	return DiagnosticNone, fmt.Errorf("%w: %q", ErrUnknownDiagnostic, name)
}

// MarshalText implements encoding.TextMarshaler.
func (d Diagnostic) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Diagnostic) UnmarshalText(text []byte) error {
	v, err := ParseDiagnostic(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
