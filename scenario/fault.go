package scenario

import (
	"fmt"

	"github.com/gogpu/bindcheck"
)

// Fault is a single wiring error injected into an otherwise correct draw.
type Fault uint8

const (
	// FaultNone is the correctly wired pipeline.
	FaultNone Fault = iota
	// FaultUV shifts the vertical texture coordinate.
	FaultUV
	// FaultNormal flips every normal.
	FaultNormal
	// FaultInstanceMatrix perturbs one element of the per-instance matrix.
	FaultInstanceMatrix
	// FaultUniformMatrix binds a wrong global matrix and feeds the same
	// matrix to every instance, so only the reference comparison fails.
	FaultUniformMatrix
	// FaultAlbedo lowers the albedo alpha.
	FaultAlbedo
	// FaultRoughness offsets roughness.
	FaultRoughness
	// FaultReflectance offsets reflectance.
	FaultReflectance
	// FaultAmbientRatio offsets the ambient ratio.
	FaultAmbientRatio
	// FaultBoundary hands every instance the other side's range.
	FaultBoundary
	// FaultStorage corrupts the last entry of both segments.
	FaultStorage
	// FaultStorageTail appends garbage after the last segment. No
	// invocation reads it, so the draw stays clean.
	FaultStorageTail

	faultCount
)

var faultNames = [faultCount]string{
	FaultNone:           "none",
	FaultUV:             "uv",
	FaultNormal:         "normal",
	FaultInstanceMatrix: "instance_matrix",
	FaultUniformMatrix:  "uniform_matrix",
	FaultAlbedo:         "albedo",
	FaultRoughness:      "roughness",
	FaultReflectance:    "reflectance",
	FaultAmbientRatio:   "ambient_ratio",
	FaultBoundary:       "boundary",
	FaultStorage:        "storage",
	FaultStorageTail:    "storage_tail",
}

var faultExpect = [faultCount]bindcheck.Diagnostic{
	FaultNone:           bindcheck.DiagnosticNone,
	FaultUV:             bindcheck.DiagnosticUV,
	FaultNormal:         bindcheck.DiagnosticNormal,
	FaultInstanceMatrix: bindcheck.DiagnosticTransform,
	FaultUniformMatrix:  bindcheck.DiagnosticTransform,
	FaultAlbedo:         bindcheck.DiagnosticAlbedo,
	FaultRoughness:      bindcheck.DiagnosticRoughness,
	FaultReflectance:    bindcheck.DiagnosticReflectance,
	FaultAmbientRatio:   bindcheck.DiagnosticAmbientRatio,
	FaultBoundary:       bindcheck.DiagnosticBoundary,
	FaultStorage:        bindcheck.DiagnosticStorage,
	FaultStorageTail:    bindcheck.DiagnosticNone,
}

// Faults returns every fault, FaultNone first.
func Faults() []Fault {
	out := make([]Fault, faultCount)
	for i := range out {
		out[i] = Fault(i)
	}
	return out
}

// String returns the fault name.
func (f Fault) String() string {
	if f >= faultCount {
		return fmt.Sprintf("Fault(%d)", uint8(f))
	}
	return faultNames[f]
}

// Expect returns the diagnostic every covered pixel reports under f.
func (f Fault) Expect() bindcheck.Diagnostic {
	if f >= faultCount {
		return bindcheck.DiagnosticNone
	}
	return faultExpect[f]
}

// ParseFault returns the fault with the given name.
func ParseFault(name string) (Fault, error) {
	for i, n := range faultNames {
		if n == name {
			return Fault(i), nil
		}
	}
	return FaultNone, fmt.Errorf("%w: %q", ErrUnknownFault, name)
}
