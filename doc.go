// Package bindcheck verifies that a rendering pipeline delivers its resource
// bindings correctly to the fragment stage.
//
// # Overview
//
// Every fragment invocation runs a fixed assertion chain over what it can
// observe: interpolated vertex attributes, a flat per-instance descriptor,
// two uniform blocks, a shared storage buffer, and a sampled texture. The
// first failing check selects a diagnostic color; if all checks pass the
// texture is sampled. A correctly wired pipeline therefore renders the
// texture unchanged, and any wiring fault shows up as a solid color that
// names the broken binding.
//
// # Quick Start
//
//	ref := bindcheck.DefaultReference()
//	tex := bindcheck.NewImageTexture(img, bindcheck.Sampler{})
//
//	v, err := bindcheck.NewVerifier(ref.Bindings(tex))
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
//
//	out, err := v.Dispatch(ctx, 256, 256, scenario.Quad(ref))
//	if err != nil {
//	    return err
//	}
//	s := bindcheck.Summarize(out)
//	fmt.Println(s.Present())
//
// # Oracle
//
// Expected values are derived only from the interpolated object-space
// position, the one input the chain trusts:
//   - uv = (fract(p.x), (1 + p.y) / 2), with the x component compared
//     cyclically
//   - the normal is flat (0, 0, 1) outside a radius of 0.5 around the
//     position's own UV image, and the bevel normal inside it
//   - the storage range is [0, 4) for p.x < 0 and [4, 8) otherwise
//
// # Diagnostic Colors
//
// Colors are compared exactly after 8-bit quantization:
//
//	uv              red
//	normal          green
//	transform       blue
//	albedo          yellow
//	roughness       magenta
//	reflectance     cyan
//	ambient_ratio   gray 0.25
//	boundary        gray 0.5
//	storage         gray 0.75
//
// # Sub-packages
//
//   - shader: the WGSL rendition of the chain, its binding layout and
//     uniform/storage encodings, compiled through naga
//   - scenario: invocation sources for a clean draw and for one injected
//     fault per diagnostic class
//   - profile: YAML and TOML reference profiles
//
// # Logging
//
// Host-side work logs through [log/slog]; see [SetLogger]. Evaluate never
// logs.
package bindcheck

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
