package bindcheck

// VerifierOption configures a Verifier during creation.
//
// Example:
//
//	v, err := bindcheck.NewVerifier(bindings,
//	    bindcheck.WithReference(ref),
//	    bindcheck.WithWorkers(4),
//	)
type VerifierOption func(*verifierOptions)

// verifierOptions holds optional configuration for Verifier creation.
type verifierOptions struct {
	reference  Reference
	workers    int
	clearColor RGBA
}

// defaultOptions returns the default verifier options.
func defaultOptions() verifierOptions {
	return verifierOptions{
		reference:  DefaultReference(),
		workers:    0, // GOMAXPROCS
		clearColor: RGBA{},
	}
}

// WithReference replaces the default reference constants.
func WithReference(ref Reference) VerifierOption {
	return func(o *verifierOptions) {
		o.reference = ref
	}
}

// WithWorkers sets the number of dispatch workers. Zero or negative
// selects GOMAXPROCS.
func WithWorkers(n int) VerifierOption {
	return func(o *verifierOptions) {
		o.workers = n
	}
}

// WithClearColor sets the color written to pixels no invocation covers.
func WithClearColor(c RGBA) VerifierOption {
	return func(o *verifierOptions) {
		o.clearColor = c
	}
}
