package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/scenario"
)

var (
	runFault  string
	runWidth  int
	runHeight int
	runOutput string
)

// runCmd dispatches one verification draw
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Dispatch a verification draw and write the render target",
	Long: `Dispatch the full-screen verification draw, optionally with one injected
fault, and write the render target as PNG.

Faults: none, uv, normal, instance_matrix, uniform_matrix, albedo, roughness,
reflectance, ambient_ratio, boundary, storage, storage_tail.

Examples:
  bindcheck run -o clean.png
  bindcheck run --fault roughness -o roughness.png
  bindcheck run --profile scene.yaml --fault storage`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runFault, "fault", "f", "none", "Fault to inject")
	runCmd.Flags().IntVar(&runWidth, "width", defaultSize, "Target width (ignored with a profile texture)")
	runCmd.Flags().IntVar(&runHeight, "height", defaultSize, "Target height (ignored with a profile texture)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "bindcheck.png", "Output PNG path (empty to skip)")
}

func runRun(cmd *cobra.Command, args []string) error {
	fault, err := scenario.ParseFault(runFault)
	if err != nil {
		return err
	}
	s, err := loadSetup(runWidth, runHeight)
	if err != nil {
		return err
	}

	sc := scenario.New(s.ref, s.texture, fault)
	v, err := bindcheck.NewVerifier(sc.Bindings,
		bindcheck.WithReference(s.ref),
		bindcheck.WithWorkers(workers),
	)
	if err != nil {
		return err
	}
	defer v.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := v.Dispatch(ctx, s.Width(), s.Height(), sc.Source)
	if err != nil {
		return err
	}

	if runOutput != "" {
		if err := out.SavePNG(runOutput); err != nil {
			return fmt.Errorf("failed to write %s: %w", runOutput, err)
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "profile %s, fault %s\n", s.profile.Name, sc.Name())
	sum := bindcheck.Summarize(out)
	printSummary(w, &sum)
	if !sc.Expect().Failed() {
		if p, differ := bindcheck.FirstMismatch(out, s.answer); differ {
			fmt.Fprintf(w, "render target differs from the texture at (%d, %d)\n", p.X, p.Y)
		} else {
			fmt.Fprintln(w, "render target matches the texture")
		}
	}
	return nil
}
