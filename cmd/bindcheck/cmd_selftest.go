package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/scenario"
)

// errSelfTest is returned when at least one scenario misbehaves.
var errSelfTest = errors.New("selftest failed")

var (
	selftestWidth  int
	selftestHeight int
	selftestJobs   int
)

// selftestCmd runs every scenario and checks its outcome
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the clean draw and every fault, checking each outcome",
	Long: `Dispatch the clean draw and one draw per fault.

The clean draw must reproduce the texture exactly. Every faulty draw must
paint all of its pixels with the diagnostic color of its fault and must
therefore differ from the texture.`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

func init() {
	selftestCmd.Flags().IntVar(&selftestWidth, "width", 64, "Target width (ignored with a profile texture)")
	selftestCmd.Flags().IntVar(&selftestHeight, "height", 64, "Target height (ignored with a profile texture)")
	selftestCmd.Flags().IntVar(&selftestJobs, "jobs", 4, "Scenarios dispatched concurrently")
}

// outcome is the verdict on one scenario.
type outcome struct {
	name    string
	expect  bindcheck.Diagnostic
	summary bindcheck.Summary
	problem string
}

func runSelftest(cmd *cobra.Command, args []string) error {
	s, err := loadSetup(selftestWidth, selftestHeight)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	scenarios := scenario.All(s.ref, s.texture)
	outcomes := make([]outcome, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if selftestJobs > 0 {
		g.SetLimit(selftestJobs)
	}
	for i := range scenarios {
		sc := &scenarios[i]
		g.Go(func() error {
			o, err := check(ctx, s, sc)
			if err != nil {
				return fmt.Errorf("%s: %w", sc.Name(), err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	failed := 0
	for _, o := range outcomes {
		status := "ok"
		if o.problem != "" {
			status = "FAIL"
			failed++
		}
		printer.Fprintf(w, "%-4s %-16s expect %-14s %s\n", status, o.name, o.expect, o.problem)
	}
	printer.Fprintf(w, "%d scenarios, %d failed, %dx%d\n", len(outcomes), failed, s.Width(), s.Height())
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d scenarios", errSelfTest, failed, len(outcomes))
	}
	return nil
}

// check dispatches sc and judges the render target.
func check(ctx context.Context, s *setup, sc *scenario.Scenario) (outcome, error) {
	v, err := bindcheck.NewVerifier(sc.Bindings,
		bindcheck.WithReference(s.ref),
		bindcheck.WithWorkers(workers),
	)
	if err != nil {
		return outcome{}, err
	}
	defer v.Close()

	out, err := v.Dispatch(ctx, s.Width(), s.Height(), sc.Source)
	if err != nil {
		return outcome{}, err
	}

	o := outcome{
		name:    sc.Name(),
		expect:  sc.Expect(),
		summary: bindcheck.Summarize(out),
	}
	total := s.Width() * s.Height()
	switch {
	case !o.expect.Failed():
		if p, differ := bindcheck.FirstMismatch(out, s.answer); differ {
			o.problem = fmt.Sprintf("differs from the texture at (%d, %d)", p.X, p.Y)
		}
	case o.summary.Counts.Of(o.expect) != total:
		o.problem = fmt.Sprintf("%d of %d pixels carry the diagnostic, present %v",
			o.summary.Counts.Of(o.expect), total, o.summary.Present())
	case bindcheck.SameImage(out, s.answer):
		o.problem = "equals the texture"
	}
	return o, nil
}
