package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gogpu/bindcheck"
)

// errDiagnostics is returned by classify --strict when the image carries
// diagnostic colors.
var errDiagnostics = errors.New("image carries diagnostic colors")

var (
	classifyJSON   bool
	classifyStrict bool
	classifyAnswer string
)

// classifyCmd summarizes a read-back image
var classifyCmd = &cobra.Command{
	Use:   "classify <image>",
	Short: "Classify the pixels of a read-back render target",
	Long: `Classify every pixel of a read-back render target (PNG, BMP, TIFF or
WebP) by diagnostic color and report the counts per failure class.

With --answer the image is also compared to the expected texture, the way a
clean GPU run is judged.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print a JSON report")
	classifyCmd.Flags().BoolVar(&classifyStrict, "strict", false, "Fail when any diagnostic color is present")
	classifyCmd.Flags().StringVar(&classifyAnswer, "answer", "", "Expected texture to compare against")
}

// report is the JSON form of a classification.
type report struct {
	RunID    string                               `json:"run_id"`
	Time     time.Time                            `json:"time"`
	Image    string                               `json:"image"`
	Width    int                                  `json:"width"`
	Height   int                                  `json:"height"`
	Clean    bool                                 `json:"clean"`
	Pass     int                                  `json:"pass"`
	Failures map[bindcheck.Diagnostic]int         `json:"failures,omitempty"`
	First    map[bindcheck.Diagnostic]image.Point `json:"first,omitempty"`
	Matches  *bool                                `json:"matches_answer,omitempty"`
	Mismatch *image.Point                         `json:"first_mismatch,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	img, err := bindcheck.LoadImage(args[0])
	if err != nil {
		return err
	}
	sum := bindcheck.Summarize(img)

	var mismatch *image.Point
	var matches *bool
	if classifyAnswer != "" {
		answer, err := bindcheck.LoadImage(classifyAnswer)
		if err != nil {
			return err
		}
		p, differ := bindcheck.FirstMismatch(img, answer)
		same := !differ
		matches = &same
		if differ {
			mismatch = &p
		}
	}

	w := cmd.OutOrStdout()
	if classifyJSON {
		r := report{
			RunID:    uuid.NewString(),
			Time:     time.Now().UTC(),
			Image:    args[0],
			Width:    sum.Width,
			Height:   sum.Height,
			Clean:    sum.Clean(),
			Pass:     sum.Counts.Of(bindcheck.DiagnosticNone),
			Failures: make(map[bindcheck.Diagnostic]int),
			First:    sum.First,
			Matches:  matches,
			Mismatch: mismatch,
		}
		for _, d := range sum.Present() {
			r.Failures[d] = sum.Counts.Of(d)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return err
		}
	} else {
		printSummary(w, &sum)
		if matches != nil {
			if *matches {
				fmt.Fprintln(w, "matches the answer texture")
			} else {
				fmt.Fprintf(w, "differs from the answer texture at (%d, %d)\n", mismatch.X, mismatch.Y)
			}
		}
	}

	if classifyStrict && !sum.Clean() {
		return fmt.Errorf("%w: %v", errDiagnostics, sum.Present())
	}
	return nil
}
