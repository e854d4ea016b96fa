// Command bindcheck dispatches binding verification draws on the CPU, checks
// read-back images, and emits the verification shader for GPU backends.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/bindcheck"
)

var (
	// Global flags
	verbose     bool
	profilePath string
	workers     int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bindcheck",
	Short: "bindcheck - GPU resource-binding verification",
	Long: `bindcheck verifies that every resource a draw binds reaches the fragment
stage intact: vertex attributes, per-instance data, uniform buffers, a storage
buffer and a sampled texture.

Each invocation runs an ordered chain of checks against known reference
values. The first failing check paints the pixel with its diagnostic color;
when every check passes the pixel carries the sampled texture color, so a
clean draw reproduces the texture exactly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			bindcheck.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "Reference profile (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "j", 0, "Dispatch workers (0 = GOMAXPROCS)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(shaderCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bindcheck version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bindcheck %s\n", bindcheck.Version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
