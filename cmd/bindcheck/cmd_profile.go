package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/bindcheck/profile"
)

var profileForce bool

// profileCmd groups reference profile commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage reference profiles",
}

var profileInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the default reference profile",
	Long: `Write the default reference profile to a YAML or TOML file, picked by
extension. Edit the copy to describe the values your pipeline binds.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileInit,
}

var profileCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the --profile reference",
	Args:  cobra.NoArgs,
	RunE:  runProfileCheck,
}

func init() {
	profileInitCmd.Flags().BoolVar(&profileForce, "force", false, "Overwrite an existing file")

	profileCmd.AddCommand(profileInitCmd)
	profileCmd.AddCommand(profileCheckCmd)
}

func runProfileInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !profileForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force)", path)
		}
	}
	if err := profile.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runProfileCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSetup(0, 0)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "profile %s: ok\n", s.profile.Name)
	fmt.Fprintf(w, "  albedo       %v\n", s.ref.Material.Albedo)
	fmt.Fprintf(w, "  roughness    %v\n", s.ref.Material.Roughness)
	fmt.Fprintf(w, "  reflectance  %v\n", s.ref.Material.Reflectance)
	fmt.Fprintf(w, "  ambient      %v\n", s.ref.Material.AmbientRatio)
	fmt.Fprintf(w, "  storage      %d entries\n", len(s.ref.StorageBuffer()))
	fmt.Fprintf(w, "  texture      %dx%d\n", s.Width(), s.Height())
	return nil
}
