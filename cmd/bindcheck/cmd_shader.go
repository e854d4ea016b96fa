package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/shader"
)

var (
	shaderTarget  string
	shaderOutput  string
	shaderBuffers string
)

// shaderCmd emits the verification shader
var shaderCmd = &cobra.Command{
	Use:   "shader",
	Short: "Emit the verification shader for a GPU backend",
	Long: `Emit the verification shader in one of wgsl, spirv, glsl, msl or hlsl. The
reference constants it checks against come from --profile.

GLSL and HLSL are emitted per entry point. With --output, their files get the
entry point name inserted before the extension (chain.vs_main.glsl).

--buffers writes the byte images of the bound resources and of the test
geometry for the reference profile, ready for upload.`,
	Args: cobra.NoArgs,
	RunE: runShader,
}

func init() {
	shaderCmd.Flags().StringVarP(&shaderTarget, "target", "t", "wgsl", "Target language")
	shaderCmd.Flags().StringVarP(&shaderOutput, "output", "o", "", "Output file (default: stdout)")
	shaderCmd.Flags().StringVar(&shaderBuffers, "buffers", "", "Directory to write resource buffers to")
}

func runShader(cmd *cobra.Command, args []string) error {
	target, err := shader.ParseTarget(shaderTarget)
	if err != nil {
		return err
	}
	_, ref, err := loadReference()
	if err != nil {
		return err
	}
	prog, err := shader.New(ref)
	if err != nil {
		return err
	}
	outputs, err := prog.Translate(target)
	if err != nil {
		return err
	}

	for _, o := range outputs {
		if shaderOutput == "" {
			if _, err := cmd.OutOrStdout().Write(o.Code); err != nil {
				return err
			}
			continue
		}
		path := shaderOutput
		if len(outputs) > 1 {
			path = entryPath(shaderOutput, o.EntryPoint)
		}
		if err := os.WriteFile(path, o.Code, 0o644); err != nil { //nolint:gosec // shader source is not secret
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s, %d bytes)\n", path, target, len(o.Code))
	}

	if shaderBuffers != "" {
		return writeBuffers(cmd, shaderBuffers)
	}
	return nil
}

// entryPath inserts the entry point before the extension of path.
func entryPath(path, entry string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + entry + ext
}

func writeBuffers(cmd *cobra.Command, dir string) error {
	s, err := loadSetup(0, 0)
	if err != nil {
		return err
	}
	b := s.ref.Bindings(s.texture)
	bufs := shader.EncodeBindings(&b)

	var vertices []shader.Vertex
	var instances []shader.Instance
	for _, d := range shader.Geometry(s.ref.Transform) {
		vertices = append(vertices, d.Vertices...)
		instances = append(instances, d.Instance)
	}

	files := []struct {
		name string
		data []byte
	}{
		{"transform.bin", bufs.Transform},
		{"material.bin", bufs.Material},
		{"storage.bin", bufs.Storage},
		{"vertices.bin", shader.MarshalVertices(vertices)},
		{"instances.bin", shader.MarshalInstances(instances)},
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // output directory
		return err
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil { //nolint:gosec // buffer images are not secret
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	bindcheck.Logger().Info("shader: wrote buffers", "dir", dir, "files", len(files))
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d buffers to %s\n", len(files), dir)
	return nil
}
