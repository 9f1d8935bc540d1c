package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pbxgraph/pkg/errors"
	"github.com/matzehuels/pbxgraph/pkg/pbx"
	"github.com/matzehuels/pbxgraph/pkg/render"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// newDotCmd creates the dot command for drawing the object graph.
func newDotCmd() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "dot [project]",
		Short: "Draw the object graph as DOT or SVG",
		Long: `Load a project document and draw its object graph as a node-link
diagram. The default output format is SVG rendered in process; use
--format dot to emit Graphviz DOT source instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Render.Format
			}
			if !cmd.Flags().Changed("detailed") {
				detailed = cfg.Render.Detailed
			}
			if format != formatSVG && format != formatDOT {
				return errors.New(errors.ErrCodeInvalidInput,
					"invalid format: %s (must be 'svg' or 'dot')", format)
			}
			return runDot(cmd, args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include identifiers in node labels")

	return cmd
}

func runDot(cmd *cobra.Command, path, output, format string, detailed bool) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	s, err := pbx.Open(path)
	if err != nil {
		return err
	}

	dot := render.ToDOT(s, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		data, err = render.SVG(dot)
		if err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %d objects", s.Len()))

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}
	printFile(output)

	return nil
}
