package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pbxgraph/pkg/pbx"
)

// newStabilizeCmd creates the stabilize command for rewriting identifiers.
//
// Stabilized identifiers are derived from object content and position, so
// two checkouts of the same project produce identical documents and diffs
// stay readable.
func newStabilizeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stabilize [project]",
		Short: "Rewrite identifiers to content-derived values",
		Long: `Load a project document, replace every object identifier with a
deterministic content-derived value, and save the result. Without --output
the document is rewritten in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStabilize(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this document instead of in place")

	return cmd
}

func runStabilize(cmd *cobra.Command, path, output string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	s, err := pbx.Open(path)
	if err != nil {
		return err
	}

	s.Stabilize()

	if output == "" {
		output = s.Path()
	}
	if err := s.Save(output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Stabilized %d objects", s.Len()))
	printFile(output)

	return nil
}
