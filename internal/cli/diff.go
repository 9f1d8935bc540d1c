package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pbxgraph/pkg/pbx"
	"github.com/matzehuels/pbxgraph/pkg/pbxdiff"
)

// newDiffCmd creates the diff command for comparing two project documents.
//
// The comparison is content-based: two documents with the same structure
// but different object identifiers are reported as equal.
func newDiffCmd() *cobra.Command {
	var contextLines int

	cmd := &cobra.Command{
		Use:   "diff [project-a] [project-b]",
		Short: "Compare two project documents by content",
		Long: `Load two project documents and compare their object graphs ignoring
identifiers. Changed lines are shown with surrounding context, configurable
via --context or the diff.context config key.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("context") {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				contextLines = cfg.Diff.Context
			}
			return runDiff(cmd, args[0], args[1], contextLines)
		},
	}

	cmd.Flags().IntVarP(&contextLines, "context", "c", 3, "unchanged lines shown around each change")

	return cmd
}

func runDiff(cmd *cobra.Command, pathA, pathB string, contextLines int) error {
	logger := loggerFromContext(cmd.Context())

	a, err := pbx.Open(pathA)
	if err != nil {
		return err
	}
	b, err := pbx.Open(pathB)
	if err != nil {
		return err
	}
	logger.Debug("loaded documents", "a", a.Len(), "b", b.Len())

	report := pbxdiff.Compare(a, b)
	if report.Equal {
		printSuccess("documents are equal")
		return nil
	}

	printError("documents differ")
	for _, line := range strings.Split(report.Format(contextLines), "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			fmt.Println(styleDiffDelete.Render(line))
		case strings.HasPrefix(line, "+"):
			fmt.Println(styleDiffInsert.Render(line))
		default:
			fmt.Println(StyleDim.Render(line))
		}
	}

	return nil
}
