package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pbxgraph/pkg/pbx"
)

// newShowCmd creates the show command for summarizing a project document.
func newShowCmd() *cobra.Command {
	var listFiles bool

	cmd := &cobra.Command{
		Use:   "show [project]",
		Short: "Print a summary of a project document",
		Long: `Load a project document and print its metadata, targets, and build
configurations. The argument is an .xcodeproj directory or a project.pbxproj
file path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], listFiles)
		},
	}

	cmd.Flags().BoolVar(&listFiles, "files", false, "list file references")

	return cmd
}

func runShow(cmd *cobra.Command, path string, listFiles bool) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	s, err := pbx.Open(path)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d objects", s.Len()))

	fmt.Println(StyleTitle.Render(s.Root().DisplayName()))
	printKeyValue("path", s.Path())
	printKeyValue("root", s.Root().ID())
	printKeyValue("archive version", s.ArchiveVersion())
	printKeyValue("object version", s.ObjectVersion())
	printKeyValue("objects", fmt.Sprintf("%d", s.Len()))

	fmt.Println()
	fmt.Println(StyleHighlight.Render("Objects by kind"))
	for _, kc := range countByIsa(s) {
		printDetail("%-32s %d", kc.isa, kc.n)
	}

	targets := s.Targets()
	fmt.Println()
	fmt.Println(StyleHighlight.Render(fmt.Sprintf("Targets (%d)", len(targets))))
	for _, target := range targets {
		printDetail("%s (%s)", target.DisplayName(), target.Isa())
	}

	if list := s.BuildConfigurationList(); list != nil {
		configs := list.Refs("buildConfigurations")
		fmt.Println()
		fmt.Println(StyleHighlight.Render(fmt.Sprintf("Configurations (%d)", len(configs))))
		for _, config := range configs {
			printDetail("%s", config.DisplayName())
		}
	}

	if listFiles {
		refs := s.FileReferences()
		fmt.Println()
		fmt.Println(StyleHighlight.Render(fmt.Sprintf("Files (%d)", len(refs))))
		for _, ref := range refs {
			printDetail("%s", ref.DisplayName())
		}
	}

	return nil
}

// kindCount is one row of the per-kind object breakdown.
type kindCount struct {
	isa string
	n   int
}

// countByIsa tallies objects per isa, sorted by isa for stable output.
func countByIsa(s *pbx.Store) []kindCount {
	counts := make(map[string]int)
	for _, o := range s.Objects() {
		counts[o.Isa()]++
	}
	out := make([]kindCount, 0, len(counts))
	for _, isa := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, kindCount{isa: isa, n: counts[isa]})
	}
	return out
}
