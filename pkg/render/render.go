package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pbxgraph/pkg/pbx"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes object identifiers in node labels.
	// When false, only the display name is shown.
	Detailed bool
}

// ToDOT converts a store's object graph to Graphviz DOT format for
// node-link visualization. The resulting DOT string can be rendered
// using [SVG].
//
// The project root and targets are emphasized; build machinery (build
// files and build phases) is drawn with grey fill so the document
// structure stands out.
func ToDOT(s *pbx.Store, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, o := range s.Objects() {
		label := fmtLabel(o, opts.Detailed)
		attrs := fmtAttrs(o, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", o.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, o := range s.Objects() {
		for _, name := range o.Kind().RefNames() {
			for _, target := range o.Refs(name) {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", o.ID(), target.ID(), name)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(o *pbx.Object, detailed bool) string {
	if !detailed {
		return o.DisplayName()
	}
	return o.DisplayName() + "\n" + o.Isa() + "\n" + o.ID()
}

func fmtAttrs(o *pbx.Object, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case o.Kind() == pbx.KindProject:
		attrs = append(attrs, "fillcolor=gold", "penwidth=2")
	case o.Kind().IsTarget():
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
	case o.Kind() == pbx.KindBuildFile, o.Kind().IsBuildPhase():
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=dimgrey")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz. The rendering runs
// in-process; no external graphviz installation is required.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
