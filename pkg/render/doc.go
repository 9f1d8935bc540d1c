// Package render draws project object graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz:
// every live object is a node, every relationship attribute an edge
// labeled with the attribute name. It is a debugging and documentation
// aid for understanding how a project document hangs together.
//
// # Usage
//
// Convert a store to DOT format, then render to SVG:
//
//	dot := render.ToDOT(store, render.Options{Detailed: false})
//	svg, err := render.SVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the object identifier
//     alongside the display name.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [SVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB). Targets and
// the project root are emphasized; build machinery (build files, phases)
// is drawn in a muted style so the document structure reads at a glance.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external graphviz installation is required.
package render
