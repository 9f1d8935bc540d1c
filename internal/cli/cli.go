// Package cli implements the pbxgraph command-line interface.
//
// This package provides commands for inspecting Xcode project documents,
// diffing two documents, rewriting object identifiers deterministically,
// and drawing the object graph. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - show: Print a summary of a project document
//   - diff: Compare two project documents by content
//   - stabilize: Rewrite identifiers to content-derived values
//   - dot: Draw the object graph as DOT or SVG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/pbxgraph/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

// appName is the application name used for directories and display.
const appName = "pbxgraph"
