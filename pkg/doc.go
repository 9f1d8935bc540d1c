// Package pkg provides the core libraries for working with Xcode project documents.
//
// # Overview
//
// pbxgraph models a project.pbxproj document as a graph of typed objects
// with reference-counted lifetimes. The pkg directory is organized into
// five areas:
//
//  1. [pbx] - Domain logic (object store, lifecycle, identifier allocation, queries)
//  2. [plist] - Property list reading and writing (OpenStep format)
//  3. [pbxdiff] - Content-based comparison of two documents
//  4. [render] - Node-link diagrams of the object graph
//  5. [errors] - Structured errors with stable codes
//
// # Architecture
//
// The typical data flow through pbxgraph:
//
//	project.pbxproj file
//	         ↓
//	    [plist] package (parse the property list)
//	         ↓
//	    [pbx] package (materialize and mutate the object graph)
//	         ↓
//	    [pbxdiff] / [render] packages (compare or draw)
//	         ↓
//	    project.pbxproj / diff text / DOT / SVG output
//
// # Quick Start
//
//	s, err := pbx.Open("App.xcodeproj")
//	if err != nil {
//	    return err
//	}
//	for _, target := range s.Targets() {
//	    fmt.Println(target.DisplayName())
//	}
//
// [pbx]: https://pkg.go.dev/github.com/matzehuels/pbxgraph/pkg/pbx
// [plist]: https://pkg.go.dev/github.com/matzehuels/pbxgraph/pkg/plist
// [pbxdiff]: https://pkg.go.dev/github.com/matzehuels/pbxgraph/pkg/pbxdiff
// [render]: https://pkg.go.dev/github.com/matzehuels/pbxgraph/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/pbxgraph/pkg/errors
package pkg
