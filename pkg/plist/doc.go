// Package plist reads and writes the typed property-list trees that back
// Xcode project documents.
//
// This package is a thin boundary around the external codec
// (howett.net/plist). It deliberately knows nothing about project
// semantics: it deals in generic trees of dictionaries, arrays, and
// scalars. Interpreting a tree as an object graph is the job of
// [github.com/matzehuels/pbxgraph/pkg/pbx].
//
// # Trees
//
// A [Tree] is a plain map[string]any. Nested values are
// map[string]any, []any, or scalars (strings in practice - the
// OpenStep format is untyped, so everything round-trips as text).
//
// # Common operations
//
//	tree, err := plist.Read("App.xcodeproj/project.pbxproj")  // File → Tree
//	err = plist.Write(tree, "App.xcodeproj/project.pbxproj")  // Tree → File
//	data, err := plist.Marshal(tree)                          // Tree → []byte
//	tree, err = plist.Parse(data)                             // []byte → Tree
//
// Output uses the OpenStep text format with tab indentation, the format
// Xcode itself writes.
package plist
