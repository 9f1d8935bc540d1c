// Package pbx models an Xcode project document as an object graph: a
// store of typed, uniquely identified objects cross-referenced by
// identifier, loaded from and saved to the project's property list.
//
// # Architecture
//
// The package sits above the plist boundary and below any project
// authoring conveniences:
//
//   - [Store]: the identifier→object mapping, reference-counted object
//     lifecycle, load/save, queries
//   - [Object]: one node - identifier, kind, attributes, referrers
//   - [Kind]: the closed set of object kinds (isa tags) and their
//     relationship schemas
//   - pkg/plist: the generic property-list codec underneath
//
// # Lifecycle
//
// Objects exist only inside a store. [Store.Create] registers a fresh
// object at referrer count zero; pointing any relationship attribute at
// it makes it reachable. When the last referrer releases its slot the
// object is destroyed immediately, and destruction cascades through the
// destroyed object's own relationship attributes. Identifiers of
// destroyed objects are never reused within a session.
//
// All relationship mutation goes through the [Object] ref setters
// (SetRef, AddRef, RemoveRef, ...), which keep referrer accounting
// correct; there is no way to write a dangling identifier through the
// public API.
//
// # Common operations
//
//	store, err := pbx.Open("App.xcodeproj")       // File → Store
//	err = store.Save("")                          // Store → origin file
//	tree := store.ToTree()                        // Store → plist tree
//	store, err = pbx.Load(tree, nil)              // plist tree → Store
//
// Build up a graph:
//
//	store := pbx.New(nil)
//	target := store.Create(pbx.KindNativeTarget)
//	target.Set("name", "App")
//	store.Root().AddRef("targets", target)
//
// # Determinism
//
// [Store.Stabilize] recomputes every identifier from content and
// canonical position, for machine-generated projects that must diff
// cleanly between regenerations. [Store.ToDiffTree] renders the graph
// with references inlined by value, for structural comparison that
// ignores identifiers entirely.
//
// # Concurrency
//
// A Store is single-threaded. Mutations run to completion synchronously;
// wrap the whole store in one lock if it must be shared.
package pbx
