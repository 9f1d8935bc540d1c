package pbx

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/pbxgraph/pkg/errors"
)

// MainGroup returns the root project's main group, or nil on a
// hand-built graph that has none.
func (s *Store) MainGroup() *Object {
	return s.root.Ref("mainGroup")
}

// BuildConfigurationList returns the root project's configuration list.
func (s *Store) BuildConfigurationList() *Object {
	return s.root.Ref("buildConfigurationList")
}

// Targets returns the root project's targets in declared order.
func (s *Store) Targets() []*Object {
	return s.root.Refs("targets")
}

// TargetNamed returns the first target whose name attribute matches,
// or nil.
func (s *Store) TargetNamed(name string) *Object {
	for _, t := range s.Targets() {
		if t.GetString("name") == name {
			return t
		}
	}
	return nil
}

// ObjectsOfKind returns every live object of the given kind in mapping
// insertion order.
func (s *Store) ObjectsOfKind(kind Kind) []*Object {
	var out []*Object
	for _, id := range s.order {
		if o := s.objects[id]; o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// FileReferences returns every live file-reference object.
func (s *Store) FileReferences() []*Object {
	return s.ObjectsOfKind(KindFileReference)
}

// ReferenceForPath returns the file reference whose resolved absolute
// filesystem path equals path. The input must be absolute; anything
// else is an invalid-argument error. The scan is linear over all file
// references.
func (s *Store) ReferenceForPath(path string) (*Object, error) {
	if err := errors.ValidateAbsolutePath(path); err != nil {
		return nil, err
	}
	want := filepath.Clean(path)
	for ref, abs := range s.resolvedFilePaths() {
		if abs == want {
			return ref, nil
		}
	}
	return nil, nil
}

// Group locates a child group by slash-delimited path under the main
// group, matching each component against the groups' display names.
// Returns nil if any component is missing.
func (s *Store) Group(path string) (*Object, error) {
	if err := errors.ValidateGroupPath(path); err != nil {
		return nil, err
	}
	current := s.MainGroup()
	if current == nil {
		return nil, nil
	}
	for _, part := range strings.Split(path, "/") {
		var next *Object
		for _, child := range current.Refs("children") {
			if child.kind.IsGroup() && child.DisplayName() == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, nil
		}
		current = next
	}
	return current, nil
}

// HostTargetForExtension returns the native target that embeds the
// given app-extension target's product. Asking for the host of a
// target that is not an app extension is a caller-logic bug and fails
// hard.
func (s *Store) HostTargetForExtension(ext *Object) (*Object, error) {
	if ext == nil || ext.kind != KindNativeTarget ||
		!strings.HasPrefix(ext.GetString("productType"), "com.apple.product-type.app-extension") {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"host target requested for a non-extension target")
	}
	product := ext.Ref("productReference")
	if product == nil {
		return nil, nil
	}
	for _, t := range s.Targets() {
		for _, phase := range t.Refs("buildPhases") {
			if phase.kind != KindCopyFilesBuildPhase {
				continue
			}
			for _, bf := range phase.Refs("files") {
				if fr := bf.Ref("fileRef"); fr == product {
					return t, nil
				}
			}
		}
	}
	return nil, nil
}

// resolvedFilePaths walks the group tree from the main group and maps
// each file reference to its absolute filesystem path where one can be
// determined. References rooted in build products or SDK locations have
// no filesystem identity here and are skipped.
func (s *Store) resolvedFilePaths() map[*Object]string {
	out := map[*Object]string{}
	projectRoot := ""
	if s.path != "" {
		projectRoot = filepath.Dir(s.path)
	}
	if main := s.MainGroup(); main != nil {
		s.walkFilePaths(main, projectRoot, projectRoot, out, map[string]bool{})
	}
	return out
}

func (s *Store) walkFilePaths(group *Object, projectRoot, base string, out map[*Object]string, seen map[string]bool) {
	if seen[group.id] {
		return
	}
	seen[group.id] = true

	groupBase := resolveSourceTree(group, projectRoot, base)
	for _, child := range group.Refs("children") {
		if child.kind.IsGroup() {
			s.walkFilePaths(child, projectRoot, groupBase, out, seen)
			continue
		}
		if child.kind != KindFileReference {
			continue
		}
		if abs := resolveSourceTree(child, projectRoot, groupBase); abs != "" && filepath.IsAbs(abs) {
			out[child] = filepath.Clean(abs)
		}
	}
}

// resolveSourceTree resolves an object's path attribute against its
// sourceTree anchor. Unknown anchors (BUILT_PRODUCTS_DIR, SDKROOT, ...)
// resolve to "".
func resolveSourceTree(o *Object, projectRoot, groupBase string) string {
	path := o.GetString("path")
	switch o.GetString("sourceTree") {
	case "<absolute>":
		return path
	case "SOURCE_ROOT":
		if projectRoot == "" {
			return ""
		}
		return filepath.Join(projectRoot, path)
	case "<group>":
		if groupBase == "" {
			return ""
		}
		return filepath.Join(groupBase, path)
	default:
		return ""
	}
}
