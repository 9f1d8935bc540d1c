package pbx

import (
	"github.com/matzehuels/pbxgraph/pkg/plist"
)

// ToTree flattens the store into its persisted property-list form:
// every live object rendered into the objects table keyed by
// identifier, relationship attributes holding identifiers, plus the
// document envelope. The returned tree shares no mutable state with
// the store.
func (s *Store) ToTree() plist.Tree {
	objects := make(map[string]any, len(s.objects))
	for id, o := range s.objects {
		objects[id] = o.hashEntry()
	}
	return plist.Tree{
		"archiveVersion": s.archiveVersion,
		"classes":        copyValue(s.classes),
		"objectVersion":  s.objectVersion,
		"objects":        objects,
		"rootObject":     s.root.id,
	}
}

// ToDiffTree renders the graph with every relationship attribute
// inlined by value instead of by identifier, starting from the root.
// An object referenced twice appears twice; identifiers appear nowhere.
// The output deliberately loses uniqueness information - it exists so
// two graphs can be compared structurally without identifier churn
// showing up in the diff.
func (s *Store) ToDiffTree() plist.Tree {
	return plist.Tree{
		"archiveVersion": s.archiveVersion,
		"classes":        copyValue(s.classes),
		"objectVersion":  s.objectVersion,
		"rootObject":     s.diffEntry(s.root, map[string]bool{}),
	}
}

// diffEntry renders one object with relationships inlined. visiting
// guards the active path: the relationship schema keeps the graph
// cycle-free (container proxies hold plain identifier strings), but a
// hand-built graph violating that convention must still terminate.
func (s *Store) diffEntry(o *Object, visiting map[string]bool) map[string]any {
	if visiting[o.id] {
		return map[string]any{"isa": o.Isa(), "cyclic": "1"}
	}
	visiting[o.id] = true
	defer delete(visiting, o.id)

	entry := make(map[string]any, len(o.attrs)+1)
	entry["isa"] = o.Isa()
	for name, value := range o.attrs {
		spec, isRef := refSpecFor(o.kind, name)
		if !isRef {
			entry[name] = copyValue(value)
			continue
		}
		if spec.many {
			ids, _ := value.([]string)
			list := make([]any, 0, len(ids))
			for _, id := range ids {
				if child := s.objects[id]; child != nil {
					list = append(list, s.diffEntry(child, visiting))
				}
			}
			entry[name] = list
			continue
		}
		if id, ok := value.(string); ok && id != "" {
			if child := s.objects[id]; child != nil {
				entry[name] = s.diffEntry(child, visiting)
			}
		}
	}
	return entry
}
