package pbx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Stabilize deterministically recomputes every identifier in the graph
// from each object's content and its position in a canonical traversal,
// so regenerating an unchanged graph reproduces the same identifiers
// and machine-generated projects diff cleanly between runs.
//
// It operates in two passes: first a new identifier is computed for
// every object without touching any relationship attribute, then every
// relationship attribute is rewritten through the old→new mapping and
// the store re-keyed. Retired identifiers are never reissued.
//
// Stabilize is only suitable for fully machine-generated graphs. When
// identifiers must stay stable across human edits, do not use it:
// content edits move identifiers by design.
func (s *Store) Stabilize() {
	// Pass 1: canonical traversal assigns each object a path, and the
	// path plus identifier-free content yields its new identifier.
	paths := make(map[string]string, len(s.objects))
	s.assignPaths(s.root, "/rootObject", paths)
	for i, id := range s.order {
		if _, seen := paths[id]; !seen {
			// Unreachable-from-root objects (created but not yet wired)
			// keyed by their position in the mapping.
			paths[id] = fmt.Sprintf("/detached[%d]", i)
		}
	}

	renames := make(map[string]string, len(s.objects))
	assigned := make(map[string]bool, len(s.objects))
	for _, id := range s.order {
		o := s.objects[id]
		next := digestID(paths[id]+"\n"+canonicalContent(o), assigned)
		renames[id] = next
		assigned[next] = true
	}

	// Pass 2: rewrite relationship attributes, then re-key the mapping.
	for _, id := range s.order {
		o := s.objects[id]
		for _, spec := range refSchema[o.kind] {
			if spec.many {
				ids := o.refIDs(spec.name)
				for i, cid := range ids {
					if next, ok := renames[cid]; ok {
						ids[i] = next
					}
				}
				continue
			}
			if cid, ok := o.attrs[spec.name].(string); ok {
				if next, ok := renames[cid]; ok {
					o.attrs[spec.name] = next
				}
			}
		}
	}

	objects := make(map[string]*Object, len(s.objects))
	for i, id := range s.order {
		o := s.objects[id]
		next := renames[id]
		o.id = next
		objects[next] = o
		s.order[i] = next
		if next != id {
			s.destroyed[id] = true
		}
		s.alloc.reserve(next)
	}
	s.objects = objects
	s.MarkDirty()
}

// assignPaths walks the graph depth-first in schema-declared attribute
// order, recording the first-encounter path of every reachable object.
func (s *Store) assignPaths(o *Object, path string, paths map[string]string) {
	if _, seen := paths[o.id]; seen {
		return
	}
	paths[o.id] = path
	for _, spec := range refSchema[o.kind] {
		if spec.many {
			for i, cid := range o.refIDs(spec.name) {
				if child := s.objects[cid]; child != nil {
					s.assignPaths(child, fmt.Sprintf("%s/%s[%d]", path, spec.name, i), paths)
				}
			}
			continue
		}
		if cid, ok := o.attrs[spec.name].(string); ok && cid != "" {
			if child := s.objects[cid]; child != nil {
				s.assignPaths(child, path+"/"+spec.name, paths)
			}
		}
	}
}

// canonicalContent renders an object's identifier-free content: the isa
// tag plus every plain attribute in sorted key order. Relationship
// attributes are excluded - they hold the very identifiers being
// recomputed.
func canonicalContent(o *Object) string {
	var b strings.Builder
	b.WriteString(o.Isa())

	keys := make([]string, 0, len(o.attrs))
	for name := range o.attrs {
		if _, isRef := refSpecFor(o.kind, name); isRef {
			continue
		}
		keys = append(keys, name)
	}
	sort.Strings(keys)

	for _, name := range keys {
		b.WriteByte('\n')
		b.WriteString(name)
		b.WriteByte('=')
		writeCanonicalValue(&b, o.attrs[name])
	}
	return b.String()
}

// writeCanonicalValue renders nested plain values deterministically.
func writeCanonicalValue(b *strings.Builder, v any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(k)
			b.WriteByte('=')
			writeCanonicalValue(b, t[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('(')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonicalValue(b, e)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "%v", t)
	}
}

// digestID derives a 24-character uppercase hex identifier from seed,
// rehashing on the (astronomically unlikely) truncation collision so
// the result stays deterministic and unique.
func digestID(seed string, assigned map[string]bool) string {
	sum := sha256.Sum256([]byte(seed))
	for {
		id := strings.ToUpper(hex.EncodeToString(sum[:12]))
		if !assigned[id] {
			return id
		}
		sum = sha256.Sum256(sum[:])
	}
}
