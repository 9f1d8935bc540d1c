package pbx

import (
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/matzehuels/pbxgraph/pkg/errors"
	"github.com/matzehuels/pbxgraph/pkg/plist"
)

// Last known document versions. Loading a document whose versions exceed
// these bounds fails hard: a newer format must never be re-saved through
// an implementation that does not understand it.
const (
	LastKnownArchiveVersion = 1
	LastKnownObjectVersion  = 77
)

// DefaultObjectVersion is the object-model version written into freshly
// constructed stores.
const DefaultObjectVersion = "56"

// Options configures store construction.
type Options struct {
	// Random supplies entropy for identifier allocation.
	// Defaults to crypto/rand. Inject a deterministic reader in tests.
	Random io.Reader

	// Path is the origin document location (the .xcodeproj directory).
	// Empty means not yet persisted anywhere.
	Path string
}

// Store owns the identifier→Object mapping of one project document. It
// is the single source of truth for reachability: an object exists in
// the graph iff it is in the mapping, and it is in the mapping iff at
// least one relationship slot (the store's own root-holding slot
// included) points at it - except freshly created objects, which sit at
// referrer count zero until their creator wires them in.
//
// A Store is not internally synchronized. Guard the whole store with one
// lock if concurrent access is needed; cascading destruction touches an
// unbounded transitive set of objects in a single logical operation, so
// finer-grained locking cannot be safe.
type Store struct {
	path string
	root *Object

	archiveVersion string
	objectVersion  string
	classes        map[string]any

	objects map[string]*Object
	order   []string // insertion order of the mapping

	alloc     *idAllocator
	destroyed map[string]bool // identifiers retired in this session, never reused

	dirty bool
}

// New constructs a store from scratch: a fresh root project object held
// by the store itself, wired to an empty main group and an empty build
// configuration list. The store starts dirty.
func New(opts *Options) *Store {
	if opts == nil {
		opts = &Options{}
	}
	random := opts.Random
	if random == nil {
		random = rand.Reader
	}

	s := &Store{
		path:           normalizeDocPath(opts.Path),
		archiveVersion: "1",
		objectVersion:  DefaultObjectVersion,
		classes:        map[string]any{},
		objects:        map[string]*Object{},
		destroyed:      map[string]bool{},
		dirty:          true,
	}
	s.alloc = newIDAllocator(random, s.isTaken)

	root := s.Create(KindProject)
	s.root = root
	s.addReferrer(root) // the store's own root-holding slot

	mainGroup := s.Create(KindGroup)
	configList := s.Create(KindConfigurationList)
	// Root wiring cannot fail: both targets are live and the attributes
	// are in the project schema.
	_ = root.SetRef("mainGroup", mainGroup)
	_ = root.SetRef("buildConfigurationList", configList)

	return s
}

// Path returns the origin document location, or "" if the store has
// never been persisted.
func (s *Store) Path() string { return s.path }

// Root returns the distinguished root object (the PBXProject).
func (s *Store) Root() *Object { return s.root }

// ArchiveVersion returns the document's archive version string.
func (s *Store) ArchiveVersion() string { return s.archiveVersion }

// ObjectVersion returns the document's object-model version string.
func (s *Store) ObjectVersion() string { return s.objectVersion }

// Create allocates a fresh identifier, constructs an object of the given
// kind with kind-appropriate defaults, and registers it at referrer
// count zero. The object becomes reachable once the caller points a
// relationship attribute at it; until then a RemoveReferrer cascade can
// never collect it, but it also will not be reachable from the root.
func (s *Store) Create(kind Kind) *Object {
	o := &Object{
		id:    s.alloc.next(),
		kind:  kind,
		attrs: defaultAttrs(kind),
		store: s,
	}
	s.register(o)
	s.MarkDirty()
	return o
}

// Lookup returns the object with the given identifier, or nil if it is
// not in the mapping (unreachable, destroyed, or never existed). O(1).
func (s *Store) Lookup(id string) *Object {
	return s.objects[id]
}

// Objects returns every live object in mapping insertion order. The
// order bears no relation to any on-disk order.
func (s *Store) Objects() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// Identifiers returns every live identifier in mapping insertion order.
func (s *Store) Identifiers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of live objects.
func (s *Store) Len() int { return len(s.objects) }

// AddReferrer records one additional relationship slot pointing at
// target. Callers normally never need this: the Object ref setters do
// the accounting. Re-adding a referrer to an already-destroyed
// identifier is a caller-logic bug and fails hard.
func (s *Store) AddReferrer(target *Object) error {
	if err := s.checkAttachable(target); err != nil {
		return err
	}
	s.addReferrer(target)
	return nil
}

// RemoveReferrer releases one relationship slot pointing at target.
// When the count reaches zero the object is destroyed and every credit
// it held on other objects is released in turn, depth-first.
//
// The store's own root-holding credit cannot be released this way: the
// root's count stays at least 1 for the store's lifetime, and
// [Store.ReplaceRoot] is the only path that retires a root.
func (s *Store) RemoveReferrer(target *Object) error {
	if target == nil || s.objects[target.id] != target {
		return errors.New(errors.ErrCodeDanglingReference,
			"cannot remove referrer: object is not in this store")
	}
	if target == s.root && target.refCount <= 1 {
		return errors.New(errors.ErrCodeDanglingReference,
			"cannot release the root's last credit; use ReplaceRoot to swap the root")
	}
	s.removeReferrer(target.id, nil)
	s.pruneDanglingIDs()
	return nil
}

// ReplaceRoot swaps the root object. The store's root-holding credit
// moves from the old root to newRoot first, so the old graph is
// collected unless something else still points into it.
func (s *Store) ReplaceRoot(newRoot *Object) error {
	if err := s.checkAttachable(newRoot); err != nil {
		return err
	}
	if newRoot.kind != KindProject {
		return errors.New(errors.ErrCodeInvalidKind,
			"root object must be a %s, got %s", KindProject, newRoot.kind)
	}
	old := s.root
	s.root = newRoot
	s.addReferrer(newRoot)
	if old != nil {
		s.removeReferrer(old.id, nil)
		s.pruneDanglingIDs()
	}
	s.MarkDirty()
	return nil
}

// MarkDirty flags the store as diverged from its persisted form.
// Mutation helpers call it; plain attribute writes deliberately do not
// (see DESIGN.md on the dirty-flag trigger set).
func (s *Store) MarkDirty() { s.dirty = true }

// IsDirty reports whether the store has unsaved changes. A fresh store
// is dirty; saving to the origin location clears the flag.
func (s *Store) IsDirty() bool { return s.dirty }

// Save persists the store. An empty path saves to the origin location;
// a store that has no origin and is given no path is an invalid-input
// error. The destination directory is created if absent and the project
// file overwritten. Saving to the origin clears the dirty flag; the
// first save of an origin-less store establishes its origin.
func (s *Store) Save(path string) error {
	target := normalizeDocPath(path)
	if target == "" {
		target = s.path
	}
	if target == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store has no origin; a save path is required")
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", target)
	}
	file := filepath.Join(target, "project.pbxproj")
	if err := plist.Write(s.ToTree(), file); err != nil {
		return err
	}

	if s.path == "" {
		s.path = target
	}
	if target == s.path {
		s.dirty = false
	}
	return nil
}

// EqualShallow reports store identity: same origin location and same
// root identifier. O(1) and intentionally not a content comparison.
func EqualShallow(a, b *Store) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.path == b.path && a.root.id == b.root.id
}

// EqualDeep reports structural equality of the persisted forms: the
// ToTree outputs match. Origin locations are irrelevant.
func EqualDeep(a, b *Store) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a.ToTree(), b.ToTree())
}

// register inserts a new object into the mapping and retires its
// identifier from future allocation.
func (s *Store) register(o *Object) {
	s.objects[o.id] = o
	s.order = append(s.order, o.id)
	s.alloc.reserve(o.id)
}

// isTaken reports whether an identifier is unusable for allocation:
// live, destroyed, or ever issued.
func (s *Store) isTaken(id string) bool {
	if _, ok := s.objects[id]; ok {
		return true
	}
	return s.destroyed[id]
}

// checkAttachable verifies target can gain a referrer in this store.
func (s *Store) checkAttachable(target *Object) error {
	if target == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil object")
	}
	if target.store != s {
		return errors.New(errors.ErrCodeInvalidInput, "object %s belongs to a different store", target.id)
	}
	if s.objects[target.id] != target {
		return errors.New(errors.ErrCodeDanglingReference,
			"object %s was destroyed; identifiers are never reattached", target.id)
	}
	return nil
}

func (s *Store) addReferrer(target *Object) {
	target.refCount++
}

// removeReferrer drops one credit from the object with the given
// identifier. Transition to zero destroys the object: it leaves the
// mapping immediately, and one credit is released from every distinct
// target of each of its relationship attributes, with the destroyed
// object as the releasing referrer.
func (s *Store) removeReferrer(id string, by *Object) {
	o, ok := s.objects[id]
	if !ok {
		return
	}
	o.refCount--
	if o.refCount > 0 {
		return
	}

	delete(s.objects, id)
	s.destroyed[id] = true
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	for _, spec := range refSchema[o.kind] {
		if spec.many {
			for _, child := range distinct(o.refIDs(spec.name)) {
				s.removeReferrer(child, o)
			}
			continue
		}
		if child, ok := o.attrs[spec.name].(string); ok && child != "" {
			s.removeReferrer(child, o)
		}
	}
}

// pruneDanglingIDs removes identifiers of destroyed objects from the
// relationship attributes of every survivor. Destruction cascades keep
// counts right but the destroyed object's id may still sit in a
// survivor's list when the survivor was not the one being destroyed.
func (s *Store) pruneDanglingIDs() {
	for _, id := range s.order {
		o := s.objects[id]
		for _, spec := range refSchema[o.kind] {
			if spec.many {
				ids := o.refIDs(spec.name)
				kept := ids[:0:0]
				for _, cid := range ids {
					if _, live := s.objects[cid]; live {
						kept = append(kept, cid)
					}
				}
				if len(kept) != len(ids) {
					o.attrs[spec.name] = kept
				}
				continue
			}
			if cid, ok := o.attrs[spec.name].(string); ok && cid != "" {
				if _, live := s.objects[cid]; !live {
					delete(o.attrs, spec.name)
				}
			}
		}
	}
}

// normalizeDocPath cleans a document path, accepting either the
// .xcodeproj directory or the project.pbxproj file inside it.
func normalizeDocPath(path string) string {
	if path == "" {
		return ""
	}
	path = filepath.Clean(path)
	if strings.HasSuffix(path, "project.pbxproj") {
		return filepath.Dir(path)
	}
	return path
}
