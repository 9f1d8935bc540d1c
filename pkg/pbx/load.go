package pbx

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/pbxgraph/pkg/errors"
	"github.com/matzehuels/pbxgraph/pkg/plist"
)

// Open reads the project document at path (the .xcodeproj directory or
// the project.pbxproj file inside it) and materializes its object
// graph. The returned store is clean: its content matches its origin.
func Open(path string) (*Store, error) {
	doc := normalizeDocPath(path)
	if doc == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "project path cannot be empty")
	}

	tree, err := plist.Read(filepath.Join(doc, "project.pbxproj"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformed, err, "open %s", doc)
	}

	s, err := Load(tree, &Options{Path: doc})
	if err != nil {
		return nil, err
	}
	s.dirty = false
	return s, nil
}

// Load materializes a store from a property-list tree. The version gate
// runs before any object is trusted: an archive or object-model version
// beyond the known maximum, or a missing root object, fails the load
// outright with no partial graph.
//
// Objects are registered in the mapping before their relationship
// attributes are resolved, so reference cycles terminate: a second
// encounter of an identifier returns the already-registered object. The
// root object carries the store's own referrer credit from the moment
// it is registered, so a partially built graph can never collect it.
func Load(tree plist.Tree, opts *Options) (*Store, error) {
	if opts == nil {
		opts = &Options{}
	}
	random := opts.Random
	if random == nil {
		random = rand.Reader
	}

	meta, err := readMetadata(tree)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:           normalizeDocPath(opts.Path),
		archiveVersion: meta.archiveVersion,
		objectVersion:  meta.objectVersion,
		classes:        meta.classes,
		objects:        map[string]*Object{},
		destroyed:      map[string]bool{},
		dirty:          true,
	}
	s.alloc = newIDAllocator(random, s.isTaken)

	root, err := s.materializeRoot(meta.rootID, meta.objects)
	if err != nil {
		return nil, err
	}
	s.root = root
	return s, nil
}

// docMetadata is the document-level envelope around the objects table.
type docMetadata struct {
	archiveVersion string
	objectVersion  string
	classes        map[string]any
	rootID         string
	objects        map[string]any
}

// readMetadata extracts and validates the document envelope.
func readMetadata(tree plist.Tree) (*docMetadata, error) {
	meta := &docMetadata{
		archiveVersion: scalarString(tree["archiveVersion"]),
		objectVersion:  scalarString(tree["objectVersion"]),
		classes:        map[string]any{},
		rootID:         scalarString(tree["rootObject"]),
	}

	if c, ok := tree["classes"].(map[string]any); ok {
		meta.classes = c // kept verbatim; semantics are not ours
	}

	if err := checkVersion("archiveVersion", meta.archiveVersion, LastKnownArchiveVersion); err != nil {
		return nil, err
	}
	if err := checkVersion("objectVersion", meta.objectVersion, LastKnownObjectVersion); err != nil {
		return nil, err
	}

	objects, ok := tree["objects"].(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformed, "document has no objects table")
	}
	meta.objects = objects

	if meta.rootID == "" {
		return nil, errors.New(errors.ErrCodeMissingRoot, "document has no root object")
	}
	if _, ok := objects[meta.rootID]; !ok {
		return nil, errors.New(errors.ErrCodeMissingRoot,
			"root object %s is not in the objects table", meta.rootID)
	}
	return meta, nil
}

// checkVersion enforces a numeric version bound.
func checkVersion(name, value string, max int) error {
	if value == "" {
		return errors.New(errors.ErrCodeMalformed, "document has no %s", name)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMalformed, err, "%s %q is not numeric", name, value)
	}
	if n > max {
		return errors.New(errors.ErrCodeUnsupportedVersion,
			"%s %d exceeds supported maximum %d", name, n, max)
	}
	return nil
}

// materializeRoot registers the root with the store's own referrer
// credit attached before any relationship resolution begins.
func (s *Store) materializeRoot(id string, objects map[string]any) (*Object, error) {
	o, err := s.registerFromTree(id, objects)
	if err != nil {
		return nil, err
	}
	if o.kind != KindProject {
		return nil, errors.New(errors.ErrCodeMalformed,
			"root object %s is a %s, want %s", id, o.kind, KindProject)
	}
	s.addReferrer(o)
	if err := s.configureFromTree(o, objects); err != nil {
		return nil, err
	}
	return o, nil
}

// materialize returns the object for id, reconstructing it from the
// objects table on first encounter. Registration happens before the
// object's own relationship attributes resolve.
func (s *Store) materialize(id string, objects map[string]any) (*Object, error) {
	if o, ok := s.objects[id]; ok {
		return o, nil
	}
	o, err := s.registerFromTree(id, objects)
	if err != nil {
		return nil, err
	}
	if err := s.configureFromTree(o, objects); err != nil {
		return nil, err
	}
	return o, nil
}

// registerFromTree constructs an object shell from its raw attribute
// dictionary, reusing the persisted identifier, and registers it.
func (s *Store) registerFromTree(id string, objects map[string]any) (*Object, error) {
	raw, ok := objects[id].(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformed,
			"referenced object %s is not in the objects table", id)
	}
	isa := scalarString(raw["isa"])
	kind, ok := KindForIsa(isa)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownIsa, "object %s has unknown isa %q", id, isa)
	}

	o := &Object{
		id:    id,
		kind:  kind,
		attrs: make(map[string]any, len(raw)),
		store: s,
	}
	s.register(o)
	return o, nil
}

// configureFromTree populates an object's attributes from its raw
// dictionary, recursively materializing relationship targets in
// declared order. Defaults are never applied here; persisted data is
// authoritative.
func (s *Store) configureFromTree(o *Object, objects map[string]any) error {
	raw := objects[o.id].(map[string]any)
	for name, value := range raw {
		if name == "isa" {
			continue
		}
		spec, isRef := refSpecFor(o.kind, name)
		if !isRef {
			o.attrs[name] = copyValue(value)
			continue
		}
		if spec.many {
			rawIDs, ok := value.([]any)
			if !ok {
				return errors.New(errors.ErrCodeMalformed,
					"%s.%s of %s is not an array", o.kind, name, o.id)
			}
			ids := make([]string, 0, len(rawIDs))
			for _, rv := range rawIDs {
				child, err := s.materialize(scalarString(rv), objects)
				if err != nil {
					return err
				}
				ids = append(ids, child.id)
			}
			o.attrs[name] = ids
			for _, cid := range distinct(ids) {
				s.addReferrer(s.objects[cid])
			}
			continue
		}
		child, err := s.materialize(scalarString(value), objects)
		if err != nil {
			return err
		}
		o.attrs[name] = child.id
		s.addReferrer(child)
	}
	return nil
}

// scalarString renders a scalar tree value as a string. The OpenStep
// codec yields strings throughout, but other plist encodings surface
// integers for numeric fields.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case uint64:
		return strconv.FormatUint(t, 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
