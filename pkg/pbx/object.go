package pbx

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/pbxgraph/pkg/errors"
)

// Object is a single node of the project graph: an identifier, a kind,
// and a bag of attributes. Relationship attributes hold identifiers of
// other objects (one or an ordered list, fixed per kind by refSchema);
// everything else is a plain value persisted verbatim.
//
// Objects are created only through [Store.Create] or by loading a
// document; the zero value is not usable. All relationship mutation
// goes through the SetRef/AddRef/RemoveRef family, which keeps the
// owning store's referrer accounting correct. There is no way to write
// a dangling identifier through the public API.
type Object struct {
	id       string
	kind     Kind
	attrs    map[string]any
	refCount int
	store    *Store
}

// ID returns the object's identifier: 24 uppercase hex characters,
// unique within the owning store.
func (o *Object) ID() string { return o.id }

// Kind returns the object's immutable kind.
func (o *Object) Kind() Kind { return o.kind }

// Isa returns the persisted isa tag for the object's kind.
func (o *Object) Isa() string { return o.kind.Isa() }

// ReferrerCount returns the number of relationship-attribute slots
// currently pointing at this object. The owning store's root-holding
// slot counts as one.
func (o *Object) ReferrerCount() int { return o.refCount }

// Get returns the value of a plain attribute, or nil if unset.
// Relationship attributes are read through Ref and Refs instead.
func (o *Object) Get(name string) any {
	if _, ok := refSpecFor(o.kind, name); ok {
		return nil
	}
	return o.attrs[name]
}

// GetString returns a plain attribute's value as a string, or "" if the
// attribute is unset or not a scalar.
func (o *Object) GetString(name string) string {
	v, ok := o.Get(name).(string)
	if !ok {
		return ""
	}
	return v
}

// Set writes a plain attribute. Setting a relationship attribute this
// way is rejected: identifiers written directly would bypass referrer
// accounting.
func (o *Object) Set(name string, value any) error {
	if _, ok := refSpecFor(o.kind, name); ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"%s.%s is a relationship attribute; use SetRef/AddRef", o.kind, name)
	}
	if name == "isa" {
		return errors.New(errors.ErrCodeInvalidInput, "isa is immutable")
	}
	o.attrs[name] = value
	return nil
}

// Unset removes a plain attribute. Relationship attributes are cleared
// through ClearRef.
func (o *Object) Unset(name string) error {
	if _, ok := refSpecFor(o.kind, name); ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"%s.%s is a relationship attribute; use ClearRef", o.kind, name)
	}
	delete(o.attrs, name)
	return nil
}

// Ref resolves a to-one relationship attribute. Returns nil if the
// attribute is unset or not a to-one relationship of this kind.
func (o *Object) Ref(name string) *Object {
	spec, ok := refSpecFor(o.kind, name)
	if !ok || spec.many {
		return nil
	}
	id, ok := o.attrs[name].(string)
	if !ok {
		return nil
	}
	return o.store.Lookup(id)
}

// Refs resolves a to-many relationship attribute in declared order.
// Returns nil if the attribute is not a to-many relationship of this kind.
func (o *Object) Refs(name string) []*Object {
	spec, ok := refSpecFor(o.kind, name)
	if !ok || !spec.many {
		return nil
	}
	ids, _ := o.attrs[name].([]string)
	out := make([]*Object, 0, len(ids))
	for _, id := range ids {
		if target := o.store.Lookup(id); target != nil {
			out = append(out, target)
		}
	}
	return out
}

// refIDs returns the identifier list behind a to-many attribute.
func (o *Object) refIDs(name string) []string {
	ids, _ := o.attrs[name].([]string)
	return ids
}

// SetRef points a to-one relationship attribute at target, adjusting
// referrer credits on both the previous and the new target. A nil
// target clears the attribute (same as ClearRef).
func (o *Object) SetRef(name string, target *Object) error {
	if _, err := o.relSpec(name, false); err != nil {
		return err
	}

	if target == nil {
		return o.ClearRef(name)
	}
	if err := o.store.checkAttachable(target); err != nil {
		return err
	}

	prev, _ := o.attrs[name].(string)
	if prev == target.id {
		return nil
	}
	o.attrs[name] = target.id
	o.store.addReferrer(target)
	if prev != "" {
		o.store.removeReferrer(prev, o)
	}
	return nil
}

// ClearRef clears a relationship attribute, releasing the referrer
// credit of every object it pointed to.
func (o *Object) ClearRef(name string) error {
	spec, ok := refSpecFor(o.kind, name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"%s has no relationship attribute %q", o.kind, name)
	}

	if spec.many {
		ids := o.refIDs(name)
		o.attrs[name] = []string{}
		for _, id := range distinct(ids) {
			o.store.removeReferrer(id, o)
		}
		return nil
	}

	prev, _ := o.attrs[name].(string)
	delete(o.attrs, name)
	if prev != "" {
		o.store.removeReferrer(prev, o)
	}
	return nil
}

// AddRef appends target to a to-many relationship attribute. Appending
// an identifier already present in the list is a no-op for referrer
// accounting: a slot counts once per distinct target.
func (o *Object) AddRef(name string, target *Object) error {
	if _, err := o.relSpec(name, true); err != nil {
		return err
	}
	if target == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot add nil reference to %s.%s", o.kind, name)
	}
	if err := o.store.checkAttachable(target); err != nil {
		return err
	}

	ids := o.refIDs(name)
	fresh := !slices.Contains(ids, target.id)
	o.attrs[name] = append(ids, target.id)
	if fresh {
		o.store.addReferrer(target)
	}
	return nil
}

// InsertRef inserts target at index i of a to-many relationship
// attribute. Index len(list) appends.
func (o *Object) InsertRef(name string, i int, target *Object) error {
	if _, err := o.relSpec(name, true); err != nil {
		return err
	}
	if target == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot insert nil reference into %s.%s", o.kind, name)
	}
	if err := o.store.checkAttachable(target); err != nil {
		return err
	}
	ids := o.refIDs(name)
	if i < 0 || i > len(ids) {
		return errors.New(errors.ErrCodeInvalidInput, "index %d out of range for %s.%s", i, o.kind, name)
	}

	fresh := !slices.Contains(ids, target.id)
	ids = append(ids[:i:i], append([]string{target.id}, ids[i:]...)...)
	o.attrs[name] = ids
	if fresh {
		o.store.addReferrer(target)
	}
	return nil
}

// RemoveRef removes every occurrence of target from a to-many
// relationship attribute and releases its referrer credit. Removing an
// identifier that is not in the list is a no-op.
func (o *Object) RemoveRef(name string, target *Object) error {
	if _, err := o.relSpec(name, true); err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	ids := o.refIDs(name)
	kept := ids[:0:0]
	removed := false
	for _, id := range ids {
		if id == target.id {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return nil
	}
	o.attrs[name] = kept
	o.store.removeReferrer(target.id, o)
	return nil
}

// SetRefList replaces a to-many relationship attribute wholesale,
// adjusting referrer credits by set difference.
func (o *Object) SetRefList(name string, targets []*Object) error {
	if _, err := o.relSpec(name, true); err != nil {
		return err
	}
	for _, t := range targets {
		if t == nil {
			return errors.New(errors.ErrCodeInvalidInput, "cannot set nil reference in %s.%s", o.kind, name)
		}
		if err := o.store.checkAttachable(t); err != nil {
			return err
		}
	}

	old := distinct(o.refIDs(name))
	ids := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = t.id
	}
	o.attrs[name] = ids
	next := distinct(ids)

	nextSet := make(map[string]bool, len(next))
	for _, id := range next {
		nextSet[id] = true
	}
	oldSet := make(map[string]bool, len(old))
	for _, id := range old {
		oldSet[id] = true
	}

	for _, id := range next {
		if !oldSet[id] {
			o.store.addReferrer(o.store.objects[id])
		}
	}
	for _, id := range old {
		if !nextSet[id] {
			o.store.removeReferrer(id, o)
		}
	}
	return nil
}

// DisplayName returns the human-facing name of the object: the name
// attribute if set, then the last component of the path attribute, then
// kind-specific fallbacks, finally the isa tag.
func (o *Object) DisplayName() string {
	if name := o.GetString("name"); name != "" {
		return name
	}
	if path := o.GetString("path"); path != "" {
		if i := strings.LastIndexByte(path, '/'); i >= 0 {
			return path[i+1:]
		}
		return path
	}
	switch o.kind {
	case KindProject:
		return "Project"
	case KindGroup:
		return "Main Group"
	}
	return o.Isa()
}

// hashEntry renders the object as its persisted objects-table record:
// attributes verbatim, relationships as identifier or identifier list,
// isa included.
func (o *Object) hashEntry() map[string]any {
	entry := make(map[string]any, len(o.attrs)+1)
	entry["isa"] = o.Isa()
	for name, value := range o.attrs {
		if ids, ok := value.([]string); ok {
			list := make([]any, len(ids))
			for i, id := range ids {
				list[i] = id
			}
			entry[name] = list
			continue
		}
		entry[name] = copyValue(value)
	}
	return entry
}

// relSpec fetches the relationship spec for name, enforcing arity.
func (o *Object) relSpec(name string, many bool) (refSpec, error) {
	spec, ok := refSpecFor(o.kind, name)
	if !ok {
		return refSpec{}, errors.New(errors.ErrCodeInvalidInput,
			"%s has no relationship attribute %q", o.kind, name)
	}
	if spec.many != many {
		arity := "to-one"
		if spec.many {
			arity = "to-many"
		}
		return refSpec{}, errors.New(errors.ErrCodeInvalidInput,
			"%s.%s is %s", o.kind, name, arity)
	}
	return spec, nil
}

func (o *Object) String() string {
	return fmt.Sprintf("%s(%s)", o.Isa(), o.id)
}

// copyValue deep-copies plain attribute values so trees handed out by
// ToTree cannot alias store internals.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
