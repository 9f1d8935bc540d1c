package pbx

import (
	"testing"

	"github.com/matzehuels/pbxgraph/pkg/errors"
)

func TestUnset(t *testing.T) {
	s := testStore(t, 31)
	file := s.Create(KindFileReference)
	if err := s.MainGroup().AddRef("children", file); err != nil {
		t.Fatalf("AddRef() error = %v", err)
	}
	if err := file.Set("name", "main.swift"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := file.Unset("name"); err != nil {
		t.Fatalf("Unset() error = %v", err)
	}
	if file.Get("name") != nil {
		t.Error("name should be gone after Unset")
	}

	// Unsetting an attribute that was never set is a no-op.
	if err := file.Unset("name"); err != nil {
		t.Errorf("Unset() of an absent attribute error = %v", err)
	}
}

func TestUnsetRejectsRelationships(t *testing.T) {
	s := testStore(t, 32)
	group := s.MainGroup()
	file := s.Create(KindFileReference)
	if err := group.AddRef("children", file); err != nil {
		t.Fatalf("AddRef() error = %v", err)
	}

	err := group.Unset("children")
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Fatalf("Unset(children) error = %v, want code %s", err, errors.ErrCodeInvalidInput)
	}
	if len(group.Refs("children")) != 1 {
		t.Error("rejected Unset should leave the list untouched")
	}
	if file.ReferrerCount() != 1 {
		t.Errorf("file referrer count = %d, want 1", file.ReferrerCount())
	}
}

func TestInsertRef(t *testing.T) {
	s := testStore(t, 33)
	group := s.MainGroup()
	a := s.Create(KindFileReference)
	b := s.Create(KindFileReference)
	c := s.Create(KindFileReference)
	if err := group.AddRef("children", a); err != nil {
		t.Fatalf("AddRef() error = %v", err)
	}
	if err := group.AddRef("children", b); err != nil {
		t.Fatalf("AddRef() error = %v", err)
	}

	if err := group.InsertRef("children", 0, c); err != nil {
		t.Fatalf("InsertRef() error = %v", err)
	}
	wantOrder := []string{c.ID(), a.ID(), b.ID()}
	for i, ref := range group.Refs("children") {
		if ref.ID() != wantOrder[i] {
			t.Errorf("children[%d] = %s, want %s", i, ref.ID(), wantOrder[i])
		}
	}
	if c.ReferrerCount() != 1 {
		t.Errorf("inserted referrer count = %d, want 1", c.ReferrerCount())
	}

	// Index len(list) appends.
	d := s.Create(KindFileReference)
	if err := group.InsertRef("children", 4, d); err == nil {
		t.Error("out-of-range insert should fail")
	}
	if err := group.InsertRef("children", 3, d); err != nil {
		t.Fatalf("append-position insert error = %v", err)
	}
	refs := group.Refs("children")
	if refs[len(refs)-1] != d {
		t.Error("append-position insert should land last")
	}
}

func TestInsertRefDuplicateEarnsNoCredit(t *testing.T) {
	s := testStore(t, 34)
	group := s.MainGroup()
	a := s.Create(KindFileReference)
	if err := group.AddRef("children", a); err != nil {
		t.Fatalf("AddRef() error = %v", err)
	}

	if err := group.InsertRef("children", 0, a); err != nil {
		t.Fatalf("InsertRef() error = %v", err)
	}
	if got := len(group.refIDs("children")); got != 2 {
		t.Errorf("children length = %d, want 2", got)
	}
	if a.ReferrerCount() != 1 {
		t.Errorf("referrer count after duplicate insert = %d, want 1", a.ReferrerCount())
	}

	// Removing the duplicated entry releases the slot's single credit
	// and destroys the object.
	if err := group.RemoveRef("children", a); err != nil {
		t.Fatalf("RemoveRef() error = %v", err)
	}
	if s.Lookup(a.ID()) != nil {
		t.Error("object should be destroyed once its slot is gone")
	}
	if len(group.refIDs("children")) != 0 {
		t.Error("both occurrences should be removed")
	}
}

func TestSetRefList(t *testing.T) {
	s := testStore(t, 35)
	group := s.MainGroup()
	a := s.Create(KindFileReference)
	b := s.Create(KindFileReference)
	c := s.Create(KindFileReference)
	if err := group.SetRefList("children", []*Object{a, b}); err != nil {
		t.Fatalf("SetRefList() error = %v", err)
	}

	// Replace with an overlapping list: the dropped member is
	// destroyed, the survivor keeps its single credit.
	if err := group.SetRefList("children", []*Object{b, c}); err != nil {
		t.Fatalf("SetRefList() error = %v", err)
	}
	if s.Lookup(a.ID()) != nil {
		t.Error("dropped member should be destroyed")
	}
	if b.ReferrerCount() != 1 {
		t.Errorf("surviving member referrer count = %d, want 1", b.ReferrerCount())
	}
	if c.ReferrerCount() != 1 {
		t.Errorf("new member referrer count = %d, want 1", c.ReferrerCount())
	}
	wantOrder := []string{b.ID(), c.ID()}
	for i, ref := range group.Refs("children") {
		if ref.ID() != wantOrder[i] {
			t.Errorf("children[%d] = %s, want %s", i, ref.ID(), wantOrder[i])
		}
	}

	// An empty replacement releases every member.
	if err := group.SetRefList("children", nil); err != nil {
		t.Fatalf("SetRefList(nil) error = %v", err)
	}
	if s.Lookup(b.ID()) != nil || s.Lookup(c.ID()) != nil {
		t.Error("cleared members should be destroyed")
	}
}

func TestSetRefListDuplicates(t *testing.T) {
	s := testStore(t, 36)
	group := s.MainGroup()
	a := s.Create(KindFileReference)

	if err := group.SetRefList("children", []*Object{a, a}); err != nil {
		t.Fatalf("SetRefList() error = %v", err)
	}
	if got := len(group.refIDs("children")); got != 2 {
		t.Errorf("children length = %d, want 2", got)
	}
	if a.ReferrerCount() != 1 {
		t.Errorf("referrer count = %d, want 1 (one credit per slot)", a.ReferrerCount())
	}
}
