package cli

import (
	mrand "math/rand"
	"testing"

	"github.com/matzehuels/pbxgraph/pkg/pbx"
)

func TestCountByIsa(t *testing.T) {
	s := pbx.New(&pbx.Options{Random: mrand.New(mrand.NewSource(11))})
	target := s.Create(pbx.KindNativeTarget)
	if err := s.Root().AddRef("targets", target); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		file := s.Create(pbx.KindFileReference)
		if err := s.MainGroup().AddRef("children", file); err != nil {
			t.Fatal(err)
		}
	}

	counts := countByIsa(s)

	got := make(map[string]int)
	for _, kc := range counts {
		got[kc.isa] = kc.n
	}
	if got["PBXFileReference"] != 2 {
		t.Errorf("PBXFileReference count = %d, want 2", got["PBXFileReference"])
	}
	if got["PBXNativeTarget"] != 1 {
		t.Errorf("PBXNativeTarget count = %d, want 1", got["PBXNativeTarget"])
	}
	if got["PBXProject"] != 1 {
		t.Errorf("PBXProject count = %d, want 1", got["PBXProject"])
	}

	// sorted by isa
	for i := 1; i < len(counts); i++ {
		if counts[i-1].isa > counts[i].isa {
			t.Errorf("counts not sorted: %q before %q", counts[i-1].isa, counts[i].isa)
		}
	}
}
