package cli

import (
	"context"
	"io"
	mrand "math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pbxgraph/pkg/pbx"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func saveProject(t *testing.T, seed int64, name string, targetName string) string {
	t.Helper()
	s := pbx.New(&pbx.Options{Random: mrand.New(mrand.NewSource(seed))})
	if targetName != "" {
		target := s.Create(pbx.KindNativeTarget)
		if err := target.Set("name", targetName); err != nil {
			t.Fatal(err)
		}
		if err := s.Root().AddRef("targets", target); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunDiffEqual(t *testing.T) {
	// Different seeds give different identifiers; the comparison must
	// not see them.
	pathA := saveProject(t, 41, "A.xcodeproj", "")
	pathB := saveProject(t, 42, "B.xcodeproj", "")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	var err error
	out := captureStdout(t, func() {
		err = runDiff(cmd, pathA, pathB, 3)
	})
	if err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}
	if !strings.Contains(out, "documents are equal") {
		t.Errorf("output missing equality notice:\n%s", out)
	}
}

func TestRunDiffUnequal(t *testing.T) {
	pathA := saveProject(t, 43, "A.xcodeproj", "")
	pathB := saveProject(t, 44, "B.xcodeproj", "App")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	var err error
	out := captureStdout(t, func() {
		err = runDiff(cmd, pathA, pathB, 3)
	})
	if err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}
	if !strings.Contains(out, "documents differ") {
		t.Errorf("output missing difference notice:\n%s", out)
	}
	if !strings.Contains(out, "App") {
		t.Errorf("output missing changed content:\n%s", out)
	}
}
