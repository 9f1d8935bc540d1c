package pbx

import (
	mrand "math/rand"
	"path/filepath"
	"testing"

	"github.com/matzehuels/pbxgraph/pkg/errors"
)

// buildGroupTree wires Main Group → Sources → Models with one file in
// each group, on a store anchored at an origin path.
func buildGroupTree(t *testing.T) (*Store, *Object, *Object) {
	t.Helper()
	s := New(&Options{
		Random: mrand.New(mrand.NewSource(40)),
		Path:   "/Users/dev/App/App.xcodeproj",
	})

	sources := s.Create(KindGroup)
	if err := sources.Set("path", "Sources"); err != nil {
		t.Fatal(err)
	}
	models := s.Create(KindGroup)
	if err := models.Set("name", "Models"); err != nil {
		t.Fatal(err)
	}
	if err := s.MainGroup().AddRef("children", sources); err != nil {
		t.Fatal(err)
	}
	if err := sources.AddRef("children", models); err != nil {
		t.Fatal(err)
	}

	mainFile := s.Create(KindFileReference)
	if err := mainFile.Set("path", "main.swift"); err != nil {
		t.Fatal(err)
	}
	if err := mainFile.Set("sourceTree", "<group>"); err != nil {
		t.Fatal(err)
	}
	if err := sources.AddRef("children", mainFile); err != nil {
		t.Fatal(err)
	}

	return s, sources, models
}

func TestGroupLookup(t *testing.T) {
	s, sources, models := buildGroupTree(t)

	tests := []struct {
		path string
		want *Object
	}{
		{"Sources", sources},
		{"Sources/Models", models},
		{"Sources/Missing", nil},
		{"Elsewhere", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := s.Group(tt.path)
			if err != nil {
				t.Fatalf("Group() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Group(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}

	if _, err := s.Group("/Sources"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("leading slash: error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}

func TestReferenceForPath(t *testing.T) {
	s, sources, _ := buildGroupTree(t)

	var mainFile *Object
	for _, child := range sources.Refs("children") {
		if child.Kind() == KindFileReference {
			mainFile = child
		}
	}
	if mainFile == nil {
		t.Fatal("file reference not found in fixture")
	}

	// Group-relative: /Users/dev/App (project root) + Sources + main.swift.
	got, err := s.ReferenceForPath("/Users/dev/App/Sources/main.swift")
	if err != nil {
		t.Fatalf("ReferenceForPath() error = %v", err)
	}
	if got != mainFile {
		t.Errorf("ReferenceForPath() = %v, want %v", got, mainFile)
	}

	got, err = s.ReferenceForPath("/Users/dev/App/Sources/other.swift")
	if err != nil {
		t.Fatalf("ReferenceForPath() error = %v", err)
	}
	if got != nil {
		t.Errorf("ReferenceForPath() = %v, want nil for unknown path", got)
	}

	if _, err := s.ReferenceForPath("Sources/main.swift"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("relative path: error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}

func TestReferenceForPathAbsoluteSourceTree(t *testing.T) {
	s, sources, _ := buildGroupTree(t)

	abs := s.Create(KindFileReference)
	target := filepath.Join("/opt", "shared", "lib.a")
	if err := abs.Set("sourceTree", "<absolute>"); err != nil {
		t.Fatal(err)
	}
	if err := abs.Set("path", target); err != nil {
		t.Fatal(err)
	}
	if err := sources.AddRef("children", abs); err != nil {
		t.Fatal(err)
	}

	got, err := s.ReferenceForPath(target)
	if err != nil {
		t.Fatalf("ReferenceForPath() error = %v", err)
	}
	if got != abs {
		t.Errorf("ReferenceForPath() = %v, want %v", got, abs)
	}
}

func TestObjectsOfKind(t *testing.T) {
	s, _, _ := buildGroupTree(t)

	groups := s.ObjectsOfKind(KindGroup)
	if len(groups) != 3 { // main group + Sources + Models
		t.Errorf("len(groups) = %d, want 3", len(groups))
	}

	files := s.FileReferences()
	if len(files) != 1 {
		t.Errorf("len(files) = %d, want 1", len(files))
	}

	if got := s.ObjectsOfKind(KindNativeTarget); got != nil {
		t.Errorf("ObjectsOfKind(native target) = %v, want nil", got)
	}
}

func TestTargetNamed(t *testing.T) {
	s := New(&Options{Random: mrand.New(mrand.NewSource(41))})

	app := s.Create(KindNativeTarget)
	if err := app.Set("name", "App"); err != nil {
		t.Fatal(err)
	}
	if err := s.Root().AddRef("targets", app); err != nil {
		t.Fatal(err)
	}

	if got := s.TargetNamed("App"); got != app {
		t.Errorf("TargetNamed(App) = %v, want %v", got, app)
	}
	if got := s.TargetNamed("Ghost"); got != nil {
		t.Errorf("TargetNamed(Ghost) = %v, want nil", got)
	}
}

func TestHostTargetForExtension(t *testing.T) {
	s := New(&Options{Random: mrand.New(mrand.NewSource(42))})

	ext := s.Create(KindNativeTarget)
	if err := ext.Set("name", "Widget"); err != nil {
		t.Fatal(err)
	}
	if err := ext.Set("productType", "com.apple.product-type.app-extension"); err != nil {
		t.Fatal(err)
	}
	product := s.Create(KindFileReference)
	if err := product.Set("path", "Widget.appex"); err != nil {
		t.Fatal(err)
	}
	if err := ext.SetRef("productReference", product); err != nil {
		t.Fatal(err)
	}

	host := s.Create(KindNativeTarget)
	if err := host.Set("name", "App"); err != nil {
		t.Fatal(err)
	}
	embed := s.Create(KindCopyFilesBuildPhase)
	bf := s.Create(KindBuildFile)
	if err := bf.SetRef("fileRef", product); err != nil {
		t.Fatal(err)
	}
	if err := embed.AddRef("files", bf); err != nil {
		t.Fatal(err)
	}
	if err := host.AddRef("buildPhases", embed); err != nil {
		t.Fatal(err)
	}
	for _, target := range []*Object{host, ext} {
		if err := s.Root().AddRef("targets", target); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.HostTargetForExtension(ext)
	if err != nil {
		t.Fatalf("HostTargetForExtension() error = %v", err)
	}
	if got != host {
		t.Errorf("HostTargetForExtension() = %v, want %v", got, host)
	}

	// Asking for the host of a non-extension target is a caller bug.
	if _, err := s.HostTargetForExtension(host); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}
