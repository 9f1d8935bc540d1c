package plist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {};
	objectVersion = 56;
	objects = {
		AAAAAAAAAAAAAAAAAAAAAAAA = {
			isa = PBXProject;
			mainGroup = BBBBBBBBBBBBBBBBBBBBBBBB;
		};
		BBBBBBBBBBBBBBBBBBBBBBBB = {
			isa = PBXGroup;
			children = ();
			sourceTree = "<group>";
		};
	};
	rootObject = AAAAAAAAAAAAAAAAAAAAAAAA;
}
`

func TestParse(t *testing.T) {
	tree, err := Parse([]byte(sampleProject))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := tree["rootObject"]; got != "AAAAAAAAAAAAAAAAAAAAAAAA" {
		t.Errorf("rootObject = %v, want AAAAAAAAAAAAAAAAAAAAAAAA", got)
	}

	objects, ok := tree["objects"].(map[string]any)
	if !ok {
		t.Fatalf("objects is %T, want map[string]any", tree["objects"])
	}
	if len(objects) != 2 {
		t.Errorf("len(objects) = %d, want 2", len(objects))
	}

	group, ok := objects["BBBBBBBBBBBBBBBBBBBBBBBB"].(map[string]any)
	if !ok {
		t.Fatalf("group entry is %T, want map[string]any", objects["BBBBBBBBBBBBBBBBBBBBBBBB"])
	}
	if group["sourceTree"] != "<group>" {
		t.Errorf("sourceTree = %v, want <group>", group["sourceTree"])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "{{{{"},
		{"non-dictionary root", `(a, b, c)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.pbxproj")

	tree := Tree{
		"archiveVersion": "1",
		"objectVersion":  "56",
		"classes":        map[string]any{},
		"objects": map[string]any{
			"AAAAAAAAAAAAAAAAAAAAAAAA": map[string]any{
				"isa":      "PBXGroup",
				"children": []any{},
				"name":     "Main Group",
			},
		},
		"rootObject": "AAAAAAAAAAAAAAAAAAAAAAAA",
	}

	if err := Write(tree, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !reflect.DeepEqual(got, tree) {
		t.Errorf("round-trip mismatch:\ngot  %#v\nwant %#v", got, tree)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.pbxproj")); err == nil {
		t.Error("Read() error = nil, want error")
	}
}

func TestWriteToMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "project.pbxproj")
	if err := Write(Tree{"archiveVersion": "1"}, path); err == nil {
		t.Error("Write() error = nil, want error")
		os.Remove(path)
	}
}
