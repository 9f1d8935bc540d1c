package plist

import (
	"fmt"
	"os"

	hplist "howett.net/plist"
)

// Tree is the generic property-list tree: a dictionary whose values are
// nested map[string]any dictionaries, []any arrays, or scalars.
type Tree = map[string]any

// Read parses the property list at path into a Tree.
// All plist encodings the codec understands are accepted (OpenStep,
// XML, binary); project files in the wild are OpenStep text.
func Read(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, nil
}

// Parse decodes plist bytes into a Tree.
func Parse(data []byte) (Tree, error) {
	var raw any
	if _, err := hplist.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode: root is %T, want dictionary", raw)
	}
	return tree, nil
}

// Marshal encodes a Tree as OpenStep plist text with tab indentation.
func Marshal(tree Tree) ([]byte, error) {
	data, err := hplist.MarshalIndent(tree, hplist.OpenStepFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Write encodes a Tree and writes it to path with 0644 permissions.
// The parent directory must already exist; callers that need it created
// do so themselves (see pbx.Store.Save).
func Write(tree Tree, path string) error {
	data, err := Marshal(tree)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
