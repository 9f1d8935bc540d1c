// Package pbxdiff compares two project stores structurally.
//
// Comparison works on the stores' diff trees (relationships inlined by
// value, no identifiers), so two projects that differ only in
// identifier assignment compare equal. The textual report is a line
// diff of the canonical renderings.
package pbxdiff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/matzehuels/pbxgraph/pkg/pbx"
)

// Report is the outcome of comparing two stores.
type Report struct {
	Equal bool
	// Lines holds the line-level changes in order; empty when Equal.
	Lines []Line
}

// Op classifies one line of a report.
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

// Line is a single line of the comparison report.
type Line struct {
	Op   Op
	Text string
}

// Compare diffs two stores structurally, ignoring identifiers and
// origin locations.
func Compare(a, b *pbx.Store) Report {
	left := Render(a)
	right := Render(b)
	if left == right {
		return Report{Equal: true}
	}

	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)

	report := Report{}
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		}
		for _, text := range splitLines(d.Text) {
			report.Lines = append(report.Lines, Line{Op: op, Text: text})
		}
	}
	return report
}

// Render produces the canonical text form of a store's diff tree:
// sorted keys, two-space indentation, one scalar per line. Structurally
// equal graphs render byte-identically.
func Render(s *pbx.Store) string {
	var b strings.Builder
	writeValue(&b, map[string]any(s.ToDiffTree()), 0)
	return b.String()
}

// Format renders a report with conventional -/+ line markers. Context
// limits how many unchanged lines surround each change; negative means
// unlimited.
func (r Report) Format(context int) string {
	if r.Equal {
		return ""
	}

	var b strings.Builder
	for i, line := range r.Lines {
		if line.Op == OpEqual && context >= 0 && !nearChange(r.Lines, i, context) {
			continue
		}
		switch line.Op {
		case OpDelete:
			b.WriteString("- ")
		case OpInsert:
			b.WriteString("+ ")
		default:
			b.WriteString("  ")
		}
		b.WriteString(line.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// nearChange reports whether any line within distance of i is a change.
func nearChange(lines []Line, i, distance int) bool {
	lo := i - distance
	if lo < 0 {
		lo = 0
	}
	hi := i + distance
	if hi >= len(lines) {
		hi = len(lines) - 1
	}
	for j := lo; j <= hi; j++ {
		if lines[j].Op != OpEqual {
			return true
		}
	}
	return false
}

func writeValue(b *strings.Builder, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("{\n")
		for _, k := range keys {
			b.WriteString(indent)
			b.WriteString("  ")
			b.WriteString(k)
			b.WriteString(" = ")
			writeValue(b, t[k], depth+1)
		}
		b.WriteString(indent)
		b.WriteString("}\n")
	case []any:
		if len(t) == 0 {
			b.WriteString("()\n")
			return
		}
		b.WriteString("(\n")
		for _, e := range t {
			b.WriteString(indent)
			b.WriteString("  ")
			writeValue(b, e, depth+1)
		}
		b.WriteString(indent)
		b.WriteString(")\n")
	default:
		fmt.Fprintf(b, "%v\n", t)
	}
}

func splitLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
