// Package diff reports the difference between two trees as a line diff of
// their canonical renderings.
package diff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/keytree-io/keytree/encode"
	"github.com/keytree-io/keytree/tree"
)

// Trees renders from and to canonically and returns their line diff:
// unchanged lines prefixed with two spaces, removals with "- ", additions
// with "+ ". An empty result means the renderings are identical.
func Trees[K comparable, V any](from, to tree.Tree[K, V]) string {
	a := encode.MustString(from)
	b := encode.MustString(to)
	if a == b {
		return ""
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for i := range diffs {
		d := &diffs[i]
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Equal reports whether the canonical renderings of a and b are the same.
func Equal[K comparable, V any](a, b tree.Tree[K, V]) bool {
	return encode.MustString(a) == encode.MustString(b)
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
