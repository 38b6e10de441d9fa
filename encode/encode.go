// Package encode renders trees as indented text for inspection and
// diffing. One line per node: "key: value" for value-bearing nodes,
// "key:" for branches, with a trailing marker for a default. Rendering is
// deterministic (insertion order) so two renderings compare line by line.
package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/keytree-io/keytree/tree"
)

// EncodeOption configures rendering.
type EncodeOption func(*config)

type config struct {
	indent string
	colors *Colors
}

// EncodeIndent sets the per-level indent string. The default is two
// spaces.
func EncodeIndent(s string) EncodeOption {
	return func(c *config) {
		c.indent = s
	}
}

// EncodeColors sets the color scheme; nil renders plain text.
func EncodeColors(colors *Colors) EncodeOption {
	return func(c *config) {
		c.colors = colors
	}
}

// Encode writes the rendering of t to w.
func Encode[K comparable, V any](t tree.Tree[K, V], w io.Writer, opts ...EncodeOption) error {
	cfg := &config{indent: "  "}
	for _, opt := range opts {
		opt(cfg)
	}
	colors := cfg.colors
	if colors == nil {
		colors = plainColors()
	}
	return encode(t, w, cfg, colors, 0)
}

// MustString renders t plain, for logs and tests.
func MustString[K comparable, V any](t tree.Tree[K, V]) string {
	var sb strings.Builder
	if err := Encode(t, &sb); err != nil {
		return fmt.Sprintf("[unrenderable tree] %v", err)
	}
	return sb.String()
}

func encode[K comparable, V any](t tree.Tree[K, V], w io.Writer, cfg *config, colors *Colors, depth int) error {
	pad := strings.Repeat(cfg.indent, depth)
	if depth == 0 {
		if v, ok := t.Value(); ok {
			if _, err := fmt.Fprintf(w, "%s %s\n", colors.Punct("="), colors.Value("%v", v)); err != nil {
				return err
			}
		}
	}
	for key, sub := range t.Children() {
		line := pad + colors.Key("%v", key) + colors.Punct(":")
		if v, ok := sub.Value(); ok {
			line += " " + colors.Value("%v", v)
		}
		if d := sub.Default(); !d.IsNone() {
			line += " " + colors.Punct("!default=%s", strings.ToLower(d.Kind().String()))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := encode(sub, w, cfg, colors, depth+1); err != nil {
			return err
		}
	}
	if depth == 0 {
		if d := t.Default(); !d.IsNone() {
			if _, err := fmt.Fprintf(w, "%s\n", colors.Punct("!default=%s", strings.ToLower(d.Kind().String()))); err != nil {
				return err
			}
		}
	}
	return nil
}
