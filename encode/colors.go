package encode

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Colors maps the rendered parts to sprintf-style colorizers.
type Colors struct {
	Key   func(string, ...any) string
	Value func(string, ...any) string
	Punct func(string, ...any) string
}

// NewColors returns the default color scheme.
func NewColors() *Colors {
	return &Colors{
		Key:   color.RGB(196, 96, 16).SprintfFunc(),
		Value: color.RGB(128, 216, 236).SprintfFunc(),
		Punct: color.RGB(255, 0, 196).SprintfFunc(),
	}
}

func plainColors() *Colors {
	return &Colors{
		Key:   fmt.Sprintf,
		Value: fmt.Sprintf,
		Punct: fmt.Sprintf,
	}
}

// AutoColors returns the default scheme when w is a terminal, nil
// otherwise.
func AutoColors(w io.Writer) *Colors {
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if !isatty.IsTerminal(f.Fd()) {
		return nil
	}
	return NewColors()
}
