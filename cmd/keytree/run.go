package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/keytree-io/keytree/canon"
	"github.com/keytree-io/keytree/diff"
	"github.com/keytree-io/keytree/encode"
	"github.com/keytree-io/keytree/eval"
	"github.com/keytree-io/keytree/traverse"
	"github.com/keytree-io/keytree/tree"
	"github.com/keytree-io/keytree/yamltree"
)

func loadFile(path string) (tree.Tree[string, any], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return yamltree.Load(data)
}

func outWriter(cc *cli.Context) io.Writer {
	if cc.Out != nil {
		return cc.Out
	}
	return os.Stdout
}

func encOpts(cfg *MainConfig, w io.Writer) []encode.EncodeOption {
	if cfg.Color {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	if colors := encode.AutoColors(w); colors != nil {
		return []encode.EncodeOption{encode.EncodeColors(colors)}
	}
	return nil
}

func runView(cfg *MainConfig, cc *cli.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: view expects one file", cli.ErrUsage)
	}
	t, err := loadFile(args[0])
	if err != nil {
		return err
	}
	w := outWriter(cc)
	return encode.Encode(t, w, encOpts(cfg, w)...)
}

func runFlat(cfg *MainConfig, cc *cli.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: flat expects one file", cli.ErrUsage)
	}
	t, err := loadFile(args[0])
	if err != nil {
		return err
	}
	w := outWriter(cc)
	for path, v := range canon.Pairs(t) {
		if _, err := fmt.Fprintf(w, "%s = %v\n", path, v); err != nil {
			return err
		}
	}
	return nil
}

func runDiff(cfg *MainConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: diff expects two files", cli.ErrUsage)
	}
	from, err := loadFile(args[0])
	if err != nil {
		return err
	}
	to, err := loadFile(args[1])
	if err != nil {
		return err
	}
	_, err = io.WriteString(outWriter(cc), diff.Trees(from, to))
	return err
}

func runMerge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: merge expects two files", cli.ErrUsage)
	}
	base, err := loadFile(args[0])
	if err != nil {
		return err
	}
	other, err := loadFile(args[1])
	if err != nil {
		return err
	}
	b := tree.NewBuilder[string, any]()
	merged, err := tree.Merge(b, base, other, tree.MergeOptions[any]{Overwrite: cfg.Overwrite})
	if err != nil {
		return err
	}
	out, err := yamltree.Dump(merged)
	if err != nil {
		return err
	}
	_, err = outWriter(cc).Write(out)
	return err
}

func runFilter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: filter expects one file", cli.ErrUsage)
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: filter requires -e expr", cli.ErrUsage)
	}
	t, err := loadFile(args[0])
	if err != nil {
		return err
	}
	pred, err := eval.Predicate[string, any](cfg.Expr)
	if err != nil {
		return err
	}
	b := tree.NewBuilder[string, any]()
	res, err := traverse.Filter(b, t, pred)
	if err != nil {
		return err
	}
	out, err := yamltree.Dump(res)
	if err != nil {
		return err
	}
	_, err = outWriter(cc).Write(out)
	return err
}
