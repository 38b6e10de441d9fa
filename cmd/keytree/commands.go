package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='render with color'"`

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "keytree").
		WithSynopsis("keytree [opts] command [args]").
		WithDescription("keytree inspects and transforms prefix trees stored as YAML.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return keytreeMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			FlatCommand(cfg),
			DiffCommand(cfg),
			MergeCommand(cfg),
			FilterCommand(cfg))
}

func keytreeMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	return cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view file").
		WithDescription("render a YAML tree as indented key paths").
		WithRun(func(cc *cli.Context, args []string) error {
			return runView(mainCfg, cc, args)
		})
}

func FlatCommand(mainCfg *MainConfig) *cli.Command {
	return cli.NewCommand("flat").
		WithAliases("f").
		WithSynopsis("flat file").
		WithDescription("print the canonical (key path, value) pairs of a YAML tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return runFlat(mainCfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	return cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff from-file to-file").
		WithDescription("line-diff the canonical forms of two YAML trees").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(mainCfg, cc, args)
		})
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommand("merge").
		WithAliases("m").
		WithSynopsis("merge [-overwrite] base-file other-file").
		WithDescription("merge two YAML trees and print the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runMerge(cfg, cc, args)
		})
}

type MergeConfig struct {
	*MainConfig
	Overwrite bool `cli:"name=overwrite desc='replace both-present children instead of merging'"`
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommand("filter").
		WithSynopsis("filter -e expr file").
		WithDescription("keep only values satisfying an expression over value/path/depth").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runFilter(cfg, cc, args)
		})
}

type FilterConfig struct {
	*MainConfig
	Expr string `cli:"name=e desc='predicate expression'"`
}
