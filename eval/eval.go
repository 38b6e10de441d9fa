// Package eval compiles expression-language programs into the caller
// supplied callbacks the transformation algebra consumes: Filter
// predicates, Merge combiners and Zip operators. Programs are compiled
// once and run per node.
package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/keytree-io/keytree/keypath"
	"github.com/keytree-io/keytree/tree"
)

// Predicate compiles src into a Filter predicate. The program sees the
// node's value as `value`, its key path as `path` and `depth` as the path
// length, and must evaluate to a bool.
func Predicate[K comparable, V any](src string) (func(path keypath.Path[K], v V) (bool, error), error) {
	prg, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return func(path keypath.Path[K], v V) (bool, error) {
		res, err := run(prg, map[string]any{
			"value": v,
			"path":  []K(path),
			"depth": len(path),
		})
		if err != nil {
			return false, err
		}
		b, ok := res.(bool)
		if !ok {
			return false, fmt.Errorf("predicate evaluated to %T, want bool", res)
		}
		return b, nil
	}, nil
}

// Combiner compiles src into a Merge value combiner. The program sees the
// two values as `a` and `b` and must evaluate to a value of the tree's
// value type; any evaluation failure falls back to b, matching Merge's
// other-wins rule.
func Combiner[V any](src string) (func(a, b V) V, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return func(a, b V) V {
		res, err := run(prg, map[string]any{"a": a, "b": b})
		if err != nil {
			return b
		}
		v, ok := res.(V)
		if !ok {
			return b
		}
		return v
	}, nil
}

// ZipOp compiles src into a Zip operator. The program sees `this` and
// `other` (the matched values, nil when absent) plus `thisOk`/`otherOk`,
// and evaluates to the output value; nil keeps a value-less branch.
func ZipOp[K comparable, V, U, W any](src string) (func(other tree.Tree[K, U], this tree.Tree[K, V]) (*W, error), error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return func(other tree.Tree[K, U], this tree.Tree[K, V]) (*W, error) {
		env := map[string]any{}
		if v, ok := this.Value(); ok {
			env["this"], env["thisOk"] = v, true
		} else {
			env["this"], env["thisOk"] = nil, false
		}
		if u, ok := other.Value(); ok {
			env["other"], env["otherOk"] = u, true
		} else {
			env["other"], env["otherOk"] = nil, false
		}
		res, err := run(prg, env)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, nil
		}
		w, ok := res.(W)
		if !ok {
			return nil, fmt.Errorf("zip op evaluated to %T", res)
		}
		return &w, nil
	}, nil
}

func run(prg *vm.Program, env map[string]any) (any, error) {
	return expr.Run(prg, env)
}
