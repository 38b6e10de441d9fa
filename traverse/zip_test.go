package traverse_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keytree-io/keytree/traverse"
	"github.com/keytree-io/keytree/tree"
)

func sum(other tree.Tree[string, int], this tree.Tree[string, int]) (*int, error) {
	tv, tok := this.Value()
	ov, ook := other.Value()
	if !tok || !ook {
		return nil, nil
	}
	s := tv + ov
	return &s, nil
}

func TestZip(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	this := numbers(b)
	other := b.Branch(
		tree.Entry[string, int]{Key: "a", Sub: b.Leaf(10)},
		tree.Entry[string, int]{Key: "sub", Sub: b.Branch(
			tree.Entry[string, int]{Key: "b", Sub: b.Leaf(20)},
			tree.Entry[string, int]{Key: "c", Sub: b.Leaf(30)},
		)},
	)

	got, err := traverse.Zip(b, this, other, true, sum)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	want := []string{"a=11", "sub.b=22", "sub.c=33"}
	if d := cmp.Diff(want, pairs(got)); d != "" {
		t.Errorf("Zip (-want +got):\n%s", d)
	}
}

func TestZipStrictPrunes(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	this := numbers(b)
	// covers every key at every depth through a default, no actual children
	hundred := 100
	covered := b.Build(&hundred, nil, tree.SelfDefault[string, int]())
	other := b.Build(nil, nil, tree.FuncDefault[string, int](func(string) (tree.Tree[string, int], error) {
		return covered, nil
	}))

	got, err := traverse.Zip(b, this, other, true, sum)
	if err != nil {
		t.Fatalf("Zip strict: %v", err)
	}
	if n := len(pairs(got)); n != 0 {
		t.Errorf("strict zip consulted the default: %v", pairs(got))
	}

	got, err = traverse.Zip(b, this, other, false, sum)
	if err != nil {
		t.Fatalf("Zip relaxed: %v", err)
	}
	want := []string{"a=101", "sub.b=102", "sub.c=103"}
	if d := cmp.Diff(want, pairs(got)); d != "" {
		t.Errorf("relaxed zip (-want +got):\n%s", d)
	}
}

func TestZipRelaxedPrunesOnMiss(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	this := numbers(b)
	other := b.Build(nil, []tree.Entry[string, int]{
		{Key: "a", Sub: b.Leaf(10)},
	}, tree.FuncDefault[string, int](func(key string) (tree.Tree[string, int], error) {
		return nil, &tree.MissingKeyError[string]{Key: key}
	}))

	// the default's miss prunes "sub" instead of failing the zip
	got, err := traverse.Zip(b, this, other, false, sum)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	want := []string{"a=11"}
	if d := cmp.Diff(want, pairs(got)); d != "" {
		t.Errorf("miss-pruned zip (-want +got):\n%s", d)
	}
}

func TestZipDefaultError(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	errBroken := errors.New("broken default")
	other := b.Build(nil, nil, tree.FuncDefault[string, int](func(string) (tree.Tree[string, int], error) {
		return nil, errBroken
	}))

	_, err := traverse.Zip(b, numbers(b), other, false, sum)
	if !errors.Is(err, errBroken) {
		t.Fatalf("Zip err = %v, want %v", err, errBroken)
	}
}

func TestZipWith(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	this := numbers(b)
	other := b.Branch(
		tree.Entry[string, int]{Key: "a", Sub: b.Leaf(10)},
		tree.Entry[string, int]{Key: "sub", Sub: b.Branch(
			tree.Entry[string, int]{Key: "b", Sub: b.Leaf(20)},
			tree.Entry[string, int]{Key: "c", Sub: b.Leaf(30)},
		)},
	)

	diff := func(o tree.Tree[string, int], th tree.Tree[string, int]) (*int, error) {
		tv, tok := th.Value()
		ov, ook := o.Value()
		if !tok || !ook {
			return nil, nil
		}
		d := ov - tv
		return &d, nil
	}

	// "a" gets its own operator; a self-defaulting diff node covers every
	// other key at every depth
	ob := tree.NewBuilder[string, intOp]()
	dv := intOp(diff)
	diffNode := ob.Build(&dv, nil, tree.SelfDefault[string, intOp]())
	ops := ob.Build(nil, []tree.Entry[string, intOp]{
		{Key: "a", Sub: ob.Leaf(intOp(sum))},
	}, tree.FuncDefault[string, intOp](func(string) (tree.Tree[string, intOp], error) {
		return diffNode, nil
	}))

	got, err := traverse.ZipWith(b, this, other, true, ops)
	if err != nil {
		t.Fatalf("ZipWith: %v", err)
	}
	want := []string{"a=11", "sub.b=18", "sub.c=27"}
	if d := cmp.Diff(want, pairs(got)); d != "" {
		t.Errorf("ZipWith (-want +got):\n%s", d)
	}
}

type intOp = traverse.Op[string, int, int, int]
