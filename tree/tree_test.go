package tree_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keytree-io/keytree/canon"
	"github.com/keytree-io/keytree/tree"
)

func flat(t tree.Tree[string, string]) []string {
	var res []string
	for path, v := range canon.Pairs(t) {
		res = append(res, path.String()+"="+v)
	}
	return res
}

func leaf(b *tree.Builder[string, string], key, v string) tree.Entry[string, string] {
	return tree.Entry[string, string]{Key: key, Sub: b.Leaf(v)}
}

func TestGetApply(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	tr := b.Build(nil, []tree.Entry[string, string]{
		leaf(b, "a", "1"),
		leaf(b, "c", "3"),
	}, tree.NoDefault[string, string]())

	sub, ok := tr.Get("a")
	if !ok {
		t.Fatalf("Get(a) not found")
	}
	if v, _ := sub.Value(); v != "1" {
		t.Errorf("Get(a) value = %q, want 1", v)
	}

	// get and apply agree wherever apply succeeds
	for _, key := range []string{"a", "c"} {
		got, ok := tr.Get(key)
		applied, err := tr.Apply(key)
		if !ok || err != nil {
			t.Fatalf("key %s: ok=%v err=%v", key, ok, err)
		}
		if got != applied {
			t.Errorf("key %s: Get and Apply disagree", key)
		}
	}

	if _, ok := tr.Get("nope"); ok {
		t.Errorf("Get(nope) found")
	}
	_, err := tr.Apply("nope")
	if !errors.Is(err, tree.ErrMissingKey) {
		t.Fatalf("Apply(nope) err = %v, want ErrMissingKey", err)
	}
	var mk *tree.MissingKeyError[string]
	if !errors.As(err, &mk) || mk.Key != "nope" {
		t.Errorf("Apply(nope) err = %v, want MissingKeyError{nope}", err)
	}
}

func TestApplyPath(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	tr := b.Branch(tree.Entry[string, string]{
		Key: "a",
		Sub: b.Branch(leaf(b, "b", "1")),
	})
	sub, err := tree.ApplyPath(tr, "a", "b")
	if err != nil {
		t.Fatalf("ApplyPath: %v", err)
	}
	if v, _ := sub.Value(); v != "1" {
		t.Errorf("ApplyPath value = %q, want 1", v)
	}
	if _, err := tree.ApplyPath(tr, "a", "x"); !errors.Is(err, tree.ErrMissingKey) {
		t.Errorf("ApplyPath(a,x) err = %v, want ErrMissingKey", err)
	}
}

func TestKeysOrder(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	tr := b.Build(nil, []tree.Entry[string, string]{
		leaf(b, "z", "1"),
		leaf(b, "a", "2"),
		leaf(b, "m", "3"),
	}, tree.NoDefault[string, string]())
	want := []string{"z", "a", "m"}
	if d := cmp.Diff(want, tr.Keys()); d != "" {
		t.Errorf("insertion order lost (-want +got):\n%s", d)
	}
}

func TestFuncDefault(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	def := tree.FuncDefault[string, string](func(key string) (tree.Tree[string, string], error) {
		if key == "covered" {
			return b.Leaf("fallback"), nil
		}
		return nil, &tree.MissingKeyError[string]{Key: key}
	})
	tr := b.Build(nil, []tree.Entry[string, string]{leaf(b, "a", "1")}, def)

	if _, ok := tr.Get("covered"); ok {
		t.Errorf("Get consulted the default")
	}
	sub, err := tr.Apply("covered")
	if err != nil {
		t.Fatalf("Apply(covered): %v", err)
	}
	if v, _ := sub.Value(); v != "fallback" {
		t.Errorf("default value = %q, want fallback", v)
	}
	if _, err := tr.Apply("other"); !errors.Is(err, tree.ErrMissingKey) {
		t.Errorf("default miss err = %v, want ErrMissingKey", err)
	}
}

func TestSelfDefault(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	v := "root"
	tr := b.Build(&v, nil, tree.SelfDefault[string, string]())

	// every missing key resolves to the node itself, to any depth
	sub, err := tree.ApplyPath(tr, "x", "y", "z")
	if err != nil {
		t.Fatalf("ApplyPath on self default: %v", err)
	}
	if sub != tr {
		t.Errorf("self default did not return the node itself")
	}
	if tr.Default().Kind() != tree.DefaultSelf {
		t.Errorf("Kind = %v, want DefaultSelf", tr.Default().Kind())
	}
}

func TestStripEmpty(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	tr := b.Branch(
		leaf(b, "a", "1"),
		tree.Entry[string, string]{Key: "hollow", Sub: b.Empty()},
		tree.Entry[string, string]{Key: "nil"},
	)
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1 (empty children stripped)", tr.Len())
	}

	keep := tree.NewBuilder[string, string](tree.WithStripEmpty[string, string](false))
	tr = keep.Branch(
		leaf(keep, "a", "1"),
		tree.Entry[string, string]{Key: "hollow", Sub: keep.Empty()},
	)
	if tr.Len() != 2 {
		t.Errorf("Len = %d, want 2 (strip-empty disabled)", tr.Len())
	}
}

func TestSignificant(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	if tree.Significant(b.Empty()) {
		t.Errorf("empty node significant")
	}
	if !tree.Significant(b.Leaf("v")) {
		t.Errorf("leaf not significant")
	}
	def := b.Build(nil, nil, tree.SelfDefault[string, string]())
	if !tree.Significant(def) {
		t.Errorf("node with default not significant")
	}
}

func TestOnMissing(t *testing.T) {
	errBoom := errors.New("boom")
	b := tree.NewBuilder[string, string](
		tree.WithOnMissing[string, string](func(key string) error {
			return fmt.Errorf("%w: %s", errBoom, key)
		}))
	tr := b.Empty()
	if _, err := tr.Apply("k"); !errors.Is(err, errBoom) {
		t.Errorf("custom handler not used: %v", err)
	}
}

func TestUpdateRemove(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	v := "top"
	tr := b.Build(&v, []tree.Entry[string, string]{
		leaf(b, "a", "1"),
		leaf(b, "b", "2"),
	}, tree.NoDefault[string, string]())

	up := tree.Update(b, tr, "a", b.Leaf("one"))
	want := []string{"=top", "a=one", "b=2"}
	if d := cmp.Diff(want, flat(up)); d != "" {
		t.Errorf("Update replace (-want +got):\n%s", d)
	}

	ins := tree.Update(b, tr, "c", b.Leaf("3"))
	want = []string{"=top", "a=1", "b=2", "c=3"}
	if d := cmp.Diff(want, flat(ins)); d != "" {
		t.Errorf("Update insert (-want +got):\n%s", d)
	}

	rm := tree.Remove(b, tr, "a")
	want = []string{"=top", "b=2"}
	if d := cmp.Diff(want, flat(rm)); d != "" {
		t.Errorf("Remove (-want +got):\n%s", d)
	}

	// the original is untouched
	want = []string{"=top", "a=1", "b=2"}
	if d := cmp.Diff(want, flat(tr)); d != "" {
		t.Errorf("original mutated (-want +got):\n%s", d)
	}
}

func TestMutable(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	m := b.Mutable(nil, nil, tree.NoDefault[string, string]())
	m.SetValue("v")
	m.Put("a", b.Leaf("1"))
	m.Put("b", b.Leaf("2"))
	m.Put("a", b.Leaf("one"))

	want := []string{"=v", "a=one", "b=2"}
	if d := cmp.Diff(want, flat(m)); d != "" {
		t.Errorf("mutable (-want +got):\n%s", d)
	}

	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Errorf("Delete(a) left the key")
	}
	if sub, ok := m.Get("b"); !ok || sub == nil {
		t.Errorf("Delete(a) broke b")
	}

	frozen := m.Freeze(b)
	m.ClearValue()
	if _, ok := frozen.Value(); !ok {
		t.Errorf("freeze did not snapshot the value")
	}
}

func TestCopy(t *testing.T) {
	b := tree.NewBuilder[string, string]()
	tr := b.Branch(
		tree.Entry[string, string]{Key: "a", Sub: b.Branch(leaf(b, "b", "1"))},
		leaf(b, "c", "3"),
	)
	cp := tree.Copy(b, tr)
	if d := cmp.Diff(flat(tr), flat(cp)); d != "" {
		t.Errorf("copy differs (-orig +copy):\n%s", d)
	}
	if cp == tr {
		t.Errorf("copy preserved identity")
	}
}
