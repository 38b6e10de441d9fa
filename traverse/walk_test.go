package traverse_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keytree-io/keytree/keypath"
	"github.com/keytree-io/keytree/traverse"
	"github.com/keytree-io/keytree/tree"
)

func TestWalk(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	src := numbers(b)

	var visited []string
	err := traverse.Walk(src, func(path keypath.Path[string], _ tree.Tree[string, int]) error {
		visited = append(visited, path.String())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"", "a", "sub", "sub.b", "sub.c"}
	if d := cmp.Diff(want, visited); d != "" {
		t.Errorf("Walk order (-want +got):\n%s", d)
	}
}

func TestWalkSkip(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	src := numbers(b)

	var visited []string
	err := traverse.Walk(src, func(path keypath.Path[string], _ tree.Tree[string, int]) error {
		if last, _ := path.Last(); last == "sub" {
			return traverse.Skip
		}
		visited = append(visited, path.String())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"", "a"}
	if d := cmp.Diff(want, visited); d != "" {
		t.Errorf("Walk with skip (-want +got):\n%s", d)
	}
}

func TestWalkError(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	errStop := errors.New("stop")
	calls := 0
	err := traverse.Walk(numbers(b), func(path keypath.Path[string], _ tree.Tree[string, int]) error {
		calls++
		if path.String() == "sub" {
			return errStop
		}
		return nil
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("Walk err = %v, want %v", err, errStop)
	}
	if calls != 3 {
		t.Errorf("walk continued after error: %d calls", calls)
	}
}

func TestWalkShared(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	shared := b.Leaf(7)
	src := b.Branch(
		tree.Entry[string, int]{Key: "x", Sub: shared},
		tree.Entry[string, int]{Key: "y", Sub: shared},
	)

	visits := 0
	err := traverse.WalkShared(src, func(_ keypath.Path[string], n tree.Tree[string, int]) error {
		if n == shared {
			visits++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkShared: %v", err)
	}
	if visits != 1 {
		t.Errorf("shared node visited %d times, want 1", visits)
	}
}

func TestWalkSharedCyclic(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	m := b.Mutable(nil, nil, tree.NoDefault[string, int]())
	m.SetValue(1)
	m.Put("loop", m)

	// must terminate despite the cycle
	nodes := 0
	err := traverse.WalkShared[string, int](m, func(keypath.Path[string], tree.Tree[string, int]) error {
		nodes++
		return nil
	})
	if err != nil {
		t.Fatalf("WalkShared: %v", err)
	}
	if nodes != 1 {
		t.Errorf("cyclic walk visited %d nodes, want 1", nodes)
	}
}

func TestFold(t *testing.T) {
	b := tree.NewBuilder[string, int]()
	total := traverse.Fold(numbers(b), 0, func(acc int, _ keypath.Path[string], v int) int {
		return acc + v
	})
	if total != 6 {
		t.Errorf("Fold sum = %d, want 6", total)
	}
}
