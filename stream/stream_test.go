package stream_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/keytree-io/keytree/canon"
	"github.com/keytree-io/keytree/stream"
	"github.com/keytree-io/keytree/tree"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pairs(t tree.Tree[string, int]) []string {
	var res []string
	for path, v := range canon.Pairs(t) {
		res = append(res, fmt.Sprintf("%s=%d", path.String(), v))
	}
	return res
}

func TestBridgeReadTree(t *testing.T) {
	ctx := context.Background()
	br := stream.Run(ctx, func(ctx context.Context, p *stream.Producer[string, int]) error {
		steps := []error{
			p.Push(ctx, "a"),
			p.Push(ctx, "b"),
			p.PullValue(ctx, 1),
			p.Pull(ctx),
			p.PullValue(ctx, 2),
			p.Push(ctx, "c"),
			p.PullValue(ctx, 3),
			p.Pull(ctx),
			p.Pull(ctx),
		}
		return errors.Join(steps...)
	})

	b := tree.NewBuilder[string, int]()
	got, err := br.Consumer().ReadTree(ctx, b)
	require.NoError(t, err)
	require.NoError(t, br.Wait())

	require.Equal(t, []string{"a=2", "a.b=1", "a.c=3"}, pairs(got))

	// the root layer ends on close, without an explicit end event
	if _, ok := got.Value(); ok {
		t.Errorf("root has a value")
	}
}

func TestCursorLaziness(t *testing.T) {
	ctx := context.Background()
	br := stream.Run(ctx, func(ctx context.Context, p *stream.Producer[string, int]) error {
		// a deep subtree under "a" the consumer never enters
		steps := []error{
			p.Push(ctx, "a"),
			p.Push(ctx, "deep"),
			p.PullValue(ctx, 1),
			p.Pull(ctx),
			p.Pull(ctx),
			p.Push(ctx, "b"),
			p.PullValue(ctx, 9),
			p.Pull(ctx),
		}
		return errors.Join(steps...)
	})

	root := br.Consumer().Root()
	key, _, ok, err := root.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", key)

	// advancing past "a" drains its subtree implicitly
	key, bc, ok, err := root.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b", key)

	require.NoError(t, bc.Skip(ctx))
	v, hasVal := bc.Value()
	require.True(t, hasVal)
	require.Equal(t, 9, v)

	_, _, ok, err = root.Next(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, root.Done())
	require.NoError(t, br.Wait())
}

func TestDoubleValue(t *testing.T) {
	ctx := context.Background()
	br := stream.Run(ctx, func(ctx context.Context, p *stream.Producer[string, int]) error {
		if err := p.PullValue(ctx, 1); err != nil {
			return err
		}
		return p.PullValue(ctx, 2)
	})

	b := tree.NewBuilder[string, int]()
	_, err := br.Consumer().ReadTree(ctx, b)
	var perr *stream.ProtocolError
	require.ErrorAs(t, err, &perr)
	require.NoError(t, br.Wait())
}

func TestCloseInsideLayer(t *testing.T) {
	ctx := context.Background()
	br := stream.Run(ctx, func(ctx context.Context, p *stream.Producer[string, int]) error {
		// open a child layer and never end it
		return p.Push(ctx, "a")
	})

	root := br.Consumer().Root()
	_, ac, ok, err := root.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, _, err = ac.Next(ctx)
	var perr *stream.ProtocolError
	require.ErrorAs(t, err, &perr)
	require.NoError(t, br.Wait())
}

func TestProducerError(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")
	br := stream.Run(ctx, func(ctx context.Context, p *stream.Producer[string, int]) error {
		if err := p.PullValue(ctx, 1); err != nil {
			return err
		}
		return errBoom
	})

	b := tree.NewBuilder[string, int]()
	got, err := br.Consumer().ReadTree(ctx, b)
	require.NoError(t, err)
	if v, ok := got.Value(); !ok || v != 1 {
		t.Errorf("value = %d, %v", v, ok)
	}
	require.ErrorIs(t, br.Wait(), errBoom)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Key", stream.KindKey.String())
	require.Equal(t, "Value", stream.KindValue.String())
	require.Equal(t, "End", stream.KindEnd.String())
}
