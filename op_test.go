package glz

import (
	"testing"

	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/errs"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, opts ...Option) *GLZ {
	t.Helper()

	g, err := New(opts...)
	require.NoError(t, err)

	return g
}

// stream writes ops back to back in stream order.
func stream(t *testing.T, g *GLZ, ops ...op) *bits.Vector {
	t.Helper()

	v := bits.NewVector(0)
	for _, o := range ops {
		require.NoError(t, g.appendOp(v, o))
	}

	return v
}

func TestImmediateWireForm(t *testing.T) {
	g := mustNew(t, WithK(8), WithL(5), WithM(3))

	v := stream(t, g, immediate(1, 'a'))
	require.Equal(t, bits.MustParse("0 01100001").String(), v.String())

	o, used, err := g.decodeOp(v, 0)
	require.NoError(t, err)
	require.Equal(t, immediate(1, 'a'), o)
	require.Equal(t, 9, used)
}

func TestRunWireForm(t *testing.T) {
	g := mustNew(t, WithK(8), WithL(5), WithM(3))

	// run symbol 256+32+(2-2) = 288 is "10 00100000" under k=8
	v := stream(t, g, immediate(2, 'l'))
	require.Equal(t, bits.MustParse("10 00100000 0 01101100").String(), v.String())

	o, used, err := g.decodeOp(v, 0)
	require.NoError(t, err)
	require.Equal(t, immediate(2, 'l'), o)
	require.Equal(t, 19, used)

	v = stream(t, g, immediate(g.MaxLen(), 0))
	o, _, err = g.decodeOp(v, 0)
	require.NoError(t, err)
	require.Equal(t, 33, o.count)
}

func TestReferenceWireForm(t *testing.T) {
	g := mustNew(t, WithK(9), WithL(5), WithM(3))

	v := stream(t, g, reference(21, 12))
	require.Equal(t, bits.MustParse("0100001010 1001 0101").String(), v.String())

	o, used, err := g.decodeOp(v, 0)
	require.NoError(t, err)
	require.Equal(t, reference(21, 12), o)
	require.Equal(t, v.Len(), used)
}

func TestOffsetChunks(t *testing.T) {
	for _, m := range []int{1, 3, 4, 8, 16} {
		g := mustNew(t, WithK(9), WithM(m))
		for _, off := range []uint64{0, 1, 7, 8, 9, 72, 73, 1000, 1 << 20, 1<<32 - 1} {
			v := bits.NewVector(0)
			g.appendOffset(v, off)

			got, used, err := g.decodeOffset(v, 0)
			require.NoError(t, err)
			require.Equal(t, off, got, "m=%d", m)
			require.Equal(t, v.Len(), used)
			require.Zero(t, used%(m+1))
		}
	}
}

func TestAppendOpOverflow(t *testing.T) {
	g := mustNew(t, WithK(9), WithL(2))
	v := bits.NewVector(0)

	require.ErrorIs(t, g.appendOp(v, immediate(6, 'x')), errs.ErrOverflow)
	require.ErrorIs(t, g.appendOp(v, reference(0, 6)), errs.ErrOverflow)
	require.ErrorIs(t, g.appendOp(v, reference(0, 1)), errs.ErrOverflow)
	require.ErrorIs(t, g.appendOp(v, reference(1<<32, 2)), errs.ErrOverflow)
	require.NoError(t, g.appendOp(v, reference(1<<32-1, 5)))
}

func TestDecodeOpErrors(t *testing.T) {
	g := mustNew(t, WithK(9), WithL(1), WithM(1))

	t.Run("symbol outside alphabet", func(t *testing.T) {
		v := bits.NewVector(0)
		require.NoError(t, g.coder.AppendSym(v, g.Alphabet()))

		_, _, err := g.decodeOp(v, 0)
		require.ErrorIs(t, err, errs.ErrInvalidOp)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("run byte out of range", func(t *testing.T) {
		v := bits.NewVector(0)
		require.NoError(t, g.coder.AppendSym(v, g.runBase()))
		require.NoError(t, g.coder.AppendSym(v, 300))

		_, _, err := g.decodeOp(v, 0)
		require.ErrorIs(t, err, errs.ErrCast)
	})

	t.Run("offset overflow", func(t *testing.T) {
		v := bits.NewVector(0)
		require.NoError(t, g.coder.AppendSym(v, 256))
		for range 40 {
			v.AppendUint(2, 0b11)
		}
		v.AppendUint(2, 0b01)

		_, _, err := g.decodeOp(v, 0)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("truncated offset", func(t *testing.T) {
		v := bits.NewVector(0)
		require.NoError(t, g.coder.AppendSym(v, 256))
		v.AppendUint(2, 0b11)

		_, _, err := g.decodeOp(v, 0)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}
