package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetIntSlice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetIntSlice(100)
		defer cleanup()

		require.Len(t, slice, 100)
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("grows after a small allocation", func(t *testing.T) {
		_, cleanup1 := GetIntSlice(10)
		cleanup1()

		slice, cleanup2 := GetIntSlice(1000)
		defer cleanup2()

		require.Len(t, slice, 1000)
	})

	t.Run("zero size", func(t *testing.T) {
		slice, cleanup := GetIntSlice(0)
		defer cleanup()

		require.Empty(t, slice)
	})
}

func TestSlicePoolTyped(t *testing.T) {
	p := NewSlicePool[uint32]()

	slice, cleanup := p.Get(8)
	for i := range slice {
		slice[i] = uint32(i)
	}
	cleanup()

	slice, cleanup = p.Get(4)
	defer cleanup()
	require.Len(t, slice, 4)
}
