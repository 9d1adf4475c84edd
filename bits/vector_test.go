package bits

import (
	"testing"

	"github.com/arloliu/glz/errs"
	"github.com/stretchr/testify/require"
)

func TestVectorAppendUint(t *testing.T) {
	v := NewVector(0)
	v.AppendUint(3, 0b101)
	v.AppendUint(9, 0b1_0000_0001)
	v.AppendBit(true)
	v.AppendUint(0, 0xFF)

	require.Equal(t, 13, v.Len())
	require.Equal(t, "1011000000011", v.String())
	require.Equal(t, []byte{0b1011_0000, 0b0001_1000}, v.Bytes())
}

func TestVectorUint(t *testing.T) {
	v := MustParse("1011 0000 0001 1")

	x, err := v.Uint(0, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(0b101), x)

	x, err = v.Uint(3, 9)
	require.NoError(t, err)
	require.Equal(t, uint64(0b1_0000_0001), x)

	x, err = v.Uint(13, 0)
	require.NoError(t, err)
	require.Zero(t, x)

	_, err = v.Uint(10, 4)
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.ErrorIs(t, err, errs.ErrFormat)

	_, err = v.Uint(-1, 1)
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestVectorWideValues(t *testing.T) {
	v := NewVector(0)
	v.AppendBit(true)
	v.AppendUint(64, 0xDEADBEEFCAFEF00D)

	x, err := v.Uint(1, 64)
	require.NoError(t, err)
	require.Equal(t, uint64(0xDEADBEEFCAFEF00D), x)
}

func TestVectorLeadingOnes(t *testing.T) {
	tests := []struct {
		name  string
		bits  string
		off   int
		count int
		ok    bool
	}{
		{"immediate zero", "0111", 0, 0, true},
		{"short run", "1110", 0, 3, true},
		{"offset", "0011 0", 2, 2, true},
		{"across bytes", "0111 1111 1111 0", 1, 11, true},
		{"whole bytes", "1111 1111 1111 1111 0", 0, 16, true},
		{"unterminated", "0111 1111 1", 1, 8, false},
		{"empty tail", "01", 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, ok := MustParse(tt.bits).LeadingOnes(tt.off)
			require.Equal(t, tt.count, count)
			require.Equal(t, tt.ok, ok)
		})
	}
}

func TestVectorLeadingOnesIgnoresPadding(t *testing.T) {
	v, err := FromBytes([]byte{0xFF}, 5)
	require.NoError(t, err)

	count, ok := v.LeadingOnes(0)
	require.Equal(t, 5, count)
	require.False(t, ok)
}

func TestVectorAppendRange(t *testing.T) {
	src := MustParse("1100 1010 0111 0001 1011")

	t.Run("unaligned", func(t *testing.T) {
		dst := MustParse("1")
		dst.AppendRange(src, 3, 15)
		require.Equal(t, "1"+src.String()[3:15], dst.String())
	})

	t.Run("aligned", func(t *testing.T) {
		dst := MustParse("0000 1111")
		dst.AppendRange(src, 8, 20)
		require.Equal(t, "00001111"+src.String()[8:20], dst.String())
	})

	t.Run("whole vector", func(t *testing.T) {
		dst := NewVector(0)
		dst.AppendVector(src)
		require.True(t, dst.Equal(src))
		require.True(t, src.Clone().Equal(src))
	})
}

func TestVectorFromBytes(t *testing.T) {
	v, err := FromBytes([]byte{0b1010_0000}, 3)
	require.NoError(t, err)
	require.Equal(t, "101", v.String())

	_, err = FromBytes([]byte{0}, 9)
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestVectorReset(t *testing.T) {
	v := MustParse("1111 1111 11")
	v.Reset()
	require.Zero(t, v.Len())

	v.AppendUint(4, 0b0001)
	require.Equal(t, []byte{0b0001_0000}, v.Bytes())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("01x")
	require.ErrorIs(t, err, errs.ErrFormat)
}
