package section

import (
	"testing"

	"github.com/arloliu/glz/endian"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/format"
	"github.com/stretchr/testify/require"
)

func TestFlag_Endianness(t *testing.T) {
	flag := NewFlag()
	require.True(t, flag.IsLittleEndian())
	require.Equal(t, endian.GetLittleEndianEngine(), flag.GetEndianEngine())

	flag.WithBigEndian()
	require.True(t, flag.IsBigEndian())
	require.False(t, flag.IsLittleEndian())
	require.Equal(t, endian.GetBigEndianEngine(), flag.GetEndianEngine())

	flag.WithLittleEndian()
	require.True(t, flag.IsLittleEndian())
}

func TestFlag_IndexEncoding(t *testing.T) {
	flag := NewFlag()
	require.Equal(t, format.IndexFixed, flag.IndexEncoding())

	flag.SetIndexEncoding(format.IndexVarint)
	require.Equal(t, format.IndexVarint, flag.IndexEncoding())
	require.Equal(t, uint16(VarintIndexMask), flag.Options)

	flag.SetIndexEncoding(format.IndexFixed)
	require.Equal(t, format.IndexFixed, flag.IndexEncoding())
	require.Zero(t, flag.Options)
}

func TestFlag_Checksums(t *testing.T) {
	flag := NewFlag()
	require.False(t, flag.HasChecksums())

	flag.SetHasChecksums(true)
	require.True(t, flag.HasChecksums())

	flag.SetHasChecksums(false)
	require.False(t, flag.HasChecksums())
}

func TestFlag_Validate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		require.NoError(t, NewFlag().Validate())
	})

	t.Run("All options", func(t *testing.T) {
		flag := Flag{
			Options:          EndiannessMask | VarintIndexMask | ChecksumMask,
			Kind:             format.KindArchive,
			IndexCompression: format.CompressionLZ4,
		}
		require.NoError(t, flag.Validate())
	})

	t.Run("Reserved bits", func(t *testing.T) {
		flag := NewFlag()
		flag.Options = 0x8000
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidHeaderFlags)
	})

	t.Run("Kind", func(t *testing.T) {
		flag := NewFlag()
		flag.Kind = 0
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidHeaderFlags)
	})

	t.Run("Compression", func(t *testing.T) {
		flag := NewFlag()
		flag.IndexCompression = 0x5
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidCompressionType)
	})
}
