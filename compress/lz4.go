package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/arloliu/glz/errs"
	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor stores index sections as LZ4 blocks.
//
// LZ4 blocks do not record their decoded size, so each stored section is a
// uvarint of the index length followed by the block. Decompress allocates
// exactly that length after checking it against MaxIndexSize.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress writes the length prefix and the LZ4 block of data.
//
// Returns:
//   - []byte: Stored section (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	prefix := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:])
	if err != nil {
		return nil, err
	}

	return dst[:prefix+n], nil
}

// Decompress reads a section written by Compress.
//
// Returns:
//   - []byte: Decoded index (nil if input is empty)
//   - error: ErrInvalidIndex for a bad or oversized length prefix or a block
//     that does not decode to exactly that length, or an lz4 error
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, prefix := binary.Uvarint(data)
	if prefix <= 0 {
		return nil, fmt.Errorf("%w: bad lz4 length prefix", errs.ErrInvalidIndex)
	}
	if err := checkIndexSize(size); err != nil {
		return nil, err
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[prefix:], out)
	if err != nil {
		return nil, err
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("%w: lz4 block decoded to %d of %d bytes", errs.ErrInvalidIndex, n, size)
	}

	return out, nil
}
