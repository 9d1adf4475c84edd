package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor stores index sections as S2 blocks.
//
// A block starts with its decoded length, which Decompress checks against
// MaxIndexSize before decoding.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes an index section with the better-ratio S2 encoder.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 block produced by Compress.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 block header: %w", err)
	}
	if err := checkIndexSize(uint64(n)); err != nil { //nolint:gosec
		return nil, err
	}

	return s2.Decode(make([]byte, n), data)
}
