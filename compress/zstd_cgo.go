//go:build cgo && zstd_cgo

package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/gozstd"
)

// Compress writes data as a single Zstandard frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes a frame written by Compress. Decoding streams through a
// reader and stops once more than MaxIndexSize bytes come out.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r := gozstd.NewReader(bytes.NewReader(data))
	defer r.Release()

	out, err := io.ReadAll(io.LimitReader(r, MaxIndexSize+1))
	if err != nil {
		return nil, fmt.Errorf("zstd index frame: %w", err)
	}
	if err := checkIndexSize(uint64(len(out))); err != nil {
		return nil, err
	}

	return out, nil
}
