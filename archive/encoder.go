package archive

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/glz"
	"github.com/arloliu/glz/compress"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/hist"
	"github.com/arloliu/glz/internal/pool"
	"github.com/arloliu/glz/section"
	"github.com/twmb/murmur3"
)

// File is one input of an archive.
type File struct {
	// Name identifies the file in archives built WithArchiveNames. Index
	// containers ignore it.
	Name string
	// Data is the file content.
	Data []byte
}

// Encoder packs files into a GLZ container.
//
// An Encoder can be reused; every call to Encode trains (or reuses) an engine
// and produces an independent container.
type Encoder struct {
	cfg        *EncoderConfig
	indexStats compress.CompressionStats
	engine     *glz.GLZ
}

// NewEncoder creates a new container Encoder.
//
// Parameters:
//   - opts: Optional configuration (engine parameters, index layout, names, checksums)
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: Configuration error from an option
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg, err := newEncoderConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode compresses files into a container.
//
// Without WithEngine the engine is trained on the files themselves (and their
// names in archive mode) before encoding.
//
// Returns:
//   - []byte: Serialized container
//   - error: ErrNoEntries for empty input, ErrOverflow when the blob or an
//     entry exceeds the 32-bit index fields, or an engine/compression error
func (e *Encoder) Encode(files []File) ([]byte, error) {
	if len(files) == 0 {
		return nil, errs.ErrNoEntries
	}
	if uint64(len(files)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries", errs.ErrOverflow, len(files))
	}

	flag := e.cfg.flag
	slicesIn := make([][]byte, 0, len(files)*2)
	for _, f := range files {
		slicesIn = append(slicesIn, f.Data)
	}
	if flag.HasNames() {
		for _, f := range files {
			slicesIn = append(slicesIn, []byte(f.Name))
		}
	}

	engine := e.cfg.engine
	if engine == nil {
		var err error
		if engine, err = glz.FromSeed(slicesIn, e.cfg.engineOpts...); err != nil {
			return nil, err
		}
	}
	e.engine = engine

	blob, spans, err := engine.EncodeAllWithProgress(slicesIn, e.cfg.progress)
	if err != nil {
		return nil, err
	}
	if uint64(blob.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: blob of %d bits", errs.ErrOverflow, blob.Len())
	}

	idx := section.Index{
		Table:   hist.CompactTable(engine.DecodeTable()),
		Entries: make([]section.IndexEntry, len(files)),
	}
	for i, f := range files {
		entry := &idx.Entries[i]
		if entry.Offset, entry.Length, err = spanFields(spans[i]); err != nil {
			return nil, err
		}
		if flag.HasNames() {
			if entry.NameOffset, entry.NameLength, err = spanFields(spans[len(files)+i]); err != nil {
				return nil, err
			}
		}
		if flag.HasChecksums() {
			entry.Checksum = murmur3.Sum32(f.Data)
		}
	}

	indexBuf := pool.GetIndexBuffer()
	defer pool.PutIndexBuffer(indexBuf)
	indexBuf.B = idx.Append(indexBuf.B, flag)

	stored, stats, err := compress.CompressWithStats(flag.IndexCompression, indexBuf.Bytes())
	if err != nil {
		return nil, err
	}
	if uint64(len(stored)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: index of %d bytes", errs.ErrOverflow, len(stored))
	}
	e.indexStats = stats

	header := section.NewHeader(engine.K(), engine.L(), engine.M())
	header.Flag = flag
	header.EntryCount = uint32(len(files))   //nolint:gosec
	header.TableLen = uint32(len(idx.Table)) //nolint:gosec
	header.IndexSize = uint32(len(stored))   //nolint:gosec
	header.BlobBits = uint32(blob.Len())     //nolint:gosec

	out := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(out)
	out.Grow(section.HeaderSize + len(stored) + len(blob.Bytes()))
	out.MustWrite(header.Bytes())
	out.MustWrite(stored)
	out.MustWrite(blob.Bytes())

	return slices.Clone(out.Bytes()), nil
}

// IndexStats returns the compression statistics of the index section written
// by the last successful Encode.
func (e *Encoder) IndexStats() compress.CompressionStats {
	return e.indexStats
}

// Engine returns the engine used by the last successful Encode, or nil.
func (e *Encoder) Engine() *glz.GLZ {
	return e.engine
}

func spanFields(s glz.Span) (uint32, uint32, error) {
	if uint64(s.Offset) > math.MaxUint32 || uint64(s.Length) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: span at bit %d of %d bytes", errs.ErrOverflow, s.Offset, s.Length)
	}

	return uint32(s.Offset), uint32(s.Length), nil //nolint:gosec
}
