package archive

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"slices"

	"github.com/arloliu/glz"
	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/compress"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/hist"
	"github.com/arloliu/glz/internal/hash"
	"github.com/arloliu/glz/section"
	"github.com/twmb/murmur3"
	"golang.org/x/sync/errgroup"
)

// Entry is one decoded container entry.
type Entry struct {
	// Index is the position of the entry in the container.
	Index int
	// Name is the stored name, empty for index containers.
	Name string
	// Data is the decoded content.
	Data []byte
}

// Decoder provides random access to the entries of a GLZ container.
//
// NewDecoder parses the header and the index and decodes the names of an
// archive; entry contents are only decoded on request. A Decoder is safe for
// concurrent use once created. The container bytes must not be modified while
// the Decoder is in use.
type Decoder struct {
	header section.Header
	index  section.Index
	blob   *bits.Vector
	engine *glz.GLZ
	names  []string
	byName map[uint64][]int
}

// NewDecoder creates a Decoder for a serialized container.
//
// Parameters:
//   - data: Container bytes as produced by Encoder.Encode
//
// Returns:
//   - *Decoder: Decoder ready for random access
//   - error: Header errors, ErrTruncated if a section is cut short,
//     index decompression or parsing errors, or engine configuration errors
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	indexEnd := uint64(section.HeaderSize) + uint64(header.IndexSize)
	blobEnd := indexEnd + uint64(header.BlobSize())
	if blobEnd > uint64(len(data)) {
		return nil, fmt.Errorf("%w: container needs %d bytes, got %d", errs.ErrTruncated, blobEnd, len(data))
	}

	codec, err := compress.CreateCodec(header.Flag.IndexCompression, "index")
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(data[section.HeaderSize:indexEnd])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidIndex, err)
	}

	index, err := section.ParseIndex(raw, header.Flag, header.TableLen, header.EntryCount)
	if err != nil {
		return nil, err
	}

	opts := []glz.Option{glz.WithK(int(header.K)), glz.WithL(int(header.L)), glz.WithM(int(header.M))}
	if len(index.Table) > 0 {
		table, err := hist.ExpandTable(index.Table, glz.AlphabetSize(int(header.L)))
		if err != nil {
			return nil, err
		}
		opts = append(opts, glz.WithTable(table))
	}
	engine, err := glz.New(opts...)
	if err != nil {
		return nil, err
	}

	blob, err := bits.FromBytes(data[indexEnd:blobEnd], int(header.BlobBits))
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		header: header,
		index:  index,
		blob:   blob,
		engine: engine,
	}

	for i, e := range index.Entries {
		if e.Offset > header.BlobBits || (header.Flag.HasNames() && e.NameOffset > header.BlobBits) {
			return nil, fmt.Errorf("%w: entry %d points past the blob", errs.ErrInvalidIndex, i)
		}
	}

	if header.Flag.HasNames() {
		if err := d.decodeNames(); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *Decoder) decodeNames() error {
	d.names = make([]string, len(d.index.Entries))
	d.byName = make(map[uint64][]int, len(d.index.Entries))

	for i, e := range d.index.Entries {
		name, err := d.engine.DecodeAt(d.blob, int(e.NameOffset), int(e.NameLength))
		if err != nil {
			return fmt.Errorf("decode name of entry %d: %w", i, err)
		}
		d.names[i] = string(name)

		id := hash.ID(d.names[i])
		d.byName[id] = append(d.byName[id], i)
	}

	return nil
}

// Header returns the parsed container header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Engine returns the GLZ engine rebuilt from the header and the table.
func (d *Decoder) Engine() *glz.GLZ {
	return d.engine
}

// Blob returns the GLZ bit stream of the container. It aliases the container bytes.
func (d *Decoder) Blob() *bits.Vector {
	return d.blob
}

// Len returns the number of entries.
func (d *Decoder) Len() int {
	return len(d.index.Entries)
}

// Entries returns a copy of the index entries.
func (d *Decoder) Entries() []section.IndexEntry {
	return slices.Clone(d.index.Entries)
}

// Names returns the entry names of an archive, or nil for index containers.
func (d *Decoder) Names() []string {
	return slices.Clone(d.names)
}

// ReadAt decodes the entry at position i and verifies its checksum when present.
//
// Returns:
//   - []byte: Decoded entry
//   - error: ErrEntryNotFound for an out of range i, decoding errors, or
//     ErrChecksumMismatch
func (d *Decoder) ReadAt(i int) ([]byte, error) {
	if i < 0 || i >= len(d.index.Entries) {
		return nil, fmt.Errorf("%w: index %d of %d", errs.ErrEntryNotFound, i, len(d.index.Entries))
	}

	e := d.index.Entries[i]
	data, err := d.engine.DecodeAt(d.blob, int(e.Offset), int(e.Length))
	if err != nil {
		return nil, fmt.Errorf("decode entry %d: %w", i, err)
	}

	if d.header.Flag.HasChecksums() && murmur3.Sum32(data) != e.Checksum {
		return nil, fmt.Errorf("%w: entry %d", errs.ErrChecksumMismatch, i)
	}

	return data, nil
}

// Lookup returns the position of the first entry stored under name.
func (d *Decoder) Lookup(name string) (int, bool) {
	for _, i := range d.byName[hash.ID(name)] {
		if d.names[i] == name {
			return i, true
		}
	}

	return 0, false
}

// ReadFile decodes the first entry stored under name.
//
// Returns:
//   - []byte: Decoded entry
//   - error: ErrEntryNotFound if the container has no such name, or ReadAt errors
func (d *Decoder) ReadFile(name string) ([]byte, error) {
	i, ok := d.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrEntryNotFound, name)
	}

	return d.ReadAt(i)
}

// ReadRange decodes n bytes starting at an arbitrary bit offset of the blob.
//
// The offset must be the start of an operation, such as an entry offset. A
// prefix of an entry is read by passing its offset and a shorter length. No
// checksum is verified.
func (d *Decoder) ReadRange(off, n int) ([]byte, error) {
	return d.engine.DecodeAt(d.blob, off, n)
}

// ReadAll decodes every entry using up to workers goroutines.
//
// Parameters:
//   - ctx: Cancels outstanding work
//   - workers: Maximum concurrency, runtime.GOMAXPROCS(0) when not positive
//
// Returns:
//   - [][]byte: Decoded entries in container order
//   - error: The first ReadAt error or the context error
func (d *Decoder) ReadAll(ctx context.Context, workers int) ([][]byte, error) {
	out := make([][]byte, len(d.index.Entries))

	err := d.forEach(ctx, workers, func(i int, data []byte) {
		out[i] = data
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Verify decodes every entry concurrently, checking checksums when present.
func (d *Decoder) Verify(ctx context.Context) error {
	return d.forEach(ctx, 0, func(int, []byte) {})
}

func (d *Decoder) forEach(parent context.Context, workers int, fn func(i int, data []byte)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(workers)

	for i := range d.index.Entries {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := d.ReadAt(i)
			if err != nil {
				return err
			}
			fn(i, data)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return parent.Err()
}

// All returns an iterator over the decoded entries in container order.
// Iteration stops after the first error, which is yielded with a zero Entry.
func (d *Decoder) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for i := range d.index.Entries {
			data, err := d.ReadAt(i)
			if err != nil {
				yield(Entry{}, err)
				return
			}

			entry := Entry{Index: i, Data: data}
			if d.names != nil {
				entry.Name = d.names[i]
			}

			if !yield(entry, nil) {
				return
			}
		}
	}
}
