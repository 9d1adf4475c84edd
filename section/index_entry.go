package section

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/format"
)

// IndexEntry describes one slice stored in the container blob.
//
// Depending on the header flag an entry is serialized with 2 to 5 fields:
// Offset and Length always, NameOffset and NameLength for archives and
// Checksum when checksums are enabled.
type IndexEntry struct {
	// Offset is the bit position of the slice within the blob.
	Offset uint32
	// Length is the decoded byte length of the slice.
	Length uint32
	// NameOffset is the bit position of the name slice (archives only).
	NameOffset uint32
	// NameLength is the decoded byte length of the name slice (archives only).
	NameLength uint32
	// Checksum is the murmur3 32-bit hash of the decoded slice.
	Checksum uint32
}

// Index is the decoded index section: the decode table followed by the entries.
type Index struct {
	Table   []uint32
	Entries []IndexEntry
}

// FieldsPerEntry returns how many fields each entry occupies under flag.
func FieldsPerEntry(flag Flag) int {
	n := 2
	if flag.HasNames() {
		n += 2
	}
	if flag.HasChecksums() {
		n++
	}

	return n
}

// fieldWriter appends one uint32 field in the encoding selected by the flag.
type fieldWriter func(dst []byte, v uint32) []byte

func newFieldWriter(flag Flag) fieldWriter {
	if flag.IndexEncoding() == format.IndexVarint {
		return func(dst []byte, v uint32) []byte {
			return binary.AppendUvarint(dst, uint64(v))
		}
	}

	engine := flag.GetEndianEngine()

	return engine.AppendUint32
}

// Append serializes the index (uncompressed) to dst.
//
// Parameters:
//   - dst: Destination buffer, may be nil
//   - flag: Header flag selecting endianness, field encoding, names and checksums
//
// Returns:
//   - []byte: dst with the serialized index appended
func (idx *Index) Append(dst []byte, flag Flag) []byte {
	put := newFieldWriter(flag)

	for _, sym := range idx.Table {
		dst = put(dst, sym)
	}

	for i := range idx.Entries {
		dst = idx.Entries[i].append(dst, flag, put)
	}

	return dst
}

func (e *IndexEntry) append(dst []byte, flag Flag, put fieldWriter) []byte {
	dst = put(dst, e.Offset)
	dst = put(dst, e.Length)

	if flag.HasNames() {
		dst = put(dst, e.NameOffset)
		dst = put(dst, e.NameLength)
	}

	if flag.HasChecksums() {
		dst = put(dst, e.Checksum)
	}

	return dst
}

// fieldReader reads consecutive uint32 fields from an index section.
type fieldReader struct {
	data   []byte
	pos    int
	varint bool
	flag   Flag
}

func (r *fieldReader) next() (uint32, error) {
	if !r.varint {
		if r.pos+FixedFieldSize > len(r.data) {
			return 0, fmt.Errorf("%w: truncated at byte %d", errs.ErrInvalidIndex, r.pos)
		}
		v := r.flag.GetEndianEngine().Uint32(r.data[r.pos:])
		r.pos += FixedFieldSize

		return v, nil
	}

	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at byte %d", errs.ErrInvalidIndex, r.pos)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: field at byte %d exceeds 32 bits", errs.ErrInvalidIndex, r.pos)
	}
	r.pos += n

	return uint32(v), nil
}

// ParseIndex parses an uncompressed index section.
//
// Parameters:
//   - data: The index section bytes, after decompression
//   - flag: Header flag the section was written with
//   - tableLen: Number of table symbols (Header.TableLen)
//   - count: Number of entries (Header.EntryCount)
//
// Returns:
//   - Index: The decoded table and entries
//   - error: ErrInvalidIndex if data is truncated, malformed or has trailing bytes
func ParseIndex(data []byte, flag Flag, tableLen, count uint32) (Index, error) {
	fields := uint64(tableLen) + uint64(count)*uint64(FieldsPerEntry(flag))
	varint := flag.IndexEncoding() == format.IndexVarint

	minSize := fields * FixedFieldSize
	if varint {
		minSize = fields
	}
	if minSize > uint64(len(data)) {
		return Index{}, fmt.Errorf("%w: %d fields do not fit in %d bytes", errs.ErrInvalidIndex, fields, len(data))
	}

	r := fieldReader{data: data, varint: varint, flag: flag}
	idx := Index{Entries: make([]IndexEntry, count)}

	if tableLen > 0 {
		idx.Table = make([]uint32, tableLen)
		for i := range idx.Table {
			v, err := r.next()
			if err != nil {
				return Index{}, err
			}
			idx.Table[i] = v
		}
	}

	var err error
	for i := range idx.Entries {
		e := &idx.Entries[i]
		if e.Offset, err = r.next(); err != nil {
			return Index{}, err
		}
		if e.Length, err = r.next(); err != nil {
			return Index{}, err
		}
		if flag.HasNames() {
			if e.NameOffset, err = r.next(); err != nil {
				return Index{}, err
			}
			if e.NameLength, err = r.next(); err != nil {
				return Index{}, err
			}
		}
		if flag.HasChecksums() {
			if e.Checksum, err = r.next(); err != nil {
				return Index{}, err
			}
		}
	}

	if r.pos != len(data) {
		return Index{}, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidIndex, len(data)-r.pos)
	}

	return idx, nil
}
