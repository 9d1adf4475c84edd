package section

import (
	"github.com/arloliu/glz/endian"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/format"
)

// Flag represents the packed option bytes of the container header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1 is index encoding flag, 0 means fixed 32-bit fields, 1 means uvarint fields.
	// Bit 2 is checksum flag, 1 means every index entry carries a murmur3 checksum.
	// Bit 3-15 are reserved for future use, must be set to 0.
	Options uint16

	// Kind tells whether entries carry names.
	Kind format.Kind
	// IndexCompression is the compression applied to the whole index section.
	IndexCompression format.CompressionType
}

var validCompressions = map[format.CompressionType]struct{}{
	format.CompressionNone: {},
	format.CompressionZstd: {},
	format.CompressionS2:   {},
	format.CompressionLZ4:  {},
}

// NewFlag creates a Flag for a little-endian, fixed-index, uncompressed index container.
func NewFlag() Flag {
	return Flag{
		Kind:             format.KindIndex,
		IndexCompression: format.CompressionNone,
	}
}

// IsLittleEndian returns whether fixed index fields are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether fixed index fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// IndexEncoding returns how index fields are stored.
func (f Flag) IndexEncoding() format.IndexEncoding {
	if f.Options&VarintIndexMask != 0 {
		return format.IndexVarint
	}

	return format.IndexFixed
}

// SetIndexEncoding selects fixed or varint index fields.
func (f *Flag) SetIndexEncoding(enc format.IndexEncoding) {
	if enc == format.IndexVarint {
		f.Options |= VarintIndexMask
	} else {
		f.Options &^= VarintIndexMask
	}
}

// HasChecksums returns whether index entries carry checksums.
func (f Flag) HasChecksums() bool {
	return (f.Options & ChecksumMask) != 0
}

// SetHasChecksums enables or disables per entry checksums.
func (f *Flag) SetHasChecksums(enabled bool) {
	if enabled {
		f.Options |= ChecksumMask
	} else {
		f.Options &^= ChecksumMask
	}
}

// HasNames returns whether index entries reference a name slice.
func (f Flag) HasNames() bool {
	return f.Kind == format.KindArchive
}

// Validate checks that the flag only uses known values.
func (f Flag) Validate() error {
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if f.Kind != format.KindIndex && f.Kind != format.KindArchive {
		return errs.ErrInvalidHeaderFlags
	}

	if _, ok := validCompressions[f.IndexCompression]; !ok {
		return errs.ErrInvalidCompressionType
	}

	return nil
}
