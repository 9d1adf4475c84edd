package section

import (
	"fmt"

	"github.com/arloliu/glz/endian"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/format"
)

// Header represents the fixed-size header at the start of a GLZ container.
//
// All multi-byte header fields are little-endian. The endianness bit in
// Flag.Options only applies to fixed-width index fields.
type Header struct {
	// Flag holds the packed options, the kind and the index compression.
	Flag Flag // byte offset 6-8, 12

	// VersionMajor and VersionMinor identify the layout revision.
	VersionMajor uint8 // byte offset 4
	VersionMinor uint8 // byte offset 5

	// K is the Golomb-Rice parameter of the engine.
	K uint8 // byte offset 9
	// L is the run/reference length exponent of the engine.
	L uint8 // byte offset 10
	// M is the offset chunk width of the engine.
	M uint8 // byte offset 11

	// EntryCount is the number of entries in the index section.
	EntryCount uint32 // byte offset 16-19
	// TableLen is the number of symbols in the decode table, 0 for identity.
	TableLen uint32 // byte offset 20-23
	// IndexSize is the byte size of the index section as stored (after compression).
	IndexSize uint32 // byte offset 24-27
	// BlobBits is the bit length of the GLZ blob that follows the index section.
	BlobBits uint32 // byte offset 28-31
}

// NewHeader creates a Header for the given engine parameters.
// Counts and sizes are filled in by the encoder once the sections are known.
func NewHeader(k, l, m int) *Header {
	return &Header{
		Flag:         NewFlag(),
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		K:            uint8(k), //nolint:gosec
		L:            uint8(l), //nolint:gosec
		M:            uint8(m), //nolint:gosec
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrUnsupportedVersion or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	if string(data[0:4]) != Magic {
		return errs.ErrInvalidMagic
	}

	engine := endian.GetLittleEndianEngine()

	h.VersionMajor = data[4]
	h.VersionMinor = data[5]
	h.Flag.Options = engine.Uint16(data[6:8])
	h.Flag.Kind = format.Kind(data[8])
	h.K = data[9]
	h.L = data[10]
	h.M = data[11]
	h.Flag.IndexCompression = format.CompressionType(data[12])

	if data[13] != 0 || data[14] != 0 || data[15] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	h.EntryCount = engine.Uint32(data[16:20])
	h.TableLen = engine.Uint32(data[20:24])
	h.IndexSize = engine.Uint32(data[24:28])
	h.BlobBits = engine.Uint32(data[28:32])

	if h.VersionMajor != VersionMajor {
		return fmt.Errorf("%w: %d.%d", errs.ErrUnsupportedVersion, h.VersionMajor, h.VersionMinor)
	}

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	return h.validateParams()
}

func (h *Header) validateParams() error {
	if h.L < 1 || h.L > 16 {
		return fmt.Errorf("%w: l=%d", errs.ErrInvalidConfig, h.L)
	}

	if h.M < 1 || h.M > 16 {
		return fmt.Errorf("%w: m=%d", errs.ErrInvalidConfig, h.M)
	}

	if h.K > 32 {
		return fmt.Errorf("%w: k=%d", errs.ErrInvalidConfig, h.K)
	}

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.GetLittleEndianEngine()

	copy(b[0:4], Magic)
	b[4] = h.VersionMajor
	b[5] = h.VersionMinor
	engine.PutUint16(b[6:8], h.Flag.Options)
	b[8] = uint8(h.Flag.Kind)
	b[9] = h.K
	b[10] = h.L
	b[11] = h.M
	b[12] = uint8(h.Flag.IndexCompression)
	engine.PutUint32(b[16:20], h.EntryCount)
	engine.PutUint32(b[20:24], h.TableLen)
	engine.PutUint32(b[24:28], h.IndexSize)
	engine.PutUint32(b[28:32], h.BlobBits)

	return b
}

// BlobSize returns the byte size of the blob section, ceil(BlobBits/8).
func (h *Header) BlobSize() int {
	return int((uint64(h.BlobBits) + 7) / 8)
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or header validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// IsContainer reports whether data starts with the GLZ container magic.
func IsContainer(data []byte) bool {
	return len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic
}
