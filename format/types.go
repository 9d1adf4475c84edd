// Package format defines the enumerations stored in a GLZ container header.
package format

type (
	CompressionType uint8
	IndexEncoding   uint8
	Kind            uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	IndexFixed  IndexEncoding = 0x1 // IndexFixed stores index fields as fixed 32-bit integers.
	IndexVarint IndexEncoding = 0x2 // IndexVarint stores index fields as unsigned LEB128 varints.

	KindIndex   Kind = 0x1 // KindIndex addresses entries by position.
	KindArchive Kind = 0x2 // KindArchive additionally stores a name per entry.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a case-insensitive compression name.
func ParseCompressionType(s string) (CompressionType, bool) {
	switch s {
	case "none", "None", "NONE", "":
		return CompressionNone, true
	case "zstd", "Zstd", "ZSTD":
		return CompressionZstd, true
	case "s2", "S2":
		return CompressionS2, true
	case "lz4", "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (e IndexEncoding) String() string {
	switch e {
	case IndexFixed:
		return "Fixed"
	case IndexVarint:
		return "Varint"
	default:
		return "Unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "Index"
	case KindArchive:
		return "Archive"
	default:
		return "Unknown"
	}
}
