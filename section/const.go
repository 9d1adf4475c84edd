package section

// Container magic and versions.
const (
	Magic        = "\x00glz" // Magic identifies a GLZ container.
	VersionMajor = 1         // VersionMajor is bumped on incompatible layout changes.
	VersionMinor = 0         // VersionMinor is bumped on compatible additions.
)

const (
	// Bit masks of Flag.Options
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0), 0=little, 1=big
	VarintIndexMask  = 0x0002 // Mask for varint index bit (bit 1)
	ChecksumMask     = 0x0004 // Mask for entry checksum bit (bit 2)
	ReservedBitsMask = 0xFFF8 // Mask for reserved bits (bit 3-15), must be zero
)

// offset and section sizes in the container
const (
	HeaderSize         = 32         // fixed header size in bytes
	IndexOffset        = HeaderSize // byte offset where the index section starts
	FixedFieldSize     = 4          // size of each fixed-width index field in bytes
	MaxVarintFieldSize = 5          // upper bound of a uvarint encoded uint32 field
)
