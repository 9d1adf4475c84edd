// Package section defines the low-level binary structures of the GLZ container.
//
// A container stores many byte slices compressed into one GLZ bit stream
// together with the index needed to decode any one of them on its own.
//
// # Container Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - magic, version, options, kind, engine k/l/m          │
//	│  - entry count, table length, index size, blob bits     │
//	├─────────────────────────────────────────────────────────┤
//	│ Index (IndexSize bytes, optionally compressed)          │
//	│  - decode table symbols (TableLen fields)               │
//	│  - one IndexEntry per slice                             │
//	├─────────────────────────────────────────────────────────┤
//	│ Blob (ceil(BlobBits/8) bytes, zero padded)              │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|----------------------------------
//	0-3    | Magic            | [4]u8  | "\x00glz"
//	4      | VersionMajor     | uint8  | 1
//	5      | VersionMinor     | uint8  | 0
//	6-7    | Options          | uint16 | endianness, varint index, checksums
//	8      | Kind             | uint8  | 1=index, 2=archive
//	9-11   | K, L, M          | uint8  | engine parameters
//	12     | IndexCompression | uint8  | 0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4
//	13-15  | Reserved         |        | must be 0
//	16-19  | EntryCount       | uint32 |
//	20-23  | TableLen         | uint32 |
//	24-27  | IndexSize        | uint32 | stored size of the index section
//	28-31  | BlobBits         | uint32 | bit length of the blob
//
// Header fields are always little-endian. The endianness bit selects the
// byte order of fixed-width index fields only.
//
// # Index Format
//
// Every field is a uint32, either as 4 bytes in the flagged byte order or as
// an unsigned LEB128 varint. Per entry the fields are:
//
//	Offset, Length [, NameOffset, NameLength] [, Checksum]
//
// Name fields are present for archives, the checksum when bit 2 is set.
package section
