// Package endian provides the byte order engines used by the container index.
//
// EndianEngine combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary, so one value both reads fixed-width index fields and
// appends them while serializing:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, entry.Offset)
//	offset := engine.Uint32(buf[0:4])
//
// Little-endian is the default container byte order. Big-endian index fields
// are selected per container through the header flag.
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Name returns "little-endian" or "big-endian" for the built-in engines and
// the engine's own String otherwise.
func Name(engine EndianEngine) string {
	switch engine {
	case binary.LittleEndian:
		return "little-endian"
	case binary.BigEndian:
		return "big-endian"
	default:
		return engine.String()
	}
}
