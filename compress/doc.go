// Package compress provides the general purpose codecs applied to the index
// section of a GLZ container.
//
// The GLZ blob is already entropy coded, so only the index section (decode
// table and per entry offsets, lengths, names and checksums) goes through one
// of these codecs. The choice is recorded in the container header as a
// format.CompressionType.
//
// # Codecs
//
//   - None: NoOpCompressor, stores the index as is (default)
//   - Zstd: ZstdCompressor, best ratio; pure Go by default, cgo gozstd with -tags zstd_cgo
//   - S2: S2Compressor, fastest
//   - LZ4: LZ4Compressor, a uvarint length prefix followed by an LZ4 block
//
// No codec decodes an index larger than MaxIndexSize. S2 and LZ4 reject the
// announced length before allocating; zstd decoders stop at the limit.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(index)
//
// CompressWithStats additionally reports the sizes and time of the
// compression, which the archive encoder exposes to callers.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool encoders and decoders
// and are safe for concurrent use.
package compress
