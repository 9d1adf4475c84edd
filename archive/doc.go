// Package archive stores many files in a single GLZ container with random access.
//
// The Encoder trains a GLZ engine on the input files (or uses one supplied
// with WithEngine), encodes all of them into one shared bit stream and writes
// the engine parameters, the decode table and an index of bit offsets and
// lengths next to it. The Decoder rebuilds the engine from the container and
// decodes any single entry, or a prefix of it, without touching the others.
//
// # Basic Usage
//
//	enc, _ := archive.NewEncoder(archive.WithArchiveNames(), archive.WithChecksums())
//	data, _ := enc.Encode([]archive.File{{Name: "a.txt", Data: a}, {Name: "b.txt", Data: b}})
//
//	dec, _ := archive.NewDecoder(data)
//	content, _ := dec.ReadFile("b.txt")
//
// # Container Kinds
//
//   - Index containers address entries by position only.
//   - Archives (WithArchiveNames) also store each name as an extra GLZ slice,
//     so names share the dictionary with the content.
//
// See package section for the byte layout.
package archive
