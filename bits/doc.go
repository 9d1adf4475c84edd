// Package bits provides the bit-level foundation of the glz codec.
//
// A Vector is an MSB-first bit sequence: append-only while encoding and
// randomly addressable by absolute bit offset while decoding. On top of it the
// package implements fixed-width symbol packing and the Coder interface shared
// by every entropy coder in the module.
package bits
