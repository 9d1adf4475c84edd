// Package glz implements GLZ, a granular compression codec.
//
// GLZ combines LZ77-style back-references with an adaptive Golomb-Rice
// entropy code. Many byte slices are compressed into one shared bitstream, and
// any of them (or any prefix of one) can later be decoded on its own, in time
// proportional to its length and with constant auxiliary memory.
//
// # Basic Usage
//
// Training an engine on sample data and encoding a set of slices:
//
//	g, _ := glz.FromSeed(files)
//	blob, spans, _ := g.EncodeAll(files)
//
// Decoding one slice:
//
//	data, _ := g.DecodeAt(blob, spans[3].Offset, spans[3].Length)
//
// A GLZ instance is immutable and safe for concurrent decoding. Persisting the
// blob together with k, l, m and the decode table is left to the archive
// package.
//
// # Wire Format
//
// Every operation starts with one entropy coded symbol s from an alphabet of
// 256 + 2^(L+1) values:
//
//   - s < 256: a single literal byte s.
//   - s < 256 + 2^L: a reference of s-256+2 bytes, followed by the bit offset
//     of its target in chunks of M+1 bits (a continuation flag and M payload
//     bits, most significant chunk first).
//   - otherwise: a run of s-256-2^L+2 copies of a byte, followed by the byte
//     as one more coded symbol.
package glz

import (
	"fmt"

	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/hist"
	"github.com/arloliu/glz/rice"
)

// GLZ is an immutable codec configuration.
type GLZ struct {
	l     int
	m     int
	k     int
	remap hist.Remap
	coder *hist.BijectCoder

	// onPush observes every child frame pushed while decoding.
	onPush func(depth int)
}

// New creates a GLZ instance from explicit parameters.
//
// Without WithK the neutral k (the bit width of the operation alphabet) is
// used. Without WithTable symbols are coded unmapped. A table without k is
// rejected since k can only be fitted to data; use FromSeed or FromHistogram.
func New(opts ...Option) (*GLZ, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	if cfg.hasTable && !cfg.hasK {
		return nil, fmt.Errorf("%w: a symbol table requires an explicit k", errs.ErrInvalidConfig)
	}

	var remap hist.Remap = hist.Identity{}
	if cfg.hasTable {
		r, err := hist.NewRemapped(cfg.table)
		if err != nil {
			return nil, err
		}
		remap = r
	}

	k := neutralK(cfg.l)
	if cfg.hasK {
		k = cfg.k
	}

	return build(cfg.l, cfg.m, k, remap)
}

// FromHistogram creates a GLZ instance fitted to a histogram of operation
// symbols. The histogram is not modified.
//
// The histogram is ranked by frequency unless WithTable supplies a table, and
// k is fitted unless WithK supplies it.
func FromHistogram(h *hist.Histogram, opts ...Option) (*GLZ, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return fit(h.Clone(), cfg)
}

// FromSeed trains a GLZ instance on sample slices.
//
// Each pass encodes the samples with the current engine, collects the
// histogram of the coded operation symbols and refits the table and k. The
// first pass starts from the neutral configuration. Supplying both WithK and
// WithTable skips training.
func FromSeed(samples [][]byte, opts ...Option) (*GLZ, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	if cfg.hasK && cfg.hasTable {
		return New(opts...)
	}

	k := neutralK(cfg.l)
	if cfg.hasK {
		k = cfg.k
	}
	g, err := build(cfg.l, cfg.m, k, hist.Identity{})
	if err != nil {
		return nil, err
	}

	for range cfg.passes {
		blob, _, err := g.EncodeAll(samples)
		if err != nil {
			return nil, err
		}

		h, err := g.Histogram(blob)
		if err != nil {
			return nil, err
		}
		if h.Sum() == 0 {
			break
		}

		if g, err = fit(h, cfg); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func fit(h *hist.Histogram, cfg *Config) (*GLZ, error) {
	if cfg.hasTable {
		if err := h.SetTable(cfg.table); err != nil {
			return nil, err
		}
	} else {
		h.Sort()
	}

	k := rice.FromHistogram(h).K()
	if cfg.hasK {
		k = cfg.k
	}

	return build(cfg.l, cfg.m, k, h.Remap())
}

func build(l, m, k int, remap hist.Remap) (*GLZ, error) {
	g, err := rice.New(k)
	if err != nil {
		return nil, err
	}

	return &GLZ{
		l:     l,
		m:     m,
		k:     k,
		remap: remap,
		coder: g.WithRemap(remap),
	}, nil
}

// neutralK is the fixed width that codes every operation symbol of the
// alphabet in one unary bit plus k remainder bits.
func neutralK(l int) int {
	return bits.BitLen(AlphabetSize(l) - 1)
}

// AlphabetSize returns the number of operation symbols for reference length
// exponent l: 256 literals, then references, then runs.
func AlphabetSize(l int) uint32 {
	return 256 + 1<<(l+1)
}

// K returns the Golomb-Rice parameter.
func (g *GLZ) K() int {
	return g.k
}

// L returns the reference length exponent.
func (g *GLZ) L() int {
	return g.l
}

// M returns the number of payload bits per offset chunk.
func (g *GLZ) M() int {
	return g.m
}

// MaxLen returns the longest run or reference, 2^L+1 bytes.
func (g *GLZ) MaxLen() int {
	return 1<<g.l + 1
}

// Alphabet returns the number of distinct operation symbols.
func (g *GLZ) Alphabet() uint32 {
	return AlphabetSize(g.l)
}

// Remap returns the symbol remap applied before entropy coding.
func (g *GLZ) Remap() hist.Remap {
	return g.remap
}

// DecodeTable returns the rank to symbol table, or nil for the identity remap.
func (g *GLZ) DecodeTable() []uint32 {
	if r, ok := g.remap.(*hist.Remapped); ok {
		return r.DecodeTable()
	}

	return nil
}

// EncodeTable returns the symbol to rank table, or nil for the identity remap.
func (g *GLZ) EncodeTable() []uint32 {
	if r, ok := g.remap.(*hist.Remapped); ok {
		return r.EncodeTable()
	}

	return nil
}

// Coder returns the entropy coder used for operation symbols.
func (g *GLZ) Coder() bits.Coder {
	return g.coder
}

// String implements fmt.Stringer.
func (g *GLZ) String() string {
	return fmt.Sprintf("GLZ(k=%d, l=%d, m=%d, table=%d)", g.k, g.l, g.m, g.remap.Bound())
}
