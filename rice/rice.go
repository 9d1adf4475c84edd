// Package rice implements the Golomb-Rice entropy code used by glz.
//
// A symbol n is written as q = n>>k one bits, a terminating zero, and the
// low k bits of n. The parameter k can be fitted to a histogram, optionally
// through the histogram's bijective remap.
package rice

import (
	"fmt"
	"math"

	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/hist"
)

// MaxK is the largest supported remainder width.
const MaxK = 32

// GolombRice is a Golomb-Rice code with parameter k.
type GolombRice struct {
	k int
}

var _ bits.Coder = GolombRice{}

// New creates a code with remainder width k.
func New(k int) (GolombRice, error) {
	if k < 0 || k > MaxK {
		return GolombRice{}, fmt.Errorf("%w: rice k=%d out of [0, %d]", errs.ErrInvalidConfig, k, MaxK)
	}

	return GolombRice{k: k}, nil
}

// MustNew is like New but panics on an invalid k.
func MustNew(k int) GolombRice {
	g, err := New(k)
	if err != nil {
		panic(err)
	}

	return g
}

// FromHistogram picks the k that minimizes the total coded size of h.
//
// Every k in [0, bitlen(bound-1)] is tried against the histogram's remapped
// symbols; ties resolve to the smaller k. An empty histogram yields k=0.
func FromHistogram(h *hist.Histogram) GolombRice {
	bound := h.Bound()
	if bound == 0 {
		return GolombRice{}
	}

	costs := make([]uint64, bits.BitLen(uint32(bound-1))+1)
	for rank, count := range h.Mapped() {
		for k := range costs {
			costs[k] += count * (uint64(rank)>>k + 1 + uint64(k))
		}
	}

	best := 0
	for k, cost := range costs {
		if cost < costs[best] {
			best = k
		}
	}

	return GolombRice{k: best}
}

// FromSeed fits k to the distribution of seq.
func FromSeed[T bits.Symbol](seq []T) GolombRice {
	return FromHistogram(hist.FromSeed(seq))
}

// K returns the remainder width.
func (g GolombRice) K() int {
	return g.k
}

// Len returns the number of bits AppendSym writes for n.
func (g GolombRice) Len(n uint32) int {
	return int(uint64(n)>>g.k) + 1 + g.k
}

// AppendSym implements bits.Coder.
func (g GolombRice) AppendSym(dst *bits.Vector, n uint32) error {
	dst.AppendOnes(int(uint64(n) >> g.k))
	dst.AppendBit(false)
	dst.AppendUint(g.k, uint64(n))

	return nil
}

// DecodeSym implements bits.Coder.
func (g GolombRice) DecodeSym(src *bits.Vector, off int) (uint32, int, error) {
	q, ok := src.LeadingOnes(off)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unary run at bit %d", errs.ErrUnterminatedCode, off)
	}

	r, err := src.Uint(off+q+1, g.k)
	if err != nil {
		return 0, 0, err
	}

	if uint64(q) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: quotient %d", errs.ErrCast, q)
	}
	n := uint64(q)<<g.k | r
	if n > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: %d exceeds 32 bits", errs.ErrCast, n)
	}

	return uint32(n), q + 1 + g.k, nil
}

// WithRemap composes the code with a bijective remap.
func (g GolombRice) WithRemap(r hist.Remap) *hist.BijectCoder {
	return hist.NewBijectCoder(g, r)
}

// String implements fmt.Stringer.
func (g GolombRice) String() string {
	return fmt.Sprintf("GolombRice(k=%d)", g.k)
}
