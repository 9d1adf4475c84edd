package hist

import (
	"iter"
	"slices"

	"github.com/arloliu/glz/bits"
)

// Histogram counts symbol occurrences and derives a frequency ranked remap.
//
// Counts are always kept in symbol space. The remap is fixed by Sort, and
// later increments do not change it until the next Sort.
type Histogram struct {
	counts []uint64
	remap  Remap
}

// New creates an empty histogram with an identity remap.
func New() *Histogram {
	return &Histogram{remap: Identity{}}
}

// WithTable creates an empty histogram with a fixed decode table.
func WithTable(decode []uint32) (*Histogram, error) {
	r, err := NewRemapped(decode)
	if err != nil {
		return nil, err
	}

	return &Histogram{remap: r}, nil
}

// FromSeed counts every symbol in seq.
func FromSeed[T bits.Symbol](seq []T) *Histogram {
	h := New()
	for _, n := range seq {
		h.Increment(uint32(n))
	}

	return h
}

// Increment adds one occurrence of sym.
func (h *Histogram) Increment(sym uint32) {
	h.IncrementBy(sym, 1)
}

// IncrementBy adds n occurrences of sym.
func (h *Histogram) IncrementBy(sym uint32, n uint64) {
	if int(sym) >= len(h.counts) {
		h.counts = slices.Grow(h.counts, int(sym)+1-len(h.counts))
		h.counts = h.counts[:int(sym)+1]
	}
	h.counts[sym] += n
}

// Decrement removes one occurrence of sym.
func (h *Histogram) Decrement(sym uint32) {
	h.DecrementBy(sym, 1)
}

// DecrementBy removes n occurrences of sym, saturating at zero.
func (h *Histogram) DecrementBy(sym uint32, n uint64) {
	if int(sym) >= len(h.counts) {
		return
	}
	h.counts[sym] -= min(h.counts[sym], n)
}

// Count returns the number of occurrences of sym.
func (h *Histogram) Count(sym uint32) uint64 {
	if int(sym) >= len(h.counts) {
		return 0
	}

	return h.counts[sym]
}

// CountBounded returns the summed count of every symbol congruent to sym
// modulo bound.
func (h *Histogram) CountBounded(sym uint32, bound int) uint64 {
	if bound <= 0 {
		return h.Count(sym)
	}

	var total uint64
	for i := int(sym) % bound; i < len(h.counts); i += bound {
		total += h.counts[i]
	}

	return total
}

// Sum returns the total number of occurrences.
func (h *Histogram) Sum() uint64 {
	var total uint64
	for _, c := range h.counts {
		total += c
	}

	return total
}

// Max returns the most frequent symbol and its count.
// Ties resolve to the smaller symbol.
func (h *Histogram) Max() (uint32, uint64) {
	var sym uint32
	var peak uint64
	for i, c := range h.counts {
		if c > peak {
			sym, peak = uint32(i), c
		}
	}

	return sym, peak
}

// Distinct returns the number of symbols with a non-zero count.
func (h *Histogram) Distinct() int {
	n := 0
	for _, c := range h.counts {
		if c != 0 {
			n++
		}
	}

	return n
}

// Bound returns the table length if a table is set, otherwise the highest
// observed symbol plus one.
func (h *Histogram) Bound() int {
	if b := h.remap.Bound(); b > 0 {
		return b
	}

	return h.upper()
}

func (h *Histogram) upper() int {
	for i := len(h.counts) - 1; i >= 0; i-- {
		if h.counts[i] != 0 {
			return i + 1
		}
	}

	return 0
}

// Sort ranks the observed symbols by descending count and installs the
// resulting remap. The bound is the highest observed symbol plus one.
func (h *Histogram) Sort() {
	h.SortBounded(h.upper())
}

// SortBounded ranks [0, bound) by descending CountBounded, ties by ascending
// symbol, and installs the resulting remap.
func (h *Histogram) SortBounded(bound int) {
	if bound <= 0 {
		h.remap = Identity{}
		return
	}

	totals := make([]uint64, bound)
	for i := range totals {
		totals[i] = h.CountBounded(uint32(i), bound)
	}

	decode := make([]uint32, bound)
	for i := range decode {
		decode[i] = uint32(i)
	}
	slices.SortStableFunc(decode, func(a, b uint32) int {
		switch {
		case totals[a] > totals[b]:
			return -1
		case totals[a] < totals[b]:
			return 1
		default:
			return 0
		}
	})

	encode := make([]uint32, bound)
	for rank, sym := range decode {
		encode[sym] = uint32(rank)
	}
	h.remap = &Remapped{encode: encode, decode: decode}
}

// SetTable installs a fixed decode table as the remap.
func (h *Histogram) SetTable(decode []uint32) error {
	r, err := NewRemapped(decode)
	if err != nil {
		return err
	}
	h.remap = r

	return nil
}

// Remap returns the current remap.
func (h *Histogram) Remap() Remap {
	return h.remap
}

// MapEncode maps a symbol to its rank under the current remap.
func (h *Histogram) MapEncode(n uint32) uint32 {
	return h.remap.MapEncode(n)
}

// MapDecode maps a rank back to its symbol under the current remap.
func (h *Histogram) MapDecode(n uint32) uint32 {
	return h.remap.MapDecode(n)
}

// EncodeTable returns the symbol to rank table, or nil for the identity remap.
func (h *Histogram) EncodeTable() []uint32 {
	if r, ok := h.remap.(*Remapped); ok {
		return r.EncodeTable()
	}

	return nil
}

// DecodeTable returns the rank to symbol table, or nil for the identity remap.
func (h *Histogram) DecodeTable() []uint32 {
	if r, ok := h.remap.(*Remapped); ok {
		return r.DecodeTable()
	}

	return nil
}

// All yields every observed symbol and its count in ascending symbol order.
func (h *Histogram) All() iter.Seq2[uint32, uint64] {
	return func(yield func(uint32, uint64) bool) {
		for i, c := range h.counts {
			if c == 0 {
				continue
			}
			if !yield(uint32(i), c) {
				return
			}
		}
	}
}

// Mapped yields every observed symbol's rank under the current remap and its count.
func (h *Histogram) Mapped() iter.Seq2[uint32, uint64] {
	return func(yield func(uint32, uint64) bool) {
		for sym, c := range h.All() {
			if !yield(h.remap.MapEncode(sym), c) {
				return
			}
		}
	}
}

// Clone returns a deep copy of h. Remaps are immutable and shared.
func (h *Histogram) Clone() *Histogram {
	return &Histogram{counts: slices.Clone(h.counts), remap: h.remap}
}
