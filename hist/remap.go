package hist

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/glz/errs"
)

// Remap is a bijection over uint32 symbols.
//
// It is either Identity or *Remapped. Remapped permutes the value modulo its
// table length and passes the quotient through unchanged.
type Remap interface {
	MapEncode(n uint32) uint32
	MapDecode(n uint32) uint32
	// Bound returns the table length, or 0 for Identity.
	Bound() int

	sealed()
}

// Identity leaves every symbol unchanged.
type Identity struct{}

func (Identity) MapEncode(n uint32) uint32 { return n }
func (Identity) MapDecode(n uint32) uint32 { return n }
func (Identity) Bound() int                { return 0 }
func (Identity) sealed()                   {}

// Remapped permutes symbols through a decode table (rank to symbol) and its
// inverse encode table (symbol to rank).
type Remapped struct {
	encode []uint32
	decode []uint32
}

// NewRemapped builds a remap from a decode table.
// The table must be a permutation of [0, len(decode)).
func NewRemapped(decode []uint32) (*Remapped, error) {
	if uint64(len(decode)) > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: table of %d entries", errs.ErrInvalidTable, len(decode))
	}

	encode := make([]uint32, len(decode))
	seen := make([]bool, len(decode))
	for rank, sym := range decode {
		if int(sym) >= len(decode) || seen[sym] {
			return nil, fmt.Errorf("%w: entry %d (%d) is not part of a permutation of [0, %d)",
				errs.ErrInvalidTable, rank, sym, len(decode))
		}
		seen[sym] = true
		encode[sym] = uint32(rank)
	}

	return &Remapped{encode: encode, decode: slices.Clone(decode)}, nil
}

// MapEncode maps a symbol to its rank.
func (r *Remapped) MapEncode(n uint32) uint32 {
	return permute(n, r.encode)
}

// MapDecode maps a rank back to its symbol.
func (r *Remapped) MapDecode(n uint32) uint32 {
	return permute(n, r.decode)
}

// Bound returns the table length.
func (r *Remapped) Bound() int {
	return len(r.decode)
}

// EncodeTable returns a copy of the symbol to rank table.
func (r *Remapped) EncodeTable() []uint32 {
	return slices.Clone(r.encode)
}

// DecodeTable returns a copy of the rank to symbol table.
func (r *Remapped) DecodeTable() []uint32 {
	return slices.Clone(r.decode)
}

func (*Remapped) sealed() {}

// permute replaces n mod len(table) through table. The last block of the
// uint32 range is left alone when it is shorter than the table, which keeps
// the mapping a bijection over every uint32.
func permute(n uint32, table []uint32) uint32 {
	b := uint64(len(table))
	if b == 0 {
		return n
	}

	base := uint64(n) / b * b
	if base+b-1 > math.MaxUint32 {
		return n
	}

	return uint32(base + uint64(table[uint64(n)-base]))
}
