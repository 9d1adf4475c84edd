package hist

import (
	"fmt"
	"slices"

	"github.com/arloliu/glz/errs"
)

// CompactTable strips the tail of a decode table that ExpandTable can rebuild.
//
// The stripped tail is the ascending run of symbols missing from the kept
// prefix. Sort leaves every zero count symbol there, so a sorted table keeps
// only the ranks that were observed. The highest symbol is always kept since
// it fixes the table length on expansion.
func CompactTable(decode []uint32) []uint32 {
	n := len(decode)
	if n == 0 {
		return nil
	}

	cut := n - 1
	for cut > 0 && decode[cut-1] < decode[cut] {
		cut--
	}

	if top := slices.Index(decode, uint32(n-1)); top >= cut {
		cut = top + 1
	}

	return slices.Clone(decode[:cut])
}

// ExpandTable appends the symbols of [0, max+1) missing from decode, in
// ascending order. A full permutation is returned unchanged. Every symbol must
// be below limit. The result is otherwise not validated; NewRemapped rejects
// anything that is not a permutation.
func ExpandTable(decode []uint32, limit uint32) ([]uint32, error) {
	if len(decode) == 0 {
		return nil, nil
	}

	top := slices.Max(decode)
	if top >= limit {
		return nil, fmt.Errorf("%w: symbol %d outside alphabet of %d", errs.ErrInvalidTable, top, limit)
	}

	bound := int(top) + 1
	if bound <= len(decode) {
		return slices.Clone(decode), nil
	}

	seen := make([]bool, bound)
	for _, sym := range decode {
		seen[sym] = true
	}

	out := make([]uint32, len(decode), bound)
	copy(out, decode)
	for sym, ok := range seen {
		if !ok {
			out = append(out, uint32(sym))
		}
	}

	return out, nil
}
