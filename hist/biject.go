package hist

import "github.com/arloliu/glz/bits"

// BijectCoder composes a Remap with a bits.Coder: symbols are mapped to their
// rank before coding and mapped back after decoding.
type BijectCoder struct {
	coder bits.Coder
	remap Remap
}

var _ bits.Coder = (*BijectCoder)(nil)

// NewBijectCoder wraps coder with remap. A nil remap means Identity.
func NewBijectCoder(coder bits.Coder, remap Remap) *BijectCoder {
	if remap == nil {
		remap = Identity{}
	}

	return &BijectCoder{coder: coder, remap: remap}
}

// AppendSym implements bits.Coder.
func (b *BijectCoder) AppendSym(dst *bits.Vector, n uint32) error {
	return b.coder.AppendSym(dst, b.remap.MapEncode(n))
}

// DecodeSym implements bits.Coder.
func (b *BijectCoder) DecodeSym(src *bits.Vector, off int) (uint32, int, error) {
	n, used, err := b.coder.DecodeSym(src, off)
	if err != nil {
		return 0, 0, err
	}

	return b.remap.MapDecode(n), used, nil
}

// Coder returns the wrapped coder.
func (b *BijectCoder) Coder() bits.Coder {
	return b.coder
}

// Remap returns the remap applied around the coder.
func (b *BijectCoder) Remap() Remap {
	return b.remap
}
