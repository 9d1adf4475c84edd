package bits

import (
	"fmt"

	"github.com/arloliu/glz/errs"
)

// Coder is a variable or fixed length code over 32-bit symbols.
type Coder interface {
	// AppendSym appends the code for n to dst.
	AppendSym(dst *Vector, n uint32) error
	// DecodeSym decodes the symbol at bit offset off and reports how many bits it used.
	DecodeSym(src *Vector, off int) (uint32, int, error)
}

// Fixed is a Coder that writes every symbol with the same bit width.
type Fixed int

// AppendSym implements Coder.
func (f Fixed) AppendSym(dst *Vector, n uint32) error {
	return AppendSymbol(dst, int(f), n)
}

// DecodeSym implements Coder.
func (f Fixed) DecodeSym(src *Vector, off int) (uint32, int, error) {
	n, err := Decode[uint32](int(f), src, off)
	if err != nil {
		return 0, 0, err
	}

	return n, int(f), nil
}

// EncodeSymbols encodes syms with c.
func EncodeSymbols[T Symbol](c Coder, syms []T) (*Vector, error) {
	v := NewVector(len(syms) * SizeOf[T]())
	for _, n := range syms {
		if err := c.AppendSym(v, uint32(n)); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// DecodeSymbol decodes one symbol with c and converts it to T.
func DecodeSymbol[T Symbol](c Coder, src *Vector, off int) (T, int, error) {
	n, used, err := c.DecodeSym(src, off)
	if err != nil {
		return 0, 0, err
	}

	sym, err := Cast[T](n)
	if err != nil {
		return 0, 0, err
	}

	return sym, used, nil
}

// DecodeSymbols decodes symbols with c until src is exhausted.
func DecodeSymbols[T Symbol](c Coder, src *Vector) ([]T, error) {
	var out []T
	for off := 0; off < src.Len(); {
		sym, used, err := DecodeSymbol[T](c, src, off)
		if err != nil {
			return nil, err
		}
		if used == 0 {
			return nil, fmt.Errorf("%w: coder consumed no bits", errs.ErrInvalidConfig)
		}

		out = append(out, sym)
		off += used
	}

	return out, nil
}
