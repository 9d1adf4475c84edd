package bits

import (
	"fmt"
	mathbits "math/bits"

	"github.com/arloliu/glz/errs"
	"golang.org/x/exp/constraints"
)

// Symbol is the set of unsigned integer types a symbol may be stored in.
type Symbol interface {
	~uint8 | ~uint16 | ~uint32
}

// SizeOf returns the bit capacity of the symbol type T.
func SizeOf[T Symbol]() int {
	return mathbits.Len64(uint64(^T(0)))
}

// BitLen returns the minimum number of bits required to represent n.
// BitLen(0) is 0.
func BitLen[T constraints.Unsigned](n T) int {
	return mathbits.Len64(uint64(n))
}

// Cast converts a decoded value to T, failing if it does not fit.
func Cast[T Symbol](n uint32) (T, error) {
	if uint64(n) > uint64(^T(0)) {
		return 0, fmt.Errorf("%w: %d exceeds %d bits", errs.ErrCast, n, SizeOf[T]())
	}

	return T(n), nil
}

func checkWidth[T Symbol](width int) error {
	if width < 0 || width > SizeOf[T]() {
		return fmt.Errorf("%w: width %d, symbol holds %d bits", errs.ErrWidthExceeded, width, SizeOf[T]())
	}

	return nil
}

// AppendSymbol appends n to dst as exactly width bits, most significant bit first.
//
// It fails with errs.ErrWidthExceeded if width is larger than T can hold and
// with errs.ErrOverflow if n needs more than width bits.
func AppendSymbol[T Symbol](dst *Vector, width int, n T) error {
	if err := checkWidth[T](width); err != nil {
		return err
	}
	if uint64(n)>>width != 0 {
		return fmt.Errorf("%w: %d does not fit in %d bits", errs.ErrOverflow, n, width)
	}

	dst.AppendUint(width, uint64(n))

	return nil
}

// Encode returns n packed into width bits.
func Encode[T Symbol](width int, n T) (*Vector, error) {
	v := NewVector(width)
	if err := AppendSymbol(v, width, n); err != nil {
		return nil, err
	}

	return v, nil
}

// Decode reads a width-bit symbol at bit offset off.
func Decode[T Symbol](width int, v *Vector, off int) (T, error) {
	if err := checkWidth[T](width); err != nil {
		return 0, err
	}

	x, err := v.Uint(off, width)
	if err != nil {
		return 0, err
	}

	return T(x), nil
}

// EncodeAll concatenates the width-bit encodings of syms.
func EncodeAll[T Symbol](width int, syms []T) (*Vector, error) {
	v := NewVector(width * len(syms))
	for _, n := range syms {
		if err := AppendSymbol(v, width, n); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// DecodeAll decodes width-bit symbols until v is exhausted.
// A trailing partial symbol is reported as errs.ErrTruncated.
func DecodeAll[T Symbol](width int, v *Vector) ([]T, error) {
	if err := checkWidth[T](width); err != nil {
		return nil, err
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: zero symbol width", errs.ErrInvalidConfig)
	}

	out := make([]T, 0, v.Len()/width)
	for off := 0; off < v.Len(); off += width {
		n, err := Decode[T](width, v, off)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, nil
}
