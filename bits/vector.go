package bits

import (
	"fmt"
	mathbits "math/bits"
	"strings"

	"github.com/arloliu/glz/errs"
)

// Vector is a sequence of bits stored most-significant-bit first.
//
// The zero value is an empty vector ready to use. Bits past Len in the last
// byte are always zero for vectors built by appending.
type Vector struct {
	buf []byte
	n   int
}

// NewVector creates an empty vector with room for capBits bits.
func NewVector(capBits int) *Vector {
	return &Vector{buf: make([]byte, 0, (capBits+7)/8)}
}

// FromBytes wraps the first n bits of b without copying.
//
// The returned vector aliases b and must be treated as read-only.
func FromBytes(b []byte, n int) (*Vector, error) {
	if n < 0 || n > len(b)*8 {
		return nil, fmt.Errorf("%w: %d bits requested from %d bytes", errs.ErrTruncated, n, len(b))
	}

	return &Vector{buf: b[:(n+7)/8], n: n}, nil
}

// Parse builds a vector from a string of '0' and '1' characters.
// Spaces and underscores are ignored.
func Parse(s string) (*Vector, error) {
	v := NewVector(len(s))
	for i, c := range s {
		switch c {
		case '0':
			v.AppendBit(false)
		case '1':
			v.AppendBit(true)
		case ' ', '_':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", errs.ErrFormat, c, i)
		}
	}

	return v, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) *Vector {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}

// Len returns the number of bits in the vector.
func (v *Vector) Len() int {
	return v.n
}

// Bytes returns the packed bits. The last byte is zero padded.
func (v *Vector) Bytes() []byte {
	return v.buf
}

// Reset empties the vector while keeping its storage.
func (v *Vector) Reset() {
	v.buf = v.buf[:0]
	v.n = 0
}

// Bit reports whether the bit at position i is set.
// It panics if i is out of range.
func (v *Vector) Bit(i int) bool {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("bits: index %d out of range [0, %d)", i, v.n))
	}

	return v.buf[i>>3]&(0x80>>(i&7)) != 0
}

// AppendBit appends a single bit.
func (v *Vector) AppendBit(bit bool) {
	if v.n&7 == 0 {
		v.buf = append(v.buf, 0)
	}
	if bit {
		v.buf[len(v.buf)-1] |= 0x80 >> (v.n & 7)
	}
	v.n++
}

// AppendUint appends the low width bits of x, most significant bit first.
// Widths above 64 are clamped to 64.
func (v *Vector) AppendUint(width int, x uint64) {
	if width > 64 {
		width = 64
	}

	for width > 0 {
		used := v.n & 7
		if used == 0 {
			v.buf = append(v.buf, 0)
		}

		free := 8 - used
		take := min(free, width)
		chunk := byte((x >> (width - take)) & (1<<take - 1))
		v.buf[len(v.buf)-1] |= chunk << (free - take)

		width -= take
		v.n += take
	}
}

// AppendOnes appends count one bits.
func (v *Vector) AppendOnes(count int) {
	for count > 0 {
		w := min(count, 64)
		v.AppendUint(w, ^uint64(0))
		count -= w
	}
}

// AppendVector appends every bit of o.
func (v *Vector) AppendVector(o *Vector) {
	v.AppendRange(o, 0, o.n)
}

// AppendRange appends the bits [from, to) of o.
// It panics if the range is outside o.
func (v *Vector) AppendRange(o *Vector, from, to int) {
	if from < 0 || to > o.n || from > to {
		panic(fmt.Sprintf("bits: range [%d, %d) out of [0, %d)", from, to, o.n))
	}

	if v.n&7 == 0 && from&7 == 0 {
		// Byte aligned on both sides: copy whole bytes, then fix the tail.
		full := (to - from) >> 3
		v.buf = append(v.buf, o.buf[from>>3:(from>>3)+full]...)
		v.n += full << 3
		from += full << 3
	}

	for from < to {
		w := min(to-from, 64)
		x, _ := o.Uint(from, w)
		v.AppendUint(w, x)
		from += w
	}
}

// Uint reads width bits starting at off as an unsigned integer, MSB first.
func (v *Vector) Uint(off, width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("%w: read of %d bits", errs.ErrWidthExceeded, width)
	}
	if off < 0 || off > v.n-width {
		return 0, fmt.Errorf("%w: %d bits at offset %d, length %d", errs.ErrTruncated, width, off, v.n)
	}

	var x uint64
	for width > 0 {
		shift := off & 7
		avail := 8 - shift
		take := min(avail, width)
		b := (uint64(v.buf[off>>3]) >> (avail - take)) & (1<<take - 1)
		x = x<<take | b

		off += take
		width -= take
	}

	return x, nil
}

// LeadingOnes counts consecutive one bits starting at off.
//
// The boolean is false when the vector ends before a zero bit is found; the
// count then covers every remaining bit.
func (v *Vector) LeadingOnes(off int) (int, bool) {
	if off < 0 {
		off = 0
	}

	i := off
	for i < v.n {
		s := i & 7
		run := mathbits.LeadingZeros8(^(v.buf[i>>3] << s))
		if i+run >= v.n {
			return v.n - off, false
		}
		if run < 8-s {
			return i + run - off, true
		}
		i += run
	}

	return v.n - off, false
}

// Equal reports whether v and o hold the same bits.
func (v *Vector) Equal(o *Vector) bool {
	if v.n != o.n {
		return false
	}

	for off := 0; off < v.n; off += 64 {
		w := min(v.n-off, 64)
		a, _ := v.Uint(off, w)
		b, _ := o.Uint(off, w)
		if a != b {
			return false
		}
	}

	return true
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	c := NewVector(v.n)
	c.AppendVector(v)

	return c
}

// String renders the vector as '0' and '1' characters.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.n)
	for i := range v.n {
		if v.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}
