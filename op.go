package glz

import (
	"fmt"
	"math"

	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/errs"
)

type opKind uint8

const (
	opImmediate opKind = iota
	opReference
)

// op is a single decoded or pending operation.
type op struct {
	kind  opKind
	count int    // immediate: number of copies of b
	b     byte   // immediate: literal byte
	off   uint64 // reference: bits between the end of the reference and its target
	size  int    // reference: bytes produced by the target
}

func immediate(count int, b byte) op {
	return op{kind: opImmediate, count: count, b: b}
}

func reference(off uint64, size int) op {
	return op{kind: opReference, off: off, size: size}
}

func (g *GLZ) runBase() uint32 {
	return 256 + 1<<g.l
}

// appendOp writes the wire form of o to dst.
func (g *GLZ) appendOp(dst *bits.Vector, o op) error {
	switch o.kind {
	case opImmediate:
		if o.count == 1 {
			return g.coder.AppendSym(dst, uint32(o.b))
		}
		if o.count < 2 || o.count > g.MaxLen() {
			return fmt.Errorf("%w: run of %d bytes with l=%d", errs.ErrOverflow, o.count, g.l)
		}
		if err := g.coder.AppendSym(dst, g.runBase()+uint32(o.count-2)); err != nil {
			return err
		}

		return g.coder.AppendSym(dst, uint32(o.b))

	case opReference:
		if o.size < 2 || o.size > g.MaxLen() {
			return fmt.Errorf("%w: reference of %d bytes with l=%d", errs.ErrOverflow, o.size, g.l)
		}
		if o.off > math.MaxUint32 {
			return fmt.Errorf("%w: reference offset %d", errs.ErrOverflow, o.off)
		}
		if err := g.coder.AppendSym(dst, 256+uint32(o.size-2)); err != nil {
			return err
		}
		g.appendOffset(dst, o.off)

		return nil
	}

	return fmt.Errorf("%w: unknown operation kind %d", errs.ErrInvalidOp, o.kind)
}

// appendOffset writes off in bijective base 2^m, most significant chunk first.
// Each chunk carries a leading continuation bit that is clear on the last one.
func (g *GLZ) appendOffset(dst *bits.Vector, off uint64) {
	var chunks [64]uint64
	mask := uint64(1)<<g.m - 1

	n := 0
	for x := off + 1; x != 0; x >>= g.m {
		x--
		chunks[n] = x & mask
		n++
	}

	for i := n - 1; i >= 0; i-- {
		var flag uint64
		if i > 0 {
			flag = 1 << g.m
		}
		dst.AppendUint(g.m+1, flag|chunks[i])
	}
}

// decodeOp reads the operation at bit position pos and returns it with the
// number of bits it occupies.
func (g *GLZ) decodeOp(v *bits.Vector, pos int) (op, int, error) {
	sym, used, err := g.coder.DecodeSym(v, pos)
	if err != nil {
		return op{}, 0, err
	}

	switch {
	case sym < 256:
		return immediate(1, byte(sym)), used, nil

	case sym < g.runBase():
		off, n, err := g.decodeOffset(v, pos+used)
		if err != nil {
			return op{}, 0, err
		}

		return reference(off, int(sym-256)+2), used + n, nil

	case sym < g.Alphabet():
		b, n, err := bits.DecodeSymbol[byte](g.coder, v, pos+used)
		if err != nil {
			return op{}, 0, err
		}

		return immediate(int(sym-g.runBase())+2, b), used + n, nil
	}

	return op{}, 0, fmt.Errorf("%w: symbol %d at bit %d, alphabet %d", errs.ErrInvalidOp, sym, pos, g.Alphabet())
}

func (g *GLZ) decodeOffset(v *bits.Vector, pos int) (uint64, int, error) {
	mask := uint64(1)<<g.m - 1

	var arg uint64
	used := 0
	for {
		chunk, err := v.Uint(pos+used, g.m+1)
		if err != nil {
			return 0, 0, err
		}
		used += g.m + 1

		arg = arg<<g.m + 1 + chunk&mask
		if arg > math.MaxUint32+1 {
			return 0, 0, fmt.Errorf("%w: reference offset at bit %d exceeds 32 bits", errs.ErrFormat, pos)
		}
		if chunk>>g.m == 0 {
			return arg - 1, used, nil
		}
	}
}
