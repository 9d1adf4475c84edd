package glz

import (
	"fmt"

	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/hist"
)

// MaxDepth is the number of decode frames: the requested slice plus one level
// of reference expansion.
const MaxDepth = 2

// maxDecodeHint caps the output capacity reserved up front by DecodeAt.
const maxDecodeHint = 1 << 20

// frame is one level of the decode stack.
type frame struct {
	pos       int  // bit position of the next operation
	remaining int  // bytes still owed by this frame
	bounded   bool // false only for whole stream decoding
	size      int  // bytes requested when the frame started
	cycles    int  // operations decoded by this frame
}

// Decode decompresses an entire stream produced by Encode.
func (g *GLZ) Decode(v *bits.Vector) ([]byte, error) {
	return g.decode(v, frame{}, make([]byte, 0, v.Len()/8), Progress{})
}

// DecodeAt decompresses n bytes starting at bit offset off.
//
// Any span returned by EncodeAll, or any prefix of one, can be decoded without
// touching the rest of the stream. On error no partial output is returned.
func (g *GLZ) DecodeAt(v *bits.Vector, off, n int) ([]byte, error) {
	return g.DecodeAtWithProgress(v, off, n, Progress{})
}

// DecodeAtWithProgress is DecodeAt with progress notifications.
func (g *GLZ) DecodeAtWithProgress(v *bits.Vector, off, n int, p Progress) ([]byte, error) {
	if off < 0 || off > v.Len() || n < 0 {
		return nil, fmt.Errorf("%w: span (%d, %d) outside stream of %d bits", errs.ErrTruncated, off, n, v.Len())
	}

	top := frame{pos: off, remaining: n, bounded: true, size: n}

	// n may come from an untrusted index, so it only hints the capacity.
	hint := min(n, (v.Len()-off)*g.MaxLen(), maxDecodeHint)

	return g.decode(v, top, make([]byte, 0, hint), p)
}

// DecodeAll decodes every span.
func (g *GLZ) DecodeAll(v *bits.Vector, spans []Span) ([][]byte, error) {
	out := make([][]byte, len(spans))
	for i, s := range spans {
		data, err := g.DecodeAt(v, s.Offset, s.Length)
		if err != nil {
			return nil, fmt.Errorf("span %d: %w", i, err)
		}
		out[i] = data
	}

	return out, nil
}

// decode runs the two frame decode stack starting with top.
//
// A reference that covers everything its bounded frame still owes is a tail
// jump: the frame continues at the target instead of pushing a child. Every
// other reference pushes a child frame, which must not need another one.
// Each bounded frame may decode at most twice as many operations as bytes.
func (g *GLZ) decode(v *bits.Vector, top frame, out []byte, p Progress) ([]byte, error) {
	var stack [MaxDepth]frame
	stack[0] = top
	depth := 1

	for depth > 0 {
		f := &stack[depth-1]
		if (f.bounded && f.remaining == 0) || (!f.bounded && f.pos >= v.Len()) {
			depth--
			continue
		}

		if f.bounded {
			f.cycles++
			if f.cycles > 2*f.size {
				return nil, fmt.Errorf("%w: %d operations for %d bytes at bit %d",
					errs.ErrRuntimeExceeded, f.cycles, f.size, f.pos)
			}
		}

		o, used, err := g.decodeOp(v, f.pos)
		if err != nil {
			return nil, err
		}
		f.pos += used

		if o.kind == opImmediate {
			count := o.count
			if f.bounded {
				count = min(count, f.remaining)
				f.remaining -= count
			}
			for range count {
				out = append(out, o.b)
			}
			p.bytes(count)

			continue
		}

		if o.off > uint64(v.Len()-f.pos) {
			return nil, fmt.Errorf("%w: reference at bit %d points past the stream", errs.ErrTruncated, f.pos)
		}
		target := f.pos + int(o.off)

		if f.bounded && o.size >= f.remaining {
			f.pos = target
			continue
		}

		if depth == MaxDepth {
			return nil, fmt.Errorf("%w: nested reference at bit %d", errs.ErrDepthExceeded, f.pos)
		}
		if f.bounded {
			f.remaining -= o.size
		}
		if g.onPush != nil {
			g.onPush(depth)
		}

		stack[depth] = frame{pos: target, remaining: o.size, bounded: true, size: o.size}
		depth++
	}

	return out, nil
}

// TraverseSymbols calls fn with every coded symbol of a whole stream in
// stream order, including the byte symbols that follow runs.
func (g *GLZ) TraverseSymbols(v *bits.Vector, fn func(sym uint32)) error {
	for pos := 0; pos < v.Len(); {
		sym, used, err := g.coder.DecodeSym(v, pos)
		if err != nil {
			return err
		}
		pos += used
		fn(sym)

		switch {
		case sym < 256:
		case sym < g.runBase():
			_, n, err := g.decodeOffset(v, pos)
			if err != nil {
				return err
			}
			pos += n
		case sym < g.Alphabet():
			b, n, err := g.coder.DecodeSym(v, pos)
			if err != nil {
				return err
			}
			pos += n
			fn(b)
		default:
			return fmt.Errorf("%w: symbol %d at bit %d", errs.ErrInvalidOp, sym, pos-used)
		}
	}

	return nil
}

// Histogram collects the coded symbols of a whole stream.
func (g *GLZ) Histogram(v *bits.Vector) (*hist.Histogram, error) {
	h := hist.New()
	if err := g.TraverseSymbols(v, h.Increment); err != nil {
		return nil, err
	}

	return h, nil
}
