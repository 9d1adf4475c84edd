package glz

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/internal/dict"
	"github.com/arloliu/glz/internal/hash"
	"github.com/arloliu/glz/internal/pool"
)

// Span locates one encoded slice inside a bitstream.
type Span struct {
	// Offset is the bit offset where decoding starts.
	Offset int
	// Length is the decoded length in bytes.
	Length int
}

// Encode compresses a single slice. The result decodes with Decode, or with
// DecodeAt at offset 0 and len(data).
func (g *GLZ) Encode(data []byte) (*bits.Vector, error) {
	v, _, err := g.EncodeAll([][]byte{data})
	return v, err
}

// EncodeAll compresses every slice of data into one bitstream and returns the
// span of each slice in input order. Byte identical slices share a span.
//
// The output is a deterministic function of data and the configuration.
func (g *GLZ) EncodeAll(data [][]byte) (*bits.Vector, []Span, error) {
	return g.EncodeAllWithProgress(data, Progress{})
}

// EncodeAllWithProgress is EncodeAll with progress notifications.
func (g *GLZ) EncodeAllWithProgress(data [][]byte, p Progress) (*bits.Vector, []Span, error) {
	order, cleanup := pool.GetIntSlice(len(data))
	defer cleanup()

	for i := range order {
		order[i] = i
	}
	// Longer slices first: they end up furthest from the stream start, which
	// keeps the offsets of the many short slices small.
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(data[b]), len(data[a]))
	})

	e := newEncoder(g, p)
	starts := make([]int, len(data))
	seen := make(map[uint64][]int, len(data))

	for _, i := range order {
		s := data[i]
		p.slice(i, len(s))

		sum := hash.Sum(s)
		if j, ok := findEqual(seen[sum], data, s); ok {
			starts[i] = starts[j]
			p.bytes(len(s))

			continue
		}
		seen[sum] = append(seen[sum], i)

		if pos, ok := e.dict.GetHashed(sum, s); ok && len(s) > 0 {
			starts[i] = pos
			p.bytes(len(s))

			continue
		}

		if err := e.encodeSlice(s); err != nil {
			return nil, nil, err
		}
		starts[i] = e.emit.Len()
	}

	out := e.finish()
	total := out.Len()

	spans := make([]Span, len(data))
	for i, s := range data {
		spans[i] = Span{Offset: total - starts[i], Length: len(s)}
	}

	return out, spans, nil
}

func findEqual(candidates []int, data [][]byte, s []byte) (int, bool) {
	for _, j := range candidates {
		if bytes.Equal(data[j], s) {
			return j, true
		}
	}

	return 0, false
}

// encoder holds the state of one EncodeAll call.
//
// Operations are produced back to front, so emit holds them in reverse stream
// order and ends records where each one stops. A position in emit is the
// distance from the end of the final stream.
type encoder struct {
	g        *GLZ
	dict     *dict.Dictionary
	emit     *bits.Vector
	ends     []int
	immBuf   *bits.Vector
	refBuf   *bits.Vector
	progress Progress
}

func newEncoder(g *GLZ, p Progress) *encoder {
	return &encoder{
		g:        g,
		dict:     dict.New(),
		emit:     bits.NewVector(1024),
		immBuf:   bits.NewVector(64),
		refBuf:   bits.NewVector(64),
		progress: p,
	}
}

func (e *encoder) push(code *bits.Vector) {
	e.emit.AppendVector(code)
	e.ends = append(e.ends, e.emit.Len())
}

// encodeSlice scans s from its last byte to its first, choosing at each
// position between an immediate run and the longest dictionary reference.
func (e *encoder) encodeSlice(s []byte) error {
	g := e.g
	src := e.dict.AddSource(s)
	window := 1 << g.l

	j := len(s)
	lastMatch := j // end of the bytes covered by immediates since the last reference
	forceImm := false

	for j > 0 {
		b := s[j-1]
		count := 1
		for count < g.MaxLen() && count < j && s[j-1-count] == b {
			count++
		}

		e.immBuf.Reset()
		if err := g.appendOp(e.immBuf, immediate(count, b)); err != nil {
			return err
		}

		refSize := 0
		if !forceImm {
			refSize = e.findReference(s, j)
		}

		// Take the reference only if it costs fewer bits per byte.
		if refSize > 0 && e.refBuf.Len()*count < e.immBuf.Len()*refSize {
			e.push(e.refBuf)
			j -= refSize
			lastMatch = j
			forceImm = true
			e.progress.bytes(refSize)

			continue
		}

		e.push(e.immBuf)
		i := j - count
		if lastMatch-i >= 2 {
			e.dict.PutPrefixes(src, i, i+2, min(lastMatch, i+window+1), e.emit.Len())
		}
		j = i
		forceImm = false
		e.progress.bytes(count)
	}

	return nil
}

// findReference looks up the longest s[i:j] within the lookback window that
// the dictionary knows and whose reference is encodable. The encoded
// reference is left in refBuf.
func (e *encoder) findReference(s []byte, j int) int {
	pos := e.emit.Len()
	for i := max(j-(1<<e.g.l), 0); i <= j-2; i++ {
		target, ok := e.dict.Get(s[i:j])
		if !ok {
			continue
		}

		e.refBuf.Reset()
		if err := e.g.appendOp(e.refBuf, reference(uint64(pos-target), j-i)); err != nil {
			continue
		}

		return j - i
	}

	return 0
}

// finish reverses the emitted operations into stream order.
func (e *encoder) finish() *bits.Vector {
	out := bits.NewVector(e.emit.Len())
	for k := len(e.ends) - 1; k >= 0; k-- {
		from := 0
		if k > 0 {
			from = e.ends[k-1]
		}
		out.AppendRange(e.emit, from, e.ends[k])
	}

	return out
}
