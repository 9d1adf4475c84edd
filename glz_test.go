package glz

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/glz/bits"
	"github.com/arloliu/glz/errs"
	"github.com/arloliu/glz/hist"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewDefaults(t *testing.T) {
	g := mustNew(t)
	require.Equal(t, DefaultL, g.L())
	require.Equal(t, DefaultM, g.M())
	require.Equal(t, 9, g.K())
	require.Equal(t, uint32(320), g.Alphabet())
	require.Equal(t, 33, g.MaxLen())
	require.Nil(t, g.DecodeTable())
	require.Nil(t, g.EncodeTable())
	require.IsType(t, hist.Identity{}, g.Remap())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		err  error
	}{
		{"l too small", []Option{WithL(0)}, errs.ErrInvalidConfig},
		{"l too large", []Option{WithL(MaxL + 1)}, errs.ErrInvalidConfig},
		{"m too small", []Option{WithM(0)}, errs.ErrInvalidConfig},
		{"m too large", []Option{WithM(MaxM + 1)}, errs.ErrInvalidConfig},
		{"negative k", []Option{WithK(-1)}, errs.ErrInvalidConfig},
		{"passes", []Option{WithPasses(0)}, errs.ErrInvalidConfig},
		{"table without k", []Option{WithTable([]uint32{1, 0})}, errs.ErrInvalidConfig},
		{"bad table", []Option{WithK(4), WithTable([]uint32{1, 1})}, errs.ErrInvalidTable},
		{"table past alphabet", []Option{WithK(4), WithL(1), WithTable(identityTable(261))}, errs.ErrInvalidTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestHelloWorld(t *testing.T) {
	g := mustNew(t, WithK(8), WithL(5), WithM(3))

	v, err := g.Encode([]byte("hello world!"))
	require.NoError(t, err)
	require.Equal(t, 109, v.Len())

	got, err := g.Decode(v)
	require.NoError(t, err)
	require.Equal(t, "hello world!", string(got))

	got, err = g.DecodeAt(v, 0, 12)
	require.NoError(t, err)
	require.Equal(t, "hello world!", string(got))
}

func TestEncodeUsesReferences(t *testing.T) {
	g := mustNew(t, WithK(8))

	v, err := g.Encode([]byte("abcabc"))
	require.NoError(t, err)
	// reference (10 + 4 bits) followed by three literals
	require.Equal(t, 41, v.Len())

	got, err := g.Decode(v)
	require.NoError(t, err)
	require.Equal(t, "abcabc", string(got))
}

func TestTrainedRepetitiveText(t *testing.T) {
	text := []byte("hhhhh hhhhh hhhhh hhhhh hhhhh!")
	g, err := FromSeed([][]byte{text})
	require.NoError(t, err)

	v, err := g.Encode(text)
	require.NoError(t, err)
	require.Less(t, v.Len(), 240)

	got, err := g.Decode(v)
	require.NoError(t, err)
	require.Equal(t, text, got)
}

func TestEncodeEmpty(t *testing.T) {
	g := mustNew(t)

	v, err := g.Encode(nil)
	require.NoError(t, err)
	require.Zero(t, v.Len())

	got, err := g.Decode(v)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = g.DecodeAt(v, 0, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func randomText(r *rand.Rand, n int, alphabet string) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.IntN(len(alphabet))]
	}

	return b
}

func sampleSlices(r *rand.Rand) [][]byte {
	words := []string{"alpha", "beta", "gamma", "delta", "<tag>", "</tag>", "\x00\x00\x00\x00", "zzzzzzzzzzzz"}

	var out [][]byte
	for range 24 {
		var b []byte
		n := r.IntN(60)
		for range n {
			if r.IntN(4) == 0 {
				b = append(b, randomText(r, 1+r.IntN(6), "abcxyz\n")...)
			} else {
				b = append(b, words[r.IntN(len(words))]...)
			}
		}
		out = append(out, b)
	}
	out = append(out, randomText(r, 3000, "ab"), randomText(r, 500, "\x00\x01\x02\xff"))

	return out
}

func TestRoundTripConfigurations(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	data := sampleSlices(r)

	configs := []struct {
		name string
		opts []Option
	}{
		{"neutral", nil},
		{"k8", []Option{WithK(8)}},
		{"l1 m1", []Option{WithL(1), WithM(1)}},
		{"l2 m4", []Option{WithL(2), WithM(4)}},
		{"l8 m8", []Option{WithL(8), WithM(8)}},
		{"k0", []Option{WithK(0), WithL(3)}},
	}
	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			for _, ctor := range []func([][]byte, ...Option) (*GLZ, error){
				func(_ [][]byte, opts ...Option) (*GLZ, error) { return New(opts...) },
				FromSeed,
			} {
				g, err := ctor(data, cfg.opts...)
				require.NoError(t, err)

				for _, s := range data {
					v, err := g.Encode(s)
					require.NoError(t, err)

					got, err := g.Decode(v)
					require.NoError(t, err)
					require.Equal(t, s, got, "%s", g)
				}
			}
		})
	}
}

func TestEncodeAllGranular(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	data := sampleSlices(r)
	data = append(data, data[3], []byte{}, data[0], []byte("alpha"))

	g, err := FromSeed(data, WithPasses(2))
	require.NoError(t, err)

	v, spans, err := g.EncodeAll(data)
	require.NoError(t, err)
	require.Len(t, spans, len(data))

	for i, s := range data {
		require.Equal(t, len(s), spans[i].Length)

		got, err := g.DecodeAt(v, spans[i].Offset, spans[i].Length)
		require.NoError(t, err, "slice %d", i)
		require.Equal(t, s, got, "slice %d", i)
	}

	for i := range data {
		for j := range data {
			if bytes.Equal(data[i], data[j]) {
				require.Equal(t, spans[i], spans[j], "slices %d and %d", i, j)
			}
		}
	}

	all, err := g.DecodeAll(v, spans)
	require.NoError(t, err)
	require.Equal(t, len(data), len(all))
}

func TestEncodeAllPrefixes(t *testing.T) {
	data := [][]byte{
		[]byte("the quick brown fox jumps over the lazy dog; the quick brown cat"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaabaaaaaaaaaaa"),
		[]byte("brown fox"),
	}
	g := mustNew(t, WithK(8), WithL(4))

	v, spans, err := g.EncodeAll(data)
	require.NoError(t, err)

	for i, s := range data {
		for n := 0; n <= len(s); n++ {
			got, err := g.DecodeAt(v, spans[i].Offset, n)
			require.NoError(t, err)
			require.Equal(t, s[:n], got, "slice %d prefix %d", i, n)
		}
	}
}

func TestEncodeAllReusesDictionaryHits(t *testing.T) {
	g := mustNew(t, WithK(8))
	long := []byte("hello world, hello there")

	single, err := g.Encode(long)
	require.NoError(t, err)

	v, spans, err := g.EncodeAll([][]byte{[]byte("hello"), long})
	require.NoError(t, err)
	require.Equal(t, single.Len(), v.Len())

	got, err := g.DecodeAt(v, spans[0].Offset, spans[0].Length)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))
}

func TestEncodeAllDeterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	data := sampleSlices(r)
	g, err := FromSeed(data)
	require.NoError(t, err)

	v1, spans1, err := g.EncodeAll(data)
	require.NoError(t, err)
	v2, spans2, err := g.EncodeAll(data)
	require.NoError(t, err)

	require.True(t, v1.Equal(v2))
	require.Equal(t, spans1, spans2)
}

func TestProgress(t *testing.T) {
	data := [][]byte{[]byte("abcabcabc"), []byte("xyz"), []byte("abcabcabc")}
	g := mustNew(t)

	var slicesSeen []int
	encoded := 0
	v, spans, err := g.EncodeAllWithProgress(data, Progress{
		Slice: func(index, _ int) { slicesSeen = append(slicesSeen, index) },
		Bytes: func(n int) { encoded += n },
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1, 2}, slicesSeen)
	require.Equal(t, 21, encoded)

	decoded := 0
	_, err = g.DecodeAtWithProgress(v, spans[0].Offset, spans[0].Length, Progress{
		Bytes: func(n int) { decoded += n },
	})
	require.NoError(t, err)
	require.Equal(t, 9, decoded)
}

func TestTruncatedStreams(t *testing.T) {
	g := mustNew(t, WithK(2))
	want := []byte("truncation should never panic or return partial data")

	v, err := g.Encode(want)
	require.NoError(t, err)

	for cut := range v.Len() {
		short := bits.NewVector(cut)
		short.AppendRange(v, 0, cut)

		require.NotPanics(t, func() {
			got, err := g.DecodeAt(short, 0, len(want))
			if err == nil {
				require.Equal(t, want, got)
			} else {
				require.Nil(t, got)
			}
		})
	}
}

func TestUnterminatedUnaryRun(t *testing.T) {
	g := mustNew(t, WithK(0))

	got, err := g.DecodeAt(bits.MustParse("1111"), 0, 1)
	require.ErrorIs(t, err, errs.ErrUnterminatedCode)
	require.ErrorIs(t, err, errs.ErrFormat)
	require.Nil(t, got)

	_, err = g.DecodeAt(bits.MustParse("0"), 2, 1)
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestTraverseSymbols(t *testing.T) {
	g := mustNew(t, WithK(8))
	v, err := g.Encode([]byte("hello world!"))
	require.NoError(t, err)

	h, err := g.Histogram(v)
	require.NoError(t, err)
	require.Equal(t, uint64(12), h.Sum())
	require.Equal(t, uint64(2), h.Count('l'))
	require.Equal(t, uint64(1), h.Count(256+32))

	fitted, err := FromHistogram(h)
	require.NoError(t, err)
	require.NotNil(t, fitted.DecodeTable())
	require.Nil(t, h.DecodeTable())

	v2, err := fitted.Encode([]byte("hello world!"))
	require.NoError(t, err)
	require.Less(t, v2.Len(), v.Len())
}

func TestFromSeedWithFixedParameters(t *testing.T) {
	table := []uint32{2, 0, 1}
	g, err := FromSeed([][]byte{[]byte("ignored")}, WithK(5), WithTable(table))
	require.NoError(t, err)
	require.Equal(t, 5, g.K())
	require.Equal(t, table, g.DecodeTable())

	g, err = FromSeed([][]byte{[]byte("abababab")}, WithTable(table))
	require.NoError(t, err)
	require.Equal(t, table, g.DecodeTable())

	v, err := g.Encode([]byte("abababab"))
	require.NoError(t, err)
	got, err := g.Decode(v)
	require.NoError(t, err)
	require.Equal(t, "abababab", string(got))
}

func TestFromSeedEmpty(t *testing.T) {
	g, err := FromSeed(nil)
	require.NoError(t, err)
	require.Equal(t, 9, g.K())
}

func TestConcurrentDecode(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	data := sampleSlices(r)
	g, err := FromSeed(data)
	require.NoError(t, err)

	v, spans, err := g.EncodeAll(data)
	require.NoError(t, err)

	var eg errgroup.Group
	for worker := range 8 {
		eg.Go(func() error {
			for i := range data {
				idx := (i + worker) % len(data)
				got, err := g.DecodeAt(v, spans[idx].Offset, spans[idx].Length)
				if err != nil {
					return err
				}
				if !bytes.Equal(got, data[idx]) {
					return errs.ErrFormat
				}
			}

			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

func identityTable(n int) []uint32 {
	table := make([]uint32, n)
	for i := range table {
		table[i] = uint32(i)
	}

	return table
}
