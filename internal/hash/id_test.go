package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
			assert.Equal(t, tt.id, Sum([]byte(tt.data)))
		})
	}
}

func TestPrefixes(t *testing.T) {
	data := []byte(randString(40))

	var ends []int
	Prefixes(data, 2, func(end int, sum uint64) {
		ends = append(ends, end)
		require.Equal(t, Sum(data[:end]), sum, "end=%d", end)
	})
	require.Len(t, ends, 39)
	require.Equal(t, 2, ends[0])
	require.Equal(t, 40, ends[len(ends)-1])

	called := false
	Prefixes(data[:3], 4, func(int, uint64) { called = true })
	require.False(t, called)
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkSum(b *testing.B) {
	data := []byte(randString(32))
	b.ResetTimer()
	for b.Loop() {
		Sum(data)
	}
}
