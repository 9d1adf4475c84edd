package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of the given bytes.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Prefixes calls fn with the xxHash64 of data[:end] for every end in
// [minEnd, len(data)], hashing each byte only once.
func Prefixes(data []byte, minEnd int, fn func(end int, sum uint64)) {
	if minEnd > len(data) {
		return
	}

	d := xxhash.New()
	_, _ = d.Write(data[:minEnd])
	fn(minEnd, d.Sum64())

	for end := minEnd + 1; end <= len(data); end++ {
		_, _ = d.Write(data[end-1 : end])
		fn(end, d.Sum64())
	}
}
