// Package dict implements the transient match dictionary used by the glz
// encoder.
//
// Keys are (source, start, end) index triples into caller supplied byte slices,
// so the dictionary never copies input. Lookups hash the key content with
// xxHash64 and confirm candidates byte by byte.
package dict

import (
	"bytes"

	"github.com/arloliu/glz/internal/hash"
)

type entry struct {
	src   int
	start int
	end   int
	pos   int
}

// Dictionary maps byte ranges to the compressed bit position where their
// encoding begins. It is not safe for concurrent use.
type Dictionary struct {
	sources [][]byte
	buckets map[uint64][]entry
	count   int
	shared  int // buckets holding more than one distinct key
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{buckets: make(map[uint64][]entry)}
}

// AddSource registers a slice that keys may refer to and returns its index.
func (d *Dictionary) AddSource(b []byte) int {
	d.sources = append(d.sources, b)
	return len(d.sources) - 1
}

// Get returns the position stored for key.
func (d *Dictionary) Get(key []byte) (int, bool) {
	return d.GetHashed(hash.Sum(key), key)
}

// GetHashed is Get with a precomputed hash of key.
func (d *Dictionary) GetHashed(sum uint64, key []byte) (int, bool) {
	for _, e := range d.buckets[sum] {
		if bytes.Equal(d.sources[e.src][e.start:e.end], key) {
			return e.pos, true
		}
	}

	return 0, false
}

// Put stores pos for the range sources[src][start:end], replacing the
// position of an equal key.
func (d *Dictionary) Put(src, start, end, pos int) {
	d.put(hash.Sum(d.sources[src][start:end]), src, start, end, pos)
}

// PutPrefixes stores pos for every range sources[src][start:end] with end in
// [minEnd, maxEnd].
func (d *Dictionary) PutPrefixes(src, start, minEnd, maxEnd, pos int) {
	data := d.sources[src][start:maxEnd]
	hash.Prefixes(data, minEnd-start, func(end int, sum uint64) {
		d.put(sum, src, start, start+end, pos)
	})
}

func (d *Dictionary) put(sum uint64, src, start, end, pos int) {
	key := d.sources[src][start:end]
	bucket := d.buckets[sum]
	for i := range bucket {
		e := &bucket[i]
		if bytes.Equal(d.sources[e.src][e.start:e.end], key) {
			e.pos = pos
			return
		}
	}

	if len(bucket) == 1 {
		d.shared++
	}
	d.buckets[sum] = append(bucket, entry{src: src, start: start, end: end, pos: pos})
	d.count++
}

// Len returns the number of distinct keys.
func (d *Dictionary) Len() int {
	return d.count
}

// Collisions returns the number of hash buckets shared by distinct keys.
func (d *Dictionary) Collisions() int {
	return d.shared
}
