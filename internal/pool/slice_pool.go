package pool

import "sync"

// SlicePool is a typed wrapper around sync.Pool for reusable scratch slices.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates an empty slice pool.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
	}
}

// Get retrieves a slice of exactly size elements from the pool.
//
// The contents of the returned slice are unspecified. If the pooled slice has
// insufficient capacity, a new slice is allocated. The caller must call the
// returned cleanup function to return the slice to the pool.
//
// Example:
//
//	order, cleanup := pool.GetIntSlice(len(items))
//	defer cleanup()
func (p *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { p.pool.Put(ptr) }
}

var intSlicePool = NewSlicePool[int]()

// GetIntSlice retrieves an int slice of the given size from the shared pool.
func GetIntSlice(size int) ([]int, func()) {
	return intSlicePool.Get(size)
}
