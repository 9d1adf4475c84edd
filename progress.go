package glz

// Progress receives optional progress notifications. Nil callbacks are skipped
// and no callback affects the produced output.
type Progress struct {
	// Slice is called when encoding of the slice at index starts.
	Slice func(index, size int)
	// Bytes is called with the number of input bytes covered by each operation.
	Bytes func(n int)
}

func (p Progress) slice(index, size int) {
	if p.Slice != nil {
		p.Slice(index, size)
	}
}

func (p Progress) bytes(n int) {
	if p.Bytes != nil {
		p.Bytes(n)
	}
}
