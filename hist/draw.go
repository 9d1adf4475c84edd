package hist

import (
	"io"
	"slices"
	"strings"
)

// Draw renders the ranked distribution as an ASCII bar chart of at most width
// columns and height rows. Ranks are grouped into equal sized buckets.
func (h *Histogram) Draw(w io.Writer, width, height int) error {
	bound := h.Bound()
	if width <= 0 || height <= 0 || bound == 0 {
		return nil
	}

	cols := min(width, bound)
	buckets := make([]uint64, cols)
	for rank, c := range h.Mapped() {
		if int(rank) < bound {
			buckets[int(rank)*cols/bound] += c
		}
	}

	peak := slices.Max(buckets)
	if peak == 0 {
		return nil
	}

	var sb strings.Builder
	line := make([]byte, cols)
	for row := height; row > 0; row-- {
		for i, b := range buckets {
			switch {
			case b*uint64(height) >= uint64(row)*peak:
				line[i] = '#'
			case row == 1 && b > 0:
				line[i] = '.'
			default:
				line[i] = ' '
			}
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat("-", cols))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())

	return err
}
