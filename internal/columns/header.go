package columns

import "strings"

// Header is the column layout of an input: the first row, or a synthesized
// alphabetic header when the input has none. Its width is fixed for a scan.
type Header struct {
	names     []string
	synthetic bool
}

// NewHeader wraps a header row. The slice is copied so callers may reuse it.
func NewHeader(names []string) *Header {
	cp := make([]string, len(names))
	copy(cp, names)
	return &Header{names: cp}
}

// SyntheticHeader builds a header of the given width named a, b, ... z, aa, bb, ...
func SyntheticHeader(width int) *Header {
	names := make([]string, width)
	for i := range names {
		names[i] = SyntheticName(i)
	}
	return &Header{names: names, synthetic: true}
}

// SyntheticName returns the display name for zero-based column i when the
// input has no header row: the letter for i%26 repeated 1+i/26 times.
func SyntheticName(i int) string {
	if i < 0 {
		return ""
	}
	return strings.Repeat(string(rune('a'+i%26)), 1+i/26)
}

// Len reports the header width.
func (h *Header) Len() int { return len(h.names) }

// Synthetic reports whether the names were generated rather than read.
func (h *Header) Synthetic() bool { return h.synthetic }

// Name returns the name of column i, or "" when i is out of range.
func (h *Header) Name(i int) string {
	if i < 0 || i >= len(h.names) {
		return ""
	}
	return h.names[i]
}

// Names returns a copy of all column names in order.
func (h *Header) Names() []string {
	cp := make([]string, len(h.names))
	copy(cp, h.names)
	return cp
}

// Lookup returns the index of the first column named exactly name.
func (h *Header) Lookup(name string) (int, bool) {
	for i, n := range h.names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Select returns the names of the given indices, in order.
func (h *Header) Select(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = h.Name(idx)
	}
	return out
}
