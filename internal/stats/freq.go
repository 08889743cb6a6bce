package stats

import (
	"container/heap"
	"strconv"
	"strings"
)

// DefaultTopK is the number of frequent values reported per column.
const DefaultTopK = 100

// Frequency is a distinct value and how often it occurred.
type Frequency struct {
	Value string `json:"value" yaml:"value"`
	Count uint64 `json:"count" yaml:"count"`
}

func (f Frequency) String() string {
	return f.Value + " (" + strconv.FormatUint(f.Count, 10) + "X)"
}

// freqHeap is a min-heap by count, ties broken by value.
type freqHeap []Frequency

func (h freqHeap) Len() int { return len(h) }
func (h freqHeap) Less(i, j int) bool {
	if h[i].Count == h[j].Count {
		return h[i].Value < h[j].Value
	}
	return h[i].Count < h[j].Count
}
func (h freqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *freqHeap) Push(x any)   { *h = append(*h, x.(Frequency)) }
func (h *freqHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Frequent folds the distinct multiset into a heap capped at k entries,
// evicting the minimum on overflow, and returns what is left in ascending
// order of count (then value). It is computed after the scan, not during it.
func (c *Column) Frequent(k int) []Frequency {
	if k <= 0 || len(c.distinct) == 0 {
		return nil
	}
	h := make(freqHeap, 0, min(k+1, len(c.distinct)+1))
	for v, n := range c.distinct {
		heap.Push(&h, Frequency{Value: v, Count: n})
		if h.Len() > k {
			heap.Pop(&h)
		}
	}
	out := make([]Frequency, 0, h.Len())
	for h.Len() > 0 {
		out = append(out, heap.Pop(&h).(Frequency))
	}
	return out
}

// JoinFrequencies renders entries as "value (countX)" joined by commas.
func JoinFrequencies(fs []Frequency) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}
