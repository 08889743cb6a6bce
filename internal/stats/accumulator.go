// Package stats computes per-column statistics over a record stream in one pass.
package stats

// Accumulator keeps one Column per selected position and folds records into them.
type Accumulator struct {
	indices []int
	cols    []*Column
	rows    int
}

// NewAccumulator creates empty columns for the resolved indices. names holds
// the display name for each position of indices.
func NewAccumulator(indices []int, names []string) *Accumulator {
	a := &Accumulator{indices: indices, cols: make([]*Column, len(indices))}
	for i, idx := range indices {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		a.cols[i] = NewColumn(idx, name)
	}
	return a
}

// Add folds one record. Indices past the end of a short record count as missing.
func (a *Accumulator) Add(record []string) {
	a.rows++
	for i, idx := range a.indices {
		if idx < len(record) {
			a.cols[i].Observe(record[idx])
		} else {
			a.cols[i].ObserveMissing()
		}
	}
}

// Rows is the number of records folded so far.
func (a *Accumulator) Rows() int { return a.rows }

// Columns returns the accumulators in selection order.
func (a *Accumulator) Columns() []*Column { return a.cols }
