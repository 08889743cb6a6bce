package columns

// Projector gathers the selected fields of each record into a narrower record.
// The returned slice is reused by the next call to Project.
type Projector struct {
	indices []int
	buf     []string
}

// NewProjector returns a projector for the resolved indices.
func NewProjector(indices []int) *Projector {
	return &Projector{indices: indices, buf: make([]string, len(indices))}
}

// Width reports the number of fields in every projected record.
func (p *Projector) Width() int { return len(p.indices) }

// Project returns record[indices[i]] for each i. Indices past the end of a
// short record yield an empty field.
func (p *Projector) Project(record []string) []string {
	for i, idx := range p.indices {
		if idx < len(record) {
			p.buf[i] = record[idx]
		} else {
			p.buf[i] = ""
		}
	}
	return p.buf
}
