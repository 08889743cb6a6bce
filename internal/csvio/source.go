package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/csvstar/internal/columns"
)

var (
	// ErrHeaderRead wraps failures before the first row was obtained.
	ErrHeaderRead = errors.New("read header")
	// ErrRecordRead wraps malformed records mid-stream.
	ErrRecordRead = errors.New("read record")
)

// Source is a sequential record stream with its header snapshot. When the
// input has no header row the first record fixes the width and is still
// returned as data.
type Source struct {
	r       *csv.Reader
	trim    bool
	header  *columns.Header
	pending []string
	rows    int
}

// NewSource decodes r, configures the tokenizer and reads the first row.
// An empty input yields an empty header and no records.
func NewSource(r io.Reader, opt Options) (*Source, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	dec, err := Decode(r, opt.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.Comma = opt.Delimiter
	cr.Comment = opt.Comment
	cr.ReuseRecord = true
	// a bare quote inside an unquoted field is kept as data
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = opt.Trim
	if opt.Flexible {
		cr.FieldsPerRecord = -1
	}
	s := &Source{r: cr, trim: opt.Trim}

	first, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.header = columns.NewHeader(nil)
			return s, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrHeaderRead, err)
	}
	s.trimFields(first)
	if opt.HasHeader {
		s.header = columns.NewHeader(first)
		return s, nil
	}
	s.header = columns.SyntheticHeader(len(first))
	s.pending = append([]string(nil), first...)
	return s, nil
}

// Header returns the header snapshot taken before any record was read.
func (s *Source) Header() *columns.Header { return s.header }

// Next returns the next record, or io.EOF at the end of input. The returned
// slice is only valid until the following call.
func (s *Source) Next() ([]string, error) {
	if s.pending != nil {
		rec := s.pending
		s.pending = nil
		s.rows++
		return rec, nil
	}
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w %d: %w", ErrRecordRead, s.rows+1, err)
	}
	s.trimFields(rec)
	s.rows++
	return rec, nil
}

// Rows is the number of records returned so far.
func (s *Source) Rows() int { return s.rows }

func (s *Source) trimFields(rec []string) {
	if !s.trim {
		return
	}
	for i, f := range rec {
		rec[i] = strings.TrimSpace(f)
	}
}
