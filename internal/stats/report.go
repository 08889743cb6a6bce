package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Report is the finalized, read-only view of a scan.
type Report struct {
	RunID   string         `json:"run_id" yaml:"run_id"`
	Source  string         `json:"source" yaml:"source"`
	Rows    int            `json:"rows" yaml:"rows"`
	Columns []ColumnReport `json:"columns" yaml:"columns"`
}

// ColumnReport is one row of the statistics report. Numeric-only fields are
// nil for Text columns and MaxLength is nil for Number columns.
type ColumnReport struct {
	ID        int         `json:"column_id" yaml:"column_id"`
	Name      string      `json:"column_name" yaml:"column_name"`
	Type      Kind        `json:"type" yaml:"type"`
	Nulls     bool        `json:"nulls" yaml:"nulls"`
	Unique    int         `json:"unique" yaml:"unique"`
	Min       string      `json:"min" yaml:"min"`
	Max       string      `json:"max" yaml:"max"`
	Sum       *float64    `json:"sum,omitempty" yaml:"sum,omitempty"`
	Mean      *float64    `json:"mean,omitempty" yaml:"mean,omitempty"`
	Median    *float64    `json:"median,omitempty" yaml:"median,omitempty"`
	Stdev     *float64    `json:"stdev,omitempty" yaml:"stdev,omitempty"`
	MaxLength *int        `json:"len,omitempty" yaml:"len,omitempty"`
	Frequent  []Frequency `json:"freq,omitempty" yaml:"freq,omitempty"`
}

// CSVHeader is the header row of the csv report.
var CSVHeader = []string{"column_id", "column_name", "type", "nulls", "unique", "min", "max", "sum", "mean", "median", "stdev", "len", "freq"}

// NewReport finalizes the accumulator. topK bounds each frequency list.
func NewReport(source string, acc *Accumulator, topK int) *Report {
	r := &Report{RunID: uuid.NewString(), Source: source, Rows: acc.Rows()}
	r.Columns = make([]ColumnReport, 0, len(acc.Columns()))
	for _, c := range acc.Columns() {
		r.Columns = append(r.Columns, summarize(c, topK))
	}
	return r
}

func summarize(c *Column, topK int) ColumnReport {
	cr := ColumnReport{
		ID:       c.Index + 1,
		Name:     c.Name,
		Type:     c.Kind(),
		Nulls:    c.HasNulls(),
		Unique:   c.Unique(),
		Min:      c.Min(),
		Max:      c.Max(),
		Frequent: c.Frequent(topK),
	}
	if cr.Type == KindNumber {
		sum, mean, median, stdev := c.Sum(), c.Mean(), c.Median(), c.Stdev()
		cr.Sum, cr.Mean, cr.Median, cr.Stdev = &sum, &mean, &median, &stdev
	} else {
		l := c.MaxLength()
		cr.MaxLength = &l
	}
	return cr
}

// Record renders the column as a csv report row.
func (cr ColumnReport) Record() []string {
	return []string{
		strconv.Itoa(cr.ID),
		cr.Name,
		string(cr.Type),
		strconv.FormatBool(cr.Nulls),
		strconv.Itoa(cr.Unique),
		cr.Min,
		cr.Max,
		optFloat(cr.Sum),
		optFloat(cr.Mean),
		optFloat(cr.Median),
		optFloat(cr.Stdev),
		optInt(cr.MaxLength),
		JoinFrequencies(cr.Frequent),
	}
}

func optFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return FormatFloat(*p)
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// WriteCSV writes one row per column, preceded by CSVHeader when header is set.
func (r *Report) WriteCSV(w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(CSVHeader); err != nil {
			return fmt.Errorf("write report header: %w", err)
		}
	}
	for _, c := range r.Columns {
		if err := cw.Write(c.Record()); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Text renders a compact human-readable summary.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Columns)))
	if len(r.Columns) == 0 {
		return b.String()
	}

	b.WriteString("\n[SCHEMA]\n")
	for _, c := range r.Columns {
		nulls := "no nulls"
		if c.Nulls {
			nulls = "has nulls"
		}
		b.WriteString(fmt.Sprintf("%3d. %s: %s (%s, unique %d)", c.ID, safeName(c.Name), c.Type, nulls, c.Unique))
		switch c.Type {
		case KindNumber:
			b.WriteString(fmt.Sprintf(" — min %s, max %s, sum %s, mean %.4g, std %.4g",
				c.Min, c.Max, optFloat(c.Sum), *c.Mean, *c.Stdev))
		default:
			b.WriteString(fmt.Sprintf(" — min %q, max %q", safeVal(c.Min), safeVal(c.Max)))
			if c.MaxLength != nil {
				b.WriteString(fmt.Sprintf(", longest %d", *c.MaxLength))
			}
		}
		b.WriteString("\n")
		if len(c.Frequent) > 0 {
			b.WriteString("     top: ")
			lim := 8
			for i := 0; i < lim && i < len(c.Frequent); i++ {
				kv := c.Frequent[len(c.Frequent)-1-i]
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
