package stats

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the classification of a finished column.
type Kind string

const (
	KindNumber Kind = "Number"
	KindText   Kind = "Text"
)

// Column accumulates statistics for one selected column in a single pass.
// It is owned by one scan and must not be read while it is being fed.
type Column struct {
	Index int
	Name  string

	n        uint64
	nMissing uint64
	nEmpty   uint64
	nNumeric uint64

	// numeric stats via Welford
	sum  float64
	mean float64
	vk   float64
	min  float64
	max  float64

	minStr string
	maxStr string
	maxLen int

	distinct map[string]uint64
}

// NewColumn returns an empty accumulator for zero-based input column index.
func NewColumn(index int, name string) *Column {
	return &Column{Index: index, Name: name, distinct: make(map[string]uint64)}
}

// ObserveMissing records a record that had no field for this column.
func (c *Column) ObserveMissing() {
	c.n++
	c.nMissing++
}

// Observe folds one present value into the column.
func (c *Column) Observe(v string) {
	c.n++
	if c.n-c.nMissing == 1 {
		c.minStr, c.maxStr = v, v
	} else {
		if v < c.minStr {
			c.minStr = v
		}
		if v > c.maxStr {
			c.maxStr = v
		}
	}
	if v == "" {
		c.nEmpty++
	}
	c.distinct[v]++
	if l := utf8.RuneCountInString(v); l > c.maxLen {
		c.maxLen = l
	}

	x, ok := parseFinite(v)
	if !ok {
		return
	}
	c.nNumeric++
	c.sum += x
	delta := x - c.mean
	c.mean += delta / float64(c.nNumeric)
	c.vk += delta * (x - c.mean)
	if c.nNumeric == 1 {
		c.min, c.max = x, x
		return
	}
	if x < c.min {
		c.min = x
	}
	if x > c.max {
		c.max = x
	}
}

// parseFinite accepts plain decimal and exponent notation only. Go literal
// forms that ParseFloat also takes (digit underscores, hex mantissas) are text.
func parseFinite(s string) (float64, bool) {
	if strings.ContainsRune(s, '_') {
		return 0, false
	}
	if u := strings.TrimLeft(s, "+-"); len(u) > 1 && u[0] == '0' && (u[1] == 'x' || u[1] == 'X') {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// Count is the number of records seen, including missing values.
func (c *Column) Count() uint64 { return c.n }

// Missing is the number of records too short to carry this column.
func (c *Column) Missing() uint64 { return c.nMissing }

// Empty is the number of present but empty values.
func (c *Column) Empty() uint64 { return c.nEmpty }

// NumericCount is the number of values that parsed as finite numbers.
func (c *Column) NumericCount() uint64 { return c.nNumeric }

// HasNulls reports whether any record lacked this column.
func (c *Column) HasNulls() bool { return c.nMissing > 0 }

// Unique is the number of distinct present values.
func (c *Column) Unique() int { return len(c.distinct) }

// Occurrences returns how many times v was observed.
func (c *Column) Occurrences(v string) uint64 { return c.distinct[v] }

// MaxLength is the longest present value, in characters.
func (c *Column) MaxLength() int { return c.maxLen }

// IsNumeric reports whether every present value parsed as a number and at
// least one did. Empty strings are present and never numeric.
func (c *Column) IsNumeric() bool {
	return c.nNumeric > 0 && c.nNumeric == c.n-c.nMissing
}

// Kind classifies the column.
func (c *Column) Kind() Kind {
	if c.IsNumeric() {
		return KindNumber
	}
	return KindText
}

func (c *Column) Sum() float64 { return c.sum }

// Mean is the running Welford mean of the numeric values, 0 if there were none.
func (c *Column) Mean() float64 { return c.mean }

// Median is not computed by a single-pass scan and is always 0.
func (c *Column) Median() float64 { return 0 }

// Variance is the sample (n-1) variance of the numeric values.
func (c *Column) Variance() float64 {
	if c.nNumeric < 2 {
		return 0
	}
	return c.vk / float64(c.nNumeric-1)
}

// Stdev is the sample standard deviation of the numeric values.
func (c *Column) Stdev() float64 { return math.Sqrt(c.Variance()) }

// NumericMin and NumericMax are the extremes of the numeric values.
func (c *Column) NumericMin() float64 { return c.min }
func (c *Column) NumericMax() float64 { return c.max }

// StringMin and StringMax are the byte-wise extremes of all present values.
func (c *Column) StringMin() string { return c.minStr }
func (c *Column) StringMax() string { return c.maxStr }

// Min renders the column minimum: numeric for Number columns, string otherwise.
func (c *Column) Min() string {
	if c.IsNumeric() {
		return FormatFloat(c.min)
	}
	return c.minStr
}

// Max renders the column maximum: numeric for Number columns, string otherwise.
func (c *Column) Max() string {
	if c.IsNumeric() {
		return FormatFloat(c.max)
	}
	return c.maxStr
}

// FormatFloat renders x as the shortest decimal that round-trips, without an exponent.
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
