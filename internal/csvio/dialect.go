// Package csvio configures the CSV record source and output sinks used by the
// cut and stat commands.
package csvio

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedDialect is returned for dialect settings the tokenizer cannot honour.
var ErrUnsupportedDialect = errors.New("unsupported csv dialect")

// Options describes how input records are tokenized.
type Options struct {
	Delimiter rune
	Quote     rune
	Escape    rune
	Comment   rune
	// Trim strips surrounding whitespace from every field and header.
	Trim bool
	// Flexible allows records whose width differs from the first row.
	Flexible bool
	// HasHeader treats the first row as column names.
	HasHeader bool
	Encoding  string
}

// DefaultOptions returns a comma-delimited, strict, headed, UTF-8 dialect.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Quote: '"', HasHeader: true, Encoding: "utf-8"}
}

// Validate reports settings encoding/csv cannot honour.
func (o Options) Validate() error {
	if o.Delimiter == 0 || o.Delimiter == '"' || o.Delimiter == '\r' || o.Delimiter == '\n' || o.Delimiter == utf8.RuneError {
		return fmt.Errorf("%w: invalid delimiter %q", ErrUnsupportedDialect, o.Delimiter)
	}
	if o.Quote != 0 && o.Quote != '"' {
		return fmt.Errorf("%w: quote character %q (only '\"' is supported)", ErrUnsupportedDialect, o.Quote)
	}
	if o.Escape != 0 && o.Escape != '"' {
		return fmt.Errorf("%w: escape character %q (only doubled quotes are supported)", ErrUnsupportedDialect, o.Escape)
	}
	if o.Comment != 0 && o.Comment == o.Delimiter {
		return fmt.Errorf("%w: comment character equals delimiter", ErrUnsupportedDialect)
	}
	if _, err := lookupEncoding(o.Encoding); err != nil {
		return err
	}
	return nil
}

// ParseChar parses a single-character flag value. "" yields 0; "tab" and the
// two-character escape `\t` yield a tab.
func ParseChar(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "space":
		return ' ', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	return r, nil
}

// FormatChar is the inverse of ParseChar for display.
func FormatChar(r rune) string {
	switch r {
	case 0:
		return ""
	case '\t':
		return "tab"
	case ' ':
		return "space"
	default:
		return string(r)
	}
}
