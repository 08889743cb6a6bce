package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KaramelBytes/csvstar/internal/columns"
	"github.com/KaramelBytes/csvstar/internal/csvio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const columnsHelp = `column names, offsets or ranges to include, e.g. "1,id,-2,3-5" (repeatable). ` +
	`Negative offsets count from the end (-1 is the last column). Ranges are inclusive.`

// csvFlags holds the input/output flags shared by cut and stat.
type csvFlags struct {
	output          string
	noHeaderRow     bool
	outputHeaders   bool
	noOutputHeaders bool
	flexible        bool
	trim            bool
	delimiter       string
	quote           string
	escape          string
	comment         string
	encoding        string
	columns         []string
}

func (f *csvFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.BoolVarP(&f.noHeaderRow, "no-header-row", "H", false, "input file has no header row")
	fs.BoolVar(&f.outputHeaders, "output-headers", false, "always write an output header row (synthesized a,b,c... when the input has none)")
	fs.BoolVar(&f.noOutputHeaders, "no-output-headers", false, "never write an output header row")
	fs.BoolVarP(&f.flexible, "flexible", "f", false, "allow a variable number of fields per record")
	fs.BoolVarP(&f.trim, "trimfields", "m", false, "trim whitespace around fields and headers")
	fs.StringVarP(&f.delimiter, "delimiter", "d", "", "delimiter character (',' ';' '|' 'tab' ...)")
	fs.StringVarP(&f.quote, "quotechar", "q", "", "quote character")
	fs.StringVarP(&f.escape, "escapechar", "p", "", "escape character")
	fs.StringVarP(&f.comment, "commentchar", "n", "", "comment character; lines starting with it are skipped")
	fs.StringVarP(&f.encoding, "encoding", "e", "", "input encoding: utf-8|utf-16|utf-16le|utf-16be|latin1|windows-1252")
	fs.StringArrayVarP(&f.columns, "columns", "c", nil, columnsHelp)
}

// tokens flattens the --columns occurrences into selector tokens.
func (f *csvFlags) tokens() []string { return columns.SplitTokens(f.columns) }

// dialect merges the loaded config with flags that were explicitly set.
func (f *csvFlags) dialect(fs *pflag.FlagSet) (csvio.Options, error) {
	c := activeConfig()
	pick := func(name, flagVal, cfgVal string) string {
		if fs.Changed(name) {
			return flagVal
		}
		return cfgVal
	}
	pickBool := func(name string, flagVal, cfgVal bool) bool {
		if fs.Changed(name) {
			return flagVal
		}
		return cfgVal
	}

	opt := csvio.DefaultOptions()
	chars := []struct {
		flag   string
		value  string
		target *rune
	}{
		{"delimiter", pick("delimiter", f.delimiter, c.Delimiter), &opt.Delimiter},
		{"quotechar", pick("quotechar", f.quote, c.QuoteChar), &opt.Quote},
		{"escapechar", pick("escapechar", f.escape, c.EscapeChar), &opt.Escape},
		{"commentchar", pick("commentchar", f.comment, c.CommentChar), &opt.Comment},
	}
	for _, ch := range chars {
		r, err := csvio.ParseChar(ch.value)
		if err != nil {
			return opt, fmt.Errorf("--%s: %w", ch.flag, err)
		}
		*ch.target = r
	}
	if opt.Delimiter == 0 {
		opt.Delimiter = ','
	}
	opt.Encoding = pick("encoding", f.encoding, c.Encoding)
	opt.Trim = pickBool("trimfields", f.trim, c.TrimFields)
	opt.Flexible = pickBool("flexible", f.flexible, c.Flexible)
	opt.HasHeader = !f.noHeaderRow
	if err := opt.Validate(); err != nil {
		return opt, err
	}
	return opt, nil
}

// wantHeaders decides whether to write an output header row.
func (f *csvFlags) wantHeaders(def bool) (bool, error) {
	switch {
	case f.outputHeaders && f.noOutputHeaders:
		return false, errors.New("--output-headers and --no-output-headers are mutually exclusive")
	case f.outputHeaders:
		return true, nil
	case f.noOutputHeaders:
		return false, nil
	default:
		return def, nil
	}
}

// openInput returns the named file, or the command's stdin for "" and "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	return f, args[0], nil
}

// openSource opens the input and reads its header with the merged dialect.
func openSource(cmd *cobra.Command, args []string, f *csvFlags) (*csvio.Source, io.Closer, string, error) {
	opt, err := f.dialect(cmd.Flags())
	if err != nil {
		return nil, nil, "", err
	}
	in, name, err := openInput(cmd, args)
	if err != nil {
		return nil, nil, "", err
	}
	src, err := csvio.NewSource(in, opt)
	if err != nil {
		in.Close()
		return nil, nil, "", err
	}
	return src, in, name, nil
}
