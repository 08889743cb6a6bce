package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/csvstar/internal/columns"
	"github.com/KaramelBytes/csvstar/internal/logging"
	"github.com/KaramelBytes/csvstar/internal/stats"
	"github.com/KaramelBytes/csvstar/internal/utils"
	"github.com/spf13/cobra"
)

// statFormats lists the accepted --format values.
var statFormats = []string{"text", "csv", "json", "yaml"}

var (
	statFlags  csvFlags
	statCSV    bool
	statFormat string
	statTopK   int
)

var statCmd = &cobra.Command{
	Use:   "stat [file]",
	Short: "Compute per-column statistics in one pass",
	Long: `Scan the input once and report, per selected column: inferred type, nulls,
unique count, min/max, sum/mean/median/stdev for numeric columns, the longest
value for text columns, and the most frequent values.

Examples:
  csvstar stat data.csv
  csvstar stat --csv -c 2-4 data.csv
  csvstar stat --format json --freq-count 5 data.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStat,
}

func runStat(cmd *cobra.Command, args []string) error {
	c := activeConfig()
	format := strings.ToLower(c.StatFormat)
	if cmd.Flags().Changed("format") {
		format = strings.ToLower(statFormat)
	}
	if statCSV {
		format = "csv"
	}
	if !validStatFormat(format) {
		return fmt.Errorf("unsupported --format: %s (use %s)", format, strings.Join(statFormats, "|"))
	}
	topK := c.TopK
	if cmd.Flags().Changed("freq-count") {
		topK = statTopK
	}
	if topK < 0 {
		return fmt.Errorf("--freq-count must be >= 0, got %d", topK)
	}
	withHeaders, err := statFlags.wantHeaders(true)
	if err != nil {
		return err
	}

	src, in, name, err := openSource(cmd, args, &statFlags)
	if err != nil {
		return err
	}
	defer in.Close()
	header := src.Header()
	indices, err := columns.Resolve(header, statFlags.tokens())
	if err != nil {
		return err
	}

	acc := stats.NewAccumulator(indices, header.Select(indices))
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		acc.Add(rec)
	}
	rep := stats.NewReport(name, acc, topK)
	logging.WithFields("cmd", "stat", "run_id", rep.RunID, "source", name).
		Debug("scan complete", "rows", rep.Rows, "columns", len(rep.Columns), "format", format)

	sink, err := utils.OpenSink(statFlags.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := writeReport(sink, rep, format, withHeaders); err != nil {
		sink.Abort()
		return err
	}
	return sink.Commit()
}

func writeReport(w io.Writer, rep *stats.Report, format string, withHeaders bool) error {
	switch format {
	case "csv":
		return rep.WriteCSV(w, withHeaders)
	case "json":
		return rep.WriteJSON(w)
	case "yaml":
		return rep.WriteYAML(w)
	default:
		_, err := io.WriteString(w, rep.Text())
		return err
	}
}

func validStatFormat(f string) bool {
	for _, s := range statFormats {
		if s == f {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(statCmd)
	statFlags.register(statCmd.Flags())
	statCmd.Flags().BoolVar(&statCSV, "csv", false, "write the report as CSV (same as --format csv)")
	statCmd.Flags().StringVar(&statFormat, "format", "", "report format: text|csv|json|yaml (default from config: text)")
	statCmd.Flags().IntVar(&statTopK, "freq-count", stats.DefaultTopK, "number of most frequent values kept per column")
}
