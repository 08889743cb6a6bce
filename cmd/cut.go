package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/csvstar/internal/columns"
	"github.com/KaramelBytes/csvstar/internal/csvio"
	"github.com/KaramelBytes/csvstar/internal/logging"
	"github.com/KaramelBytes/csvstar/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cutFlags csvFlags
	cutNames bool
)

var cutCmd = &cobra.Command{
	Use:   "cut [file]",
	Short: "Select, reorder and repeat columns of a CSV file",
	Long: `Write the selected columns of every record, in selection order. Columns may
repeat. With no --columns every column is written. Reads stdin when no file
(or "-") is given.

Examples:
  csvstar cut -c 1,3 data.csv
  csvstar cut -c "name,-1" -c 2-4 data.csv
  csvstar cut -H -c 1,-1 --output-headers data.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCut,
}

func runCut(cmd *cobra.Command, args []string) error {
	src, in, name, err := openSource(cmd, args, &cutFlags)
	if err != nil {
		return err
	}
	defer in.Close()
	header := src.Header()

	if cutNames {
		return printNames(cmd.OutOrStdout(), header)
	}

	indices, err := columns.Resolve(header, cutFlags.tokens())
	if err != nil {
		return err
	}
	withHeaders, err := cutFlags.wantHeaders(!cutFlags.noHeaderRow)
	if err != nil {
		return err
	}

	log := logging.WithFields("cmd", "cut", "run_id", uuid.NewString(), "source", name)
	log.Debug("columns resolved", "width", header.Len(), "selected", len(indices))

	sink, err := utils.OpenSink(cutFlags.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := writeCut(sink, src, header, indices, withHeaders); err != nil {
		sink.Abort()
		return err
	}
	if err := sink.Commit(); err != nil {
		return err
	}
	log.Debug("cut complete", "rows", src.Rows())
	return nil
}

// writeCut streams the projected records of src to w.
func writeCut(w io.Writer, src *csvio.Source, header *columns.Header, indices []int, withHeaders bool) error {
	cw := csv.NewWriter(w)
	if withHeaders && len(indices) > 0 {
		if err := cw.Write(header.Select(indices)); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	p := columns.NewProjector(indices)
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := cw.Write(p.Project(rec)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func printNames(w io.Writer, h *columns.Header) error {
	for i, n := range h.Names() {
		if _, err := fmt.Fprintf(w, "%3d: %s\n", i+1, n); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cutCmd)
	cutFlags.register(cutCmd.Flags())
	cutCmd.Flags().BoolVar(&cutNames, "names", false, "print column names with their 1-based offsets and exit")
}
