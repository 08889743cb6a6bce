package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/csvstar/internal/columns"
	"github.com/KaramelBytes/csvstar/internal/csvio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const threeCols = "col1,col2,col3\n1,2,3\n4,5,6\n7,8,9\n"

// resetFlags restores every flag of c to its default so Changed state and
// accumulated slice values do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
}

// runCmd executes the root command with stdin and returns what it wrote to stdout.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, c := range []*cobra.Command{rootCmd, cutCmd, statCmd, configCmd, configShowCmd, configSetCmd} {
		resetFlags(c)
	}
	cfg = nil
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// isolateHome points HOME at a fresh temp dir so no user config is read.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := runCmd(t, stdin, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func TestCLI_CutByName(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, threeCols, "cut", "-c", "col1,col3")
	if want := "col1,col3\n1,3\n4,6\n7,9\n"; got != want {
		t.Fatalf("cut = %q, want %q", got, want)
	}
}

func TestCLI_CutNoHeaderNegativeIndex(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, "1,2,3\n4,5,6\n7,8,9\n", "cut", "-H", "-c", "1,-1")
	if want := "1,3\n4,6\n7,9\n"; got != want {
		t.Fatalf("cut = %q, want %q", got, want)
	}
}

func TestCLI_CutSynthesizedHeaders(t *testing.T) {
	isolateHome(t)
	line := strings.Repeat(",", 99)
	got := mustRun(t, line+"\n", "cut", "-H", "--output-headers")

	names := make([]string, 100)
	for i := range names {
		names[i] = columns.SyntheticName(i)
	}
	want := strings.Join(names, ",") + "\n" + line + "\n"
	if got != want {
		t.Fatalf("cut output header mismatch:\n got %q\nwant %q", got[:40], want[:40])
	}
	if names[99] != "vvvv" {
		t.Fatalf("name 100 = %q, want vvvv", names[99])
	}
}

func TestCLI_CutReorderAndRepeat(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, "a,b,c,d,e\n1,2,3,4,5\n", "cut", "-c", "1,1,4", "-c", "3-5, b")
	if want := "a,a,d,c,d,e,b\n1,1,4,3,4,5,2\n"; got != want {
		t.Fatalf("cut = %q, want %q", got, want)
	}
}

func TestCLI_CutNoOutputHeaders(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, threeCols, "cut", "--no-output-headers", "-c", "2")
	if want := "2\n5\n8\n"; got != want {
		t.Fatalf("cut = %q, want %q", got, want)
	}
	if _, err := runCmd(t, threeCols, "cut", "--output-headers", "--no-output-headers"); err == nil {
		t.Fatalf("expected error for conflicting header flags")
	}
}

func TestCLI_CutSelectorErrors(t *testing.T) {
	isolateHome(t)
	cases := map[string]string{
		"1-4":  "Invalid range. There are only 3 columns: 1-4",
		"3-1":  "Invalid range. Must be increasing: 3-1",
		"0":    "Column 0 is invalid. Columns are 1-based.",
		"4":    "Column 4 is invalid. There are 3 columns.",
		"-4":   "Column -4 is invalid. There are 3 columns.",
		"nope": "Column 'nope' not found in input file",
	}
	for sel, want := range cases {
		out, err := runCmd(t, threeCols, "cut", "-c", sel)
		if err == nil {
			t.Fatalf("cut -c %s: expected error", sel)
		}
		if err.Error() != want {
			t.Errorf("cut -c %s: error = %q, want %q", sel, err.Error(), want)
		}
		if out != "" {
			t.Errorf("cut -c %s: wrote %q before failing", sel, out)
		}
	}
}

func TestCLI_CutOutputFile(t *testing.T) {
	home := isolateHome(t)
	in := filepath.Join(home, "in.csv")
	if err := os.WriteFile(in, []byte(threeCols), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	outPath := filepath.Join(home, "out.csv")
	mustRun(t, "", "cut", "-c", "col2", "-o", outPath, in)
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "col2\n2\n5\n8\n"; string(b) != want {
		t.Fatalf("output file = %q, want %q", b, want)
	}
}

func TestCLI_CutMalformedRecordLeavesNoOutput(t *testing.T) {
	home := isolateHome(t)
	outPath := filepath.Join(home, "out.csv")
	_, err := runCmd(t, "a,b\n1,2\n3\n", "cut", "-o", outPath)
	if err == nil {
		t.Fatalf("expected error for ragged record in strict mode")
	}
	if !errors.Is(err, csvio.ErrRecordRead) {
		t.Fatalf("error = %v, want ErrRecordRead", err)
	}
	entries, _ := os.ReadDir(home)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "out.csv") || strings.HasPrefix(e.Name(), ".out.csv") {
			t.Fatalf("unexpected leftover file %s", e.Name())
		}
	}
}

func TestCLI_CutFlexibleFillsMissing(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, "a,b\n1,2\n3\n", "cut", "-f", "-c", "b,a", "-")
	if want := "b,a\n2,1\n,3\n"; got != want {
		t.Fatalf("cut = %q, want %q", got, want)
	}
}

func TestCLI_CutDialectFlags(t *testing.T) {
	isolateHome(t)
	in := "# comment\n id ; name \n 1 ; ann \n"
	got := mustRun(t, in, "cut", "-d", ";", "-n", "#", "-m", "-c", "name")
	if want := "name\nann\n"; got != want {
		t.Fatalf("cut = %q, want %q", got, want)
	}
	if _, err := runCmd(t, in, "cut", "-q", "'"); !errors.Is(err, csvio.ErrUnsupportedDialect) {
		t.Fatalf("error = %v, want ErrUnsupportedDialect", err)
	}
}

func TestCLI_CutNames(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, threeCols, "cut", "--names")
	if want := "  1: col1\n  2: col2\n  3: col3\n"; got != want {
		t.Fatalf("names = %q, want %q", got, want)
	}
}

func TestCLI_CutEmptyInput(t *testing.T) {
	isolateHome(t)
	if got := mustRun(t, "", "cut"); got != "" {
		t.Fatalf("cut on empty input = %q, want empty", got)
	}
}

const statInput = "n,word,note\n1,alpha,\n2,beta,x\n3,alpha\n"

func TestCLI_StatCSV(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, statInput, "stat", "--csv", "-f")
	want := strings.Join([]string{
		"column_id,column_name,type,nulls,unique,min,max,sum,mean,median,stdev,len,freq",
		`1,n,Number,false,3,1,3,6,2,0,1,,"1 (1X),2 (1X),3 (1X)"`,
		`2,word,Text,false,2,alpha,beta,,,,,5,"beta (1X),alpha (2X)"`,
		`3,note,Text,true,2,,x,,,,,1," (1X),x (1X)"`,
	}, "\n") + "\n"
	if got != want {
		t.Fatalf("stat csv =\n%s\nwant\n%s", got, want)
	}
}

func TestCLI_StatSelectionAndNoHeaders(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, statInput, "stat", "--csv", "-f", "--no-output-headers", "-c", "word", "--freq-count", "1")
	if want := "2,word,Text,false,2,alpha,beta,,,,,5,alpha (2X)\n"; got != want {
		t.Fatalf("stat = %q, want %q", got, want)
	}
}

func TestCLI_StatJSON(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, statInput, "stat", "-f", "--format", "json")
	var rep struct {
		RunID   string `json:"run_id"`
		Rows    int    `json:"rows"`
		Columns []struct {
			ID   int     `json:"column_id"`
			Type string  `json:"type"`
			Mean float64 `json:"mean"`
		} `json:"columns"`
	}
	if err := json.Unmarshal([]byte(got), &rep); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, got)
	}
	if rep.RunID == "" || rep.Rows != 3 || len(rep.Columns) != 3 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Columns[0].Type != "Number" || rep.Columns[0].Mean != 2 {
		t.Fatalf("first column = %+v", rep.Columns[0])
	}
}

func TestCLI_StatText(t *testing.T) {
	isolateHome(t)
	got := mustRun(t, statInput, "stat", "-f")
	for _, want := range []string{"[DATASET SUMMARY]", "Rows: 3", "[SCHEMA]", "word: Text"} {
		if !strings.Contains(got, want) {
			t.Fatalf("text report missing %q:\n%s", want, got)
		}
	}
}

func TestCLI_StatErrors(t *testing.T) {
	isolateHome(t)
	if _, err := runCmd(t, statInput, "stat", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := runCmd(t, statInput, "stat", "-f", "-c", "9"); err == nil || err.Error() != "Column 9 is invalid. There are 3 columns." {
		t.Fatalf("error = %v", err)
	}
}

func TestCLI_ConfigSetShowAndApply(t *testing.T) {
	home := isolateHome(t)
	mustRun(t, "", "config", "set", "delimiter", ";")
	mustRun(t, "", "config", "set", "stat_format", "csv")
	if _, err := os.Stat(filepath.Join(home, ".csvstar", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}

	show := mustRun(t, "", "config", "show")
	if !strings.Contains(show, "delimiter: ;") || !strings.Contains(show, "stat_format: csv") {
		t.Fatalf("config show = %q", show)
	}

	if got := mustRun(t, "a;b\n1;2\n", "cut", "-c", "b"); got != "b\n2\n" {
		t.Fatalf("cut with config delimiter = %q", got)
	}
	// flags win over config
	if got := mustRun(t, "a,b\n1,2\n", "cut", "-d", ",", "-c", "a"); got != "a\n1\n" {
		t.Fatalf("cut with flag delimiter = %q", got)
	}
	if got := mustRun(t, "a;b\n1;2\n", "stat", "--no-output-headers", "-c", "a"); !strings.HasPrefix(got, "1,a,Number,") {
		t.Fatalf("stat with config format = %q", got)
	}
}

func TestCLI_ConfigSetKeepsMalformedFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".csvstar")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "config.yaml")
	orig := "delimiter: \";\"\ntop_k: 7\nlog_level: [oops\n"
	if err := os.WriteFile(path, []byte(orig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := runCmd(t, "", "config", "set", "flexible", "true"); err == nil {
		t.Fatalf("expected error when the existing config cannot be read")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(b) != orig {
		t.Fatalf("config rewritten:\n%s", b)
	}

	// other commands still run on defaults
	if got := mustRun(t, threeCols, "cut", "-c", "col2"); got != "col2\n2\n5\n8\n" {
		t.Fatalf("cut with unreadable config = %q", got)
	}
}

func TestCLI_ConfigSetRejectsInvalid(t *testing.T) {
	isolateHome(t)
	cases := [][]string{
		{"config", "set", "bogus", "1"},
		{"config", "set", "top_k", "-1"},
		{"config", "set", "encoding", "ebcdic"},
		{"config", "set", "delimiter", ";;"},
		{"config", "set", "stat_format", "xml"},
	}
	for _, args := range cases {
		if _, err := runCmd(t, "", args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
