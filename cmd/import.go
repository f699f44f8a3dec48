package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/DivineRock/ffxiv-coord-importer/internal/extractor"
)

var (
	importFile    string
	importCatalog string
	importTrace   bool
	importJSON    bool
)

var importCmd = &cobra.Command{
	Use:   "import [line...]",
	Short: "Convert pasted sighting lines into map links",
	Long: `Reads sighting lines from the arguments, --file, or standard input and prints
one map link per recognized line. Lines that match no known format are logged
and dropped; lines naming an unknown map produce a diagnostic line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readImportText(cmd, args)
		if err != nil {
			return err
		}

		c, err := buildCatalog(importCatalog)
		if err != nil {
			return err
		}

		if importTrace {
			if err := printTrace(cmd.ErrOrStderr(), text, importJSON); err != nil {
				return err
			}
		}

		res := newImporter(c).Import(text)

		out := cmd.OutOrStdout()
		if importJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		for _, line := range res.Texts() {
			fmt.Fprintln(out, line)
		}
		logVerbose("%d line(s): %d resolved, %d unresolved, %d skipped, %d unrecognized, %d failed",
			res.Stats.Lines, res.Stats.Resolved, res.Stats.Unresolved,
			res.Stats.Skipped, res.Stats.Unrecognized, res.Stats.Failed)
		return nil
	},
}

func readImportText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}

	var r io.Reader
	switch importFile {
	case "", "-":
		r = cmd.InOrStdin()
		if f, ok := r.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Paste sighting lines, then press Ctrl-D:")
		}
	default:
		f, err := os.Open(importFile)
		if err != nil {
			return "", fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

// printTrace writes every grammar attempt per line, as an indented listing or
// as a JSON array of traces.
func printTrace(w io.Writer, text string, asJSON bool) error {
	lines := extractor.SplitLines(text)
	if asJSON {
		traces := make([]extractor.Trace, 0, len(lines))
		for _, line := range lines {
			traces = append(traces, extractor.ClassifyWithTrace(line))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(traces)
	}

	for _, line := range lines {
		tr := extractor.ClassifyWithTrace(line)
		fmt.Fprintf(w, "%s\n", tr.Line)
		for _, a := range tr.Attempts {
			mark := " "
			if a.Matched {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %-7s %s\n", mark, a.Grammar, a.Captures)
		}
		result := tr.Result.Kind.String()
		if tr.Err != nil {
			result = tr.Err.Error()
		}
		fmt.Fprintf(w, "  => %s\n", result)
	}
	return nil
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Read lines from this file (- for stdin)")
	importCmd.Flags().StringVar(&importCatalog, "catalog", "", "Build the catalog from this YAML file instead of the database")
	importCmd.Flags().BoolVar(&importTrace, "trace", false, "Print every format attempt and its captures to stderr (as JSON with --json)")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(importCmd)
}
