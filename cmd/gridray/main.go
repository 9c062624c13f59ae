// Package main provides the CLI entry point for gridray.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gridray/gridray/internal/core"
	_ "github.com/gridray/gridray/internal/core/profiles" // Register all profiles
	"github.com/gridray/gridray/internal/tabular"
	"github.com/gridray/gridray/internal/validate"
)

var (
	profileKey string
	asJSON     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridray [file]",
		Short: "Validate spreadsheet files against rule profiles",
		Long: `gridray checks Excel and CSV files against a validation profile
and reports every rule violation with its row, column, and value.

With no file argument, gridray prompts for a path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&profileKey, "profile", "p", "generic", "Validation profile key (see 'gridray profiles')")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "profiles",
		Short: "List available validation profiles",
		Run: func(cmd *cobra.Command, args []string) {
			listProfiles()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path, err := inputPath(args)
	if err != nil {
		return err
	}

	profile, ok := core.Get(profileKey)
	if !ok {
		return fmt.Errorf("unknown profile %q (see 'gridray profiles')", profileKey)
	}

	table, err := tabular.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("Successfully loaded file with %d rows\n", table.RowCount())

	records := profile.Validate(table)
	summary := validate.Summarize(table.RowCount(), records)

	if asJSON {
		return printJSON(table, records, summary)
	}

	displayResults(records)
	displaySummary(summary)
	return nil
}

// inputPath resolves the file to validate: the positional argument if
// given, otherwise an interactive prompt.
func inputPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	fmt.Print("Please enter the path to your Excel file: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("no file path provided")
	}
	path := strings.TrimSpace(scanner.Text())
	if path == "" {
		return "", fmt.Errorf("no file path provided")
	}
	return path, nil
}

// displayResults prints the error records as an aligned table.
func displayResults(records []validate.ErrorRecord) {
	if len(records) == 0 {
		fmt.Println("\nNo validation errors found!")
		return
	}

	fmt.Println("\nValidation Errors Found:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Row\tField\tValue\tError")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Row, r.Field, r.Value, r.Message)
	}
	w.Flush()
	fmt.Printf("\nTotal errors found: %d\n", len(records))
}

// displaySummary prints row counts by validation outcome.
func displaySummary(summary validate.Summary) {
	fmt.Printf("\nTotal Rows: %d  Valid Rows: %d  Invalid Rows: %d\n",
		summary.TotalRows, summary.ValidRows, summary.InvalidRows)
}

// printJSON writes the validation outcome as a JSON document.
func printJSON(table *tabular.Table, records []validate.ErrorRecord, summary validate.Summary) error {
	out := struct {
		Columns []string               `json:"columns"`
		Errors  []validate.ErrorRecord `json:"errors"`
		Summary validate.Summary       `json:"summary"`
	}{
		Columns: table.Columns,
		Errors:  records,
		Summary: summary,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// listProfiles prints every registered profile with its expected columns.
func listProfiles() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Key\tLabel\tColumns\tDescription")
	for _, p := range core.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Info.Key, p.Info.Label,
			strconv.Itoa(len(p.Info.Columns)), p.Info.Description)
	}
	w.Flush()
}
