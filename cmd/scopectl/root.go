package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "scopectl",
	Short: "Exercise and inspect the scopekit region runtime",
	Long: `scopectl drives the scope-depth region runtime the way generated
code would: it executes scope scripts (enter/exit/malloc/ret/...) against a
fresh runtime, prints the allocation and collection trace, and reports the
final allocator statistics. It exists to debug generated call sequences
without compiling a program.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress the event trace, print only results")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output statistics as JSON")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as indented JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
