package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"displaystr/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.dsl|directory]",
	Short: "Validate declaration files without generating code",
	Long: `Check runs the full pipeline over declaration files and reports every
defect, but writes no generated code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("doc", false, "also check doc-comment generation conflicts")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, target, err := expandOptions(cmd, args)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	if !st.IsDir() {
		result, err := driver.Expand(target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		if result.Bag.Len() > 0 {
			if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
				return err
			}
		}
		if result.Bag.HasErrors() {
			return silentExit(cmd)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "ok: %s\n", target)
		}
		return nil
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	fs, results, err := driver.ExpandDir(cmd.Context(), target, jobs, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	hadErrors := false
	for _, r := range results {
		if r.Bag.Len() > 0 {
			if err := printDiagnostics(cmd, r.Bag, fs); err != nil {
				return err
			}
		}
		if r.Bag.HasErrors() {
			hadErrors = true
		}
	}
	if hadErrors {
		return silentExit(cmd)
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "ok: %d file(s)\n", len(results))
	}
	return nil
}
