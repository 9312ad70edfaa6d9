package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"displaystr/internal/driver"
	"displaystr/internal/project"
	"displaystr/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [file.dsl|directory]",
	Short: "Expand declaration files into code",
	Long: `Expand parses declaration files, validates every display template, and
writes the generated code to stdout or a file. Without an argument the
nearest displaystr.toml decides what to expand.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("doc", false, "generate /// doc comments from templates")
	expandCmd.Flags().StringP("output", "o", "", "write generated code to a file instead of stdout")
	expandCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	expandCmd.Flags().Bool("ui", false, "show interactive progress for directory runs")
	expandCmd.Flags().Bool("cache", false, "reuse cached expansions of unchanged files")
	expandCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	expandCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runExpand(cmd *cobra.Command, args []string) error {
	opts, target, err := expandOptions(cmd, args)
	if err != nil {
		return err
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		cache, err := driver.OpenDiskCache("displaystr")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return runExpandDir(cmd, target, opts)
	}
	return runExpandFile(cmd, target, opts)
}

// expandOptions resolves the flags shared by expand and check, plus the
// optional manifest, into driver options and the target path. The cache is
// expand's own concern; checking always runs the full pipeline.
func expandOptions(cmd *cobra.Command, args []string) (driver.Options, string, error) {
	doc, err := cmd.Flags().GetBool("doc")
	if err != nil {
		return driver.Options{}, "", fmt.Errorf("failed to get doc flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, "", fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	manifest, found, err := project.Load(".")
	if err != nil {
		return driver.Options{}, "", err
	}
	if found && !cmd.Flags().Changed("doc") {
		doc = manifest.Config.Expand.Doc
	}
	if target == "" {
		if !found {
			return driver.Options{}, "", fmt.Errorf("no %s found; specify a file or directory to expand", project.ManifestName)
		}
		dirs, err := manifest.SourceDirs()
		if err != nil {
			return driver.Options{}, "", err
		}
		if len(dirs) == 0 {
			return driver.Options{}, "", fmt.Errorf("%s: [expand].sources matched nothing", manifest.Path)
		}
		target = dirs[0]
	}

	return driver.Options{
		Doc:            doc,
		MaxDiagnostics: maxDiagnostics,
	}, target, nil
}

func runExpandFile(cmd *cobra.Command, path string, opts driver.Options) error {
	result, err := driver.Expand(path, opts)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
	}
	if result.Bag.HasErrors() {
		return silentExit(cmd)
	}
	return writeOutput(cmd, result.Output)
}

func runExpandDir(cmd *cobra.Command, dir string, opts driver.Options) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	var (
		fs      *source.FileSet
		results []driver.ExpandDirResult
	)
	if withUI && isTerminal(os.Stdout) {
		fs, results, err = expandDirWithUI(cmd, dir, jobs, opts)
	} else {
		fs, results, err = driver.ExpandDir(cmd.Context(), dir, jobs, opts)
	}
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
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

	// Outputs concatenate in sorted-path order, one blank line between
	// files, matching the per-file shape.
	var combined string
	for _, r := range results {
		if r.Output == "" {
			continue
		}
		if combined != "" {
			combined += "\n"
		}
		combined += r.Output
	}
	return writeOutput(cmd, combined)
}

func writeOutput(cmd *cobra.Command, output string) error {
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if outPath == "" {
		fmt.Fprint(os.Stdout, output)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	}
	return nil
}
