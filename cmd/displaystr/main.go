package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"displaystr/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "displaystr",
	Short: "Display-template transformer for enum declarations",
	Long:  `displaystr expands enum declarations carrying per-variant display templates into the stripped declaration plus a Display implementation`,
}

func init() {
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

func main() {
	rootCmd.Version = version.Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// silentExit suppresses cobra's usage/error output; the diagnostics were
// already printed, only the non-zero exit status remains.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
