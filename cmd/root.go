package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vibeguard",
	Short: "Finding validation and publication engine",
	Long: `VibeGuard ingests static-analysis findings from upstream scanners,
validates them against the frozen wire contract, and republishes them as
check-run annotations on the code-review host.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
}
