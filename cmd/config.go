package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Nyeloz/VibeGuard/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (batching, retry, GitHub target)",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		shown := *cfg
		if shown.GitHub.Token != "" {
			shown.GitHub.Token = "(set)"
		}
		data, err := yaml.Marshal(&shown)
		if err != nil {
			fmt.Printf("Error rendering config: %v\n", err)
			return
		}
		fmt.Print(string(data))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update recognized configuration options",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if cmd.Flags().Changed("max-batch-size") {
			cfg.MaxBatchSize, _ = cmd.Flags().GetInt("max-batch-size")
		}
		if cmd.Flags().Changed("max-retry-attempts") {
			cfg.MaxRetryAttempts, _ = cmd.Flags().GetInt("max-retry-attempts")
		}
		if cmd.Flags().Changed("backoff-base-millis") {
			cfg.BackoffBaseMillis, _ = cmd.Flags().GetInt("backoff-base-millis")
		}
		if cmd.Flags().Changed("github-token") {
			cfg.GitHub.Token, _ = cmd.Flags().GetString("github-token")
		}
		if cmd.Flags().Changed("github-owner") {
			cfg.GitHub.Owner, _ = cmd.Flags().GetString("github-owner")
		}
		if cmd.Flags().Changed("github-repo") {
			cfg.GitHub.Repo, _ = cmd.Flags().GetString("github-repo")
		}
		if cmd.Flags().Changed("check-run-id") {
			cfg.GitHub.CheckRunID, _ = cmd.Flags().GetInt64("check-run-id")
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("Invalid configuration: %v\n", err)
			return
		}
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Println("Configuration updated.")
	},
}

func init() {
	configSetCmd.Flags().Int("max-batch-size", config.DefaultMaxBatchSize, "Maximum findings per publish call")
	configSetCmd.Flags().Int("max-retry-attempts", config.DefaultMaxRetryAttempts, "Retry budget per batch")
	configSetCmd.Flags().Int("backoff-base-millis", config.DefaultBackoffBaseMillis, "Base backoff interval in milliseconds")
	configSetCmd.Flags().String("github-token", "", "GitHub API token")
	configSetCmd.Flags().String("github-owner", "", "Repository owner")
	configSetCmd.Flags().String("github-repo", "", "Repository name")
	configSetCmd.Flags().Int64("check-run-id", 0, "Check run receiving annotations")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
