package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nyeloz/VibeGuard/pkg/config"
	"github.com/Nyeloz/VibeGuard/pkg/pipeline"
	"github.com/Nyeloz/VibeGuard/pkg/publish"
	"github.com/Nyeloz/VibeGuard/pkg/publish/githubhost"
	"github.com/Nyeloz/VibeGuard/pkg/result"
	"github.com/Nyeloz/VibeGuard/pkg/ui"
	"github.com/Nyeloz/VibeGuard/pkg/validate"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Validate a scan request and publish its findings as annotations",
	Run: func(cmd *cobra.Command, args []string) {
		ui.DebugEnabled = DebugMode

		input, _ := cmd.Flags().GetString("input")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		requestID, _ := cmd.Flags().GetString("request-id")

		raw, err := readInput(input)
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			os.Exit(1)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		host, err := buildHost(cfg, dryRun)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		p := pipeline.New(host, pipeline.Options{
			MaxBatchSize:     cfg.MaxBatchSize,
			MaxRetryAttempts: cfg.MaxRetryAttempts,
			BackoffBase:      time.Duration(cfg.BackoffBaseMillis) * time.Millisecond,
		})

		// Ctrl-C stops before the next not-yet-started batch call.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := p.Run(ctx, requestID, raw)
		if err != nil {
			var verr *validate.ValidationError
			if errors.As(err, &verr) {
				ui.PrintFailure("Request rejected: %d validation defect(s)", len(verr.Errors))
				for _, fe := range verr.Errors {
					fmt.Printf("  - %s\n", fe)
				}
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			os.Exit(1)
		}

		printResult(res)
		if res.Status != result.StatusSuccess {
			os.Exit(1)
		}
	},
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func buildHost(cfg *config.Config, dryRun bool) (publish.Host, error) {
	if dryRun {
		return &dryRunHost{}, nil
	}
	if cfg.GitHub.Token == "" || cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" || cfg.GitHub.CheckRunID == 0 {
		return nil, fmt.Errorf("GitHub target not configured; run 'vibeguard config set' or use --dry-run")
	}
	return githubhost.New(githubhost.Config{
		Token:      cfg.GitHub.Token,
		Owner:      cfg.GitHub.Owner,
		Repo:       cfg.GitHub.Repo,
		CheckRunID: cfg.GitHub.CheckRunID,
	}), nil
}

func printResult(res result.PublicationResult) {
	switch res.Status {
	case result.StatusSuccess:
		ui.PrintSuccess("Published %d finding(s)", res.Published)
	case result.StatusPartialFailure:
		ui.PrintWarning("Partially published: %d finding(s) sent, %d finding(s) failed", res.Published, len(res.Unpublished()))
	case result.StatusTotalFailure:
		ui.PrintFailure("Publication failed: no batch was accepted")
	}
	for _, bf := range res.FailedBatches {
		fmt.Printf("  - batch %d (findings %d-%d) %s: %s\n",
			bf.BatchIndex, bf.FirstFinding, bf.LastFinding, bf.Kind, bf.Reason)
	}
}

// dryRunHost prints each batch instead of calling the real host.
type dryRunHost struct{}

func (h *dryRunHost) PublishBatch(ctx context.Context, idempotencyKey string, annotations []publish.Annotation) error {
	ui.Infof("[dry-run] batch %s: %d annotation(s)", idempotencyKey, len(annotations))
	for _, a := range annotations {
		line := "-"
		if a.Line != nil {
			line = fmt.Sprintf("%d", *a.Line)
		}
		ui.Infof("[dry-run]   %s %s (line %s): %s", a.Level, a.RuleID, line, a.Message)
	}
	return nil
}

func init() {
	publishCmd.Flags().StringP("input", "i", "-", "Scan request JSON file ('-' for stdin)")
	publishCmd.Flags().Bool("dry-run", false, "Print batches instead of calling the host")
	publishCmd.Flags().String("request-id", "", "Stable request identity for idempotency keys (default: body hash)")
	rootCmd.AddCommand(publishCmd)
}
