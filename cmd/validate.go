package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nyeloz/VibeGuard/pkg/contract"
	"github.com/Nyeloz/VibeGuard/pkg/ui"
	"github.com/Nyeloz/VibeGuard/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scan request and echo the normalized findings",
	Long: `Validates a scan request against the wire contract without publishing
anything. On success the normalized findings are re-emitted as JSON,
including any unrecognized optional fields carried verbatim.`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.DebugEnabled = DebugMode

		input, _ := cmd.Flags().GetString("input")
		raw, err := readInput(input)
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			os.Exit(1)
		}

		findings, err := validate.Validate(raw)
		if err != nil {
			var verr *validate.ValidationError
			if errors.As(err, &verr) {
				ui.PrintFailure("Invalid request: %d defect(s)", len(verr.Errors))
				for _, fe := range verr.Errors {
					fmt.Printf("  - %s\n", fe)
				}
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			os.Exit(1)
		}

		out, err := json.MarshalIndent(contract.ScanRequest{Findings: findings}, "", "  ")
		if err != nil {
			fmt.Printf("Error encoding findings: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}

func init() {
	validateCmd.Flags().StringP("input", "i", "-", "Scan request JSON file ('-' for stdin)")
	rootCmd.AddCommand(validateCmd)
}
