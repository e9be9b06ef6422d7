package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/siftbot/gh-sift/internal/processor"
	"github.com/siftbot/gh-sift/pkg/models"
	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var eventPath string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process a single issue or pull request event",
		Long: `Process one GitHub Action event payload. Issue opened/edited events
run duplicate detection; pull request opened events run duplicate
detection plus the readiness review; synchronize events re-run the
review only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if eventPath == "" {
				eventPath = os.Getenv("GITHUB_EVENT_PATH")
			}
			if eventPath == "" {
				return fmt.Errorf("no event payload: pass --event-path or set GITHUB_EVENT_PATH")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			proc, err := processor.NewProcessor(cfg, dryRun)
			if err != nil {
				return fmt.Errorf("failed to create processor: %w", err)
			}
			defer proc.Close()

			result, err := proc.ProcessEvent(ctx, eventPath)
			if err != nil {
				return fmt.Errorf("processing failed: %w", err)
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventPath, "event-path", "", "path to the event JSON payload (defaults to $GITHUB_EVENT_PATH)")

	return cmd
}

func printResult(result *models.ProcessResult) {
	if result.Skipped {
		fmt.Printf("Skipped: %s\n", result.SkipReason)
		return
	}

	fmt.Printf("Processed %s #%d\n", result.Kind, result.ItemNumber)

	if result.Duplicate != nil {
		fmt.Printf("  Duplicate verdict: %s (confidence %.0f%%, canonical #%d)\n",
			result.Duplicate.Classification, result.Duplicate.Confidence*100, result.Duplicate.CanonicalItem)
	}
	if result.Review != nil {
		fmt.Printf("  Review risk: %s\n", result.Review.RiskLevel)
	}
	if result.Kind == models.KindPull {
		fmt.Printf("  Readiness score: %d/100\n", result.Score)
	}
	if result.CommentPosted {
		fmt.Println("  Comment posted")
	}
	if len(result.LabelsAdded) > 0 {
		fmt.Printf("  Labels added: %s\n", strings.Join(result.LabelsAdded, ", "))
	}
}
