package cli

import (
	"context"
	"fmt"

	"github.com/siftbot/gh-sift/internal/processor"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var (
		repo      string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Bulk index existing items from a repository",
		Long:  `Index all existing issues and pull requests from a repository into the vector store for duplicate detection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			indexer, err := processor.NewIndexer(cfg, dryRun)
			if err != nil {
				return fmt.Errorf("failed to create indexer: %w", err)
			}
			defer indexer.Close()

			stats, err := indexer.IndexRepo(ctx, repo, batchSize)
			if err != nil {
				return fmt.Errorf("indexing failed: %w", err)
			}

			fmt.Printf("Indexed %d/%d items (%d skipped, %d errors) in %dms\n",
				stats.Indexed, stats.TotalItems, stats.Skipped, stats.Errors, stats.DurationMs)

			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository to index (owner/repo)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "number of items to fetch per batch")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
