package cli

import (
	"context"
	"fmt"

	"github.com/siftbot/gh-sift/internal/processor"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var (
		repo  string
		since string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Re-index recently updated items",
		Long:  `Synchronize the vector store with items that changed since a cutoff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			syncer, err := processor.NewSyncer(cfg, dryRun)
			if err != nil {
				return fmt.Errorf("failed to create syncer: %w", err)
			}
			defer syncer.Close()

			stats, err := syncer.SyncRepo(ctx, repo, since)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Printf("Synced %d items (%d updated, %d errors) in %dms\n",
				stats.TotalItems, stats.Indexed, stats.Errors, stats.DurationMs)

			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository to sync (owner/repo)")
	cmd.Flags().StringVar(&since, "since", "24h", "sync items updated since (e.g., 24h, 7d)")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
