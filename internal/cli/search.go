package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/siftbot/gh-sift/internal/processor"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		repo  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search indexed items by text (debugging/testing)",
		Long:  `Search the vector store for items semantically similar to a free-text query.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			query := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			searcher, err := processor.NewSearcher(cfg)
			if err != nil {
				return fmt.Errorf("failed to create searcher: %w", err)
			}
			defer searcher.Close()

			org := ""
			if parts := strings.Split(repo, "/"); len(parts) == 2 {
				org = parts[0]
			}
			if org == "" {
				return fmt.Errorf("pass --repo owner/repo to select the collection")
			}

			results, err := searcher.Search(ctx, query, org, limit)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if len(results) == 0 {
				fmt.Println("No similar items found")
				return nil
			}

			fmt.Printf("Found %d similar items:\n\n", len(results))
			for i, r := range results {
				status := "Open"
				if r.Item.IsClosed() {
					status = "Closed"
				}
				fmt.Printf("%d. #%d - %s\n", i+1, r.Item.Number, r.Item.Title)
				fmt.Printf("   Repo: %s | Similarity: %.1f%% | Status: %s\n",
					r.Item.FullRepo(), r.Similarity*100, status)
				fmt.Printf("   %s\n\n", r.Item.URL)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "limit search to repository (owner/repo)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results to return")

	return cmd
}
