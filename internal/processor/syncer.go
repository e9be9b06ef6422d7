package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/siftbot/gh-sift/internal/config"
	"github.com/siftbot/gh-sift/internal/github"
	"github.com/siftbot/gh-sift/internal/vectordb"
	"github.com/siftbot/gh-sift/pkg/models"
)

// Syncer re-indexes items that changed since a cutoff
type Syncer struct {
	cfg     *config.Config
	gh      *github.Client
	indexer *Indexer
	dryRun  bool
}

// NewSyncer creates a new syncer
func NewSyncer(cfg *config.Config, dryRun bool) (*Syncer, error) {
	gh, err := github.NewClient()
	if err != nil {
		return nil, err
	}

	indexer, err := NewIndexer(cfg, dryRun)
	if err != nil {
		return nil, err
	}

	return &Syncer{
		cfg:     cfg,
		gh:      gh,
		indexer: indexer,
		dryRun:  dryRun,
	}, nil
}

// Close releases resources
func (s *Syncer) Close() error {
	return s.indexer.Close()
}

// SyncRepo re-indexes items updated since a given duration
func (s *Syncer) SyncRepo(ctx context.Context, fullRepo string, sinceDuration string) (*models.IndexStats, error) {
	start := time.Now()
	stats := &models.IndexStats{}

	org, repo, err := github.ParseRepo(fullRepo)
	if err != nil {
		return nil, err
	}

	since, err := parseSinceDuration(sinceDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid since duration: %w", err)
	}

	collection := vectordb.CollectionName(org)
	if !s.dryRun {
		if err := s.indexer.vdb.EnsureCollection(ctx, collection, s.cfg.Embedding.Primary.Dimensions); err != nil {
			return nil, fmt.Errorf("failed to ensure collection: %w", err)
		}
	}

	fmt.Printf("Fetching items updated since %s...\n", since.Format(time.RFC3339))
	items, err := s.gh.ListIssues(ctx, org, repo, github.ListOptions{
		State: "all",
		Since: since,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	stats.TotalItems = len(items)
	fmt.Printf("Found %d updated items\n", len(items))

	for _, item := range items {
		if err := s.indexer.IndexSingleItem(ctx, item); err != nil {
			fmt.Printf("Warning: failed to sync #%d: %v\n", item.Number, err)
			stats.Errors++
			continue
		}
		stats.Indexed++
	}

	stats.DurationMs = int(time.Since(start).Milliseconds())
	return stats, nil
}

// parseSinceDuration parses duration strings like "24h", "7d"
func parseSinceDuration(s string) (time.Time, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		days := s[:len(s)-1]
		d, err := time.ParseDuration(days + "h")
		if err != nil {
			return time.Time{}, err
		}
		return time.Now().Add(-d * 24), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(-d), nil
}
