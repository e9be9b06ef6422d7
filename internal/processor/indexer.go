package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/siftbot/gh-sift/internal/config"
	"github.com/siftbot/gh-sift/internal/embedding"
	"github.com/siftbot/gh-sift/internal/github"
	"github.com/siftbot/gh-sift/internal/llm"
	"github.com/siftbot/gh-sift/internal/summarizer"
	"github.com/siftbot/gh-sift/internal/vectordb"
	"github.com/siftbot/gh-sift/pkg/models"
)

// Indexer handles bulk indexing of issues and pull requests into the
// vector store. Only meaningful in stateful mode.
type Indexer struct {
	cfg      *config.Config
	gh       *github.Client
	embedder *embedding.FallbackProvider
	llm      llm.Provider
	sum      *summarizer.Summarizer
	vdb      *vectordb.Client
	dryRun   bool
}

// NewIndexer creates a new bulk indexer
func NewIndexer(cfg *config.Config, dryRun bool) (*Indexer, error) {
	if !cfg.Stateful() {
		return nil, fmt.Errorf("indexing requires a configured vector store (qdrant.url)")
	}

	gh, err := github.NewClient()
	if err != nil {
		return nil, err
	}

	embedder, err := embedding.NewFallbackProvider(&cfg.Embedding)
	if err != nil {
		return nil, err
	}

	llmProvider, err := llm.NewProvider(&cfg.LLM)
	if err != nil {
		return nil, err
	}

	vdb, err := vectordb.NewClient(&cfg.Qdrant)
	if err != nil {
		return nil, err
	}

	return &Indexer{
		cfg:      cfg,
		gh:       gh,
		embedder: embedder,
		llm:      llmProvider,
		sum:      summarizer.New(llmProvider, embedder),
		vdb:      vdb,
		dryRun:   dryRun,
	}, nil
}

// Close releases resources
func (idx *Indexer) Close() error {
	idx.embedder.Close()
	idx.llm.Close()
	return idx.vdb.Close()
}

// IndexRepo indexes all items from a repository
func (idx *Indexer) IndexRepo(ctx context.Context, fullRepo string, batchSize int) (*models.IndexStats, error) {
	start := time.Now()
	stats := &models.IndexStats{}

	org, repo, err := github.ParseRepo(fullRepo)
	if err != nil {
		return nil, err
	}

	collection := vectordb.CollectionName(org)
	if !idx.dryRun {
		if err := idx.vdb.EnsureCollection(ctx, collection, idx.cfg.Embedding.Primary.Dimensions); err != nil {
			return nil, fmt.Errorf("failed to ensure collection: %w", err)
		}
	}

	fmt.Printf("Fetching items from %s...\n", fullRepo)
	items, err := idx.gh.ListAllItems(ctx, org, repo, "all", batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	stats.TotalItems = len(items)
	fmt.Printf("Found %d items\n", len(items))

	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[i:end]

		if err := idx.indexBatch(ctx, collection, batch); err != nil {
			fmt.Printf("Warning: batch %d-%d failed: %v\n", i, end, err)
			stats.Errors += len(batch)
			continue
		}

		stats.Indexed += len(batch)
		fmt.Printf("Indexed %d/%d items\n", stats.Indexed, stats.TotalItems)
	}

	stats.DurationMs = int(time.Since(start).Milliseconds())
	return stats, nil
}

// indexBatch summarizes, embeds and upserts a batch of items
func (idx *Indexer) indexBatch(ctx context.Context, collection string, items []*models.Item) error {
	texts := make([]string, len(items))
	summaries := make([]string, len(items))
	for i, item := range items {
		summary := idx.sum.Summarize(ctx, item.Title, item.Body, nil)
		summaries[i] = summary.ProblemStatement
		texts[i] = embedding.QueryText(item.Title, summary.ProblemStatement)
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if idx.dryRun {
		return nil
	}

	if err := idx.vdb.UpsertBatch(ctx, collection, items, summaries, vectors); err != nil {
		return fmt.Errorf("failed to upsert batch: %w", err)
	}

	return nil
}

// IndexSingleItem indexes one item
func (idx *Indexer) IndexSingleItem(ctx context.Context, item *models.Item) error {
	collection := vectordb.CollectionName(item.Org)

	summary := idx.sum.Summarize(ctx, item.Title, item.Body, nil)
	vector, err := idx.embedder.Embed(ctx, embedding.QueryText(item.Title, summary.ProblemStatement))
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	if idx.dryRun {
		return nil
	}

	if err := idx.vdb.Upsert(ctx, collection, item, summary.ProblemStatement, vector); err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}

	return nil
}

// DeleteItem removes an item from the index
func (idx *Indexer) DeleteItem(ctx context.Context, org, repo string, number int, kind models.ItemKind) error {
	if idx.dryRun {
		return nil
	}

	collection := vectordb.CollectionName(org)
	id := models.ItemUUID(org, repo, number, kind)
	return idx.vdb.Delete(ctx, collection, id)
}
