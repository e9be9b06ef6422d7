package dedupe

import (
	"context"
	"fmt"
	"log"

	"github.com/siftbot/gh-sift/internal/embedding"
	"github.com/siftbot/gh-sift/internal/summarizer"
	"github.com/siftbot/gh-sift/internal/vectordb"
	"github.com/siftbot/gh-sift/pkg/models"
)

// CandidateSource produces duplicate candidates for an item. Two
// implementations exist: StoreSource backed by the vector store
// (stateful mode) and RecentSource backed by a bounded scan of recent
// items (stateless mode). The mode is chosen once at startup.
type CandidateSource interface {
	Candidates(ctx context.Context, item *models.Item, summary *models.ItemSummary, vector []float32) ([]models.Candidate, error)
}

// ItemLister fetches recent items from the tracker
type ItemLister interface {
	ListRecent(ctx context.Context, org, repo string, kind models.ItemKind, limit int) ([]*models.Item, error)
}

// StoreSource sources candidates from the vector store. The current
// item is upserted first, so the store accumulates history across runs.
type StoreSource struct {
	vdb           *vectordb.Client
	dimensions    int
	maxCandidates int
	dryRun        bool
}

// NewStoreSource creates a stateful candidate source
func NewStoreSource(vdb *vectordb.Client, dimensions, maxCandidates int, dryRun bool) *StoreSource {
	return &StoreSource{
		vdb:           vdb,
		dimensions:    dimensions,
		maxCandidates: maxCandidates,
		dryRun:        dryRun,
	}
}

// Candidates upserts the current item and queries its nearest open
// neighbors of the same repo and kind
func (s *StoreSource) Candidates(ctx context.Context, item *models.Item, summary *models.ItemSummary, vector []float32) ([]models.Candidate, error) {
	collection := vectordb.CollectionName(item.Org)

	if !s.dryRun {
		if err := s.vdb.EnsureCollection(ctx, collection, s.dimensions); err != nil {
			return nil, fmt.Errorf("failed to ensure collection: %w", err)
		}
		if err := s.vdb.Upsert(ctx, collection, item, summary.ProblemStatement, vector); err != nil {
			return nil, fmt.Errorf("failed to upsert item: %w", err)
		}
	}

	return s.vdb.SearchNearest(ctx, collection, vector, item, s.maxCandidates)
}

// RecentSource sources candidates from a bounded scan of recent items,
// summarizing and embedding each on every run. Nothing is cached
// between runs.
type RecentSource struct {
	lister        ItemLister
	summarizer    *summarizer.Summarizer
	maxCandidates int
}

// NewRecentSource creates a stateless candidate source
func NewRecentSource(lister ItemLister, sum *summarizer.Summarizer, maxCandidates int) *RecentSource {
	return &RecentSource{
		lister:        lister,
		summarizer:    sum,
		maxCandidates: maxCandidates,
	}
}

// Candidates fetches the most recent items of the same kind and scores
// each against the current item's embedding. Latency grows linearly
// with the candidate cap; one summarize and one embed call per item.
func (s *RecentSource) Candidates(ctx context.Context, item *models.Item, summary *models.ItemSummary, vector []float32) ([]models.Candidate, error) {
	recent, err := s.lister.ListRecent(ctx, item.Org, item.Repo, item.Kind, s.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent items: %w", err)
	}

	var candidates []models.Candidate
	for _, other := range recent {
		if other.Number == item.Number {
			continue
		}
		if other.IsClosed() {
			continue
		}

		otherSummary := s.summarizer.Summarize(ctx, other.Title, other.Body, nil)
		otherVector, err := s.summarizer.Embed(ctx, embedding.QueryText(other.Title, otherSummary.ProblemStatement))
		if err != nil {
			return nil, err
		}

		similarity, err := summarizer.CosineSimilarity(vector, otherVector)
		if err != nil {
			log.Printf("Warning: skipping candidate #%d: %v", other.Number, err)
			continue
		}

		candidates = append(candidates, models.Candidate{
			Item:       *other,
			Summary:    otherSummary.ProblemStatement,
			Similarity: similarity,
		})
	}

	return candidates, nil
}
