package processor

import (
	"context"
	"fmt"

	"github.com/siftbot/gh-sift/internal/config"
	"github.com/siftbot/gh-sift/internal/embedding"
	"github.com/siftbot/gh-sift/internal/vectordb"
	"github.com/siftbot/gh-sift/pkg/models"
)

// Searcher handles ad-hoc similarity searches against the vector store
type Searcher struct {
	cfg      *config.Config
	embedder *embedding.FallbackProvider
	vdb      *vectordb.Client
}

// NewSearcher creates a new searcher
func NewSearcher(cfg *config.Config) (*Searcher, error) {
	if !cfg.Stateful() {
		return nil, fmt.Errorf("search requires a configured vector store (qdrant.url)")
	}

	embedder, err := embedding.NewFallbackProvider(&cfg.Embedding)
	if err != nil {
		return nil, err
	}

	vdb, err := vectordb.NewClient(&cfg.Qdrant)
	if err != nil {
		return nil, err
	}

	return &Searcher{
		cfg:      cfg,
		embedder: embedder,
		vdb:      vdb,
	}, nil
}

// Close releases resources
func (s *Searcher) Close() error {
	s.embedder.Close()
	return s.vdb.Close()
}

// Search finds indexed items similar to a free-text query
func (s *Searcher) Search(ctx context.Context, query, org string, limit int) ([]models.Candidate, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	collection := vectordb.CollectionName(org)
	return s.vdb.SearchByText(ctx, collection, vector, limit, s.cfg.Detection.SimilarityThreshold)
}
