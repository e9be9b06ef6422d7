package summarizer

import (
	"context"
	"fmt"
	"log"

	"github.com/siftbot/gh-sift/internal/embedding"
	"github.com/siftbot/gh-sift/internal/llm"
	"github.com/siftbot/gh-sift/internal/prompt"
	"github.com/siftbot/gh-sift/pkg/models"
)

const summarySystem = `You are a triage assistant that condenses GitHub issues and pull requests
into structured summaries used for duplicate detection. Respond with strict JSON only.`

// Summarizer produces structured summaries and embeddings for items
type Summarizer struct {
	llm      llm.Provider
	embedder embedding.Provider
}

// New creates a new summarizer
func New(llmProvider llm.Provider, embedder embedding.Provider) *Summarizer {
	return &Summarizer{
		llm:      llmProvider,
		embedder: embedder,
	}
}

// Summarize produces a structured summary of an item. Failures never
// propagate: any call or parse error degrades to the default summary
// with the raw title as the problem statement.
func (s *Summarizer) Summarize(ctx context.Context, title, body string, files []string) *models.ItemSummary {
	p, err := prompt.Summary(prompt.SummaryData{
		Title: title,
		Body:  embedding.TruncateText(body, 4000),
		Files: files,
	})
	if err != nil {
		log.Printf("Warning: failed to render summary prompt: %v", err)
		return models.DefaultSummary(title)
	}

	response, err := s.llm.CompleteWithSystem(ctx, summarySystem, p)
	if err != nil {
		log.Printf("Warning: summary generation failed: %v", err)
		return models.DefaultSummary(title)
	}

	var summary models.ItemSummary
	if err := llm.Decode(response, &summary); err != nil {
		log.Printf("Warning: failed to parse summary response: %v", err)
		return models.DefaultSummary(title)
	}

	summary.Normalize(title)
	return &summary
}

// Embed turns text into a fixed-length vector. Unlike Summarize the
// error is returned: a missing embedding makes duplicate detection
// meaningless, so callers treat it as fatal.
func (s *Summarizer) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	return vector, nil
}
