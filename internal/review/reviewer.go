package review

import (
	"context"
	"fmt"

	"github.com/siftbot/gh-sift/internal/embedding"
	"github.com/siftbot/gh-sift/internal/llm"
	"github.com/siftbot/gh-sift/internal/prompt"
	"github.com/siftbot/gh-sift/pkg/models"
)

const reviewSystem = `You are a senior engineer reviewing pull requests for merge readiness.
Be direct and concrete. Respond with strict JSON only.`

// Reviewer produces a structured PR review via a single LLM call
type Reviewer struct {
	llm llm.Provider
}

// NewReviewer creates a new PR reviewer
func NewReviewer(llmProvider llm.Provider) *Reviewer {
	return &Reviewer{llm: llmProvider}
}

// Review asks the LLM for a structured assessment of a pull request.
// Errors are returned so the caller can log and continue
// heuristics-only; fields of a successful parse are normalized.
func (r *Reviewer) Review(ctx context.Context, pr *models.Item, files []string) (*models.PRReviewResult, error) {
	p, err := prompt.Review(prompt.ReviewData{
		Title:       pr.Title,
		Description: embedding.TruncateText(pr.Body, 4000),
		Files:       files,
		Additions:   pr.Additions,
		Deletions:   pr.Deletions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render review prompt: %w", err)
	}

	response, err := r.llm.CompleteWithSystem(ctx, reviewSystem, p)
	if err != nil {
		return nil, fmt.Errorf("review generation failed: %w", err)
	}

	var result models.PRReviewResult
	if err := llm.Decode(response, &result); err != nil {
		return nil, err
	}

	result.Normalize()
	return &result, nil
}
