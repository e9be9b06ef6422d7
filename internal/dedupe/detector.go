package dedupe

import (
	"context"
	"log"
	"sort"

	"github.com/siftbot/gh-sift/internal/llm"
	"github.com/siftbot/gh-sift/internal/prompt"
	"github.com/siftbot/gh-sift/pkg/models"
)

const classifySystem = `You are a triage assistant that decides whether two GitHub items describe
the same underlying problem. Respond with strict JSON only.`

// Detector orchestrates candidate sourcing and LLM classification
type Detector struct {
	source    CandidateSource
	llm       llm.Provider
	threshold float64
}

// NewDetector creates a duplicate detector over the given source
func NewDetector(source CandidateSource, llmProvider llm.Provider, threshold float64) *Detector {
	return &Detector{
		source:    source,
		llm:       llmProvider,
		threshold: threshold,
	}
}

// Detect finds the most similar candidate and asks the LLM to classify
// the pair. A nil result means no candidate met the similarity
// threshold; in that case no classification call is made.
func (d *Detector) Detect(ctx context.Context, item *models.Item, summary *models.ItemSummary, vector []float32) (*models.DuplicateResult, error) {
	candidates, err := d.source.Candidates(ctx, item, summary, vector)
	if err != nil {
		return nil, err
	}

	var surviving []models.Candidate
	for _, c := range candidates {
		if c.Similarity >= d.threshold {
			surviving = append(surviving, c)
		}
	}

	if len(surviving) == 0 {
		return nil, nil
	}

	sort.Slice(surviving, func(i, j int) bool {
		return surviving[i].Similarity > surviving[j].Similarity
	})

	// One classification call total: the top candidate only, keeping
	// LLM cost and latency bounded.
	top := surviving[0]
	result := d.classify(ctx, item, summary, &top)
	result.Similarity = top.Similarity
	if result.CanonicalItem == 0 {
		result.CanonicalItem = top.Item.Number
	}

	return result, nil
}

// classify asks the LLM for a verdict on the pair. Any failure degrades
// to distinct with zero confidence.
func (d *Detector) classify(ctx context.Context, item *models.Item, summary *models.ItemSummary, candidate *models.Candidate) *models.DuplicateResult {
	p, err := prompt.Classify(prompt.ClassifyData{
		Title:            item.Title,
		Problem:          summary.ProblemStatement,
		CandidateNumber:  candidate.Item.Number,
		CandidateTitle:   candidate.Item.Title,
		CandidateSummary: candidate.Summary,
		Similarity:       candidate.Similarity,
	})
	if err != nil {
		log.Printf("Warning: failed to render classification prompt: %v", err)
		return models.DefaultDuplicateResult()
	}

	response, err := d.llm.CompleteWithSystem(ctx, classifySystem, p)
	if err != nil {
		log.Printf("Warning: duplicate classification failed: %v", err)
		return models.DefaultDuplicateResult()
	}

	var result models.DuplicateResult
	if err := llm.Decode(response, &result); err != nil {
		log.Printf("Warning: failed to parse classification response: %v", err)
		return models.DefaultDuplicateResult()
	}

	result.Normalize()
	return &result
}
