package dedupe

import (
	"context"
	"fmt"
	"testing"

	"github.com/siftbot/gh-sift/pkg/models"
)

// fakeSource returns canned candidates
type fakeSource struct {
	candidates []models.Candidate
	err        error
}

func (f *fakeSource) Candidates(ctx context.Context, item *models.Item, summary *models.ItemSummary, vector []float32) ([]models.Candidate, error) {
	return f.candidates, f.err
}

// fakeLLM returns a canned response and counts calls
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.CompleteWithSystem(ctx, "", prompt)
}

func (f *fakeLLM) CompleteWithSystem(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func testItem() *models.Item {
	return &models.Item{
		Org:    "myorg",
		Repo:   "myrepo",
		Number: 42,
		Kind:   models.KindIssue,
		Title:  "Login fails on Safari",
		State:  "open",
	}
}

func TestDetect_BelowThresholdNoLLMCall(t *testing.T) {
	source := &fakeSource{candidates: []models.Candidate{
		{Item: models.Item{Number: 12, Title: "Safari login broken"}, Similarity: 0.84},
	}}
	llm := &fakeLLM{response: `{"classification": "duplicate", "confidence": 0.9}`}

	d := NewDetector(source, llm, 0.85)
	result, err := d.Detect(context.Background(), testItem(), models.DefaultSummary("Login fails on Safari"), []float32{1})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if result != nil {
		t.Errorf("Detect() = %+v, want nil when best similarity below threshold", result)
	}
	if llm.calls != 0 {
		t.Errorf("LLM called %d times, want 0", llm.calls)
	}
}

func TestDetect_ClassifiesTopCandidateOnly(t *testing.T) {
	source := &fakeSource{candidates: []models.Candidate{
		{Item: models.Item{Number: 8, Title: "Chrome login slow"}, Similarity: 0.86},
		{Item: models.Item{Number: 12, Title: "Safari login broken"}, Similarity: 0.95},
		{Item: models.Item{Number: 30, Title: "Login button misaligned"}, Similarity: 0.88},
	}}
	llm := &fakeLLM{response: `{"classification": "duplicate", "confidence": 0.92, "canonical_item": 12, "reasoning": "same problem"}`}

	d := NewDetector(source, llm, 0.85)
	result, err := d.Detect(context.Background(), testItem(), models.DefaultSummary("Login fails on Safari"), []float32{1})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if result == nil {
		t.Fatalf("Detect() = nil, want result")
	}
	if result.Classification != models.ClassDuplicate {
		t.Errorf("Classification = %v, want duplicate", result.Classification)
	}
	if result.CanonicalItem != 12 {
		t.Errorf("CanonicalItem = %d, want 12", result.CanonicalItem)
	}
	if result.Similarity != 0.95 {
		t.Errorf("Similarity = %v, want 0.95 (top candidate)", result.Similarity)
	}
	if llm.calls != 1 {
		t.Errorf("LLM called %d times, want 1", llm.calls)
	}
}

func TestDetect_DefaultsOnMalformedResponse(t *testing.T) {
	source := &fakeSource{candidates: []models.Candidate{
		{Item: models.Item{Number: 12, Title: "Safari login broken"}, Similarity: 0.95},
	}}
	llm := &fakeLLM{response: "these look pretty similar to me"}

	d := NewDetector(source, llm, 0.85)
	result, err := d.Detect(context.Background(), testItem(), models.DefaultSummary("Login fails on Safari"), []float32{1})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if result == nil {
		t.Fatalf("Detect() = nil, want degraded result")
	}
	if result.Classification != models.ClassDistinct {
		t.Errorf("Classification = %v, want distinct", result.Classification)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	// Canonical item falls back to the top candidate
	if result.CanonicalItem != 12 {
		t.Errorf("CanonicalItem = %d, want 12", result.CanonicalItem)
	}
}

func TestDetect_DefaultsOnLLMError(t *testing.T) {
	source := &fakeSource{candidates: []models.Candidate{
		{Item: models.Item{Number: 12}, Similarity: 0.9},
	}}
	llm := &fakeLLM{err: fmt.Errorf("rate limited")}

	d := NewDetector(source, llm, 0.85)
	result, err := d.Detect(context.Background(), testItem(), models.DefaultSummary("t"), []float32{1})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if result == nil || result.Classification != models.ClassDistinct || result.Confidence != 0 {
		t.Errorf("Detect() = %+v, want distinct/0", result)
	}
}

func TestDetect_NoCandidates(t *testing.T) {
	llm := &fakeLLM{}
	d := NewDetector(&fakeSource{}, llm, 0.85)

	result, err := d.Detect(context.Background(), testItem(), models.DefaultSummary("t"), []float32{1})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if result != nil {
		t.Errorf("Detect() = %+v, want nil", result)
	}
	if llm.calls != 0 {
		t.Errorf("LLM called %d times, want 0", llm.calls)
	}
}

func TestDetect_SourceError(t *testing.T) {
	d := NewDetector(&fakeSource{err: fmt.Errorf("store unreachable")}, &fakeLLM{}, 0.85)

	if _, err := d.Detect(context.Background(), testItem(), models.DefaultSummary("t"), []float32{1}); err == nil {
		t.Errorf("Detect() expected source error to propagate")
	}
}
