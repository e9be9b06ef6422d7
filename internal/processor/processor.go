package processor

import (
	"context"
	"fmt"
	"log"

	"github.com/siftbot/gh-sift/internal/config"
	"github.com/siftbot/gh-sift/internal/dedupe"
	"github.com/siftbot/gh-sift/internal/embedding"
	"github.com/siftbot/gh-sift/internal/github"
	"github.com/siftbot/gh-sift/internal/llm"
	"github.com/siftbot/gh-sift/internal/review"
	"github.com/siftbot/gh-sift/internal/summarizer"
	"github.com/siftbot/gh-sift/internal/vectordb"
	"github.com/siftbot/gh-sift/pkg/models"
)

// Processor handles single event processing
type Processor struct {
	cfg      *config.Config
	gh       *github.Client
	embedder *embedding.FallbackProvider
	llm      llm.Provider
	vdb      *vectordb.Client
	sum      *summarizer.Summarizer
	detector *dedupe.Detector
	reviewer *review.Reviewer
	dryRun   bool
}

// NewProcessor creates a new event processor. The candidate source is
// chosen once here: stateful against the vector store when a Qdrant URL
// is configured, otherwise a bounded scan of recent items.
func NewProcessor(cfg *config.Config, dryRun bool) (*Processor, error) {
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

	sum := summarizer.New(llmProvider, embedder)

	var vdb *vectordb.Client
	var source dedupe.CandidateSource
	if cfg.Stateful() {
		vdb, err = vectordb.NewClient(&cfg.Qdrant)
		if err != nil {
			return nil, err
		}
		source = dedupe.NewStoreSource(vdb, cfg.Embedding.Primary.Dimensions, cfg.Detection.MaxCandidates, dryRun)
	} else {
		source = dedupe.NewRecentSource(gh, sum, cfg.Detection.MaxCandidates)
	}

	return &Processor{
		cfg:      cfg,
		gh:       gh,
		embedder: embedder,
		llm:      llmProvider,
		vdb:      vdb,
		sum:      sum,
		detector: dedupe.NewDetector(source, llmProvider, cfg.Detection.SimilarityThreshold),
		reviewer: review.NewReviewer(llmProvider),
		dryRun:   dryRun,
	}, nil
}

// Close releases resources
func (p *Processor) Close() error {
	p.embedder.Close()
	p.llm.Close()
	if p.vdb != nil {
		return p.vdb.Close()
	}
	return nil
}

// ProcessEvent processes a GitHub Action event
func (p *Processor) ProcessEvent(ctx context.Context, eventPath string) (*models.ProcessResult, error) {
	event, err := github.ParseEventFile(eventPath)
	if err != nil {
		return nil, err
	}

	item := event.ToItem()
	if item == nil {
		return &models.ProcessResult{
			Skipped:    true,
			SkipReason: "event carries no issue or pull request",
		}, nil
	}

	// Route based on event type and action
	switch {
	case event.IsIssueEvent() && (event.IsOpenedAction() || event.IsEditedAction()):
		return p.processIssue(ctx, item)
	case event.IsPullEvent() && event.IsOpenedAction():
		return p.processPullOpened(ctx, item, event.HeadSHA())
	case event.IsPullEvent() && event.IsSynchronizeAction():
		return p.processPullSynchronize(ctx, item, event.HeadSHA())
	default:
		log.Printf("skipping unhandled action %q on %s #%d", event.Action, item.Kind, item.Number)
		return &models.ProcessResult{
			ItemNumber: item.Number,
			Kind:       item.Kind,
			Skipped:    true,
			SkipReason: fmt.Sprintf("unhandled action: %s", event.Action),
		}, nil
	}
}

// processIssue runs duplicate detection on an opened or edited issue
func (p *Processor) processIssue(ctx context.Context, item *models.Item) (*models.ProcessResult, error) {
	result := &models.ProcessResult{ItemNumber: item.Number, Kind: item.Kind}

	skip, err := p.checkCooldown(ctx, item)
	if err != nil {
		return nil, err
	}
	if skip {
		result.Skipped = true
		result.SkipReason = "cooldown active"
		return result, nil
	}

	if err := p.runDedupe(ctx, item, result); err != nil {
		return nil, err
	}
	return result, nil
}

// processPullOpened runs duplicate detection followed by the readiness
// review on a new pull request
func (p *Processor) processPullOpened(ctx context.Context, item *models.Item, headSHA string) (*models.ProcessResult, error) {
	result := &models.ProcessResult{ItemNumber: item.Number, Kind: item.Kind}

	skip, err := p.checkCooldown(ctx, item)
	if err != nil {
		return nil, err
	}
	if skip {
		result.Skipped = true
		result.SkipReason = "cooldown active"
		return result, nil
	}

	if err := p.runDedupe(ctx, item, result); err != nil {
		return nil, err
	}
	if err := p.runReview(ctx, item, headSHA, result); err != nil {
		return nil, err
	}
	return result, nil
}

// processPullSynchronize re-runs only the readiness review when new
// commits land on an already-triaged pull request
func (p *Processor) processPullSynchronize(ctx context.Context, item *models.Item, headSHA string) (*models.ProcessResult, error) {
	result := &models.ProcessResult{ItemNumber: item.Number, Kind: item.Kind}

	if err := p.runReview(ctx, item, headSHA, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Processor) checkCooldown(ctx context.Context, item *models.Item) (bool, error) {
	skip, err := p.gh.ShouldSkipComment(ctx, item.Org, item.Repo, item.Number, p.cfg.Defaults.CommentCooldownHours)
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown: %w", err)
	}
	return skip, nil
}

// runDedupe summarizes, embeds and classifies the item against its
// candidates, posting a comment and label when a duplicate is found.
// LLM failures inside Detect degrade to a distinct verdict; an
// embedding failure aborts the run.
func (p *Processor) runDedupe(ctx context.Context, item *models.Item, result *models.ProcessResult) error {
	if !p.cfg.DetectionEnabled() {
		return nil
	}

	summary := p.sum.Summarize(ctx, item.Title, item.Body, nil)
	vector, err := p.sum.Embed(ctx, embedding.QueryText(item.Title, summary.ProblemStatement))
	if err != nil {
		return err
	}

	dup, err := p.detector.Detect(ctx, item, summary, vector)
	if err != nil {
		return fmt.Errorf("duplicate detection failed: %w", err)
	}
	if dup == nil {
		log.Printf("%s #%d: no candidates above threshold", item.Kind, item.Number)
		return nil
	}
	result.Duplicate = dup

	if dup.Classification == models.ClassDistinct {
		log.Printf("%s #%d: classified distinct from #%d", item.Kind, item.Number, dup.CanonicalItem)
		return nil
	}

	comment := FormatDuplicateComment(item, dup)
	if p.dryRun {
		log.Printf("dry-run: would post duplicate comment on %s #%d", item.Kind, item.Number)
		return nil
	}

	if err := p.gh.PostComment(ctx, item.Org, item.Repo, item.Number, comment); err != nil {
		log.Printf("Warning: failed to post duplicate comment: %v", err)
	} else {
		result.CommentPosted = true
	}

	if dup.Classification == models.ClassDuplicate {
		p.addLabel(ctx, item, p.cfg.Labels.Duplicate, result)
	}
	return nil
}

// runReview scores a pull request from its diff stats, changed files and
// CI status, with an optional LLM review feeding the final score. A
// failed review call logs a warning and the heuristics stand alone.
func (p *Processor) runReview(ctx context.Context, item *models.Item, headSHA string, result *models.ProcessResult) error {
	if !p.cfg.ReviewEnabled() {
		return nil
	}

	// Event payloads for some actions omit diff stats
	if item.Additions == 0 && item.Deletions == 0 {
		full, err := p.gh.GetPullRequest(ctx, item.Org, item.Repo, item.Number)
		if err != nil {
			return fmt.Errorf("failed to fetch pull request: %w", err)
		}
		item.Additions = full.Additions
		item.Deletions = full.Deletions
		item.ChangedFiles = full.ChangedFiles
	}

	files, err := p.gh.ListPullFiles(ctx, item.Org, item.Repo, item.Number)
	if err != nil {
		return fmt.Errorf("failed to list pull request files: %w", err)
	}

	if headSHA == "" {
		headSHA, err = p.gh.GetHeadSHA(ctx, item.Org, item.Repo, item.Number)
		if err != nil {
			return fmt.Errorf("failed to resolve head SHA: %w", err)
		}
	}
	ciPassing, err := p.gh.IsCIPassing(ctx, item.Org, item.Repo, headSHA)
	if err != nil {
		log.Printf("Warning: failed to check CI status: %v", err)
		ciPassing = false
	}

	llmReview, err := p.reviewer.Review(ctx, item, files)
	if err != nil {
		log.Printf("Warning: pull request review failed, scoring on heuristics only: %v", err)
		llmReview = nil
	}
	result.Review = llmReview

	score := review.CalculateScore(review.Input{
		Additions:   item.Additions,
		Deletions:   item.Deletions,
		Description: item.Body,
		Files:       files,
		CIPassing:   ciPassing,
	}, llmReview)
	result.Score = score

	comment := FormatReviewComment(llmReview, score, files, ciPassing)
	if p.dryRun {
		log.Printf("dry-run: would post review comment on pr #%d (score %d)", item.Number, score)
		return nil
	}

	if err := p.gh.PostComment(ctx, item.Org, item.Repo, item.Number, comment); err != nil {
		log.Printf("Warning: failed to post review comment: %v", err)
	} else {
		result.CommentPosted = true
	}

	if !review.HasTestPath(files) {
		p.addLabel(ctx, item, p.cfg.Labels.NeedsTests, result)
	}
	if review.HasHighRiskPath(files) || (llmReview != nil && llmReview.RiskLevel == models.RiskHigh) {
		p.addLabel(ctx, item, p.cfg.Labels.HighRisk, result)
	}
	if score >= p.cfg.Review.ReadyThreshold {
		p.addLabel(ctx, item, p.cfg.Labels.Ready, result)
	}
	return nil
}

// addLabel ensures the label exists then applies it, logging rather
// than failing the run when either call errors
func (p *Processor) addLabel(ctx context.Context, item *models.Item, label string, result *models.ProcessResult) {
	if err := p.gh.EnsureLabel(ctx, item.Org, item.Repo, label); err != nil {
		log.Printf("Warning: failed to ensure label %q: %v", label, err)
		return
	}
	if err := p.gh.AddLabels(ctx, item.Org, item.Repo, item.Number, []string{label}); err != nil {
		log.Printf("Warning: failed to add label %q: %v", label, err)
		return
	}
	result.LabelsAdded = append(result.LabelsAdded, label)
}
