package processor

import (
	"fmt"
	"strings"

	"github.com/siftbot/gh-sift/internal/github"
	"github.com/siftbot/gh-sift/internal/review"
	"github.com/siftbot/gh-sift/pkg/models"
)

// FormatDuplicateComment creates the duplicate or related comment for
// posting. Returns an empty string for a distinct verdict.
func FormatDuplicateComment(item *models.Item, result *models.DuplicateResult) string {
	if result == nil || result.Classification == models.ClassDistinct {
		return ""
	}

	var sb strings.Builder

	if result.Classification == models.ClassDuplicate {
		sb.WriteString(fmt.Sprintf("This %s looks like a duplicate of #%d.\n\n", kindNoun(item.Kind), result.CanonicalItem))
	} else {
		sb.WriteString(fmt.Sprintf("This %s appears related to #%d.\n\n", kindNoun(item.Kind), result.CanonicalItem))
	}

	sb.WriteString("| Classification | Confidence | Similarity |\n")
	sb.WriteString("|----------------|------------|------------|\n")
	sb.WriteString(fmt.Sprintf("| %s | %.0f%% | %.0f%% |\n\n",
		result.Classification, result.Confidence*100, result.Similarity*100))

	if result.Reasoning != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", result.Reasoning))
	}

	if result.Classification == models.ClassDuplicate {
		sb.WriteString(fmt.Sprintf("If #%d already covers this, consider closing one of the two and continuing the discussion in the other.\n\n", result.CanonicalItem))
	}

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("<sub>🤖 %s</sub>", github.BotSignature()))

	return sb.String()
}

// FormatReviewComment creates the pull request readiness comment. The
// llmReview may be nil when the review call failed, in which case only
// the heuristic score is reported.
func FormatReviewComment(llmReview *models.PRReviewResult, score int, files []string, ciPassing bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Readiness: %d/100\n\n", score))

	if llmReview != nil && llmReview.Summary != "" {
		sb.WriteString(llmReview.Summary)
		sb.WriteString("\n\n")
	}

	sb.WriteString("| Check | Result |\n")
	sb.WriteString("|-------|--------|\n")
	sb.WriteString(fmt.Sprintf("| CI | %s |\n", passFail(ciPassing)))
	sb.WriteString(fmt.Sprintf("| Tests changed | %s |\n", yesNo(review.HasTestPath(files))))
	sb.WriteString(fmt.Sprintf("| High-risk paths | %s |\n", yesNo(review.HasHighRiskPath(files))))
	if llmReview != nil {
		sb.WriteString(fmt.Sprintf("| Risk level | %s |\n", llmReview.RiskLevel))
	}
	sb.WriteString("\n")

	if llmReview != nil && len(llmReview.MissingElements) > 0 {
		sb.WriteString("Missing before this is ready:\n\n")
		for _, m := range llmReview.MissingElements {
			sb.WriteString(fmt.Sprintf("- %s\n", m))
		}
		sb.WriteString("\n")
	}

	if llmReview != nil && llmReview.DesignAlignment != "" {
		sb.WriteString(fmt.Sprintf("**Design notes:** %s\n\n", llmReview.DesignAlignment))
	}

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("<sub>🤖 %s</sub>", github.BotSignature()))

	return sb.String()
}

func kindNoun(kind models.ItemKind) string {
	if kind == models.KindPull {
		return "pull request"
	}
	return "issue"
}

func passFail(ok bool) string {
	if ok {
		return "🟢 passing"
	}
	return "🔴 not passing"
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
