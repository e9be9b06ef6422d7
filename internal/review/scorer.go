package review

import (
	"log"
	"math"
	"strings"

	"github.com/siftbot/gh-sift/pkg/models"
)

// highRiskKeywords flag changed paths that touch sensitive areas
var highRiskKeywords = []string{
	"auth", "security", "payment", "billing", "database",
	"migration", "schema", "config", "env", "deployment", "infra",
}

// Input holds the static facts the scorer combines
type Input struct {
	Additions   int
	Deletions   int
	Description string
	Files       []string
	CIPassing   bool
}

// CalculateScore combines static heuristics with the optional LLM
// readiness estimate into a single 0-100 value. Every contributing term
// is logged so a score can always be explained after the fact.
func CalculateScore(in Input, review *models.PRReviewResult) int {
	score := 50
	log.Printf("score: base %d", score)

	if in.CIPassing {
		score += 20
		log.Printf("score: +20 CI passing")
	}

	testsPresent := HasTestPath(in.Files)
	if testsPresent {
		score += 15
		log.Printf("score: +15 tests added")
	}

	diff := in.Additions + in.Deletions
	if diff > 0 && diff < 300 {
		score += 10
		log.Printf("score: +10 small diff (%d lines)", diff)
	} else if diff > 1000 {
		score -= 10
		log.Printf("score: -10 large diff (%d lines)", diff)
	}

	if len(in.Description) > 300 {
		score += 10
		log.Printf("score: +10 substantial description (%d chars)", len(in.Description))
	}

	if risky := firstHighRiskPath(in.Files); risky != "" {
		score -= 15
		log.Printf("score: -15 high-risk path (%s)", risky)
	}

	if !testsPresent {
		score -= 20
		log.Printf("score: -20 no test-like path")
	}

	if review != nil {
		adj := int(math.Round(float64(review.ReadinessScore-50) * 0.3))
		score += adj
		log.Printf("score: %+d LLM readiness adjustment (readiness %d)", adj, review.ReadinessScore)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	log.Printf("score: final %d", score)
	return score
}

// HasTestPath reports whether any changed path looks like a test file
func HasTestPath(files []string) bool {
	for _, f := range files {
		if isTestPath(f) {
			return true
		}
	}
	return false
}

// isTestPath matches .test./.spec. filenames and test(s)/spec
// directory segments
func isTestPath(path string) bool {
	lower := strings.ToLower(path)

	if strings.Contains(lower, ".test.") || strings.Contains(lower, ".spec.") {
		return true
	}
	// Go convention
	if strings.HasSuffix(lower, "_test.go") {
		return true
	}

	for _, seg := range strings.Split(lower, "/") {
		if seg == "test" || seg == "tests" || seg == "spec" {
			return true
		}
	}

	return false
}

// firstHighRiskPath returns the first changed path matching a
// high-risk keyword, or empty
func firstHighRiskPath(files []string) string {
	for _, f := range files {
		lower := strings.ToLower(f)
		for _, kw := range highRiskKeywords {
			if strings.Contains(lower, kw) {
				return f
			}
		}
	}
	return ""
}

// HasHighRiskPath reports whether any changed path matches a high-risk keyword
func HasHighRiskPath(files []string) bool {
	return firstHighRiskPath(files) != ""
}
