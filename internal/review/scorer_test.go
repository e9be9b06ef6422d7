package review

import (
	"fmt"
	"testing"

	"github.com/siftbot/gh-sift/pkg/models"
)

func TestCalculateScore_DiffBoundaries(t *testing.T) {
	// No files at all: -20 for missing tests in every case
	tests := []struct {
		diff int
		want int
	}{
		{0, 30},     // no bonus for an empty diff
		{299, 40},   // +10 small diff
		{300, 30},   // boundary: no bonus
		{1000, 30},  // boundary: no penalty
		{1001, 20},  // -10 large diff
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("diff_%d", tt.diff), func(t *testing.T) {
			got := CalculateScore(Input{Additions: tt.diff}, nil)
			if got != tt.want {
				t.Errorf("CalculateScore(diff=%d) = %d, want %d", tt.diff, got, tt.want)
			}
		})
	}
}

func TestCalculateScore_SpecWorked(t *testing.T) {
	// 50 +15 tests +10 small diff +10 description -15 auth path = 70
	desc := make([]byte, 400)
	for i := range desc {
		desc[i] = 'x'
	}

	got := CalculateScore(Input{
		Additions:   50,
		Deletions:   10,
		Description: string(desc),
		Files:       []string{"src/auth/session.ts", "tests/session.test.ts"},
	}, nil)

	if got != 70 {
		t.Errorf("CalculateScore() = %d, want 70", got)
	}
}

func TestCalculateScore_AddingTestsNeverDecreases(t *testing.T) {
	base := Input{
		Additions:   100,
		Description: "short",
		Files:       []string{"src/main.go"},
		CIPassing:   true,
	}
	withTests := base
	withTests.Files = []string{"src/main.go", "src/main_test.go"}

	without := CalculateScore(base, nil)
	with := CalculateScore(withTests, nil)

	if with < without {
		t.Errorf("adding tests decreased score: %d -> %d", without, with)
	}
	// +15 for tests and the -20 penalty lifts
	if with-without != 35 {
		t.Errorf("test delta = %d, want 35", with-without)
	}
}

func TestCalculateScore_Clamped(t *testing.T) {
	// Everything bad
	low := CalculateScore(Input{
		Additions: 5000,
		Files:     []string{"infra/deployment/config/env/database/migration.sql"},
	}, &models.PRReviewResult{ReadinessScore: 0})
	if low < 0 {
		t.Errorf("score below 0: %d", low)
	}

	// Everything good
	desc := make([]byte, 500)
	high := CalculateScore(Input{
		Additions:   100,
		Description: string(desc),
		Files:       []string{"pkg/feature.go", "pkg/feature_test.go"},
		CIPassing:   true,
	}, &models.PRReviewResult{ReadinessScore: 100})
	if high > 100 {
		t.Errorf("score above 100: %d", high)
	}
}

func TestCalculateScore_LLMAdjustment(t *testing.T) {
	base := Input{Files: []string{"pkg/a.go", "pkg/a_test.go"}, Additions: 10}
	// 50 +15 +10 = 75 before adjustment

	tests := []struct {
		name      string
		readiness int
		want      int
	}{
		{"neutral readiness", 50, 75},
		{"max readiness", 100, 90},  // +15
		{"min readiness", 0, 60},    // -15
		{"rounding", 55, 77},        // round(1.5) = 2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateScore(base, &models.PRReviewResult{ReadinessScore: tt.readiness})
			if got != tt.want {
				t.Errorf("CalculateScore(readiness=%d) = %d, want %d", tt.readiness, got, tt.want)
			}
		})
	}
}

func TestHasTestPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tests/session.test.ts", true},
		{"src/app.spec.js", true},
		{"spec/models/user_spec.rb", true},
		{"internal/review/scorer_test.go", true},
		{"src/auth/session.ts", false},
		{"testimonials/page.tsx", false}, // "test" substring is not a segment
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := HasTestPath([]string{tt.path}); got != tt.want {
				t.Errorf("HasTestPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestHasHighRiskPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"src/auth/session.ts", true},
		{"db/migration/001_init.sql", true},
		{"config/production.yaml", true},
		{"Payment/processor.cs", true}, // case-insensitive
		{"src/ui/button.tsx", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := HasHighRiskPath([]string{tt.path}); got != tt.want {
				t.Errorf("HasHighRiskPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
