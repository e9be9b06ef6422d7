package models

import (
	"testing"
)

func TestItemUUID(t *testing.T) {
	tests := []struct {
		org    string
		repo   string
		number int
		kind   ItemKind
	}{
		{"myorg", "myrepo", 123, KindIssue},
		{"other", "repo", 456, KindPull},
		{"test", "test", 1, KindIssue},
	}

	for _, tt := range tests {
		t.Run(tt.org+"/"+tt.repo, func(t *testing.T) {
			// UUID should be deterministic
			uuid1 := ItemUUID(tt.org, tt.repo, tt.number, tt.kind)
			uuid2 := ItemUUID(tt.org, tt.repo, tt.number, tt.kind)

			if uuid1 != uuid2 {
				t.Errorf("ItemUUID not deterministic: %v != %v", uuid1, uuid2)
			}

			if len(uuid1) != 36 {
				t.Errorf("ItemUUID invalid length: %d", len(uuid1))
			}
		})
	}
}

func TestItemUUID_KindDisambiguates(t *testing.T) {
	issueID := ItemUUID("org", "repo", 42, KindIssue)
	pullID := ItemUUID("org", "repo", 42, KindPull)

	if issueID == pullID {
		t.Errorf("issue and PR with same number produced same UUID")
	}
}

func TestItem_FullRepo(t *testing.T) {
	item := &Item{
		Org:  "myorg",
		Repo: "myrepo",
	}

	if item.FullRepo() != "myorg/myrepo" {
		t.Errorf("FullRepo() = %v, want myorg/myrepo", item.FullRepo())
	}
}

func TestDuplicateResult_Normalize(t *testing.T) {
	tests := []struct {
		name       string
		in         DuplicateResult
		wantClass  DuplicateClass
		wantScore  float64
	}{
		{
			name:      "valid duplicate",
			in:        DuplicateResult{Classification: ClassDuplicate, Confidence: 0.9},
			wantClass: ClassDuplicate,
			wantScore: 0.9,
		},
		{
			name:      "unknown class defaults to distinct",
			in:        DuplicateResult{Classification: "maybe", Confidence: 0.7},
			wantClass: ClassDistinct,
			wantScore: 0,
		},
		{
			name:      "confidence clamped high",
			in:        DuplicateResult{Classification: ClassRelated, Confidence: 1.5},
			wantClass: ClassRelated,
			wantScore: 1,
		},
		{
			name:      "confidence clamped low",
			in:        DuplicateResult{Classification: ClassDistinct, Confidence: -0.2},
			wantClass: ClassDistinct,
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.in
			r.Normalize()
			if r.Classification != tt.wantClass {
				t.Errorf("Classification = %v, want %v", r.Classification, tt.wantClass)
			}
			if r.Confidence != tt.wantScore {
				t.Errorf("Confidence = %v, want %v", r.Confidence, tt.wantScore)
			}
		})
	}
}

func TestPRReviewResult_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PRReviewResult
		wantRisk  RiskLevel
		wantScore int
	}{
		{
			name:      "valid",
			in:        PRReviewResult{RiskLevel: RiskLow, ReadinessScore: 80},
			wantRisk:  RiskLow,
			wantScore: 80,
		},
		{
			name:      "unknown risk defaults to medium",
			in:        PRReviewResult{RiskLevel: "critical", ReadinessScore: 50},
			wantRisk:  RiskMedium,
			wantScore: 50,
		},
		{
			name:      "score clamped",
			in:        PRReviewResult{RiskLevel: RiskHigh, ReadinessScore: 150},
			wantRisk:  RiskHigh,
			wantScore: 100,
		},
		{
			name:      "negative score clamped",
			in:        PRReviewResult{RiskLevel: RiskHigh, ReadinessScore: -5},
			wantRisk:  RiskHigh,
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.in
			r.Normalize()
			if r.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %v, want %v", r.RiskLevel, tt.wantRisk)
			}
			if r.ReadinessScore != tt.wantScore {
				t.Errorf("ReadinessScore = %v, want %v", r.ReadinessScore, tt.wantScore)
			}
		})
	}
}

func TestDefaultSummary(t *testing.T) {
	s := DefaultSummary("Login fails on Safari")

	if s.ProblemStatement != "Login fails on Safari" {
		t.Errorf("ProblemStatement = %v, want raw title", s.ProblemStatement)
	}
	if s.Scope != "" || len(s.KeyEntities) != 0 || len(s.AffectedFiles) != 0 {
		t.Errorf("default summary should leave remaining fields empty: %+v", s)
	}
}
