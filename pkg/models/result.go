package models

// DuplicateClass is the mutually exclusive duplicate classification
type DuplicateClass string

const (
	ClassDuplicate DuplicateClass = "duplicate"
	ClassRelated   DuplicateClass = "related"
	ClassDistinct  DuplicateClass = "distinct"
)

// DuplicateResult contains the LLM's verdict on the top candidate pair
type DuplicateResult struct {
	Classification DuplicateClass `json:"classification"`
	Confidence     float64        `json:"confidence"`
	CanonicalItem  int            `json:"canonical_item,omitempty"`
	Reasoning      string         `json:"reasoning,omitempty"`
	Similarity     float64        `json:"similarity,omitempty"`
}

// DefaultDuplicateResult is the degraded verdict substituted when the
// classification call or its JSON output fails
func DefaultDuplicateResult() *DuplicateResult {
	return &DuplicateResult{Classification: ClassDistinct, Confidence: 0}
}

// Normalize clamps fields the model is not trusted to keep in range
func (r *DuplicateResult) Normalize() {
	switch r.Classification {
	case ClassDuplicate, ClassRelated, ClassDistinct:
	default:
		r.Classification = ClassDistinct
		r.Confidence = 0
	}
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
}

// RiskLevel is the reviewer's risk assessment
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PRReviewResult contains the LLM's structured pull request review
type PRReviewResult struct {
	Summary         string    `json:"summary"`
	RiskLevel       RiskLevel `json:"risk_level"`
	MissingElements []string  `json:"missing_elements,omitempty"`
	DesignAlignment string    `json:"design_alignment,omitempty"`
	ReadinessScore  int       `json:"readiness_score"`
}

// Normalize clamps fields the model is not trusted to keep in range
func (r *PRReviewResult) Normalize() {
	switch r.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		r.RiskLevel = RiskMedium
	}
	if r.ReadinessScore < 0 {
		r.ReadinessScore = 0
	}
	if r.ReadinessScore > 100 {
		r.ReadinessScore = 100
	}
}

// Candidate is a duplicate candidate with its similarity score
type Candidate struct {
	Item       Item    `json:"item"`
	Summary    string  `json:"summary,omitempty"`
	Similarity float64 `json:"similarity"`
}

// ProcessResult contains the result of processing a single event
type ProcessResult struct {
	ItemNumber    int              `json:"item_number"`
	Kind          ItemKind         `json:"kind,omitempty"`
	Duplicate     *DuplicateResult `json:"duplicate,omitempty"`
	Review        *PRReviewResult  `json:"review,omitempty"`
	Score         int              `json:"score,omitempty"`
	CommentPosted bool             `json:"comment_posted"`
	LabelsAdded   []string         `json:"labels_added,omitempty"`
	Skipped       bool             `json:"skipped"`
	SkipReason    string           `json:"skip_reason,omitempty"`
}

// IndexStats contains statistics from an indexing operation
type IndexStats struct {
	TotalItems int `json:"total_items"`
	Indexed    int `json:"indexed"`
	Skipped    int `json:"skipped"`
	Errors     int `json:"errors"`
	DurationMs int `json:"duration_ms"`
}
