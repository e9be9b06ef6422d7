package models

// ItemSummary is the structured summary the LLM produces for an item
type ItemSummary struct {
	ProblemStatement string   `json:"problem_statement"`
	Scope            string   `json:"scope,omitempty"`
	KeyEntities      []string `json:"key_entities,omitempty"`
	AffectedFiles    []string `json:"affected_files,omitempty"`
}

// DefaultSummary returns the degraded summary used when the LLM call
// or its JSON output fails: the raw title stands in for the problem
// statement and every other field stays empty.
func DefaultSummary(title string) *ItemSummary {
	return &ItemSummary{ProblemStatement: title}
}

// Normalize fills defaults for fields the model left empty
func (s *ItemSummary) Normalize(title string) {
	if s.ProblemStatement == "" {
		s.ProblemStatement = title
	}
}
