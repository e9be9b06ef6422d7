package prompt

import (
	"bytes"
	"fmt"
	"text/template"
)

// SummaryData holds the parameters for the item summary template
type SummaryData struct {
	Title string
	Body  string
	Files []string
}

// ClassifyData holds the parameters for the duplicate classification template
type ClassifyData struct {
	Title            string
	Problem          string
	CandidateNumber  int
	CandidateTitle   string
	CandidateSummary string
	Similarity       float64
}

// ReviewData holds the parameters for the PR review template
type ReviewData struct {
	Title       string
	Description string
	Files       []string
	Additions   int
	Deletions   int
}

const summaryTemplate = `Summarize the following GitHub item for duplicate detection.

Title: {{.Title}}

Body:
{{.Body}}
{{- if .Files}}

Affected files:
{{- range .Files}}
- {{.}}
{{- end}}
{{- end}}

Respond with strict JSON and nothing else:
{"problem_statement": "one-sentence description of the problem", "scope": "short scope tag", "key_entities": ["named components, APIs, or features"], "affected_files": ["file paths mentioned or implied"]}`

const classifyTemplate = `Decide whether two GitHub items describe the same underlying problem.

Current item:
Title: {{.Title}}
Problem: {{.Problem}}

Candidate item #{{.CandidateNumber}} (embedding similarity {{printf "%.2f" .Similarity}}):
Title: {{.CandidateTitle}}
Summary: {{.CandidateSummary}}

Classify the pair as exactly one of "duplicate" (same problem), "related"
(overlapping but not the same), or "distinct".

Respond with strict JSON and nothing else:
{"classification": "duplicate|related|distinct", "confidence": 0.0, "canonical_item": {{.CandidateNumber}}, "reasoning": "one sentence"}`

const reviewTemplate = `Review the following pull request for merge readiness.

Title: {{.Title}}

Description:
{{.Description}}

Diff stats: +{{.Additions}} -{{.Deletions}}
{{- if .Files}}

Changed files:
{{- range .Files}}
- {{.}}
{{- end}}
{{- end}}

Assess risk, identify anything missing (tests, documentation, migration
notes), and estimate readiness.

Respond with strict JSON and nothing else:
{"summary": "two-sentence review", "risk_level": "low|medium|high", "missing_elements": ["..."], "design_alignment": "short tag", "readiness_score": 0}`

var (
	summaryTmpl  = template.Must(template.New("summary").Parse(summaryTemplate))
	classifyTmpl = template.Must(template.New("classify").Parse(classifyTemplate))
	reviewTmpl   = template.Must(template.New("review").Parse(reviewTemplate))
)

// render executes a template with the provided data
func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// Summary renders the item summary prompt
func Summary(data SummaryData) (string, error) {
	return render(summaryTmpl, data)
}

// Classify renders the duplicate classification prompt
func Classify(data ClassifyData) (string, error) {
	return render(classifyTmpl, data)
}

// Review renders the PR review prompt
func Review(data ReviewData) (string, error) {
	return render(reviewTmpl, data)
}
