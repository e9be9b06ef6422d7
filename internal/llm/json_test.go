package llm

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "plain json",
			input:  `{"a": 1}`,
			expect: `{"a": 1}`,
		},
		{
			name:   "fenced json",
			input:  "```json\n{\"a\": 1}\n```",
			expect: `{"a": 1}`,
		},
		{
			name:   "bare fence",
			input:  "```\n{\"a\": 1}\n```",
			expect: `{"a": 1}`,
		},
		{
			name:   "prose around json",
			input:  "Here is the result: {\"a\": 1} Hope that helps!",
			expect: `{"a": 1}`,
		},
		{
			name:   "array",
			input:  "```json\n[1, 2]\n```",
			expect: `[1, 2]`,
		},
		{
			name:   "no json at all",
			input:  "sorry, I cannot do that",
			expect: "sorry, I cannot do that",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractJSON(tt.input)
			if result != tt.expect {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, result, tt.expect)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Classification string  `json:"classification"`
		Confidence     float64 `json:"confidence"`
	}

	err := Decode("```json\n{\"classification\": \"duplicate\", \"confidence\": 0.92}\n```", &out)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out.Classification != "duplicate" || out.Confidence != 0.92 {
		t.Errorf("Decode() = %+v", out)
	}

	if err := Decode("not json", &out); err == nil {
		t.Errorf("Decode() expected error for malformed input")
	}
}
