package generate

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "clean text untouched",
			raw:  "Here is what I found about the project.",
			want: "Here is what I found about the project.",
		},
		{
			name: "structured query leak stripped",
			raw:  "SEARCH_QUERY: experience\nACTION: answer\nHere is what I found.",
			want: "Here is what I found.",
		},
		{
			name: "bracket-only lines stripped",
			raw:  "[\n]\nThe actual answer.",
			want: "The actual answer.",
		},
		{
			name: "stray json fence stripped",
			raw:  "```json\n{\nThe answer follows here.",
			want: "The answer follows here.",
		},
		{
			name: "leading blank lines stripped",
			raw:  "\n\n  \nAnswer text.",
			want: "Answer text.",
		},
		{
			name: "artifacts after content are preserved",
			raw:  "First line.\nACTION: not an artifact anymore",
			want: "First line.\nACTION: not an artifact anymore",
		},
		{
			name: "lowercase key value leak stripped",
			raw:  "query: tell me about x\nAnswer body.",
			want: "Answer body.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.raw); got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}
