package query

import "testing"

func TestProcess(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantNormalized string
		wantWordCount  int
		wantIsQuestion bool
	}{
		{
			name:           "question with mixed case",
			text:           "What is the treatment for GERD?",
			wantNormalized: "what is the treatment for gerd?",
			wantWordCount:  6,
			wantIsQuestion: true,
		},
		{
			name:           "statement",
			text:           "IBS dietary triggers",
			wantNormalized: "ibs dietary triggers",
			wantWordCount:  3,
			wantIsQuestion: false,
		},
		{
			name:           "surrounding whitespace",
			text:           "  colonoscopy prep?  ",
			wantNormalized: "colonoscopy prep?",
			wantWordCount:  2,
			wantIsQuestion: true,
		},
		{
			name:           "empty",
			text:           "",
			wantNormalized: "",
			wantWordCount:  0,
			wantIsQuestion: false,
		},
	}

	p := NewProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Process(tt.text)

			if got.OriginalText != tt.text {
				t.Errorf("OriginalText = %q, want %q", got.OriginalText, tt.text)
			}
			if got.NormalizedText != tt.wantNormalized {
				t.Errorf("NormalizedText = %q, want %q", got.NormalizedText, tt.wantNormalized)
			}
			if got.WordCount != tt.wantWordCount {
				t.Errorf("WordCount = %d, want %d", got.WordCount, tt.wantWordCount)
			}
			if got.IsQuestion != tt.wantIsQuestion {
				t.Errorf("IsQuestion = %v, want %v", got.IsQuestion, tt.wantIsQuestion)
			}
		})
	}
}
