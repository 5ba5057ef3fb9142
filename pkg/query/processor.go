package query

import (
	"strings"
)

// ProcessedQuery captures the normalized form of a raw user query.
// Immutable after creation.
type ProcessedQuery struct {
	OriginalText   string `json:"original_text"`
	NormalizedText string `json:"normalized_text"`
	WordCount      int    `json:"word_count"`
	IsQuestion     bool   `json:"is_question"`
}

// Processor normalizes raw query text before reasoning
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// Process lowercases and trims the query and derives basic shape info
func (p *Processor) Process(text string) ProcessedQuery {
	trimmed := strings.TrimSpace(text)

	return ProcessedQuery{
		OriginalText:   text,
		NormalizedText: strings.ToLower(trimmed),
		WordCount:      len(strings.Fields(text)),
		IsQuestion:     strings.HasSuffix(trimmed, "?"),
	}
}
