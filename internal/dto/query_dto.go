package dto

import "gastroassist-be/pkg/knowledge"

type QueryRequest struct {
	Text    string                 `json:"text" validate:"required"`
	UserID  string                 `json:"user_id" validate:"required"`
	Context map[string]interface{} `json:"context,omitempty"`
}

type SourceDTO struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Snippet    string  `json:"snippet"`
	Confidence float64 `json:"confidence"`
	Type       string  `json:"type"`
}

type QueryResponse struct {
	Answer          string      `json:"answer"`
	Sources         []SourceDTO `json:"sources"`
	ConfidenceScore float64     `json:"confidence_score"`
}

// DirectQueryResponse exposes the raw per-need result mapping without
// aggregation, for debugging and evaluation clients.
type DirectQueryResponse struct {
	Query  string                          `json:"query"`
	Result map[string]knowledge.NeedResult `json:"result"`
}
