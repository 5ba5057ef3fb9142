package search

// Result is a normalized search hit from any provider.
// Ephemeral: produced per search call, never persisted.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
	Source  string  `json:"source,omitempty"`
}
