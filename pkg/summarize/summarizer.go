package summarize

import (
	"context"
	"fmt"
	"strings"

	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/pkg/knowledge/extract"
	"gastroassist-be/pkg/llm"
)

// SourceMeta is the provenance of one summarized input. No verified
// mapping of citation markers to sources is performed.
type SourceMeta struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
}

// SummarizedResponse is always well-formed, success or failure.
type SummarizedResponse struct {
	Summary    string       `json:"summary"`
	Sources    []SourceMeta `json:"sources"`
	Query      string       `json:"query"`
	ModelUsed  string       `json:"model_used"`
	TokenCount int          `json:"token_count"`
	Error      string       `json:"error,omitempty"`
}

const (
	// Per-source content cap to respect the model's context window.
	maxContentChars = 4000

	DefaultMaxTokens = 500

	systemInstruction = "You are a gastroenterology expert assistant providing concise, accurate medical information with proper citations."

	noContentSummary = "No valid content could be extracted to answer your query. Please try with a different search term or consult direct medical sources."

	emptySummary = "Unable to generate a summary from the available content. The extracted information may not be relevant to your query."
)

// Summarizer turns extracted contents into a cited summary with exactly
// one chat-completion call.
type Summarizer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewSummarizer(provider llm.LLMProvider, log logger.ILogger) *Summarizer {
	return &Summarizer{
		provider: provider,
		logger:   log,
	}
}

// Summarize filters out failed extractions, builds the medical prompt,
// and issues a single completion. When nothing valid remains it
// short-circuits without an external call. Provider errors degrade to an
// apology response with the Error field set; Summarize itself never errors.
func (s *Summarizer) Summarize(ctx context.Context, query string, contents []extract.ExtractedContent, maxTokens int) SummarizedResponse {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var valid []extract.ExtractedContent
	for _, c := range contents {
		if c.ExtractionSuccess && c.Content != "" {
			valid = append(valid, c)
		}
	}

	if len(valid) == 0 {
		return SummarizedResponse{
			Summary:   noContentSummary,
			Sources:   []SourceMeta{},
			Query:     query,
			ModelUsed: s.provider.Model(),
		}
	}

	prompt := buildMedicalPrompt(query, buildContext(valid))

	s.logger.Info("summarizer", "Requesting summary", map[string]interface{}{
		"query":   query,
		"sources": len(valid),
		"model":   s.provider.Model(),
	})

	summary, err := s.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(maxTokens),
	)
	if err != nil {
		s.logger.Error("summarizer", "LLM summarization failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return SummarizedResponse{
			Summary:   fmt.Sprintf("Unable to generate summary due to an error: %s", err.Error()),
			Sources:   []SourceMeta{},
			Query:     query,
			ModelUsed: s.provider.Model(),
			Error:     err.Error(),
		}
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		summary = emptySummary
	}

	sources := make([]SourceMeta, 0, len(valid))
	for i, c := range valid {
		title := c.Title
		if title == "" {
			title = "Unknown title"
		}
		author := c.Author
		if author == "" {
			author = "Unknown"
		}
		sources = append(sources, SourceMeta{
			ID:            fmt.Sprintf("source-%d", i+1),
			Title:         title,
			URL:           c.SourceURL,
			Author:        author,
			PublishedDate: c.PublishedDate,
		})
	}

	return SummarizedResponse{
		Summary:    summary,
		Sources:    sources,
		Query:      query,
		ModelUsed:  s.provider.Model(),
		TokenCount: len(strings.Fields(summary)),
	}
}

// buildContext formats each source with its metadata header and caps
// single content blocks at maxContentChars.
func buildContext(contents []extract.ExtractedContent) string {
	var parts []string

	for i, c := range contents {
		var b strings.Builder

		title := c.Title
		if title == "" {
			title = "Unknown title"
		}
		b.WriteString(fmt.Sprintf("### SOURCE %d: %s\n", i+1, title))

		sourceURL := c.SourceURL
		if sourceURL == "" {
			sourceURL = "No URL"
		}
		b.WriteString(fmt.Sprintf("URL: %s\n", sourceURL))

		if c.Author != "" {
			b.WriteString(fmt.Sprintf("Author: %s\n", c.Author))
		}
		if c.PublishedDate != "" {
			b.WriteString(fmt.Sprintf("Date: %s\n", c.PublishedDate))
		}

		text := c.Content
		if len(text) > maxContentChars {
			text = text[:maxContentChars] + "... [content truncated due to length]"
		}
		b.WriteString(fmt.Sprintf("\nCONTENT:\n%s\n\n", text))

		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n")
}

// buildMedicalPrompt wraps the query and source context in the fixed
// ten-point instruction template.
func buildMedicalPrompt(query, context string) string {
	return fmt.Sprintf(`
As a gastroenterology expert, provide a concise, accurate response to this query:

QUERY: %s

Below are sources from medical literature. Use these to formulate your response.

%s

INSTRUCTIONS:
1. Only include medical facts directly supported by the sources
2. Be brief and crisp - focus on the most relevant information
3. Use clear medical terminology for healthcare professionals
4. Cite sources using [SOURCE X] notation after each fact
5. If sources conflict, present both perspectives
6. If information is limited, state this clearly
7. Avoid personal opinions or unsupported recommendations
8. Use bullet points for readability when appropriate
9. Keep your response to 3-7 sentences for straightforward queries
10. Focus on the direct answer to the query

YOUR RESPONSE:
`, query, context)
}
