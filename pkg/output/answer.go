package output

import (
	"fmt"
	"strings"

	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/pkg/knowledge"
)

const noAnswerFallback = "I couldn't find specific information about your query. " +
	"Please try rephrasing or ask a different question."

// AnswerGenerator picks the final answer text out of the per-need
// result mapping.
type AnswerGenerator struct {
	logger logger.ILogger
}

func NewAnswerGenerator(log logger.ILogger) *AnswerGenerator {
	return &AnswerGenerator{logger: log}
}

// Generate takes the first usable summary across need_0, need_1, ... in
// key order and discards the rest. When no need produced a summary it
// falls back to a snippet digest of the raw search results, or the
// generic not-found message when those are empty too.
func (g *AnswerGenerator) Generate(results map[string]knowledge.NeedResult, query string) string {
	for i := 0; i < len(results); i++ {
		result, ok := results[knowledge.NeedKey(i)]
		if !ok {
			continue
		}
		if result.SummarizedResponse == nil {
			continue
		}
		summary := strings.TrimSpace(result.SummarizedResponse.Summary)
		if summary == "" || result.SummarizedResponse.Error != "" {
			continue
		}
		g.logger.Debug("answer_generator", "Selected summary", map[string]interface{}{
			"key":   knowledge.NeedKey(i),
			"query": query,
		})
		return summary
	}

	return g.snippetFallback(results)
}

func (g *AnswerGenerator) snippetFallback(results map[string]knowledge.NeedResult) string {
	parts := []string{"Based on the information I found:"}

	for i := 0; i < len(results); i++ {
		result, ok := results[knowledge.NeedKey(i)]
		if !ok {
			continue
		}
		top := result.RawSearchResults
		if len(top) > 2 {
			top = top[:2]
		}
		for _, hit := range top {
			if hit.Snippet == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("- %s", hit.Snippet))
		}
	}

	if len(parts) == 1 {
		return noAnswerFallback
	}
	return strings.Join(parts, "\n\n")
}
