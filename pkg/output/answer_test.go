package output

import (
	"strings"
	"testing"

	"gastroassist-be/pkg/knowledge"
	"gastroassist-be/pkg/knowledge/search"
	"gastroassist-be/pkg/summarize"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func needResult(summary, errMsg string, hits ...search.Result) knowledge.NeedResult {
	return knowledge.NeedResult{
		Query:            "q",
		Type:             "medical",
		RawSearchResults: hits,
		SummarizedResponse: &summarize.SummarizedResponse{
			Summary: summary,
			Error:   errMsg,
		},
	}
}

func TestGenerateFirstUsableSummaryWins(t *testing.T) {
	g := NewAnswerGenerator(nopLogger{})

	results := map[string]knowledge.NeedResult{
		"need_0": needResult("", ""),
		"need_1": needResult("Second summary.", ""),
		"need_2": needResult("Third summary.", ""),
	}

	if got := g.Generate(results, "q"); got != "Second summary." {
		t.Errorf("Generate = %q, want first non-empty summary", got)
	}
}

func TestGenerateSkipsErroredSummaries(t *testing.T) {
	g := NewAnswerGenerator(nopLogger{})

	results := map[string]knowledge.NeedResult{
		"need_0": needResult("Apology text.", "rate limited"),
		"need_1": needResult("Clean summary.", ""),
	}

	if got := g.Generate(results, "q"); got != "Clean summary." {
		t.Errorf("Generate = %q, want summary without error", got)
	}
}

func TestGenerateSnippetFallback(t *testing.T) {
	g := NewAnswerGenerator(nopLogger{})

	results := map[string]knowledge.NeedResult{
		"need_0": needResult("", "",
			search.Result{Snippet: "GERD affects the LES."},
			search.Result{Snippet: "PPIs are first-line."},
			search.Result{Snippet: "third snippet is skipped"},
		),
	}

	got := g.Generate(results, "q")

	if !strings.HasPrefix(got, "Based on the information I found:") {
		t.Errorf("missing fallback preamble: %q", got)
	}
	if !strings.Contains(got, "- GERD affects the LES.") {
		t.Errorf("missing first snippet: %q", got)
	}
	if strings.Contains(got, "third snippet") {
		t.Errorf("fallback should use at most two snippets per need: %q", got)
	}
}

func TestGenerateNothingFound(t *testing.T) {
	g := NewAnswerGenerator(nopLogger{})

	results := map[string]knowledge.NeedResult{
		"need_0": needResult("", ""),
	}

	got := g.Generate(results, "q")
	if !strings.Contains(got, "couldn't find specific information") {
		t.Errorf("Generate = %q, want not-found message", got)
	}

	if got := g.Generate(map[string]knowledge.NeedResult{}, "q"); !strings.Contains(got, "couldn't find specific information") {
		t.Errorf("empty mapping: Generate = %q", got)
	}
}
