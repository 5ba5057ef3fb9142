package service

import (
	"context"
	"strings"
	"testing"

	"gastroassist-be/internal/dto"
	"gastroassist-be/pkg/knowledge"
	"gastroassist-be/pkg/knowledge/extract"
	"gastroassist-be/pkg/knowledge/search"
	"gastroassist-be/pkg/output"
	"gastroassist-be/pkg/query"
	"gastroassist-be/pkg/reasoning"
	"gastroassist-be/pkg/summarize"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubSearcher struct {
	hits []search.Result
}

func (s *stubSearcher) Search(ctx context.Context, q, searchType string) map[string][]search.Result {
	return map[string][]search.Result{"medical": s.hits}
}

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, url string) extract.ExtractedContent {
	return extract.ExtractedContent{
		Title:             "Page",
		Content:           "content",
		SourceURL:         url,
		ExtractionSuccess: true,
	}
}

type stubSummarizer struct {
	summary string
	panics  bool
}

func (s *stubSummarizer) Summarize(ctx context.Context, q string, contents []extract.ExtractedContent, maxTokens int) summarize.SummarizedResponse {
	if s.panics {
		panic("provider exploded")
	}
	return summarize.SummarizedResponse{Summary: s.summary, Query: q}
}

func newTestService(summarizer *stubSummarizer, hits []search.Result) IQueryService {
	log := nopLogger{}
	router := knowledge.NewRouter(&stubSearcher{hits: hits}, stubExtractor{}, summarizer, log)
	return NewQueryService(
		query.NewProcessor(),
		reasoning.NewAgent(),
		router,
		output.NewAnswerGenerator(log),
		output.NewSourceCompiler(),
		output.NewQualityAssurance(),
		log,
	)
}

func TestProcessEndToEnd(t *testing.T) {
	hits := []search.Result{
		{Title: "GERD Guidelines", URL: "https://gi.org/gerd", Snippet: "PPIs first", Score: 0.9},
		{Title: "GERD Overview", URL: "https://mayoclinic.org/gerd", Snippet: "Lifestyle", Score: 0.8},
	}
	svc := newTestService(&stubSummarizer{summary: "PPIs are first-line therapy for GERD."}, hits)

	res := svc.Process(context.Background(), &dto.QueryRequest{
		Text:   "What is the treatment for GERD?",
		UserID: "u1",
	})

	if res.Answer != "PPIs are first-line therapy for GERD." {
		t.Errorf("Answer = %q", res.Answer)
	}
	// Two needs (specialized + raw fallback), two hits each.
	if len(res.Sources) != 4 {
		t.Errorf("Sources = %d, want 4", len(res.Sources))
	}
	if res.ConfidenceScore <= 0 {
		t.Errorf("ConfidenceScore = %v, want > 0", res.ConfidenceScore)
	}
	for i := 1; i < len(res.Sources); i++ {
		if res.Sources[i].Confidence > res.Sources[i-1].Confidence {
			t.Error("sources are not sorted by confidence")
		}
	}
}

func TestProcessPanicDegradesToApology(t *testing.T) {
	svc := newTestService(&stubSummarizer{panics: true}, []search.Result{
		{Title: "t", URL: "https://t", Score: 0.9},
	})

	res := svc.Process(context.Background(), &dto.QueryRequest{Text: "gerd", UserID: "u1"})

	if !strings.Contains(res.Answer, "unexpected error") {
		t.Errorf("Answer = %q, want apology", res.Answer)
	}
	if len(res.Sources) != 0 {
		t.Errorf("Sources = %d, want 0", len(res.Sources))
	}
	if res.ConfidenceScore != 0 {
		t.Errorf("ConfidenceScore = %v, want 0", res.ConfidenceScore)
	}
}

func TestDirectReturnsRawMapping(t *testing.T) {
	hits := []search.Result{{Title: "t", URL: "https://t", Score: 0.9}}
	svc := newTestService(&stubSummarizer{summary: "summary"}, hits)

	res := svc.Direct(context.Background(), &dto.QueryRequest{
		Text:   "What is the treatment for GERD?",
		UserID: "u1",
	})

	if res.Query != "What is the treatment for GERD?" {
		t.Errorf("Query = %q", res.Query)
	}
	if len(res.Result) != 2 {
		t.Fatalf("Result entries = %d, want 2 (need_0, need_1)", len(res.Result))
	}

	need0, ok := res.Result["need_0"]
	if !ok {
		t.Fatal("missing need_0")
	}
	if need0.Query != "current treatment guidelines for gerd in gastroenterology" {
		t.Errorf("need_0 query = %q", need0.Query)
	}

	need1 := res.Result["need_1"]
	if need1.Query != "What is the treatment for GERD?" {
		t.Errorf("need_1 query = %q, want verbatim original", need1.Query)
	}
}
