package knowledge

import (
	"context"
	"fmt"

	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/pkg/knowledge/extract"
	"gastroassist-be/pkg/knowledge/search"
	"gastroassist-be/pkg/reasoning"
	"gastroassist-be/pkg/summarize"
)

// Results are extracted for at most this many search hits per need,
// taken in input order (no re-sorting by score).
const extractTopN = 3

// NeedResult is the unit of work per information need.
type NeedResult struct {
	Query              string                        `json:"query"`
	Type               string                        `json:"type"`
	RawSearchResults   []search.Result               `json:"raw_search_results"`
	ExtractedContents  []extract.ExtractedContent    `json:"extracted_contents"`
	SummarizedResponse *summarize.SummarizedResponse `json:"summarized_response"`
}

// Searcher is the fan-out stage contract.
type Searcher interface {
	Search(ctx context.Context, query, searchType string) map[string][]search.Result
}

// Extractor is the per-URL content stage contract.
type Extractor interface {
	Extract(ctx context.Context, url string) extract.ExtractedContent
}

// Summarizer is the single-call summary stage contract.
type Summarizer interface {
	Summarize(ctx context.Context, query string, contents []extract.ExtractedContent, maxTokens int) summarize.SummarizedResponse
}

// Router orchestrates search, extraction, and summarization per
// information need, strictly sequentially.
type Router struct {
	search     Searcher
	extractor  Extractor
	summarizer Summarizer
	logger     logger.ILogger
}

func NewRouter(searcher Searcher, extractor Extractor, summarizer Summarizer, log logger.ILogger) *Router {
	return &Router{
		search:     searcher,
		extractor:  extractor,
		summarizer: summarizer,
		logger:     log,
	}
}

// NeedKey names the mapping entry for the i-th information need.
// Keys follow insertion order, not need type, so repeated types form
// independent entries.
func NeedKey(i int) string {
	return fmt.Sprintf("need_%d", i)
}

// Retrieve runs the four-step pipeline for every need in order:
// search, take the top hits, extract each independently, summarize the
// batch with one call. A failing extraction degrades that one entry;
// the batch never aborts.
func (r *Router) Retrieve(ctx context.Context, needs []reasoning.InformationNeed) map[string]NeedResult {
	results := make(map[string]NeedResult, len(needs))

	for i, need := range needs {
		r.logger.Info("knowledge_router", "Processing information need", map[string]interface{}{
			"key":      NeedKey(i),
			"type":     string(need.Type),
			"query":    need.Query,
			"priority": need.Priority,
		})
		results[NeedKey(i)] = r.processNeed(ctx, need)
	}

	return results
}

func (r *Router) processNeed(ctx context.Context, need reasoning.InformationNeed) NeedResult {
	result := NeedResult{
		Query: need.Query,
		Type:  string(need.Type),
	}

	searchType := SearchTypeGeneral
	category := SearchTypeGeneral
	if need.Type == reasoning.NeedTypeMedical {
		searchType = SearchTypeMedical
		category = SearchTypeMedical
	}

	hits := r.search.Search(ctx, need.Query, searchType)[category]
	result.RawSearchResults = hits

	top := hits
	if len(top) > extractTopN {
		top = top[:extractTopN]
	}

	for _, hit := range top {
		result.ExtractedContents = append(result.ExtractedContents, r.extractOne(ctx, hit.URL))
	}

	summarized := r.summarizer.Summarize(ctx, need.Query, result.ExtractedContents, summarize.DefaultMaxTokens)
	result.SummarizedResponse = &summarized

	return result
}

// extractOne shields the batch from a single bad URL: any panic or
// missing flag degrades to a failure placeholder for that entry only.
func (r *Router) extractOne(ctx context.Context, url string) (content extract.ExtractedContent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("knowledge_router", "Extraction panicked for URL", map[string]interface{}{
				"url":   url,
				"panic": fmt.Sprint(rec),
			})
			content = extract.ExtractedContent{
				Title:             "Extraction failed",
				Content:           "Unable to extract content from this URL.",
				SourceURL:         url,
				ExtractionSuccess: false,
				Error:             fmt.Sprint(rec),
			}
		}
	}()

	return r.extractor.Extract(ctx, url)
}
