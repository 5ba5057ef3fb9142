package kb

import (
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Entry is one curated knowledge base record.
type Entry struct {
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	URL             string  `json:"url"`
	RelevanceScore  float64 `json:"relevance_score"`
	SourceType      string  `json:"source_type"`
	PublicationDate string  `json:"publication_date"`
}

// Filters narrows a knowledge base query. Category matches against entry
// titles; Conditions matches against titles and content.
type Filters struct {
	Category   string
	Conditions []string
}

// QueryResult carries the matched entries plus query metadata.
type QueryResult struct {
	Query       string  `json:"query"`
	Results     []Entry `json:"results"`
	ResultCount int     `json:"result_count"`
}

// KnowledgeBase serves curated gastroenterology entries. Backed by an
// in-memory corpus today; the query surface is the same one a vector
// store would sit behind.
type KnowledgeBase struct {
	entries []Entry
	cache   *cache.Cache
}

func NewKnowledgeBase() *KnowledgeBase {
	// Cached answers expire after an hour, purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &KnowledgeBase{
		entries: curatedEntries(),
		cache:   c,
	}
}

// Query returns entries matching the filters, most relevant first.
// Identical filtered queries are served from cache.
func (k *KnowledgeBase) Query(queryText string, filters *Filters) QueryResult {
	key := cacheKey(queryText, filters)
	if x, found := k.cache.Get(key); found {
		return x.(QueryResult)
	}

	matched := k.entries
	if filters != nil {
		matched = applyFilters(matched, filters)
	}

	sorted := make([]Entry, len(matched))
	copy(sorted, matched)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})

	result := QueryResult{
		Query:       queryText,
		Results:     sorted,
		ResultCount: len(sorted),
	}
	k.cache.Set(key, result, cache.DefaultExpiration)
	return result
}

func cacheKey(queryText string, filters *Filters) string {
	if filters == nil {
		return queryText
	}
	return queryText + "|" + filters.Category + "|" + strings.Join(filters.Conditions, ",")
}

func applyFilters(entries []Entry, filters *Filters) []Entry {
	filtered := entries

	switch strings.ToLower(filters.Category) {
	case "treatment":
		filtered = matchTitle(filtered, "treatment", "management")
	case "diagnosis":
		filtered = matchTitle(filtered, "diagnosis", "diagnostic")
	}

	if len(filters.Conditions) > 0 {
		var byCondition []Entry
		for _, e := range filtered {
			title := strings.ToLower(e.Title)
			content := strings.ToLower(e.Content)
			for _, cond := range filters.Conditions {
				term := strings.ToLower(cond)
				if strings.Contains(title, term) || strings.Contains(content, term) {
					byCondition = append(byCondition, e)
					break
				}
			}
		}
		filtered = byCondition
	}

	return filtered
}

func matchTitle(entries []Entry, terms ...string) []Entry {
	var matched []Entry
	for _, e := range entries {
		title := strings.ToLower(e.Title)
		for _, term := range terms {
			if strings.Contains(title, term) {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched
}

func curatedEntries() []Entry {
	return []Entry{
		{
			Title:           "GERD Treatment Guidelines",
			Content:         "Gastroesophageal reflux disease (GERD) is typically treated with proton pump inhibitors (PPIs) as first-line therapy. Lifestyle modifications including weight loss, avoiding late meals, and elevating the head of the bed are also recommended.",
			URL:             "https://example.com/gerd-guidelines",
			RelevanceScore:  0.92,
			SourceType:      "clinical_guidelines",
			PublicationDate: "2022-03-15",
		},
		{
			Title:           "Inflammatory Bowel Disease: Current Management",
			Content:         "Management of IBD includes anti-inflammatory medications, immunosuppressants, biologics, and in some cases, surgery. Treatment is individualized based on disease severity, location, and patient factors.",
			URL:             "https://example.com/ibd-management",
			RelevanceScore:  0.85,
			SourceType:      "medical_textbook",
			PublicationDate: "2021-11-10",
		},
		{
			Title:           "Diagnostic Approach to Chronic Diarrhea",
			Content:         "Chronic diarrhea evaluation should include detailed history, physical examination, basic laboratory tests, and may require endoscopic evaluation with biopsies. Common causes include IBS, IBD, celiac disease, and microscopic colitis.",
			URL:             "https://example.com/chronic-diarrhea",
			RelevanceScore:  0.78,
			SourceType:      "medical_journal",
			PublicationDate: "2023-01-22",
		},
	}
}
