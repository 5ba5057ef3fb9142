package output

import (
	"sort"

	"gastroassist-be/pkg/knowledge"
	"gastroassist-be/pkg/reasoning"
)

// Confidence assigned to general results whose provider reported no score.
const defaultGeneralConfidence = 0.7

// Source is the final user-facing citation.
type Source struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Snippet    string  `json:"snippet"`
	Confidence float64 `json:"confidence"`
	Type       string  `json:"type"`
}

// SourceCompiler flattens per-need raw search results into a single
// citation list.
type SourceCompiler struct{}

func NewSourceCompiler() *SourceCompiler {
	return &SourceCompiler{}
}

// Compile walks the needs in key order, maps each raw result to a
// Source, and sorts the whole list by confidence, highest first.
// Medical results carry their search score as confidence; general
// results default to 0.7 when unscored.
func (c *SourceCompiler) Compile(results map[string]knowledge.NeedResult) []Source {
	sources := []Source{}

	for i := 0; i < len(results); i++ {
		result, ok := results[knowledge.NeedKey(i)]
		if !ok {
			continue
		}

		sourceType := "general"
		if result.Type == string(reasoning.NeedTypeMedical) {
			sourceType = "medical"
		}

		for _, hit := range result.RawSearchResults {
			confidence := hit.Score
			if sourceType == "general" && confidence == 0 {
				confidence = defaultGeneralConfidence
			}
			sources = append(sources, Source{
				Title:      hit.Title,
				URL:        hit.URL,
				Snippet:    hit.Snippet,
				Confidence: confidence,
				Type:       sourceType,
			})
		}
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Confidence > sources[j].Confidence
	})

	return sources
}
