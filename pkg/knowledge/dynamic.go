package knowledge

import (
	"context"

	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/pkg/knowledge/search"
)

// Search categories accepted by DynamicSearch.
const (
	SearchTypeMedical  = "medical"
	SearchTypeGeneral  = "general"
	SearchTypeCombined = "combined"
)

const generalMaxResults = 10

// MedicalProvider is the curated medical search path.
type MedicalProvider interface {
	Search(ctx context.Context, query, searchDepth string, filterMedical bool) []search.Result
}

// GeneralProvider is the open-web search path.
type GeneralProvider interface {
	Search(ctx context.Context, query string, maxResults int) []search.Result
}

// DynamicSearch fans a query out to the appropriate provider(s) by
// search type and tags each result with its source provenance.
type DynamicSearch struct {
	medical MedicalProvider
	general GeneralProvider
	logger  logger.ILogger
}

func NewDynamicSearch(medical MedicalProvider, general GeneralProvider, log logger.ILogger) *DynamicSearch {
	return &DynamicSearch{
		medical: medical,
		general: general,
		logger:  log,
	}
}

// Search returns results keyed by category. Unknown search types yield
// an empty mapping; requested categories are never empty because the
// providers fall back internally.
func (d *DynamicSearch) Search(ctx context.Context, query, searchType string) map[string][]search.Result {
	results := make(map[string][]search.Result)

	if searchType == SearchTypeMedical || searchType == SearchTypeCombined {
		results[SearchTypeMedical] = d.searchMedical(ctx, query)
	}
	if searchType == SearchTypeGeneral || searchType == SearchTypeCombined {
		results[SearchTypeGeneral] = d.searchGeneral(ctx, query)
	}

	return results
}

func (d *DynamicSearch) searchMedical(ctx context.Context, query string) []search.Result {
	hits := d.medical.Search(ctx, query, "comprehensive", true)

	for i := range hits {
		hits[i].Source = "tavily_medical"
	}

	d.logger.Debug("dynamic_search", "Medical search complete", map[string]interface{}{
		"query": query,
		"hits":  len(hits),
	})
	return hits
}

func (d *DynamicSearch) searchGeneral(ctx context.Context, query string) []search.Result {
	hits := d.general.Search(ctx, query, generalMaxResults)

	for i := range hits {
		if hits[i].Source == "" {
			hits[i].Source = "duckduckgo"
		}
	}

	d.logger.Debug("dynamic_search", "General search complete", map[string]interface{}{
		"query": query,
		"hits":  len(hits),
	})
	return hits
}
