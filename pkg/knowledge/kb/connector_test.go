package kb

import "testing"

func TestQueryUnfilteredSortsByRelevance(t *testing.T) {
	k := NewKnowledgeBase()

	got := k.Query("digestive conditions", nil)

	if got.ResultCount != 3 {
		t.Fatalf("ResultCount = %d, want 3", got.ResultCount)
	}
	wantOrder := []float64{0.92, 0.85, 0.78}
	for i, want := range wantOrder {
		if got.Results[i].RelevanceScore != want {
			t.Errorf("results[%d] score = %v, want %v", i, got.Results[i].RelevanceScore, want)
		}
	}
}

func TestQueryCategoryFilter(t *testing.T) {
	k := NewKnowledgeBase()

	tests := []struct {
		category  string
		wantCount int
	}{
		{"treatment", 2}, // "Treatment" and "Management" titles
		{"diagnosis", 1}, // "Diagnostic" title
		{"TREATMENT", 2}, // case-insensitive
		{"unknown", 3},   // unrecognized categories do not filter
	}

	for _, tt := range tests {
		got := k.Query("q", &Filters{Category: tt.category})
		if got.ResultCount != tt.wantCount {
			t.Errorf("category %q: ResultCount = %d, want %d", tt.category, got.ResultCount, tt.wantCount)
		}
	}
}

func TestQueryConditionsFilter(t *testing.T) {
	k := NewKnowledgeBase()

	got := k.Query("q", &Filters{Conditions: []string{"GERD"}})
	if got.ResultCount != 1 {
		t.Fatalf("ResultCount = %d, want 1", got.ResultCount)
	}
	if got.Results[0].Title != "GERD Treatment Guidelines" {
		t.Errorf("title = %q", got.Results[0].Title)
	}

	// IBS appears in the chronic diarrhea entry's content.
	got = k.Query("q", &Filters{Conditions: []string{"ibs"}})
	if got.ResultCount != 1 {
		t.Errorf("ibs ResultCount = %d, want 1", got.ResultCount)
	}
}

func TestQueryCombinedFilters(t *testing.T) {
	k := NewKnowledgeBase()

	got := k.Query("q", &Filters{Category: "treatment", Conditions: []string{"ibd"}})

	if got.ResultCount != 1 {
		t.Fatalf("ResultCount = %d, want 1", got.ResultCount)
	}
	if got.Results[0].Title != "Inflammatory Bowel Disease: Current Management" {
		t.Errorf("title = %q", got.Results[0].Title)
	}
}

func TestQueryCachesRepeatedLookups(t *testing.T) {
	k := NewKnowledgeBase()

	first := k.Query("gerd care", &Filters{Category: "treatment"})
	if _, found := k.cache.Get(cacheKey("gerd care", &Filters{Category: "treatment"})); !found {
		t.Fatal("result was not cached")
	}

	second := k.Query("gerd care", &Filters{Category: "treatment"})
	if second.ResultCount != first.ResultCount {
		t.Errorf("cached ResultCount = %d, want %d", second.ResultCount, first.ResultCount)
	}
}
