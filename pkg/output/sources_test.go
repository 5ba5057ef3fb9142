package output

import (
	"testing"

	"gastroassist-be/pkg/knowledge"
	"gastroassist-be/pkg/knowledge/search"
)

func TestCompileFlattensAndSorts(t *testing.T) {
	c := NewSourceCompiler()

	results := map[string]knowledge.NeedResult{
		"need_0": {
			Type: "medical",
			RawSearchResults: []search.Result{
				{Title: "low", URL: "https://low", Snippet: "s", Score: 0.4},
				{Title: "high", URL: "https://high", Snippet: "s", Score: 0.95},
			},
		},
		"need_1": {
			Type: "general",
			RawSearchResults: []search.Result{
				{Title: "mid", URL: "https://mid", Snippet: "s", Score: 0.6},
			},
		},
	}

	sources := c.Compile(results)

	if len(sources) != 3 {
		t.Fatalf("got %d sources, want 3", len(sources))
	}

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if sources[i].Title != want {
			t.Errorf("sources[%d] = %q, want %q", i, sources[i].Title, want)
		}
	}

	if sources[0].Type != "medical" {
		t.Errorf("medical result type = %q", sources[0].Type)
	}
	if sources[1].Type != "general" {
		t.Errorf("general result type = %q", sources[1].Type)
	}
}

func TestCompileGeneralDefaultConfidence(t *testing.T) {
	c := NewSourceCompiler()

	results := map[string]knowledge.NeedResult{
		"need_0": {
			Type: "general",
			RawSearchResults: []search.Result{
				{Title: "unscored", URL: "https://u"},
				{Title: "scored", URL: "https://s", Score: 0.2},
			},
		},
	}

	sources := c.Compile(results)

	byTitle := map[string]float64{}
	for _, s := range sources {
		byTitle[s.Title] = s.Confidence
	}
	if byTitle["unscored"] != 0.7 {
		t.Errorf("unscored general confidence = %v, want 0.7", byTitle["unscored"])
	}
	if byTitle["scored"] != 0.2 {
		t.Errorf("scored general confidence = %v, want 0.2", byTitle["scored"])
	}
}

func TestCompileUnscoredMedicalKeepsZero(t *testing.T) {
	c := NewSourceCompiler()

	results := map[string]knowledge.NeedResult{
		"need_0": {
			Type:             "medical",
			RawSearchResults: []search.Result{{Title: "m", URL: "https://m"}},
		},
	}

	sources := c.Compile(results)
	if sources[0].Confidence != 0 {
		t.Errorf("medical confidence = %v, want 0 (no default)", sources[0].Confidence)
	}
}

func TestCompileEmpty(t *testing.T) {
	c := NewSourceCompiler()

	if got := c.Compile(map[string]knowledge.NeedResult{}); len(got) != 0 {
		t.Errorf("Compile(empty) = %v, want empty slice", got)
	}
}
