package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", nopLogger{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.SetBaseURL(srv.URL)
	return client, srv
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", nopLogger{}); err == nil {
		t.Fatal("NewClient with empty key should fail")
	}
}

func TestSearchParsesResults(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&captured)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"title": "GERD overview", "url": "https://pubmed.ncbi.nlm.nih.gov/x", "content": "snippet", "score": 0.97},
			},
		})
	})

	results := client.Search(context.Background(), "gerd treatment", "comprehensive", true)

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Title != "GERD overview" || results[0].Score != 0.97 {
		t.Errorf("unexpected result: %+v", results[0])
	}

	if captured["search_depth"] != "comprehensive" {
		t.Errorf("search_depth = %v", captured["search_depth"])
	}
	if captured["topic"] != "medical" {
		t.Errorf("topic = %v, want medical", captured["topic"])
	}
	if captured["max_results"] != float64(5) {
		t.Errorf("max_results = %v, want 5", captured["max_results"])
	}
	filters, ok := captured["search_filters"].(map[string]interface{})
	if !ok {
		t.Fatal("search_filters missing for medical search")
	}
	if domains, ok := filters["include_domains"].([]interface{}); !ok || len(domains) != len(medicalDomains) {
		t.Errorf("include_domains = %v", filters["include_domains"])
	}
}

func TestSearchInvalidDepthDefaultsToBasic(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{{"title": "t", "url": "https://u", "content": "c", "score": 0.5}},
		})
	})

	client.Search(context.Background(), "gerd", "deep", false)

	if captured["search_depth"] != "basic" {
		t.Errorf("search_depth = %v, want basic", captured["search_depth"])
	}
	if _, hasFilters := captured["search_filters"]; hasFilters {
		t.Error("search_filters should be absent without the medical filter")
	}
}

func TestSearchFallsBackOnServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	results := client.Search(context.Background(), "What is the treatment for GERD?", "basic", true)

	if len(results) == 0 {
		t.Fatal("fallback must never be empty")
	}
	if !strings.Contains(results[0].Title, "GERD") {
		t.Errorf("expected GERD-matched fallback, got %q", results[0].Title)
	}
}

func TestSearchFallsBackOnEmptyResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	})

	results := client.Search(context.Background(), "something entirely unrelated", "basic", true)

	if len(results) == 0 {
		t.Fatal("fallback must never be empty")
	}
	// Generic topic gets the generic trio.
	if len(results) != 3 {
		t.Errorf("got %d generic fallback results, want 3", len(results))
	}
}

func TestFallbackResultsCappedAtFive(t *testing.T) {
	// Query matching several topic groups still yields at most 5.
	results := fallbackResults("gerd ulcer ibs crohn")
	if len(results) > 5 {
		t.Errorf("fallback returned %d results, want <= 5", len(results))
	}
}

func TestExtractRaw(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["include_raw_content"] != true {
			t.Error("include_raw_content not set")
		}
		if req["search_depth"] != "advanced" {
			t.Errorf("search_depth = %v, want advanced", req["search_depth"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"title": "Article", "url": "https://mayoclinic.org/a", "raw_content": "full text"},
			},
		})
	})

	title, content, err := client.ExtractRaw(context.Background(), "https://mayoclinic.org/a", "mayoclinic.org")
	if err != nil {
		t.Fatalf("ExtractRaw: %v", err)
	}
	if title != "Article" || content != "full text" {
		t.Errorf("got (%q, %q)", title, content)
	}
}

func TestExtractRawNoResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	})

	if _, _, err := client.ExtractRaw(context.Background(), "https://example.org/x", "example.org"); err == nil {
		t.Fatal("expected error for empty extraction")
	}
}
