package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/pkg/knowledge/search"
)

const defaultBaseURL = "https://api.tavily.com/search"

// Curated medical publishers passed to the API as a domain allow-list
// when the medical filter is on.
var medicalDomains = []string{
	"pubmed.ncbi.nlm.nih.gov",
	"mayoclinic.org",
	"medlineplus.gov",
	"nejm.org",
	"jamanetwork.com",
	"thelancet.com",
	"bmj.com",
	"uptodate.com",
	"cochranelibrary.com",
	"nih.gov",
}

// Client wraps the Tavily search API for medical research search.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  logger.ILogger
}

// NewClient fails fast when the API key is missing; a missing credential
// is a configuration error, not a degradable one.
func NewClient(apiKey string, log logger.ILogger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY is not set")
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		logger:  log,
	}, nil
}

// SetBaseURL overrides the API endpoint (tests).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

type searchRequest struct {
	Query          string         `json:"query"`
	SearchDepth    string         `json:"search_depth"`
	Topic          string         `json:"topic,omitempty"`
	IncludeAnswer  bool           `json:"include_answer"`
	IncludeImages  bool           `json:"include_images"`
	IncludeRaw     bool           `json:"include_raw_content"`
	MaxResults     int            `json:"max_results"`
	SearchFilters  *searchFilters `json:"search_filters,omitempty"`
	IncludeDomains []string       `json:"include_domains,omitempty"`
}

type searchFilters struct {
	IncludeDomains []string `json:"include_domains"`
}

type searchResponse struct {
	Results []struct {
		Title      string  `json:"title"`
		URL        string  `json:"url"`
		Content    string  `json:"content"`
		RawContent string  `json:"raw_content"`
		Score      float64 `json:"score"`
	} `json:"results"`
}

// Search queries the Tavily API. It never returns an error: on any
// transport, status, or parse failure it degrades to keyword-matched
// canned results so callers always receive a non-empty list.
func (c *Client) Search(ctx context.Context, query, searchDepth string, filterMedical bool) []search.Result {
	if searchDepth != "basic" && searchDepth != "comprehensive" {
		searchDepth = "basic"
	}

	payload := searchRequest{
		Query:       query,
		SearchDepth: searchDepth,
		MaxResults:  5,
	}
	if filterMedical {
		payload.Topic = "medical"
		payload.SearchFilters = &searchFilters{IncludeDomains: medicalDomains}
	}

	data, err := c.post(ctx, payload)
	if err != nil {
		c.logger.Warn("tavily", "Search request failed, using fallback results", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return fallbackResults(query)
	}

	results := make([]search.Result, 0, len(data.Results))
	for _, item := range data.Results {
		results = append(results, search.Result{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: item.Content,
			Score:   item.Score,
		})
	}

	if len(results) == 0 {
		return fallbackResults(query)
	}
	return results
}

func (c *Client) post(ctx context.Context, payload searchRequest) (*searchResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var data searchResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &data, nil
}

// --- Raw content extraction (used by the extractor's first tier) ---

// ExtractRaw asks the search API for the raw content of a specific URL by
// restricting the search to that URL's domain.
func (c *Client) ExtractRaw(ctx context.Context, targetURL, domain string) (title, content string, err error) {
	payload := searchRequest{
		Query:          fmt.Sprintf("Extract information from %s", targetURL),
		SearchDepth:    "advanced",
		IncludeRaw:     true,
		MaxResults:     1,
		IncludeDomains: []string{domain},
	}

	data, err := c.post(ctx, payload)
	if err != nil {
		return "", "", err
	}
	if len(data.Results) == 0 {
		return "", "", fmt.Errorf("no results for %s", targetURL)
	}

	first := data.Results[0]
	content = first.RawContent
	if content == "" {
		content = first.Content
	}
	if first.Title == "" && content == "" {
		return "", "", fmt.Errorf("empty extraction for %s", targetURL)
	}
	return first.Title, content, nil
}

// Probe checks API reachability and key validity with a minimal query.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.post(ctx, searchRequest{Query: "test", MaxResults: 1})
	return err
}

// Static keyword-matched fallbacks, grouped by common gastro topics.
// Guarantees the medical search path never comes back empty.
func fallbackResults(query string) []search.Result {
	terms := search.Tokens(query)

	var results []search.Result

	if terms.Any("gerd", "reflux", "heartburn", "acid") {
		results = append(results,
			search.Result{
				Title:   "Gastroesophageal Reflux Disease (GERD) - Mayo Clinic",
				URL:     "https://www.mayoclinic.org/diseases-conditions/gerd/symptoms-causes/syc-20361940",
				Snippet: "GERD, or gastroesophageal reflux disease, is a digestive disorder that affects the lower esophageal sphincter (LES), the ring of muscle between the esophagus and stomach.",
				Score:   0.95,
			},
			search.Result{
				Title:   "Treatment for GERD - NIDDK",
				URL:     "https://www.niddk.nih.gov/health-information/digestive-diseases/acid-reflux-gerd-adults/treatment",
				Snippet: "Treatment for GERD includes lifestyle changes, medications, and possibly surgery. Doctors often recommend lifestyle changes as a first treatment for GERD.",
				Score:   0.92,
			})
	}

	if terms.Any("ibd", "crohn", "colitis", "inflammatory") {
		results = append(results,
			search.Result{
				Title:   "Inflammatory Bowel Disease (IBD) - CDC",
				URL:     "https://www.cdc.gov/ibd/",
				Snippet: "Inflammatory bowel disease (IBD) is a term for two conditions (Crohn's disease and ulcerative colitis) that are characterized by chronic inflammation of the gastrointestinal (GI) tract.",
				Score:   0.94,
			},
			search.Result{
				Title:   "Crohn's Disease - NIDDK",
				URL:     "https://www.niddk.nih.gov/health-information/digestive-diseases/crohns-disease",
				Snippet: "Crohn's disease is a chronic disease that causes inflammation and irritation in your digestive tract. Most commonly, Crohn's affects your small intestine and the beginning of your large intestine.",
				Score:   0.91,
			})
	}

	if terms.Any("ibs", "irritable", "bowel", "syndrome") {
		results = append(results,
			search.Result{
				Title:   "Irritable Bowel Syndrome (IBS) - Johns Hopkins Medicine",
				URL:     "https://www.hopkinsmedicine.org/health/conditions-and-diseases/irritable-bowel-syndrome-ibs",
				Snippet: "Irritable bowel syndrome (IBS) is a common disorder that affects the large intestine. Signs and symptoms include cramping, abdominal pain, bloating, gas, and diarrhea or constipation, or both.",
				Score:   0.93,
			},
			search.Result{
				Title:   "Irritable Bowel Syndrome - NIDDK",
				URL:     "https://www.niddk.nih.gov/health-information/digestive-diseases/irritable-bowel-syndrome",
				Snippet: "Irritable bowel syndrome (IBS) is a group of symptoms that occur together, including repeated pain in your abdomen and changes in your bowel movements, which may be diarrhea, constipation, or both.",
				Score:   0.90,
			})
	}

	if terms.Any("ulcer", "peptic", "stomach") {
		results = append(results,
			search.Result{
				Title:   "Peptic Ulcer Disease - Mayo Clinic",
				URL:     "https://www.mayoclinic.org/diseases-conditions/peptic-ulcer/symptoms-causes/syc-20354223",
				Snippet: "Peptic ulcers are open sores that develop on the inside lining of your stomach and the upper portion of your small intestine. The most common symptom of a peptic ulcer is stomach pain.",
				Score:   0.92,
			},
			search.Result{
				Title:   "Peptic Ulcers (Stomach Ulcers) - NIDDK",
				URL:     "https://www.niddk.nih.gov/health-information/digestive-diseases/peptic-ulcers-stomach-ulcers",
				Snippet: "A peptic ulcer is a sore on the lining of your stomach, small intestine or esophagus. A peptic ulcer in the stomach is called a gastric ulcer.",
				Score:   0.89,
			})
	}

	if len(results) < 2 {
		results = append(results,
			search.Result{
				Title:   "Digestive Disorders Overview - WebMD",
				URL:     "https://www.webmd.com/digestive-disorders/default.htm",
				Snippet: "Learn about digestive disorders and treatment options for various gastrointestinal conditions including IBS, Crohn's disease, GERD, and more.",
				Score:   0.85,
			},
			search.Result{
				Title:   "Gastrointestinal Disorders - MedlinePlus",
				URL:     "https://medlineplus.gov/gastrointestinaldiseases.html",
				Snippet: "Your digestive system is made up of the gastrointestinal (GI) tract and your liver, pancreas, and gallbladder. Common GI disorders include GERD, celiac disease, IBD, and IBS.",
				Score:   0.82,
			},
			search.Result{
				Title:   "American College of Gastroenterology",
				URL:     "https://gi.org/patients/",
				Snippet: "The American College of Gastroenterology provides information on digestive health and digestive diseases including common GI conditions and their treatments.",
				Score:   0.80,
			})
	}

	if len(results) > 5 {
		results = results[:5]
	}
	return results
}
