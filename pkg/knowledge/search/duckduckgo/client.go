package duckduckgo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/pkg/knowledge/search"
)

const defaultBaseURL = "https://api.duckduckgo.com/"

// Client wraps the DuckDuckGo instant-answer API for general searches.
// No credential required.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.ILogger
}

func NewClient(log logger.ILogger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		logger:  log,
	}
}

// SetBaseURL overrides the API endpoint (tests).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

type instantAnswer struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// Search queries DuckDuckGo. Never returns an error: any failure degrades
// to keyword-matched placeholder results.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []search.Result {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return c.placeholderResults(query, maxResults)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("duckduckgo", "Search request failed, using placeholder results", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return c.placeholderResults(query, maxResults)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		c.logger.Warn("duckduckgo", "Unexpected search response, using placeholder results", map[string]interface{}{
			"query":  query,
			"status": resp.StatusCode,
		})
		return c.placeholderResults(query, maxResults)
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		c.logger.Warn("duckduckgo", "Malformed search response, using placeholder results", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return c.placeholderResults(query, maxResults)
	}

	var results []search.Result
	if answer.AbstractText != "" {
		results = append(results, search.Result{
			Title:   answer.Heading,
			URL:     answer.AbstractURL,
			Snippet: answer.AbstractText,
			Source:  "DuckDuckGo",
		})
	}
	for _, topic := range answer.RelatedTopics {
		if topic.Text == "" || topic.FirstURL == "" {
			continue
		}
		results = append(results, search.Result{
			Title:   topicTitle(topic.Text),
			URL:     topic.FirstURL,
			Snippet: topic.Text,
			Source:  "DuckDuckGo",
		})
		if len(results) >= maxResults {
			break
		}
	}

	if len(results) == 0 {
		return c.placeholderResults(query, maxResults)
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// topicTitle trims a related-topic text to a short title.
func topicTitle(text string) string {
	const maxLen = 80
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}

func (c *Client) placeholderResults(query string, maxResults int) []search.Result {
	terms := search.Tokens(query)

	var results []search.Result

	if terms.Any("gerd", "reflux", "heartburn") {
		results = append(results,
			search.Result{
				Title:   "Gastroesophageal Reflux Disease (GERD) - Mayo Clinic",
				URL:     "https://www.mayoclinic.org/diseases-conditions/gerd/",
				Snippet: "GERD, or gastroesophageal reflux disease, is a digestive disorder that affects the lower esophageal sphincter...",
				Source:  "Mayo Clinic",
			},
			search.Result{
				Title:   "Treatment for GERD - NIDDK",
				URL:     "https://www.niddk.nih.gov/health-information/digestive-diseases/acid-reflux-gerd-adults/treatment",
				Snippet: "Treatment for GERD includes lifestyle changes, medications, and possibly surgery...",
				Source:  "NIDDK",
			})
	}

	if terms.Any("ibd", "crohn", "colitis") {
		results = append(results,
			search.Result{
				Title:   "Crohn's Disease - Wikipedia",
				URL:     "https://en.wikipedia.org/wiki/Crohn%27s_disease",
				Snippet: "Crohn's disease is a type of inflammatory bowel disease that may affect any segment of the gastrointestinal tract...",
				Source:  "Wikipedia",
			},
			search.Result{
				Title:   "Inflammatory Bowel Disease (IBD) - CDC",
				URL:     "https://www.cdc.gov/ibd/",
				Snippet: "Inflammatory bowel disease (IBD) is a term for two conditions (Crohn's disease and ulcerative colitis) that are characterized by chronic inflammation...",
				Source:  "CDC",
			})
	}

	if terms.Any("ibs", "irritable") {
		results = append(results, search.Result{
			Title:   "Irritable Bowel Syndrome (IBS) - Johns Hopkins Medicine",
			URL:     "https://www.hopkinsmedicine.org/health/conditions-and-diseases/irritable-bowel-syndrome-ibs",
			Snippet: "Irritable bowel syndrome (IBS) is a common disorder that affects the large intestine. Signs and symptoms include cramping, abdominal pain, bloating, gas...",
			Source:  "Johns Hopkins Medicine",
		})
	}

	if len(results) < 2 {
		results = append(results,
			search.Result{
				Title:   "Digestive Disorders Overview - WebMD",
				URL:     "https://www.webmd.com/digestive-disorders/default.htm",
				Snippet: "Learn about digestive disorders and treatment options for various gastrointestinal conditions...",
				Source:  "WebMD",
			},
			search.Result{
				Title:   "Gastrointestinal Disorders - MedlinePlus",
				URL:     "https://medlineplus.gov/gastrointestinaldiseases.html",
				Snippet: "Your digestive system is made up of the gastrointestinal (GI) tract and your liver, pancreas, and gallbladder. Common GI disorders include...",
				Source:  "MedlinePlus",
			})
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
