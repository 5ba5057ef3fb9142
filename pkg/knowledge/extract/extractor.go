package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gastroassist-be/internal/pkg/logger"
)

// ExtractedContent is always produced, success or fallback. Absence of
// data is represented by placeholder content and the ExtractionSuccess
// flag, never by omission.
type ExtractedContent struct {
	Title             string `json:"title"`
	Content           string `json:"content"`
	Author            string `json:"author"`
	PublishedDate     string `json:"published_date"`
	SourceURL         string `json:"source_url"`
	ExtractionSuccess bool   `json:"extraction_success"`
	ExtractionMethod  string `json:"extraction_method,omitempty"`
	Error             string `json:"error,omitempty"`
}

// RawExtractor is the API-backed first tier of the ladder.
type RawExtractor interface {
	ExtractRaw(ctx context.Context, targetURL, domain string) (title, content string, err error)
}

// Extractor fetches and normalizes full-text content for a URL with a
// three-tier ladder: extraction API, direct HTTP fetch, synthetic
// placeholder. Every tier returns a structurally identical object.
type Extractor struct {
	api     RawExtractor
	fetcher *http.Client
	prober  *http.Client
	logger  logger.ILogger
}

const (
	// Crude-content cap for the direct-fetch tier.
	basicFetchLimit = 5000

	fetchTimeout = 10 * time.Second
	probeTimeout = 5 * time.Second
)

func NewExtractor(api RawExtractor, log logger.ILogger) *Extractor {
	return &Extractor{
		api:     api,
		fetcher: &http.Client{Timeout: fetchTimeout},
		prober:  &http.Client{Timeout: probeTimeout},
		logger:  log,
	}
}

// Extract never returns an error; the last tier always succeeds in
// producing a placeholder. SourceURL always equals the input URL.
func (e *Extractor) Extract(ctx context.Context, targetURL string) ExtractedContent {
	title, content, err := e.api.ExtractRaw(ctx, targetURL, domainOf(targetURL))
	if err == nil && (title != "" || content != "") {
		return ExtractedContent{
			Title:             title,
			Content:           content,
			SourceURL:         targetURL,
			ExtractionSuccess: true,
		}
	}

	if err != nil {
		e.logger.Warn("extract", "API extraction failed, trying direct fetch", map[string]interface{}{
			"url":   targetURL,
			"error": err.Error(),
		})
	}

	return e.directFetch(ctx, targetURL)
}

// directFetch is the second tier: a raw GET of the page, truncated to a
// crude content block.
func (e *Extractor) directFetch(ctx context.Context, targetURL string) ExtractedContent {
	req, err := http.NewRequestWithContext(ctx, "GET", targetURL, nil)
	if err != nil {
		return e.placeholder(ctx, targetURL, err)
	}

	resp, err := e.fetcher.Do(req)
	if err != nil {
		return e.placeholder(ctx, targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return e.placeholder(ctx, targetURL, fmt.Errorf("direct fetch status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, basicFetchLimit))
	if err != nil {
		return e.placeholder(ctx, targetURL, err)
	}

	content := fmt.Sprintf(
		"[NOTE: Extracted with basic method. Content may include HTML markup.]\n\n%s...",
		string(body),
	)

	return ExtractedContent{
		Title:             guessTitle(targetURL),
		Content:           content,
		Author:            "Unknown",
		SourceURL:         targetURL,
		ExtractionSuccess: true,
		ExtractionMethod:  "basic",
	}
}

// placeholder is the final tier. A short HEAD probe decides which
// unavailability message to synthesize.
func (e *Extractor) placeholder(ctx context.Context, targetURL string, cause error) ExtractedContent {
	e.logger.Warn("extract", "Falling back to placeholder content", map[string]interface{}{
		"url":   targetURL,
		"error": cause.Error(),
	})

	accessible := false
	if req, err := http.NewRequestWithContext(ctx, "HEAD", targetURL, nil); err == nil {
		if resp, err := e.prober.Do(req); err == nil {
			resp.Body.Close()
			accessible = resp.StatusCode < 400
		}
	}

	content := "Unable to extract full content from this URL."
	if accessible {
		content += " Please visit the source directly for complete information."
	} else {
		content += " The URL may be invalid or the website might be inaccessible currently."
	}
	content += fmt.Sprintf("\n\nSource URL: %s", targetURL)

	return ExtractedContent{
		Title:             guessTitle(targetURL),
		Content:           content,
		Author:            "Unknown",
		SourceURL:         targetURL,
		ExtractionSuccess: false,
		ExtractionMethod:  "placeholder",
		Error:             cause.Error(),
	}
}

// guessTitle derives a readable title from the last URL path segment.
func guessTitle(targetURL string) string {
	segment := lastPathSegment(targetURL)
	if segment == "" {
		return fmt.Sprintf("Content from %s", domainOf(targetURL))
	}

	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	if idx := strings.Index(segment, "."); idx >= 0 {
		segment = segment[:idx]
	}
	return titleCase(segment)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func lastPathSegment(targetURL string) string {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		parts := strings.Split(strings.TrimRight(targetURL, "/"), "/")
		return parts[len(parts)-1]
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	return parts[len(parts)-1]
}

func domainOf(targetURL string) string {
	parsed, err := url.Parse(targetURL)
	if err == nil && parsed.Host != "" {
		return parsed.Host
	}
	trimmed := targetURL
	if idx := strings.Index(trimmed, "//"); idx >= 0 {
		trimmed = trimmed[idx+2:]
	}
	if idx := strings.Index(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}
