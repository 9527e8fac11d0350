// Package website extracts technology keywords from a company's public
// website to steer resume selection.
package website

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 20 * time.Second
	maxTextSize    = 8000
)

// techKeywords is the fixed vocabulary scanned for in page text
var techKeywords = []string{
	"python", "javascript", "typescript", "react", "node", "golang",
	"java", "scala", "rust", "kotlin", "swift",
	"machine learning", "deep learning", "artificial intelligence",
	"data science", "data engineering", "analytics", "big data",
	"aws", "azure", "gcp", "cloud", "kubernetes", "docker",
	"sql", "nosql", "postgres", "mongodb", "kafka", "spark",
	"api", "microservices", "devops", "blockchain", "fintech",
	"saas", "mobile", "ios", "android", "frontend", "backend",
}

// Analyzer fetches a page and reports which technology keywords appear
// in its visible text.
type Analyzer struct {
	client *http.Client
	logger *zap.Logger
}

// NewAnalyzer creates a new website keyword analyzer
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// Analyze fetches the URL and returns the technology keywords found in
// its visible text, in vocabulary order.
func (a *Analyzer) Analyze(ctx context.Context, pageURL string) ([]string, error) {
	if pageURL == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		pageURL = "https://" + pageURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; outreach-ai/1.0)")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s returned status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}
	doc.Find("script, style, noscript").Remove()

	text := strings.ToLower(strings.Join(strings.Fields(doc.Text()), " "))
	if len(text) > maxTextSize {
		text = text[:maxTextSize]
	}

	keywords := MatchKeywords(text)
	a.logger.Debug("Analyzed website",
		zap.String("url", pageURL),
		zap.Int("keywords", len(keywords)))
	return keywords, nil
}

// MatchKeywords scans lowercased text against the fixed vocabulary
func MatchKeywords(text string) []string {
	var found []string
	for _, keyword := range techKeywords {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}
