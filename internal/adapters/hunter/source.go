// Package hunter implements the Hunter.io contact-directory source.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spoorthi/outreach-ai/internal/core"
)

const defaultTimeout = 15 * time.Second

// Source queries Hunter.io for known addresses at a domain. All upstream
// failures are reported as "no data", never as errors.
type Source struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewSource creates a new Hunter.io source. limiter may be shared with
// other directory sources to pace upstream requests.
func NewSource(apiKey, baseURL string, limiter *rate.Limiter, logger *zap.Logger) *Source {
	return &Source{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: limiter,
		logger:  logger,
	}
}

// Name identifies the source in candidate-set status maps
func (s *Source) Name() string { return "hunter" }

type domainSearchResponse struct {
	Data struct {
		Pattern string `json:"pattern"`
		Emails  []struct {
			Value     string `json:"value"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"emails"`
	} `json:"data"`
}

type emailFinderResponse struct {
	Data struct {
		Email string  `json:"email"`
		Score float64 `json:"score"`
	} `json:"data"`
}

// Lookup runs the domain-search endpoint first, matching the person among
// the bulk records, then falls back to the email-finder endpoint.
func (s *Source) Lookup(ctx context.Context, firstName, lastName, domain string) core.DirectoryResult {
	if s.apiKey == "" {
		return core.DirectoryResult{Status: "skipped", Note: "Hunter.io API key not configured"}
	}

	var emails []string

	var searchResp domainSearchResponse
	searchURL := fmt.Sprintf("%s/domain-search?domain=%s&api_key=%s",
		s.baseURL, url.QueryEscape(domain), url.QueryEscape(s.apiKey))
	if s.get(ctx, searchURL, &searchResp) {
		for _, record := range searchResp.Data.Emails {
			if strings.EqualFold(record.FirstName, firstName) &&
				strings.EqualFold(record.LastName, lastName) &&
				record.Value != "" {
				emails = append(emails, record.Value)
			}
		}
	}

	if len(emails) == 0 {
		var finderResp emailFinderResponse
		finderURL := fmt.Sprintf("%s/email-finder?domain=%s&first_name=%s&last_name=%s&api_key=%s",
			s.baseURL, url.QueryEscape(domain), url.QueryEscape(firstName),
			url.QueryEscape(lastName), url.QueryEscape(s.apiKey))
		if s.get(ctx, finderURL, &finderResp) && finderResp.Data.Email != "" {
			emails = append(emails, finderResp.Data.Email)
		}
	}

	if len(emails) == 0 {
		return core.DirectoryResult{Status: "no_results"}
	}
	return core.DirectoryResult{Emails: emails, Status: "success"}
}

// get performs one rate-limited GET and decodes the JSON body. Any
// failure returns false; directory sources never propagate errors.
func (s *Source) get(ctx context.Context, requestURL string, out interface{}) bool {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return false
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Hunter.io request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Debug("Hunter.io returned non-OK status", zap.Int("status", resp.StatusCode))
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.logger.Warn("Failed to decode Hunter.io response", zap.Error(err))
		return false
	}
	return true
}
