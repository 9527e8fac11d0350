// Package apollo implements the Apollo.io people-search directory source.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spoorthi/outreach-ai/internal/core"
)

const defaultTimeout = 15 * time.Second

// Source queries Apollo.io's people search. When a discovered person
// record carries the organization's email-pattern template but no direct
// address, the template is rendered against the name and domain.
type Source struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewSource creates a new Apollo.io source
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
func (s *Source) Name() string { return "apollo" }

type searchRequest struct {
	APIKey     string `json:"api_key"`
	OrgDomains string `json:"q_organization_domains"`
	FirstName  string `json:"q_first_name"`
	LastName   string `json:"q_last_name"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
}

type searchResponse struct {
	People []struct {
		Email        string `json:"email"`
		Organization struct {
			EmailPattern string `json:"email_pattern"`
		} `json:"organization"`
	} `json:"people"`
}

// Lookup searches for the person and collects direct emails, falling back
// to rendering the organization's pattern template.
func (s *Source) Lookup(ctx context.Context, firstName, lastName, domain string) core.DirectoryResult {
	if s.apiKey == "" {
		return core.DirectoryResult{Status: "skipped", Note: "Apollo.io API key not configured"}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return core.DirectoryResult{Status: "error", Note: err.Error()}
		}
	}

	payload, err := json.Marshal(searchRequest{
		APIKey:     s.apiKey,
		OrgDomains: domain,
		FirstName:  firstName,
		LastName:   lastName,
		Page:       1,
		PerPage:    5,
	})
	if err != nil {
		return core.DirectoryResult{Status: "error", Note: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/people/search", bytes.NewReader(payload))
	if err != nil {
		return core.DirectoryResult{Status: "error", Note: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Apollo.io request failed", zap.Error(err))
		return core.DirectoryResult{Status: "error", Note: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Debug("Apollo.io returned non-OK status", zap.Int("status", resp.StatusCode))
		return core.DirectoryResult{Status: "no_results"}
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		s.logger.Warn("Failed to decode Apollo.io response", zap.Error(err))
		return core.DirectoryResult{Status: "error", Note: err.Error()}
	}

	result := core.DirectoryResult{Status: "no_results"}
	for _, person := range data.People {
		if person.Email != "" {
			result.Emails = append(result.Emails, person.Email)
			continue
		}
		if len(result.Emails) == 0 && person.Organization.EmailPattern != "" {
			if email := core.RenderPattern(person.Organization.EmailPattern, firstName, lastName, domain); email != "" {
				result.Emails = append(result.Emails, email)
				result.Note = "Generated from company email pattern"
			}
		}
	}

	if len(result.Emails) > 0 {
		result.Status = "success"
	}
	return result
}
