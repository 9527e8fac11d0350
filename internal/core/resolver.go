package core

import (
	"context"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/utils"
)

// MXChecker reports whether a domain can receive mail at all
type MXChecker interface {
	HasMXRecords(ctx context.Context, domain string) bool
}

// NetMXChecker resolves MX records with the default resolver
type NetMXChecker struct{}

// HasMXRecords reports whether the domain has at least one MX record
func (NetMXChecker) HasMXRecords(ctx context.Context, domain string) bool {
	records, err := net.DefaultResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

// EmailResolver produces a ranked candidate set and a single best guess
// for a person's address at a domain. Sources are queried strictly in
// order; later sources only fill gaps left by earlier ones.
type EmailResolver struct {
	sources []DirectorySource
	probe   DeliverabilityProbe
	mx      MXChecker
	logger  *zap.Logger
}

// NewEmailResolver creates a new email resolver
func NewEmailResolver(sources []DirectorySource, probe DeliverabilityProbe, mx MXChecker, logger *zap.Logger) *EmailResolver {
	return &EmailResolver{
		sources: sources,
		probe:   probe,
		mx:      mx,
		logger:  logger,
	}
}

// PermutationStatus values reported for the generated-candidates source
const (
	PermutationsOK        = "success"
	PermutationsNoMX      = "no_mx_records"
	PermutationsNoneValid = "no_valid_emails"
)

// GeneratePermutations returns the 11 deterministic candidate forms for a
// first/last name at a domain, in fixed priority order, no duplicates.
func GeneratePermutations(firstName, lastName, domain string) []string {
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	var fi, li string
	if first != "" {
		fi = first[:1]
	}
	if last != "" {
		li = last[:1]
	}

	patterns := []string{
		fmt.Sprintf("%s@%s", first, domain),
		fmt.Sprintf("%s.%s@%s", first, last, domain),
		fmt.Sprintf("%s%s@%s", first, last, domain),
		fmt.Sprintf("%s.%s@%s", last, first, domain),
		fmt.Sprintf("%s%s@%s", fi, last, domain),
		fmt.Sprintf("%s%s@%s", first, li, domain),
		fmt.Sprintf("%s.%s@%s", fi, last, domain),
		fmt.Sprintf("%s-%s@%s", first, last, domain),
		fmt.Sprintf("%s%s@%s", last, first, domain),
		fmt.Sprintf("%s_%s@%s", first, last, domain),
		fmt.Sprintf("%s%s@%s", fi, li, domain),
	}

	seen := make(map[string]bool, len(patterns))
	unique := patterns[:0]
	for _, p := range patterns {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}
	return unique
}

// Resolve builds the candidate set for a person at a raw domain string.
// Malformed input yields an error; upstream failures never do.
func (r *EmailResolver) Resolve(ctx context.Context, fullName, rawDomain string) (*EmailCandidateSet, error) {
	fullName = strings.TrimSpace(fullName)
	domain := utils.NormalizeDomain(rawDomain)
	if fullName == "" || domain == "" {
		return nil, fmt.Errorf("full name and domain are required")
	}

	first, last, err := utils.SplitFullName(fullName)
	if err != nil {
		return nil, err
	}

	set := &EmailCandidateSet{
		FullName:       fullName,
		FirstName:      first,
		LastName:       last,
		Domain:         domain,
		SourceStatuses: make(map[string]string),
	}

	var all []string
	directoryHit := false

	// Directory sources, in fixed order
	for _, source := range r.sources {
		result := source.Lookup(ctx, first, last, domain)
		set.SourceStatuses[source.Name()] = result.Status
		if len(result.Emails) > 0 {
			directoryHit = true
			all = append(all, result.Emails...)
		}
		if r.logger != nil {
			r.logger.Debug("Directory source queried",
				zap.String("source", source.Name()),
				zap.String("status", result.Status),
				zap.Int("emails", len(result.Emails)))
		}
	}

	// Permutation-and-verify fallback. The MX gate runs before any probe:
	// a domain without MX records cannot validate any candidate.
	if !r.mx.HasMXRecords(ctx, domain) {
		set.SourceStatuses["permutations"] = PermutationsNoMX
	} else {
		var verified []string
		for _, candidate := range GeneratePermutations(first, last, domain) {
			if r.probe.Probe(ctx, candidate) == ProbePositive {
				verified = append(verified, candidate)
			}
		}
		if len(verified) > 0 {
			set.SourceStatuses["permutations"] = PermutationsOK
			all = append(all, verified...)
		} else {
			set.SourceStatuses["permutations"] = PermutationsNoneValid
		}
	}

	// Merge preserving first-seen order, drop duplicates
	seen := make(map[string]bool, len(all))
	for _, email := range all {
		if !seen[email] {
			seen[email] = true
			set.Candidates = append(set.Candidates, email)
		}
	}

	// Pick the most likely address: first positively probed candidate,
	// else the first candidate, else a synthesized best guess.
	switch {
	case len(set.Candidates) > 0:
		set.MostLikely = set.Candidates[0]
		for _, email := range set.Candidates {
			if r.probe.Probe(ctx, email) == ProbePositive {
				set.MostLikely = email
				break
			}
		}
		if directoryHit {
			set.Confidence = "high"
		} else {
			set.Confidence = "medium"
		}
	default:
		set.MostLikely = fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), domain)
		set.Confidence = "low"
		set.Note = "No verified emails found. This is a best guess based on common patterns."
	}

	if r.logger != nil {
		r.logger.Info("Resolved email candidates",
			zap.String("person", fullName),
			zap.String("domain", domain),
			zap.Int("candidates", len(set.Candidates)),
			zap.String("most_likely", set.MostLikely),
			zap.String("confidence", set.Confidence))
	}

	return set, nil
}

// RenderPattern applies an organizational email-pattern template to a
// name and domain. Recognized tokens: {first}, {last}, {f}, {l}, {fi},
// {li}, {f1}, {l1}. The domain is forced onto the result.
func RenderPattern(pattern, firstName, lastName, domain string) string {
	if pattern == "" {
		return ""
	}

	first := strings.ToLower(firstName)
	last := strings.ToLower(lastName)
	var fi, li string
	if first != "" {
		fi = first[:1]
	}
	if last != "" {
		li = last[:1]
	}

	email := strings.ToLower(pattern)
	replacer := strings.NewReplacer(
		"{first}", first,
		"{last}", last,
		"{fi}", fi,
		"{li}", li,
		"{f1}", fi,
		"{l1}", li,
		"{f}", fi,
		"{l}", li,
	)
	email = replacer.Replace(email)

	if !strings.Contains(email, "@") {
		return email + "@" + domain
	}
	if !strings.HasSuffix(email, "@"+domain) {
		local := strings.SplitN(email, "@", 2)[0]
		return local + "@" + domain
	}
	return email
}
