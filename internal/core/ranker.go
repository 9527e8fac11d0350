package core

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// categoryKeywords are tested in this fixed order; the first matching set
// wins. The order is a deliberate tie-break for ambiguous titles: a
// "Head of Talent & Data" resolves to data_ai, never recruiting. Changing
// this order changes behavior and must update the priority-order test.
var categoryKeywords = []struct {
	category ContactCategory
	keywords []string
}{
	{CategoryLeadership, []string{"ceo", "chief executive officer", "founder", "co-founder", "cofounder", "president", "owner"}},
	{CategoryDataAI, []string{"head of data", "data science", "machine learning", "ai", "artificial intelligence", "chief data", "data officer"}},
	{CategoryRecruiting, []string{"talent", "recruit", "hiring", "hr", "human resources", "people operations"}},
}

var categoryRank = map[ContactCategory]float64{
	CategoryLeadership: 1,
	CategoryDataAI:     2,
	CategoryRecruiting: 3,
	CategoryOther:      4,
}

var categoryRoleLabel = map[ContactCategory]string{
	CategoryLeadership: "CEO/Founder",
	CategoryDataAI:     "Data/AI Leader",
	CategoryRecruiting: "Recruiter/HR",
	CategoryOther:      "Other",
}

// titleBonuses are evaluated in order; the first matching substring wins
var titleBonuses = []struct {
	substring string
	bonus     float64
}{
	{"ceo", 0.5},
	{"founder", 0.4},
	{"head of data", 0.3},
	{"chief data", 0.3},
	{"lead", 0.2},
}

// ContactRanker deduplicates and prioritizes raw contact observations into
// up to three key contacts per company
type ContactRanker struct {
	knownCompanyNames []string
	logger            *zap.Logger
}

// NewContactRanker creates a new contact ranker. knownCompanyNames is a
// list of non-person names that occasionally show up in people listings.
func NewContactRanker(knownCompanyNames []string, logger *zap.Logger) *ContactRanker {
	normalized := make([]string, len(knownCompanyNames))
	for i, name := range knownCompanyNames {
		normalized[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return &ContactRanker{
		knownCompanyNames: normalized,
		logger:            logger,
	}
}

// ClassifyTitle assigns a contact category from title keywords. It is a
// pure function of the title text.
func ClassifyTitle(title string) ContactCategory {
	lower := strings.ToLower(title)
	for _, set := range categoryKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, keyword) {
				return set.category
			}
		}
	}
	return CategoryOther
}

// priorityKey computes the sort key for an observation: category rank
// minus a fractional bonus for high-value title substrings. Lower sorts
// first.
func priorityKey(category ContactCategory, title string) float64 {
	base := categoryRank[category]
	lower := strings.ToLower(title)
	for _, tb := range titleBonuses {
		if strings.Contains(lower, tb.substring) {
			return base - tb.bonus
		}
	}
	return base
}

// isPersonName filters out mis-parsed cards and company listings
func (r *ContactRanker) isPersonName(obs ContactObservation) bool {
	name := strings.TrimSpace(obs.Name)
	if name == "" || name == strings.TrimSpace(obs.Title) {
		return false
	}
	lower := strings.ToLower(name)
	for _, company := range r.knownCompanyNames {
		if company != "" && strings.Contains(lower, company) {
			return false
		}
	}
	// A person name contains at least one space
	return strings.Contains(name, " ")
}

// Rank turns raw observations into up to three prioritized contacts.
// An empty result is a valid terminal outcome (no_contacts).
func (r *ContactRanker) Rank(observations []ContactObservation) []Contact {
	// Filter and collapse exact (name, title) duplicates within the batch
	type keyed struct {
		obs      ContactObservation
		category ContactCategory
	}
	seenPair := make(map[[2]string]bool)
	var filtered []keyed
	for _, obs := range observations {
		if !r.isPersonName(obs) {
			continue
		}
		pair := [2]string{obs.Name, obs.Title}
		if seenPair[pair] {
			continue
		}
		seenPair[pair] = true
		filtered = append(filtered, keyed{obs: obs, category: ClassifyTitle(obs.Title)})
	}

	// Collapse by name across passes, first seen wins
	seenName := make(map[string]bool)
	var unique []keyed
	for _, k := range filtered {
		if seenName[k.obs.Name] {
			continue
		}
		seenName[k.obs.Name] = true
		unique = append(unique, k)
	}

	// Stable sort by priority key, preserving first-seen order on ties
	sort.SliceStable(unique, func(i, j int) bool {
		return priorityKey(unique[i].category, unique[i].obs.Title) <
			priorityKey(unique[j].category, unique[j].obs.Title)
	})

	// First contact per target category, in category priority order
	var selected []Contact
	picked := make(map[string]bool)
	for _, cat := range []ContactCategory{CategoryLeadership, CategoryDataAI, CategoryRecruiting} {
		for _, k := range unique {
			if k.category != cat || picked[k.obs.Name] {
				continue
			}
			selected = append(selected, Contact{
				Role:       categoryRoleLabel[cat],
				Name:       k.obs.Name,
				Title:      k.obs.Title,
				Category:   cat,
				ProfileURL: k.obs.ProfileURL,
			})
			picked[k.obs.Name] = true
			break
		}
	}

	// Fill remaining slots from the global priority order
	for _, k := range unique {
		if len(selected) >= 3 {
			break
		}
		if picked[k.obs.Name] {
			continue
		}
		selected = append(selected, Contact{
			Role:       categoryRoleLabel[CategoryOther],
			Name:       k.obs.Name,
			Title:      k.obs.Title,
			Category:   k.category,
			ProfileURL: k.obs.ProfileURL,
		})
		picked[k.obs.Name] = true
	}

	if r.logger != nil {
		r.logger.Info("Ranked contacts",
			zap.Int("observations", len(observations)),
			zap.Int("unique", len(unique)),
			zap.Int("selected", len(selected)))
	}

	return selected
}
