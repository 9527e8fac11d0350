package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClassifyTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected ContactCategory
	}{
		{"CEO", CategoryLeadership},
		{"Co-Founder & CTO", CategoryLeadership},
		{"Chief Executive Officer", CategoryLeadership},
		{"President", CategoryLeadership},
		{"Head of Data Science", CategoryDataAI},
		{"Machine Learning Engineer", CategoryDataAI},
		{"Chief Data Officer", CategoryDataAI},
		{"Senior Recruiter", CategoryRecruiting},
		{"VP of Talent Acquisition", CategoryRecruiting},
		{"People Operations Manager", CategoryRecruiting},
		{"Software Engineer", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTitle(tt.title))
		})
	}
}

// Locks the category priority order: leadership before data/AI before
// recruiting before everything else.
func TestClassifyTitlePriorityOrder(t *testing.T) {
	titles := []string{"CEO", "Head of Data Science", "Senior Recruiter", "Software Engineer"}
	categories := []ContactCategory{CategoryLeadership, CategoryDataAI, CategoryRecruiting, CategoryOther}

	var prev float64 = -1
	for i, title := range titles {
		key := priorityKey(categories[i], title)
		assert.Greater(t, key, prev, "priority of %q must sort after the previous title", title)
		prev = key
	}
}

func TestRankSelectsOnePerCategory(t *testing.T) {
	ranker := NewContactRanker(nil, zap.NewNop())

	contacts := ranker.Rank([]ContactObservation{
		{Name: "Dana Engineer", Title: "Software Engineer"},
		{Name: "Rita Recruiter", Title: "Technical Recruiter"},
		{Name: "Carl Chief", Title: "CEO"},
		{Name: "Dave Data", Title: "Head of Data Science"},
		{Name: "Second Chief", Title: "Founder"},
	})

	require.Len(t, contacts, 3)
	assert.Equal(t, "Carl Chief", contacts[0].Name)
	assert.Equal(t, "CEO/Founder", contacts[0].Role)
	assert.Equal(t, "Dave Data", contacts[1].Name)
	assert.Equal(t, "Data/AI Leader", contacts[1].Role)
	assert.Equal(t, "Rita Recruiter", contacts[2].Name)
	assert.Equal(t, "Recruiter/HR", contacts[2].Role)
}

func TestRankFillsRemainingSlots(t *testing.T) {
	ranker := NewContactRanker(nil, zap.NewNop())

	contacts := ranker.Rank([]ContactObservation{
		{Name: "Carl Chief", Title: "CEO"},
		{Name: "Eve Engineer", Title: "Software Engineer"},
		{Name: "Pat Product", Title: "Product Manager"},
	})

	require.Len(t, contacts, 3)
	assert.Equal(t, "Carl Chief", contacts[0].Name)
	// Remaining slots are filled in priority order with the generic role
	assert.Equal(t, "Other", contacts[1].Role)
	assert.Equal(t, "Other", contacts[2].Role)
	assert.Equal(t, CategoryOther, contacts[1].Category)
}

func TestRankDeduplicatesByName(t *testing.T) {
	ranker := NewContactRanker(nil, zap.NewNop())

	contacts := ranker.Rank([]ContactObservation{
		{Name: "Carl Chief", Title: "CEO", Source: "people_card"},
		{Name: "Carl Chief", Title: "CEO", Source: "search_result"},
		{Name: "Carl Chief", Title: "CEO & Founder", Source: "about_page"},
	})

	require.Len(t, contacts, 1)
	// First-seen title wins
	assert.Equal(t, "CEO", contacts[0].Title)
}

func TestRankFiltersNonPersonNames(t *testing.T) {
	ranker := NewContactRanker([]string{"Acme Corp"}, zap.NewNop())

	contacts := ranker.Rank([]ContactObservation{
		{Name: "Acme Corp", Title: "Company page"},
		{Name: "Madonna", Title: "CEO"},
		{Name: "Duplicate Text", Title: "Duplicate Text"},
		{Name: "", Title: "CEO"},
		{Name: "Real Person", Title: "CEO"},
	})

	require.Len(t, contacts, 1)
	assert.Equal(t, "Real Person", contacts[0].Name)
}

func TestRankEmptyObservations(t *testing.T) {
	ranker := NewContactRanker(nil, zap.NewNop())
	assert.Empty(t, ranker.Rank(nil))
}
