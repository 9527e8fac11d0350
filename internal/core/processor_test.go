package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/exclusion"
)

type recordingStore struct {
	mu             sync.Mutex
	progress       []string
	contacts       map[string][]Contact
	messages       map[string]MessageRecord
	companyResults []CompanyResult
	allResults     []CompanyResult
	summary        *Summary
	snapshots      []error
	resetCalls     int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		contacts: make(map[string][]Contact),
		messages: make(map[string]MessageRecord),
	}
}

func (s *recordingStore) ResetRun(total int, excluded []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetCalls++
	return nil
}

func (s *recordingStore) AppendProgress(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append(s.progress, line)
	return nil
}

func (s *recordingStore) SaveContacts(company, linkedinURL string, contacts []Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[company] = contacts
	return nil
}

func (s *recordingStore) SaveMessageRecord(company, contact string, record MessageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[company+"/"+contact] = record
	return nil
}

func (s *recordingStore) SaveCompanyResult(result CompanyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companyResults = append(s.companyResults, result)
	return nil
}

func (s *recordingStore) SaveAllResults(results []CompanyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allResults = append([]CompanyResult(nil), results...)
	return nil
}

func (s *recordingStore) WriteSummary(summary Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
	return nil
}

func (s *recordingStore) SaveEmergencySnapshot(runErr error, results []CompanyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, runErr)
	return nil
}

type stubScraper struct {
	observations []ContactObservation
	err          error
	calls        int
}

func (s *stubScraper) ScrapeContacts(ctx context.Context, companyURL string) ([]ContactObservation, error) {
	s.calls++
	return s.observations, s.err
}

type stubMailer struct {
	err   error
	sent  []Delivery
	calls int
}

func (m *stubMailer) Send(ctx context.Context, delivery Delivery) error {
	m.calls++
	m.sent = append(m.sent, delivery)
	return m.err
}

func newTestProcessor(t *testing.T, scraper *stubScraper, mailer *stubMailer, store RunStore) *CompanyProcessor {
	t.Helper()
	logger := zap.NewNop()

	resolver := NewEmailResolver(
		[]DirectorySource{&stubSource{
			name:   "hunter",
			result: DirectoryResult{Emails: []string{"jane.doe@acme.com"}, Status: "success"},
		}},
		&stubProbe{fallback: ProbeNegative},
		stubMX{has: true},
		logger,
	)
	composer := NewMessageComposer(&stubGenerator{reply: "Subject: Hello\n\nHi there."}, "Spoorthi", logger)
	matcher := NewResumeMatcher(writeResumeFiles(t, "resume.pdf"), nil, nil, logger)

	processor := NewCompanyProcessor(
		exclusion.NewChecker(nil, logger),
		scraper,
		NewContactRanker(nil, logger),
		resolver,
		composer,
		matcher,
		mailer,
		store,
		ProcessorOptions{},
		logger,
	)
	processor.sleep = func(time.Duration) {}
	return processor
}

func TestNormalizeCompanyURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.linkedin.com/company/acme", "https://www.linkedin.com/company/acme/"},
		{"linkedin.com/company/acme/", "https://linkedin.com/company/acme/"},
		{"acme", "https://www.linkedin.com/company/acme/"},
		{"linkedin.com/acme", "https://www.linkedin.com/company/acme/"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCompanyURL(tt.input))
		})
	}
}

func TestProcessExcludedLocation(t *testing.T) {
	scraper := &stubScraper{}
	store := newRecordingStore()
	processor := newTestProcessor(t, scraper, &stubMailer{}, store)

	result := processor.Process(context.Background(), CompanyRecord{
		Name:        "Acme",
		Location:    "New York, NY",
		LinkedInURL: "linkedin.com/company/acme",
	})

	assert.Equal(t, CompanySkipped, result.Status)
	assert.Equal(t, SkipReasonLocation, result.Reason)
	// The gate runs before any network activity
	assert.Zero(t, scraper.calls)
	assert.Empty(t, store.contacts)
}

func TestProcessMissingLinkedInURL(t *testing.T) {
	processor := newTestProcessor(t, &stubScraper{}, &stubMailer{}, newRecordingStore())

	result := processor.Process(context.Background(), CompanyRecord{Name: "Acme", Location: "Austin"})

	assert.Equal(t, CompanyFailed, result.Status)
	assert.Equal(t, "No LinkedIn URL", result.Error)
}

func TestProcessScrapeFailure(t *testing.T) {
	scraper := &stubScraper{err: errors.New("browser crashed")}
	processor := newTestProcessor(t, scraper, &stubMailer{}, newRecordingStore())

	result := processor.Process(context.Background(), CompanyRecord{
		Name:        "Acme",
		LinkedInURL: "linkedin.com/company/acme",
	})

	assert.Equal(t, CompanyContactsFailed, result.Status)
	assert.Equal(t, "browser crashed", result.Error)
}

func TestProcessNoContacts(t *testing.T) {
	scraper := &stubScraper{observations: []ContactObservation{
		{Name: "NotAPerson", Title: "NotAPerson"},
	}}
	processor := newTestProcessor(t, scraper, &stubMailer{}, newRecordingStore())

	result := processor.Process(context.Background(), CompanyRecord{
		Name:        "Acme",
		LinkedInURL: "linkedin.com/company/acme",
	})

	assert.Equal(t, CompanyNoContacts, result.Status)
}

func TestProcessSuccessfulDelivery(t *testing.T) {
	scraper := &stubScraper{observations: []ContactObservation{
		{Name: "Jane Doe", Title: "CEO"},
	}}
	mailer := &stubMailer{}
	store := newRecordingStore()
	processor := newTestProcessor(t, scraper, mailer, store)

	result := processor.Process(context.Background(), CompanyRecord{
		Name:        "Acme",
		Website:     "https://acme.com",
		LinkedInURL: "linkedin.com/company/acme",
	})

	assert.Equal(t, CompanySuccess, result.Status)
	assert.Equal(t, 1, result.ContactsProcessed)
	assert.Equal(t, 1, result.ContactsSuccessful)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane.doe@acme.com", mailer.sent[0].Recipient)
	assert.Equal(t, "Hello", mailer.sent[0].Subject)
	assert.NotEmpty(t, mailer.sent[0].AttachmentPath)

	// Contacts and the per-contact message record were persisted
	assert.Len(t, store.contacts["Acme"], 1)
	record, ok := store.messages["Acme/Jane Doe"]
	require.True(t, ok)
	assert.Equal(t, string(StatusSent), record.Status)

	// The finalized company result was persisted
	require.Len(t, store.companyResults, 1)
	assert.Equal(t, CompanySuccess, store.companyResults[0].Status)
}

func TestProcessSendFailureIsPartialOutcome(t *testing.T) {
	scraper := &stubScraper{observations: []ContactObservation{
		{Name: "Jane Doe", Title: "CEO"},
		{Name: "Rita Recruiter", Title: "Head of Talent"},
	}}
	mailer := &stubMailer{err: errors.New("connection refused")}
	processor := newTestProcessor(t, scraper, mailer, newRecordingStore())

	result := processor.Process(context.Background(), CompanyRecord{
		Name:        "Acme",
		Website:     "acme.com",
		LinkedInURL: "linkedin.com/company/acme",
	})

	assert.Equal(t, CompanyFailed, result.Status)
	assert.Equal(t, 2, result.ContactsProcessed)
	assert.Zero(t, result.ContactsSuccessful)
	for _, cr := range result.ContactResults {
		assert.Equal(t, StatusSendFailed, cr.Status)
	}
}
