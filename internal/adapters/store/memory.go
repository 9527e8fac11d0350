package store

import (
	"sync"

	"github.com/spoorthi/outreach-ai/internal/core"
)

// MemoryStore keeps run artifacts in memory. Used in tests and dry runs.
type MemoryStore struct {
	mu sync.Mutex

	TotalCompanies    int
	ExcludedLocations []string
	Progress          []string
	Contacts          map[string][]core.Contact
	Messages          map[string]core.MessageRecord
	CompanyResults    []core.CompanyResult
	AllResults        []core.CompanyResult
	Summary           *core.Summary
	Snapshots         []error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Contacts: make(map[string][]core.Contact),
		Messages: make(map[string]core.MessageRecord),
	}
}

func (s *MemoryStore) ResetRun(totalCompanies int, excludedLocations []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalCompanies = totalCompanies
	s.ExcludedLocations = excludedLocations
	s.Progress = nil
	s.AllResults = nil
	return nil
}

func (s *MemoryStore) AppendProgress(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Progress = append(s.Progress, line)
	return nil
}

func (s *MemoryStore) SaveContacts(company, linkedinURL string, contacts []core.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Contacts[company] = contacts
	return nil
}

func (s *MemoryStore) SaveMessageRecord(company, contact string, record core.MessageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages[company+"/"+contact] = record
	return nil
}

func (s *MemoryStore) SaveCompanyResult(result core.CompanyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CompanyResults = append(s.CompanyResults, result)
	return nil
}

func (s *MemoryStore) SaveAllResults(results []core.CompanyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AllResults = append([]core.CompanyResult(nil), results...)
	return nil
}

func (s *MemoryStore) WriteSummary(summary core.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Summary = &summary
	return nil
}

func (s *MemoryStore) SaveEmergencySnapshot(runErr error, results []core.CompanyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshots = append(s.Snapshots, runErr)
	return nil
}
