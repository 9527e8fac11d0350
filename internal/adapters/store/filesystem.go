// Package store persists run artifacts. The filesystem backend is the
// reference layout; SQLite and MySQL backends keep the same records in
// tables for multi-run querying.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
	"github.com/spoorthi/outreach-ai/internal/utils"
)

// FilesystemStore writes run artifacts under a single results directory:
//
//	progress.txt                     append-only progress log
//	all_results.json                 cumulative results, rewritten per company
//	contacts/<company>.json          selected contacts per company
//	<company>_result.json            finalized per-company result
//	emails/<company>_<contact>.json  per-contact delivery record
//	summary.txt                      human-readable run summary
//	emergency_backup_<ts>.json       partial state after a crash
type FilesystemStore struct {
	dir    string
	logger *zap.Logger
}

// NewFilesystemStore creates the results directory tree and returns a store
func NewFilesystemStore(dir string, logger *zap.Logger) (*FilesystemStore, error) {
	for _, sub := range []string{dir, filepath.Join(dir, "contacts"), filepath.Join(dir, "emails")} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create results directory %s: %w", sub, err)
		}
	}
	return &FilesystemStore{dir: dir, logger: logger}, nil
}

// ResetRun truncates the progress log and cumulative results
func (s *FilesystemStore) ResetRun(totalCompanies int, excludedLocations []string) error {
	header := fmt.Sprintf("Run started at %s\nTotal companies: %d\nExcluded locations: %v\n---\n",
		time.Now().Format("2006-01-02 15:04:05"), totalCompanies, excludedLocations)
	if err := os.WriteFile(filepath.Join(s.dir, "progress.txt"), []byte(header), 0o644); err != nil {
		return fmt.Errorf("failed to reset progress log: %w", err)
	}
	return s.writeJSON(filepath.Join(s.dir, "all_results.json"), []core.CompanyResult{})
}

// AppendProgress appends one line to the progress log
func (s *FilesystemStore) AppendProgress(line string) error {
	f, err := os.OpenFile(filepath.Join(s.dir, "progress.txt"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open progress log: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to append progress: %w", err)
	}
	return nil
}

// SaveContacts persists the selected contacts for a company
func (s *FilesystemStore) SaveContacts(company, linkedinURL string, contacts []core.Contact) error {
	payload := map[string]interface{}{
		"company":      company,
		"linkedin_url": linkedinURL,
		"contacts":     contacts,
		"timestamp":    time.Now().Format("2006-01-02 15:04:05"),
	}
	path := filepath.Join(s.dir, "contacts", utils.SafeName(company)+".json")
	return s.writeJSON(path, payload)
}

// SaveMessageRecord persists the delivery record for one contact
func (s *FilesystemStore) SaveMessageRecord(company, contact string, record core.MessageRecord) error {
	name := fmt.Sprintf("%s_%s.json", utils.SafeName(company), utils.SafeName(contact))
	return s.writeJSON(filepath.Join(s.dir, "emails", name), record)
}

// SaveCompanyResult persists one finalized company result
func (s *FilesystemStore) SaveCompanyResult(result core.CompanyResult) error {
	path := filepath.Join(s.dir, utils.SafeName(result.Company)+"_result.json")
	return s.writeJSON(path, result)
}

// SaveAllResults rewrites the cumulative results collection
func (s *FilesystemStore) SaveAllResults(results []core.CompanyResult) error {
	return s.writeJSON(filepath.Join(s.dir, "all_results.json"), results)
}

// WriteSummary writes the human-readable run summary
func (s *FilesystemStore) WriteSummary(summary core.Summary) error {
	f, err := os.Create(filepath.Join(s.dir, "summary.txt"))
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "OUTREACH RUN SUMMARY")
	fmt.Fprintln(f, "====================")
	fmt.Fprintf(f, "Completed at: %s\n\n", summary.CompletedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Total companies: %d\n", summary.TotalCompanies)
	fmt.Fprintf(f, "Skipped (excluded locations): %d\n", summary.SkippedCompanies)
	fmt.Fprintf(f, "Processed: %d\n", summary.ProcessedCompanies)
	fmt.Fprintf(f, "Successful: %d\n", summary.SuccessfulCompanies)
	fmt.Fprintf(f, "Failed: %d\n", summary.FailedCompanies)
	fmt.Fprintf(f, "Contacts processed: %d\n", summary.TotalContacts)
	fmt.Fprintf(f, "Contacts emailed: %d\n", summary.SuccessfulContacts)
	fmt.Fprintf(f, "Excluded locations: %v\n\n", summary.ExcludedLocations)

	fmt.Fprintln(f, "Per-company results:")
	for _, result := range summary.Results {
		line := fmt.Sprintf("- %s: %s", result.Company, result.Status)
		if result.ContactsProcessed > 0 {
			line += fmt.Sprintf(" (%d/%d contacts)", result.ContactsSuccessful, result.ContactsProcessed)
		}
		if result.Reason != "" {
			line += fmt.Sprintf(" [%s]", result.Reason)
		}
		fmt.Fprintln(f, line)
	}
	return nil
}

// SaveEmergencySnapshot best-effort persists partial state after a crash
func (s *FilesystemStore) SaveEmergencySnapshot(runErr error, results []core.CompanyResult) error {
	payload := map[string]interface{}{
		"error":     runErr.Error(),
		"results":   results,
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	}
	name := fmt.Sprintf("emergency_backup_%d.json", time.Now().Unix())
	if err := s.writeJSON(filepath.Join(s.dir, name), payload); err != nil {
		return err
	}
	s.logger.Warn("Saved emergency backup", zap.String("file", name), zap.Error(runErr))
	return nil
}

func (s *FilesystemStore) writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
