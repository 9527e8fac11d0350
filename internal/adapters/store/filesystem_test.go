package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

func newTestStore(t *testing.T) (*FilesystemStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFilesystemStore(dir, zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

func TestResetRunCreatesArtifacts(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.ResetRun(5, []string{"New York", "Midwest"}))

	progress, err := os.ReadFile(filepath.Join(dir, "progress.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(progress), "Total companies: 5")
	assert.Contains(t, string(progress), "New York")

	results, err := os.ReadFile(filepath.Join(dir, "all_results.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(results))
}

func TestAppendProgress(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.ResetRun(1, nil))
	require.NoError(t, s.AppendProgress("Starting Acme at 10:00:00"))
	require.NoError(t, s.AppendProgress("---"))

	progress, err := os.ReadFile(filepath.Join(dir, "progress.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(progress), "Starting Acme at 10:00:00\n---\n")
}

func TestSaveContactsUsesSafeNames(t *testing.T) {
	s, dir := newTestStore(t)
	contacts := []core.Contact{{Role: "CEO/Founder", Name: "Jane Doe", Title: "CEO", Category: core.CategoryLeadership}}
	require.NoError(t, s.SaveContacts("Acme Data/Labs", "https://linkedin.com/company/acme/", contacts))

	data, err := os.ReadFile(filepath.Join(dir, "contacts", "Acme_Data_Labs.json"))
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "Acme Data/Labs", payload["company"])
	assert.Len(t, payload["contacts"], 1)
}

func TestSaveMessageRecord(t *testing.T) {
	s, dir := newTestStore(t)
	record := core.MessageRecord{
		To:      "jane.doe@acme.com",
		Subject: "Hello",
		Status:  "sent",
	}
	require.NoError(t, s.SaveMessageRecord("Acme", "Jane Doe", record))

	data, err := os.ReadFile(filepath.Join(dir, "emails", "Acme_Jane_Doe.json"))
	require.NoError(t, err)

	var loaded core.MessageRecord
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, record.To, loaded.To)
}

func TestSaveCompanyResultAndAllResults(t *testing.T) {
	s, dir := newTestStore(t)
	result := core.CompanyResult{Company: "Acme", Status: core.CompanySuccess, Timestamp: time.Now()}

	require.NoError(t, s.SaveCompanyResult(result))
	_, err := os.Stat(filepath.Join(dir, "Acme_result.json"))
	require.NoError(t, err)

	require.NoError(t, s.SaveAllResults([]core.CompanyResult{result}))
	data, err := os.ReadFile(filepath.Join(dir, "all_results.json"))
	require.NoError(t, err)

	var all []core.CompanyResult
	require.NoError(t, json.Unmarshal(data, &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Acme", all[0].Company)
}

func TestWriteSummary(t *testing.T) {
	s, dir := newTestStore(t)
	summary := core.Summary{
		TotalCompanies:      3,
		SkippedCompanies:    1,
		ProcessedCompanies:  2,
		SuccessfulCompanies: 1,
		FailedCompanies:     1,
		ExcludedLocations:   []string{"New York"},
		Results: []core.CompanyResult{
			{Company: "Acme", Status: core.CompanySuccess, ContactsProcessed: 2, ContactsSuccessful: 2},
			{Company: "Skipped Co", Status: core.CompanySkipped, Reason: "location_filtered"},
		},
		CompletedAt: time.Now(),
	}
	require.NoError(t, s.WriteSummary(summary))

	data, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "OUTREACH RUN SUMMARY")
	assert.Contains(t, text, "Total companies: 3")
	assert.Contains(t, text, "- Acme: success (2/2 contacts)")
	assert.Contains(t, text, "- Skipped Co: skipped [location_filtered]")
}

func TestSaveEmergencySnapshot(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.SaveEmergencySnapshot(errors.New("boom"), []core.CompanyResult{{Company: "Acme"}}))

	matches, err := filepath.Glob(filepath.Join(dir, "emergency_backup_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom")
}
