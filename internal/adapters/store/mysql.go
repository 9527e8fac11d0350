package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

// MySQLStore keeps run artifacts in a MySQL database, mirroring the
// SQLite schema.
type MySQLStore struct {
	db     *sql.DB
	runID  int64
	logger *zap.Logger
}

// NewMySQLStore opens the database, verifies the connection and creates
// tables if needed
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			total_companies INT,
			excluded_locations TEXT,
			started_at TIMESTAMP,
			summary MEDIUMTEXT
		)`,
		`CREATE TABLE IF NOT EXISTS progress (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			run_id BIGINT,
			line TEXT,
			created_at TIMESTAMP,
			INDEX idx_run_id (run_id)
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			run_id BIGINT,
			company VARCHAR(255),
			linkedin_url TEXT,
			payload MEDIUMTEXT,
			created_at TIMESTAMP,
			PRIMARY KEY (run_id, company)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			run_id BIGINT,
			company VARCHAR(255),
			contact VARCHAR(255),
			payload MEDIUMTEXT,
			created_at TIMESTAMP,
			PRIMARY KEY (run_id, company, contact)
		)`,
		`CREATE TABLE IF NOT EXISTS company_results (
			run_id BIGINT,
			company VARCHAR(255),
			status VARCHAR(32),
			payload MEDIUMTEXT,
			created_at TIMESTAMP,
			PRIMARY KEY (run_id, company)
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			run_id BIGINT,
			error TEXT,
			payload MEDIUMTEXT,
			created_at TIMESTAMP
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// ResetRun inserts a new run row that subsequent writes attach to
func (s *MySQLStore) ResetRun(totalCompanies int, excludedLocations []string) error {
	locations, err := json.Marshal(excludedLocations)
	if err != nil {
		return fmt.Errorf("failed to marshal excluded locations: %w", err)
	}
	result, err := s.db.Exec(`
		INSERT INTO runs (total_companies, excluded_locations, started_at)
		VALUES (?, ?, ?)
	`, totalCompanies, string(locations), time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	s.runID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}
	return nil
}

// AppendProgress appends one line to the run progress log
func (s *MySQLStore) AppendProgress(line string) error {
	_, err := s.db.Exec(`
		INSERT INTO progress (run_id, line, created_at) VALUES (?, ?, ?)
	`, s.runID, line, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append progress: %w", err)
	}
	return nil
}

// SaveContacts persists the selected contacts for a company
func (s *MySQLStore) SaveContacts(company, linkedinURL string, contacts []core.Contact) error {
	payload, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("failed to marshal contacts: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO contacts (run_id, company, linkedin_url, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE linkedin_url = VALUES(linkedin_url),
			payload = VALUES(payload), created_at = VALUES(created_at)
	`, s.runID, company, linkedinURL, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save contacts: %w", err)
	}
	return nil
}

// SaveMessageRecord persists the delivery record for one contact
func (s *MySQLStore) SaveMessageRecord(company, contact string, record core.MessageRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal message record: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO messages (run_id, company, contact, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), created_at = VALUES(created_at)
	`, s.runID, company, contact, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save message record: %w", err)
	}
	return nil
}

// SaveCompanyResult persists one finalized company result
func (s *MySQLStore) SaveCompanyResult(result core.CompanyResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal company result: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO company_results (run_id, company, status, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE status = VALUES(status),
			payload = VALUES(payload), created_at = VALUES(created_at)
	`, s.runID, result.Company, string(result.Status), string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save company result: %w", err)
	}
	return nil
}

// SaveAllResults is a no-op for SQL backends: company_results already
// holds the cumulative collection keyed by run
func (s *MySQLStore) SaveAllResults(results []core.CompanyResult) error {
	return nil
}

// WriteSummary stores the summary JSON on the run row
func (s *MySQLStore) WriteSummary(summary core.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = s.db.Exec(`UPDATE runs SET summary = ? WHERE id = ?`, string(payload), s.runID)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// SaveEmergencySnapshot best-effort persists partial state after a crash
func (s *MySQLStore) SaveEmergencySnapshot(runErr error, results []core.CompanyResult) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshots (run_id, error, payload, created_at) VALUES (?, ?, ?, ?)
	`, s.runID, runErr.Error(), string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.logger.Warn("Saved emergency snapshot", zap.Int64("run_id", s.runID), zap.Error(runErr))
	return nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
