package core

import (
	"context"
)

// ContactScraper observes raw people listings on a company's public pages.
// Implementations must tolerate per-page failures and return whatever was
// collected; redundancy across passes is expected and handled by the ranker.
type ContactScraper interface {
	// ScrapeContacts returns raw observations for a normalized company URL
	ScrapeContacts(ctx context.Context, companyURL string) ([]ContactObservation, error)
}

// DirectoryResult is what a directory source reports for one lookup
type DirectoryResult struct {
	Emails []string
	Status string
	Note   string
}

// DirectorySource is an external contact-directory lookup. Sources are
// unreliable by contract: any error or empty response is a normal "no data"
// outcome, reported through Status rather than an error.
type DirectorySource interface {
	// Name identifies the source in candidate-set status maps
	Name() string

	// Lookup returns zero or more candidate emails for a person at a domain
	Lookup(ctx context.Context, firstName, lastName, domain string) DirectoryResult
}

// DeliverabilityProbe asks a mail server whether an address would accept
// mail, without sending any.
type DeliverabilityProbe interface {
	Probe(ctx context.Context, email string) ProbeOutcome
}

// TextGenerator produces free text from a single prompt. An empty result
// with a nil error is treated the same as an error by callers.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MailSender attempts delivery of one message with an optional attachment
type MailSender interface {
	Send(ctx context.Context, delivery Delivery) error
}

// CompanySource reads the full company list once per run
type CompanySource interface {
	ReadCompanies() ([]CompanyRecord, error)
}

// WebsiteAnalyzer fetches a company website and extracts role-relevant
// keywords from a fixed technical vocabulary
type WebsiteAnalyzer interface {
	Analyze(ctx context.Context, websiteURL string) ([]string, error)
}

// RunStore persists run artifacts. Writes happen as soon as data is
// available so a crash loses at most the in-flight company.
type RunStore interface {
	// ResetRun truncates the progress log and cumulative results
	ResetRun(totalCompanies int, excludedLocations []string) error

	// AppendProgress appends one line to the run progress log
	AppendProgress(line string) error

	// SaveContacts persists the selected contacts for a company
	SaveContacts(company, linkedinURL string, contacts []Contact) error

	// SaveMessageRecord persists the sent-mail record for one contact
	SaveMessageRecord(company, contact string, record MessageRecord) error

	// SaveCompanyResult persists one finalized company result
	SaveCompanyResult(result CompanyResult) error

	// SaveAllResults rewrites the cumulative results collection
	SaveAllResults(results []CompanyResult) error

	// WriteSummary writes the human-readable run summary
	WriteSummary(summary Summary) error

	// SaveEmergencySnapshot best-effort persists partial state after a
	// catastrophic failure
	SaveEmergencySnapshot(runErr error, results []CompanyResult) error
}
