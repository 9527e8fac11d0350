package core

import (
	"time"
)

// ContactCategory classifies a contact by the kind of role their title describes
type ContactCategory string

const (
	CategoryLeadership ContactCategory = "leadership"
	CategoryDataAI     ContactCategory = "data_ai"
	CategoryRecruiting ContactCategory = "recruiting"
	CategoryOther      ContactCategory = "other"
)

// DeliveryStatus is the terminal status of a single contact's outreach attempt
type DeliveryStatus string

const (
	StatusSent             DeliveryStatus = "sent"
	StatusSendFailed       DeliveryStatus = "send_failed"
	StatusEmailFailed      DeliveryStatus = "email_failed"
	StatusGenerationFailed DeliveryStatus = "email_generation_failed"
	StatusContactError     DeliveryStatus = "error"
)

// CompanyStatus is the terminal status of one company's run
type CompanyStatus string

const (
	CompanySuccess        CompanyStatus = "success"
	CompanyPartial        CompanyStatus = "partial"
	CompanyFailed         CompanyStatus = "failed"
	CompanySkipped        CompanyStatus = "skipped"
	CompanyNoContacts     CompanyStatus = "no_contacts"
	CompanyContactsFailed CompanyStatus = "contacts_failed"
	CompanyError          CompanyStatus = "error"
)

// SkipReasonLocation is recorded on companies excluded by the location gate
const SkipReasonLocation = "location_filtered"

// CompanyRecord is one row of the input spreadsheet, immutable during a run
type CompanyRecord struct {
	Name        string `json:"company_name"`
	Website     string `json:"website"`
	LinkedInURL string `json:"linkedin_url"`
	Location    string `json:"location,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
}

// ContactObservation is one raw person sighting from a scrape pass.
// Many duplicates are expected across passes.
type ContactObservation struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	ProfileURL string `json:"profile_url"`
	Source     string `json:"source"`
}

// Contact is a deduplicated, categorized person selected for outreach
type Contact struct {
	Role       string          `json:"role"`
	Name       string          `json:"name"`
	Title      string          `json:"title"`
	Category   ContactCategory `json:"category"`
	ProfileURL string          `json:"profile_url"`
}

// EmailCandidateSet holds the ranked candidate addresses for one person
type EmailCandidateSet struct {
	FullName       string            `json:"full_name"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Domain         string            `json:"domain"`
	Candidates     []string          `json:"candidates"`
	MostLikely     string            `json:"most_likely_email"`
	Confidence     string            `json:"confidence"`
	Note           string            `json:"note,omitempty"`
	SourceStatuses map[string]string `json:"source_statuses,omitempty"`
}

// ComposedMessage is a generated subject/body pair for one contact
type ComposedMessage struct {
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	ResumeFilename string `json:"resume,omitempty"`
}

// MessageRecord is the persisted record of one delivery attempt
type MessageRecord struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Resume    string `json:"resume"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ContactResult is the append-only outcome of one contact's sub-pipeline
type ContactResult struct {
	Company      string         `json:"company"`
	Contact      *Contact       `json:"contact,omitempty"`
	ContactName  string         `json:"contact_name"`
	Email        string         `json:"email,omitempty"`
	EmailSubject string         `json:"email_subject,omitempty"`
	Resume       string         `json:"resume,omitempty"`
	Status       DeliveryStatus `json:"status"`
	Error        string         `json:"error,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// CompanyResult is the finalized outcome of one company's run
type CompanyResult struct {
	Company            string          `json:"company"`
	Website            string          `json:"website,omitempty"`
	LinkedIn           string          `json:"linkedin,omitempty"`
	Location           string          `json:"location,omitempty"`
	Status             CompanyStatus   `json:"status"`
	Reason             string          `json:"reason,omitempty"`
	Error              string          `json:"error,omitempty"`
	ContactsProcessed  int             `json:"contacts_processed"`
	ContactsSuccessful int             `json:"contacts_successful"`
	ContactResults     []ContactResult `json:"contact_results,omitempty"`
	Timestamp          time.Time       `json:"timestamp"`
}

// CompanyStatusFromCounts derives the terminal status from the contact counts.
// success iff successful == processed and both nonzero, partial iff
// 0 < successful < processed, failed otherwise.
func CompanyStatusFromCounts(successful, processed int) CompanyStatus {
	switch {
	case processed > 0 && successful == processed:
		return CompanySuccess
	case successful > 0 && successful < processed:
		return CompanyPartial
	default:
		return CompanyFailed
	}
}

// Summary aggregates a completed run
type Summary struct {
	TotalCompanies      int             `json:"total_companies"`
	SkippedCompanies    int             `json:"skipped_companies"`
	ProcessedCompanies  int             `json:"processed_companies"`
	SuccessfulCompanies int             `json:"successful_companies"`
	FailedCompanies     int             `json:"failed_companies"`
	TotalContacts       int             `json:"total_contacts"`
	SuccessfulContacts  int             `json:"successful_contacts"`
	ExcludedLocations   []string        `json:"excluded_locations"`
	Results             []CompanyResult `json:"-"`
	CompletedAt         time.Time       `json:"completed_at"`
}

// ProbeOutcome is the tri-state result of a deliverability probe
type ProbeOutcome int

const (
	// ProbeNegative means the mail server rejected the recipient
	ProbeNegative ProbeOutcome = iota
	// ProbePositive means the mail server accepted the recipient (250)
	ProbePositive
	// ProbeIndeterminate means the probe could not decide (transport failure,
	// greylisting, catch-all ambiguity). Indeterminate is never treated as
	// positive: it does not promote a candidate and does not admit a
	// generated permutation into the verified set.
	ProbeIndeterminate
)

// Delivery is an outbound message handed to the mail transport
type Delivery struct {
	Recipient      string
	Subject        string
	Body           string
	AttachmentPath string
}
