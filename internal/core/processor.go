package core

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/exclusion"
)

// ProcessorOptions tune the per-company state machine
type ProcessorOptions struct {
	// ContactPauseMin/Max bound the randomized pause between contacts at
	// the same company. The pause reduces automated-behavior detection on
	// upstream services and is not an ordering guarantee.
	ContactPauseMin time.Duration
	ContactPauseMax time.Duration
}

// CompanyProcessor runs one company through the full outreach state
// machine and records every outcome. Errors never propagate to the
// runner: every failure mode maps to a terminal company status.
type CompanyProcessor struct {
	exclusions *exclusion.Checker
	scraper    ContactScraper
	ranker     *ContactRanker
	resolver   *EmailResolver
	composer   *MessageComposer
	resumes    *ResumeMatcher
	mailer     MailSender
	store      RunStore
	opts       ProcessorOptions
	logger     *zap.Logger

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewCompanyProcessor creates a new company processor
func NewCompanyProcessor(
	exclusions *exclusion.Checker,
	scraper ContactScraper,
	ranker *ContactRanker,
	resolver *EmailResolver,
	composer *MessageComposer,
	resumes *ResumeMatcher,
	mailer MailSender,
	store RunStore,
	opts ProcessorOptions,
	logger *zap.Logger,
) *CompanyProcessor {
	return &CompanyProcessor{
		exclusions: exclusions,
		scraper:    scraper,
		ranker:     ranker,
		resolver:   resolver,
		composer:   composer,
		resumes:    resumes,
		mailer:     mailer,
		store:      store,
		opts:       opts,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// NormalizeCompanyURL normalizes a LinkedIn-style company reference:
// adds the protocol, forces the company path, and appends the trailing
// slash the people/about sub-pages expect.
func NormalizeCompanyURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	if !strings.Contains(url, "linkedin.com") {
		// Assume a bare company name or handle
		url = "https://www.linkedin.com/company/" + strings.Trim(raw, "/")
	} else if !strings.Contains(url, "/company/") {
		parts := strings.SplitN(url, "linkedin.com/", 2)
		if len(parts) == 2 {
			url = "https://www.linkedin.com/company/" + strings.Trim(parts[1], "/")
		}
	}
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url
}

// Process runs the state machine for one company. It always returns a
// result; panics are caught and recorded as status error.
func (p *CompanyProcessor) Process(ctx context.Context, company CompanyRecord) (result CompanyResult) {
	result = CompanyResult{
		Company:   company.Name,
		Website:   company.Website,
		Location:  company.Location,
		Timestamp: time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Unexpected failure processing company",
				zap.String("company", company.Name),
				zap.Any("panic", r))
			result.Status = CompanyError
			result.Error = fmt.Sprint(r)
		}
	}()

	// Location gate runs before any network activity
	if rule, excluded := p.exclusions.Match(company.Location); excluded {
		p.logger.Info("Skipping excluded company",
			zap.String("company", company.Name),
			zap.String("location", company.Location),
			zap.String("rule", rule))
		result.Status = CompanySkipped
		result.Reason = SkipReasonLocation
		return result
	}

	if strings.TrimSpace(company.LinkedInURL) == "" {
		p.logger.Error("No LinkedIn URL for company", zap.String("company", company.Name))
		result.Status = CompanyFailed
		result.Error = "No LinkedIn URL"
		return result
	}

	companyURL := NormalizeCompanyURL(company.LinkedInURL)
	result.LinkedIn = companyURL

	p.logger.Info("Finding key contacts",
		zap.String("company", company.Name),
		zap.String("url", companyURL))

	observations, err := p.scraper.ScrapeContacts(ctx, companyURL)
	if err != nil {
		p.logger.Error("Could not find contacts", zap.String("company", company.Name), zap.Error(err))
		result.Status = CompanyContactsFailed
		result.Error = err.Error()
		return result
	}

	contacts := p.ranker.Rank(observations)
	if len(contacts) == 0 {
		p.logger.Error("No contacts found", zap.String("company", company.Name))
		result.Status = CompanyNoContacts
		result.Error = "No contacts found"
		return result
	}

	if err := p.store.SaveContacts(company.Name, companyURL, contacts); err != nil {
		p.logger.Error("Failed to persist contacts", zap.String("company", company.Name), zap.Error(err))
	}

	// Per-contact sub-pipeline, strictly sequential. One contact's failure
	// never aborts the remaining contacts.
	for i, contact := range contacts {
		if i > 0 {
			pause := randomPause(p.opts.ContactPauseMin, p.opts.ContactPauseMax)
			p.logger.Info("Pausing before next contact", zap.Duration("pause", pause))
			p.sleep(pause)
		}
		contactResult := p.processContact(ctx, company, contact)
		result.ContactResults = append(result.ContactResults, contactResult)
	}

	result.ContactsProcessed = len(result.ContactResults)
	for _, cr := range result.ContactResults {
		if cr.Status == StatusSent {
			result.ContactsSuccessful++
		}
	}
	result.Status = CompanyStatusFromCounts(result.ContactsSuccessful, result.ContactsProcessed)

	if err := p.store.SaveCompanyResult(result); err != nil {
		p.logger.Error("Failed to persist company result", zap.String("company", company.Name), zap.Error(err))
	}

	return result
}

// processContact runs discovery → composition → resume → delivery for one
// contact and records the outcome
func (p *CompanyProcessor) processContact(ctx context.Context, company CompanyRecord, contact Contact) (result ContactResult) {
	result = ContactResult{
		Company:     company.Name,
		ContactName: contact.Name,
		Timestamp:   time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Unexpected failure processing contact",
				zap.String("contact", contact.Name),
				zap.Any("panic", r))
			result.Status = StatusContactError
			result.Error = fmt.Sprint(r)
		}
	}()

	processingID := uuid.NewString()
	p.logger.Info("Processing contact",
		zap.String("processing_id", processingID),
		zap.String("contact", contact.Name),
		zap.String("title", contact.Title),
		zap.String("company", company.Name))

	candidates, err := p.resolver.Resolve(ctx, contact.Name, company.Website)
	if err != nil {
		p.logger.Error("Could not find email", zap.String("contact", contact.Name), zap.Error(err))
		result.Status = StatusEmailFailed
		result.Error = err.Error()
		return result
	}
	result.Email = candidates.MostLikely

	message, err := p.composer.Compose(ctx, ComposeRequest{
		RecipientName:      contact.Name,
		CompanyName:        company.Name,
		Industry:           company.Industry,
		CompanyDescription: company.Description,
		Category:           contact.Category,
	})
	if err != nil {
		p.logger.Error("Could not generate email", zap.String("contact", contact.Name), zap.Error(err))
		result.Status = StatusGenerationFailed
		result.Error = "Email generation failed"
		return result
	}

	// Bias resume selection toward the contact's domain
	roleHint := ""
	switch contact.Category {
	case CategoryDataAI:
		roleHint = "data science"
	case CategoryRecruiting:
		roleHint = "recruiting"
	}

	selection, err := p.resumes.Select(ctx, ResumeRequest{
		CompanyName:    company.Name,
		CompanyWebsite: company.Website,
		RecipientName:  contact.Name,
		Industry:       company.Industry,
		EmailBody:      message.Body,
		RoleHint:       roleHint,
	})
	if err != nil {
		// Zero resumes is fatal for this company's contact, not the run
		p.logger.Error("Resume selection failed", zap.String("contact", contact.Name), zap.Error(err))
		result.Status = StatusContactError
		result.Error = err.Error()
		return result
	}
	result.Resume = filepath.Base(selection.Path)
	p.logger.Info("Selected resume",
		zap.String("resume", result.Resume),
		zap.Float64("confidence", selection.Confidence))

	subject := message.Subject
	if subject == "" {
		subject = fmt.Sprintf("Interested in %s", company.Name)
	}
	result.EmailSubject = message.Subject

	p.logger.Info("Sending email", zap.String("to", candidates.MostLikely))
	sendErr := p.mailer.Send(ctx, Delivery{
		Recipient:      candidates.MostLikely,
		Subject:        subject,
		Body:           message.Body,
		AttachmentPath: selection.Path,
	})
	if sendErr != nil {
		p.logger.Error("Failed to send email", zap.String("to", candidates.MostLikely), zap.Error(sendErr))
		result.Status = StatusSendFailed
	} else {
		result.Status = StatusSent
	}

	record := MessageRecord{
		To:        candidates.MostLikely,
		Subject:   message.Subject,
		Body:      message.Body,
		Resume:    result.Resume,
		Status:    string(result.Status),
		Timestamp: result.Timestamp.Format("2006-01-02 15:04:05"),
	}
	if err := p.store.SaveMessageRecord(company.Name, contact.Name, record); err != nil {
		p.logger.Error("Failed to persist message record",
			zap.String("contact", contact.Name), zap.Error(err))
	}

	result.Contact = &Contact{
		Role:       contact.Role,
		Name:       contact.Name,
		Title:      contact.Title,
		Category:   contact.Category,
		ProfileURL: contact.ProfileURL,
	}
	return result
}

// randomPause picks a uniform duration in [min, max]
func randomPause(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
