package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/exclusion"
)

// RunnerOptions tune the top-level pipeline loop
type RunnerOptions struct {
	// CompanyPauseMin/Max bound the randomized pause between companies
	CompanyPauseMin time.Duration
	CompanyPauseMax time.Duration
}

// PipelineRunner drives the full outreach run: reads the company list
// once, iterates strictly sequentially, persists incremental state, and
// produces a final summary.
type PipelineRunner struct {
	companies  CompanySource
	processor  *CompanyProcessor
	exclusions *exclusion.Checker
	store      RunStore
	opts       RunnerOptions
	logger     *zap.Logger

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewPipelineRunner creates a new pipeline runner
func NewPipelineRunner(
	companies CompanySource,
	processor *CompanyProcessor,
	exclusions *exclusion.Checker,
	store RunStore,
	opts RunnerOptions,
	logger *zap.Logger,
) *PipelineRunner {
	return &PipelineRunner{
		companies:  companies,
		processor:  processor,
		exclusions: exclusions,
		store:      store,
		opts:       opts,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Run executes the whole outreach pipeline. A catastrophic failure at
// this level triggers one best-effort emergency snapshot and ends the
// run; per-company failures never reach here.
func (r *PipelineRunner) Run(ctx context.Context) (summary *Summary, err error) {
	var results []CompanyResult

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("critical error in outreach workflow: %v", p)
			r.logger.Error("Critical error in outreach workflow", zap.Any("panic", p))
			// Best effort; snapshot failure is swallowed
			_ = r.store.SaveEmergencySnapshot(err, results)
		}
	}()

	runID := uuid.NewString()

	companies, err := r.companies.ReadCompanies()
	if err != nil {
		snapErr := fmt.Errorf("failed to read company list: %w", err)
		_ = r.store.SaveEmergencySnapshot(snapErr, nil)
		return nil, snapErr
	}

	excluded := r.exclusions.Locations()
	r.logger.Info("Starting outreach run",
		zap.String("run_id", runID),
		zap.Int("companies", len(companies)),
		zap.Strings("excluded_locations", excluded))

	if err := r.store.ResetRun(len(companies), excluded); err != nil {
		return nil, fmt.Errorf("failed to reset run state: %w", err)
	}

	skipped := 0
	for i, company := range companies {
		if ctx.Err() != nil {
			r.logger.Warn("Run cancelled", zap.Int("completed", i), zap.Int("total", len(companies)))
			r.appendProgress(fmt.Sprintf("Run cancelled after %d of %d companies", i, len(companies)))
			break
		}
		name := company.Name
		if name == "" {
			name = fmt.Sprintf("Company %d", i+1)
		}
		r.logger.Info("Processing company",
			zap.Int("index", i+1),
			zap.Int("total", len(companies)),
			zap.String("company", name))

		r.appendProgress(fmt.Sprintf("Starting %s at %s", name, time.Now().Format("15:04:05")))

		result := r.processor.Process(ctx, company)
		results = append(results, result)

		if result.Status == CompanySkipped {
			skipped++
		}

		r.appendProgress(fmt.Sprintf("Finished %s with status: %s", name, result.Status))
		if result.Status == CompanySkipped {
			r.appendProgress(fmt.Sprintf("Reason: %s - %s", result.Reason, result.Location))
		}
		if result.ContactsProcessed > 0 {
			r.appendProgress(fmt.Sprintf("Contacts processed: %d", result.ContactsProcessed))
		}
		if result.ContactsSuccessful > 0 {
			r.appendProgress(fmt.Sprintf("Successful contacts: %d", result.ContactsSuccessful))
		}
		if result.Error != "" {
			r.appendProgress(fmt.Sprintf("Error: %s", result.Error))
		}
		r.appendProgress("---")

		// Rewrite the cumulative collection after every company so a
		// monitoring reader always has the list-so-far
		if err := r.store.SaveAllResults(results); err != nil {
			r.logger.Error("Failed to rewrite cumulative results", zap.Error(err))
		}

		if i < len(companies)-1 {
			pause := randomPause(r.opts.CompanyPauseMin, r.opts.CompanyPauseMax)
			r.logger.Info("Pausing before next company", zap.Duration("pause", pause))
			r.sleep(pause)
		}
	}

	summary = r.summarize(companies, results, skipped, excluded)

	r.logger.Info("Completed outreach run",
		zap.String("run_id", runID),
		zap.Int("total_companies", summary.TotalCompanies),
		zap.Int("skipped_companies", summary.SkippedCompanies),
		zap.Int("processed_companies", summary.ProcessedCompanies),
		zap.Int("successful_companies", summary.SuccessfulCompanies),
		zap.Int("failed_companies", summary.FailedCompanies),
		zap.Int("total_contacts", summary.TotalContacts),
		zap.Int("successful_contacts", summary.SuccessfulContacts))

	if err := r.store.WriteSummary(*summary); err != nil {
		r.logger.Error("Failed to write summary", zap.Error(err))
	}

	return summary, nil
}

func (r *PipelineRunner) appendProgress(line string) {
	if err := r.store.AppendProgress(line); err != nil {
		r.logger.Error("Failed to append progress", zap.Error(err))
	}
}

// summarize computes the aggregate counts over a finished run
func (r *PipelineRunner) summarize(companies []CompanyRecord, results []CompanyResult, skipped int, excluded []string) *Summary {
	summary := &Summary{
		TotalCompanies:    len(companies),
		SkippedCompanies:  skipped,
		ExcludedLocations: excluded,
		Results:           results,
		CompletedAt:       time.Now(),
	}
	for _, result := range results {
		if result.Status == CompanySkipped {
			continue
		}
		summary.ProcessedCompanies++
		summary.TotalContacts += result.ContactsProcessed
		summary.SuccessfulContacts += result.ContactsSuccessful
		switch result.Status {
		case CompanySuccess, CompanyPartial:
			summary.SuccessfulCompanies++
		default:
			summary.FailedCompanies++
		}
	}
	return summary
}
