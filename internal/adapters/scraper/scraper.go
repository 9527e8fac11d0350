// Package scraper collects raw people observations from a company's
// public LinkedIn pages using a headless browser.
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

// extractPeopleJS pulls {name, title, profileUrl} tuples out of the
// person cards visible on people/search/about pages. Selector breadth is
// intentional: coverage over precision, the ranker dedupes downstream.
const extractPeopleJS = `
(() => {
	const results = [];
	const push = (nameElem, titleElem, source) => {
		if (!nameElem || !titleElem) return;
		const name = nameElem.textContent.trim();
		const title = titleElem.textContent.trim();
		if (!name || !title || name === title) return;
		const profileUrl = nameElem.href || (nameElem.querySelector && nameElem.querySelector('a') || {}).href ||
			(nameElem.closest && nameElem.closest('a') || {}).href || '';
		results.push({name, title, profileUrl, source});
	};

	document.querySelectorAll('.org-people-profile-card, .artdeco-entity-lockup, li.reusable-search__result-container').forEach(card => {
		push(
			card.querySelector('.artdeco-entity-lockup__title, .org-people-profile-card__profile-title, .entity-result__title-text a, .app-aware-link'),
			card.querySelector('.artdeco-entity-lockup__subtitle, .org-people-profile-card__profile-position, .entity-result__primary-subtitle'),
			'people_card');
	});

	document.querySelectorAll('.search-result, .reusable-search__result-container, .entity-result').forEach(result => {
		push(
			result.querySelector('span.actor-name, .entity-result__title-text a, a.app-aware-link'),
			result.querySelector('.subline-level-1, .entity-result__primary-subtitle'),
			'search_result');
	});

	document.querySelectorAll('.discover-entity-card, .discover-entity-card__content').forEach(card => {
		push(
			card.querySelector('.discover-person-card__name, .EntityLockup-title, h3'),
			card.querySelector('.discover-person-card__occupation, .EntityLockup-subtitle'),
			'people_you_may_know');
	});

	// Collapse exact duplicates within this page
	return results.filter((person, index, self) =>
		index === self.findIndex(p => p.name === person.name && p.title === person.title));
})()
`

type observation struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	ProfileURL string `json:"profileUrl"`
	Source     string `json:"source"`
}

// Scraper drives a headless browser across a company's public pages.
// Each pass failure is logged and skipped; the scraper returns whatever
// it managed to collect.
type Scraper struct {
	searchTerms []string
	headless    bool
	pageTimeout time.Duration
	userDataDir string
	logger      *zap.Logger
}

// NewScraper creates a new browser-driven contact scraper
func NewScraper(searchTerms []string, headless bool, pageTimeout time.Duration, userDataDir string, logger *zap.Logger) *Scraper {
	return &Scraper{
		searchTerms: searchTerms,
		headless:    headless,
		pageTimeout: pageTimeout,
		userDataDir: userDataDir,
		logger:      logger,
	}
}

// ScrapeContacts runs all passes for one company: one keyword search per
// configured role term, the main people page, and the about page.
func (s *Scraper) ScrapeContacts(ctx context.Context, companyURL string) ([]core.ContactObservation, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", s.headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserDataDir(s.userDataDir),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var all []core.ContactObservation
	passes := make([]string, 0, len(s.searchTerms)+2)
	for _, term := range s.searchTerms {
		passes = append(passes, fmt.Sprintf("%speople/?keywords=%s", companyURL, url.QueryEscape(term)))
	}
	passes = append(passes, companyURL+"people/", companyURL+"about/")

	failures := 0
	for _, pageURL := range passes {
		observations, err := s.scrapePage(browserCtx, pageURL)
		if err != nil {
			failures++
			s.logger.Warn("Scrape pass failed", zap.String("url", pageURL), zap.Error(err))
			continue
		}
		all = append(all, observations...)
	}

	if failures == len(passes) {
		return nil, fmt.Errorf("all %d scrape passes failed for %s", failures, companyURL)
	}
	s.logger.Info("Scraped company pages",
		zap.String("company_url", companyURL),
		zap.Int("passes", len(passes)),
		zap.Int("observations", len(all)))
	return all, nil
}

// scrapePage navigates one page and extracts person cards
func (s *Scraper) scrapePage(browserCtx context.Context, pageURL string) ([]core.ContactObservation, error) {
	pageCtx, cancel := context.WithTimeout(browserCtx, s.pageTimeout)
	defer cancel()

	var raw []observation
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Let client-side rendering settle, with a jittered wait to look
		// less like automation
		chromedp.Sleep(2*time.Second+time.Duration(rand.Int63n(int64(time.Second)))),
		chromedp.Evaluate(extractPeopleJS, &raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", pageURL, err)
	}

	observations := make([]core.ContactObservation, 0, len(raw))
	for _, person := range raw {
		observations = append(observations, core.ContactObservation{
			Name:       person.Name,
			Title:      person.Title,
			ProfileURL: person.ProfileURL,
			Source:     person.Source,
		})
	}
	return observations, nil
}
