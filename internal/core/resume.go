package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/utils"
)

var (
	selectedRe   = regexp.MustCompile(`(?i)SELECTED:\s*([\w\s\.\-]+\.(?:pdf|docx))`)
	confidenceRe = regexp.MustCompile(`CONFIDENCE:\s*(0\.\d+|1\.0)`)
)

// ResumeRequest carries the signals available for resume selection
type ResumeRequest struct {
	CompanyName    string
	CompanyWebsite string
	RecipientName  string
	Industry       string
	EmailBody      string
	RoleHint       string
}

// ResumeSelection is the chosen resume and the confidence of the match.
// Selection never fails once at least one resume file exists.
type ResumeSelection struct {
	Path       string
	Confidence float64
}

// ResumeMatcher scores available resume files against company and role
// signals and selects one
type ResumeMatcher struct {
	dir       string
	generator TextGenerator
	website   WebsiteAnalyzer
	logger    *zap.Logger
}

// NewResumeMatcher creates a new resume matcher. website may be nil to
// disable company-website analysis.
func NewResumeMatcher(dir string, generator TextGenerator, website WebsiteAnalyzer, logger *zap.Logger) *ResumeMatcher {
	return &ResumeMatcher{
		dir:       dir,
		generator: generator,
		website:   website,
		logger:    logger,
	}
}

// listResumes enumerates resume files in the configured directory in
// deterministic order
func (m *ResumeMatcher) listResumes() ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.pdf", "*.docx"} {
		matches, err := filepath.Glob(filepath.Join(m.dir, pattern))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// filenameTokens derives keyword text from a resume filename
func filenameTokens(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(stem))
}

// resumePreview returns best-effort text for a resume. Content extraction
// for binary formats is unavailable here, so the filename tokens stand in,
// the same fallback the selection prompt was designed around.
func resumePreview(path string) string {
	return filenameTokens(path)
}

// Select picks the best resume for the request. Zero resume files is a
// fatal error for the company being processed.
func (m *ResumeMatcher) Select(ctx context.Context, req ResumeRequest) (*ResumeSelection, error) {
	files, err := m.listResumes()
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes in %s: %w", m.dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no resume files found in %s", m.dir)
	}

	// Single file: full confidence, no further work
	if len(files) == 1 {
		if m.logger != nil {
			m.logger.Info("Only one resume available", zap.String("resume", filepath.Base(files[0])))
		}
		return &ResumeSelection{Path: files[0], Confidence: 1.0}, nil
	}

	keywords := m.gatherKeywords(ctx, req)

	// Ask the generator to pick, using the fixed reply grammar
	if selection := m.selectWithGenerator(ctx, req, files, keywords); selection != nil {
		return selection, nil
	}

	// Keyword-overlap fallback against filename tokens
	if len(keywords) > 0 {
		bestScore := 0
		bestFile := ""
		for _, file := range files {
			tokens := filenameTokens(file)
			score := 0
			for _, keyword := range keywords {
				if strings.Contains(tokens, strings.ToLower(keyword)) {
					score++
				}
			}
			if score > bestScore {
				bestScore = score
				bestFile = file
			}
		}
		if bestScore > 0 {
			if m.logger != nil {
				m.logger.Info("Selected resume via keyword matching", zap.String("resume", filepath.Base(bestFile)))
			}
			return &ResumeSelection{Path: bestFile, Confidence: 0.6}, nil
		}
	}

	// Last resort: first enumerated file
	if m.logger != nil {
		m.logger.Warn("Could not determine best resume, selecting first available",
			zap.String("resume", filepath.Base(files[0])))
	}
	return &ResumeSelection{Path: files[0], Confidence: 0.5}, nil
}

// gatherKeywords collects role and website signals for selection
func (m *ResumeMatcher) gatherKeywords(ctx context.Context, req ResumeRequest) []string {
	var keywords []string
	if req.RoleHint != "" {
		keywords = append(keywords, req.RoleHint)
		keywords = append(keywords, strings.Fields(req.RoleHint)...)
	}
	if m.website != nil && req.CompanyWebsite != "" {
		found, err := m.website.Analyze(ctx, req.CompanyWebsite)
		if err != nil {
			if m.logger != nil {
				m.logger.Warn("Website analysis failed", zap.String("website", req.CompanyWebsite), zap.Error(err))
			}
		} else {
			keywords = append(keywords, found...)
		}
	}
	return keywords
}

// selectWithGenerator builds the selection prompt and parses the reply
// grammar. A nil return means the caller should fall back.
func (m *ResumeMatcher) selectWithGenerator(ctx context.Context, req ResumeRequest, files, keywords []string) *ResumeSelection {
	if m.generator == nil {
		return nil
	}

	var options strings.Builder
	for i, file := range files {
		fmt.Fprintf(&options, "RESUME %d: %s\n%s...\n\n", i+1, filepath.Base(file),
			utils.TruncateText(resumePreview(file), 500))
	}

	prompt := fmt.Sprintf(`
I need to select the most appropriate resume to send to %s from several options.

COMPANY: %s
INDUSTRY: %s
RECIPIENT: %s
RELEVANT KEYWORDS: %s

EMAIL CONTENT TO BE SENT:
%s...

AVAILABLE RESUMES:
%s
Based on the company's industry, keywords, and the email content, which resume would be the MOST appropriate to send?
Analyze how well each resume matches the company's needs and industry.

Your response must be in this exact format:
SELECTED: [filename]
CONFIDENCE: [score between 0.0-1.0]
`, req.CompanyName, req.CompanyName, req.Industry, req.RecipientName,
		strings.Join(keywords, ", "), utils.TruncateText(req.EmailBody, 500), options.String())

	reply, err := m.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		if m.logger != nil {
			m.logger.Warn("Could not get generator response for resume selection", zap.Error(err))
		}
		return nil
	}

	name, confidence, ok := ParseResumeReply(reply)
	if !ok {
		return nil
	}

	// Exact filename match first, then substring match
	for _, file := range files {
		if strings.EqualFold(filepath.Base(file), name) {
			if m.logger != nil {
				m.logger.Info("Selected resume", zap.String("resume", filepath.Base(file)), zap.Float64("confidence", confidence))
			}
			return &ResumeSelection{Path: file, Confidence: confidence}
		}
	}
	for _, file := range files {
		if strings.Contains(strings.ToLower(filepath.Base(file)), strings.ToLower(name)) {
			if m.logger != nil {
				m.logger.Info("Selected resume (partial match)", zap.String("resume", filepath.Base(file)))
			}
			return &ResumeSelection{Path: file, Confidence: confidence}
		}
	}
	return nil
}

// ParseResumeReply parses the fixed selection reply grammar:
// "SELECTED: <filename>" and "CONFIDENCE: <0..1>". Confidence defaults to
// 0.5 when missing.
func ParseResumeReply(reply string) (filename string, confidence float64, ok bool) {
	match := selectedRe.FindStringSubmatch(reply)
	if match == nil {
		return "", 0, false
	}
	filename = strings.TrimSpace(match[1])

	confidence = 0.5
	if cm := confidenceRe.FindStringSubmatch(reply); cm != nil {
		if parsed, err := strconv.ParseFloat(cm[1], 64); err == nil {
			confidence = parsed
		}
	}
	return filename, confidence, true
}

// EnsureDir creates the resume directory if it is missing so a fresh
// checkout fails with "no resume files" rather than a stat error.
func (m *ResumeMatcher) EnsureDir() error {
	return os.MkdirAll(m.dir, 0o755)
}
