package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// defaultSkills is the skill bundle used when no category-specific bundle
// applies
var defaultSkills = []string{
	"Built 2 AI agents for automated data analysis and predictive modeling",
	"Developed data science pipelines that improved business insights by 32%",
	"Created advanced analytics dashboards for real-time decision making",
	"Implemented machine learning solutions that optimized key business processes",
}

// categorySkills maps contact categories to role-appropriate skill bundles
var categorySkills = map[ContactCategory][]string{
	CategoryDataAI: {
		"Built custom AI models for predictive analytics and pattern recognition",
		"Developed end-to-end data science workflows reducing analysis time by 40%",
		"Created interactive visualization tools for complex data interpretation",
		"Implemented advanced statistical methods that improved forecast accuracy by 28%",
	},
	CategoryRecruiting: {
		"Built data-driven talent analytics platforms",
		"Developed AI-powered candidate assessment tools",
		"Created predictive models for recruitment success metrics",
		"Implemented analytics dashboards for optimizing hiring processes",
	},
}

const promptTemplate = `
Write a short, warm, personalized cold outreach email from a job applicant named %s to %s,
the CEO/founder of %s, which is in the %s industry.

Company description: %s

The email should include:
1. A warm, personal greeting
2. A specific comment showing knowledge of the company
3. Brief mention of these relevant skills/achievements:
%s
4. A clear ask for an interview opportunity for a data science, AI, or analytics role
5. %s
6. A brief sign-off with the applicant's name
7. A short P.S. that adds a personal touch

Make the email sound natural and human, as if written by a real person. It should be conversational and warm, but professional.
Avoid buzzwords like "excited," "passionate," or "resonate."
Keep the email between 150-200 words.
Make sure it includes bullet points for skills similar to the example.
Don't use formal HR language - this should feel like a genuine personal email.

The format should look like:
Subject: [Short attention-grabbing subject line]

Hi [Name],
[Opening with specific knowledge about company]

Here's what I've built:
• [Skill point 1]
• [Skill point 2]
• [Skill point 3]

[Brief connection to company mission]

[Clear ask for interview]
[Mention resume attachment if included]
Best,
[Candidate name]

P.S. [Brief personal note]
`

// ComposeRequest carries everything the composer needs for one message
type ComposeRequest struct {
	RecipientName      string
	CompanyName        string
	Industry           string
	CompanyDescription string
	Category           ContactCategory
	IncludeResume      bool
	ResumeFilename     string
}

// MessageComposer renders the outreach prompt and runs it through the
// configured text-generation chain
type MessageComposer struct {
	generator  TextGenerator
	senderName string
	logger     *zap.Logger
}

// NewMessageComposer creates a new message composer
func NewMessageComposer(generator TextGenerator, senderName string, logger *zap.Logger) *MessageComposer {
	return &MessageComposer{
		generator:  generator,
		senderName: senderName,
		logger:     logger,
	}
}

// SkillsForCategory returns the skill bundle for a contact category
func SkillsForCategory(category ContactCategory) []string {
	if skills, ok := categorySkills[category]; ok {
		return skills
	}
	return defaultSkills
}

// buildPrompt renders the fixed structural template
func (m *MessageComposer) buildPrompt(req ComposeRequest) string {
	skills := SkillsForCategory(req.Category)
	var bullets strings.Builder
	for _, skill := range skills {
		bullets.WriteString("- ")
		bullets.WriteString(skill)
		bullets.WriteString("\n")
	}

	resumeInstruction := ""
	if req.IncludeResume {
		resumeInstruction = fmt.Sprintf("Include a brief mention that you've attached your resume ('%s') for more details.", req.ResumeFilename)
	}

	return fmt.Sprintf(promptTemplate,
		m.senderName,
		req.RecipientName,
		req.CompanyName,
		req.Industry,
		req.CompanyDescription,
		strings.TrimRight(bullets.String(), "\n"),
		resumeInstruction,
	)
}

// ParseSubject splits generated text at a literal "Subject:" marker.
// Without the marker the whole text is the body and the subject is empty.
// Parsing is idempotent: re-parsing a returned body yields the same pair.
func ParseSubject(text string) (subject, body string) {
	idx := strings.Index(text, "Subject:")
	if idx < 0 {
		return "", text
	}
	rest := strings.TrimSpace(text[idx+len("Subject:"):])
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		return strings.TrimSpace(rest[:nl]), strings.TrimSpace(rest[nl+1:])
	}
	return "", text
}

// Compose generates the subject/body pair for one contact. Exhaustion of
// the generation chain is a failure; the contact is not contacted.
func (m *MessageComposer) Compose(ctx context.Context, req ComposeRequest) (*ComposedMessage, error) {
	prompt := m.buildPrompt(req)

	text, err := m.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate email with available methods: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("failed to generate email with available methods: empty response")
	}

	subject, body := ParseSubject(text)

	if m.logger != nil {
		m.logger.Info("Composed message",
			zap.String("recipient", req.RecipientName),
			zap.String("company", req.CompanyName),
			zap.Bool("has_subject", subject != ""))
	}

	return &ComposedMessage{
		Subject:        subject,
		Body:           body,
		ResumeFilename: req.ResumeFilename,
	}, nil
}
