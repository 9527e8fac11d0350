package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func TestParseSubject(t *testing.T) {
	subject, body := ParseSubject("Subject: Quick question\n\nHi Jane,\nGreat product.")
	assert.Equal(t, "Quick question", subject)
	assert.Equal(t, "Hi Jane,\nGreat product.", body)
}

func TestParseSubjectNoMarker(t *testing.T) {
	subject, body := ParseSubject("Hi Jane,\nno subject line here.")
	assert.Empty(t, subject)
	assert.Equal(t, "Hi Jane,\nno subject line here.", body)
}

func TestParseSubjectIdempotent(t *testing.T) {
	_, body := ParseSubject("Subject: Hello\n\nBody text.")
	subject2, body2 := ParseSubject(body)
	assert.Empty(t, subject2)
	assert.Equal(t, body, body2)
}

func TestSkillsForCategory(t *testing.T) {
	dataSkills := SkillsForCategory(CategoryDataAI)
	recruitingSkills := SkillsForCategory(CategoryRecruiting)
	leadershipSkills := SkillsForCategory(CategoryLeadership)
	otherSkills := SkillsForCategory(CategoryOther)

	assert.NotEqual(t, dataSkills, recruitingSkills)
	// Leadership and other fall back to the default bundle
	assert.Equal(t, leadershipSkills, otherSkills)
	assert.Len(t, dataSkills, 4)
}

func TestCompose(t *testing.T) {
	gen := &stubGenerator{reply: "Subject: Loved the launch\n\nHi Jane,\nshort note."}
	composer := NewMessageComposer(gen, "Spoorthi", zap.NewNop())

	message, err := composer.Compose(context.Background(), ComposeRequest{
		RecipientName: "Jane Doe",
		CompanyName:   "Acme",
		Industry:      "fintech",
		Category:      CategoryDataAI,
	})
	require.NoError(t, err)

	assert.Equal(t, "Loved the launch", message.Subject)
	assert.Equal(t, "Hi Jane,\nshort note.", message.Body)

	// The prompt carries the sender, recipient, company, and skill bundle
	assert.Contains(t, gen.prompt, "Spoorthi")
	assert.Contains(t, gen.prompt, "Jane Doe")
	assert.Contains(t, gen.prompt, "Acme")
	for _, skill := range SkillsForCategory(CategoryDataAI) {
		assert.Contains(t, gen.prompt, skill)
	}
}

func TestComposeResumeMention(t *testing.T) {
	gen := &stubGenerator{reply: "body"}
	composer := NewMessageComposer(gen, "Spoorthi", zap.NewNop())

	_, err := composer.Compose(context.Background(), ComposeRequest{
		RecipientName:  "Jane Doe",
		CompanyName:    "Acme",
		IncludeResume:  true,
		ResumeFilename: "resume_data_science.pdf",
	})
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "resume_data_science.pdf")
}

func TestComposeGeneratorFailure(t *testing.T) {
	composer := NewMessageComposer(&stubGenerator{err: errors.New("all providers down")}, "Spoorthi", zap.NewNop())

	_, err := composer.Compose(context.Background(), ComposeRequest{RecipientName: "Jane Doe", CompanyName: "Acme"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to generate email"))
}

func TestComposeEmptyReply(t *testing.T) {
	composer := NewMessageComposer(&stubGenerator{reply: "   \n"}, "Spoorthi", zap.NewNop())

	_, err := composer.Compose(context.Background(), ComposeRequest{RecipientName: "Jane Doe", CompanyName: "Acme"})
	assert.Error(t, err)
}
