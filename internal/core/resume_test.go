package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeResumeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644))
	}
	return dir
}

func TestSelectNoResumes(t *testing.T) {
	matcher := NewResumeMatcher(t.TempDir(), nil, nil, zap.NewNop())

	_, err := matcher.Select(context.Background(), ResumeRequest{CompanyName: "Acme"})
	assert.Error(t, err)
}

func TestSelectSingleResume(t *testing.T) {
	dir := writeResumeFiles(t, "resume.pdf")
	matcher := NewResumeMatcher(dir, nil, nil, zap.NewNop())

	selection, err := matcher.Select(context.Background(), ResumeRequest{CompanyName: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "resume.pdf"), selection.Path)
	assert.Equal(t, 1.0, selection.Confidence)
}

func TestSelectWithGeneratorReply(t *testing.T) {
	dir := writeResumeFiles(t, "data_science.pdf", "general.pdf")
	gen := &stubGenerator{reply: "SELECTED: data_science.pdf\nCONFIDENCE: 0.9"}
	matcher := NewResumeMatcher(dir, gen, nil, zap.NewNop())

	selection, err := matcher.Select(context.Background(), ResumeRequest{
		CompanyName: "Acme",
		RoleHint:    "data science",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data_science.pdf"), selection.Path)
	assert.Equal(t, 0.9, selection.Confidence)
}

func TestSelectKeywordFallback(t *testing.T) {
	dir := writeResumeFiles(t, "aaa_general.pdf", "data_science_resume.pdf")
	gen := &stubGenerator{err: errors.New("generator unavailable")}
	matcher := NewResumeMatcher(dir, gen, nil, zap.NewNop())

	selection, err := matcher.Select(context.Background(), ResumeRequest{
		CompanyName: "Acme",
		RoleHint:    "data science",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data_science_resume.pdf"), selection.Path)
	assert.Equal(t, 0.6, selection.Confidence)
}

func TestSelectFirstFileFallback(t *testing.T) {
	dir := writeResumeFiles(t, "alpha.pdf", "beta.pdf")
	gen := &stubGenerator{err: errors.New("generator unavailable")}
	matcher := NewResumeMatcher(dir, gen, nil, zap.NewNop())

	selection, err := matcher.Select(context.Background(), ResumeRequest{CompanyName: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "alpha.pdf"), selection.Path)
	assert.Equal(t, 0.5, selection.Confidence)
}

func TestParseResumeReply(t *testing.T) {
	name, confidence, ok := ParseResumeReply("SELECTED: data_science.pdf\nCONFIDENCE: 0.85")
	require.True(t, ok)
	assert.Equal(t, "data_science.pdf", name)
	assert.Equal(t, 0.85, confidence)

	name, confidence, ok = ParseResumeReply("selected: General Resume.docx")
	require.True(t, ok)
	assert.Equal(t, "General Resume.docx", name)
	assert.Equal(t, 0.5, confidence)

	_, _, ok = ParseResumeReply("I think the first one is best")
	assert.False(t, ok)
}
