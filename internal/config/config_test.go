package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "outreach_results", cfg.GetString("pipeline.results_dir"))
	assert.Equal(t, []string{"New York", "NY", "Midwest"}, cfg.GetStringSlice("exclusion.locations"))
	assert.Equal(t, 3, cfg.GetInt("sheet.skip_rows"))
	assert.True(t, cfg.GetBool("scraper.headless"))
	assert.Equal(t, 1.0, cfg.GetFloat64("directory.requests_per_second"))
	assert.True(t, cfg.GetBool("verify.enabled"))
	assert.True(t, cfg.GetBool("generator.use_local"))
	assert.Equal(t, "openai", cfg.GetString("generator.fallback_provider"))
	assert.Equal(t, "filesystem", cfg.GetString("store.type"))
	assert.Equal(t, 587, cfg.GetInt("sender.smtp_port"))
}

func TestGetDuration(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	pause, err := cfg.GetDuration("pipeline.contact_pause_min")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, pause)

	cfg.GetViper().Set("pipeline.contact_pause_min", "not-a-duration")
	_, err = cfg.GetDuration("pipeline.contact_pause_min")
	assert.Error(t, err)
}
