package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DAIRYDESK_API_URL", "")
	t.Setenv("REPORT_CRON_SCHEDULE", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("DEVSERVER_PORT", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Africa/Conakry", cfg.Reporting.Timezone)
	assert.Equal(t, "8080", cfg.DevServer.Port)
	assert.NotEmpty(t, cfg.Downloads.Dir)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DAIRYDESK_API_URL", "https://farm.example.com")
	t.Setenv("DAIRYDESK_DOWNLOADS_DIR", "/tmp/exports")
	t.Setenv("DEVSERVER_PORT", "9090")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://farm.example.com", cfg.API.BaseURL)
	assert.Equal(t, "/tmp/exports", cfg.Downloads.Dir)
	assert.Equal(t, "9090", cfg.DevServer.Port)
}

func TestValidateRequiresCoreFields(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.API.BaseURL = ""
	assert.ErrorContains(t, cfg.Validate(), "DAIRYDESK_API_URL")
}

func TestValidateReporting(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("GOOGLE_SHEET_REPORT_ID", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	// Interactive commands run without Sheets settings; the report job
	// refuses to.
	require.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateReporting())

	cfg.Reporting.CredentialsPath = "/etc/dairydesk/sa.json"
	cfg.Reporting.SpreadsheetID = "sheet-id"
	assert.NoError(t, cfg.ValidateReporting())
}
