package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	API       APIConfig
	Session   SessionConfig
	Downloads DownloadsConfig
	Reporting ReportingConfig
	DevServer DevServerConfig
}

// APIConfig points the client at the farm backend.
type APIConfig struct {
	BaseURL string
}

// SessionConfig locates the persisted credential file.
type SessionConfig struct {
	FilePath string
}

// DownloadsConfig holds the directory exported spreadsheets land in.
type DownloadsConfig struct {
	Dir string
}

// ReportingConfig holds the scheduled summary job settings.
type ReportingConfig struct {
	CronSchedule    string
	Timezone        string
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// DevServerConfig configures the local fixture server.
type DevServerConfig struct {
	Port      string
	JWTSecret string
	MongoURI  string
	MongoDB   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	home, _ := os.UserHomeDir()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getenvWithDefault("DAIRYDESK_API_URL", "http://localhost:8080"),
		},
		Session: SessionConfig{
			FilePath: os.Getenv("DAIRYDESK_SESSION_FILE"),
		},
		Downloads: DownloadsConfig{
			Dir: getenvWithDefault("DAIRYDESK_DOWNLOADS_DIR", filepath.Join(home, "Downloads")),
		},
		Reporting: ReportingConfig{
			CronSchedule:    getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:        getenvWithDefault("TIMEZONE", "Africa/Conakry"),
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
			SheetRange:      getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "Daily!A:G"),
		},
		DevServer: DevServerConfig{
			Port:      getenvWithDefault("DEVSERVER_PORT", "8080"),
			JWTSecret: getenvWithDefault("DEVSERVER_JWT_SECRET", "dairydesk-dev-secret"),
			MongoURI:  os.Getenv("DEVSERVER_MONGODB_URI"),
			MongoDB:   getenvWithDefault("DEVSERVER_MONGODB_DB_NAME", "dairydesk"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.API.BaseURL == "" {
		return errors.New("DAIRYDESK_API_URL must be provided")
	}

	if c.Downloads.Dir == "" {
		return errors.New("DAIRYDESK_DOWNLOADS_DIR must be provided")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.DevServer.Port == "" {
		return errors.New("DEVSERVER_PORT must be provided")
	}

	return nil
}

// ValidateReporting checks the extra fields only the report job needs, so
// the interactive commands can run without Sheets credentials.
func (c *Config) ValidateReporting() error {
	if c.Reporting.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
	}
	if c.Reporting.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_REPORT_ID must be provided")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
