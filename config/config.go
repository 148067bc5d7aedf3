// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// SheetSourceConfig describes the published Google Sheets workbook the fleet
// data lives in. Each tab is exported as CSV via its gid.
type SheetSourceConfig struct {
	// PublishedPageURL is the read-only HTML view of the workbook. Used to
	// discover tab gids when they are not configured explicitly.
	PublishedPageURL string `yaml:"published_page_url"`
	// CSVExportBase is the URL prefix for per-tab CSV export; the tab gid is
	// appended as "&gid=NNN".
	CSVExportBase string `yaml:"csv_export_base"`
	// TabGIDs maps sheet names (Vehicles, ServiceIntervals, MaintenanceRecords,
	// Documents, IssueReports) to their gid. Missing entries are resolved by
	// scraping PublishedPageURL.
	TabGIDs map[string]string `yaml:"tab_gids"`
}

type LocalCSVPathsConfig struct {
	Vehicles           string `yaml:"vehicles"`
	ServiceIntervals   string `yaml:"service_intervals"`
	MaintenanceRecords string `yaml:"maintenance_records"`
	Documents          string `yaml:"documents"`
	IssueReports       string `yaml:"issue_reports"`
}

type DataFreshnessConfig struct {
	SnapshotCheckIntervalStr string `yaml:"snapshot_check_interval"`
	SnapshotCheckInterval    time.Duration // Parsed duration
}

// GatewayConfig holds the Apps Script macro endpoint all writes are forwarded to.
type GatewayConfig struct {
	WebAppURL      string `yaml:"web_app_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// AlertsConfig carries the urgency thresholds for the due-status engine.
// The original front-end had 1000 vs 1001 km drifting between views; 1000 is
// the canonical value here.
type AlertsConfig struct {
	UpcomingKM             int `yaml:"upcoming_km"`
	UpcomingDays           int `yaml:"upcoming_days"`
	DocExpiryDays          int `yaml:"doc_expiry_days"`
	RegistrationExpiryDays int `yaml:"registration_expiry_days"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	SheetSource   SheetSourceConfig   `yaml:"sheet_source"`
	LocalCSVPaths LocalCSVPathsConfig `yaml:"local_csv_paths"`
	DataFreshness DataFreshnessConfig `yaml:"data_freshness"`
	Gateway       GatewayConfig       `yaml:"gateway"`
	Alerts        AlertsConfig        `yaml:"alerts"`
	Log           LogConfig           `yaml:"log"`
}

var AppConfig Config

// LoadConfig reads the YAML config and applies .env / environment overrides
// for the values that should not live in a committed config file.
func LoadConfig(configPath string) error {
	// .env is optional; real environment variables still win below.
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment overrides from .env")
	}

	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
			"../config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			return fmt.Errorf("config.yaml not found in standard locations")
		}
		fmt.Printf("Loading configuration from: %s\n", configPath)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets / deploy-specific values from environment.
	if v := os.Getenv("WHEELS_DB_PASSWORD"); v != "" {
		AppConfig.Database.Password = v
	}
	if v := os.Getenv("WHEELS_DB_HOST"); v != "" {
		AppConfig.Database.Host = v
	}
	if v := os.Getenv("WHEELS_GATEWAY_URL"); v != "" {
		AppConfig.Gateway.WebAppURL = v
	}

	// Parse durations
	if AppConfig.DataFreshness.SnapshotCheckIntervalStr != "" {
		parsed, err := time.ParseDuration(AppConfig.DataFreshness.SnapshotCheckIntervalStr)
		if err != nil {
			return fmt.Errorf("failed to parse SnapshotCheckInterval: %w", err)
		}
		AppConfig.DataFreshness.SnapshotCheckInterval = parsed
	} else {
		AppConfig.DataFreshness.SnapshotCheckInterval = 24 * time.Hour // Default
	}

	applyAlertDefaults()

	// Make sure the snapshot directories exist for the local CSV copies.
	for _, p := range []string{
		AppConfig.LocalCSVPaths.Vehicles,
		AppConfig.LocalCSVPaths.ServiceIntervals,
		AppConfig.LocalCSVPaths.MaintenanceRecords,
		AppConfig.LocalCSVPaths.Documents,
		AppConfig.LocalCSVPaths.IssueReports,
	} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", p, err)
		}
	}

	return nil
}

func applyAlertDefaults() {
	if AppConfig.Alerts.UpcomingKM <= 0 {
		AppConfig.Alerts.UpcomingKM = 1000
	}
	if AppConfig.Alerts.UpcomingDays <= 0 {
		AppConfig.Alerts.UpcomingDays = 30
	}
	if AppConfig.Alerts.DocExpiryDays <= 0 {
		AppConfig.Alerts.DocExpiryDays = 30
	}
	if AppConfig.Alerts.RegistrationExpiryDays <= 0 {
		AppConfig.Alerts.RegistrationExpiryDays = 90
	}
}

// Timeout returns the configured write-gateway timeout with a sane default.
func (g GatewayConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}
