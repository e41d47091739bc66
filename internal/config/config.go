// Package config handles application configuration management.
//
// Configuration is resolved in three layers: built-in defaults, an optional
// YAML config file, and environment variables (highest precedence).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultProjectID is the Firebase project this tooling provisions.
const DefaultProjectID = "digital-workshop-hub"

// Config holds all application configuration.
type Config struct {
	// ProjectID is the Firebase/GCP project being provisioned.
	ProjectID string

	// ProjectDir is where the local project scaffold is written.
	ProjectDir string

	// CredentialsFile is the canonical path the discovered service account
	// credentials are persisted to.
	CredentialsFile string

	// SentinelFile marks a completed setup run. Informational only.
	SentinelFile string

	OAuth   OAuthConfig
	Preview PreviewConfig

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// OAuthConfig holds the OAuth web client used for the Google sign-in provider.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
}

// PreviewConfig holds the local hosting preview server configuration.
type PreviewConfig struct {
	Address string
}

// fileConfig mirrors the optional YAML config file. Empty values are unset.
type fileConfig struct {
	ProjectID       string `yaml:"project_id"`
	ProjectDir      string `yaml:"project_dir"`
	CredentialsFile string `yaml:"credentials_file"`
	SentinelFile    string `yaml:"sentinel_file"`
	PreviewAddress  string `yaml:"preview_address"`
	LogLevel        string `yaml:"log_level"`
}

// Load resolves configuration from defaults, the optional config file and
// environment variables.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}

	configPath := getEnv("WORKSHOP_CONFIG", filepath.Join(home, ".config", "dev-od-computer", "workshop-setup.yaml"))
	fc, err := loadFile(configPath)
	if err != nil {
		return nil, err
	}

	projectID := getEnv("WORKSHOP_PROJECT_ID", firstNonEmpty(fc.ProjectID, DefaultProjectID))

	cfg := &Config{
		ProjectID:  projectID,
		ProjectDir: getEnv("WORKSHOP_PROJECT_DIR", firstNonEmpty(fc.ProjectDir, filepath.Join(home, "repos", projectID))),
		CredentialsFile: getEnv("WORKSHOP_CREDENTIALS_FILE", firstNonEmpty(fc.CredentialsFile,
			filepath.Join(home, ".config", "gcloud", projectID+"-credentials.json"))),
		SentinelFile: getEnv("WORKSHOP_SENTINEL_FILE", firstNonEmpty(fc.SentinelFile,
			filepath.Join(home, ".config", "dev-od-computer", "setup_complete"))),
		OAuth: OAuthConfig{
			ClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),
		},
		Preview: PreviewConfig{
			Address: getEnv("WORKSHOP_PREVIEW_ADDRESS", firstNonEmpty(fc.PreviewAddress, ":5000")),
		},
		LogLevel: getEnv("WORKSHOP_LOG_LEVEL", firstNonEmpty(fc.LogLevel, "info")),
	}

	return cfg, nil
}

// loadFile reads the YAML config file. A missing file is not an error.
func loadFile(path string) (*fileConfig, error) {
	fc := &fileConfig{}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from operator config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return fc, nil
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
