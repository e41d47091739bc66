package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"WORKSHOP_CONFIG", "WORKSHOP_PROJECT_ID", "WORKSHOP_PROJECT_DIR",
		"WORKSHOP_CREDENTIALS_FILE", "WORKSHOP_SENTINEL_FILE",
		"WORKSHOP_PREVIEW_ADDRESS", "WORKSHOP_LOG_LEVEL",
		"GOOGLE_OAUTH_CLIENT_ID", "GOOGLE_OAUTH_CLIENT_SECRET",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultProjectID, cfg.ProjectID)
	assert.Equal(t, filepath.Join(home, "repos", DefaultProjectID), cfg.ProjectDir)
	assert.Equal(t, filepath.Join(home, ".config", "gcloud", DefaultProjectID+"-credentials.json"), cfg.CredentialsFile)
	assert.Equal(t, filepath.Join(home, ".config", "dev-od-computer", "setup_complete"), cfg.SentinelFile)
	assert.Equal(t, ":5000", cfg.Preview.Address)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	setHome(t)
	t.Setenv("WORKSHOP_PROJECT_ID", "my-project")
	t.Setenv("WORKSHOP_CREDENTIALS_FILE", "/secure/creds.json")
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "id.apps.googleusercontent.com")
	t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "my-project", cfg.ProjectID)
	// Derived defaults follow the overridden project id.
	assert.Contains(t, cfg.ProjectDir, "my-project")
	assert.Equal(t, "/secure/creds.json", cfg.CredentialsFile)
	assert.Equal(t, "id.apps.googleusercontent.com", cfg.OAuth.ClientID)
	assert.Equal(t, "hunter2", cfg.OAuth.ClientSecret)
}

func TestLoadConfigFile(t *testing.T) {
	home := setHome(t)

	dir := filepath.Join(home, ".config", "dev-od-computer")
	require.NoError(t, os.MkdirAll(dir, 0700))
	content := "project_id: yaml-project\nlog_level: debug\npreview_address: \":9999\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workshop-setup.yaml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml-project", cfg.ProjectID)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9999", cfg.Preview.Address)
}

func TestLoadEnvBeatsConfigFile(t *testing.T) {
	home := setHome(t)

	dir := filepath.Join(home, ".config", "dev-od-computer")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workshop-setup.yaml"), []byte("project_id: yaml-project\n"), 0600))
	t.Setenv("WORKSHOP_PROJECT_ID", "env-project")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-project", cfg.ProjectID)
}

func TestLoadBadConfigFile(t *testing.T) {
	home := setHome(t)

	dir := filepath.Join(home, ".config", "dev-od-computer")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workshop-setup.yaml"), []byte("{invalid: [unclosed"), 0600))

	_, err := Load()
	assert.Error(t, err)
}
