// Package sentinel records completion metadata for a setup run.
//
// The sentinel file is informational, for humans and automation to see that
// setup ran; nothing consults it for correctness.
package sentinel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/NoobyNull/workshop-setup/internal/config"
	"github.com/NoobyNull/workshop-setup/internal/credentials"
)

// Record is the content of the sentinel file.
type Record struct {
	SetupComplete         bool   `json:"setup_complete"`
	ProjectID             string `json:"project_id"`
	ClientEmail           string `json:"client_email"`
	PrivateKeyID          string `json:"private_key_id,omitempty"`
	CredentialFingerprint string `json:"credential_fingerprint"`
	CredentialsFile       string `json:"credentials_file"`
	ProjectDir            string `json:"project_dir"`
	RunID                 string `json:"run_id"`
	SetupTimestamp        string `json:"setup_timestamp"`
}

// New builds a completion record for the given credentials and configuration.
func New(sa *credentials.ServiceAccount, cfg *config.Config) Record {
	return Record{
		SetupComplete:         true,
		ProjectID:             sa.ProjectID,
		ClientEmail:           sa.ClientEmail,
		PrivateKeyID:          sa.PrivateKeyID,
		CredentialFingerprint: sa.Fingerprint(),
		CredentialsFile:       cfg.CredentialsFile,
		ProjectDir:            cfg.ProjectDir,
		RunID:                 uuid.NewString(),
		SetupTimestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

// Write persists the record to path with owner-only permissions.
func Write(path string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create sentinel directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sentinel record: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write sentinel file: %w", err)
	}
	return os.Chmod(path, 0600)
}

// Read loads a previously written record.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from operator config
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse sentinel file: %w", err)
	}
	return &rec, nil
}
