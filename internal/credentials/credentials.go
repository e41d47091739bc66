// Package credentials locates, validates and persists the Google service
// account key used by all remote calls.
//
// Discovery order: GOOGLE_SERVICE_ACCOUNT_JSON (raw key content), then
// GOOGLE_APPLICATION_CREDENTIALS as a file path. A value of the latter that
// starts with "{" is treated as key content pasted in place of a path.
package credentials

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
)

// Environment variables consulted during discovery.
const (
	EnvServiceAccountJSON     = "GOOGLE_SERVICE_ACCOUNT_JSON"
	EnvApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Scopes requested for the service account bearer token.
var Scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/firebase",
	"https://www.googleapis.com/auth/identitytoolkit",
}

// requiredFields must all be present in a usable service account key.
var requiredFields = []string{"type", "project_id", "private_key", "client_email"}

// Source identifies where a credential was discovered.
type Source string

// Discovery sources, in priority order.
const (
	SourceEnvJSON    Source = "env-json"
	SourceFile       Source = "file"
	SourceInlineJSON Source = "inline-json"
)

// ServiceAccount is a validated service account key. The full key content is
// retained so persisting it loses no fields.
type ServiceAccount struct {
	Type         string
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string

	raw map[string]any
}

// Parse validates raw service account JSON.
func Parse(data []byte) (*ServiceAccount, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.InvalidCredentials("service account key is not valid JSON").Wrap(err)
	}

	for _, field := range requiredFields {
		if stringField(raw, field) == "" {
			return nil, apperrors.InvalidCredentials(fmt.Sprintf("service account key is missing %q", field)).WithField(field)
		}
	}

	if stringField(raw, "type") != "service_account" {
		return nil, apperrors.InvalidCredentials("key is not a service account key").WithField("type").
			WithInternal("type is %q", stringField(raw, "type"))
	}

	return &ServiceAccount{
		Type:         stringField(raw, "type"),
		ProjectID:    stringField(raw, "project_id"),
		PrivateKeyID: stringField(raw, "private_key_id"),
		PrivateKey:   stringField(raw, "private_key"),
		ClientEmail:  stringField(raw, "client_email"),
		raw:          raw,
	}, nil
}

// Discover locates a service account key from the environment.
// Validation failures are fatal; there is no fallback past a present but
// invalid source.
func Discover() (*ServiceAccount, Source, error) {
	if content := os.Getenv(EnvServiceAccountJSON); content != "" {
		sa, err := Parse([]byte(content))
		if err != nil {
			return nil, SourceEnvJSON, err
		}
		return sa, SourceEnvJSON, nil
	}

	value := os.Getenv(EnvApplicationCredentials)
	if value == "" {
		return nil, "", apperrors.MissingCredentials("no Google credentials found").WithRemediation(
			"Set one of the following:\n" +
				"  1. GOOGLE_SERVICE_ACCOUNT_JSON - the JSON content of your service account key\n" +
				"  2. GOOGLE_APPLICATION_CREDENTIALS - path to your service account JSON file")
	}

	// Operators sometimes paste the key content where a path belongs.
	if strings.HasPrefix(strings.TrimSpace(value), "{") {
		sa, err := Parse([]byte(value))
		if err != nil {
			return nil, SourceInlineJSON, err
		}
		return sa, SourceInlineJSON, nil
	}

	data, err := os.ReadFile(value) // #nosec G304 - path supplied by the operator
	if err != nil {
		return nil, SourceFile, apperrors.MissingCredentials(fmt.Sprintf("credentials file not found: %s", value)).Wrap(err)
	}

	sa, err := Parse(data)
	if err != nil {
		return nil, SourceFile, err
	}
	return sa, SourceFile, nil
}

// Persist writes the key to path with owner-only permissions and points
// GOOGLE_APPLICATION_CREDENTIALS at it for downstream tooling.
func (sa *ServiceAccount) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(sa.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	// WriteFile does not change the mode of a pre-existing file.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict credentials file permissions: %w", err)
	}

	return os.Setenv(EnvApplicationCredentials, path)
}

// Fingerprint returns a stable hex digest of the key content, recorded in the
// sentinel file so humans can tell which key a setup ran with.
func (sa *ServiceAccount) Fingerprint() string {
	data, err := json.Marshal(sa.raw)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// TokenSource returns an auto-refreshing bearer token source for the key.
func (sa *ServiceAccount) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	data, err := json.Marshal(sa.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, apperrors.InvalidCredentials("service account key cannot be used for authentication").Wrap(err)
	}

	return jwtConfig.TokenSource(ctx), nil
}

func stringField(raw map[string]any, key string) string {
	value, _ := raw[key].(string)
	return value
}
