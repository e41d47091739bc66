// Package rules downloads the published Firestore and Storage security rules
// for a project via the Firebase Rules API.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
)

// DefaultBaseURL is the production Firebase Rules endpoint.
const DefaultBaseURL = "https://firebaserules.googleapis.com"

// APIError represents an error response from the Firebase Rules API with the
// HTTP status code preserved.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Firebase Rules API returned status %d: %s", e.StatusCode, e.Body)
}

// Client calls the Firebase Rules API for a single project.
type Client struct {
	projectID string
	baseURL   string
	client    *http.Client
}

// NewClient creates a Firebase Rules client. The http.Client must carry
// bearer authentication. An empty baseURL selects the production endpoint.
func NewClient(projectID string, httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		projectID: projectID,
		baseURL:   baseURL,
		client:    httpClient,
	}
}

// Release associates a release name with its current ruleset.
type Release struct {
	Name        string `json:"name"`
	RulesetName string `json:"rulesetName"`
}

// Ruleset holds the source files of a published ruleset.
type Ruleset struct {
	Name   string `json:"name"`
	Source struct {
		Files []RulesetFile `json:"files"`
	} `json:"source"`
}

// RulesetFile is a single rules source file.
type RulesetFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ListReleases returns the project's rules releases.
func (c *Client) ListReleases(ctx context.Context) ([]Release, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/releases", c.baseURL, c.projectID)

	var res struct {
		Releases []Release `json:"releases"`
	}
	if err := c.getJSON(ctx, url, &res); err != nil {
		return nil, err
	}
	return res.Releases, nil
}

// GetRuleset fetches a ruleset by its fully qualified resource name.
func (c *Client) GetRuleset(ctx context.Context, name string) (*Ruleset, error) {
	url := fmt.Sprintf("%s/v1/%s", c.baseURL, name)

	var rs Ruleset
	if err := c.getJSON(ctx, url, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Download fetches the current rulesets and writes firestore.rules and
// storage.rules into dir, routed by release or file name. Returns the names
// of the files written.
func (c *Client) Download(ctx context.Context, dir string) ([]string, error) {
	releases, err := c.ListReleases(ctx)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, 2)
	for _, release := range releases {
		if release.RulesetName == "" {
			continue
		}

		ruleset, err := c.GetRuleset(ctx, release.RulesetName)
		if err != nil {
			// One unreadable ruleset does not spoil the rest.
			continue
		}

		for _, file := range ruleset.Source.Files {
			target := targetFilename(release.Name, file.Name)
			if target == "" {
				continue
			}
			path := filepath.Join(dir, target)
			if err := os.WriteFile(path, []byte(file.Content), 0644); err != nil { // #nosec G306 - rules are project sources
				return written, fmt.Errorf("failed to write %s: %w", target, err)
			}
			written = append(written, target)
		}
	}

	return written, nil
}

// targetFilename maps a release/file to the local rules filename, or ""
// when the service the rules belong to cannot be determined.
func targetFilename(releaseName, fileName string) string {
	release := strings.ToLower(releaseName)
	file := strings.ToLower(fileName)
	switch {
	case strings.Contains(release, "firestore") || strings.Contains(file, "firestore"):
		return "firestore.rules"
	case strings.Contains(release, "storage") || strings.Contains(file, "storage"):
		return "storage.rules"
	default:
		return ""
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Transport("could not reach the Firebase Rules API").Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		return apperrors.APIFailure(apiErr.Error()).Wrap(apiErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Firebase Rules response: %w", err)
	}
	return nil
}
