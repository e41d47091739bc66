// Package idp manages the Firebase Identity Toolkit configuration for a
// project, in particular the Google sign-in provider.
package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
)

// DefaultBaseURL is the production Identity Toolkit endpoint.
const DefaultBaseURL = "https://identitytoolkit.googleapis.com"

// googleProviderID is the fixed provider id of the Google sign-in method.
const googleProviderID = "google.com"

// APIError represents an error response from the Identity Toolkit API with
// the HTTP status code preserved.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "Identity Toolkit rejected the bearer token (expired or invalid credentials)"
	case http.StatusForbidden:
		return "service account lacks permission for the Identity Toolkit API (needs the Firebase Admin role)"
	case http.StatusTooManyRequests:
		return "Identity Toolkit API rate limit exceeded, try again later"
	default:
		return fmt.Sprintf("Identity Toolkit API returned status %d: %s", e.StatusCode, e.Body)
	}
}

// Client calls the Identity Toolkit admin APIs for a single project.
type Client struct {
	projectID string
	baseURL   string
	client    *http.Client
}

// NewClient creates an Identity Toolkit client. The http.Client must carry
// bearer authentication (an oauth2 transport). An empty baseURL selects the
// production endpoint.
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

// ProviderStatus describes the remote Google provider configuration.
type ProviderStatus struct {
	State    ProviderState
	ClientID string
}

// GoogleProviderConfig is the writable part of the provider resource.
type GoogleProviderConfig struct {
	Enabled      bool   `json:"enabled"`
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// providerResource is the wire shape of a defaultSupportedIdpConfig.
type providerResource struct {
	Name         string `json:"name,omitempty"`
	Enabled      bool   `json:"enabled"`
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// GetGoogleProvider classifies the current Google provider configuration.
// A 404 is the absent state, not an error.
func (c *Client) GetGoogleProvider(ctx context.Context) (*ProviderStatus, error) {
	url := fmt.Sprintf("%s/admin/v2/projects/%s/defaultSupportedIdpConfigs/%s", c.baseURL, c.projectID, googleProviderID)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var res providerResource
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			return nil, fmt.Errorf("failed to decode provider config: %w", err)
		}
		state := StateDisabled
		if res.Enabled {
			state = StateEnabled
		}
		return &ProviderStatus{State: state, ClientID: res.ClientID}, nil
	case http.StatusNotFound:
		return &ProviderStatus{State: StateAbsent}, nil
	default:
		return nil, c.apiError(resp)
	}
}

// CreateGoogleProvider creates the provider config (POST, absent state only).
func (c *Client) CreateGoogleProvider(ctx context.Context, cfg GoogleProviderConfig) (*ProviderStatus, error) {
	url := fmt.Sprintf("%s/admin/v2/projects/%s/defaultSupportedIdpConfigs?idpId=%s", c.baseURL, c.projectID, googleProviderID)
	return c.writeProvider(ctx, http.MethodPost, url, cfg)
}

// UpdateGoogleProvider updates an existing provider config (PATCH).
func (c *Client) UpdateGoogleProvider(ctx context.Context, cfg GoogleProviderConfig) (*ProviderStatus, error) {
	url := fmt.Sprintf("%s/admin/v2/projects/%s/defaultSupportedIdpConfigs/%s", c.baseURL, c.projectID, googleProviderID)
	return c.writeProvider(ctx, http.MethodPatch, url, cfg)
}

func (c *Client) writeProvider(ctx context.Context, method, url string, cfg GoogleProviderConfig) (*ProviderStatus, error) {
	resp, err := c.do(ctx, method, url, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.apiError(resp)
	}

	var res providerResource
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode provider config: %w", err)
	}
	state := StateDisabled
	if res.Enabled {
		state = StateEnabled
	}
	return &ProviderStatus{State: state, ClientID: res.ClientID}, nil
}

// EnsureGoogleProvider drives the create-or-update decision for the Google
// provider. With no OAuth client credentials it refuses to create a missing
// provider, and treats an existing one as a soft success.
func (c *Client) EnsureGoogleProvider(ctx context.Context, clientID, clientSecret string) (*ProviderStatus, error) {
	status, err := c.GetGoogleProvider(ctx)
	if err != nil {
		return nil, err
	}

	if clientID == "" || clientSecret == "" {
		if !status.State.Exists() {
			return nil, apperrors.InvalidInput("no OAuth client credentials supplied and the Google provider is not configured").
				WithRemediation(
					"Create an OAuth 2.0 Client ID (Web application) in the Google Cloud Console, then either:\n" +
						"  - pass --client-id and --client-secret, or\n" +
						"  - export GOOGLE_OAUTH_CLIENT_ID and GOOGLE_OAUTH_CLIENT_SECRET\n" +
						fmt.Sprintf("Alternatively enable the provider in the Firebase Console:\n"+
							"  https://console.firebase.google.com/project/%s/authentication/providers", c.projectID))
		}
		// Existing provider, nothing to change.
		return status, nil
	}

	cfg := GoogleProviderConfig{Enabled: true, ClientID: clientID, ClientSecret: clientSecret}
	if status.State.Exists() {
		return c.UpdateGoogleProvider(ctx, cfg)
	}
	return c.CreateGoogleProvider(ctx, cfg)
}

// ProjectConfig is the subset of the Identity Platform project configuration
// reported during verification.
type ProjectConfig struct {
	SignIn struct {
		Email struct {
			Enabled bool `json:"enabled"`
		} `json:"email"`
		Anonymous struct {
			Enabled bool `json:"enabled"`
		} `json:"anonymous"`
	} `json:"signIn"`
}

// GetProjectConfig fetches the Identity Platform project configuration.
// Returns nil when Identity Platform is not yet configured (404).
func (c *Client) GetProjectConfig(ctx context.Context) (*ProjectConfig, error) {
	url := fmt.Sprintf("%s/v2/projects/%s/config", c.baseURL, c.projectID)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var cfg ProjectConfig
		if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode project config: %w", err)
		}
		return &cfg, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, c.apiError(resp)
	}
}

// CountUsers fetches one page of project accounts, proving admin API access.
func (c *Client) CountUsers(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/accounts:batchGet?maxResults=20", c.baseURL, c.projectID)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, c.apiError(resp)
	}

	var page struct {
		Users []json.RawMessage `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return 0, fmt.Errorf("failed to decode accounts page: %w", err)
	}
	return len(page.Users), nil
}

func (c *Client) do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Transport("could not reach the Identity Toolkit API").Wrap(err)
	}
	return resp, nil
}

func (c *Client) apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	return apperrors.APIFailure(apiErr.Error()).Wrap(apiErr)
}
