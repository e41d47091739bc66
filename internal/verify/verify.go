// Package verify runs read-only diagnostics against the project's
// authentication configuration.
//
// Checks are independent: one failing is reported without blocking the
// others. Only the core credential checks decide the process exit status.
package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
	"github.com/NoobyNull/workshop-setup/internal/config"
	"github.com/NoobyNull/workshop-setup/internal/credentials"
	"github.com/NoobyNull/workshop-setup/internal/idp"
)

// Status is the outcome of a single check.
type Status string

// Check outcomes.
const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
	StatusInfo Status = "INFO"
)

// Check is one diagnostic result.
type Check struct {
	Name   string
	Status Status
	Detail string
}

func (c Check) String() string {
	return fmt.Sprintf("[%s] %s: %s", c.Status, c.Name, c.Detail)
}

// Result aggregates all checks. CoreOK is false when credential discovery or
// token minting failed; everything else is advisory.
type Result struct {
	Checks []Check
	CoreOK bool
}

// GoogleOIDCIssuer is the issuer probed for OIDC discovery reachability.
const GoogleOIDCIssuer = "https://accounts.google.com"

// Runner executes the verification checks. Zero values select production
// endpoints and real credential discovery.
type Runner struct {
	Config *config.Config

	// TokenSource overrides the service-account token source (tests).
	TokenSource oauth2.TokenSource
	// IdentityBaseURL overrides the Identity Toolkit endpoint (tests).
	IdentityBaseURL string
	// OIDCIssuer overrides the probed OIDC issuer (tests).
	OIDCIssuer string
	// SkipCLICheck disables the Firebase CLI probe (tests, CI).
	SkipCLICheck bool
}

// Run executes every check and aggregates the results.
func (r *Runner) Run(ctx context.Context) *Result {
	res := &Result{CoreOK: true}

	sa, source, err := credentials.Discover()
	if err != nil {
		res.CoreOK = false
		res.add("credentials", StatusFail, describeError(err))
		res.add("access token", StatusInfo, "skipped (no credentials)")
		res.add("admin SDK", StatusInfo, "skipped (no credentials)")
		res.add("Google sign-in provider", StatusInfo, "skipped (no credentials)")
		res.add("Identity Platform config", StatusInfo, "skipped (no credentials)")
	} else {
		res.add("credentials", StatusPass,
			fmt.Sprintf("%s (project %s, source %s)", sa.ClientEmail, sa.ProjectID, source))
		r.runAuthenticatedChecks(ctx, sa, res)
	}

	r.checkOIDCDiscovery(ctx, res)

	if !r.SkipCLICheck {
		res.Checks = append(res.Checks, CheckFirebaseCLI(ctx))
	}

	return res
}

// runAuthenticatedChecks mints a token and performs the remote API probes.
func (r *Runner) runAuthenticatedChecks(ctx context.Context, sa *credentials.ServiceAccount, res *Result) {
	ts := r.TokenSource
	if ts == nil {
		var err error
		ts, err = sa.TokenSource(ctx)
		if err != nil {
			res.CoreOK = false
			res.add("access token", StatusFail, describeError(err))
			return
		}
	}

	token, err := ts.Token()
	if err != nil {
		res.CoreOK = false
		res.add("access token", StatusFail, fmt.Sprintf("could not mint bearer token: %v", err))
		return
	}
	res.add("access token", StatusPass, fmt.Sprintf("valid until %s", token.Expiry.Format("15:04:05 MST")))

	client := idp.NewClient(r.Config.ProjectID, oauth2.NewClient(ctx, ts), r.IdentityBaseURL)

	r.checkAdminSDK(ctx, client, res)
	r.checkProvider(ctx, client, res)
	r.checkProjectConfig(ctx, client, res)
}

func (r *Runner) checkAdminSDK(ctx context.Context, client *idp.Client, res *Result) {
	count, err := client.CountUsers(ctx)
	if err != nil {
		res.add("admin SDK", StatusWarn, describeError(err))
		return
	}
	res.add("admin SDK", StatusPass, fmt.Sprintf("user listing reachable (%d users on first page)", count))
}

func (r *Runner) checkProvider(ctx context.Context, client *idp.Client, res *Result) {
	status, err := client.GetGoogleProvider(ctx)
	if err != nil {
		res.add("Google sign-in provider", StatusWarn, describeError(err))
		return
	}

	switch status.State {
	case idp.StateEnabled:
		detail := "enabled"
		if status.ClientID != "" {
			detail = fmt.Sprintf("enabled (client id %s)", truncate(status.ClientID, 30))
		}
		res.add("Google sign-in provider", StatusPass, detail)
	case idp.StateDisabled:
		res.add("Google sign-in provider", StatusWarn,
			fmt.Sprintf("configured but disabled, enable it at https://console.firebase.google.com/project/%s/authentication/providers", r.Config.ProjectID))
	case idp.StateAbsent:
		res.add("Google sign-in provider", StatusInfo,
			"not configured, run 'workshop-setup auth' to configure it")
	}
}

func (r *Runner) checkProjectConfig(ctx context.Context, client *idp.Client, res *Result) {
	cfg, err := client.GetProjectConfig(ctx)
	if err != nil {
		res.add("Identity Platform config", StatusWarn, describeError(err))
		return
	}
	if cfg == nil {
		res.add("Identity Platform config", StatusInfo, "Identity Platform not yet configured for this project")
		return
	}
	res.add("Identity Platform config", StatusPass,
		fmt.Sprintf("email sign-in %s, anonymous sign-in %s",
			enabledWord(cfg.SignIn.Email.Enabled), enabledWord(cfg.SignIn.Anonymous.Enabled)))
}

// checkOIDCDiscovery probes Google's OIDC discovery document. A pure
// connectivity check, no credentials involved.
func (r *Runner) checkOIDCDiscovery(ctx context.Context, res *Result) {
	issuer := r.OIDCIssuer
	if issuer == "" {
		issuer = GoogleOIDCIssuer
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		res.add("OIDC discovery", StatusWarn, fmt.Sprintf("discovery document unreachable: %v", err))
		return
	}
	res.add("OIDC discovery", StatusPass, fmt.Sprintf("issuer %s reachable (auth endpoint %s)", issuer, provider.Endpoint().AuthURL))
}

func (res *Result) add(name string, status Status, detail string) {
	res.Checks = append(res.Checks, Check{Name: name, Status: status, Detail: detail})
}

// describeError renders typed errors with their remediation text. API and
// transport failures arrive as typed errors with the status preserved in the
// message, so the absent / disabled / transport distinction survives.
func describeError(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Remediation != "" {
			msg += "\n" + appErr.Remediation
		}
		return msg
	}
	return err.Error()
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
