// Package setup orchestrates the first-run provisioning sequence: credential
// discovery, auth verification, scaffold generation, rules download, provider
// status and the completion sentinel.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
	"github.com/NoobyNull/workshop-setup/internal/config"
	"github.com/NoobyNull/workshop-setup/internal/credentials"
	"github.com/NoobyNull/workshop-setup/internal/idp"
	"github.com/NoobyNull/workshop-setup/internal/rules"
	"github.com/NoobyNull/workshop-setup/internal/scaffold"
	"github.com/NoobyNull/workshop-setup/internal/sentinel"
	"github.com/NoobyNull/workshop-setup/internal/verify"
	"github.com/NoobyNull/workshop-setup/pkg/logger"
)

// Runner executes the setup sequence. Zero values select production
// endpoints, real credential discovery and stdout reporting.
type Runner struct {
	Config *config.Config

	// TokenSource overrides the service-account token source (tests).
	TokenSource oauth2.TokenSource
	// IdentityBaseURL and RulesBaseURL override the API endpoints (tests).
	IdentityBaseURL string
	RulesBaseURL    string
	// SkipCLICheck disables the Firebase CLI probe (tests, CI).
	SkipCLICheck bool
	// Out receives the step-by-step progress report.
	Out io.Writer
}

// Run executes the full setup sequence. Credential discovery, token minting
// and scaffold generation are fatal; everything downstream degrades to a
// warning so a partially-permissioned service account still gets a usable
// project directory.
func (r *Runner) Run(ctx context.Context) error {
	if r.Out == nil {
		r.Out = os.Stdout
	}
	cfg := r.Config

	r.banner("First Run Setup")
	fmt.Fprintf(r.Out, "Configuring project %s\n", cfg.ProjectID)
	fmt.Fprintf(r.Out, "Project directory: %s\n", cfg.ProjectDir)

	// Step 1: credentials
	r.banner("Step 1: Checking Google credentials")
	sa, source, err := credentials.Discover()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Service account: %s (source %s)\n", sa.ClientEmail, source)
	fmt.Fprintf(r.Out, "Project ID: %s\n", sa.ProjectID)

	if err := sa.Persist(cfg.CredentialsFile); err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Credentials file: %s\n", cfg.CredentialsFile)

	// Step 2: token
	r.banner("Step 2: Verifying Google auth")
	ts := r.TokenSource
	if ts == nil {
		ts, err = sa.TokenSource(ctx)
		if err != nil {
			return err
		}
	}
	token, err := ts.Token()
	if err != nil {
		return apperrors.InvalidCredentials("could not mint an access token with the service account key").Wrap(err)
	}
	fmt.Fprintf(r.Out, "Token valid until: %s\n", token.Expiry.Format("15:04:05 MST"))

	httpClient := oauth2.NewClient(ctx, ts)
	idpClient := idp.NewClient(cfg.ProjectID, httpClient, r.IdentityBaseURL)

	// Step 3: admin SDK reachability
	r.banner("Step 3: Verifying admin SDK access")
	if count, err := idpClient.CountUsers(ctx); err != nil {
		logger.Warn("Admin SDK check failed: %v", err)
		fmt.Fprintln(r.Out, "Admin SDK access failed; the service account may need the Firebase Admin role")
	} else {
		fmt.Fprintf(r.Out, "Users found: %d\n", count)
	}

	// Step 4: scaffold
	r.banner("Step 4: Writing project scaffold")
	written, err := scaffold.Generate(cfg.ProjectDir, cfg.ProjectID)
	if err != nil {
		return err
	}
	for _, name := range written {
		fmt.Fprintf(r.Out, "Created: %s\n", name)
	}

	// Step 5: published rules
	r.banner("Step 5: Downloading published rules")
	rulesClient := rules.NewClient(cfg.ProjectID, httpClient, r.RulesBaseURL)
	if downloaded, err := rulesClient.Download(ctx, cfg.ProjectDir); err != nil {
		logger.Warn("Could not download published rules: %v", err)
		fmt.Fprintln(r.Out, "Keeping the default locked-down rules")
	} else if len(downloaded) == 0 {
		fmt.Fprintln(r.Out, "No published rulesets, keeping the default locked-down rules")
	} else {
		for _, name := range downloaded {
			fmt.Fprintf(r.Out, "Downloaded: %s\n", name)
		}
	}

	// Step 6: provider status
	r.banner("Step 6: Checking Google sign-in provider")
	r.reportProvider(ctx, idpClient)

	// Step 7: Firebase CLI
	if !r.SkipCLICheck {
		r.banner("Step 7: Verifying Firebase CLI")
		fmt.Fprintln(r.Out, verify.CheckFirebaseCLI(ctx))
	}

	// Step 8: sentinel
	if err := sentinel.Write(cfg.SentinelFile, sentinel.New(sa, cfg)); err != nil {
		logger.Warn("Could not write sentinel file: %v", err)
	}

	r.banner("Setup complete")
	fmt.Fprintf(r.Out, "Project ready at %s\n", cfg.ProjectDir)
	fmt.Fprintf(r.Out, "Deploy with: firebase deploy --project %s\n", cfg.ProjectID)
	return nil
}

// reportProvider prints the three-way provider classification. Never fatal
// during setup; the auth subcommand is the write path.
func (r *Runner) reportProvider(ctx context.Context, client *idp.Client) {
	status, err := client.GetGoogleProvider(ctx)
	if err != nil {
		var apiErr *idp.APIError
		if errors.As(err, &apiErr) {
			logger.Warn("Could not check provider status: HTTP %d", apiErr.StatusCode)
		} else {
			logger.Warn("Could not check provider status: %v", err)
		}
		return
	}

	switch status.State {
	case idp.StateEnabled:
		fmt.Fprintln(r.Out, "Google sign-in provider: enabled")
	case idp.StateDisabled:
		fmt.Fprintln(r.Out, "Google sign-in provider: configured but disabled")
		fmt.Fprintf(r.Out, "Enable it at: https://console.firebase.google.com/project/%s/authentication/providers\n", r.Config.ProjectID)
	case idp.StateAbsent:
		fmt.Fprintln(r.Out, "Google sign-in provider: not configured")
		fmt.Fprintln(r.Out, "Run 'workshop-setup auth' to configure it")
	}
}

func (r *Runner) banner(title string) {
	line := strings.Repeat("=", 50)
	fmt.Fprintf(r.Out, "\n%s\n%s\n%s\n", line, title, line)
}
