package verify

import (
	"context"
	"os/exec"
	"strings"

	"github.com/NoobyNull/workshop-setup/pkg/logger"
)

// CheckFirebaseCLI probes for the Firebase CLI. When missing it attempts a
// single global npm install and re-checks once; this is the only retry in the
// whole tool.
func CheckFirebaseCLI(ctx context.Context) Check {
	if version, err := firebaseVersion(ctx); err == nil {
		return Check{Name: "Firebase CLI", Status: StatusPass, Detail: "version " + version}
	}

	logger.Warn("Firebase CLI not found, attempting npm install")
	install := exec.CommandContext(ctx, "npm", "install", "-g", "firebase-tools")
	if err := install.Run(); err != nil {
		return Check{Name: "Firebase CLI", Status: StatusWarn, Detail: "not installed and npm install failed, install firebase-tools manually"}
	}

	version, err := firebaseVersion(ctx)
	if err != nil {
		return Check{Name: "Firebase CLI", Status: StatusWarn, Detail: "still missing after install attempt"}
	}
	return Check{Name: "Firebase CLI", Status: StatusPass, Detail: "version " + version + " (installed)"}
}

func firebaseVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "firebase", "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
