// Package main is the entry point for the workshop-setup CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
	"github.com/NoobyNull/workshop-setup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError renders typed errors with their remediation text so the
// operator knows what to do next, not just what broke.
func printError(err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", appErr.Message)
		if appErr.Remediation != "" {
			fmt.Fprintf(os.Stderr, "\n%s\n", appErr.Remediation)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
}
