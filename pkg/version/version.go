// Package version exposes the build metadata of the workshop-setup binary.
package version

// Stamped at release time through -ldflags -X; a plain `go build` keeps
// the dev placeholders.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)
