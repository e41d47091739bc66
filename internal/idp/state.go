package idp

// ProviderState classifies the Google sign-in provider configuration.
// Transport and server errors are reported as errors, never as a state.
type ProviderState int

const (
	// StateAbsent means the provider config does not exist (HTTP 404).
	StateAbsent ProviderState = iota
	// StateDisabled means the provider config exists with enabled=false.
	StateDisabled
	// StateEnabled means the provider config exists with enabled=true.
	StateEnabled
)

func (s ProviderState) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateDisabled:
		return "present-disabled"
	case StateEnabled:
		return "present-enabled"
	default:
		return "unknown"
	}
}

// Exists reports whether a provider config resource exists remotely.
func (s ProviderState) Exists() bool {
	return s == StateDisabled || s == StateEnabled
}
