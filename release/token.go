package release

import (
	"ghfetch/logging"
	"os"
)

// TokenProvider resolves the GitHub API token from a named environment
// variable. It is constructed once and passed explicitly wherever a token
// is needed, so callers can be tested without mutating the process
// environment mid-flight.
type TokenProvider struct {
	EnvVar string
}

// NewTokenProvider creates a provider reading the given environment variable
func NewTokenProvider(envVar string) *TokenProvider {
	return &TokenProvider{EnvVar: envVar}
}

// Resolve reads the token from the environment at call time.
// An absent or empty variable is a MissingCredentialError. On success the
// token is registered with the logging redaction filter so it can never
// appear in any log line or error text.
func (p *TokenProvider) Resolve() (string, error) {
	token := os.Getenv(p.EnvVar)
	if token == "" {
		return "", &MissingCredentialError{EnvVar: p.EnvVar}
	}

	logging.AddSecret(token)
	return token, nil
}
