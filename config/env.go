package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI=true wins over ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps an ENV value to an Environment, defaulting to
// Development.
func ParseEnvironment(s string) Environment {
	switch env := Environment(strings.ToLower(strings.TrimSpace(s))); env {
	case Production, Test, CI:
		return env
	default:
		return Development
	}
}

// Deployed reports whether the environment runs shared infrastructure, where
// local conveniences like SQLite and text logs are off.
func (e Environment) Deployed() bool {
	return e == Production || e == CI
}
