// Package config loads the process-wide Speechlab configuration from the
// environment.
//
// Configuration is read once at startup into an immutable Config value that
// is passed to every component at construction. Components never read the
// environment themselves, which keeps them testable with fabricated
// configurations.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is used when SPEECHLAB_API_BASE_URL is not set.
const DefaultBaseURL = "http://localhost/v1"

// Environment variable names.
const (
	EnvAPIKey   = "SPEECHLAB_API_KEY"
	EnvBaseURL  = "SPEECHLAB_API_BASE_URL"
	EnvBasePath = "SPEECHLAB_MCP_BASE_PATH"
)

// Config holds the resolved Speechlab configuration.
//
// All fields are read-only after FromEnv returns.
type Config struct {
	// APIKey is the Speechlab API bearer token. Required.
	APIKey string

	// BaseURL is the API base URL, e.g. "https://api.example.com/v1".
	BaseURL string

	// BasePath, when set, is used to resolve relative input and output
	// file paths passed to the tools. Optional.
	BasePath string
}

// MissingKeyError is returned when the API key is absent from the
// environment.
type MissingKeyError struct{}

func (e *MissingKeyError) Error() string {
	return EnvAPIKey + " environment variable is required"
}

// FromEnv builds a Config from the process environment.
//
// A .env file in the working directory is loaded first if present; real
// environment variables take precedence over it. Returns a
// *MissingKeyError if no API key is configured.
func FromEnv() (*Config, error) {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, &MissingKeyError{}
	}

	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Config{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		BasePath: os.Getenv(EnvBasePath),
	}, nil
}
