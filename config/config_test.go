package config

import (
	"errors"
	"testing"
)

func TestFromEnv_RequiresAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error when API key is unset")
	}
	var missing *MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingKeyError, got %T", err)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvBasePath, "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q, expected secret", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, expected %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.BasePath != "" {
		t.Errorf("BasePath = %q, expected empty", cfg.BasePath)
	}
}

func TestFromEnv_ReadsOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvBaseURL, "https://api.example.com/v1")
	t.Setenv(EnvBasePath, "/srv/media")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	if cfg.BaseURL != "https://api.example.com/v1" {
		t.Errorf("BaseURL = %q, expected override", cfg.BaseURL)
	}
	if cfg.BasePath != "/srv/media" {
		t.Errorf("BasePath = %q, expected override", cfg.BasePath)
	}
}
