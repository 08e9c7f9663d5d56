package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	return path
}

func TestLoadProfileByName(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  - name: dev
    base_url: http://localhost:3000/api
    timeout_seconds: 5
  - name: staging
    base_url: https://staging.example.com/api
`)

	p, err := LoadProfile(path, "Staging")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.BaseURL != "https://staging.example.com/api" {
		t.Fatalf("unexpected base url %q", p.BaseURL)
	}

	if _, err := LoadProfile(path, "prod"); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}

func TestLoadProfilesValidation(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  - name: dev
`)
	if _, err := LoadProfiles(path); err == nil {
		t.Fatalf("expected error for profile without base_url")
	}

	if _, err := LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadUsesProfileOverride(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  - name: staging
    base_url: https://staging.example.com/api
    timeout_seconds: 30
`)
	t.Setenv("PROFILES_FILE", path)
	t.Setenv("API_PROFILE", "staging")
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://staging.example.com/api" {
		t.Fatalf("profile did not override base url: %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeoutSeconds != 30 {
		t.Fatalf("profile did not override timeout: %d", cfg.RequestTimeoutSeconds)
	}
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("API_PROFILE", "")
	t.Setenv("API_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when no base url configured")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_PROFILE", "")
	t.Setenv("API_BASE_URL", "https://api.example.com/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com/api" {
		t.Fatalf("env base url not applied: %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout.Seconds() != 15 {
		t.Fatalf("default timeout wrong: %v", cfg.RequestTimeout)
	}
}
