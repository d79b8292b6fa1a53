package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llmwire.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
base_url: "https://api.example.com/v1"
model: "gpt-4"
timeout: 30s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://api.example.com/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Model != "gpt-4" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("LLMWIRE_TEST_MODEL", "mistral-small")
	path := writeConfig(t, `
model: "${LLMWIRE_TEST_MODEL}"
api_key: "${LLMWIRE_TEST_MISSING:-fallback-key}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "mistral-small" {
		t.Errorf("Model = %q, want env value", cfg.Model)
	}
	if cfg.APIKey != "fallback-key" {
		t.Errorf("APIKey = %q, want default value", cfg.APIKey)
	}
}

func TestLoad_UnresolvedVariable(t *testing.T) {
	path := writeConfig(t, `api_key: "${LLMWIRE_DEFINITELY_UNSET}"`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unresolved variable")
	}
	if !strings.Contains(err.Error(), "LLMWIRE_DEFINITELY_UNSET") {
		t.Errorf("error %q does not name the variable", err.Error())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
