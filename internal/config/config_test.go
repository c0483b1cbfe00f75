package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WELLFORM_SHEETS_URL", "https://script.example.com/exec")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SheetsURL != "https://script.example.com/exec" {
		t.Fatalf("SheetsURL = %q", cfg.SheetsURL)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want default :8080", cfg.Addr)
	}
	if cfg.Env != "dev" {
		t.Fatalf("Env = %q, want default dev", cfg.Env)
	}
}

func TestLoadRequiresSheetsURL(t *testing.T) {
	// t.Setenv registers the restore, then the variable is removed so the
	// required check sees it as absent.
	t.Setenv("WELLFORM_SHEETS_URL", "placeholder")
	os.Unsetenv("WELLFORM_SHEETS_URL")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without WELLFORM_SHEETS_URL")
	}
}
