package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLocalConfig_Missing(t *testing.T) {
	cfg := LoadLocalConfig(t.TempDir())
	if cfg == nil {
		t.Fatal("expected non-nil empty config")
	}
	if cfg.DBPath != "" {
		t.Errorf("expected empty DBPath, got %q", cfg.DBPath)
	}
}

func TestLoadLocalConfig_Present(t *testing.T) {
	dir := t.TempDir()
	content := "db-path: /var/lib/tagengine.db\npolicy-dir: pol\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := LoadLocalConfig(dir)
	if cfg.DBPath != "/var/lib/tagengine.db" {
		t.Errorf("DBPath = %q, want /var/lib/tagengine.db", cfg.DBPath)
	}
	if cfg.PolicyDir != "pol" {
		t.Errorf("PolicyDir = %q, want pol", cfg.PolicyDir)
	}
}

func TestLoadLocalConfigWithEnv_Override(t *testing.T) {
	dir := t.TempDir()
	content := "db-path: file.db\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TAGENGINE_DB_PATH", "/override.db")
	cfg := LoadLocalConfigWithEnv(dir)
	if cfg.DBPath != "/override.db" {
		t.Errorf("DBPath = %q, want /override.db", cfg.DBPath)
	}
}
