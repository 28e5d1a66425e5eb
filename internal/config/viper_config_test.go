package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	rt, err := Load(dir, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rt.DBPath() != filepath.Join(dir, DefaultDBFile) {
		t.Errorf("DBPath = %q", rt.DBPath())
	}
	if rt.DefaultHostNamespace() != DefaultHostNamespace {
		t.Errorf("DefaultHostNamespace = %q", rt.DefaultHostNamespace())
	}
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	content := "db-path: custom.db\ndefault-host-namespace: issue\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rt, err := Load(dir, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rt.DBPath() != "custom.db" {
		t.Errorf("DBPath = %q, want custom.db", rt.DBPath())
	}
	if rt.DefaultHostNamespace() != "issue" {
		t.Errorf("DefaultHostNamespace = %q, want issue", rt.DefaultHostNamespace())
	}
}
