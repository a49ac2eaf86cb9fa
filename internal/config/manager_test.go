package config

import (
	"os"
	"testing"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	m := NewManagerAt(t.TempDir())

	if m.Exists() {
		t.Error("Exists() = true before any save")
	}
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := NewManagerAt(t.TempDir())

	want := &Config{
		BaseURL:        "http://example.test/api/v1",
		LogLevel:       "debug",
		RequestTimeout: 30,
	}
	if err := m.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !m.Exists() {
		t.Error("Exists() = false after save")
	}

	got, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	info, err := os.Stat(m.GetConfigPath())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	m := NewManagerAt(t.TempDir())
	if err := m.Save(&Config{LogLevel: "info"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(m.GetConfigPath(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := m.Load(); err == nil {
		t.Fatal("expected error for corrupt config file")
	}
}
