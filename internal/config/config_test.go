package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qoiinfo.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
output = "JSON"
workers = 3
max_pixels = 1000000
skip_end_mark = true
debug = true
human_logs = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Output != OutputJSON {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
	if cfg.Workers != 3 {
		t.Fatalf("unexpected workers: %d", cfg.Workers)
	}
	if cfg.MaxPixels != 1000000 {
		t.Fatalf("unexpected max pixels: %d", cfg.MaxPixels)
	}
	if !cfg.SkipEndMark || !cfg.Debug || !cfg.HumanLogs {
		t.Fatalf("expected booleans enabled: %+v", cfg)
	}
}

func TestLoadKeepsUndefinedDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `debug = true`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Output != OutputText {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
	if cfg.Workers != Default().Workers {
		t.Fatalf("unexpected workers: %d", cfg.Workers)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"Output", `output = "yaml"`, "invalid output"},
		{"Workers", `workers = 0`, "invalid workers"},
		{"MaxPixels", `max_pixels = -1`, "max_pixels"},
		{"UnknownKey", `colour = "red"`, "unknown key"},
		{"Syntax", `output = `, "load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
