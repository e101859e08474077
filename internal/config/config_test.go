package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hdxpiano/internal/config"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Buffer() != 100*time.Millisecond {
		t.Fatalf("Buffer = %v", cfg.Buffer())
	}
	reg, err := cfg.Registry()
	if err != nil || reg.Len() != 18 {
		t.Fatalf("Registry = %v, %v", reg, err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "piano.yaml")
	os.WriteFile(path, []byte("sample_dir: /srv/piano\nsample_ext: wav\nlog_level: debug\n"), 0644)
	t.Setenv(config.EnvSocket, "/tmp/test-piano.sock")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleDir != "/srv/piano" || cfg.SampleExt != ".wav" || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Socket != "/tmp/test-piano.sock" {
		t.Fatalf("env override not applied: %q", cfg.Socket)
	}
	if cfg.SampleRate != 48000 {
		t.Fatalf("default sample rate lost: %d", cfg.SampleRate)
	}
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"ext":    "sample_ext: .flac\n",
		"rate":   "sample_rate: 10\n",
		"buffer": "buffer_ms: -5\n",
		"yaml":   "sample_dir: [\n",
	}
	for name, body := range tests {
		path := filepath.Join(dir, name+".yaml")
		os.WriteFile(path, []byte(body), 0644)
		if _, err := config.Load(path); err == nil {
			t.Errorf("%s: Load accepted %q", name, body)
		}
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(config.EnvConfig, "/etc/hdx-piano.yaml")
	if config.Path() != "/etc/hdx-piano.yaml" {
		t.Fatalf("Path = %q", config.Path())
	}
}

func TestKeyMapFromConfig(t *testing.T) {
	dir := t.TempDir()
	km := filepath.Join(dir, "keys.yaml")
	os.WriteFile(km, []byte("keys:\n  - {id: A4, trigger: x}\n"), 0644)
	cfg := config.Default()
	cfg.KeyMap = km
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if d, ok := reg.LookupByTrigger('x'); !ok || d.ID != "A4" {
		t.Fatalf("LookupByTrigger('x') = %v, %v", d, ok)
	}
}
