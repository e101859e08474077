package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hdxpiano/internal/keys"
	"hdxpiano/pkg/format"

	"gopkg.in/yaml.v3"
)

const (
	storage_data = ".hdx-piano.yaml"

	EnvConfig   = "HDX_PIANO_CONFIG"
	EnvSamples  = "HDX_PIANO_SAMPLES"
	EnvSocket   = "HDX_PIANO_SOCKET"
	EnvLogLevel = "HDX_PIANO_LOG_LEVEL"
)

// Config is the piano's runtime configuration. Zero fields fall back to
// the defaults from Default.
type Config struct {
	SampleDir  string `yaml:"sample_dir"`
	SampleExt  string `yaml:"sample_ext"`
	SampleRate int    `yaml:"sample_rate"`
	BufferMs   int    `yaml:"buffer_ms"`
	KeyMap     string `yaml:"key_map"`
	Socket     string `yaml:"socket"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	LogFile    string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		SampleDir:  format.SampleDir,
		SampleExt:  format.SampleExt,
		SampleRate: format.SampleRate,
		BufferMs:   format.BufferMillis,
		Socket:     format.SocketFile,
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// Path is $HDX_PIANO_CONFIG, else ~/.hdx-piano.yaml.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return storage_data
	}
	return filepath.Join(home, storage_data)
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.fill()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSamples); v != "" {
		c.SampleDir = v
	}
	if v := os.Getenv(EnvSocket); v != "" {
		c.Socket = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) fill() {
	d := Default()
	if c.SampleDir == "" {
		c.SampleDir = d.SampleDir
	}
	if c.SampleExt == "" {
		c.SampleExt = d.SampleExt
	}
	if !strings.HasPrefix(c.SampleExt, ".") {
		c.SampleExt = "." + c.SampleExt
	}
	if c.SampleRate == 0 {
		c.SampleRate = d.SampleRate
	}
	if c.BufferMs == 0 {
		c.BufferMs = d.BufferMs
	}
	if c.Socket == "" {
		c.Socket = d.Socket
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
}

func (c Config) Validate() error {
	switch strings.ToLower(c.SampleExt) {
	case ".wav", ".mp3":
	default:
		return fmt.Errorf("sample_ext %q: want .wav or .mp3", c.SampleExt)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample_rate %d out of range", c.SampleRate)
	}
	if c.BufferMs <= 0 {
		return fmt.Errorf("buffer_ms must be positive, got %d", c.BufferMs)
	}
	return nil
}

func (c Config) Buffer() time.Duration {
	return time.Duration(c.BufferMs) * time.Millisecond
}

// Registry loads the configured key map, or the built-in table.
func (c Config) Registry() (*keys.Registry, error) {
	if c.KeyMap == "" {
		return keys.Default(), nil
	}
	return keys.LoadKeyMap(c.KeyMap)
}
