package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up by the serve command.
const DefaultFile = "mt940convert.yaml"

// Config represents the top-level mt940convert.yaml configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Convert ConvertConfig `yaml:"convert"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig controls the HTTP upload surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	BasePath       string   `yaml:"base_path,omitempty"`
	UploadDir      string   `yaml:"upload_dir"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// ConvertConfig selects how statements are parsed.
type ConvertConfig struct {
	Parser string `yaml:"parser"` // "fixed" or "swift"
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Load reads a mt940convert.yaml file from disk. Fields missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":3000",
			UploadDir:      "uploads",
			MaxUploadBytes: 10 << 20,
		},
		Convert: ConvertConfig{
			Parser: "fixed",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Env variable names read by ApplyEnv.
const (
	EnvAddr           = "MT940_ADDR"
	EnvUploadDir      = "MT940_UPLOAD_DIR"
	EnvMaxUploadBytes = "MT940_MAX_UPLOAD_BYTES"
	EnvParser         = "MT940_PARSER"
	EnvLogLevel       = "MT940_LOG_LEVEL"
	EnvLogFormat      = "MT940_LOG_FORMAT"
)

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		EnvAddr:      &c.Server.Addr,
		EnvUploadDir: &c.Server.UploadDir,
		EnvParser:    &c.Convert.Parser,
		EnvLogLevel:  &c.Log.Level,
		EnvLogFormat: &c.Log.Format,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvMaxUploadBytes); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvMaxUploadBytes, v, err)
		}
		c.Server.MaxUploadBytes = n
	}
	return nil
}

// Validate checks values that would otherwise fail at request time.
// parsers is the list of known parser names.
func (c *Config) Validate(parsers []string) error {
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Server.UploadDir == "" {
		return fmt.Errorf("server.upload_dir is required")
	}
	for _, p := range parsers {
		if strings.EqualFold(p, c.Convert.Parser) {
			return nil
		}
	}
	return fmt.Errorf("convert.parser %q is not one of %s", c.Convert.Parser, strings.Join(parsers, ", "))
}
