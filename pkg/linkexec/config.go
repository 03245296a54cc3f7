package linkexec

import (
	"fmt"
	"os"
	"time"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/parser"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/render"
	"gopkg.in/yaml.v3"
)

// Config holds the file-based configuration of the linkexec tool.
type Config struct {
	OutputName           string `yaml:"output_name"`
	SheetName            string `yaml:"sheet_name"`
	Title                string `yaml:"title"`
	SanitizeDescriptions bool   `yaml:"sanitize_descriptions"`
	CSVEncoding          string `yaml:"csv_encoding"`
	Listen               string `yaml:"listen"`
	MaxUploadMB          int    `yaml:"max_upload_mb"`
	// SessionTTLMinutes is how long the server keeps an idle session's workbook.
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`
	// MaxSessions caps the sessions held at once; the least recently used goes first.
	MaxSessions int `yaml:"max_sessions"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputName:  DefaultOutputName,
		SheetName:   render.DefaultSheetName,
		CSVEncoding: parser.EncodingUTF8,
		Listen:      ":8080",
		MaxUploadMB: 10,

		SessionTTLMinutes: 30,
		MaxSessions:       1000,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if c.OutputName == "" {
		return fmt.Errorf("output_name is required")
	}
	if c.SheetName == "" {
		return fmt.Errorf("sheet_name is required")
	}
	if len([]rune(c.SheetName)) > 31 {
		return fmt.Errorf("sheet_name %q exceeds 31 characters", c.SheetName)
	}
	if !parser.ValidEncoding(c.CSVEncoding) {
		return fmt.Errorf("unsupported csv_encoding %q (use utf-8, latin1 or windows-1252)", c.CSVEncoding)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be > 0")
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("session_ttl_minutes must be > 0")
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("max_sessions must be > 0")
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

// SessionTTL returns how long an idle server session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Options derives processing options from the config.
func (c *Config) Options() Options {
	return Options{
		SheetName:            c.SheetName,
		Title:                c.Title,
		SanitizeDescriptions: c.SanitizeDescriptions,
		CSVEncoding:          c.CSVEncoding,
	}
}
