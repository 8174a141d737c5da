// Package config loads and validates YAML configuration for the
// converter CLI and the preview server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-tex2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxPathLength  = 4096 // Filesystem limit on most platforms
	MaxStyleLength = 100  // Asset name
	MaxURLLength   = 2048 // Browser limit
	MaxAddrLength  = 256  // host:port
)

// Config holds all configuration for conversion and serving.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  StyleConfig  `yaml:"style"`
	Assets AssetsConfig `yaml:"assets"`
	Audit  AuditConfig  `yaml:"audit"`
	PDF    PDFConfig    `yaml:"pdf"`
	Drive  DriveConfig  `yaml:"drive"`
	Server ServerConfig `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default .tex input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// StyleConfig selects the stylesheet inlined into converted documents.
type StyleConfig struct {
	Name string `yaml:"name"` // Name in internal/assets/styles/ (empty = bundled default)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// AuditConfig defines the conversion audit log.
type AuditConfig struct {
	DBPath string `yaml:"dbPath"` // SQLite file (empty = auditing disabled)
}

// PDFConfig defines optional PDF rendering of converted documents.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"` // Per document (default 30s)
}

// DriveConfig defines the cloud-drive source download link.
type DriveConfig struct {
	ShareLink string `yaml:"shareLink"` // Share link rewritten to a direct download URL
}

// ServerConfig defines the preview server.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address (default ":8080")
}

// Defaults applied where the file leaves fields zero.
const (
	DefaultPDFTimeout = 30 * time.Second
	DefaultServerAddr = ":8080"
)

// Validate checks field lengths and value ranges. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"style.name", c.Style.Name, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"audit.dbPath", c.Audit.DBPath, MaxPathLength},
		{"drive.shareLink", c.Drive.ShareLink, MaxURLLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.PDF.Timeout < 0 {
		return fmt.Errorf("pdf.timeout: must not be negative, got %s", c.PDF.Timeout)
	}
	if strings.ContainsAny(c.Style.Name, "/\\.") {
		return fmt.Errorf("style.name: invalid value %q (must be a bare asset name)", c.Style.Name)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration with optional features
// disabled.
func DefaultConfig() *Config {
	return &Config{
		PDF:    PDFConfig{Enabled: false, Timeout: DefaultPDFTimeout},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.PDF.Timeout == 0 {
		cfg.PDF.Timeout = DefaultPDFTimeout
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-tex2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-tex2html", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
