package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig represents the instrumentation settings loaded from YAML
type FileConfig struct {
	Provider            string `yaml:"provider,omitempty"`
	MaxFieldLength      int    `yaml:"max_field_length,omitempty"`
	Debug               bool   `yaml:"debug,omitempty"`
	InstrumentOpenAI    bool   `yaml:"instrument_openai,omitempty"`
	InstrumentAnthropic bool   `yaml:"instrument_anthropic,omitempty"`
}

// LoadFromFile loads a configuration from a YAML file. Fields absent
// from the file keep their defaults; the redaction hook can only be set
// programmatically.
func LoadFromFile(filePath string) (*Config, error) {
	// Validate file path
	if !isValidFilePath(filePath) {
		return nil, fmt.Errorf("invalid file path")
	}

	// Read file safely
	data, err := os.ReadFile(filePath) // #nosec G304 - Path is validated with isValidFilePath() before use
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := NewConfig()
	if fc.Provider != "" {
		cfg.Provider = fc.Provider
	}
	if fc.MaxFieldLength > 0 {
		cfg.MaxFieldLength = fc.MaxFieldLength
	}
	cfg.Debug = fc.Debug
	cfg.InstrumentOpenAI = fc.InstrumentOpenAI
	cfg.InstrumentAnthropic = fc.InstrumentAnthropic

	return cfg, nil
}

// isValidFilePath checks if a file path is valid and safe
func isValidFilePath(filePath string) bool {
	// Check for empty path
	if filePath == "" {
		return false
	}

	// Clean and normalize the path
	cleanPath := filepath.Clean(filePath)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return false
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return false
	}

	// Paths under these prefixes could lead to sensitive information disclosure
	if strings.HasPrefix(absPath, "/proc") ||
		strings.HasPrefix(absPath, "/sys") ||
		strings.HasPrefix(absPath, "/dev") {
		return false
	}

	// Ensure the file exists and is a regular file
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return false
	}

	return fileInfo.Mode().IsRegular()
}
