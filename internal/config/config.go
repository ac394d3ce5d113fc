// Package config resolves the breachwatch runtime configuration from its
// three sources: command-line flags, environment variables, and an optional
// config file.
//
// The config file may be JSON or YAML, selected by extension. JSON files
// are parsed as JSONC (comments and trailing commas allowed) via
// github.com/tidwall/jsonc, since hand-edited config files frequently
// carry comments. YAML is parsed with gopkg.in/yaml.v3.
//
// Precedence, highest first: flag > environment > config file > default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/breachwatch/internal/model"
)

// EnvAPIKey is the environment variable holding the breach API key.
const EnvAPIKey = "BREACH_API_KEY"

// File represents the optional on-disk configuration. All fields are
// optional; anything left empty falls through to the next source in the
// precedence chain.
type File struct {
	// APIKey authenticates against the breach API.
	APIKey string `json:"apiKey" yaml:"apiKey"`

	// BaseURL overrides the API endpoint root.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `json:"userAgent" yaml:"userAgent"`

	// TimeoutSeconds overrides the request timeout.
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

// Load reads and parses the config file at the given path. The format is
// chosen by extension: .yaml/.yml via yaml.v3, anything else as JSONC.
//
// Returns a CLIError with ExitGeneralError if the file does not exist or
// cannot be parsed — an explicitly requested config file that is broken
// should stop the run, not be silently skipped.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var cfg File
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	default:
		// Strip JSONC comments and trailing commas before handing the
		// bytes to encoding/json. Unknown fields are silently ignored.
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	}

	return &cfg, nil
}

// Find searches the standard locations for a config file and returns the
// first that exists, or "" when none does. A missing config file is not an
// error — every setting has a flag or environment fallback.
//
// Search order:
//  1. $XDG_CONFIG_HOME/breachwatch/config.json (then .yaml, .yml)
//  2. ~/.config/breachwatch/config.json (then .yaml, .yml)
func Find() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	base := filepath.Join(configDir, "breachwatch")
	candidates := []string{
		filepath.Join(base, "config.json"),
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ResolveAPIKey applies the precedence chain for the API key:
// flag value, then the BREACH_API_KEY environment variable, then the
// config file. Returns "" when no source provides a key; the hibp client
// treats that as an authentication failure before any request is sent.
func ResolveAPIKey(flagValue string, file *File) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvAPIKey); env != "" {
		return env
	}
	if file != nil {
		return file.APIKey
	}
	return ""
}
