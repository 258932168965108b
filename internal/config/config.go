package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for obed, stored in ~/.obed/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Server ServerConfig `json:"server"`
	// ExportDir is where export artifacts are written. Empty = current directory.
	ExportDir string `json:"export_dir"`
}

// ServerConfig holds the lunch ledger service connection settings.
type ServerConfig struct {
	// URL is the base URL of the ledger service.
	URL string `json:"url"`
	// Username is the default login name for `obed login`.
	Username string `json:"username"`
	// TimeoutSeconds bounds every request to the service.
	TimeoutSeconds int `json:"timeout_seconds"`
}

const (
	// DefaultServerURL matches the ledger service's default local port.
	DefaultServerURL = "http://localhost:8000"
	// DefaultUsername is the service's out-of-the-box admin account.
	DefaultUsername = "admin"
	// DefaultTimeoutSeconds bounds requests; imports and exports of large
	// ledgers stay well under this.
	DefaultTimeoutSeconds = 60
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:            DefaultServerURL,
			Username:       DefaultUsername,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON
// parsing, allowing human-readable documentation inside the file.
const configTemplate = `// obed configuration – ~/.obed/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box against a locally running ledger service.
{
  // ── Ledger service connection ────────────────────────────────────────────
  "server": {
    // Base URL of the lunch ledger service.
    "url": "http://localhost:8000",

    // Default username for: obed login
    "username": "admin",

    // Per-request timeout in seconds.
    "timeout_seconds": 60
  },

  // Directory for files written by: obed export
  // Leave empty to use the current working directory.
  "export_dir": ""
}
`

// BaseDir returns the root data directory (~/.obed).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".obed"), nil
}

// configFilePath returns the path to ~/.obed/config.json.
func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.obed/config.json, creating it with annotated defaults on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Server.URL == "" {
		cfg.Server.URL = DefaultServerURL
	}
	if cfg.Server.Username == "" {
		cfg.Server.Username = DefaultUsername
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		cfg.Server.TimeoutSeconds = DefaultTimeoutSeconds
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
