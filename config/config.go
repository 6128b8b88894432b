package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kastheco/spindle/log"
)

const ConfigFileName = "config.toml"

// GetConfigDir returns the path to the application's configuration directory,
// XDG-compliant ~/.config/spindle/.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "spindle"), nil
}

// Credentials are the Spotify application credentials, read once at startup.
// The client secret is required for parity with the developer dashboard
// instructions but is never transmitted: the PKCE flow is a public client.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// CredentialsFromEnv reads SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET.
// Both must be present.
func CredentialsFromEnv() (Credentials, error) {
	id := os.Getenv("SPOTIFY_CLIENT_ID")
	if id == "" {
		return Credentials{}, fmt.Errorf("SPOTIFY_CLIENT_ID environment variable not set")
	}
	secret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if secret == "" {
		return Credentials{}, fmt.Errorf("SPOTIFY_CLIENT_SECRET environment variable not set")
	}
	return Credentials{ClientID: id, ClientSecret: secret}, nil
}

// Config represents the application configuration.
type Config struct {
	// SearchDebounceMS is the quiet interval before a typed query is sent.
	SearchDebounceMS int `toml:"search_debounce_ms"`
	// PollIntervalSeconds is how often now-playing and queue state are pulled.
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	// TokenRefreshSeconds is how often the access token is refreshed.
	TokenRefreshSeconds int `toml:"token_refresh_seconds"`
	// AuthTimeoutSeconds bounds the wait for the OAuth redirect.
	AuthTimeoutSeconds int `toml:"auth_timeout_seconds"`
	// RedirectPort is the loopback port for the OAuth redirect listener.
	// It must match the redirect URI registered with the Spotify app.
	RedirectPort int `toml:"redirect_port"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `toml:"telemetry_enabled,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SearchDebounceMS:    500,
		PollIntervalSeconds: 2,
		TokenRefreshSeconds: 600,
		AuthTimeoutSeconds:  60,
		RedirectPort:        8888,
	}
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// LoadConfig reads config.toml from the config directory, falling back to
// defaults when the file is missing or unreadable. Unset tunables keep
// their default values.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to read config file: %v", err)
		}
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	if config.SearchDebounceMS <= 0 {
		config.SearchDebounceMS = 500
	}
	if config.PollIntervalSeconds <= 0 {
		config.PollIntervalSeconds = 2
	}
	if config.TokenRefreshSeconds <= 0 {
		config.TokenRefreshSeconds = 600
	}
	if config.AuthTimeoutSeconds <= 0 {
		config.AuthTimeoutSeconds = 60
	}
	if config.RedirectPort <= 0 {
		config.RedirectPort = 8888
	}
	return config
}

// SaveConfig writes the configuration to disk.
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
