package admin

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is used when neither the settings file nor a flag sets one.
const DefaultBaseURL = "http://localhost:8080"

// Settings is the admin CLI configuration stored as TOML.
type Settings struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key,omitempty"`
	Token   string `toml:"token,omitempty"`
}

// DefaultSettingsPath returns ~/.config/go-portfolio-app/admin.toml or the
// platform equivalent.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "go-portfolio-app", "admin.toml"), nil
}

// ReadSettings decodes Settings from r.
func ReadSettings(r io.Reader) (Settings, error) {
	var s Settings
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

// LoadSettings reads the settings file at path. A missing file yields defaults.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{BaseURL: DefaultBaseURL}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	s, err := ReadSettings(f)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings from %s: %w", path, err)
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	return s, nil
}

// SaveSettings writes s to path with owner-only permissions.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("writing settings to %s: %w", path, err)
	}
	return nil
}
