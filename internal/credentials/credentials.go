// Package credentials resolves the CFBD API key from an explicit value,
// the CFBD_API_KEY environment variable, or the key file under ~/.cfbd.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	// EnvAPIKey is the environment variable checked when no key is passed in
	EnvAPIKey = "CFBD_API_KEY"

	// PlaceholderKey is the sample key used throughout the CFBD documentation
	PlaceholderKey = "tigersAreAwesome"

	keyDirName   = ".cfbd"
	keyFileName  = "cfbd.json"
	keyFileField = "cfbd_api_token"
)

var (
	// ErrNoAPIKey indicates no key was supplied or found
	ErrNoAPIKey = errors.New("no CFBD API key found")
	// ErrPlaceholderKey indicates the documentation placeholder was used as a key
	ErrPlaceholderKey = errors.New("the placeholder key must be replaced with a real CFBD API key")
)

// Resolve returns the bearer-formatted API key.
// Lookup order: explicit, CFBD_API_KEY, then the key file in dir (home directory if empty).
func Resolve(explicit, dir string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return Bearer(explicit)
	}

	if key := os.Getenv(EnvAPIKey); strings.TrimSpace(key) != "" {
		return Bearer(key)
	}

	log.Debug().Msg("CFBD API key not set in environment, trying key file")

	key, err := Load(dir)
	if err != nil {
		return "", err
	}
	return Bearer(key)
}

// Bearer normalizes a key into "Bearer <key>" form
func Bearer(key string) (string, error) {
	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "Bearer"))
	switch token {
	case "":
		return "", ErrNoAPIKey
	case PlaceholderKey:
		return "", ErrPlaceholderKey
	}
	return "Bearer " + token, nil
}

// FilePath returns the key file location for dir, defaulting to the home directory
func FilePath(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = home
	}
	return filepath.Join(dir, keyDirName, keyFileName), nil
}

// Load reads the key stored in the key file
func Load(dir string) (string, error) {
	path, err := FilePath(dir)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s does not exist", ErrNoAPIKey, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read key file %s: %w", path, err)
	}

	key := strings.TrimSpace(v.GetString(keyFileField))
	if key == "" {
		return "", fmt.Errorf("%w: %s has no %s", ErrNoAPIKey, path, keyFileField)
	}

	return key, nil
}

// Save writes key to the key file in dir and returns the file path.
// The "Bearer" prefix is not stored.
func Save(key, dir string) (string, error) {
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "Bearer"))
	if key == "" {
		return "", ErrNoAPIKey
	}
	if key == PlaceholderKey {
		return "", ErrPlaceholderKey
	}

	path, err := FilePath(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("failed to create key directory: %w", err)
	}

	v := viper.New()
	v.SetConfigPermissions(0o600)
	v.Set(keyFileField, key)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write key file %s: %w", path, err)
	}

	// WriteConfigAs keeps the mode of an existing file
	if err := os.Chmod(path, 0o600); err != nil {
		return "", fmt.Errorf("failed to restrict key file permissions: %w", err)
	}

	log.Info().Str("path", path).Msg("CFBD API key saved")
	return path, nil
}

// Mask hides all but the edges of a key for display
func Mask(key string) string {
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "Bearer"))
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
