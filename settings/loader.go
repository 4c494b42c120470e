package settings

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the environment variable consulted for the override
	// file location when no explicit path is given.
	EnvConfigPath = "DYNASETTINGS_CONFIG"

	// DefaultConfigPath is the override file location used when neither an
	// explicit path nor the environment variable is set.
	DefaultConfigPath = "/etc/dynasettings/settings.yaml"
)

// ErrMalformedOverride indicates an override file that exists but cannot be
// parsed as a YAML mapping.
var ErrMalformedOverride = errors.New("malformed override settings file")

// obsoleteKeys are legacy setting names. Their presence in an override file is
// warned about once per key and otherwise ignored.
var obsoleteKeys = []string{
	"session_cls",
	"request_timeout_seconds",
}

func resolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// loadOverrides reads the override file at path into a flat key/value mapping.
// A path that does not reference an existing file returns (nil, nil): the
// caller serves defaults.
func loadOverrides(path string, logger *zap.Logger) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		logger.Info("override settings not found, using defaults", zap.String("path", path))
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read override settings %s: %w", path, err)
	}

	overrides := map[string]any{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedOverride, path, err)
	}

	for _, key := range obsoleteKeys {
		if _, ok := overrides[key]; ok {
			logger.Warn("override setting is no longer supported", zap.String("key", key))
		}
	}

	logger.Info("override settings loaded", zap.String("path", path))
	return overrides, nil
}
