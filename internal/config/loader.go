package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user directory holding config, database, and logs.
const AppDirName = ".questfolio"

// Source describes where a loaded file came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
)

// Load loads the application configuration.
// Search order: customPath -> ~/.questfolio/questfolio.yaml -> ./configs/questfolio.yaml -> embedded default
func Load(customPath string) (AppConfig, error) {
	cfg := Default()

	data, src, err := Resolve(customPath, "questfolio.yaml", defaultAppYAML, func(b []byte) error {
		scratch := Default()
		return yaml.Unmarshal(b, &scratch)
	})
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if src == SourceEmbedded {
			return Default(), nil // Fallback to hardcoded if embed fails
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
	}
	if err := cfg.Validate(); err != nil {
		if src == SourceCustom {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return Default(), nil
	}
	return cfg, nil
}

// Resolve finds the bytes for filename following the standard search order.
// An explicit customPath must be readable and pass check; user and local
// candidates that fail to read or check are skipped. The embedded bytes are
// returned when nothing else applies.
func Resolve(customPath, filename string, embedded []byte, check func([]byte) error) ([]byte, Source, error) {
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return nil, SourceCustom, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if check != nil {
			if err := check(data); err != nil {
				return nil, SourceCustom, fmt.Errorf("failed to parse config %s: %w", customPath, err)
			}
		}
		return data, SourceCustom, nil
	}

	candidates := []struct {
		path string
		src  Source
	}{
		{UserPath(filename), SourceUser},
		{filepath.Join("configs", filename), SourceLocal},
	}
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		data, err := os.ReadFile(c.path)
		if err != nil {
			continue
		}
		if check != nil && check(data) != nil {
			continue
		}
		return data, c.src, nil
	}

	return embedded, SourceEmbedded, nil
}

// UserPath returns the path of filename in the user's app directory, or empty
// if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDirName, filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
