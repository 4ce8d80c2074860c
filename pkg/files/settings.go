package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/partialepoch/epochdb/pkg/models"
)

// ReadSettings reads settings from a .yaml, .yml or .toml file. Keys
// missing from the file keep their defaults, and a missing file yields
// the defaults.
func ReadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	switch settingsFormat(path) {
	case "toml":
		if err := toml.Unmarshal(content, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings TOML %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(content, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
		}
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return settings, nil
}

// WriteSettings writes settings in the format implied by the file extension
func WriteSettings(path string, settings *models.Settings) error {
	var (
		content []byte
		err     error
	)

	switch settingsFormat(path) {
	case "toml":
		content, err = toml.Marshal(settings)
	default:
		content, err = yaml.Marshal(settings)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return WriteFile(path, content)
}

func settingsFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}
