package files

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/partialepoch/epochdb/pkg/models"
)

const (
	DefaultDataFile     = "data.json"
	DefaultSettingsFile = ".epochdb.yaml"
	DefaultLogFile      = "epochdb.log"

	// DeployBasePath is the prefix the published site is served under
	DeployBasePath = "/partial_epoch_db"
)

// IsRemote reports whether location is an http(s) URL
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// AssetPath prefixes p with the deployment base path. It is a no-op for an
// empty base and for absolute URLs.
func AssetPath(base, p string) string {
	if base == "" || IsRemote(p) {
		return p
	}
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// DataLocation resolves the configured data source against the base path.
// For URLs the base path is applied to the URL path; local paths are joined
// onto it.
func DataLocation(d models.DataSettings) (string, error) {
	if d.BasePath == "" {
		return d.Source, nil
	}

	if IsRemote(d.Source) {
		u, err := url.Parse(d.Source)
		if err != nil {
			return "", fmt.Errorf("failed to parse data source %s: %w", d.Source, err)
		}
		u.Path = AssetPath(d.BasePath, u.Path)
		return u.String(), nil
	}

	return filepath.Join(d.BasePath, d.Source), nil
}

// WriteFile writes content to path, creating parent directories
func WriteFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
