package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/partialepoch/epochdb/pkg/files"
	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/store"
)

// WriteCatalog writes content as data.json in a fresh temp directory and
// returns its path
func WriteCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), files.DefaultDataFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// LoadStore decodes content into a store
func LoadStore(t *testing.T, content string) *store.Store {
	t.Helper()
	s, err := store.Load([]byte(content))
	require.NoError(t, err)
	return s
}

// LiteSettings returns default search settings using the lite engine
func LiteSettings() models.SearchSettings {
	settings := models.DefaultSettings().Search
	settings.Engine = models.EngineLite
	return settings
}
