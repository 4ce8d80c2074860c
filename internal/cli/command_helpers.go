package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/partialepoch/epochdb/pkg/catalog"
	"github.com/partialepoch/epochdb/pkg/files"
	"github.com/partialepoch/epochdb/pkg/models"
)

// GlobalOptions holds the persistent flags every command shares. Empty
// values leave the settings file alone.
type GlobalOptions struct {
	ConfigPath string
	DataSource string
	Engine     string
	LogLevel   string
	LogFile    string
	Watch      bool

	Quiet   bool
	NoColor bool
	Yes     bool
}

// Bind registers the persistent flags on root and the root-only --watch
func (o *GlobalOptions) Bind(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVarP(&o.ConfigPath, "config", "c", files.DefaultSettingsFile, "Settings file (.yaml, .yml or .toml)")
	flags.StringVarP(&o.DataSource, "data", "d", "", "Item data file or URL (overrides data.source)")
	flags.StringVar(&o.Engine, "engine", "", "Search engine: bleve or lite (overrides search.engine)")
	flags.StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log.level)")
	flags.StringVar(&o.LogFile, "log-file", "", "Write logs to this file (overrides log.file)")
	flags.Lookup("log-file").NoOptDefVal = files.DefaultLogFile
	flags.BoolVarP(&o.Quiet, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&o.NoColor, "no-color", false, "Disable symbols in command output")
	flags.BoolVarP(&o.Yes, "yes", "y", false, "Answer yes to confirmation prompts")

	root.Flags().BoolVarP(&o.Watch, "watch", "w", false, "Reload local data when the file changes")
}

// CommandContext resolves settings and loads the catalog for a command
type CommandContext struct {
	Options  *GlobalOptions
	Settings *models.Settings
	catalog  *catalog.Catalog
}

// NewCommandContext creates a new command context
func NewCommandContext(opts *GlobalOptions) *CommandContext {
	if opts == nil {
		opts = &GlobalOptions{}
	}
	return &CommandContext{Options: opts}
}

// ConfigPath returns the settings file in use
func (c *CommandContext) ConfigPath() string {
	if c.Options.ConfigPath != "" {
		return c.Options.ConfigPath
	}
	return files.DefaultSettingsFile
}

// LoadSettings reads the settings file and applies flag overrides on top
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := files.ReadSettings(c.ConfigPath())
	if err != nil {
		return nil, err
	}

	o := c.Options
	if o.DataSource != "" {
		settings.Data.Source = o.DataSource
	}
	if o.Engine != "" {
		if err := ValidateEngine(o.Engine); err != nil {
			return nil, err
		}
		settings.Search.Engine = o.Engine
	}
	if o.LogLevel != "" {
		if err := ValidateLogLevel(o.LogLevel); err != nil {
			return nil, err
		}
		settings.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		settings.Log.File = o.LogFile
	}
	if o.Watch {
		settings.Data.Watch = true
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	c.Settings = settings
	return settings, nil
}

// Location returns the resolved data location
func (c *CommandContext) Location() (string, error) {
	settings, err := c.LoadSettings()
	if err != nil {
		return "", err
	}
	return files.DataLocation(settings.Data)
}

// WarnIgnoredWatch tells the user that watching was asked for but the data
// is remote, which cannot be watched. It reports whether it warned.
func (c *CommandContext) WarnIgnoredWatch(w io.Writer) (bool, error) {
	settings, err := c.LoadSettings()
	if err != nil {
		return false, err
	}
	location, err := c.Location()
	if err != nil {
		return false, err
	}
	if !settings.Data.Watch || !files.IsRemote(location) {
		return false, nil
	}
	PrintWarning(w, "Not watching %s: only local data files can be watched", location)
	return true, nil
}

// LoadCatalog loads the item collection once per command
func (c *CommandContext) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if c.catalog != nil {
		return c.catalog, nil
	}

	settings, err := c.LoadSettings()
	if err != nil {
		return nil, err
	}
	location, err := c.Location()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(ctx, location, settings.Search)
	if err != nil {
		return nil, err
	}

	c.catalog = cat
	return cat, nil
}

// Close releases the loaded catalog
func (c *CommandContext) Close() error {
	err := c.catalog.Close()
	c.catalog = nil
	return err
}
