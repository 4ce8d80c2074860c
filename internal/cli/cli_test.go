package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partialepoch/epochdb/internal/testhelpers"
	"github.com/partialepoch/epochdb/pkg/files"
	"github.com/partialepoch/epochdb/pkg/models"
)

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	tf := NewTableFormatter(&buf)
	tf.Header("ID", "NAME")
	tf.Row("7", "Valor Helm")
	tf.Row("10", "Flamestrike Staff")
	require.NoError(t, tf.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  NAME", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "--  ----", strings.TrimRight(lines[1], " "))
	assert.Equal(t, "10  Flamestrike Staff", lines[3])
}

func TestOutputResults(t *testing.T) {
	data := struct {
		Name  string `json:"name" yaml:"name"`
		Count int    `json:"count" yaml:"count"`
	}{"Valor Helm", 2}

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "json", want: "{\n  \"name\": \"Valor Helm\",\n  \"count\": 2\n}\n"},
		{format: "yaml", want: "name: Valor Helm\ncount: 2\n"},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := OutputResults(&buf, tt.format, data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Valor Helm", 20, "Valor Helm"},
		{"Flamestrike Staff", 10, "Flamest..."},
		{"Flamestrike Staff", 3, "Fla"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateString(tt.in, tt.maxLen), tt.in)
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("yaml"))
	assert.ErrorContains(t, ValidateOutputFormat("csv"), "invalid output format")

	assert.NoError(t, ValidateEngine(models.EngineLite))
	assert.ErrorContains(t, ValidateEngine("lucene"), "invalid search engine")

	assert.NoError(t, ValidateLogLevel("debug"))
	assert.Error(t, ValidateLogLevel("loud"))

	assert.NoError(t, ValidateLevelRange(models.IntPtr(20), models.IntPtr(10)))
	assert.ErrorContains(t, ValidateLevelRange(models.IntPtr(-1), nil), "minimum level")
	assert.ErrorContains(t, ValidateLevelRange(nil, models.IntPtr(-3)), "maximum level")

	id, err := ParseItemID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, id)
	_, err = ParseItemID("helm")
	assert.ErrorContains(t, err, "invalid item id")
}

func TestPrintHelpers(t *testing.T) {
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })

	var buf bytes.Buffer
	PrintSuccess(&buf, "copied %d", 1)
	PrintWarning(&buf, "careful")
	assert.Equal(t, "✓ copied 1\n⚠ careful\n", buf.String())

	buf.Reset()
	SetGlobalFlags(true, true, false)
	PrintSuccess(&buf, "hidden")
	PrintInfo(&buf, "hidden")
	PrintError(&buf, "shown")
	assert.Equal(t, "ERROR: shown\n", buf.String())
}

func TestConfirm(t *testing.T) {
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"full yes", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default", "\n", true, true},
		{"empty declines by default", "\n", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(tt.input), &out, "Overwrite?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Overwrite?")
		})
	}

	SetGlobalFlags(false, false, true)
	got, err := Confirm(strings.NewReader(""), &bytes.Buffer{}, "Overwrite?", false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("stderr for commands", func(t *testing.T) {
		var buf bytes.Buffer
		closer, err := SetupLogging(models.LogSettings{Level: "warn"}, &buf, false)
		require.NoError(t, err)
		defer closer.Close()

		slog.Info("quiet")
		slog.Warn("loud")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "msg=loud")
	})

	t.Run("discarded in the TUI", func(t *testing.T) {
		var buf bytes.Buffer
		closer, err := SetupLogging(models.LogSettings{Level: "debug"}, &buf, true)
		require.NoError(t, err)
		defer closer.Close()

		slog.Error("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("file when configured", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "epochdb.log")
		closer, err := SetupLogging(models.LogSettings{Level: "info", File: path}, &bytes.Buffer{}, true)
		require.NoError(t, err)

		slog.Info("catalog loaded", "items", 5)
		require.NoError(t, closer.Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "items=5")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := SetupLogging(models.LogSettings{Level: "chatty"}, &bytes.Buffer{}, false)
		assert.ErrorContains(t, err, "invalid log level")
	})
}

func TestCommandContext_LoadSettings(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "epochdb.toml")
	require.NoError(t, os.WriteFile(config, []byte("[search]\nengine = \"lite\"\n\n[data]\nsource = \"items.json\"\n"), 0644))

	t.Run("file values", func(t *testing.T) {
		c := NewCommandContext(&GlobalOptions{ConfigPath: config})
		s, err := c.LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, models.EngineLite, s.Search.Engine)
		assert.Equal(t, "items.json", s.Data.Source)
		assert.False(t, s.Data.Watch)
	})

	t.Run("flags override the file", func(t *testing.T) {
		c := NewCommandContext(&GlobalOptions{
			ConfigPath: config,
			DataSource: "https://example.com/data.json",
			Engine:     models.EngineBleve,
			LogLevel:   "debug",
			Watch:      true,
		})
		s, err := c.LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, models.EngineBleve, s.Search.Engine)
		assert.Equal(t, "https://example.com/data.json", s.Data.Source)
		assert.Equal(t, "debug", s.Log.Level)
		assert.True(t, s.Data.Watch)
	})

	t.Run("log file flag", func(t *testing.T) {
		c := NewCommandContext(&GlobalOptions{ConfigPath: config, LogFile: "debug.log"})
		s, err := c.LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, "debug.log", s.Log.File)
	})

	t.Run("bad engine flag", func(t *testing.T) {
		c := NewCommandContext(&GlobalOptions{ConfigPath: config, Engine: "grep"})
		_, err := c.LoadSettings()
		assert.ErrorContains(t, err, "invalid search engine")
	})

	t.Run("default config path", func(t *testing.T) {
		assert.Equal(t, ".epochdb.yaml", NewCommandContext(nil).ConfigPath())
	})
}

func TestCommandContext_LoadCatalog(t *testing.T) {
	path := testhelpers.WriteCatalog(t, testhelpers.SampleCatalog)
	c := NewCommandContext(&GlobalOptions{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		DataSource: path,
		Engine:     models.EngineLite,
	})
	t.Cleanup(func() { c.Close() })

	cat, err := c.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(testhelpers.SampleIDs), cat.Store.Len())

	again, err := c.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Same(t, cat, again)
}

func TestGlobalOptions_Bind(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		logFile string
		watch   bool
	}{
		{name: "defaults", args: []string{}},
		{name: "bare log file flag", args: []string{"--log-file"}, logFile: files.DefaultLogFile},
		{name: "log file path", args: []string{"--log-file=trace.log"}, logFile: "trace.log"},
		{name: "watch", args: []string{"-w", "--log-file"}, logFile: files.DefaultLogFile, watch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &GlobalOptions{}
			root := &cobra.Command{Use: "epochdb", RunE: func(*cobra.Command, []string) error { return nil }}
			opts.Bind(root)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())

			assert.Equal(t, tt.logFile, opts.LogFile)
			assert.Equal(t, tt.watch, opts.Watch)
			assert.Equal(t, files.DefaultSettingsFile, opts.ConfigPath)
		})
	}
}

func TestCommandContext_WarnIgnoredWatch(t *testing.T) {
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	tests := []struct {
		name   string
		opts   GlobalOptions
		warned bool
	}{
		{name: "remote data", opts: GlobalOptions{DataSource: "https://example.com/data.json", Watch: true}, warned: true},
		{name: "local data", opts: GlobalOptions{DataSource: "data.json", Watch: true}},
		{name: "not watching", opts: GlobalOptions{DataSource: "https://example.com/data.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.ConfigPath = missing

			var buf bytes.Buffer
			warned, err := NewCommandContext(&opts).WarnIgnoredWatch(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.warned, warned)
			if tt.warned {
				assert.Equal(t, "⚠ Not watching https://example.com/data.json: only local data files can be watched\n", buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
