package commands

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/partialepoch/epochdb/internal/cli"
	"github.com/partialepoch/epochdb/pkg/files"
	"github.com/partialepoch/epochdb/pkg/models"
)

// NewConfigCommand creates the config command
func NewConfigCommand(opts *cli.GlobalOptions) *cobra.Command {
	var (
		output     string
		initialize bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the settings file",
		Long: `Show the effective settings: defaults, then the settings file, then
command line flags.

With --init, write the default settings to the settings file. The format
follows the file extension (.yaml, .yml or .toml).

Examples:
  # Show effective settings
  epochdb config

  # Show them as TOML
  epochdb config -o toml

  # Create .epochdb.yaml with the defaults
  epochdb config --init

  # Create a TOML settings file
  epochdb config --init --config epochdb.toml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "toml" {
				return fmt.Errorf("invalid output format: %s (must be: yaml or toml)", output)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := cli.NewCommandContext(opts)
			if initialize {
				return initSettings(cmd, cc.ConfigPath())
			}

			settings, err := cc.LoadSettings()
			if err != nil {
				return err
			}
			return writeSettings(cmd, settings, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, toml)")
	cmd.Flags().BoolVar(&initialize, "init", false, "Write the default settings to the settings file")

	return cmd
}

func initSettings(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); err == nil {
		ok, err := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("%s already exists. Overwrite?", path), false)
		if err != nil {
			return err
		}
		if !ok {
			cli.PrintInfo(cmd.OutOrStdout(), "Kept existing %s", path)
			return nil
		}
	}

	if err := files.WriteSettings(path, models.DefaultSettings()); err != nil {
		return err
	}

	cli.PrintSuccess(cmd.OutOrStdout(), "Wrote default settings to %s", path)
	return nil
}

func writeSettings(cmd *cobra.Command, settings *models.Settings, format string) error {
	var (
		content []byte
		err     error
	)
	if format == "toml" {
		content, err = toml.Marshal(settings)
	} else {
		content, err = yaml.Marshal(settings)
	}
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(content)
	return err
}
