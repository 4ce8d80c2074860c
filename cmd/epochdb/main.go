package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/partialepoch/epochdb/cmd/commands"
	"github.com/partialepoch/epochdb/internal/cli"
	"github.com/partialepoch/epochdb/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	opts      = &cli.GlobalOptions{}
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "epochdb",
	Short: "Browse and search the Partial Epoch item catalog",
	Long: `epochdb is a terminal item browser for the Partial Epoch item catalog.
It loads the exported item data, then lets you search it by free text and
narrow it down with class, rarity, slot, level and property filters.

Run without a command to open the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(opts.Quiet, opts.NoColor, opts.Yes)

		settings, err := cli.NewCommandContext(opts).LoadSettings()
		if err != nil {
			return err
		}

		// the browser owns the terminal, so it only logs to a file
		closer, err := cli.SetupLogging(settings.Log, cmd.ErrOrStderr(), cmd == cmd.Root())
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cc := cli.NewCommandContext(opts)
		settings, err := cc.LoadSettings()
		if err != nil {
			return err
		}
		location, err := cc.Location()
		if err != nil {
			return err
		}
		if _, err := cc.WarnIgnoredWatch(cmd.ErrOrStderr()); err != nil {
			return err
		}

		if err := tui.Run(cmd.Context(), settings, location); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of epochdb",
	Long:  `Display the current version of the epochdb tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "epochdb version %s\n", version)
	},
}

func init() {
	opts.Bind(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewSearchCommand(opts))
	rootCmd.AddCommand(commands.NewShowCommand(opts))
	rootCmd.AddCommand(commands.NewOptionsCommand(opts))
	rootCmd.AddCommand(commands.NewClipboardCommand(opts))
	rootCmd.AddCommand(commands.NewConfigCommand(opts))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, "%v", err)
		stop()
		os.Exit(1)
	}
}
