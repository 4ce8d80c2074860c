package commands

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/partialepoch/epochdb/internal/cli"
	"github.com/partialepoch/epochdb/pkg/models"
)

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand(opts *cli.GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "clipboard <id>",
		Short: "Copy an item to the clipboard",
		Long: `Copy an item to the system clipboard.

The text format copies "<id> <name>", the same line the browser copies
with y. The json format copies the full item record.

Examples:
  # Copy the id and name
  epochdb clipboard 7

  # Copy the whole record
  epochdb copy 7 --format json`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid clipboard format: %s (must be: text or json)", format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := lookupItem(cmd, opts, args[0])
			if err != nil {
				return err
			}

			content, err := clipboardContent(item, format)
			if err != nil {
				return err
			}

			if err := writeClipboard(content); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			cli.PrintSuccess(cmd.OutOrStdout(), "Copied %s to clipboard", item.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Clipboard format (text, json)")

	return cmd
}

func clipboardContent(item models.Item, format string) (string, error) {
	if format == "json" {
		data, err := json.MarshalIndent(item, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode item: %w", err)
		}
		return string(data), nil
	}
	return fmt.Sprintf("%d %s", item.ID, item.DisplayName()), nil
}
