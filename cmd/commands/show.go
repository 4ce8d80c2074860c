package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partialepoch/epochdb/internal/cli"
	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/tui"
)

// NewShowCommand creates the show command
func NewShowCommand(opts *cli.GlobalOptions) *cobra.Command {
	var (
		output string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a single item",
		Long: `Display an item the way its tooltip looks in the browser.

Examples:
  # Show an item
  epochdb show 7

  # Narrower tooltip
  epochdb show 7 --width 30

  # Output as JSON
  epochdb show 7 -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if width < 20 {
				return fmt.Errorf("width must be at least 20, got %d", width)
			}
			return cli.ValidateOutputFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := lookupItem(cmd, opts, args[0])
			if err != nil {
				return err
			}

			if cli.IsStructured(output) {
				return cli.OutputResults(cmd.OutOrStdout(), output, item)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTooltip(item, width))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().IntVarP(&width, "width", "w", 48, "Tooltip width for text output")

	return cmd
}

// lookupItem loads the catalog and finds the item named by an id argument
func lookupItem(cmd *cobra.Command, opts *cli.GlobalOptions, arg string) (models.Item, error) {
	id, err := cli.ParseItemID(arg)
	if err != nil {
		return models.Item{}, err
	}

	cc := cli.NewCommandContext(opts)
	defer cc.Close()

	cat, err := cc.LoadCatalog(cmd.Context())
	if err != nil {
		return models.Item{}, err
	}

	item, ok := cat.Store.Get(id)
	if !ok {
		return models.Item{}, fmt.Errorf("item %d not found", id)
	}
	return item, nil
}
