package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/partialepoch/epochdb/internal/cli"
	"github.com/partialepoch/epochdb/pkg/filters"
)

// OptionsOutput lists the values each filter accepts
type OptionsOutput struct {
	Items             int `json:"items" yaml:"items"`
	filters.OptionSet `yaml:",inline"`
}

// NewOptionsCommand creates the options command
func NewOptionsCommand(opts *cli.GlobalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the values each filter accepts",
		Long: `List the classes, subclasses, rarities and slots present in the
loaded data. These are the values the browser's filter bar cycles through.

Examples:
  epochdb options
  epochdb options -o yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := cli.NewCommandContext(opts)
			defer cc.Close()

			cat, err := cc.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			result := OptionsOutput{
				Items:     cat.Store.Len(),
				OptionSet: filters.Options(cat.Store.Items()),
			}

			if cli.IsStructured(output) {
				return cli.OutputResults(cmd.OutOrStdout(), output, result)
			}
			return outputOptionsText(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func outputOptionsText(cmd *cobra.Command, result OptionsOutput) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s items\n\n", humanize.Comma(int64(result.Items)))

	table := cli.NewTableFormatter(w)
	table.Header("FILTER", "VALUES")
	table.Row("class", joinOrDash(result.Classes))
	table.Row("subclass", joinOrDash(result.Subclasses))
	table.Row("rarity", joinOrDash(result.Rarities))
	table.Row("slot", joinOrDash(result.InventoryTypes))
	return table.Flush()
}

func joinOrDash(values []string) string {
	return cli.OrDash(strings.Join(values, ", "))
}
