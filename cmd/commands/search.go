package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/partialepoch/epochdb/internal/cli"
	"github.com/partialepoch/epochdb/pkg/filters"
	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/query"
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query   string               `json:"query" yaml:"query"`
	Filters models.SearchFilters `json:"filters" yaml:"filters"`
	Count   int                  `json:"count" yaml:"count"`
	Shown   int                  `json:"shown" yaml:"shown"`
	Results []SearchItemOutput   `json:"results" yaml:"results"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	ID            int    `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Class         string `json:"class" yaml:"class"`
	Subclass      string `json:"subclass" yaml:"subclass"`
	Rarity        string `json:"rarity" yaml:"rarity"`
	InventoryType string `json:"inventory_type" yaml:"inventory_type"`
	RequiredLevel int    `json:"required_level" yaml:"required_level"`
	Set           string `json:"set,omitempty" yaml:"set,omitempty"`
}

type searchOptions struct {
	class     string
	subclass  string
	rarity    string
	slot      string
	minLevel  string
	maxLevel  string
	hasSet    bool
	hasName   bool
	hasIcon   bool
	hasSpells bool
	limit     int
	output    string
}

// NewSearchCommand creates the search command
func NewSearchCommand(opts *cli.GlobalOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the item catalog",
		Long: `Search items by free text and structured filters.

Free text matches item names, spells and stats. Filters can be given
inline in the query or as flags; inline filters win when both are set.

Query Syntax:
  class:Armor          - Items of a class
  subclass:Plate       - Items of a subclass
  rarity:epic          - Items of a rarity tier (case-insensitive)
  slot:Head            - Items worn in a slot
  level:10-20          - Required level range (also >=30, <40, 25)
  has:set              - Items with a property (set, name, icon, spells)

Examples:
  # Everything with fire in the name, spells or stats
  epochdb search fire

  # Epic weapons between level 10 and 20
  epochdb search class:Weapon rarity:epic level:10-20

  # The same with flags
  epochdb search --class Weapon --rarity epic --min-level 10 --max-level 20

  # Set items as JSON
  epochdb search --has-set -o json`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(so.output); err != nil {
				return err
			}
			if so.limit < 0 {
				return fmt.Errorf("limit cannot be negative: %d", so.limit)
			}
			return cli.ValidateLevelRange(so.levelBounds())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, so, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&so.class, "class", "", "Filter by class")
	flags.StringVar(&so.subclass, "subclass", "", "Filter by subclass")
	flags.StringVar(&so.rarity, "rarity", "", "Filter by rarity")
	flags.StringVar(&so.slot, "slot", "", "Filter by inventory slot")
	flags.StringVar(&so.minLevel, "min-level", "", "Minimum required level")
	flags.StringVar(&so.maxLevel, "max-level", "", "Maximum required level")
	flags.BoolVar(&so.hasSet, "has-set", false, "Only items that belong to a set")
	flags.BoolVar(&so.hasName, "has-name", false, "Only items with a real name")
	flags.BoolVar(&so.hasIcon, "has-icon", false, "Only items with an icon")
	flags.BoolVar(&so.hasSpells, "has-spells", false, "Only items with spells")
	flags.IntVarP(&so.limit, "limit", "n", 0, "Show at most this many results (0 for all)")
	flags.StringVarP(&so.output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

// levelBounds reads the level flags the way the filter bar reads its level
// fields: the leading integer counts and anything unreadable is unset.
func (so *searchOptions) levelBounds() (lo, hi *int) {
	return filters.ParseLevel(so.minLevel), filters.ParseLevel(so.maxLevel)
}

// flagFilters builds the filter set from the flags. Boolean flags set to false
// leave their filter unapplied.
func (so *searchOptions) flagFilters() models.SearchFilters {
	f := filters.Clear()
	f = filters.SetString(f, models.FieldClass, so.class)
	f = filters.SetString(f, models.FieldSubclass, so.subclass)
	f = filters.SetString(f, models.FieldRarity, filters.NormalizeRarity(so.rarity))
	f = filters.SetString(f, models.FieldInventoryType, so.slot)
	f.RequiredLevelMin, f.RequiredLevelMax = so.levelBounds()

	for field, on := range map[string]bool{
		models.FieldHasSet:    so.hasSet,
		models.FieldHasName:   so.hasName,
		models.FieldHasIcon:   so.hasIcon,
		models.FieldHasSpells: so.hasSpells,
	} {
		if on {
			f = filters.ToggleBool(f, field)
		}
	}
	return f
}

func runSearch(cmd *cobra.Command, opts *cli.GlobalOptions, so *searchOptions, args []string) error {
	input := strings.Join(args, " ")

	expr, err := filters.NewParser().ParseInto(input, so.flagFilters())
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	cc := cli.NewCommandContext(opts)
	defer cc.Close()

	cat, err := cc.LoadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	results, err := query.Evaluate(cat.Input(expr.Text, expr.Filters))
	if err != nil {
		return err
	}

	shown := results
	if so.limit > 0 && len(shown) > so.limit {
		shown = shown[:so.limit]
	}

	output := SearchResultOutput{
		Query:   expr.Text,
		Filters: expr.Filters,
		Count:   len(results),
		Shown:   len(shown),
		Results: make([]SearchItemOutput, 0, len(shown)),
	}
	for _, item := range shown {
		output.Results = append(output.Results, toSearchItemOutput(item))
	}

	if cli.IsStructured(so.output) {
		return cli.OutputResults(cmd.OutOrStdout(), so.output, output)
	}
	return outputSearchText(cmd, output)
}

func toSearchItemOutput(item models.Item) SearchItemOutput {
	out := SearchItemOutput{
		ID:            item.ID,
		Name:          item.DisplayName(),
		Class:         item.Class.Label(),
		Subclass:      item.Subclass,
		Rarity:        string(item.Rarity),
		InventoryType: item.InventoryType,
		RequiredLevel: item.RequiredLevel,
	}
	if item.Set != nil {
		out.Set = item.Set.Name
	}
	return out
}

func outputSearchText(cmd *cobra.Command, result SearchResultOutput) error {
	w := cmd.OutOrStdout()

	if result.Count == 0 {
		cli.PrintInfo(w, "No items match your search")
		return nil
	}

	table := cli.NewTableFormatter(w)
	table.Header("ID", "NAME", "CLASS", "SUBCLASS", "RARITY", "SLOT", "LEVEL")
	for _, r := range result.Results {
		level := "-"
		if r.RequiredLevel > 0 {
			level = strconv.Itoa(r.RequiredLevel)
		}
		table.Row(
			strconv.Itoa(r.ID),
			cli.TruncateString(r.Name, 40),
			cli.OrDash(r.Class),
			cli.OrDash(r.Subclass),
			cli.OrDash(r.Rarity),
			cli.OrDash(r.InventoryType),
			level,
		)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nShowing %s of %s items\n", humanize.Comma(int64(result.Shown)), humanize.Comma(int64(result.Count)))
	if applied := filters.Format(result.Filters); applied != "" {
		fmt.Fprintf(w, "Filters: %s\n", applied)
	}
	return nil
}
