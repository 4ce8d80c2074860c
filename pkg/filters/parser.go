package filters

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/partialepoch/epochdb/pkg/models"
)

// ErrUnknownField is returned for field:value tokens naming no filter
var ErrUnknownField = errors.New("unknown filter field")

// Expression is a parsed search bar input: free text plus the filters
// written inline as field:value tokens
type Expression struct {
	Text    string
	Filters models.SearchFilters
	Raw     string
}

// Parser handles parsing of filter expressions such as
//
//	helm class:Armor rarity:epic slot:Head level:50-60 has:set
type Parser struct {
	lenient bool

	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a parser that rejects unknown fields
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// NewLenientParser creates a parser that keeps field:value tokens it cannot
// apply as free text instead of failing
func NewLenientParser() *Parser {
	p := NewParser()
	p.lenient = true
	return p
}

// Parse parses input starting from empty filters
func (p *Parser) Parse(input string) (*Expression, error) {
	return p.ParseInto(input, models.SearchFilters{})
}

// ParseInto parses input on top of base. Inline filters override the
// matching fields of base.
func (p *Parser) ParseInto(input string, base models.SearchFilters) (*Expression, error) {
	expr := &Expression{Raw: input, Filters: base}

	var text []string
	for _, token := range p.tokenize(input) {
		matches := p.fieldPattern.FindStringSubmatch(token)
		if len(matches) != 3 {
			text = append(text, p.unquote(token))
			continue
		}

		field := strings.ToLower(matches[1])
		value := p.unquote(matches[2])

		if err := p.applyCondition(&expr.Filters, field, value); err != nil {
			if p.lenient {
				text = append(text, token)
				continue
			}
			return nil, err
		}
	}

	expr.Text = strings.Join(text, " ")
	return expr, nil
}

// applyCondition sets the filter named by field
func (p *Parser) applyCondition(f *models.SearchFilters, field, value string) error {
	switch field {
	case "class":
		f.Class = models.StringPtr(value)
	case "subclass":
		f.Subclass = models.StringPtr(value)
	case "rarity":
		f.Rarity = models.StringPtr(NormalizeRarity(value))
	case "slot", "type", "inventory_type":
		f.InventoryType = models.StringPtr(value)
	case "level":
		p.parseLevelValue(f, value)
	case "has":
		return p.parseHasValue(f, value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// parseLevelValue reads level values like "10-20", ">=30", "<40" or "25".
// Each bound is read with ParseLevel; a bound that does not parse leaves
// the filter as it was.
func (p *Parser) parseLevelValue(f *models.SearchFilters, value string) {
	op, rest := splitComparison(value)

	if op == "" {
		if i := strings.Index(rest[min(1, len(rest)):], "-"); i >= 0 {
			i++
			if lo := ParseLevel(rest[:i]); lo != nil {
				f.RequiredLevelMin = lo
			}
			if hi := ParseLevel(rest[i+1:]); hi != nil {
				f.RequiredLevelMax = hi
			}
			return
		}
	}

	n := ParseLevel(rest)
	if n == nil {
		return
	}

	switch op {
	case ">=":
		f.RequiredLevelMin = n
	case ">":
		f.RequiredLevelMin = models.IntPtr(above(*n))
	case "<=":
		f.RequiredLevelMax = n
	case "<":
		f.RequiredLevelMax = models.IntPtr(below(*n))
	default:
		f.RequiredLevelMin = n
		f.RequiredLevelMax = models.IntPtr(*n)
	}
}

// splitComparison separates a leading comparison operator from value
func splitComparison(value string) (op, rest string) {
	for _, prefix := range []string{">=", "<=", ">", "<", "="} {
		if strings.HasPrefix(value, prefix) {
			return prefix, value[len(prefix):]
		}
	}
	return "", value
}

// above and below saturate at the int range instead of wrapping
func above(n int) int {
	if n == math.MaxInt {
		return n
	}
	return n + 1
}

func below(n int) int {
	if n == math.MinInt {
		return n
	}
	return n - 1
}

// parseHasValue parses has:set, has:name, has:icon and has:spells
func (p *Parser) parseHasValue(f *models.SearchFilters, value string) error {
	switch strings.ToLower(value) {
	case "set":
		f.HasSet = models.BoolPtr(true)
	case "name":
		f.HasName = models.BoolPtr(true)
	case "icon":
		f.HasIcon = models.BoolPtr(true)
	case "spells", "spell":
		f.HasSpells = models.BoolPtr(true)
	default:
		return fmt.Errorf("invalid has value: %s (must be: set, name, icon or spells)", value)
	}
	return nil
}

// tokenize splits the input on spaces outside double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}

// NormalizeRarity maps a case-insensitive tier name onto the vocabulary
func NormalizeRarity(value string) string {
	for _, r := range models.RarityOrder {
		if strings.EqualFold(string(r), value) {
			return string(r)
		}
	}
	return value
}

// Format renders f back into filter expression tokens
func Format(f models.SearchFilters) string {
	var parts []string
	add := func(field string, v *string) {
		if v == nil || *v == "" {
			return
		}
		if strings.ContainsAny(*v, " \t") {
			parts = append(parts, fmt.Sprintf("%s:%q", field, *v))
			return
		}
		parts = append(parts, field+":"+*v)
	}

	add("class", f.Class)
	add("subclass", f.Subclass)
	add("rarity", f.Rarity)
	add("slot", f.InventoryType)

	switch {
	case f.RequiredLevelMin != nil && f.RequiredLevelMax != nil && *f.RequiredLevelMin <= *f.RequiredLevelMax:
		parts = append(parts, fmt.Sprintf("level:%d-%d", *f.RequiredLevelMin, *f.RequiredLevelMax))
	case f.RequiredLevelMin != nil && f.RequiredLevelMax != nil:
		parts = append(parts, fmt.Sprintf("level:>=%d", *f.RequiredLevelMin), fmt.Sprintf("level:<=%d", *f.RequiredLevelMax))
	case f.RequiredLevelMin != nil:
		parts = append(parts, fmt.Sprintf("level:>=%d", *f.RequiredLevelMin))
	case f.RequiredLevelMax != nil:
		parts = append(parts, fmt.Sprintf("level:<=%d", *f.RequiredLevelMax))
	}

	for _, h := range []struct {
		name string
		v    *bool
	}{{"set", f.HasSet}, {"name", f.HasName}, {"icon", f.HasIcon}, {"spells", f.HasSpells}} {
		if isTrue(h.v) {
			parts = append(parts, "has:"+h.name)
		}
	}

	return strings.Join(parts, " ")
}
