package filters

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partialepoch/epochdb/pkg/models"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		want     models.SearchFilters
	}{
		{
			name:     "plain text",
			input:    "valor helm",
			wantText: "valor helm",
		},
		{
			name:     "empty input",
			input:    "",
			wantText: "",
		},
		{
			name:     "class and rarity",
			input:    "helm class:Armor rarity:epic",
			wantText: "helm",
			want:     models.SearchFilters{Class: models.StringPtr("Armor"), Rarity: models.StringPtr("Epic")},
		},
		{
			name:     "quoted subclass",
			input:    `subclass:"One-Handed Swords" blade`,
			wantText: "blade",
			want:     models.SearchFilters{Subclass: models.StringPtr("One-Handed Swords")},
		},
		{
			name:     "quoted free text",
			input:    `"fire damage" slot:OneHand`,
			wantText: "fire damage",
			want:     models.SearchFilters{InventoryType: models.StringPtr("OneHand")},
		},
		{
			name:  "level range",
			input: "level:10-20",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(10), RequiredLevelMax: models.IntPtr(20)},
		},
		{
			name:  "level bounds",
			input: "level:>=30 level:<=40",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(30), RequiredLevelMax: models.IntPtr(40)},
		},
		{
			name:  "strict comparisons",
			input: "level:>30 level:<40",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(31), RequiredLevelMax: models.IntPtr(39)},
		},
		{
			name:  "exact level",
			input: "level:60",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(60), RequiredLevelMax: models.IntPtr(60)},
		},
		{
			name:  "level with trailing junk reads the leading number",
			input: "level:12abc",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(12), RequiredLevelMax: models.IntPtr(12)},
		},
		{
			name:  "unreadable level leaves other filters",
			input: "class:Armor level:abc",
			want:  models.SearchFilters{Class: models.StringPtr("Armor")},
		},
		{
			name:  "inverted range is kept",
			input: "level:20-10",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(20), RequiredLevelMax: models.IntPtr(10)},
		},
		{
			name:  "open ended range",
			input: "level:10-",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(10)},
		},
		{
			name:  "greater than the largest level does not wrap",
			input: "level:>9223372036854775807",
			want:  models.SearchFilters{RequiredLevelMin: models.IntPtr(math.MaxInt)},
		},
		{
			name:  "less than the smallest level does not wrap",
			input: "level:<-9223372036854775808",
			want:  models.SearchFilters{RequiredLevelMax: models.IntPtr(math.MinInt)},
		},
		{
			name:  "has flags",
			input: "has:set HAS:Name has:icon has:spells",
			want: models.SearchFilters{
				HasSet: models.BoolPtr(true), HasName: models.BoolPtr(true),
				HasIcon: models.BoolPtr(true), HasSpells: models.BoolPtr(true),
			},
		},
		{
			name:     "colon without value is text",
			input:    "hit: fire",
			wantText: "hit: fire",
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, expr.Text)
			assert.True(t, Equal(tt.want, expr.Filters), "got %s", Format(expr.Filters))
			assert.Equal(t, tt.input, expr.Raw)
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantUnknown bool
	}{
		{name: "unknown field", input: "color:red", wantUnknown: true},
		{name: "bad has value", input: "has:wings"},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantUnknown, errors.Is(err, ErrUnknownField))
		})
	}
}

func TestLenientParser_KeepsUnknownFieldsAsText(t *testing.T) {
	expr, err := NewLenientParser().Parse("Chance on hit:Fire class:Weapon")
	require.NoError(t, err)
	assert.Equal(t, "Chance on hit:Fire", expr.Text)
	require.NotNil(t, expr.Filters.Class)
	assert.Equal(t, "Weapon", *expr.Filters.Class)

	expr, err = NewLenientParser().Parse("class:Armor has:wings helm")
	require.NoError(t, err)
	assert.Equal(t, "has:wings helm", expr.Text)
	assert.Equal(t, "Armor", *expr.Filters.Class)
}

func TestParser_BadLevelKeepsBase(t *testing.T) {
	base := models.SearchFilters{RequiredLevelMin: models.IntPtr(10)}

	expr, err := NewParser().ParseInto("level:abc", base)
	require.NoError(t, err)
	require.NotNil(t, expr.Filters.RequiredLevelMin)
	assert.Equal(t, 10, *expr.Filters.RequiredLevelMin)
	assert.Nil(t, expr.Filters.RequiredLevelMax)
}

func TestParser_ParseInto(t *testing.T) {
	base := models.SearchFilters{Class: models.StringPtr("Armor"), HasSet: models.BoolPtr(true)}

	expr, err := NewParser().ParseInto("class:Weapon", base)
	require.NoError(t, err)
	assert.Equal(t, "Weapon", *expr.Filters.Class)
	assert.True(t, *expr.Filters.HasSet)
	assert.Equal(t, "Armor", *base.Class, "base is not modified")
}

func TestFormat(t *testing.T) {
	f := models.SearchFilters{
		Class:            models.StringPtr("Weapon"),
		Subclass:         models.StringPtr("One-Handed Swords"),
		Rarity:           models.StringPtr(""),
		RequiredLevelMin: models.IntPtr(10),
		RequiredLevelMax: models.IntPtr(20),
		HasSet:           models.BoolPtr(true),
		HasName:          models.BoolPtr(false),
	}

	out := Format(f)
	assert.Equal(t, `class:Weapon subclass:"One-Handed Swords" level:10-20 has:set`, out)

	expr, err := NewParser().Parse(out)
	require.NoError(t, err)
	assert.True(t, Equal(models.SearchFilters{
		Class:            models.StringPtr("Weapon"),
		Subclass:         models.StringPtr("One-Handed Swords"),
		RequiredLevelMin: models.IntPtr(10),
		RequiredLevelMax: models.IntPtr(20),
		HasSet:           models.BoolPtr(true),
	}, expr.Filters), "inactive fields do not survive formatting")

	assert.Equal(t, "", Format(models.SearchFilters{}))
	assert.Equal(t, "level:<=5", Format(models.SearchFilters{RequiredLevelMax: models.IntPtr(5)}))
}
