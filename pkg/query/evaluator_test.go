package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/search"
	searchmock "github.com/partialepoch/epochdb/pkg/search/mock"
	"github.com/partialepoch/epochdb/pkg/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const catalog = `[
	{"id": 10, "name": "Flamestrike Staff", "class": "Weapon", "subclass": "Staves", "inventory_icon": "inv_staff_01",
	 "inventory_type": "TwoHand", "set": null, "required_level": 15, "stats": ["+10 Intellect"],
	 "spells": ["Fire", "Ice"], "requires": [], "rarity": "Epic"},
	{"id": 4, "name": "<unknown>", "class": {"custom": 1}, "subclass": "", "inventory_icon": "",
	 "inventory_type": "None", "set": null, "required_level": 25, "stats": null, "spells": null,
	 "requires": null, "rarity": "Poor"},
	{"id": 7, "name": "Valor Helm", "class": "Armor", "subclass": "Plate", "inventory_icon": "inv_helmet_01",
	 "inventory_type": "Head", "set": {"name": "Battlegear of Valor", "id": 210, "spells": [[2, "+200 Armor"]]},
	 "required_level": 10, "stats": ["+20 Stamina"], "spells": [], "requires": ["Warrior"], "rarity": "Rare"},
	{"id": 1, "name": "<unknown>", "class": "Armor", "subclass": "Cloth", "inventory_icon": "inv_fire_robe",
	 "inventory_type": "Chest", "set": null, "required_level": 20, "stats": [],
	 "spells": ["Fire resistance"], "requires": [], "rarity": "Rare"}
]`

func loadCatalog(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Load([]byte(catalog))
	require.NoError(t, err)
	return s
}

func liteIndex(t *testing.T, s *store.Store) *search.Index {
	t.Helper()
	settings := models.DefaultSettings().Search
	settings.Engine = models.EngineLite
	idx, err := search.Open(s, settings)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

// mockIndex builds a real index over a mock engine; the engine accepts any
// document and only answers the searches the test sets up
func mockIndex(t *testing.T, s *store.Store, setup func(e *searchmock.MockEngine)) *search.Index {
	t.Helper()
	ctrl := gomock.NewController(t)
	engine := searchmock.NewMockEngine(ctrl)
	engine.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	setup(engine)

	idx, err := search.Build(s, engine, search.ParseFields(search.DefaultFields, nil), search.OptionsFromSettings(models.DefaultSettings().Search))
	require.NoError(t, err)
	return idx
}

func ids(items []models.Item) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestEvaluate_EmptyStore(t *testing.T) {
	for _, s := range []*store.Store{nil, store.Empty()} {
		idx := mockIndex(t, store.Empty(), func(e *searchmock.MockEngine) {})
		got, err := Evaluate(Input{
			Store:   s,
			Query:   "fire",
			Filters: models.SearchFilters{HasSet: models.BoolPtr(true)},
			Index:   idx,
		})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}
}

func TestEvaluate_NoQueryNoFiltersSkipsIndex(t *testing.T) {
	s := loadCatalog(t)
	// no Search expectation: any engine call fails the test
	idx := mockIndex(t, s, func(e *searchmock.MockEngine) {})

	for _, q := range []string{"", "   ", "\t\n"} {
		got, err := Evaluate(Input{Store: s, Query: q, Index: idx})
		require.NoError(t, err)
		assert.Equal(t, []int{10, 4, 7, 1}, ids(got))
	}
}

func TestEvaluate_KeepsLoadOrderNotRelevance(t *testing.T) {
	s := loadCatalog(t)
	idx := mockIndex(t, s, func(e *searchmock.MockEngine) {
		e.EXPECT().Search("fire", gomock.Any()).Return([]search.Hit{
			{ID: 1, Score: 9},
			{ID: 10, Score: 1},
		}, nil)
	})

	got, err := Evaluate(Input{Store: s, Query: "  fire ", Index: idx})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 1}, ids(got))
}

func TestEvaluate_SearchThenFilters(t *testing.T) {
	s := loadCatalog(t)
	idx := mockIndex(t, s, func(e *searchmock.MockEngine) {
		e.EXPECT().Search("fire", gomock.Any()).Return([]search.Hit{{ID: 1}, {ID: 10}}, nil)
	})

	got, err := Evaluate(Input{
		Store:   s,
		Query:   "fire",
		Filters: models.SearchFilters{HasName: models.BoolPtr(true)},
		Index:   idx,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{10}, ids(got))
}

func TestEvaluate_FiltersOnly(t *testing.T) {
	s := loadCatalog(t)
	idx := mockIndex(t, s, func(e *searchmock.MockEngine) {})

	got, err := Evaluate(Input{
		Store:   s,
		Filters: models.SearchFilters{Class: models.StringPtr("Armor")},
		Index:   idx,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 1}, ids(got))
}

func TestEvaluate_IndexError(t *testing.T) {
	s := loadCatalog(t)
	idx := mockIndex(t, s, func(e *searchmock.MockEngine) {
		e.EXPECT().Search("boom", gomock.Any()).Return(nil, errors.New("engine down"))
	})

	got, err := Evaluate(Input{Store: s, Query: "boom", Index: idx})
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestEvaluate_IndexNotReady(t *testing.T) {
	s := loadCatalog(t)

	got, err := Evaluate(Input{Store: s, Query: "fire"})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 4, 7, 1}, ids(got))

	var pending *search.Index
	got, err = Evaluate(Input{Store: s, Query: "fire", Index: pending})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 4, 7, 1}, ids(got))
}

func TestEvaluate_CustomClassLabel(t *testing.T) {
	s, err := store.Load([]byte(`[
		{"id": 1, "class": "Weapon", "rarity": "Epic"},
		{"id": 2, "class": {"custom": 1}, "rarity": "Poor"}
	]`))
	require.NoError(t, err)

	got, err := Evaluate(Input{Store: s, Filters: models.SearchFilters{Class: models.StringPtr("Custom")}})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(got))
}

func TestEvaluate_ArrayBlobIsSearchable(t *testing.T) {
	s := loadCatalog(t)
	idx := liteIndex(t, s)

	got, err := Evaluate(Input{Store: s, Query: "Ice", Index: idx})
	require.NoError(t, err)
	assert.Equal(t, []int{10}, ids(got))

	got, err = Evaluate(Input{Store: s, Query: "Warrior", Index: idx})
	require.NoError(t, err)
	assert.Equal(t, []int{7}, ids(got))
}

func TestEvaluate_Properties(t *testing.T) {
	s := loadCatalog(t)
	idx := liteIndex(t, s)

	queries := []string{"", "   ", "fire", "valor", "armor", "zzzz", "staff helm"}
	filterSets := []models.SearchFilters{
		{},
		{HasName: models.BoolPtr(true)},
		{HasName: models.BoolPtr(false)},
		{Class: models.StringPtr("")},
		{Rarity: models.StringPtr("Rare")},
		{RequiredLevelMin: models.IntPtr(10), RequiredLevelMax: models.IntPtr(20)},
		{HasSet: models.BoolPtr(true), HasIcon: models.BoolPtr(true)},
		{HasSpells: models.BoolPtr(true), Class: models.StringPtr("Armor")},
		{InventoryType: models.StringPtr("None")},
	}

	all := ids(s.Items())
	for _, q := range queries {
		unfiltered, err := Evaluate(Input{Store: s, Query: q, Index: idx})
		require.NoError(t, err)
		assert.Subset(t, all, ids(unfiltered), "search narrows the store for %q", q)

		for _, f := range filterSets {
			got, err := Evaluate(Input{Store: s, Query: q, Filters: f, Index: idx})
			require.NoError(t, err)
			assert.Subset(t, ids(unfiltered), ids(got), "filters narrow the search for %q", q)

			again, err := Evaluate(Input{Store: s, Query: q, Filters: f, Index: idx})
			require.NoError(t, err)
			assert.Equal(t, ids(got), ids(again))

			withName := f
			withName.HasName = models.BoolPtr(true)
			named, err := Evaluate(Input{Store: s, Query: q, Filters: withName, Index: idx})
			require.NoError(t, err)
			for _, item := range named {
				assert.True(t, item.HasName(), "unnamed item %d survived has_name", item.ID)
			}

			assert.True(t, isOrdered(all, ids(got)), "result keeps load order")
		}
	}
}

// isOrdered reports whether sub appears in the same relative order as in all
func isOrdered(all, sub []int) bool {
	pos := 0
	for _, id := range sub {
		for pos < len(all) && all[pos] != id {
			pos++
		}
		if pos == len(all) {
			return false
		}
		pos++
	}
	return true
}

func TestEvaluator_Memoizes(t *testing.T) {
	s := loadCatalog(t)
	idx := liteIndex(t, s)
	ev := NewEvaluator()

	in := Input{Store: s, Query: "fire", Index: idx}
	first, err := ev.Evaluate(in)
	require.NoError(t, err)
	_, err = ev.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 1, ev.Evaluations())

	// equal filter values built separately still hit the cache
	in.Filters = models.SearchFilters{Rarity: models.StringPtr("Rare")}
	_, err = ev.Evaluate(in)
	require.NoError(t, err)
	in.Filters = models.SearchFilters{Rarity: models.StringPtr("Rare")}
	_, err = ev.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 2, ev.Evaluations())

	in.Query = "valor"
	_, err = ev.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 3, ev.Evaluations())

	reloaded := loadCatalog(t)
	in.Store = reloaded
	_, err = ev.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 4, ev.Evaluations())

	in.Index = liteIndex(t, reloaded)
	_, err = ev.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 5, ev.Evaluations())

	ev.Reset()
	_, err = ev.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, 6, ev.Evaluations())
	assert.Equal(t, []int{10, 1}, ids(first))
}

func TestEvaluator_DoesNotCacheErrors(t *testing.T) {
	s := loadCatalog(t)
	idx := mockIndex(t, s, func(e *searchmock.MockEngine) {
		e.EXPECT().Search("boom", gomock.Any()).Return(nil, errors.New("engine down")).Times(2)
	})
	ev := NewEvaluator()

	in := Input{Store: s, Query: "boom", Index: idx}
	_, err := ev.Evaluate(in)
	assert.Error(t, err)
	_, err = ev.Evaluate(in)
	assert.Error(t, err)
	assert.Equal(t, 2, ev.Evaluations())
}
