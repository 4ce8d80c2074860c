package search

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/partialepoch/epochdb/pkg/models"
)

// DefaultFields is the indexed field list. Entries written as *(path) are
// array projections: the resolved array is serialized to its JSON text and
// indexed as one blob instead of element by element.
var DefaultFields = []string{
	"id",
	"name",
	"inventory_type",
	"set.name",
	"*(set.spells)",
	"required_level",
	"*(stats)",
	"*(spells)",
	"*(requires)",
	"hands",
}

// FieldSpec describes one indexed field
type FieldSpec struct {
	Name   string   // declaration as written, e.g. "*(set.spells)"
	Key    string   // engine-safe identifier, e.g. "set_spells"
	Path   []string // nested lookup path
	Array  bool     // array projection
	Weight float64
}

// ParseField parses a field declaration
func ParseField(decl string) FieldSpec {
	spec := FieldSpec{Name: decl, Weight: 1}

	path := decl
	if strings.HasPrefix(decl, "*(") && strings.HasSuffix(decl, ")") {
		spec.Array = true
		path = decl[2 : len(decl)-1]
	}

	spec.Path = strings.Split(path, ".")
	spec.Key = strings.Join(spec.Path, "_")
	return spec
}

// ParseFields parses declarations and applies per-field weights
func ParseFields(decls []string, weights map[string]float64) []FieldSpec {
	specs := make([]FieldSpec, 0, len(decls))
	for _, decl := range decls {
		spec := ParseField(decl)
		if w, ok := weights[decl]; ok && w > 0 {
			spec.Weight = w
		}
		specs = append(specs, spec)
	}
	return specs
}

// Project builds the reduced searchable record for an item. The record is a
// generic tree so field paths are resolved by real nested lookup. A missing
// set is left out entirely rather than stored as nil.
func Project(item models.Item) map[string]any {
	record := map[string]any{
		"id":             item.ID,
		"name":           item.Name,
		"class":          item.Class.Label(),
		"subclass":       item.Subclass,
		"rarity":         string(item.Rarity),
		"inventory_type": item.InventoryType,
		"required_level": item.RequiredLevel,
		"stats":          item.Stats,
		"spells":         item.Spells,
		"requires":       item.Requires,
		"hands":          item.Hands,
	}

	if item.Set != nil {
		record["set"] = map[string]any{
			"name":   item.Set.Name,
			"id":     item.Set.ID,
			"spells": item.Set.Spells,
		}
	}

	return record
}

// ExtractField resolves a field against a projected record. It reports false
// when any step of the path is missing, or when the value cannot be
// represented for this kind of field.
func ExtractField(record map[string]any, spec FieldSpec) (string, bool) {
	value, ok := lookup(record, spec.Path)
	if !ok {
		return "", false
	}

	if spec.Array {
		if !isArray(value) {
			return "", false
		}
		blob, err := serializeArray(value)
		if err != nil {
			return "", false
		}
		return blob, true
	}

	return scalarString(value)
}

// Fields extracts every declared field for an item, skipping absent ones
func Fields(item models.Item, specs []FieldSpec) map[string]string {
	record := Project(item)
	fields := make(map[string]string, len(specs))
	for _, spec := range specs {
		if v, ok := ExtractField(record, spec); ok {
			fields[spec.Key] = v
		}
	}
	return fields
}

// lookup walks path through nested maps
func lookup(record map[string]any, path []string) (any, bool) {
	var current any = record
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// isArray reports whether v is a non-nil slice or array
func isArray(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return !rv.IsNil()
	case reflect.Array:
		return true
	default:
		return false
	}
}

// serializeArray renders v the way JSON.stringify would: no HTML escaping,
// no trailing newline
func serializeArray(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// scalarString stringifies scalar values; composite values are not indexed
// through scalar fields
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
