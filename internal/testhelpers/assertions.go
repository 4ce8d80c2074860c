package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/partialepoch/epochdb/pkg/models"
)

// IDs returns the ids of items in order
func IDs(items []models.Item) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

// AssertIDs checks that items hold exactly the expected ids, in order
func AssertIDs(t *testing.T, expected []int, items []models.Item) bool {
	t.Helper()
	return assert.Equal(t, expected, IDs(items), "item ids in result order")
}
