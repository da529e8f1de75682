// Package sample draws reproducible row samples from a table.
package sample

import (
	"math/rand"
	"sort"

	"github.com/miku/cordex/table"
)

// DefaultSeed keeps re-runs reproducible.
const DefaultSeed = 42

// Rows returns a new table with min(n, len) rows drawn without replacement
// using a seeded source. Sampled rows keep their original relative order.
// n <= 0 or n >= len returns all rows.
func Rows(t *table.Table, n int, seed int64) *table.Table {
	result := table.New(t.Columns)
	if n <= 0 || n >= t.Len() {
		result.Rows = append(result.Rows, t.Rows...)
		return result
	}
	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(t.Len())[:n]
	sort.Ints(indices)
	for _, i := range indices {
		result.Rows = append(result.Rows, t.Rows[i])
	}
	return result
}
