// Package pipeline wires header normalization and field derivation into
// the one transform both entry points share, plus a load cache for the
// interactive viewer.
package pipeline

import (
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/miku/cordex/derive"
	"github.com/miku/cordex/normal"
	"github.com/miku/cordex/table"
)

// Process normalizes column names and derives fields in place. When two
// raw headers collapse to the same normalized name, the last occurrence
// wins; earlier ones are dropped with a warning.
func Process(t *table.Table) *table.Table {
	t.Columns = normal.Columns(t.Columns)
	dropCollisions(t)
	derive.Apply(t)
	return t
}

func dropCollisions(t *table.Table) {
	last := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		last[c] = i
	}
	if len(last) == len(t.Columns) {
		return
	}
	// drop from the right so remaining indices stay valid
	for i := len(t.Columns) - 1; i >= 0; i-- {
		if last[t.Columns[i]] != i {
			log.Warnf("duplicate column %q after normalization, keeping the last occurrence", t.Columns[i])
			t.DropColumn(i)
		}
	}
}

// LoadFile reads and processes a CSV file in one step.
func LoadFile(path string) (*table.Table, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Process(t), nil
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	table   *table.Table
}

// Loader caches processed tables keyed on path, invalidated when the file
// mtime or size changes. Filter round trips in the viewer re-use the
// parsed table instead of re-reading the file.
type Loader struct {
	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewLoader returns an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]cacheEntry)}
}

// Load returns the processed table for path, from cache when fresh.
func (l *Loader) Load(path string) (*table.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.cache[path]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.table, nil
	}
	t, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), table: t}
	return t, nil
}
