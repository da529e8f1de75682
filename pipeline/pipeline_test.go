package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/miku/cordex/table"
)

func TestProcess(t *testing.T) {
	tab := table.New([]string{"Title", "Publish Time"})
	tab.Rows = [][]string{
		{"A vaccine trial", "2020-03-15"},
		{"No date here", ""},
	}
	Process(tab)
	if tab.Index("title") != 0 || tab.Index("publish_time") != 1 {
		t.Fatalf("headers not normalized: %v", tab.Columns)
	}
	years := tab.Values("year")
	if !cmp.Equal(years, []string{"2020", ""}) {
		t.Errorf("year: got %v", years)
	}
}

func TestProcessDuplicateColumns(t *testing.T) {
	// Source-X and source_x normalize to the same name; last one wins.
	tab := table.New([]string{"Source-X", "title", "source_x"})
	tab.Rows = [][]string{{"old", "a paper", "new"}}
	Process(tab)

	var n int
	for _, c := range tab.Columns {
		if c == "source_x" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected one source_x column, got %d (%v)", n, tab.Columns)
	}
	if got := tab.Values("source_x"); got[0] != "new" {
		t.Errorf("last write should win, got %q", got[0])
	}
}

func TestLoaderCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.csv")
	if err := os.WriteFile(path, []byte("Title,Publish Time\na,2020-01-01\n"), 0644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader()
	a, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected cached table on second load")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader()
	if _, err := l.Load("/no/such/metadata.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}
