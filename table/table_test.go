package table

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	input := "\xEF\xBB\xBFTitle,Journal,Publish Time\n" +
		"A paper,Nature,2020-03-15\n" +
		"short row,BMJ\n" +
		"long,row,2021-01-01,extra\n"
	tab, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	wantColumns := []string{"Title", "Journal", "Publish Time"}
	if !cmp.Equal(tab.Columns, wantColumns) {
		t.Errorf("columns: got %v, want %v", tab.Columns, wantColumns)
	}
	wantRows := [][]string{
		{"A paper", "Nature", "2020-03-15"},
		{"short row", "BMJ", ""},
		{"long", "row", "2021-01-01"},
	}
	if !cmp.Equal(tab.Rows, wantRows) {
		t.Errorf("rows: got %v, want %v", tab.Rows, wantRows)
	}
}

func TestReadBrokenQuoting(t *testing.T) {
	input := "Title,Journal\n" +
		"good,Nature\n" +
		"bad \"quote,BMJ\n" +
		"also good,Lancet\n"
	tab, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	wantRows := [][]string{
		{"good", "Nature"},
		{"also good", "Lancet"},
	}
	if !cmp.Equal(tab.Rows, wantRows) {
		t.Errorf("rows: got %v, want %v", tab.Rows, wantRows)
	}
}

func TestReadEmpty(t *testing.T) {
	tab, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 0 || len(tab.Columns) != 0 {
		t.Errorf("want empty table, got %v columns, %v rows", len(tab.Columns), tab.Len())
	}
}

func TestWriteRoundtrip(t *testing.T) {
	tab := New([]string{"title", "year"})
	tab.Rows = [][]string{
		{"quoted, title", "2020"},
		{"plain", ""},
	}
	var buf bytes.Buffer
	if err := tab.Write(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(got, tab) {
		t.Errorf("roundtrip mismatch: got %v, want %v", got, tab)
	}
}

func TestGzipRoundtrip(t *testing.T) {
	tab := New([]string{"title", "journal"})
	tab.Rows = [][]string{{"a", "b"}, {"c", "d"}}
	path := filepath.Join(t.TempDir(), "metadata.csv.gz")
	if err := tab.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(got, tab) {
		t.Errorf("gzip roundtrip mismatch: got %v, want %v", got, tab)
	}
}

func TestAddColumn(t *testing.T) {
	tab := New([]string{"title"})
	tab.Rows = [][]string{{"a"}, {"b"}}
	tab.AddColumn("year", "", []string{"2020"})
	wantRows := [][]string{{"a", "2020"}, {"b", ""}}
	if !cmp.Equal(tab.Rows, wantRows) {
		t.Errorf("got %v, want %v", tab.Rows, wantRows)
	}
	if tab.Index("year") != 1 {
		t.Errorf("year column index: got %d", tab.Index("year"))
	}
}

func TestFilter(t *testing.T) {
	tab := New([]string{"title", "journal"})
	tab.Rows = [][]string{{"a", "Nature"}, {"b", "BMJ"}, {"c", "Nature"}}
	got := tab.Filter(func(row []string) bool { return row[1] == "Nature" })
	if got.Len() != 2 {
		t.Fatalf("got %d rows, want 2", got.Len())
	}
	if got.Rows[0][0] != "a" || got.Rows[1][0] != "c" {
		t.Errorf("filter order not preserved: %v", got.Rows)
	}
}
