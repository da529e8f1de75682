// Package derive computes fields from raw metadata columns: publication
// year from publish_time, word counts from text fields, and a record id.
// Missing text columns are synthesized so downstream aggregation never has
// to branch on column presence.
package derive

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/jinzhu/now"
	log "github.com/sirupsen/logrus"

	"github.com/miku/cordex/table"
)

// TextColumns are filled with empty strings when absent or null.
var TextColumns = []string{"abstract", "title", "authors", "journal", "source_x"}

// idColumns are consulted, in order, before a record id is synthesized.
var idColumns = []string{"cord_uid", "sha", "doi"}

var (
	naValues    = map[string]bool{"": true, "NA": true, "N/A": true}
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ParseDate parses a raw publish_time value. Returns false for empty or
// unparseable input, never an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if naValues[s] {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// maxPlausibleYear allows publication dates up to the end of next year;
// anything further out is a data error, not an early-access paper.
func maxPlausibleYear() int {
	return now.EndOfYear().Year() + 1
}

// Year extracts a publication year from a raw date string. Falls back to a
// four digit year pattern when full date parsing fails. The boolean is
// false when no plausible year is found.
func Year(s string) (int, bool) {
	max := maxPlausibleYear()
	if t, ok := ParseDate(s); ok {
		y := t.Year()
		if y >= 1500 && y <= max {
			return y, true
		}
	}
	if match := yearPattern.FindString(s); match != "" {
		y, err := strconv.Atoi(match)
		if err == nil && y <= max {
			return y, true
		}
	}
	return 0, false
}

// WordCount returns the number of whitespace separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// StripMarkup removes HTML tags from a text field, keeping the text
// content. Input without angle brackets is returned as is.
func StripMarkup(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// Apply derives fields in place: text columns are filled, publish_time is
// reformatted to YYYY-MM-DD (empty when unparseable), and year, word count
// and record id columns are appended. Never fails; a missing text column
// only logs a warning.
func Apply(t *table.Table) {
	fillTextColumns(t)
	deriveYear(t)
	deriveWordCounts(t)
	deriveRecordID(t)
}

// setColumn overwrites an existing column or appends a new one, so inputs
// that already carry a derived column name do not end up with duplicates.
func setColumn(t *table.Table, name, fill string, values []string) {
	i := t.Index(name)
	if i == -1 {
		t.AddColumn(name, fill, values)
		return
	}
	for j, row := range t.Rows {
		v := fill
		if j < len(values) {
			v = values[j]
		}
		row[i] = v
	}
}

func fillTextColumns(t *table.Table) {
	for _, name := range TextColumns {
		i := t.Index(name)
		if i == -1 {
			log.Warnf("column %q missing, filling with empty strings", name)
			t.AddColumn(name, "", nil)
			continue
		}
		for _, row := range t.Rows {
			v := strings.TrimSpace(row[i])
			if naValues[v] {
				row[i] = ""
				continue
			}
			row[i] = StripMarkup(v)
		}
	}
}

func deriveYear(t *table.Table) {
	i := t.Index("publish_time")
	years := make([]string, t.Len())
	if i != -1 {
		for j, row := range t.Rows {
			raw := row[i]
			if d, ok := ParseDate(raw); ok {
				row[i] = d.Format("2006-01-02")
			} else {
				row[i] = ""
			}
			if y, ok := Year(raw); ok {
				years[j] = strconv.Itoa(y)
			}
		}
	}
	setColumn(t, "year", "", years)
}

func deriveWordCounts(t *table.Table) {
	abstracts := t.Values("abstract")
	titles := t.Values("title")
	counts := func(values []string) []string {
		result := make([]string, len(values))
		for i, v := range values {
			result[i] = strconv.Itoa(WordCount(v))
		}
		return result
	}
	setColumn(t, "abstract_word_count", "0", counts(abstracts))
	setColumn(t, "title_word_count", "0", counts(titles))
}

// deriveRecordID makes every cleaned row addressable: the first non-empty
// identifier column wins, rows without any get a fresh UUID.
func deriveRecordID(t *table.Table) {
	indices := make([]int, 0, len(idColumns))
	for _, name := range idColumns {
		if i := t.Index(name); i != -1 {
			indices = append(indices, i)
		}
	}
	ids := make([]string, t.Len())
	for j, row := range t.Rows {
		for _, i := range indices {
			if v := strings.TrimSpace(row[i]); v != "" {
				ids[j] = v
				break
			}
		}
		if ids[j] == "" {
			ids[j] = uuid.NewString()
		}
	}
	setColumn(t, "record_id", "", ids)
}
