// Package aggregate builds frequency tables over metadata columns: papers
// per year, top journals and sources, and title word frequencies.
package aggregate

import (
	"encoding/csv"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/miku/cordex/table"
)

// Unknown is the bucket for empty categorical values.
const Unknown = "Unknown"

// TopWordsLimit caps the title word frequency table.
const TopWordsLimit = 200

// MinWordLength is exclusive; shorter tokens are dropped.
const MinWordLength = 2

var wordPattern = regexp.MustCompile(`\w+`)

// Entry is one row of a frequency table.
type Entry struct {
	Key   string
	Count int
}

// FreqTable maps categorical values to counts, in a fixed order.
type FreqTable []Entry

// WriteCSV writes the table with a two column header.
func (ft FreqTable) WriteCSV(w io.Writer, keyHeader string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{keyHeader, "count"}); err != nil {
		return err
	}
	for _, e := range ft {
		if err := cw.Write([]string{e.Key, strconv.Itoa(e.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Total sums all counts.
func (ft FreqTable) Total() int {
	var total int
	for _, e := range ft {
		total += e.Count
	}
	return total
}

// counter tallies values and remembers first-encounter order, so ties
// break deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// byCountDesc returns entries ordered by descending count, ties in
// first-encounter order.
func (c *counter) byCountDesc() FreqTable {
	ft := make(FreqTable, 0, len(c.order))
	for _, key := range c.order {
		ft = append(ft, Entry{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(ft, func(i, j int) bool { return ft[i].Count > ft[j].Count })
	return ft
}

// ByYear counts records per non-null year, keys sorted ascending.
func ByYear(t *table.Table) FreqTable {
	c := newCounter()
	for _, y := range t.Values("year") {
		if y == "" {
			continue
		}
		c.add(y)
	}
	ft := make(FreqTable, 0, len(c.order))
	for _, key := range c.order {
		ft = append(ft, Entry{Key: key, Count: c.counts[key]})
	}
	sort.Slice(ft, func(i, j int) bool {
		yi, _ := strconv.Atoi(ft[i].Key)
		yj, _ := strconv.Atoi(ft[j].Key)
		return yi < yj
	})
	return ft
}

// TopValues counts distinct values of a column, empty mapped to Unknown,
// ordered by descending count and truncated to n. A missing column yields
// an empty table; n <= 0 means no truncation.
func TopValues(t *table.Table, column string, n int) FreqTable {
	values := t.Values(column)
	if values == nil {
		return nil
	}
	c := newCounter()
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			v = Unknown
		}
		c.add(v)
	}
	ft := c.byCountDesc()
	if n > 0 && len(ft) > n {
		ft = ft[:n]
	}
	return ft
}

// Tokenize lowercases text and splits it into word tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// TitleWords tokenizes all titles and counts tokens longer than two
// characters that are not stopwords, keeping the limit most frequent ones.
func TitleWords(t *table.Table, stopwords StopwordSet, limit int) FreqTable {
	if stopwords == nil {
		stopwords = DefaultStopwords
	}
	c := newCounter()
	for _, title := range t.Values("title") {
		for _, token := range Tokenize(title) {
			if len(token) <= MinWordLength || stopwords.Contains(token) {
				continue
			}
			c.add(token)
		}
	}
	ft := c.byCountDesc()
	if limit > 0 && len(ft) > limit {
		ft = ft[:limit]
	}
	return ft
}
