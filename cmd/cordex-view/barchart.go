package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/miku/cordex/aggregate"
)

// textBarChart renders a frequency table as horizontal unicode bars, one
// line per entry, at most maxRows lines.
func textBarChart(ft aggregate.FreqTable, width, maxRows int) string {
	if len(ft) == 0 {
		return ""
	}
	if maxRows > 0 && len(ft) > maxRows {
		ft = ft[:maxRows]
	}
	labelWidth := 0
	max := 0
	for _, e := range ft {
		if n := utf8.RuneCountInString(e.Key); n > labelWidth {
			labelWidth = n
		}
		if e.Count > max {
			max = e.Count
		}
	}
	if labelWidth > 24 {
		labelWidth = 24
	}
	barSpace := width - labelWidth - 10
	if barSpace < 10 {
		barSpace = 10
	}
	var b strings.Builder
	for _, e := range ft {
		label := e.Key
		if runes := []rune(label); len(runes) > labelWidth {
			label = string(runes[:labelWidth-1]) + "…"
		}
		// pad in runes, fmt width counts bytes
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(label))
		n := e.Count * barSpace / max
		if n == 0 && e.Count > 0 {
			n = 1
		}
		bar := barStyle.Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "  %s%s %s %d\n", label, pad, bar, e.Count)
	}
	return b.String()
}
