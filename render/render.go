// Package render writes chart and word cloud images for frequency tables.
// This is presentation glue: every function takes a finished FreqTable and
// only decides pixels.
package render

import (
	"fmt"
	"image/color"
	"image/png"
	"os"

	"github.com/psykhi/wordclouds"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/miku/cordex/aggregate"
)

// cloudPalette is a handful of readable colors on white.
var cloudPalette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// BarChart renders a frequency table as a PNG bar chart.
func BarChart(ft aggregate.FreqTable, title, path string, width, height int) error {
	if len(ft) == 0 {
		return fmt.Errorf("nothing to chart: %s", title)
	}
	bars := make([]chart.Value, 0, len(ft))
	for _, e := range ft {
		bars = append(bars, chart.Value{Label: e.Key, Value: float64(e.Count)})
	}
	barWidth := (width - 100) / len(bars)
	if barWidth < 8 {
		barWidth = 8
	}
	if barWidth > 60 {
		barWidth = 60
	}
	graph := chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		Bars:     bars,
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

// WordCloud renders word frequencies as a PNG. A font file is required;
// rendering text without one is not possible.
func WordCloud(ft aggregate.FreqTable, fontFile, path string, width, height int) error {
	if fontFile == "" {
		return fmt.Errorf("word cloud needs a TTF font file")
	}
	if _, err := os.Stat(fontFile); err != nil {
		return fmt.Errorf("font file: %w", err)
	}
	if len(ft) == 0 {
		return fmt.Errorf("no words for a word cloud")
	}
	counts := make(map[string]int, len(ft))
	for _, e := range ft {
		counts[e.Key] = e.Count
	}
	w := wordclouds.NewWordcloud(counts,
		wordclouds.FontFile(fontFile),
		wordclouds.Width(width),
		wordclouds.Height(height),
		wordclouds.FontMaxSize(height/5),
		wordclouds.FontMinSize(10),
		wordclouds.Colors(cloudPalette),
		wordclouds.BackgroundColor(color.White),
	)
	img := w.Draw()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
