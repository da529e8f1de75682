// cordex-explore cleans a CORD-19 style metadata CSV and derives fields,
// then writes a cleaned table, a reproducible sample, chart images, a
// title word cloud and a top title words CSV.
//
// $ cordex-explore -input data/metadata.csv -outdir outputs -sample_size 5000
//
// The input may also be an http(s) URL, which is downloaded once into a
// local cache. Only a missing or unreadable input is fatal; everything
// else degrades with warnings.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"

	"github.com/miku/cordex"
	"github.com/miku/cordex/aggregate"
	"github.com/miku/cordex/config"
	"github.com/miku/cordex/fetch"
	"github.com/miku/cordex/pipeline"
	"github.com/miku/cordex/render"
	"github.com/miku/cordex/sample"
	"github.com/miku/cordex/store"
	"github.com/miku/cordex/table"
)

var (
	input       = flag.String("input", "data/metadata.csv", "path or URL to metadata.csv (.gz works, too)")
	outdir      = flag.String("outdir", "outputs", "output directory for cleaned csv and plots")
	sampleSize  = flag.Int("sample_size", 5000, "sample rows to save for fast iteration (0 to disable)")
	configFile  = flag.String("config", "", "optional YAML config file")
	sqlitePath  = flag.String("sqlite", "", "also export the cleaned table into this sqlite file")
	fontFile    = flag.String("font", "", "TTF font file for the word cloud (overrides config)")
	verbose     = flag.Bool("verbose", false, "more logging")
	showVersion = flag.Bool("version", false, "show version")
)

// Summary is the quick dataset overview, written as JSON next to the
// other outputs.
type Summary struct {
	RunID          string    `json:"run_id"`
	Input          string    `json:"input"`
	TotalPapers    int       `json:"total_papers"`
	Years          []int     `json:"years"`
	UniqueJournals int       `json:"unique_journals"`
	UniqueSources  int       `json:"unique_sources"`
	GeneratedAt    time.Time `json:"generated_at"`
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(cordex.Version)
		os.Exit(0)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	} else if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if *fontFile != "" {
		cfg.WordCloud.FontFile = *fontFile
	}
	if err := os.MkdirAll(*outdir, 0755); err != nil {
		log.Fatalf("outdir: %v", err)
	}
	path, err := fetch.Resolve(*input, fetch.DefaultOptions)
	if err != nil {
		log.Fatalf("input: %v", err)
	}
	log.Infof("loading %s", path)
	t, err := table.ReadFile(path)
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	log.Infof("raw shape: %d rows, %d columns", t.Len(), len(t.Columns))
	pipeline.Process(t)

	cleanedPath := filepath.Join(*outdir, "metadata_cleaned.csv")
	if err := t.WriteFile(cleanedPath); err != nil {
		log.Fatalf("write cleaned: %v", err)
	}
	log.Infof("saved cleaned CSV: %s", cleanedPath)

	if *sampleSize > 0 {
		s := sample.Rows(t, *sampleSize, cfg.SampleSeed)
		samplePath := filepath.Join(*outdir, "sample_metadata.csv")
		if err := s.WriteFile(samplePath); err != nil {
			log.Fatalf("write sample: %v", err)
		}
		log.Infof("saved sample CSV: %s (%d rows)", samplePath, s.Len())
	}

	writeCharts(t, cfg)
	words := writeTopWords(t, cfg)
	writeWordCloud(words, cfg)
	writeSummary(t, path)

	if *sqlitePath != "" {
		if err := store.WriteSQLite(*sqlitePath, t); err != nil {
			log.Warnf("sqlite export: %v", err)
		} else {
			log.Infof("saved sqlite: %s", *sqlitePath)
		}
	}
	log.Info("done")
}

func writeCharts(t *table.Table, cfg *config.Config) {
	w, h := cfg.Chart.Width, cfg.Chart.Height
	byYear := aggregate.ByYear(t)
	if len(byYear) > 0 {
		path := filepath.Join(*outdir, "publications_by_year.png")
		if err := render.BarChart(byYear, "Publications by Year", path, w, h); err != nil {
			log.Warnf("publications by year: %v", err)
		} else {
			log.Infof("saved: %s", path)
		}
	} else {
		log.Warn("no publish_time/year data available to plot publications by year")
	}
	charts := []struct {
		column, title, filename string
		n                       int
	}{
		{"journal", "Top Journals (by paper count)", "top_journals.png", cfg.TopJournals},
		{"source_x", "Top Sources", "top_sources.png", cfg.TopSources},
	}
	for _, c := range charts {
		ft := aggregate.TopValues(t, c.column, c.n)
		if len(ft) == 0 {
			log.Warnf("no %q column present for %s", c.column, c.filename)
			continue
		}
		path := filepath.Join(*outdir, c.filename)
		if err := render.BarChart(ft, c.title, path, w, h); err != nil {
			log.Warnf("%s: %v", c.filename, err)
			continue
		}
		log.Infof("saved: %s", path)
	}
}

func writeTopWords(t *table.Table, cfg *config.Config) aggregate.FreqTable {
	stopwords := aggregate.NewStopwordSet(cfg.StopwordList(aggregate.DefaultStopwordList)...)
	words := aggregate.TitleWords(t, stopwords, cfg.TopWords)
	path := filepath.Join(*outdir, "top_title_words.csv")
	f, err := os.Create(path)
	if err != nil {
		log.Warnf("top words: %v", err)
		return words
	}
	defer f.Close()
	if err := words.WriteCSV(f, "word"); err != nil {
		log.Warnf("top words: %v", err)
		return words
	}
	log.Infof("saved top words CSV: %s", path)
	return words
}

func writeWordCloud(words aggregate.FreqTable, cfg *config.Config) {
	path := filepath.Join(*outdir, "wordcloud_titles.png")
	err := render.WordCloud(words, cfg.WordCloud.FontFile, path, cfg.WordCloud.Width, cfg.WordCloud.Height)
	if err != nil {
		log.Warnf("skipping word cloud: %v", err)
		return
	}
	log.Infof("saved wordcloud: %s", path)
}

func writeSummary(t *table.Table, input string) {
	byYear := aggregate.ByYear(t)
	years := make([]int, 0, len(byYear))
	for _, e := range byYear {
		if y, err := strconv.Atoi(e.Key); err == nil {
			years = append(years, y)
		}
	}
	summary := Summary{
		RunID:          uuid.NewString(),
		Input:          input,
		TotalPapers:    t.Len(),
		Years:          years,
		UniqueJournals: len(aggregate.TopValues(t, "journal", 0)),
		UniqueSources:  len(aggregate.TopValues(t, "source_x", 0)),
		GeneratedAt:    time.Now().UTC(),
	}
	path := filepath.Join(*outdir, "summary.json")
	f, err := os.Create(path)
	if err != nil {
		log.Warnf("summary: %v", err)
		return
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Warnf("summary: %v", err)
		return
	}
	log.Infof("saved summary: %s", path)
	log.Infof("total papers: %d, unique journals: %d, unique sources: %d",
		summary.TotalPapers, summary.UniqueJournals, summary.UniqueSources)
}
