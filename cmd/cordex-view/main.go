// cordex-view is a terminal UI for browsing cleaned metadata: filter by
// year range, source and title substring, see live counts and charts,
// export the filtered rows as CSV or a word cloud image.
//
// It prefers the sampled CSV written by cordex-explore and falls back to
// the raw input; the same normalization pipeline is applied on load.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/miku/cordex"
	"github.com/miku/cordex/config"
)

const (
	defaultSample = "outputs/sample_metadata.csv"
	defaultFull   = "data/metadata.csv"
)

var (
	input       = flag.String("input", "", "metadata CSV to browse (default: sample, then full)")
	outdir      = flag.String("outdir", "outputs", "directory for exported files")
	configFile  = flag.String("config", "", "optional YAML config file")
	fontFile    = flag.String("font", "", "TTF font file for word cloud export")
	showVersion = flag.Bool("version", false, "show version")
)

// resolveInput prefers the sample for speed, like the batch tool suggests.
func resolveInput() (string, error) {
	if *input != "" {
		return *input, nil
	}
	for _, candidate := range []string{defaultSample, defaultFull} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no metadata found, put metadata.csv in data/ or run cordex-explore first")
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
	if *fontFile != "" {
		cfg.WordCloud.FontFile = *fontFile
	}
	path, err := resolveInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(NewApp(path, *outdir, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
