// Package config holds optional settings for the explorer and viewer,
// loaded from a YAML file. Everything has a usable default; flags on the
// binaries override file values.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrInvalidTopJournals = errors.New("top_journals must be at least 1")
	ErrInvalidTopSources  = errors.New("top_sources must be at least 1")
	ErrInvalidTopWords    = errors.New("top_words must be at least 1")
	ErrInvalidChartSize   = errors.New("chart width and height must be positive")
	ErrInvalidCloudSize   = errors.New("wordcloud width and height must be positive")
	ErrInvalidLogLevel    = errors.New("log_level must be one of: debug, info, warn, error")
)

// Config for both entry points.
type Config struct {
	// Stopwords replaces the default stopword set when non-empty.
	Stopwords []string `yaml:"stopwords"`
	// ExtraStopwords extends the active set.
	ExtraStopwords []string    `yaml:"extra_stopwords"`
	TopJournals    int         `yaml:"top_journals"`
	TopSources     int         `yaml:"top_sources"`
	TopWords       int         `yaml:"top_words"`
	SampleSeed     int64       `yaml:"sample_seed"`
	Chart          ChartConfig `yaml:"chart"`
	WordCloud      CloudConfig `yaml:"wordcloud"`
	LogLevel       string      `yaml:"log_level"`
}

// ChartConfig sets bar chart image dimensions.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CloudConfig sets word cloud rendering options.
type CloudConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	FontFile string `yaml:"font_file"`
}

// Default configuration, mirroring the historical script defaults.
func Default() *Config {
	return &Config{
		TopJournals: 15,
		TopSources:  15,
		TopWords:    200,
		SampleSeed:  42,
		Chart:       ChartConfig{Width: 800, Height: 400},
		WordCloud:   CloudConfig{Width: 1200, Height: 600},
		LogLevel:    "info",
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.TopJournals < 1 {
		return ErrInvalidTopJournals
	}
	if c.TopSources < 1 {
		return ErrInvalidTopSources
	}
	if c.TopWords < 1 {
		return ErrInvalidTopWords
	}
	if c.Chart.Width < 1 || c.Chart.Height < 1 {
		return ErrInvalidChartSize
	}
	if c.WordCloud.Width < 1 || c.WordCloud.Height < 1 {
		return ErrInvalidCloudSize
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// StopwordList builds the active stopword list: the override when set,
// otherwise the given defaults, plus any extras.
func (c *Config) StopwordList(defaults []string) []string {
	words := defaults
	if len(c.Stopwords) > 0 {
		words = c.Stopwords
	}
	return append(append([]string(nil), words...), c.ExtraStopwords...)
}
