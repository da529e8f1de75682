// Package fetch resolves input locations: local paths pass through, http
// and https URLs are downloaded once into a cache directory and re-used.
package fetch

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
)

// DefaultCacheDir is where downloaded inputs end up.
var DefaultCacheDir = filepath.Join(xdg.DataHome, "cordex")

// Options for remote downloads.
type Options struct {
	CacheDir   string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultOptions match a one-shot batch run.
var DefaultOptions = Options{
	CacheDir:   DefaultCacheDir,
	MaxRetries: 3,
	Timeout:    60 * time.Second,
}

// Resolve turns an input location into a local path. Local paths are returned
// unchanged, URLs are downloaded into the cache directory if not present.
func Resolve(input string, opts Options) (string, error) {
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return input, nil
	}
	return Download(input, opts)
}

// Download fetches a URL into the cache dir, keyed on a hash of the URL so
// different sources never collide. An existing cache file wins.
func Download(url string, opts Options) (string, error) {
	if opts.CacheDir == "" {
		opts.CacheDir = DefaultCacheDir
	}
	if err := os.MkdirAll(opts.CacheDir, 0755); err != nil {
		return "", err
	}
	dst := filepath.Join(opts.CacheDir, cacheName(url))
	if _, err := os.Stat(dst); err == nil {
		log.Infof("using cached download: %s", dst)
		return dst, nil
	}
	client := pester.New()
	client.MaxRetries = opts.MaxRetries
	client.Backoff = pester.ExponentialBackoff
	client.Timeout = opts.Timeout
	log.Infof("fetching %s", url)
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: got HTTP %d for %s", resp.StatusCode, url)
	}
	tmp, err := os.CreateTemp(opts.CacheDir, "download-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return dst, nil
}

// cacheName keeps the original basename for readability, prefixed with a
// short URL hash.
func cacheName(url string) string {
	h := sha1.Sum([]byte(url))
	base := path.Base(strings.SplitN(url, "?", 2)[0])
	if base == "" || base == "." || base == "/" {
		base = "metadata.csv"
	}
	return fmt.Sprintf("%x-%s", h[:6], base)
}
