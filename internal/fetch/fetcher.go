// Package fetch downloads the image assets referenced by a catalog
// into a local directory tree.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/PDillis/earthview/internal/catalog"
	"github.com/PDillis/earthview/internal/pool"
	"github.com/PDillis/earthview/internal/report"
)

// Native resolution of Earth View assets. A mismatch is logged but not
// treated as an error.
const (
	expectedWidth  = 1800
	expectedHeight = 1200
)

// Options configures one download batch.
type Options struct {
	Dir          string // root of the image tree
	ByCountry    bool   // group into one subdirectory per country
	SkipExisting bool   // never re-fetch files already on disk
}

// Fetcher downloads image assets with a bounded worker pool.
type Fetcher struct {
	Client  *http.Client
	Workers int
}

// NewFetcher creates a fetcher running at most workers parallel
// downloads.
func NewFetcher(workers int) *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		Workers: workers,
	}
}

// FlatDir returns the ungrouped full-resolution directory under root.
func FlatDir(root string) string {
	return filepath.Join(root, "all", "full_resolution")
}

// CountriesDir returns the grouped full-resolution directory under root.
func CountriesDir(root string) string {
	return filepath.Join(root, "countries", "full_resolution")
}

// Download fetches every unique image URL in the catalog into the
// layout selected by opts. Each URL is fetched at most once no matter
// how many records reference it. Per-item failures are logged and
// counted; only an unusable destination aborts the batch.
func (f *Fetcher) Download(ctx context.Context, cat catalog.Catalog, opts Options) (*report.Summary, error) {
	if opts.ByCountry {
		return f.downloadByCountry(ctx, cat, opts)
	}
	return f.downloadAll(ctx, cat, opts)
}

func (f *Fetcher) downloadAll(ctx context.Context, cat catalog.Catalog, opts Options) (*report.Summary, error) {
	dir := FlatDir(opts.Dir)
	if err := ensureWritableDir(dir); err != nil {
		return nil, err
	}

	urls := cat.ImageURLs()
	slog.Info("Downloading images", "count", len(urls), "output", dir, "workers", f.Workers)

	summary := report.New("Image download")
	p := pool.New(f.Workers)
	p.Run(ctx, len(urls), func(ctx context.Context, i int) {
		url := urls[i]
		name := path.Base(url)
		dest := filepath.Join(dir, name)

		if opts.SkipExisting && fileExists(dest) {
			summary.Skip(name, "already downloaded")
			return
		}

		if err := f.downloadImage(ctx, url, dest); err != nil {
			slog.Warn("Failed to download image", "url", url, "error", err)
			summary.Fail(name, err)
			return
		}
		summary.Complete()
	})

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (f *Fetcher) downloadByCountry(ctx context.Context, cat catalog.Catalog, opts Options) (*report.Summary, error) {
	dir := CountriesDir(opts.Dir)
	if err := ensureWritableDir(dir); err != nil {
		return nil, err
	}

	pairs := cat.ByCountry()
	slog.Info("Downloading images by country", "count", len(pairs), "output", dir, "workers", f.Workers)

	summary := report.New("Image download by country")
	p := pool.New(f.Workers)
	p.Run(ctx, len(pairs), func(ctx context.Context, i int) {
		pair := pairs[i]
		country := pair.Country
		if country == "" {
			country = "None"
		}

		name := path.Base(pair.Image)
		countryDir := filepath.Join(dir, country)
		if err := os.MkdirAll(countryDir, 0755); err != nil {
			slog.Warn("Failed to create country directory", "country", country, "error", err)
			summary.Fail(name, err)
			return
		}
		dest := filepath.Join(countryDir, name)

		if opts.SkipExisting && fileExists(dest) {
			summary.Skip(name, "already downloaded")
			return
		}

		// Reuse a copy from an earlier ungrouped download before
		// going back to the network.
		if flat := filepath.Join(FlatDir(opts.Dir), name); fileExists(flat) {
			if err := copyFile(flat, dest); err != nil {
				slog.Warn("Failed to copy local image", "src", flat, "error", err)
				summary.Fail(name, err)
				return
			}
			summary.Complete()
			return
		}

		if err := f.downloadImage(ctx, pair.Image, dest); err != nil {
			slog.Warn("Failed to download image", "url", pair.Image, "error", err)
			summary.Fail(name, err)
			return
		}
		summary.Complete()
	})

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// downloadImage fetches one image, verifies the payload decodes as an
// image, and writes it to dest via a temp file so a partial download
// never lands under the final name.
func (f *Fetcher) downloadImage(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("payload is not a decodable image: %w", err)
	}
	if cfg.Width != expectedWidth || cfg.Height != expectedHeight {
		slog.Warn("Unexpected image dimensions", "url", url, "format", format,
			"width", cfg.Width, "height", cfg.Height)
	}

	tempPath := dest + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := os.Rename(tempPath, dest); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ensureWritableDir creates dir if needed and verifies files can be
// created in it, so the batch aborts before any downloads begin.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	probe, err := os.CreateTemp(dir, ".writecheck-*")
	if err != nil {
		return fmt.Errorf("output directory not writable: %w", err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}
