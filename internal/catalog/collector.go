package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/PDillis/earthview/internal/pool"
	"github.com/PuerkitoBio/goquery"
)

const (
	// Gallery page for a single image identifier.
	DefaultBaseURL = "https://earthview.withgoogle.com"

	// Full-resolution asset; formatted with the numeric identifier.
	DefaultAssetURL = "https://www.gstatic.com/prettyearth/assets/full/%d.jpg"
)

// Collector harvests catalog records by scraping the Earth View gallery
// pages over a numeric identifier range.
type Collector struct {
	BaseURL  string
	AssetURL string
	Client   *http.Client
}

// NewCollector creates a collector with the public Earth View endpoints.
// EARTHVIEW_BASE_URL and EARTHVIEW_ASSET_URL override the defaults.
func NewCollector() *Collector {
	baseURL := os.Getenv("EARTHVIEW_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	assetURL := os.Getenv("EARTHVIEW_ASSET_URL")
	if assetURL == "" {
		assetURL = DefaultAssetURL
	}
	return &Collector{
		BaseURL:  baseURL,
		AssetURL: assetURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Refresh scrapes gallery pages for identifiers in [0, maxIndex) using
// the given worker pool and returns the deduplicated catalog ordered by
// identifier. Identifiers that do not resolve are omitted; individual
// fetch failures are logged and skipped, never aborting the refresh.
func (c *Collector) Refresh(ctx context.Context, maxIndex int, p *pool.Pool) (Catalog, error) {
	if maxIndex <= 0 {
		return nil, fmt.Errorf("max index must be positive, got %d", maxIndex)
	}

	slog.Info("Refreshing catalog", "max_index", maxIndex, "workers", p.Workers())

	// One slot per identifier so completion order doesn't matter.
	results := make([]*Record, maxIndex)

	p.Run(ctx, maxIndex, func(ctx context.Context, id int) {
		rec, err := c.fetchOne(ctx, id)
		if err != nil {
			slog.Warn("Failed to fetch gallery page", "id", id, "error", err)
			return
		}
		results[id] = rec
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cat Catalog
	for _, rec := range results {
		if rec != nil {
			cat = append(cat, *rec)
		}
	}
	cat = cat.Dedupe()

	slog.Info("Catalog refresh complete", "records", len(cat))
	return cat, nil
}

// fetchOne scrapes the gallery page for a single identifier. A nil
// record with nil error means the identifier does not resolve (404) and
// should be skipped silently.
func (c *Collector) fetchOne(ctx context.Context, id int) (*Record, error) {
	url := fmt.Sprintf("%s/%d", c.BaseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gallery returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	mapURL, ok := doc.Find("a[href]").First().Attr("href")
	if !ok {
		// Page exists but lacks the expected markup; treat like a
		// missing identifier.
		return nil, nil
	}

	return &Record{
		Region:  doc.Find("div.location__region").First().Text(),
		Country: doc.Find("div.location__country").First().Text(),
		Map:     mapURL,
		Image:   fmt.Sprintf(c.AssetURL, id),
	}, nil
}
