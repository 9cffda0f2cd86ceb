package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
)

// DefaultStaticURL is the bundled catalog published alongside the
// project, for use when a fresh scrape is not wanted or not possible.
const DefaultStaticURL = "https://raw.githubusercontent.com/PDillis/earthview/master/earthview.json"

// StaticURL returns the static catalog URL, honoring the
// EARTHVIEW_STATIC_CATALOG_URL override.
func StaticURL() string {
	if url := os.Getenv("EARTHVIEW_STATIC_CATALOG_URL"); url != "" {
		return url
	}
	return DefaultStaticURL
}

// FetchStatic downloads the bundled static catalog.
func FetchStatic(ctx context.Context, client *http.Client, url string) (Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch static catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("static catalog returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read static catalog: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse static catalog: %w", err)
	}
	return cat, nil
}

// LoadOrStatic loads the catalog at path, falling back to the static
// catalog when the file does not exist. The fetched fallback is
// persisted at path so later runs can work offline.
func LoadOrStatic(ctx context.Context, client *http.Client, path string) (Catalog, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	slog.Info("Local catalog not found, fetching static catalog", "path", path)
	cat, err := FetchStatic(ctx, client, StaticURL())
	if err != nil {
		return nil, err
	}
	if err := Save(path, cat); err != nil {
		return nil, err
	}
	return cat, nil
}
