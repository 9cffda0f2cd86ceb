// Package catalog defines the Earth View image catalog: an ordered
// collection of per-image metadata records keyed by image URL.
package catalog

// Record holds the metadata scraped for a single Earth View image.
// Image is the unique key within a catalog; Country and Region may be
// empty when the gallery page does not name them.
type Record struct {
	Country string `json:"country" yaml:"country" parquet:"country"`
	Image   string `json:"image" yaml:"image" parquet:"image"`
	Map     string `json:"map" yaml:"map" parquet:"map"`
	Region  string `json:"region" yaml:"region" parquet:"region"`
}

// Catalog is an ordered sequence of records. Order is preserved through
// persistence but carries no meaning downstream; consumers dedupe by
// image URL.
type Catalog []Record

// Dedupe returns a catalog with one record per image URL, keeping the
// first occurrence and preserving order.
func (c Catalog) Dedupe() Catalog {
	seen := make(map[string]bool, len(c))
	out := make(Catalog, 0, len(c))
	for _, rec := range c {
		if seen[rec.Image] {
			continue
		}
		seen[rec.Image] = true
		out = append(out, rec)
	}
	return out
}

// ImageURLs returns the unique image URLs in catalog order.
func (c Catalog) ImageURLs() []string {
	deduped := c.Dedupe()
	urls := make([]string, 0, len(deduped))
	for _, rec := range deduped {
		urls = append(urls, rec.Image)
	}
	return urls
}

// ImageCountry pairs an image URL with its country label.
type ImageCountry struct {
	Image   string
	Country string
}

// ByCountry returns unique (image URL, country) pairs in catalog order.
func (c Catalog) ByCountry() []ImageCountry {
	deduped := c.Dedupe()
	pairs := make([]ImageCountry, 0, len(deduped))
	for _, rec := range deduped {
		pairs = append(pairs, ImageCountry{Image: rec.Image, Country: rec.Country})
	}
	return pairs
}
