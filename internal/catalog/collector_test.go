package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/PDillis/earthview/internal/pool"
)

const galleryPage = `<!DOCTYPE html>
<html><body>
<div class="location__region">%s</div>
<div class="location__country">%s</div>
<a href="%s">View in Google Maps</a>
</body></html>`

func newGalleryServer(t *testing.T, pages map[int][3]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		page, ok := pages[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, galleryPage, page[0], page[1], page[2])
	}))
}

func TestRefresh(t *testing.T) {
	server := newGalleryServer(t, map[int][3]string{
		1: {"Tuscany", "Italy", "https://maps.example.com/a"},
		3: {"", "Chile", "https://maps.example.com/b"},
	})
	defer server.Close()

	collector := &Collector{
		BaseURL:  server.URL,
		AssetURL: "https://assets.example.com/full/%d.jpg",
		Client:   server.Client(),
	}

	cat, err := collector.Refresh(context.Background(), 6, pool.New(4))
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if len(cat) != 2 {
		t.Fatalf("Refresh returned %d records, want 2 (404s skipped)", len(cat))
	}

	// Results are ordered by identifier regardless of fetch completion order.
	want := Catalog{
		{Region: "Tuscany", Country: "Italy", Map: "https://maps.example.com/a", Image: "https://assets.example.com/full/1.jpg"},
		{Region: "", Country: "Chile", Map: "https://maps.example.com/b", Image: "https://assets.example.com/full/3.jpg"},
	}
	for i := range want {
		if cat[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, cat[i], want[i])
		}
	}
}

func TestRefreshSurvivesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2" {
			fmt.Fprintf(w, galleryPage, "Atacama", "Chile", "https://maps.example.com/c")
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	collector := &Collector{
		BaseURL:  server.URL,
		AssetURL: "https://assets.example.com/full/%d.jpg",
		Client:   server.Client(),
	}

	cat, err := collector.Refresh(context.Background(), 5, pool.New(2))
	if err != nil {
		t.Fatalf("per-item failures must not abort the refresh: %v", err)
	}
	if len(cat) != 1 || cat[0].Country != "Chile" {
		t.Errorf("Refresh = %+v, want the single healthy record", cat)
	}
}

func TestRefreshRejectsBadRange(t *testing.T) {
	collector := NewCollector()
	if _, err := collector.Refresh(context.Background(), 0, pool.New(1)); err == nil {
		t.Error("expected error for non-positive max index")
	}
}
