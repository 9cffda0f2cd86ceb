package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var storeFixture = Catalog{
	{Country: "Italy", Image: "https://example.com/1003.jpg", Map: "https://maps.example.com/a", Region: "Tuscany"},
	{Country: "", Image: "https://example.com/1004.jpg", Map: "https://maps.example.com/b", Region: ""},
	{Country: "Chile", Image: "https://example.com/1005.jpg", Map: "https://maps.example.com/c", Region: "Atacama"},
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthview.json")

	if err := Save(path, storeFixture); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != len(storeFixture) {
		t.Fatalf("round trip returned %d records, want %d", len(got), len(storeFixture))
	}
	for i := range got {
		if got[i] != storeFixture[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], storeFixture[i])
		}
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthview.parquet")

	if err := Save(path, storeFixture); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != len(storeFixture) {
		t.Fatalf("round trip returned %d records, want %d", len(got), len(storeFixture))
	}
	for i := range got {
		if got[i] != storeFixture[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], storeFixture[i])
		}
	}
}

func TestSaveReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthview.json")

	if err := Save(path, storeFixture); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := Save(path, storeFixture[:1]); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("refresh should fully replace the catalog, got %d records", len(got))
	}
}

func TestJSONIsExternalFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthview.json")
	if err := Save(path, storeFixture[:1]); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, field := range []string{`"country"`, `"image"`, `"map"`, `"region"`} {
		if !strings.Contains(text, field) {
			t.Errorf("serialized catalog missing field %s", field)
		}
	}
	if !strings.HasPrefix(strings.TrimSpace(text), "[") {
		t.Error("serialized catalog is not a JSON array")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed catalog")
	}

	if _, err := Load(filepath.Join(dir, "catalog.csv")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

// A damaged parquet file must surface an error rather than a silently
// truncated catalog.
func TestLoadCorruptParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthview.parquet")
	if err := Save(path, storeFixture); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt parquet file")
	}
}
