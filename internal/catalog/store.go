package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Save writes the catalog to path, fully replacing any existing file.
// The format is chosen by extension: .json writes the external
// interchange format (an indented JSON array of records), .parquet
// writes a Parquet file with the same fields.
func Save(path string, cat Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return saveJSON(path, cat)
	case ".parquet":
		return saveParquet(path, cat)
	default:
		return fmt.Errorf("unsupported catalog format: %s (supported: .json, .parquet)", ext)
	}
}

// Load reads a catalog from path, dispatching on extension like Save.
func Load(path string) (Catalog, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadJSON(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s (supported: .json, .parquet)", ext)
	}
}

func saveJSON(path string, cat Catalog) error {
	data, err := json.MarshalIndent(cat, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated catalog.
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move catalog into place: %w", err)
	}

	slog.Info("Saved catalog", "path", path, "records", len(cat))
	return nil
}

func loadJSON(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return cat, nil
}

func saveParquet(path string, cat Catalog) error {
	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(cat); err != nil {
		writer.Close()
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close parquet file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move catalog into place: %w", err)
	}

	slog.Info("Saved catalog", "path", path, "records", len(cat))
	return nil
}

func loadParquet(path string) (Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var cat Catalog
	rows := make([]Record, 128) // Read in batches
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			cat = append(cat, rows[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return cat, nil
}
