// Package tile cuts rectangular images into overlapping square tiles
// that exactly cover the image extent.
package tile

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/PDillis/earthview/internal/pool"
	"github.com/PDillis/earthview/internal/report"
	"github.com/disintegration/imaging"
)

// Options configures a batch tiling run over a directory of images.
type Options struct {
	SourceDir string
	OutDir    string
	Size      int // tile side length in pixels
	Workers   int
}

// Positions returns how many tile positions one axis needs so that
// tiles of the given size cover an extent. An extent no larger than the
// tile needs a single position; otherwise the extra positions are the
// extent/size ratio rounded half-up, so positions(extent, size) =
// floor(extent/size + 0.5) + 1. Half-up keeps exact half ratios (for
// example 1.5) rounding toward more coverage.
func Positions(extent, size int) int {
	ratio := float64(extent) / float64(size)
	if ratio <= 1 {
		return 1
	}
	return int(math.Floor(ratio+0.5)) + 1
}

// Grid returns the tile grid for a w x h image and a tile size.
func Grid(w, h, size int) (rows, cols int) {
	return Positions(h, size), Positions(w, size)
}

// Offsets returns the n tile origins along one axis. The first origin
// is always 0 and the last always extent-size, so the outer tiles sit
// flush with the image edges; interior origins are evenly spaced at
// round(i * (extent-size)/(n-1)), producing overlap rather than gaps.
// No origin ever places a tile outside [0, extent].
func Offsets(extent, size, n int) []int {
	if n <= 1 {
		return []int{0}
	}

	stride := float64(extent-size) / float64(n-1)
	offsets := make([]int, n)
	for i := range offsets {
		off := int(math.Round(float64(i) * stride))
		if off+size > extent {
			off = extent - size
		}
		offsets[i] = off
	}
	return offsets
}

// Transform tiles every image in opts.SourceDir into opts.OutDir,
// processing images in parallel. Images below the tile size on either
// axis are skipped with a warning and undecodable images fail
// individually; both leave the batch running. An unusable output
// directory is a setup error.
func Transform(ctx context.Context, opts Options) (*report.Summary, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", opts.Size)
	}

	paths, err := listImages(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	if err := ensureWritableDir(opts.OutDir); err != nil {
		return nil, err
	}

	slog.Info("Tiling images", "source", opts.SourceDir, "output", opts.OutDir,
		"size", opts.Size, "images", len(paths), "workers", opts.Workers)

	summary := report.New("Tiling")
	p := pool.New(opts.Workers)
	p.Run(ctx, len(paths), func(ctx context.Context, i int) {
		path := paths[i]
		tiles, err := tileImage(path, opts.OutDir, opts.Size)
		switch {
		case err != nil:
			slog.Warn("Failed to tile image", "image", path, "error", err)
			summary.Fail(filepath.Base(path), err)
		case tiles == 0:
			slog.Warn("Image smaller than tile size, skipping", "image", path, "size", opts.Size)
			summary.Skip(filepath.Base(path), fmt.Sprintf("smaller than %dpx on one axis", opts.Size))
		default:
			slog.Debug("Tiled image", "image", path, "tiles", tiles)
			summary.Complete()
		}
	})

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// tileImage writes every tile of a single image and returns how many it
// wrote. A zero count with nil error means the image is too small to
// tile. The source file is never touched.
func tileImage(path, outDir string, size int) (int, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < size || h < size {
		return 0, nil
	}

	rows, cols := Grid(w, h, size)
	xs := Offsets(w, size, cols)
	ys := Offsets(h, size, rows)

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)

	index := 0
	for _, y := range ys {
		for _, x := range xs {
			crop := imaging.Crop(img, image.Rect(x, y, x+size, y+size))
			outPath := filepath.Join(outDir, fmt.Sprintf("%s_cropped%d%s", name, index, ext))
			if err := imaging.Save(crop, outPath); err != nil {
				return index, fmt.Errorf("failed to save tile %d: %w", index, err)
			}
			index++
		}
	}
	return index, nil
}

// listImages returns the decodable-looking image files directly inside
// dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// ensureWritableDir creates dir if needed and verifies files can be
// created in it, so the batch aborts before any per-image work.
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
