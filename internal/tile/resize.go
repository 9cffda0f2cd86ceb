package tile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/PDillis/earthview/internal/pool"
	"github.com/PDillis/earthview/internal/report"
	"github.com/disintegration/imaging"
)

// ResizeOptions configures a batch resize of square images.
type ResizeOptions struct {
	SourceDir string
	OutDir    string
	Size      int // target side length in pixels
	Workers   int
}

// Resize scales every square image in opts.SourceDir to Size x Size
// with linear filtering. Non-square images are skipped with a warning
// and outputs that already exist are left alone.
func Resize(ctx context.Context, opts ResizeOptions) (*report.Summary, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %d", opts.Size)
	}

	paths, err := listImages(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	if err := ensureWritableDir(opts.OutDir); err != nil {
		return nil, err
	}

	slog.Info("Resizing images", "source", opts.SourceDir, "output", opts.OutDir,
		"size", opts.Size, "images", len(paths), "workers", opts.Workers)

	summary := report.New("Resizing")
	p := pool.New(opts.Workers)
	p.Run(ctx, len(paths), func(ctx context.Context, i int) {
		path := paths[i]
		name := filepath.Base(path)

		ext := filepath.Ext(path)
		outPath := filepath.Join(opts.OutDir,
			fmt.Sprintf("%s_resized%d%s", strings.TrimSuffix(name, ext), opts.Size, ext))
		if _, err := os.Stat(outPath); err == nil {
			summary.Skip(name, "already resized")
			return
		}

		img, err := imaging.Open(path)
		if err != nil {
			slog.Warn("Failed to decode image", "image", path, "error", err)
			summary.Fail(name, fmt.Errorf("failed to decode image: %w", err))
			return
		}

		bounds := img.Bounds()
		if bounds.Dx() != bounds.Dy() {
			slog.Warn("Not a square image, skipping", "image", path,
				"width", bounds.Dx(), "height", bounds.Dy())
			summary.Skip(name, fmt.Sprintf("not square: %dx%d", bounds.Dx(), bounds.Dy()))
			return
		}

		resized := imaging.Resize(img, opts.Size, opts.Size, imaging.Linear)
		if err := imaging.Save(resized, outPath); err != nil {
			slog.Warn("Failed to save resized image", "image", path, "error", err)
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
