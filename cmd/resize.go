package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/PDillis/earthview/internal/tile"
	"github.com/spf13/cobra"
)

func newResizeCmd() *cobra.Command {
	var sourceDir string
	var outputDir string
	var size int
	var workers int

	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Resize square tiles to a target resolution",
		Long: `Resizes every square image in the source directory to the target
size with linear filtering. Non-square images are skipped with a
warning; resize tiles before changing their resolution.`,
		Example: `  # Downscale 1024px tiles to 512px
  earthview resize --source datasets/earth_view/tiled_1024 --size 512`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = filepath.Join("datasets", "earth_view", "resized", fmt.Sprintf("%d", size))
			}

			summary, err := tile.Resize(cmd.Context(), tile.ResizeOptions{
				SourceDir: sourceDir,
				OutDir:    outputDir,
				Size:      size,
				Workers:   workers,
			})
			if err != nil {
				return err
			}
			summary.Print()
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", filepath.Join("datasets", "earth_view", "tiled_1024"), "Directory of square images")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory for resized images (default datasets/earth_view/resized/<size>)")
	cmd.Flags().IntVar(&size, "size", 1024, "Target side length in pixels")
	cmd.Flags().IntVar(&workers, "workers", 8, "Number of parallel resize workers")

	return cmd
}
