package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/PDillis/earthview/internal/archive"
	"github.com/PDillis/earthview/internal/tile"
	"github.com/spf13/cobra"
)

func newTileCmd() *cobra.Command {
	var sourceDir string
	var outputDir string
	var size int
	var workers int
	var makeZip bool
	var reportPath string

	cmd := &cobra.Command{
		Use:   "tile",
		Short: "Cut downloaded images into overlapping square tiles",
		Long: `Cuts every image in the source directory into square tiles of the
given size. Tiles overlap just enough to cover the full image: the
first tile of each row and column starts at the image origin and the
last sits flush with the opposite edge. Tiles are named
<id>_cropped<index> with a row-major index.

Images smaller than the tile size on either axis are skipped with a
warning. Source images are never modified.`,
		Example: `  # 1024px tiles (an 1800x1200 image yields 6)
  earthview tile --size 1024

  # 512px tiles into a custom directory, archived
  earthview tile --size 512 --output tiles/512 --zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = filepath.Join("datasets", "earth_view", fmt.Sprintf("tiled_%d", size))
			}

			summary, err := tile.Transform(cmd.Context(), tile.Options{
				SourceDir: sourceDir,
				OutDir:    outputDir,
				Size:      size,
				Workers:   workers,
			})
			if err != nil {
				return err
			}

			summary.Print()
			if reportPath != "" {
				if err := summary.SaveYAML(reportPath); err != nil {
					return err
				}
			}

			if makeZip {
				return archive.Zip(outputDir, outputDir+".zip")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", filepath.Join("images", "all", "full_resolution"), "Directory of full-resolution images")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory for tiles (default datasets/earth_view/tiled_<size>)")
	cmd.Flags().IntVar(&size, "size", 1024, "Tile side length in pixels")
	cmd.Flags().IntVar(&workers, "workers", 8, "Number of parallel tiling workers")
	cmd.Flags().BoolVar(&makeZip, "zip", false, "Archive the tiled directory as a zip file")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML batch report to this path")

	return cmd
}
