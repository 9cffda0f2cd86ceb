package cmd

import (
	"github.com/PDillis/earthview/internal/catalog"
	"github.com/PDillis/earthview/internal/pool"
	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	var maxIndex int
	var workers int
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the image catalog from the Earth View gallery",
		Long: `Scrapes every gallery page up to the given identifier and writes a
fresh catalog, fully replacing any existing file. Identifiers that do
not resolve are skipped silently; the highest known identifier grows
over time, so raise --max-index as new imagery is published.

The catalog format follows the file extension: .json for the standard
interchange format, .parquet for the columnar form.`,
		Example: `  # Refresh the default catalog
  earthview refresh

  # Try a larger identifier range with more workers
  earthview refresh --max-index 25000 --workers 128

  # Write the catalog as Parquet
  earthview refresh --catalog earthview.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			collector := catalog.NewCollector()

			cat, err := collector.Refresh(cmd.Context(), maxIndex, pool.New(workers))
			if err != nil {
				return err
			}
			return catalog.Save(catalogPath, cat)
		},
	}

	cmd.Flags().IntVar(&maxIndex, "max-index", 20000, "Highest gallery identifier to try")
	cmd.Flags().IntVar(&workers, "workers", 64, "Number of parallel fetch workers")
	cmd.Flags().StringVar(&catalogPath, "catalog", "earthview.json", "Path to write the catalog to (.json or .parquet)")

	return cmd
}
