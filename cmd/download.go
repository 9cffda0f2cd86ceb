package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/PDillis/earthview/internal/archive"
	"github.com/PDillis/earthview/internal/catalog"
	"github.com/PDillis/earthview/internal/fetch"
	"github.com/spf13/cobra"
)

// downloadFlags are shared by the all and by-country subcommands.
type downloadFlags struct {
	catalogPath  string
	static       bool
	outputDir    string
	skipExisting bool
	makeZip      bool
	workers      int
	reportPath   string
}

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the images referenced by the catalog",
	}

	cmd.AddCommand(newDownloadAllCmd())
	cmd.AddCommand(newDownloadByCountryCmd())

	return cmd
}

func newDownloadAllCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Download every image into a single flat directory",
		Long: `Downloads every unique image URL in the catalog at full resolution
into <output>/all/full_resolution, named by identifier.`,
		Example: `  # Download with defaults
  earthview download all

  # Re-run cheaply, then archive the result
  earthview download all --skip-existing --zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, flags, false)
		},
	}

	addDownloadFlags(cmd, &flags)
	return cmd
}

func newDownloadByCountryCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "by-country",
		Short: "Download images grouped into one directory per country",
		Long: `Downloads every unique image URL in the catalog into
<output>/countries/full_resolution/<country>. Images with no country
label land in the "None" directory. Images already present from an
ungrouped download are copied locally instead of re-fetched.`,
		Example: `  # Group a previous flat download without re-fetching
  earthview download by-country --skip-existing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, flags, true)
		},
	}

	addDownloadFlags(cmd, &flags)
	return cmd
}

func addDownloadFlags(cmd *cobra.Command, flags *downloadFlags) {
	cmd.Flags().StringVar(&flags.catalogPath, "catalog", "earthview.json", "Path to the catalog file (.json or .parquet)")
	cmd.Flags().BoolVar(&flags.static, "static", false, "Use the published static catalog instead of a local file")
	cmd.Flags().StringVar(&flags.outputDir, "output", "images", "Root directory for downloaded images")
	cmd.Flags().BoolVar(&flags.skipExisting, "skip-existing", false, "Skip images already present on disk")
	cmd.Flags().BoolVar(&flags.makeZip, "zip", false, "Archive the downloaded tree as a zip file")
	cmd.Flags().IntVar(&flags.workers, "workers", 16, "Number of parallel download workers")
	cmd.Flags().StringVar(&flags.reportPath, "report", "", "Write a YAML batch report to this path")
}

func runDownload(cmd *cobra.Command, flags downloadFlags, byCountry bool) error {
	ctx := cmd.Context()
	fetcher := fetch.NewFetcher(flags.workers)

	var cat catalog.Catalog
	var err error
	if flags.static {
		cat, err = catalog.FetchStatic(ctx, fetcher.Client, catalog.StaticURL())
	} else {
		cat, err = catalog.LoadOrStatic(ctx, fetcher.Client, flags.catalogPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	summary, err := fetcher.Download(ctx, cat, fetch.Options{
		Dir:          flags.outputDir,
		ByCountry:    byCountry,
		SkipExisting: flags.skipExisting,
	})
	if err != nil {
		return err
	}

	summary.Print()
	if flags.reportPath != "" {
		if err := summary.SaveYAML(flags.reportPath); err != nil {
			return err
		}
	}

	if flags.makeZip {
		src := fetch.FlatDir(flags.outputDir)
		name := "all_imgs_full_resolution"
		if byCountry {
			src = fetch.CountriesDir(flags.outputDir)
			name = "imgs_by_country_full_resolution"
		}
		zipPath := filepath.Join(flags.outputDir, "zip_files",
			fmt.Sprintf("%s_%s.zip", name, time.Now().Format("2006-01-02")))
		return archive.Zip(src, zipPath)
	}
	return nil
}
