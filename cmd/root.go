package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "earthview",
		Short: "Earth View imagery harvester and tiling tool",
		Long: `Earthview harvests metadata and imagery from the Earth View gallery
and prepares the images as training data for generative models.

It maintains a catalog of image metadata, downloads the referenced
full-resolution images, and cuts them into overlapping square tiles.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newRefreshCmd())
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newTileCmd())
	cmd.AddCommand(newResizeCmd())

	return cmd
}
