package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/consumethetangible/music-2025/internal/artwork"
)

var (
	convertForce   bool
	convertWorkers int
)

// convertCmd writes WebP and AVIF siblings for the site's images
var convertCmd = &cobra.Command{
	Use:   "convert-images [dir]",
	Short: "Write .webp and .avif versions of every JPEG and PNG",
	Long: `Walk a directory (default: the site directory) and write a .webp and an
.avif next to every .jpg, .jpeg and .png. node_modules and .git are skipped,
existing files are kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := settings.SiteDir
		if len(args) == 1 {
			root = args[0]
		}

		opts := settings.ConvertOptions()
		opts.Force = convertForce
		if cmd.Flags().Changed("workers") {
			opts.Workers = convertWorkers
		}

		ctx, cancel := signalContext()
		defer cancel()

		svc := artwork.NewService(nil, settings.ArtworkOptions(), logger)
		report, err := svc.ConvertTree(ctx, root, opts)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d images: %d written, %d skipped, %d failed\n",
			report.Sources, report.Written, report.Skipped, report.Failed)
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "Rewrite existing variants")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 4, "Images converted in parallel (overrides config)")
}
