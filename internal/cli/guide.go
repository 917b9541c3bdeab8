package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radioguide/pkg/config"
	"github.com/matzehuels/radioguide/pkg/fonts"
	"github.com/matzehuels/radioguide/pkg/pipeline"
)

// guideFlags holds the command-line flags for the guide command.
type guideFlags struct {
	image    string
	table    string
	output   string
	title    string
	color    string
	backdrop string
	fonts    []string
	quality  int
}

// guideCommand creates the guide command that overlays the frequency table.
func (c *CLI) guideCommand() *cobra.Command {
	var flags guideFlags

	cmd := &cobra.Command{
		Use:   "guide [image] [table]",
		Short: "Overlay the frequency table on a photo",
		Long: `Overlay a title and a two-column frequency table on a background photo.

The table is a CSV file with "Frequency" and "Station ID" columns. Text is
drawn in yellow, centered vertically below the title. Station names that do
not fit their column are shortened with "...".`,
		Example: `  radioguide guide
  radioguide guide the-man-5x3.jpg freqs.csv -o guide.jpg
  radioguide guide --title "Playa Radio" --font DejaVuSans.ttf`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := guideOptions(cmd, args, cfg, flags)
			if err != nil {
				return err
			}
			return c.runGuide(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&flags.image, "image", "i", pipeline.DefaultGuideImage, "background image")
	cmd.Flags().StringVarP(&flags.table, "table", "t", pipeline.DefaultTable, "frequency table (CSV)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", pipeline.DefaultGuideOutput, "output image (.jpg or .png)")
	cmd.Flags().StringVar(&flags.title, "title", "", "title text (default \"Black Rock Radio 2025\")")
	cmd.Flags().StringVar(&flags.color, "color", "", "text color as #rrggbb[aa] (default yellow)")
	cmd.Flags().StringVar(&flags.backdrop, "backdrop", "", "fill behind the table as #rrggbbaa (default transparent)")
	cmd.Flags().StringSliceVar(&flags.fonts, "font", nil, "font file or name to try, in order (repeatable)")
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", pipeline.DefaultQuality, "JPEG quality (1-100)")

	return cmd
}

// guideOptions merges config file values, positional arguments and flags
// that were set explicitly, in that order of precedence from low to high.
func guideOptions(cmd *cobra.Command, args []string, cfg *config.Config, flags guideFlags) (pipeline.GuideOptions, error) {
	var opts pipeline.GuideOptions
	if err := opts.ApplyConfig(cfg.Guide); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Image = args[0]
	}
	if len(args) > 1 {
		opts.Table = args[1]
	}

	// Flags only override when given; their defaults are the pipeline's.
	f := cmd.Flags()
	if f.Changed("image") {
		opts.Image = flags.image
	}
	if f.Changed("table") {
		opts.Table = flags.table
	}
	if f.Changed("output") {
		opts.Output = flags.output
	}
	if f.Changed("title") {
		opts.Title = flags.title
	}
	if f.Changed("font") {
		opts.Fonts = flags.fonts
	}
	if f.Changed("quality") {
		opts.Quality = flags.quality
	}
	if f.Changed("color") || f.Changed("backdrop") {
		override := config.Guide{}
		if f.Changed("color") {
			override.Color = flags.color
		}
		if f.Changed("backdrop") {
			override.Backdrop = flags.backdrop
		}
		if err := opts.ApplyConfig(override); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// runGuide executes the guide pipeline and prints a summary.
func (c *CLI) runGuide(ctx context.Context, opts pipeline.GuideOptions) error {
	prog := newProgress(c.Logger)

	res, err := c.newRunner().Guide(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Guide ready")

	g := res.Layout.Geometry
	c.printSuccess("Radio guide created")
	c.printFile(res.Output)
	c.printKeyValue("size", fmt.Sprintf("%dx%d", res.Canvas.Width, res.Canvas.Height))
	c.printKeyValue("stations", StyleNumber.Render(fmt.Sprint(res.Entries)))
	c.printKeyValue("font", res.Font)
	if res.Font == fonts.EmbeddedName {
		c.printInfo("no system font found, pass --font to pick one")
	}
	if g.Centered {
		c.printDetail("table centered below the title, %d rows per column", g.RowsPerColumn)
	} else {
		c.printDetail("table shrunk to fit, %d rows per column at %dpx", g.RowsPerColumn, g.RowHeight)
	}
	if g.Dropped > 0 {
		c.printWarning("%d stations did not fit and were left out", g.Dropped)
	}
	return nil
}
