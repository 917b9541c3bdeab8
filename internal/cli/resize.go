package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radioguide/pkg/crop"
	"github.com/matzehuels/radioguide/pkg/pipeline"
)

// resizeFlags holds the command-line flags for the resize command.
type resizeFlags struct {
	output  string
	aspect  string
	width   int
	quality int
}

// resizeCommand creates the resize command for print-ratio crops.
func (c *CLI) resizeCommand() *cobra.Command {
	var flags resizeFlags

	cmd := &cobra.Command{
		Use:   "resize [input]",
		Short: "Crop and resize a photo to a print aspect ratio",
		Long: `Center-crop a photo to a print aspect ratio and resample it to a fixed width.

The default 5x3 landscape at 1500px wide is a 5"x3" sticker at 300 DPI and
is the size the guide command is laid out for. Use --aspect 3x5 for a
portrait sticker.`,
		Example: `  radioguide resize
  radioguide resize the-man.jpg --aspect 3x5
  radioguide resize photo.png -a 16x9 -w 1920 -o wallpaper.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			var opts pipeline.ResizeOptions
			if err := opts.ApplyConfig(cfg.Resize); err != nil {
				return err
			}
			if len(args) > 0 {
				opts.Input = args[0]
			}

			f := cmd.Flags()
			if f.Changed("aspect") {
				a, err := crop.ParseAspect(flags.aspect)
				if err != nil {
					return err
				}
				opts.Aspect = a
			}
			if f.Changed("output") {
				opts.Output = flags.output
			}
			if f.Changed("width") {
				opts.Width = flags.width
			}
			if f.Changed("quality") {
				opts.Quality = flags.quality
			}
			return c.runResize(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&flags.aspect, "aspect", "a", pipeline.DefaultAspect.String(), "aspect ratio WxH (3x5 portrait, 5x3 landscape)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output image (default \"<input>-<aspect>.jpg\")")
	cmd.Flags().IntVarP(&flags.width, "width", "w", pipeline.DefaultWidth, "output width in pixels")
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", pipeline.DefaultQuality, "JPEG quality (1-100)")

	return cmd
}

// runResize executes the resize pipeline and prints a summary.
func (c *CLI) runResize(ctx context.Context, opts pipeline.ResizeOptions) error {
	prog := newProgress(c.Logger)

	res, err := c.newRunner().Resize(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Resize done")

	p := res.Plan
	c.printSuccess("Image ready for printing")
	c.printFile(res.Output)
	c.printKeyValue("source", fmt.Sprintf("%dx%d", p.Source.Dx(), p.Source.Dy()))
	c.printKeyValue("output", fmt.Sprintf("%dx%d", p.Size.X, p.Size.Y))
	if p.Trimmed == 0 {
		c.printDetail("already at the target ratio, nothing cropped")
	} else if p.Sides {
		c.printDetail("cropped %dpx from the sides", p.Trimmed)
	} else {
		c.printDetail("cropped %dpx from top/bottom", p.Trimmed)
	}
	c.printNextStep("Use it as the guide background", fmt.Sprintf("%s guide --image %s", appName, res.Output))
	return nil
}
