package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radioguide/pkg/crop"
	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
	"github.com/matzehuels/radioguide/pkg/fonts"
	"github.com/matzehuels/radioguide/pkg/freqs"
	"github.com/matzehuels/radioguide/pkg/layout"
	"github.com/matzehuels/radioguide/pkg/render"
)

// Runner executes pipeline jobs. It holds no per-run state, so one Runner
// can serve several runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger selects log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Guide overlays the frequency table on the background and saves the
// result. Failures are terminal; a failure while saving may leave a
// partially written output file.
func (r *Runner) Guide(ctx context.Context, opts GuideOptions) (*GuideResult, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var stats Stats

	// Stage 1: Load
	start := time.Now()
	bg, err := render.Open(opts.Image)
	if err != nil {
		return nil, err
	}
	canvas := layout.Canvas{Width: bg.Bounds().Dx(), Height: bg.Bounds().Dy()}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidInput, "%s: empty image", opts.Image)
	}
	r.Logger.Debug("loaded background", "path", opts.Image, "width", canvas.Width, "height", canvas.Height)

	entries, err := freqs.Load(opts.Table, opts.Columns)
	if err != nil {
		return nil, err
	}
	stats.LoadTime = time.Since(start)
	r.Logger.Info("loaded frequencies", "table", opts.Table, "entries", len(entries), "duration", stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	start = time.Now()
	font := fonts.Load(opts.Fonts, func(name string, err error) {
		r.Logger.Debug("font unavailable", "font", name, "err", err)
	})
	if font.IsEmbedded() {
		r.Logger.Warn("no configured font could be loaded, using embedded font", "tried", len(opts.Fonts))
	} else {
		r.Logger.Debug("using font", "font", font.Name, "path", font.Path)
	}

	ts := render.NewTypesetter(font)
	titleSize, freqSize, stationSize := layout.FontSizes(canvas)
	if err := ts.Prepare(titleSize, freqSize, stationSize); err != nil {
		return nil, err
	}

	res := layout.Compute(entries, canvas, ts, layout.Options{Title: opts.Title, Color: opts.Color})
	stats.LayoutTime = time.Since(start)
	r.Logger.Info("computed layout",
		"rows", res.Geometry.RowsPerColumn,
		"row_height", res.Geometry.RowHeight,
		"centered", res.Geometry.Centered,
		"duration", stats.LayoutTime)
	if res.Geometry.Dropped > 0 {
		r.Logger.Warn("table does not fit, rows dropped", "dropped", res.Geometry.Dropped, "entries", len(entries))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	start = time.Now()
	out, err := render.Draw(bg, res, ts, render.Style{Backdrop: opts.Backdrop})
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeProcessing, err, "draw guide")
	}
	stats.RenderTime = time.Since(start)

	// Stage 4: Save
	start = time.Now()
	if err := render.Save(opts.Output, out, opts.Quality); err != nil {
		return nil, err
	}
	stats.SaveTime = time.Since(start)
	r.Logger.Info("saved guide", "output", opts.Output, "quality", opts.Quality, "duration", stats.SaveTime)

	return &GuideResult{
		Output:  opts.Output,
		Canvas:  canvas,
		Entries: len(entries),
		Layout:  res,
		Font:    font.Name,
		Stats:   stats,
	}, nil
}

// Resize center-crops the input to the aspect ratio, resamples it to the
// target width and saves the result.
func (r *Runner) Resize(ctx context.Context, opts ResizeOptions) (*ResizeResult, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var stats Stats

	start := time.Now()
	img, err := render.Open(opts.Input)
	if err != nil {
		return nil, err
	}
	stats.LoadTime = time.Since(start)

	size := opts.Aspect.Size(opts.Width)
	orientation := "landscape"
	if opts.Aspect.Portrait() {
		orientation = "portrait"
	}
	r.Logger.Info("resizing",
		"input", opts.Input,
		"current", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"target", fmt.Sprintf("%dx%d", size.X, size.Y),
		"aspect", opts.Aspect.String()+" "+orientation)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	out, plan := crop.Fit(img, opts.Aspect, opts.Width)
	stats.RenderTime = time.Since(start)
	if plan.Sides {
		r.Logger.Info("cropped width", "removed_px", plan.Trimmed, "from", "sides")
	} else {
		r.Logger.Info("cropped height", "removed_px", plan.Trimmed, "from", "top/bottom")
	}

	start = time.Now()
	if err := render.Save(opts.Output, out, opts.Quality); err != nil {
		return nil, err
	}
	stats.SaveTime = time.Since(start)
	r.Logger.Info("saved image", "output", opts.Output, "duration", stats.SaveTime)

	return &ResizeResult{Output: opts.Output, Plan: plan, Stats: stats}, nil
}
