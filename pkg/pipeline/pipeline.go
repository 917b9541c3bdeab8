// Package pipeline runs the radioguide image jobs end to end.
//
// Two jobs are provided, each usable from the CLI or from Go code:
//
//  1. Resize: open a photo, center-crop it to a print aspect ratio, resample
//     it to the target width and save it.
//  2. Guide: open the background, read the frequency table, compute the
//     overlay layout, draw it and save the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//
//	photo, err := runner.Resize(ctx, pipeline.ResizeOptions{Input: "the-man.jpg"})
//	guide, err := runner.Guide(ctx, pipeline.GuideOptions{Image: photo.Output})
//
// Options left at their zero value take the file names and print settings
// of the 2025 guide (see [GuideOptions.SetDefaults] and [ResizeOptions.SetDefaults]).
package pipeline

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/radioguide/pkg/config"
	"github.com/matzehuels/radioguide/pkg/crop"
	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
	"github.com/matzehuels/radioguide/pkg/fonts"
	"github.com/matzehuels/radioguide/pkg/freqs"
	"github.com/matzehuels/radioguide/pkg/layout"
	"github.com/matzehuels/radioguide/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultGuideImage is the 5x3 photo produced by the default resize.
	DefaultGuideImage = "the-man-5x3.jpg"

	// DefaultTable is the frequency table next to the photo.
	DefaultTable = "freqs.csv"

	// DefaultGuideOutput is where the finished guide is written.
	DefaultGuideOutput = "radio_guide_2025.jpg"

	// DefaultResizeInput is the unprocessed source photo.
	DefaultResizeInput = "the-man.jpg"

	// DefaultWidth is the output width of a resize (5" at 300 DPI).
	DefaultWidth = crop.DefaultWidth

	// DefaultQuality is the JPEG quality for every output.
	DefaultQuality = render.DefaultQuality
)

// DefaultAspect is the print ratio the guide is laid out for.
var DefaultAspect = crop.Landscape5x3

// =============================================================================
// Guide Options
// =============================================================================

// GuideOptions configures a guide run.
type GuideOptions struct {
	Image  string // background photo
	Table  string // frequency table
	Output string

	Title    string
	Color    color.RGBA  // zero value selects layout.DefaultColor
	Backdrop color.NRGBA // fill behind the text, transparent by default
	Fonts    []string    // font fallback chain, nil selects fonts.DefaultCandidates
	Columns  freqs.Columns
	Quality  int
}

// SetDefaults fills unset fields.
func (o *GuideOptions) SetDefaults() {
	if o.Image == "" {
		o.Image = DefaultGuideImage
	}
	if o.Table == "" {
		o.Table = DefaultTable
	}
	if o.Output == "" {
		o.Output = DefaultGuideOutput
	}
	if o.Title == "" {
		o.Title = layout.DefaultTitle
	}
	if o.Color == (color.RGBA{}) {
		o.Color = layout.DefaultColor
	}
	if o.Fonts == nil {
		o.Fonts = fonts.DefaultCandidates
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
	d := freqs.DefaultColumns()
	if o.Columns.Frequency == "" {
		o.Columns.Frequency = d.Frequency
	}
	if o.Columns.Station == "" {
		o.Columns.Station = d.Station
	}
	if o.Columns.Delimiter == 0 {
		o.Columns.Delimiter = d.Delimiter
	}
}

// Validate checks the options after SetDefaults.
func (o *GuideOptions) Validate() error {
	if err := validateQuality(o.Quality); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

// ApplyConfig copies the non-empty values of a config file section.
func (o *GuideOptions) ApplyConfig(c config.Guide) error {
	setString(&o.Image, c.Image)
	setString(&o.Table, c.Table)
	setString(&o.Output, c.Output)
	setString(&o.Title, c.Title)
	setString(&o.Columns.Frequency, c.FrequencyColumn)
	setString(&o.Columns.Station, c.StationColumn)
	if r := c.DelimiterRune(); r != 0 {
		o.Columns.Delimiter = r
	}
	if len(c.Fonts) > 0 {
		o.Fonts = c.Fonts
	}
	if c.Quality != 0 {
		o.Quality = c.Quality
	}
	if c.Color != "" {
		nc, err := config.ParseColor(c.Color)
		if err != nil {
			return rgerrors.Wrap(rgerrors.ErrCodeInvalidConfig, err, "guide.color")
		}
		o.Color = ToRGBA(nc)
	}
	if c.Backdrop != "" {
		nc, err := config.ParseColor(c.Backdrop)
		if err != nil {
			return rgerrors.Wrap(rgerrors.ErrCodeInvalidConfig, err, "guide.backdrop")
		}
		o.Backdrop = nc
	}
	return nil
}

// ToRGBA converts a straight-alpha color to the premultiplied form used by
// layout commands.
func ToRGBA(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// =============================================================================
// Resize Options
// =============================================================================

// ResizeOptions configures a resize run.
type ResizeOptions struct {
	Input   string
	Output  string // empty derives "<input>-<aspect>.jpg"
	Aspect  crop.Aspect
	Width   int
	Quality int
}

// SetDefaults fills unset fields.
func (o *ResizeOptions) SetDefaults() {
	if o.Input == "" {
		o.Input = DefaultResizeInput
	}
	if o.Aspect == (crop.Aspect{}) {
		o.Aspect = DefaultAspect
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
	if o.Output == "" {
		o.Output = ResizeOutputPath(o.Input, o.Aspect)
	}
}

// Validate checks the options after SetDefaults.
func (o *ResizeOptions) Validate() error {
	if o.Aspect.W <= 0 || o.Aspect.H <= 0 {
		return rgerrors.New(rgerrors.ErrCodeInvalidAspect, "invalid aspect %s", o.Aspect)
	}
	if o.Width <= 0 {
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "width must be positive, got %d", o.Width)
	}
	if o.Aspect.Size(o.Width).Y <= 0 {
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "width %d is too small for aspect %s", o.Width, o.Aspect)
	}
	if err := validateQuality(o.Quality); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

// ApplyConfig copies the non-empty values of a config file section.
func (o *ResizeOptions) ApplyConfig(c config.Resize) error {
	setString(&o.Input, c.Input)
	setString(&o.Output, c.Output)
	if c.Aspect != "" {
		a, err := crop.ParseAspect(c.Aspect)
		if err != nil {
			return err
		}
		o.Aspect = a
	}
	if c.Width != 0 {
		o.Width = c.Width
	}
	if c.Quality != 0 {
		o.Quality = c.Quality
	}
	return nil
}

// ResizeOutputPath derives the default output name, e.g. the-man.jpg and
// 3x5 give the-man-3x5.jpg.
func ResizeOutputPath(input string, a crop.Aspect) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s-%s.jpg", base, a)
}

// =============================================================================
// Results
// =============================================================================

// GuideResult describes a finished guide run.
type GuideResult struct {
	Output  string
	Canvas  layout.Canvas
	Entries int
	Layout  layout.Result
	Font    string // name of the font the text was drawn with
	Stats   Stats
}

// ResizeResult describes a finished resize run.
type ResizeResult struct {
	Output string
	Plan   crop.Plan
	Stats  Stats
}

// Stats contains stage timings.
type Stats struct {
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
	SaveTime   time.Duration
}

// Total returns the sum of all stage timings.
func (s Stats) Total() time.Duration {
	return s.LoadTime + s.LayoutTime + s.RenderTime + s.SaveTime
}

// =============================================================================
// Validation Helpers
// =============================================================================

func validateQuality(q int) error {
	if q < 1 || q > 100 {
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "quality must be between 1 and 100, got %d", q)
	}
	return nil
}

func validateOutput(path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "unsupported output format: %s (use .jpg or .png)", path)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
