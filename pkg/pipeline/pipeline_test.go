package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/radioguide/pkg/config"
	"github.com/matzehuels/radioguide/pkg/crop"
	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
	"github.com/matzehuels/radioguide/pkg/fonts"
	"github.com/matzehuels/radioguide/pkg/freqs"
	"github.com/matzehuels/radioguide/pkg/layout"
)

// noFonts forces the embedded font so results do not depend on the host.
var noFonts = []string{"missing-radioguide-font.ttf"}

func newTestRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeTable(t *testing.T, dir string, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Frequency,Station ID\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d.%d,Camp %d\n", 88+i, i%10, i)
	}
	path := filepath.Join(dir, "freqs.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGuideOptionsDefaults(t *testing.T) {
	var o GuideOptions
	o.SetDefaults()

	if o.Image != DefaultGuideImage || o.Table != DefaultTable || o.Output != DefaultGuideOutput {
		t.Errorf("paths = %q, %q, %q", o.Image, o.Table, o.Output)
	}
	if o.Title != layout.DefaultTitle {
		t.Errorf("Title = %q, want %q", o.Title, layout.DefaultTitle)
	}
	if o.Color != layout.DefaultColor {
		t.Errorf("Color = %v, want %v", o.Color, layout.DefaultColor)
	}
	if len(o.Fonts) != len(fonts.DefaultCandidates) {
		t.Errorf("Fonts = %v, want defaults", o.Fonts)
	}
	if o.Quality != 95 {
		t.Errorf("Quality = %d, want 95", o.Quality)
	}
	if o.Columns.Frequency != "Frequency" || o.Columns.Station != "Station ID" || o.Columns.Delimiter != ',' {
		t.Errorf("Columns = %+v", o.Columns)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestGuideOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    GuideOptions
		wantErr bool
	}{
		{"defaults", GuideOptions{}, false},
		{"png output", GuideOptions{Output: "guide.png"}, false},
		{"bad quality", GuideOptions{Quality: 101}, true},
		{"negative quality", GuideOptions{Quality: -1}, true},
		{"unknown format", GuideOptions{Output: "guide.webp"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.SetDefaults()
			if err := tt.opts.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGuideOptionsApplyConfig(t *testing.T) {
	o := GuideOptions{Title: "keep me", Output: "flag.jpg"}
	err := o.ApplyConfig(config.Guide{
		Table:         "stations.tsv",
		Color:         "#ff000080",
		Backdrop:      "#00000040",
		Fonts:         []string{"DejaVuSans.ttf"},
		StationColumn: "Name",
		Delimiter:     "\t",
		Quality:       80,
	})
	if err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}

	if o.Title != "keep me" || o.Output != "flag.jpg" {
		t.Errorf("unset config values overwrote options: %+v", o)
	}
	if o.Table != "stations.tsv" || o.Quality != 80 || o.Columns.Station != "Name" || o.Columns.Delimiter != '\t' {
		t.Errorf("config values not applied: %+v", o)
	}
	if o.Color != (color.RGBA{R: 128, A: 128}) {
		t.Errorf("Color = %v, want premultiplied half red", o.Color)
	}
	if o.Backdrop != (color.NRGBA{A: 64}) {
		t.Errorf("Backdrop = %v", o.Backdrop)
	}

	if err := o.ApplyConfig(config.Guide{Color: "nope"}); !rgerrors.Is(err, rgerrors.ErrCodeInvalidConfig) {
		t.Errorf("ApplyConfig(bad color) error = %v", err)
	}
}

func TestResizeOptionsDefaults(t *testing.T) {
	var o ResizeOptions
	o.SetDefaults()

	if o.Input != "the-man.jpg" || o.Output != "the-man-5x3.jpg" {
		t.Errorf("paths = %q -> %q", o.Input, o.Output)
	}
	if o.Aspect != crop.Landscape5x3 || o.Width != 1500 || o.Quality != 95 {
		t.Errorf("options = %+v", o)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestResizeOptionsApplyConfig(t *testing.T) {
	var o ResizeOptions
	if err := o.ApplyConfig(config.Resize{Aspect: "3x5", Width: 600}); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	o.SetDefaults()
	if o.Aspect != crop.Portrait3x5 || o.Width != 600 || o.Output != "the-man-3x5.jpg" {
		t.Errorf("options = %+v", o)
	}

	if err := o.ApplyConfig(config.Resize{Aspect: "wide"}); !rgerrors.Is(err, rgerrors.ErrCodeInvalidAspect) {
		t.Errorf("ApplyConfig(bad aspect) error = %v", err)
	}
}

func TestResizeOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ResizeOptions
		wantErr bool
	}{
		{"defaults", ResizeOptions{}, false},
		{"negative width", ResizeOptions{Width: -5}, true},
		{"width too small for aspect", ResizeOptions{Width: 1, Aspect: crop.Aspect{W: 5, H: 3}}, true},
		{"bad aspect", ResizeOptions{Aspect: crop.Aspect{W: -1, H: 3}}, true},
		{"bad quality", ResizeOptions{Quality: 500}, true},
		{"bad output", ResizeOptions{Output: "photo.heic"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.SetDefaults()
			if err := tt.opts.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResizeOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		aspect crop.Aspect
		want   string
	}{
		{"the-man.jpg", crop.Portrait3x5, "the-man-3x5.jpg"},
		{"the-man.jpg", crop.Landscape5x3, "the-man-5x3.jpg"},
		{"photos/sunrise.png", crop.Aspect{W: 16, H: 9}, "photos/sunrise-16x9.jpg"},
		{"noext", crop.Landscape5x3, "noext-5x3.jpg"},
	}

	for _, tt := range tests {
		if got := ResizeOutputPath(tt.input, tt.aspect); got != tt.want {
			t.Errorf("ResizeOutputPath(%q, %v) = %q, want %q", tt.input, tt.aspect, got, tt.want)
		}
	}
}

func TestRunnerResize(t *testing.T) {
	dir := t.TempDir()
	input := writeImage(t, dir, "the-man.jpg", 600, 400)

	res, err := newTestRunner().Resize(context.Background(), ResizeOptions{
		Input: input,
		Width: 300,
	})
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	if res.Output != filepath.Join(dir, "the-man-5x3.jpg") {
		t.Errorf("Output = %q", res.Output)
	}
	out, err := imaging.Open(res.Output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if out.Bounds().Size() != image.Pt(300, 180) {
		t.Errorf("output size = %v, want 300x180", out.Bounds().Size())
	}
	if res.Plan.Sides || res.Plan.Trimmed != 40 {
		t.Errorf("Plan = %+v, want 40px trimmed from top/bottom", res.Plan)
	}
}

func TestRunnerGuide(t *testing.T) {
	dir := t.TempDir()
	opts := GuideOptions{
		Image:  writeImage(t, dir, "the-man-5x3.jpg", 1500, 900),
		Table:  writeTable(t, dir, 20),
		Output: filepath.Join(dir, "radio_guide_2025.jpg"),
		Fonts:  noFonts,
	}

	res, err := newTestRunner().Guide(context.Background(), opts)
	if err != nil {
		t.Fatalf("Guide() error = %v", err)
	}

	if res.Entries != 20 {
		t.Errorf("Entries = %d, want 20", res.Entries)
	}
	if res.Font != fonts.EmbeddedName {
		t.Errorf("Font = %q, want embedded", res.Font)
	}
	if got := len(res.Layout.Commands); got != 41 {
		t.Errorf("len(Commands) = %d, want 41", got)
	}
	if res.Layout.Geometry.Dropped != 0 {
		t.Errorf("Dropped = %d, want 0", res.Layout.Geometry.Dropped)
	}

	title := res.Layout.Commands[0]
	center := title.X + res.Layout.Geometry.Title.W/2
	if d := center - 750; d < -1 || d > 1 {
		t.Errorf("title center = %d, want 750 ±1", center)
	}

	out, err := imaging.Open(res.Output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if out.Bounds().Size() != image.Pt(1500, 900) {
		t.Errorf("output size = %v, want 1500x900", out.Bounds().Size())
	}
}

func TestRunnerGuideEmptyTable(t *testing.T) {
	dir := t.TempDir()
	res, err := newTestRunner().Guide(context.Background(), GuideOptions{
		Image:  writeImage(t, dir, "bg.png", 600, 400),
		Table:  writeTable(t, dir, 0),
		Output: filepath.Join(dir, "guide.png"),
		Fonts:  noFonts,
	})
	if err != nil {
		t.Fatalf("Guide() error = %v", err)
	}
	if len(res.Layout.Commands) != 1 {
		t.Errorf("len(Commands) = %d, want title only", len(res.Layout.Commands))
	}
}

func TestRunnerErrors(t *testing.T) {
	dir := t.TempDir()
	bg := writeImage(t, dir, "bg.jpg", 300, 180)
	table := writeTable(t, dir, 4)

	tests := []struct {
		name string
		run  func(*Runner) error
		code rgerrors.Code
	}{
		{
			name: "missing image",
			run: func(r *Runner) error {
				_, err := r.Guide(context.Background(), GuideOptions{Image: filepath.Join(dir, "nope.jpg"), Table: table, Fonts: noFonts})
				return err
			},
			code: rgerrors.ErrCodeFileNotFound,
		},
		{
			name: "missing table",
			run: func(r *Runner) error {
				_, err := r.Guide(context.Background(), GuideOptions{Image: bg, Table: filepath.Join(dir, "nope.csv"), Fonts: noFonts})
				return err
			},
			code: rgerrors.ErrCodeFileNotFound,
		},
		{
			name: "bad table",
			run: func(r *Runner) error {
				_, err := r.Guide(context.Background(), GuideOptions{
					Image:   bg,
					Table:   table,
					Columns: freqs.Columns{Frequency: "Hz"},
					Fonts:   noFonts,
				})
				return err
			},
			code: rgerrors.ErrCodeInvalidTable,
		},
		{
			name: "missing resize input",
			run: func(r *Runner) error {
				_, err := r.Resize(context.Background(), ResizeOptions{Input: filepath.Join(dir, "nope.jpg")})
				return err
			},
			code: rgerrors.ErrCodeFileNotFound,
		},
		{
			name: "invalid options",
			run: func(r *Runner) error {
				_, err := r.Resize(context.Background(), ResizeOptions{Input: bg, Quality: 400})
				return err
			},
			code: rgerrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(newTestRunner())
			if !rgerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestRunnerCanceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner().Guide(ctx, GuideOptions{
		Image:  writeImage(t, dir, "bg.jpg", 300, 180),
		Table:  writeTable(t, dir, 2),
		Output: filepath.Join(dir, "out.jpg"),
		Fonts:  noFonts,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Guide() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.jpg")); statErr == nil {
		t.Error("canceled run should not write output")
	}
}
