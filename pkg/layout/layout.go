package layout

import (
	"image/color"
	"math"
)

// Fixed geometry ratios. See the package documentation for the full table.
const (
	BackgroundPadding = 20 // background inset from the left/right edges
	BackgroundTop     = 20 // background inset from the top edge

	TitleSizeRatio     = 0.06
	FrequencySizeRatio = 0.024
	StationSizeRatio   = 0.022

	TopMarginRatio        = 0.09
	TitleTableMarginRatio = 0.08
	BottomMarginRatio     = 0.05
	RowMarginRatio        = 0.035
	RowTextHeightRatio    = 0.03

	StationOffsetRatio = 0.08
	StationCharRatio   = 0.014 // approximate station glyph advance per width

	column1Inset  = 60
	column2Offset = 40
	columnGutter  = 80

	shrunkMarginRatio = 0.4
	minShrunkMargin   = 8
)

// DefaultTitle is the heading drawn above the table.
const DefaultTitle = "Black Rock Radio 2025"

// DefaultColor is the opaque yellow used for all text.
var DefaultColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

// Entry is one row of the frequency table.
type Entry struct {
	Frequency string
	Station   string
}

// Canvas is the pixel size of the target image. Both sides must be positive.
type Canvas struct {
	Width  int
	Height int
}

// Kind identifies which font face a command is drawn with.
type Kind string

const (
	KindTitle     Kind = "title"
	KindFrequency Kind = "frequency"
	KindStation   Kind = "station"
)

// Command is a single text draw instruction. X and Y are the top-left corner
// of the text box, not the baseline.
type Command struct {
	Kind  Kind
	Text  string
	X, Y  int
	Size  int // font size in pixels
	Color color.RGBA
}

// Measurer reports the rendered bounding box of text at a font size.
// Implementations must be deterministic for fixed inputs.
type Measurer interface {
	Measure(text string, sizePx int) (w, h int)
}

// MeasureFunc adapts a plain function to [Measurer].
type MeasureFunc func(text string, sizePx int) (w, h int)

// Measure implements Measurer.
func (f MeasureFunc) Measure(text string, sizePx int) (int, int) { return f(text, sizePx) }

// Options configures the parts of the layout that are not derived from the
// canvas size.
type Options struct {
	Title string
	Color color.RGBA
}

// DefaultOptions returns the title and color of the 2025 guide.
func DefaultOptions() Options {
	return Options{Title: DefaultTitle, Color: DefaultColor}
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H int
}

// Geometry records the intermediate values Compute settled on.
type Geometry struct {
	Background Rect // rectangle behind the text, inset from the canvas
	Title      Rect // measured title box at its drawn position

	TitleSize     int
	FrequencySize int
	StationSize   int

	TableStartY   int // first y below the title and its margin
	ContentStartY int // y of the first row after vertical centering
	SafeBottom    int // rows must end at or above this y
	Centered      bool

	RowsPerColumn int
	RowHeight     int // pitch between consecutive rows
	RowTextHeight int
	RowMargin     int // recomputed when the table is shrunk, see Compute

	Column1X       int
	Column2X       int
	ColumnWidth    int
	StationOffset  int
	MaxStationChar int

	Dropped int // entries not drawn because they fell below SafeBottom
}

// Result is the output of Compute.
type Result struct {
	Commands []Command
	Geometry Geometry
}

// FontSizes returns the title, frequency and station font sizes for a canvas.
func FontSizes(c Canvas) (title, frequency, station int) {
	w := float64(c.Width)
	return int(math.Round(w * TitleSizeRatio)),
		int(math.Round(w * FrequencySizeRatio)),
		int(math.Round(w * StationSizeRatio))
}

// Compute lays out the title and the two-column table on the canvas.
//
// A zero-length entries slice yields only the title command. The canvas
// must have positive width and height.
//
// When the table is too tall for the space below the title, the row pitch
// is shrunk to fit and RowMargin is recomputed as max(0.4×pitch, 8), but
// RowTextHeight keeps its unshrunk value. Nothing downstream reads either
// field to position text; they are reported as computed.
func Compute(entries []Entry, c Canvas, m Measurer, opts Options) Result {
	g := Geometry{
		Background: Rect{
			X: BackgroundPadding,
			Y: BackgroundTop,
			W: c.Width - 2*BackgroundPadding,
			H: c.Height - 2*BackgroundTop,
		},
	}
	g.TitleSize, g.FrequencySize, g.StationSize = FontSizes(c)

	bgTop, bgHeight := g.Background.Y, g.Background.H
	topMargin := frac(c.Height, TopMarginRatio)
	titleTableMargin := frac(c.Height, TitleTableMarginRatio)
	bottomMargin := frac(c.Height, BottomMarginRatio)

	titleW, titleH := m.Measure(opts.Title, g.TitleSize)
	g.Title = Rect{
		X: floorDiv(c.Width-titleW, 2),
		Y: bgTop + topMargin,
		W: titleW,
		H: titleH,
	}

	cmds := make([]Command, 0, 1+2*len(entries))
	cmds = append(cmds, Command{
		Kind:  KindTitle,
		Text:  opts.Title,
		X:     g.Title.X,
		Y:     g.Title.Y,
		Size:  g.TitleSize,
		Color: opts.Color,
	})

	g.TableStartY = g.Title.Y + titleH + titleTableMargin
	g.SafeBottom = bgTop + bgHeight - bottomMargin
	available := bgHeight - (g.TableStartY - bgTop) - bottomMargin

	g.RowsPerColumn = RowsPerColumn(len(entries))
	g.RowMargin = frac(c.Height, RowMarginRatio)
	g.RowTextHeight = frac(c.Height, RowTextHeightRatio)
	g.RowHeight = g.RowTextHeight + g.RowMargin
	tableHeight := g.RowsPerColumn * g.RowHeight

	if tableHeight < available {
		g.Centered = true
		g.ContentStartY = g.TableStartY + (available-tableHeight)/2
	} else {
		g.ContentStartY = g.TableStartY
		if g.RowsPerColumn > 0 {
			g.RowHeight = floorDiv(available, g.RowsPerColumn)
			g.RowMargin = max(int(float64(g.RowHeight)*shrunkMarginRatio), minShrunkMargin)
		}
	}

	g.Column1X = BackgroundPadding + column1Inset
	g.Column2X = c.Width/2 + column2Offset
	g.ColumnWidth = c.Width/2 - columnGutter
	g.StationOffset = frac(c.Width, StationOffsetRatio)
	g.MaxStationChar = int(float64(g.ColumnWidth) / (float64(c.Width) * StationCharRatio))

	col1, col2 := Split(entries)
	for _, col := range []struct {
		x    int
		rows []Entry
	}{{g.Column1X, col1}, {g.Column2X, col2}} {
		drawn := 0
		for i, e := range col.rows {
			y := g.ContentStartY + i*g.RowHeight
			if y+g.RowHeight > g.SafeBottom {
				break
			}
			cmds = append(cmds,
				Command{
					Kind:  KindFrequency,
					Text:  e.Frequency,
					X:     col.x,
					Y:     y,
					Size:  g.FrequencySize,
					Color: opts.Color,
				},
				Command{
					Kind:  KindStation,
					Text:  Truncate(e.Station, g.MaxStationChar),
					X:     col.x + g.StationOffset,
					Y:     y,
					Size:  g.StationSize,
					Color: opts.Color,
				})
			drawn++
		}
		g.Dropped += len(col.rows) - drawn
	}

	return Result{Commands: cmds, Geometry: g}
}

// RowsPerColumn returns the number of rows in the first (taller) column.
func RowsPerColumn(n int) int {
	return (n + 1) / 2
}

// Split divides entries into two columns. The first column receives the
// extra entry when the count is odd. The returned slices alias entries.
func Split(entries []Entry) (col1, col2 []Entry) {
	mid := RowsPerColumn(len(entries))
	return entries[:mid], entries[mid:]
}

// frac returns ratio×n truncated toward zero.
func frac(n int, ratio float64) int {
	return int(float64(n) * ratio)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
