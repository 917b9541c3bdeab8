// Package crop fits photos to fixed print aspect ratios.
//
// A source image is center-cropped to the target ratio (trimming either the
// sides or the top and bottom, never both) and then resampled with a Lanczos
// filter to the requested pixel width.
//
//	img, plan := crop.Fit(src, crop.Landscape5x3, 1500)
//	// plan.Size == image.Pt(1500, 900)
package crop

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
)

// DefaultWidth is 5 inches at 300 DPI.
const DefaultWidth = 1500

// Aspect is a width:height print ratio such as 3x5.
type Aspect struct {
	W, H int
}

var (
	// Portrait3x5 is a 3" wide, 5" tall sticker.
	Portrait3x5 = Aspect{W: 3, H: 5}
	// Landscape5x3 is a 5" wide, 3" tall sticker.
	Landscape5x3 = Aspect{W: 5, H: 3}
)

// ParseAspect parses "WxH" (also "W:H") into an Aspect.
func ParseAspect(s string) (Aspect, error) {
	sep := "x"
	if strings.Contains(s, ":") {
		sep = ":"
	}
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), sep)
	if !ok {
		return Aspect{}, rgerrors.New(rgerrors.ErrCodeInvalidAspect, "invalid aspect %q (want WxH, e.g. 3x5)", s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Aspect{}, rgerrors.New(rgerrors.ErrCodeInvalidAspect, "invalid aspect %q (want positive WxH, e.g. 3x5)", s)
	}
	return Aspect{W: w, H: h}, nil
}

// String implements fmt.Stringer.
func (a Aspect) String() string { return fmt.Sprintf("%dx%d", a.W, a.H) }

// Ratio returns width divided by height.
func (a Aspect) Ratio() float64 { return float64(a.W) / float64(a.H) }

// Portrait reports whether the aspect is taller than wide.
func (a Aspect) Portrait() bool { return a.H > a.W }

// Size returns the output dimensions for a target pixel width.
func (a Aspect) Size(width int) image.Point {
	return image.Pt(width, int(float64(width)*float64(a.H)/float64(a.W)))
}

// Plan describes how a source image is fitted.
type Plan struct {
	Source  image.Rectangle
	Crop    image.Rectangle // region of Source kept, centered
	Size    image.Point     // final output size
	Trimmed int             // pixels removed from the cropped axis
	Sides   bool            // true when the sides were trimmed, false for top/bottom
}

// NewPlan computes the centered crop of src for the aspect and the final
// size at the target width.
func NewPlan(src image.Rectangle, a Aspect, width int) Plan {
	size := a.Size(width)
	target := float64(size.X) / float64(size.Y)
	w, h := src.Dx(), src.Dy()

	p := Plan{Source: src, Size: size}
	if float64(w)/float64(h) > target {
		newW := int(float64(h) * target)
		left := (w - newW) / 2
		p.Crop = image.Rect(left, 0, left+newW, h).Add(src.Min)
		p.Trimmed = w - newW
		p.Sides = true
	} else {
		newH := int(float64(w) / target)
		top := (h - newH) / 2
		p.Crop = image.Rect(0, top, w, top+newH).Add(src.Min)
		p.Trimmed = h - newH
	}
	return p
}

// Fit crops img to the aspect and resizes it to the target width.
func Fit(img image.Image, a Aspect, width int) (*image.NRGBA, Plan) {
	p := NewPlan(img.Bounds(), a, width)
	cropped := imaging.Crop(img, p.Crop)
	return imaging.Resize(cropped, p.Size.X, p.Size.Y, imaging.Lanczos), p
}
