package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/radioguide/pkg/layout"
)

// Style holds drawing options that are not part of the layout.
type Style struct {
	// Backdrop fills the layout's background rectangle behind the text.
	// The zero value is fully transparent, which leaves the photo untouched.
	Backdrop color.NRGBA
}

// Draw renders res onto an overlay the size of bg and composites it over bg.
// bg is not modified.
func Draw(bg image.Image, res layout.Result, ts *Typesetter, style Style) (*image.NRGBA, error) {
	overlay, err := DrawOverlay(bg.Bounds().Size(), res, ts, style)
	if err != nil {
		return nil, err
	}
	return imaging.Overlay(bg, overlay, bg.Bounds().Min, 1.0), nil
}

// DrawOverlay renders res onto a transparent canvas of the given size.
func DrawOverlay(size image.Point, res layout.Result, ts *Typesetter, style Style) (image.Image, error) {
	dc := gg.NewContext(size.X, size.Y)

	if style.Backdrop.A > 0 {
		r := res.Geometry.Background
		dc.SetColor(style.Backdrop)
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		dc.Fill()
	}

	for _, cmd := range res.Commands {
		face, err := ts.Font.Face(cmd.Size)
		if err != nil {
			return nil, err
		}
		ascent, err := ts.Ascent(cmd.Size)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(cmd.Color)
		dc.DrawString(cmd.Text, float64(cmd.X), float64(cmd.Y)+ascent)
	}
	return dc.Image(), nil
}
