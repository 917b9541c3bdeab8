package render

import (
	"golang.org/x/image/font"

	"github.com/matzehuels/radioguide/pkg/fonts"
	"github.com/matzehuels/radioguide/pkg/layout"
)

// Typesetter measures and draws text with a single font.
type Typesetter struct {
	Font *fonts.Font
}

// NewTypesetter creates a typesetter for f.
func NewTypesetter(f *fonts.Font) *Typesetter {
	return &Typesetter{Font: f}
}

var _ layout.Measurer = (*Typesetter)(nil)

// Prepare creates faces for the given sizes up front so that face errors
// surface before layout, where Measure has no error return.
func (t *Typesetter) Prepare(sizes ...int) error {
	for _, s := range sizes {
		if _, err := t.Font.Face(s); err != nil {
			return err
		}
	}
	return nil
}

// Measure returns the inked bounding box of text at sizePx. It returns zero
// if no face can be created for the size.
func (t *Typesetter) Measure(text string, sizePx int) (w, h int) {
	face, err := t.Font.Face(sizePx)
	if err != nil {
		return 0, 0
	}
	b, _ := font.BoundString(face, text)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}

// Ascent returns the distance from the top of the text box to the baseline.
func (t *Typesetter) Ascent(sizePx int) (float64, error) {
	face, err := t.Font.Face(sizePx)
	if err != nil {
		return 0, err
	}
	return float64(face.Metrics().Ascent) / 64, nil
}
