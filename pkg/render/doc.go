// Package render turns layout commands into pixels.
//
// # Overview
//
// This package is the image-processing side of the guide pipeline:
//
//   - [Typesetter] measures text with a real font and implements
//     [layout.Measurer], so the layout engine sees the same metrics the
//     drawing code will use.
//   - [Draw] paints a [layout.Result] onto a transparent overlay and
//     composites it over the background photo.
//   - [Open], [Save] and [Encode] handle image files; JPEG output defaults
//     to quality 95.
//
// # Text Anchoring
//
// Command positions are the top-left corner of the text box. Draw places
// the baseline one ascent below the command's Y so measured boxes and drawn
// glyphs line up.
//
//	ts := render.NewTypesetter(fonts.Load(fonts.DefaultCandidates, nil))
//	res := layout.Compute(entries, canvas, ts, layout.DefaultOptions())
//	out, err := render.Draw(bg, res, ts, render.Style{})
//	err = render.Save("radio_guide_2025.jpg", out, render.DefaultQuality)
package render
