// Package layout places a title and a two-column frequency table onto a
// fixed-size canvas.
//
// # Overview
//
// The engine is a pure function: given the table entries, the canvas size
// and a [Measurer] for rendered text, [Compute] returns an ordered list of
// [Command] values (text, top-left position, font size, color). It performs
// no I/O; the render package turns the commands into pixels.
//
// # Geometry
//
// Every distance is a fixed fraction of the canvas width or height:
//
//	title font       0.06  × width     top margin       0.09  × height
//	frequency font   0.024 × width     title/table gap  0.08  × height
//	station font     0.022 × width     bottom margin    0.05  × height
//	station offset   0.08  × width     row margin       0.035 × height
//	                                   row text height  0.03  × height
//
// The background rectangle is inset 20px from every edge. The first column
// starts 60px inside the background, the second 40px right of the vertical
// center line.
//
// # Column Balance
//
// [Split] divides N entries into ceil(N/2) rows for the first column and the
// remainder for the second, so the columns differ by at most one row.
//
// # Vertical Placement
//
// When the table fits below the title it is centered in the remaining
// space. When it does not, it starts right below the title and the row
// height is shrunk to fit. Rows whose bottom edge would cross the safe area
// are dropped, together with every row after them in the same column.
//
//	res := layout.Compute(entries, layout.Canvas{Width: 1500, Height: 900},
//	    fonts, layout.DefaultOptions())
//	for _, cmd := range res.Commands {
//	    fmt.Println(cmd.Kind, cmd.Text, cmd.X, cmd.Y)
//	}
package layout
