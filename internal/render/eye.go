package render

import "github.com/cristianadrielbraun/qrafted/internal/design"

// DrawEye paints one finder pattern at (x, y): a 7 module ring cut with the
// even-odd rule and a 3 module ball centered inside it.
func DrawEye(sf Surface, x, y, m float64, frame, ball design.EyeStyle, framePaint, ballPaint Paint) error {
	outer, err := ShapePath(EyeShape(frame), x, y, 7*m)
	if err != nil {
		return err
	}
	hole, err := ShapePath(EyeShape(frame), x+m, y+m, 5*m)
	if err != nil {
		return err
	}
	sf.FillPath(outer.Append(hole), framePaint, EvenOdd)
	return DrawShape(sf, x+2*m, y+2*m, 3*m, EyeShape(ball), ballPaint)
}
