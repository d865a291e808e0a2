package render

import (
	"fmt"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

// Shape is any style token drawable in a box. Dot styles and eye styles share
// the geometry below.
type Shape string

const (
	ShapeSquare  Shape = "square"
	ShapeRounded Shape = "rounded"
	ShapeCircle  Shape = "circle"
	ShapeDiamond Shape = "diamond"
	ShapeGlitch  Shape = "glitch"
	ShapeStripe  Shape = "stripe"
	ShapeStar    Shape = "star"
	ShapeLeaf    Shape = "leaf"
)

// DotShape maps a body style to its geometry; "dots" is a circle.
func DotShape(s design.DotStyle) Shape {
	if s == design.DotDots {
		return ShapeCircle
	}
	return Shape(s)
}

func EyeShape(s design.EyeStyle) Shape { return Shape(s) }

// ShapePath builds the outline of shape inside the size×size box at (x, y).
func ShapePath(shape Shape, x, y, size float64) (*Path, error) {
	s := size
	switch shape {
	case ShapeSquare:
		return RectPath(x, y, s, s), nil
	case ShapeRounded:
		return RoundedRectPath(x+0.5, y+0.5, s-1, s-1, 0.4*s), nil
	case ShapeCircle:
		return CirclePath(x+s/2, y+s/2, 0.4*s), nil
	case ShapeDiamond:
		return PolygonPath(
			Point{x + s/2, y},
			Point{x + s, y + s/2},
			Point{x + s/2, y + s},
			Point{x, y + s/2},
		), nil
	case ShapeGlitch:
		return RectPath(x, y+0.2*s, 0.8*s, 0.6*s), nil
	case ShapeStripe:
		p := RectPath(x+0.1*s, y, 0.2*s, s)
		return p.Append(RectPath(x+0.7*s, y, 0.2*s, s)), nil
	case ShapeStar:
		return StarPath(x+s/2, y+s/2, s/2, s/4, 5, 270), nil
	case ShapeLeaf:
		return leafPath(x, y, s), nil
	}
	return nil, fmt.Errorf("unknown shape %q", shape)
}

// leafPath rounds the top-left and bottom-right corners with one quadratic
// each and leaves the other two square.
func leafPath(x, y, s float64) *Path {
	r := s / 2
	p := new(Path).MoveTo(x+r, y)
	p.LineTo(x+s, y)
	p.LineTo(x+s, y+s-r)
	p.QuadTo(x+s, y+s, x+s-r, y+s)
	p.LineTo(x, y+s)
	p.LineTo(x, y+r)
	p.QuadTo(x, y, x+r, y)
	return p.Close()
}

// DrawShape fills one shape with paint.
func DrawShape(sf Surface, x, y, size float64, shape Shape, paint Paint) error {
	p, err := ShapePath(shape, x, y, size)
	if err != nil {
		return err
	}
	sf.FillPath(p, paint, NonZero)
	return nil
}
