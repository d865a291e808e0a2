package render

import (
	"fmt"
	"math"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

// MaskPath returns the clip outline of shape spanning box, or nil for none.
func MaskPath(shape design.MaskShape, box Rect) (*Path, error) {
	switch shape {
	case design.MaskNone:
		return nil, nil
	case design.MaskCircle:
		c := box.Center()
		return CirclePath(c.X, c.Y, math.Min(box.W, box.H)/2), nil
	case design.MaskHeart:
		return heartPath(box), nil
	case design.MaskStar:
		c := box.Center()
		outer := math.Min(box.W, box.H) / 2
		return StarPath(c.X, c.Y, outer, outer/2, 5, 270), nil
	}
	return nil, fmt.Errorf("unknown mask %q", shape)
}

// heartPath draws two lobes from the notch at 30% height down to the tip at
// 90% height.
func heartPath(b Rect) *Path {
	x, y, w, h := b.X, b.Y, b.W, b.H
	p := new(Path).MoveTo(x+w/2, y+0.3*h)
	p.CubicTo(x+w/2, y+0.1*h, x, y+0.1*h, x, y+0.35*h)
	p.CubicTo(x, y+0.6*h, x+w/2, y+0.75*h, x+w/2, y+0.9*h)
	p.CubicTo(x+w/2, y+0.75*h, x+w, y+0.6*h, x+w, y+0.35*h)
	p.CubicTo(x+w, y+0.1*h, x+w/2, y+0.1*h, x+w/2, y+0.3*h)
	return p.Close()
}

// ApplyMask intersects the clip with the mask and fills bg inside it. It is a
// no-op for MaskNone.
func ApplyMask(sf Surface, shape design.MaskShape, box Rect, bg design.Color) error {
	p, err := MaskPath(shape, box)
	if err != nil || p == nil {
		return err
	}
	sf.Clip(p)
	sf.FillPath(box.Path(), Solid(bg), NonZero)
	return nil
}
