package render

import (
	"fmt"
	"math"
	"strings"
)

// Kappa is the control point distance for approximating a quarter circle with
// a cubic Bézier.
const kappa = 0.5522847498

// Point is a position in canvas pixels.
type Point struct{ X, Y float64 }

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opQuad
	opCubic
	opClose
)

// Op is one path command. Pts holds the control points followed by the end point.
type Op struct {
	kind opKind
	Pts  [3]Point
}

// Path is a host independent vector path made of one or more subpaths.
type Path struct {
	ops []Op
}

func (p *Path) MoveTo(x, y float64) *Path {
	p.ops = append(p.ops, Op{kind: opMove, Pts: [3]Point{{x, y}}})
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	p.ops = append(p.ops, Op{kind: opLine, Pts: [3]Point{{x, y}}})
	return p
}

func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.ops = append(p.ops, Op{kind: opQuad, Pts: [3]Point{{cx, cy}, {x, y}}})
	return p
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.ops = append(p.ops, Op{kind: opCubic, Pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	return p
}

func (p *Path) Close() *Path {
	p.ops = append(p.ops, Op{kind: opClose})
	return p
}

// Append adds the subpaths of o to p.
func (p *Path) Append(o *Path) *Path {
	p.ops = append(p.ops, o.ops...)
	return p
}

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return p == nil || len(p.ops) == 0 }

// Subpaths counts MoveTo commands.
func (p *Path) Subpaths() int {
	n := 0
	for _, op := range p.ops {
		if op.kind == opMove {
			n++
		}
	}
	return n
}

// Translate returns a copy of p moved by (dx, dy).
func (p *Path) Translate(dx, dy float64) *Path {
	out := &Path{ops: make([]Op, len(p.ops))}
	for i, op := range p.ops {
		for j := range op.Pts {
			op.Pts[j].X += dx
			op.Pts[j].Y += dy
		}
		out.ops[i] = op
	}
	return out
}

// Bounds returns the bounding box of every point of the path, control points
// included.
func (p *Path) Bounds() (lo, hi Point) {
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	for _, op := range p.ops {
		for _, pt := range op.points() {
			lo.X, lo.Y = math.Min(lo.X, pt.X), math.Min(lo.Y, pt.Y)
			hi.X, hi.Y = math.Max(hi.X, pt.X), math.Max(hi.Y, pt.Y)
		}
	}
	return lo, hi
}

func (op Op) points() []Point {
	switch op.kind {
	case opMove, opLine:
		return op.Pts[:1]
	case opQuad:
		return op.Pts[:2]
	case opCubic:
		return op.Pts[:3]
	}
	return nil
}

// Walk calls the matching pathBuilder method for every command.
func (p *Path) Walk(b pathBuilder) {
	for _, op := range p.ops {
		switch op.kind {
		case opMove:
			b.MoveTo(op.Pts[0].X, op.Pts[0].Y)
		case opLine:
			b.LineTo(op.Pts[0].X, op.Pts[0].Y)
		case opQuad:
			b.QuadraticTo(op.Pts[0].X, op.Pts[0].Y, op.Pts[1].X, op.Pts[1].Y)
		case opCubic:
			b.CubicTo(op.Pts[0].X, op.Pts[0].Y, op.Pts[1].X, op.Pts[1].Y, op.Pts[2].X, op.Pts[2].Y)
		case opClose:
			b.ClosePath()
		}
	}
}

// pathBuilder is satisfied by *gg.Context.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// SVG renders the path as SVG path data.
func (p *Path) SVG() string {
	var b strings.Builder
	for _, op := range p.ops {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch op.kind {
		case opMove:
			fmt.Fprintf(&b, "M%s %s", num(op.Pts[0].X), num(op.Pts[0].Y))
		case opLine:
			fmt.Fprintf(&b, "L%s %s", num(op.Pts[0].X), num(op.Pts[0].Y))
		case opQuad:
			fmt.Fprintf(&b, "Q%s %s %s %s", num(op.Pts[0].X), num(op.Pts[0].Y), num(op.Pts[1].X), num(op.Pts[1].Y))
		case opCubic:
			fmt.Fprintf(&b, "C%s %s %s %s %s %s", num(op.Pts[0].X), num(op.Pts[0].Y),
				num(op.Pts[1].X), num(op.Pts[1].Y), num(op.Pts[2].X), num(op.Pts[2].Y))
		case opClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func RectPath(x, y, w, h float64) *Path {
	return new(Path).MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// RoundedRectPath clamps r to half the shorter side.
func RoundedRectPath(x, y, w, h, r float64) *Path {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		return RectPath(x, y, w, h)
	}
	k := r * kappa
	p := new(Path).MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	return p.Close()
}

func CirclePath(cx, cy, r float64) *Path {
	k := r * kappa
	p := new(Path).MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	return p.Close()
}

func PolygonPath(pts ...Point) *Path {
	p := new(Path)
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	return p.Close()
}

// StarPath alternates outer and inner vertices, starting at startDeg
// (270 points straight up).
func StarPath(cx, cy, outer, inner float64, points int, startDeg float64) *Path {
	pts := make([]Point, 0, points*2)
	step := math.Pi / float64(points)
	a := startDeg * math.Pi / 180
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts = append(pts, Point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
		a += step
	}
	return PolygonPath(pts...)
}
