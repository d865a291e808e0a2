package render

import (
	"image"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

type PaintKind uint8

const (
	PaintSolid PaintKind = iota
	PaintLinear
	PaintRadial
)

// Effect is a blurred copy of a filled shape drawn beneath it.
type Effect struct {
	Blur   float64
	DX, DY float64
	Color  design.Color
}

// Active reports whether the effect draws anything.
func (e Effect) Active() bool { return e.Blur > 0 && !e.Color.IsTransparent() }

// Paint is the complete fill intent for one draw call. It is a value and is
// never modified after a Resolver hands it out.
type Paint struct {
	Kind  PaintKind
	Color design.Color

	// Gradient stops at offset 0 and 1.
	From, To design.Color
	// Linear gradient axis.
	Start, End Point
	// Radial gradient circle.
	Center Point
	Radius float64

	Effect Effect
}

func Solid(c design.Color) Paint { return Paint{Kind: PaintSolid, Color: c} }

func LinearGradient(from, to design.Color, start, end Point) Paint {
	return Paint{Kind: PaintLinear, From: from, To: to, Start: start, End: end}
}

func RadialGradient(from, to design.Color, center Point, radius float64) Paint {
	return Paint{Kind: PaintRadial, From: from, To: to, Center: center, Radius: radius}
}

// WithEffect returns a copy of p carrying e.
func (p Paint) WithEffect(e Effect) Paint {
	p.Effect = e
	return p
}

// Rect is an axis aligned box in canvas pixels.
type Rect struct{ X, Y, W, H float64 }

func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect { return Rect{r.X + d, r.Y + d, r.W - 2*d, r.H - 2*d} }

func (r Rect) Path() *Path { return RectPath(r.X, r.Y, r.W, r.H) }

// Surface is the drawing target the renderer paints on. Implementations keep
// their own clip stack; everything else arrives with each call.
type Surface interface {
	Width() int
	Height() int
	FillPath(p *Path, paint Paint, rule FillRule)
	StrokePath(p *Path, paint Paint, width float64)
	// Clip intersects the current clip with p.
	Clip(p *Path)
	ResetClip()
	DrawImage(img image.Image, x, y int)
	// DrawText draws a single bold line centered on (cx, cy). It fails when
	// no face can be built for size.
	DrawText(text string, cx, cy, size float64, c design.Color) error
	// FlushEffects composites pending shadow or glow output. Fills issued after
	// it start a fresh effect pass.
	FlushEffects()
}
