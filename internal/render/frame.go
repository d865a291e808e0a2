package render

import (
	"fmt"
	"math"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

const (
	// ReferenceSize is the canvas side the frame constants are tuned for.
	ReferenceSize  = 600
	FrameInset     = 80
	DefaultCaption = "SCAN ME"
)

type PatchShape uint8

const (
	PatchRect PatchShape = iota
	PatchRounded
	PatchCircle
)

// Layout is where the code goes once the frame is drawn.
type Layout struct {
	// Patch is the bounding box of the code's own background.
	Patch       Rect
	PatchShape  PatchShape
	PatchRadius float64
	// Grid is the square the module grid, quiet zone included, is centered in.
	Grid Rect
}

// PatchPath is the outline of the background patch.
func (l Layout) PatchPath() *Path {
	switch l.PatchShape {
	case PatchCircle:
		c := l.Patch.Center()
		return CirclePath(c.X, c.Y, math.Min(l.Patch.W, l.Patch.H)/2)
	case PatchRounded:
		return RoundedRectPath(l.Patch.X, l.Patch.Y, l.Patch.W, l.Patch.H, l.PatchRadius)
	}
	return l.Patch.Path()
}

func squareIn(r Rect) Rect {
	side := math.Min(r.W, r.H)
	c := r.Center()
	return Rect{c.X - side/2, c.Y - side/2, side, side}
}

// frameGeometry holds the scaled constants for one canvas.
type frameGeometry struct {
	w, h   float64
	scale  float64
	inset  float64
	canvas Rect
}

func newFrameGeometry(width, height int) frameGeometry {
	w, h := float64(width), float64(height)
	scale := math.Min(w, h) / ReferenceSize
	return frameGeometry{w: w, h: h, scale: scale, inset: FrameInset * scale, canvas: Rect{0, 0, w, h}}
}

func (g frameGeometry) px(v float64) float64 { return v * g.scale }

func caption(cfg design.Config) string {
	if cfg.FrameText != "" {
		return cfg.FrameText
	}
	return DefaultCaption
}

// DrawFrame paints the decoration for cfg.FrameStyle and returns the layout
// the code must fit into. It runs before anything else is drawn.
func DrawFrame(sf Surface, width, height int, cfg design.Config) (Layout, error) {
	g := newFrameGeometry(width, height)
	fg := Solid(cfg.FrameColor)
	accent := Solid(cfg.FrameAccentColor)
	inner := g.canvas.Inset(g.inset)
	plain := Layout{Patch: inner, PatchShape: PatchRect, Grid: squareIn(inner)}

	switch cfg.FrameStyle {
	case design.FrameNone:
		sf.FillPath(g.canvas.Path(), Solid(cfg.BgColor), NonZero)
		return Layout{Patch: g.canvas, PatchShape: PatchRect, Grid: squareIn(g.canvas)}, nil

	case design.FrameSimple:
		sf.FillPath(g.canvas.Path(), fg, NonZero)
		return plain, nil

	case design.FrameRounded:
		sf.FillPath(RoundedRectPath(0, 0, g.w, g.h, g.px(30)), fg, NonZero)
		l := plain
		l.PatchShape, l.PatchRadius = PatchRounded, g.px(16)
		return l, nil

	case design.FrameBadge:
		sf.FillPath(RoundedRectPath(0, 0, g.w, g.h, g.px(30)), fg, NonZero)
		return plain, sf.DrawText(caption(cfg), g.w/2, g.h-g.inset/2, g.px(28), cfg.BgColor)

	case design.FramePhone:
		drawPhone(sf, g, cfg)
		return plain, nil

	case design.FrameCircle:
		c := g.canvas.Center()
		outer := math.Min(g.w, g.h) / 2
		sf.FillPath(CirclePath(c.X, c.Y, outer), fg, NonZero)
		if err := sf.DrawText(caption(cfg), c.X, c.Y+outer-g.inset/2, g.px(24), cfg.BgColor); err != nil {
			return Layout{}, err
		}
		r := outer - g.inset
		side := r * math.Sqrt2
		return Layout{
			Patch:      Rect{c.X - r, c.Y - r, 2 * r, 2 * r},
			PatchShape: PatchCircle,
			Grid:       Rect{c.X - side/2, c.Y - side/2, side, side},
		}, nil

	case design.FrameBusiness:
		r := g.px(24)
		sf.FillPath(RoundedRectPath(0, 0, g.w, g.h, r), fg, NonZero)
		sf.FillPath(bandPath(0, g.h-g.inset, g.w, g.inset, r, false), accent, NonZero)
		return plain, sf.DrawText(caption(cfg), g.w/2, g.h-g.inset/2, g.px(26), cfg.BgColor)

	case design.FrameSocial:
		r := g.px(24)
		sf.FillPath(RoundedRectPath(0, 0, g.w, g.h, r), fg, NonZero)
		sf.FillPath(bandPath(0, 0, g.w, g.inset, r, true), accent, NonZero)
		return plain, sf.DrawText(caption(cfg), g.w/2, g.inset/2, g.px(26), cfg.BgColor)

	case design.FrameScan:
		sf.FillPath(g.canvas.Path(), Solid(cfg.BgColor), NonZero)
		drawBrackets(sf, inner.Inset(-g.px(16)), g.px(60), g.px(8), fg)
		return plain, sf.DrawText(caption(cfg), g.w/2, g.h-g.px(30), g.px(22), cfg.FrameColor)

	case design.FrameGift:
		sf.FillPath(g.canvas.Path(), fg, NonZero)
		band := g.px(36)
		sf.FillPath(RectPath(g.w/2-band/2, 0, band, g.h), accent, NonZero)
		sf.FillPath(RectPath(0, g.h/2-band/2, g.w, band), accent, NonZero)
		bow := g.px(18)
		top := g.inset / 2
		sf.FillPath(CirclePath(g.w/2-bow, top, bow), accent, NonZero)
		sf.FillPath(CirclePath(g.w/2+bow, top, bow), accent, NonZero)
		sf.FillPath(CirclePath(g.w/2, top, bow/2), Solid(cfg.FrameColor.Darken(0.3)), NonZero)
		return plain, sf.DrawText(caption(cfg), g.w/2, g.h-g.inset/2, g.px(24), cfg.BgColor)
	}
	return Layout{}, fmt.Errorf("unknown frame %q", cfg.FrameStyle)
}

// PhoneParts returns the body, bezel and notch boxes of the phone frame.
func PhoneParts(width, height int) (body, bezel, notch Rect) {
	g := newFrameGeometry(width, height)
	body = g.canvas
	bezel = g.canvas.Inset(g.px(24))
	nw, nh := g.w*0.3, g.px(12)
	notch = Rect{g.w/2 - nw/2, (bezel.Y - nh) / 2, nw, nh}
	return body, bezel, notch
}

func drawPhone(sf Surface, g frameGeometry, cfg design.Config) {
	body, bezel, notch := PhoneParts(int(g.w), int(g.h))
	dark := Solid(cfg.FrameColor.Darken(0.4))
	sf.FillPath(RoundedRectPath(body.X, body.Y, body.W, body.H, g.px(48)), Solid(cfg.FrameColor), NonZero)
	sf.FillPath(RoundedRectPath(bezel.X, bezel.Y, bezel.W, bezel.H, g.px(32)), dark, NonZero)
	sf.FillPath(RoundedRectPath(notch.X, notch.Y, notch.W, notch.H, notch.H/2), dark, NonZero)
}

// bandPath is a rectangle with its two outer corners rounded: the top ones
// when top is set, the bottom ones otherwise.
func bandPath(x, y, w, h, r float64, top bool) *Path {
	k := r * kappa
	p := new(Path)
	if top {
		p.MoveTo(x, y+h)
		p.LineTo(x, y+r)
		p.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
		p.LineTo(x+w-r, y)
		p.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
		p.LineTo(x+w, y+h)
		return p.Close()
	}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	return p.Close()
}

// drawBrackets strokes an L at each corner of box.
func drawBrackets(sf Surface, box Rect, arm, width float64, paint Paint) {
	x0, y0, x1, y1 := box.X, box.Y, box.X+box.W, box.Y+box.H
	corners := [][3]Point{
		{{x0, y0 + arm}, {x0, y0}, {x0 + arm, y0}},
		{{x1 - arm, y0}, {x1, y0}, {x1, y0 + arm}},
		{{x1, y1 - arm}, {x1, y1}, {x1 - arm, y1}},
		{{x0 + arm, y1}, {x0, y1}, {x0, y1 - arm}},
	}
	for _, c := range corners {
		p := new(Path).MoveTo(c[0].X, c[0].Y).LineTo(c[1].X, c[1].Y).LineTo(c[2].X, c[2].Y)
		sf.StrokePath(p, paint, width)
	}
}
