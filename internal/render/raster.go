package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

// RasterSurface paints into an RGBA image with gg.
//
// Fills that carry an Effect are collected on two side layers: the shapes
// themselves and their offset silhouettes. FlushEffects blurs the
// silhouettes and composites both layers through the current clip, which is
// how a canvas shadowBlur behaves for a run of fills sharing one setting.
type RasterSurface struct {
	dc   *gg.Context
	face func(size float64) (font.Face, error)

	effect  Effect
	shapes  *gg.Context
	shadows *gg.Context

	lastPaint   Paint
	lastPattern gg.Pattern
}

// NewRasterSurface returns a transparent w×h surface.
func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{dc: gg.NewContext(w, h), face: BoldFace}
}

func (s *RasterSurface) Width() int  { return s.dc.Width() }
func (s *RasterSurface) Height() int { return s.dc.Height() }

// Image flushes pending effects and returns the backing image.
func (s *RasterSurface) Image() *image.RGBA {
	s.FlushEffects()
	return s.dc.Image().(*image.RGBA)
}

func (s *RasterSurface) FillPath(p *Path, paint Paint, rule FillRule) {
	if p.Empty() {
		return
	}
	if !paint.Effect.Active() {
		s.FlushEffects()
		s.fill(s.dc, p, paint, rule)
		return
	}
	if s.shapes != nil && s.effect != paint.Effect {
		s.FlushEffects()
	}
	if s.shapes == nil {
		s.effect = paint.Effect
		s.shapes = gg.NewContext(s.Width(), s.Height())
		s.shadows = gg.NewContext(s.Width(), s.Height())
	}
	e := paint.Effect
	s.fill(s.shadows, p.Translate(e.DX, e.DY), Solid(e.Color), rule)
	paint.Effect = Effect{}
	s.fill(s.shapes, p, paint, rule)
}

func (s *RasterSurface) StrokePath(p *Path, paint Paint, width float64) {
	if p.Empty() {
		return
	}
	s.FlushEffects()
	p.Walk(s.dc)
	s.dc.SetLineWidth(width)
	s.setPaint(s.dc, paint)
	s.dc.Stroke()
}

func (s *RasterSurface) Clip(p *Path) {
	s.FlushEffects()
	p.Walk(s.dc)
	s.dc.SetFillRule(gg.FillRuleWinding)
	s.dc.Clip()
}

func (s *RasterSurface) ResetClip() {
	s.FlushEffects()
	s.dc.ResetClip()
}

func (s *RasterSurface) DrawImage(img image.Image, x, y int) {
	s.FlushEffects()
	s.dc.DrawImage(img, x, y)
}

func (s *RasterSurface) DrawText(text string, cx, cy, size float64, c design.Color) error {
	if text == "" {
		return nil
	}
	s.FlushEffects()
	face, err := s.face(size)
	if err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(text, cx, cy, 0.5, 0.35)
	return nil
}

func (s *RasterSurface) FlushEffects() {
	if s.shapes == nil {
		return
	}
	blurred := imaging.Blur(s.shadows.Image(), s.effect.Blur/2)
	s.dc.DrawImage(blurred, 0, 0)
	s.dc.DrawImage(s.shapes.Image(), 0, 0)
	s.shapes, s.shadows = nil, nil
	s.effect = Effect{}
}

func (s *RasterSurface) fill(dc *gg.Context, p *Path, paint Paint, rule FillRule) {
	p.Walk(dc)
	if rule == EvenOdd {
		dc.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		dc.SetFillRule(gg.FillRuleWinding)
	}
	s.setPaint(dc, paint)
	dc.Fill()
}

// setPaint reuses the last gradient pattern while the paint is unchanged, so
// a module loop shares one gradient.
func (s *RasterSurface) setPaint(dc *gg.Context, paint Paint) {
	if paint.Kind == PaintSolid {
		dc.SetColor(paint.Color)
		return
	}
	if s.lastPattern == nil || s.lastPaint != paint {
		var g gg.Gradient
		if paint.Kind == PaintRadial {
			g = gg.NewRadialGradient(paint.Center.X, paint.Center.Y, 0, paint.Center.X, paint.Center.Y, paint.Radius)
		} else {
			g = gg.NewLinearGradient(paint.Start.X, paint.Start.Y, paint.End.X, paint.End.Y)
		}
		g.AddColorStop(0, paint.From)
		g.AddColorStop(1, paint.To)
		s.lastPaint, s.lastPattern = paint, g
	}
	dc.SetFillStyle(s.lastPattern)
	dc.SetStrokeStyle(s.lastPattern)
}
