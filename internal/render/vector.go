package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

// VectorSurface writes SVG elements as the renderer draws. Gradients and
// clip paths become defs, effect runs become a group with a drop shadow
// filter.
type VectorSurface struct {
	w, h   int
	canvas *svg.SVG
	out    io.Writer

	nextID    int
	gradients map[Paint]string
	clips     int

	effect   Effect
	inEffect bool
	ended    bool
}

// NewVectorSurface starts an SVG document of w×h on out. Call End once
// drawing is complete.
func NewVectorSurface(out io.Writer, w, h int) *VectorSurface {
	s := &VectorSurface{w: w, h: h, out: out, canvas: svg.New(out), gradients: map[Paint]string{}}
	s.canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	return s
}

func (s *VectorSurface) Width() int  { return s.w }
func (s *VectorSurface) Height() int { return s.h }

func (s *VectorSurface) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func (s *VectorSurface) FillPath(p *Path, paint Paint, rule FillRule) {
	if p.Empty() {
		return
	}
	if !paint.Effect.Active() || s.effect != paint.Effect {
		s.FlushEffects()
	}
	if paint.Effect.Active() && !s.inEffect {
		fid := s.id("fx")
		e := paint.Effect
		s.canvas.Def()
		fmt.Fprintf(s.canvas.Writer, `<filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%" color-interpolation-filters="sRGB">`+
			`<feDropShadow dx="%s" dy="%s" stdDeviation="%s" flood-color="%s" flood-opacity="%s"/></filter>`+"\n",
			fid, num(e.DX), num(e.DY), num(e.Blur/2), rgb(e.Color), opacity(e.Color))
		s.canvas.DefEnd()
		s.canvas.Group(fmt.Sprintf(`filter="url(#%s)"`, fid))
		s.effect, s.inEffect = e, true
	}
	attrs := []string{`fill="` + s.paintRef(paint) + `"`}
	if a := s.paintOpacity(paint); a != "" {
		attrs = append(attrs, `fill-opacity="`+a+`"`)
	}
	if rule == EvenOdd {
		attrs = append(attrs, `fill-rule="evenodd"`)
	}
	s.canvas.Path(p.SVG(), attrs...)
}

func (s *VectorSurface) StrokePath(p *Path, paint Paint, width float64) {
	if p.Empty() {
		return
	}
	s.FlushEffects()
	attrs := []string{`fill="none"`, `stroke="` + s.paintRef(paint) + `"`, `stroke-width="` + num(width) + `"`}
	if a := s.paintOpacity(paint); a != "" {
		attrs = append(attrs, `stroke-opacity="`+a+`"`)
	}
	s.canvas.Path(p.SVG(), attrs...)
}

// Clip opens a clipped group. Nested groups intersect.
func (s *VectorSurface) Clip(p *Path) {
	s.FlushEffects()
	cid := s.id("clip")
	s.canvas.Def()
	s.canvas.ClipPath(`id="` + cid + `"`)
	s.canvas.Path(p.SVG())
	s.canvas.ClipEnd()
	s.canvas.DefEnd()
	s.canvas.Group(`clip-path="url(#` + cid + `)"`)
	s.clips++
}

func (s *VectorSurface) ResetClip() {
	s.FlushEffects()
	for ; s.clips > 0; s.clips-- {
		s.canvas.Gend()
	}
}

func (s *VectorSurface) DrawImage(img image.Image, x, y int) {
	s.FlushEffects()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return
	}
	b := img.Bounds()
	s.canvas.Image(x, y, b.Dx(), b.Dy(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func (s *VectorSurface) DrawText(text string, cx, cy, size float64, c design.Color) error {
	if text == "" {
		return nil
	}
	if size <= 0 {
		return fmt.Errorf("draw text: font size %s", num(size))
	}
	s.FlushEffects()
	attrs := []string{
		`text-anchor="middle"`,
		`dominant-baseline="central"`,
		`font-family="Go, Helvetica, Arial, sans-serif"`,
		`font-weight="bold"`,
		fmt.Sprintf(`font-size="%s"`, num(size)),
		`fill="` + rgb(c) + `"`,
	}
	if a := opacity(c); a != "1" {
		attrs = append(attrs, `fill-opacity="`+a+`"`)
	}
	s.canvas.Text(int(math.Round(cx)), int(math.Round(cy)), text, attrs...)
	return nil
}

func (s *VectorSurface) FlushEffects() {
	if !s.inEffect {
		return
	}
	s.canvas.Gend()
	s.inEffect = false
	s.effect = Effect{}
}

// End closes open groups and the document.
func (s *VectorSurface) End() {
	if s.ended {
		return
	}
	s.ResetClip()
	s.canvas.End()
	s.ended = true
}

func (s *VectorSurface) paintRef(paint Paint) string {
	if paint.Kind == PaintSolid {
		return rgb(paint.Color)
	}
	paint.Effect = Effect{}
	if gid, ok := s.gradients[paint]; ok {
		return "url(#" + gid + ")"
	}
	gid := s.id("grad")
	s.canvas.Def()
	if paint.Kind == PaintRadial {
		fmt.Fprintf(s.canvas.Writer, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`,
			gid, num(paint.Center.X), num(paint.Center.Y), num(paint.Radius))
	} else {
		fmt.Fprintf(s.canvas.Writer, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			gid, num(paint.Start.X), num(paint.Start.Y), num(paint.End.X), num(paint.End.Y))
	}
	fmt.Fprintf(s.canvas.Writer, `<stop offset="0" stop-color="%s" stop-opacity="%s"/>`, rgb(paint.From), opacity(paint.From))
	fmt.Fprintf(s.canvas.Writer, `<stop offset="1" stop-color="%s" stop-opacity="%s"/>`, rgb(paint.To), opacity(paint.To))
	if paint.Kind == PaintRadial {
		fmt.Fprint(s.canvas.Writer, "</radialGradient>\n")
	} else {
		fmt.Fprint(s.canvas.Writer, "</linearGradient>\n")
	}
	s.canvas.DefEnd()
	s.gradients[paint] = gid
	return "url(#" + gid + ")"
}

func (s *VectorSurface) paintOpacity(paint Paint) string {
	if paint.Kind != PaintSolid {
		return ""
	}
	if a := opacity(paint.Color); a != "1" {
		return a
	}
	return ""
}

func rgb(c design.Color) string { return c.Opaque().Hex() }

func opacity(c design.Color) string { return num(float64(c.A) / 255) }
