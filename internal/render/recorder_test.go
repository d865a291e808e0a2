package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

type fillCall struct {
	path  *Path
	paint Paint
	rule  FillRule
}

type textCall struct {
	text   string
	cx, cy float64
	color  design.Color
}

// recorder is an in-memory Surface that keeps every call.
type recorder struct {
	w, h    int
	ops     []string
	fills   []fillCall
	strokes []*Path
	clips   []*Path
	images  []image.Rectangle
	texts   []textCall
	textErr error
}

func newRecorder(w, h int) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Width() int  { return r.w }
func (r *recorder) Height() int { return r.h }

func (r *recorder) FillPath(p *Path, paint Paint, rule FillRule) {
	r.ops = append(r.ops, "fill")
	r.fills = append(r.fills, fillCall{p, paint, rule})
}

func (r *recorder) StrokePath(p *Path, paint Paint, width float64) {
	r.ops = append(r.ops, "stroke")
	r.strokes = append(r.strokes, p)
}

func (r *recorder) Clip(p *Path) {
	r.ops = append(r.ops, "clip")
	r.clips = append(r.clips, p)
}

func (r *recorder) ResetClip() { r.ops = append(r.ops, "reset") }

func (r *recorder) DrawImage(img image.Image, x, y int) {
	r.ops = append(r.ops, "image")
	b := img.Bounds()
	r.images = append(r.images, image.Rect(x, y, x+b.Dx(), y+b.Dy()))
}

func (r *recorder) DrawText(text string, cx, cy, size float64, c design.Color) error {
	r.ops = append(r.ops, "text")
	r.texts = append(r.texts, textCall{text, cx, cy, c})
	return r.textErr
}

func (r *recorder) FlushEffects() { r.ops = append(r.ops, "flush") }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func sameColor(t *testing.T, got color.Color, want design.Color, tol int, where string) {
	t.Helper()
	g := color.NRGBAModel.Convert(got).(color.NRGBA)
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}
	if diff(g.R, want.R) > tol || diff(g.G, want.G) > tol || diff(g.B, want.B) > tol || diff(g.A, want.A) > tol {
		t.Fatalf("%s: got %v, want %v", where, g, want)
	}
}
