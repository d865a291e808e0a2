package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrafted/internal/design"
	"github.com/cristianadrielbraun/qrafted/internal/matrix"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testRenderer(loader Loader) *Renderer {
	return New(matrix.Yeqown{}, loader, quietLogger())
}

func plainConfig() design.Config {
	cfg := design.Default()
	cfg.FgColor = design.MustColor("#000000")
	cfg.BgColor = design.MustColor("#ffffff")
	return cfg
}

func renderResult(t *testing.T, r *Renderer, content string, cfg design.Config, size int) (*image.RGBA, Result) {
	t.Helper()
	sf := NewRasterSurface(size, size)
	res, err := r.RenderTo(context.Background(), sf, content, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return sf.Image(), res
}

// Scenario A: the all-square render reproduces the encoder's module grid.
func TestRenderPlainMatchesMatrix(t *testing.T) {
	const content = "https://example.com"
	cfg := plainConfig()
	img, res := renderResult(t, testRenderer(nil), content, cfg, 600)

	want, err := matrix.Yeqown{}.Encode(content, matrix.LevelM)
	if err != nil {
		t.Fatal(err)
	}
	g := res.Grid
	if g.Count != want.Size() || g.Module != 600/(want.Size()+2*QuietZone) {
		t.Fatalf("grid = %+v for %d modules", g, want.Size())
	}
	for row := 0; row < g.Count; row++ {
		for col := 0; col < g.Count; col++ {
			x, y := g.Cell(row, col)
			expect := cfg.BgColor
			if want.Get(row, col) {
				expect = cfg.FgColor
			}
			for _, d := range []int{0, g.Module / 2, g.Module - 1} {
				sameColor(t, img.At(int(x)+d, int(y)+d), expect, 0, "module")
			}
		}
	}
	// quiet zone
	sameColor(t, img.At(g.X-1, g.Y-1), cfg.BgColor, 0, "quiet zone")
}

func TestRenderDecodes(t *testing.T) {
	const content = "https://example.com"
	img, _ := renderResult(t, testRenderer(nil), content, plainConfig(), 400)

	padded := image.NewRGBA(image.Rect(0, 0, 600, 600))
	draw.Draw(padded, padded.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(padded, img.Bounds().Add(image.Pt(100, 100)), img, image.Point{}, draw.Over)

	bmp, err := gozxing.NewBinaryBitmapFromImage(padded)
	if err != nil {
		t.Fatalf("bitmap: %v", err)
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.GetText() != content {
		t.Fatalf("decoded %q, want %q", result.GetText(), content)
	}
}

func TestRenderDeterministic(t *testing.T) {
	cfg := plainConfig()
	cfg.DotStyle = design.DotDots
	cfg.EyeFrameStyle = design.EyeLeaf
	cfg.EyeBallStyle = design.EyeStar
	cfg.GradientEnabled = true
	cfg.MaskShape = design.MaskHeart
	cfg.FrameStyle = design.FrameBadge
	cfg = cfg.WithShadow(true)

	r := testRenderer(nil)
	a, err := r.Render(context.Background(), "determinism", cfg, 300)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(context.Background(), "determinism", cfg, 300)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two renders of the same input differ")
	}
}

// Scenario D: toggling the gradient on and off restores the original pixels.
func TestGradientRoundTrip(t *testing.T) {
	r := testRenderer(nil)
	base := plainConfig()
	base.GradientColor = design.MustColor("#ff0000")

	off, err := r.Render(context.Background(), "round trip", base, 300)
	if err != nil {
		t.Fatal(err)
	}
	on, err := r.Render(context.Background(), "round trip", func() design.Config { c := base; c.GradientEnabled = true; return c }(), 300)
	if err != nil {
		t.Fatal(err)
	}
	again, err := r.Render(context.Background(), "round trip", base, 300)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(off.Pix, on.Pix) {
		t.Fatal("gradient had no effect")
	}
	if !bytes.Equal(off.Pix, again.Pix) {
		t.Fatal("disabling the gradient did not restore the original render")
	}
}

func TestLinearGradientEndpoints(t *testing.T) {
	cfg := plainConfig()
	cfg.FgColor = design.MustColor("#ff0000")
	cfg.GradientColor = design.MustColor("#0000ff")
	cfg.GradientEnabled = true
	img, res := renderResult(t, testRenderer(nil), "https://example.com", cfg, 600)
	g := res.Grid
	box := g.Box()

	// top-left-most drawn pixel is the corner of the top-left eye
	sameColor(t, img.At(g.X, g.Y), cfg.FgColor, 1, "gradient start")

	// the bottom-right corner of the top-right and bottom-left eyes sit at t≈0.5
	lerp := func(tt float64) design.Color {
		mix := func(a, b uint8) uint8 { return uint8(float64(a)*(1-tt) + float64(b)*tt) }
		return design.Color{R: mix(cfg.FgColor.R, cfg.GradientColor.R), G: mix(cfg.FgColor.G, cfg.GradientColor.G), B: mix(cfg.FgColor.B, cfg.GradientColor.B), A: 255}
	}
	px := int(box.X+box.W) - 1
	py := g.Y
	tt := (float64(px-g.X) + float64(py-g.Y)) / (2 * box.W)
	sameColor(t, img.At(px, py), lerp(tt), 2, "top-right eye corner")

	// the gradient reaches the second color at the far corner of the grid box
	far := NewResolver(cfg, box).Body()
	if far.End != (Point{box.X + box.W, box.Y + box.H}) || far.To != cfg.GradientColor {
		t.Fatalf("gradient does not end at the grid corner: %+v", far)
	}
	// the lowest dark module of the last column is well past the midpoint
	for row := g.Count - 1; row >= EyeSize; row-- {
		x, y := g.Cell(row, g.Count-1)
		px, py := int(x)+g.Module-1, int(y)+g.Module-1
		if c := img.RGBAAt(px, py); c.R == 255 && c.G == 255 && c.B == 255 {
			continue
		}
		tt := (float64(px-g.X) + float64(py-g.Y)) / (2 * box.W)
		if tt < 0.6 {
			t.Fatalf("t = %v at the lowest dark module of the last column", tt)
		}
		sameColor(t, img.At(px, py), lerp(tt), 2, "late gradient pixel")
		return
	}
	t.Fatal("no dark body module in the last column")
}

// Changing the body style never touches the eyes and vice versa.
func TestStyleIsolation(t *testing.T) {
	r := testRenderer(nil)
	base := plainConfig()

	a, res := renderResult(t, r, "isolation", base, 400)
	dots := base
	dots.DotStyle = design.DotDiamond
	b, _ := renderResult(t, r, "isolation", dots, 400)
	eyes := base
	eyes.EyeFrameStyle = design.EyeCircle
	eyes.EyeBallStyle = design.EyeStar
	c, _ := renderResult(t, r, "isolation", eyes, 400)

	g := res.Grid
	n := g.Count
	inEye := func(x, y int) bool {
		col, row := (x-g.X)/g.Module, (y-g.Y)/g.Module
		if x < g.X || y < g.Y || col >= n || row >= n {
			return false
		}
		return Classify(row, col, n).Kind.IsEye()
	}
	for y := g.Y; y < g.Y+n*g.Module; y++ {
		for x := g.X; x < g.X+n*g.Module; x++ {
			if inEye(x, y) {
				if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
					t.Fatalf("dot style changed eye pixel (%d,%d)", x, y)
				}
			} else if a.RGBAAt(x, y) != c.RGBAAt(x, y) {
				t.Fatalf("eye style changed body pixel (%d,%d)", x, y)
			}
		}
	}
}

// maskCoverage rasterizes the mask path as a reference alpha mask.
func maskCoverage(t *testing.T, shape design.MaskShape, size int) *image.Alpha {
	t.Helper()
	p, err := MaskPath(shape, Rect{0, 0, float64(size), float64(size)})
	if err != nil || p == nil {
		t.Fatalf("MaskPath(%s) = %v, %v", shape, p, err)
	}
	dc := gg.NewContext(size, size)
	p.Walk(dc)
	dc.SetRGB(1, 1, 1)
	dc.Fill()
	rgba := dc.Image().(*image.RGBA)
	a := image.NewAlpha(rgba.Bounds())
	for i := 0; i < size*size; i++ {
		a.Pix[i] = rgba.Pix[i*4+3]
	}
	return a
}

// outsideMask reports whether (x, y) and its neighbors get no coverage.
func outsideMask(a *image.Alpha, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			px, py := x+dx, y+dy
			if !(image.Point{px, py}.In(a.Rect)) {
				continue
			}
			if a.AlphaAt(px, py).A != 0 {
				return false
			}
		}
	}
	return true
}

// Scenario B: nothing is drawn outside any mask shape.
func TestMaskOutsideIsBackground(t *testing.T) {
	const size = 300
	for _, shape := range []design.MaskShape{design.MaskCircle, design.MaskHeart, design.MaskStar} {
		ref := maskCoverage(t, shape, size)
		for _, bg := range []string{"#ffffff", "transparent"} {
			for _, dot := range []design.DotStyle{design.DotSquare, design.DotStripe} {
				cfg := plainConfig()
				cfg.BgColor = design.MustColor(bg)
				cfg.DotStyle = dot
				cfg.MaskShape = shape
				img, err := testRenderer(nil).Render(context.Background(), "https://example.com/mask", cfg, size)
				if err != nil {
					t.Fatal(err)
				}
				outside := 0
				for y := 0; y < size; y++ {
					for x := 0; x < size; x++ {
						if !outsideMask(ref, x, y) {
							continue
						}
						outside++
						sameColor(t, img.At(x, y), cfg.BgColor, 0, string(shape)+" outside mask")
					}
				}
				if outside == 0 {
					t.Fatalf("%s: reference mask covers the whole canvas", shape)
				}
			}
		}
	}
}

func TestRenderOrder(t *testing.T) {
	cfg := plainConfig()
	cfg.FrameStyle = design.FrameSimple
	cfg.MaskShape = design.MaskCircle
	cfg.LogoURL = "stub"
	cfg.ErrorCorrectionLevel = matrix.LevelH
	rec := newRecorder(600, 600)
	res, err := testRenderer(stubLoader{img: solidImage(40, 40, color.NRGBA{255, 0, 0, 255})}).RenderTo(context.Background(), rec, "order", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Logo {
		t.Fatal("logo not drawn")
	}
	ops := strings.Join(rec.ops, " ")
	if !strings.HasPrefix(ops, "fill fill clip fill fill") {
		t.Fatalf("frame, patch, mask should come first: %s", ops)
	}
	if !strings.HasSuffix(ops, "flush fill image reset") {
		t.Fatalf("effects flush, logo pad, logo, reset should come last: %s", ops)
	}
}

// Every dark module is drawn exactly once: three eyes plus one fill per dark
// body cell.
func TestModuleCoverage(t *testing.T) {
	m, err := matrix.Yeqown{}.Encode("coverage", matrix.LevelQ)
	if err != nil {
		t.Fatal(err)
	}
	body := 0
	for row := 0; row < m.Size(); row++ {
		for col := 0; col < m.Size(); col++ {
			if m.Get(row, col) && !Classify(row, col, m.Size()).Kind.IsEye() {
				body++
			}
		}
	}
	cfg := plainConfig()
	cfg.ErrorCorrectionLevel = matrix.LevelQ
	rec := newRecorder(500, 500)
	if _, err := testRenderer(nil).RenderTo(context.Background(), rec, "coverage", cfg); err != nil {
		t.Fatal(err)
	}
	// frame background and patch come first
	if got, want := len(rec.fills)-2, body+3*2; got != want {
		t.Fatalf("module fills = %d, want %d", got, want)
	}
	evenOdd := 0
	for _, f := range rec.fills {
		if f.rule == EvenOdd {
			evenOdd++
		}
	}
	if evenOdd != 3 {
		t.Fatalf("%d eye rings drawn, want 3", evenOdd)
	}
}

// Scenario E: a 60px logo sits on a 76px bg pad at the canvas center.
func TestLogoPad(t *testing.T) {
	if got := LogoPadRect(600, 600, 60); got != (Rect{262, 262, 76, 76}) {
		t.Fatalf("pad = %+v", got)
	}
	cfg := plainConfig()
	cfg.BgColor = design.MustColor("#fafafa")
	cfg.LogoURL = "stub"
	cfg.LogoSize = 60
	cfg.ErrorCorrectionLevel = matrix.LevelH
	cfg = cfg.WithShadow(true)
	red := color.NRGBA{255, 0, 0, 255}
	img, res := renderResult(t, testRenderer(stubLoader{img: solidImage(40, 40, red)}), "https://example.com/logo", cfg, 600)
	if !res.Logo {
		t.Fatal("logo not drawn")
	}
	// pad ring between the pad edge and the logo
	for _, p := range [][2]int{{265, 300}, {334, 300}, {300, 265}, {300, 334}} {
		sameColor(t, img.At(p[0], p[1]), cfg.BgColor, 0, "logo pad")
	}
	for _, p := range [][2]int{{271, 271}, {300, 300}, {328, 328}} {
		sameColor(t, img.At(p[0], p[1]), design.Color(red), 2, "logo")
	}
}

func TestLogoFailureIsSkipped(t *testing.T) {
	cfg := plainConfig()
	cfg.LogoURL = "broken"
	loader := stubLoader{err: &AssetLoadError{Ref: "broken", Err: errors.New("boom")}}
	withLogo, res := renderResult(t, testRenderer(loader), "skip", cfg, 300)
	if res.Logo {
		t.Fatal("failed logo reported as drawn")
	}
	cfg.LogoURL = ""
	without, _ := renderResult(t, testRenderer(nil), "skip", cfg, 300)
	if !bytes.Equal(withLogo.Pix, without.Pix) {
		t.Fatal("failed logo changed the render")
	}
}

func TestRenderErrors(t *testing.T) {
	r := New(matrix.Skip2{}, nil, quietLogger())
	cfg := plainConfig()
	cfg.ErrorCorrectionLevel = matrix.LevelH
	_, err := r.Render(context.Background(), strings.Repeat("x", 4000), cfg, 300)
	var encErr *matrix.EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}

	bad := plainConfig()
	bad.DotStyle = "hexagon"
	_, err = r.Render(context.Background(), "x", bad, 300)
	var cfgErr *design.InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}

	if _, err := r.Render(context.Background(), "x", plainConfig(), 0); err == nil {
		t.Fatal("expected error for zero size")
	}

	// 600 bytes need far more than 64px worth of modules.
	_, err = r.Render(context.Background(), strings.Repeat("a", 600), plainConfig(), 64)
	var small *GridTooSmallError
	if !errors.As(err, &small) {
		t.Fatalf("expected GridTooSmallError, got %v", err)
	}
	if small.Side != 64 || small.Count+2*QuietZone <= 64 {
		t.Fatalf("unexpected error %+v", small)
	}
}

func TestPlaceGrid(t *testing.T) {
	g, err := PlaceGrid(Rect{0, 0, 600, 600}, 25)
	if err != nil {
		t.Fatal(err)
	}
	if g.Module != 20 || g.X != 50 || g.Y != 50 {
		t.Fatalf("grid = %+v", g)
	}
	if _, err := PlaceGrid(Rect{0, 0, 28, 28}, 25); err == nil {
		t.Fatal("expected error when modules need less than a pixel")
	}
	if _, err := PlaceGrid(Rect{0, 0, 29, 29}, 25); err != nil {
		t.Fatalf("29px fits 25+4 modules: %v", err)
	}
}

func TestEffectsChangeOutput(t *testing.T) {
	r := testRenderer(nil)
	base := plainConfig()
	plain, _ := renderResult(t, r, "effects", base, 300)
	shadow, _ := renderResult(t, r, "effects", base.WithShadow(true), 300)
	glow, _ := renderResult(t, r, "effects", base.WithGlow(true), 300)
	if bytes.Equal(plain.Pix, shadow.Pix) || bytes.Equal(plain.Pix, glow.Pix) || bytes.Equal(shadow.Pix, glow.Pix) {
		t.Fatal("shadow and glow should each change the render")
	}
}

func TestVectorSurface(t *testing.T) {
	cfg := plainConfig()
	cfg.GradientEnabled = true
	cfg.MaskShape = design.MaskStar
	cfg.FrameStyle = design.FrameSocial
	cfg = cfg.WithGlow(true)

	var buf bytes.Buffer
	sf := NewVectorSurface(&buf, 600, 600)
	if _, err := testRenderer(nil).RenderTo(context.Background(), sf, "vector", cfg); err != nil {
		t.Fatal(err)
	}
	sf.End()
	out := buf.String()
	for _, want := range []string{"<svg", "<clipPath", "feDropShadow", `fill-rule="evenodd"`, DefaultCaption, "</svg>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
	if n := strings.Count(out, "<linearGradient"); n != 1 {
		t.Fatalf("gradient defined %d times, want once", n)
	}
	if strings.Count(out, "<g") != strings.Count(out, "</g>") {
		t.Fatal("unbalanced groups")
	}
}

type stubLoader struct {
	img image.Image
	err error
}

func (s stubLoader) Load(context.Context, string) (image.Image, error) { return s.img, s.err }

func solidImage(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
