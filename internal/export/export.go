// Package export turns renders into downloadable files.
package export

import (
	"archive/zip"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrafted/internal/design"
	"github.com/cristianadrielbraun/qrafted/internal/render"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	SVG  Format = "svg"
)

const (
	DefaultProduct = "qrafted"
	JPEGQuality    = 92

	LabelHeight   = 40
	LabelFontSize = 20
)

// SizeKeywords are the named output sizes of the web UI.
var SizeKeywords = map[string]int{
	"preview":  400,
	"canvas":   600,
	"download": 800,
	"batch":    1000,
}

// MinSize is the smallest accepted output size.
const MinSize = 64

// ParseSize resolves a keyword or a pixel count in [MinSize, limit].
func ParseSize(s string, limit int) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, ok := SizeKeywords[s]; ok {
		return n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n < MinSize || n > limit {
		return 0, fmt.Errorf("size must be between %d and %d", MinSize, limit)
	}
	return n, nil
}

// ParseFormat accepts png, jpg, jpeg and svg. Empty means png.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case SVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// Filename is <product>-qr.<ext>.
func Filename(product string, f Format) string {
	if product == "" {
		product = DefaultProduct
	}
	return fmt.Sprintf("%s-qr.%s", product, f)
}

// Encoder renders and serializes codes.
type Encoder struct {
	Renderer *render.Renderer
}

func New(r *render.Renderer) *Encoder { return &Encoder{Renderer: r} }

// labelShown reports whether a label strip goes under the code.
func labelShown(cfg design.Config) bool {
	return cfg.ShowLabel && strings.TrimSpace(cfg.LabelText) != ""
}

// Height is the output height for a size×size code under cfg.
func Height(cfg design.Config, size int) int {
	if labelShown(cfg) {
		return size + LabelHeight
	}
	return size
}

// squareView hides the label strip from the renderer.
type squareView struct {
	render.Surface
	size int
}

func (v squareView) Width() int  { return v.size }
func (v squareView) Height() int { return v.size }

func drawLabel(sf render.Surface, cfg design.Config, size int) error {
	if !labelShown(cfg) {
		return nil
	}
	strip := render.Rect{X: 0, Y: float64(size), W: float64(size), H: LabelHeight}
	sf.FillPath(strip.Path(), render.Solid(cfg.BgColor), render.NonZero)
	return sf.DrawText(cfg.LabelText, float64(size)/2, float64(size)+LabelHeight/2, LabelFontSize, cfg.LabelColor)
}

// Encode renders content and writes it to w in format f.
func (e *Encoder) Encode(ctx context.Context, w io.Writer, content string, cfg design.Config, size int, f Format) error {
	if size <= 0 {
		return fmt.Errorf("export: invalid size %d", size)
	}
	height := Height(cfg, size)

	if f == SVG {
		vs := render.NewVectorSurface(w, size, height)
		if _, err := e.Renderer.RenderTo(ctx, squareView{vs, size}, content, cfg); err != nil {
			return err
		}
		if err := drawLabel(vs, cfg, size); err != nil {
			return err
		}
		vs.End()
		return nil
	}

	rs := render.NewRasterSurface(size, height)
	if _, err := e.Renderer.RenderTo(ctx, squareView{rs, size}, content, cfg); err != nil {
		return err
	}
	if err := drawLabel(rs, cfg, size); err != nil {
		return err
	}
	return EncodeImage(w, rs.Image(), f, cfg.BgColor)
}

// EncodeImage writes a finished raster. JPEG output is composited over the
// background color, or white when the background is transparent.
func EncodeImage(w io.Writer, img image.Image, f Format, bg design.Color) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		b := img.Bounds()
		out := image.NewRGBA(b)
		base := color.Color(bg.Opaque())
		if bg.IsTransparent() {
			base = color.White
		}
		draw.Draw(out, b, &image.Uniform{C: base}, image.Point{}, draw.Src)
		draw.Draw(out, b, img, b.Min, draw.Over)
		return jpeg.Encode(w, out, &jpeg.Options{Quality: JPEGQuality})
	}
	return fmt.Errorf("export: cannot encode raster as %q", f)
}

// ItemName names the i-th (1-based) file of a batch.
func ItemName(product string, i int, f Format) string {
	if product == "" {
		product = DefaultProduct
	}
	return fmt.Sprintf("%s-qr-%03d.%s", product, i, f)
}

// WriteZip renders every content with the same design into a ZIP archive.
// The first failing item aborts the archive.
func (e *Encoder) WriteZip(ctx context.Context, w io.Writer, contents []string, cfg design.Config, size int, f Format, product string) error {
	zw := zip.NewWriter(w)
	for i, content := range contents {
		if err := ctx.Err(); err != nil {
			return err
		}
		fw, err := zw.Create(ItemName(product, i+1, f))
		if err != nil {
			return err
		}
		if err := e.Encode(ctx, fw, content, cfg, size, f); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return zw.Close()
}
