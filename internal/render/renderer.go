// Package render draws styled QR codes onto a Surface.
package render

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrafted/internal/design"
	"github.com/cristianadrielbraun/qrafted/internal/matrix"
)

// QuietZone is the margin around the module grid, in modules.
const QuietZone = 2

// Grid is the integer placement of the module grid on the canvas.
type Grid struct {
	X, Y   int
	Module int
	Count  int
}

// GridTooSmallError reports a grid area that cannot hold one whole pixel
// per module, quiet zone included.
type GridTooSmallError struct {
	Side  int
	Count int
}

func (e *GridTooSmallError) Error() string {
	return fmt.Sprintf("render: %dpx grid area cannot fit %d modules plus quiet zone (need at least %dpx)",
		e.Side, e.Count, e.Count+2*QuietZone)
}

// PlaceGrid centers count modules plus the quiet zone in box. The module
// size is floored so every module lands on whole pixels.
func PlaceGrid(box Rect, count int) (Grid, error) {
	side := math.Min(box.W, box.H)
	m := int(math.Floor(side / float64(count+2*QuietZone)))
	if m < 1 {
		return Grid{}, &GridTooSmallError{Side: int(side), Count: count}
	}
	gs := float64(m * count)
	return Grid{
		X:      int(math.Floor(box.X + (box.W-gs)/2)),
		Y:      int(math.Floor(box.Y + (box.H-gs)/2)),
		Module: m,
		Count:  count,
	}, nil
}

// Box is the area covered by the modules, quiet zone excluded.
func (g Grid) Box() Rect {
	side := float64(g.Module * g.Count)
	return Rect{float64(g.X), float64(g.Y), side, side}
}

// Cell returns the top-left pixel of a module.
func (g Grid) Cell(row, col int) (x, y float64) {
	return float64(g.X + col*g.Module), float64(g.Y + row*g.Module)
}

// Result describes a finished render.
type Result struct {
	Layout Layout
	Grid   Grid
	Logo   bool
}

// Renderer turns content and a design into pixels. It holds no per-render
// state and is safe for concurrent use.
type Renderer struct {
	Source matrix.Source
	Loader Loader
	Log    *logrus.Logger
}

func New(src matrix.Source, loader Loader, log *logrus.Logger) *Renderer {
	return &Renderer{Source: src, Loader: loader, Log: log}
}

func (r *Renderer) logger() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}

// Render draws content on a new size×size raster.
func (r *Renderer) Render(ctx context.Context, content string, cfg design.Config, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("render: invalid size %d", size)
	}
	sf := NewRasterSurface(size, size)
	if _, err := r.RenderTo(ctx, sf, content, cfg); err != nil {
		return nil, err
	}
	return sf.Image(), nil
}

// RenderTo draws content on sf in this order: frame, background patch, mask,
// modules and eyes, effects flush, logo. Encoder errors are returned as is;
// logo errors are logged and the logo is skipped.
func (r *Renderer) RenderTo(ctx context.Context, sf Surface, content string, cfg design.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	m, err := r.Source.Encode(content, cfg.ErrorCorrectionLevel)
	if err != nil {
		return Result{}, err
	}

	w, h := sf.Width(), sf.Height()
	layout, err := DrawFrame(sf, w, h, cfg)
	if err != nil {
		return Result{}, err
	}
	sf.FillPath(layout.PatchPath(), Solid(cfg.BgColor), NonZero)
	if err := ApplyMask(sf, cfg.MaskShape, Rect{0, 0, float64(w), float64(h)}, cfg.BgColor); err != nil {
		return Result{}, err
	}

	grid, err := PlaceGrid(layout.Grid, m.Size())
	if err != nil {
		return Result{}, err
	}
	res := NewResolver(cfg, grid.Box())
	if err := drawModules(sf, m, grid, cfg, res); err != nil {
		return Result{}, err
	}
	sf.FlushEffects()

	out := Result{Layout: layout, Grid: grid}
	if cfg.HasLogo() {
		out.Logo = r.drawLogo(ctx, sf, cfg)
	}
	sf.ResetClip()

	r.logger().WithFields(logrus.Fields{
		"modules": m.Size(),
		"module":  grid.Module,
		"size":    fmt.Sprintf("%dx%d", w, h),
		"dots":    cfg.DotStyle,
		"frame":   cfg.FrameStyle,
		"mask":    cfg.MaskShape,
	}).Debug("[QR] rendered")
	return out, nil
}

func drawModules(sf Surface, m *matrix.BitMatrix, g Grid, cfg design.Config, res *Resolver) error {
	body := res.Body()
	framePaint := res.Resolve(cfg.EyeFrameColor)
	ballPaint := res.Resolve(cfg.EyeBallColor)
	dot := DotShape(cfg.DotStyle)
	size := float64(g.Module)

	n := m.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !m.Get(row, col) {
				continue
			}
			reg := Classify(row, col, n)
			x, y := g.Cell(row, col)
			switch {
			case reg.Origin():
				if err := DrawEye(sf, x, y, size, cfg.EyeFrameStyle, cfg.EyeBallStyle, framePaint, ballPaint); err != nil {
					return err
				}
			case reg.Kind.IsEye():
				// covered by the eye drawn at its origin
			default:
				if err := DrawShape(sf, x, y, size, dot, body); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *Renderer) drawLogo(ctx context.Context, sf Surface, cfg design.Config) bool {
	log := r.logger().WithField("logo", shortRef(cfg.LogoURL))
	if cfg.ErrorCorrectionLevel != matrix.LevelH {
		log.WithField("level", cfg.ErrorCorrectionLevel).Warn("[QR] logo used below error correction H; the code may not scan")
	}
	if r.Loader == nil {
		log.Warn("[QR] no logo loader configured, skipping logo")
		return false
	}
	img, err := r.Loader.Load(ctx, cfg.LogoURL)
	if err != nil {
		log.WithError(err).Warn("[QR] logo skipped")
		return false
	}
	DrawLogo(sf, img, cfg.LogoSize, cfg.BgColor)
	return true
}
