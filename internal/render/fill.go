package render

import "github.com/cristianadrielbraun/qrafted/internal/design"

const (
	ShadowBlur   = 10
	ShadowOffset = 3
	GlowBlur     = 15
)

// Resolver hands out paints for one render. The gradient is computed once
// against the grid box so every module samples the same field.
type Resolver struct {
	fill   Paint
	effect Effect
}

// NewResolver prepares the body paint and effect for cfg over box.
func NewResolver(cfg design.Config, box Rect) *Resolver {
	r := &Resolver{fill: Solid(cfg.FgColor)}
	if cfg.GradientEnabled {
		switch cfg.GradientType {
		case design.GradientRadial:
			r.fill = RadialGradient(cfg.FgColor, cfg.GradientColor, box.Center(), box.W/2)
		default:
			r.fill = LinearGradient(cfg.FgColor, cfg.GradientColor,
				Point{box.X, box.Y}, Point{box.X + box.W, box.Y + box.H})
		}
	}
	switch {
	case cfg.ShadowEnabled:
		r.effect = Effect{Blur: ShadowBlur, DX: ShadowOffset, DY: ShadowOffset, Color: cfg.ShadowColor}
	case cfg.GlowEnabled:
		r.effect = Effect{Blur: GlowBlur, Color: cfg.GlowColor}
	}
	return r
}

// Resolve returns the paint for a draw call. A set override is used as a
// solid color and ignores the gradient; otherwise the shared body paint.
func (r *Resolver) Resolve(override design.OptionalColor) Paint {
	p := r.fill
	if c, ok := override.Get(); ok {
		p = Solid(c)
	}
	return p.WithEffect(r.effect)
}

// Body is Resolve with no override.
func (r *Resolver) Body() Paint { return r.Resolve(design.OptionalColor{}) }
