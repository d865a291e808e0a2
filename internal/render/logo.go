package render

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/cristianadrielbraun/qrafted/internal/design"
)

const (
	LogoPadding   = 16
	LogoPadRadius = 12
)

// LogoPadRect is the square behind the logo, centered on the canvas.
func LogoPadRect(width, height, logoSize int) Rect {
	side := float64(logoSize + LogoPadding)
	return Rect{(float64(width) - side) / 2, (float64(height) - side) / 2, side, side}
}

// FitLogo scales img so its longer side is size, keeping the aspect ratio.
func FitLogo(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	scale := float64(size) / math.Max(float64(b.Dx()), float64(b.Dy()))
	w := int(math.Max(1, math.Round(float64(b.Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*scale)))
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// DrawLogo paints the rounded bg pad and the logo centered on it.
func DrawLogo(sf Surface, logo image.Image, logoSize int, bg design.Color) {
	w, h := sf.Width(), sf.Height()
	pad := LogoPadRect(w, h, logoSize)
	sf.FillPath(RoundedRectPath(pad.X, pad.Y, pad.W, pad.H, LogoPadRadius), Solid(bg), NonZero)

	fitted := FitLogo(logo, logoSize)
	b := fitted.Bounds()
	sf.DrawImage(fitted, (w-b.Dx())/2, (h-b.Dy())/2)
}
