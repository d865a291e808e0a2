package design

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color that marshals as a hex string.
type Color color.NRGBA

// Transparent is the fully transparent color.
var Transparent = Color{}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) { return color.NRGBA(c).RGBA() }

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool { return c.A == 0 }

// Opaque returns the color with full alpha.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) String() string { return c.Hex() }

// Darken scales the RGB channels by f in [0, 1].
func (c Color) Darken(f float64) Color {
	scale := func(v uint8) uint8 { return uint8(float64(v) * (1 - f)) }
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa (the # is optional) and "transparent".
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "transparent" {
		return Transparent, nil
	}
	v = strings.TrimPrefix(v, "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) == 6 {
		v += "ff"
	}
	if len(v) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// MustColor is ParseColor for literals known to be valid.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// OptionalColor is a color that may be absent. Fallback rules live with the
// code that consumes it, not here.
type OptionalColor struct {
	Color Color
	Valid bool
}

// Some wraps a present color.
func Some(c Color) OptionalColor { return OptionalColor{Color: c, Valid: true} }

// Get returns the color and whether it is set.
func (o OptionalColor) Get() (Color, bool) { return o.Color, o.Valid }

func (o OptionalColor) MarshalText() ([]byte, error) {
	if !o.Valid {
		return []byte{}, nil
	}
	return o.Color.MarshalText()
}

func (o *OptionalColor) UnmarshalText(b []byte) error {
	if strings.TrimSpace(string(b)) == "" {
		*o = OptionalColor{}
		return nil
	}
	var c Color
	if err := c.UnmarshalText(b); err != nil {
		return err
	}
	*o = Some(c)
	return nil
}
