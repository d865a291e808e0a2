package design

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrafted/internal/matrix"
)

// FromQuery overlays query parameters on base. A "preset" parameter is looked
// up in palettes. Unknown keys are ignored, malformed values are reported as
// *InvalidConfigError.
func FromQuery(q url.Values, base Config, palettes Palettes) (Config, error) {
	c := base
	var err error

	if name := q.Get("preset"); name != "" {
		p, ok := palettes.Lookup(name)
		if !ok {
			return c, invalid("preset", name, "unknown palette")
		}
		c = c.WithPalette(p)
	}

	colors := []struct {
		key string
		dst *Color
	}{
		{"fg", &c.FgColor},
		{"bg", &c.BgColor},
		{"gradientColor", &c.GradientColor},
		{"shadowColor", &c.ShadowColor},
		{"glowColor", &c.GlowColor},
		{"frameColor", &c.FrameColor},
		{"frameAccentColor", &c.FrameAccentColor},
		{"labelColor", &c.LabelColor},
	}
	for _, p := range colors {
		if err = colorParam(q, p.key, p.dst); err != nil {
			return c, err
		}
	}
	overrides := []struct {
		key string
		dst *OptionalColor
	}{
		{"eyeFrameColor", &c.EyeFrameColor},
		{"eyeBallColor", &c.EyeBallColor},
	}
	for _, p := range overrides {
		if !q.Has(p.key) {
			continue
		}
		if err := p.dst.UnmarshalText([]byte(q.Get(p.key))); err != nil {
			return c, invalid(p.key, q.Get(p.key), "not a color")
		}
	}

	if v := q.Get("dotStyle"); v != "" {
		if v == "circle" {
			v = string(DotDots)
		}
		c.DotStyle = DotStyle(v)
	}
	if v := q.Get("eyeFrameStyle"); v != "" {
		c.EyeFrameStyle = EyeStyle(v)
	}
	if v := q.Get("eyeBallStyle"); v != "" {
		c.EyeBallStyle = EyeStyle(v)
	}
	if v := first(q, "mask", "maskShape"); v != "" {
		c.MaskShape = MaskShape(v)
	}
	if v := first(q, "ec", "errorCorrectionLevel"); v != "" {
		lvl, err := matrix.ParseLevel(v)
		if err != nil {
			return c, invalid("errorCorrectionLevel", v, "expected one of L, M, Q, H")
		}
		c.ErrorCorrectionLevel = lvl
	}
	if v := q.Get("gradientType"); v != "" {
		c.GradientType = GradientType(v)
	}
	if v := q.Get("frame"); v != "" {
		c.FrameStyle = FrameStyle(v)
	}
	if q.Has("frameText") {
		c.FrameText = q.Get("frameText")
	}
	if v := q.Get("logoUrl"); v != "" {
		c.LogoURL = strings.TrimSpace(v)
	}
	if v := q.Get("logoSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, invalid("logoSize", v, "not an integer")
		}
		c.LogoSize = ClampLogoSize(n)
	}
	if q.Has("labelText") {
		c.LabelText = q.Get("labelText")
	}

	if c.GradientEnabled, err = boolParam(q, "gradient", c.GradientEnabled); err != nil {
		return c, err
	}
	if c.ShowLabel, err = boolParam(q, "showLabel", c.ShowLabel); err != nil {
		return c, err
	}
	shadow, err := boolParam(q, "shadow", c.ShadowEnabled)
	if err != nil {
		return c, err
	}
	glow, err := boolParam(q, "glow", c.GlowEnabled)
	if err != nil {
		return c, err
	}
	if q.Get("shadow") != "" && q.Get("glow") != "" && shadow && glow {
		return c, invalid("shadow", "", "shadow and glow are mutually exclusive")
	}
	if q.Get("shadow") != "" {
		c = c.WithShadow(shadow)
	}
	if q.Get("glow") != "" {
		c = c.WithGlow(glow)
	}

	invert, err := boolParam(q, "invert", false)
	if err != nil {
		return c, err
	}
	if invert {
		c = c.Inverted()
	}
	return c, c.Validate()
}

func first(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}

func colorParam(q url.Values, key string, dst *Color) error {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	col, err := ParseColor(v)
	if err != nil {
		return invalid(key, v, "not a color")
	}
	*dst = col
	return nil
}

func boolParam(q url.Values, key string, def bool) (bool, error) {
	v := q.Get(key)
	switch strings.ToLower(v) {
	case "":
		return def, nil
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return def, invalid(key, v, "not a boolean")
}
