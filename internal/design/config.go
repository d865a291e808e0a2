// Package design describes how a QR code looks. A Config is a plain value:
// every change produces a new Config and the renderer only reads it.
package design

import (
	"fmt"

	"github.com/cristianadrielbraun/qrafted/internal/matrix"
)

const (
	MinLogoSize     = 30
	MaxLogoSize     = 120
	DefaultLogoSize = 60
)

// Config is the full set of styling options for one render.
type Config struct {
	FgColor Color `json:"fgColor"`
	BgColor Color `json:"bgColor"`

	DotStyle      DotStyle      `json:"dotStyle"`
	EyeFrameStyle EyeStyle      `json:"eyeFrameStyle"`
	EyeBallStyle  EyeStyle      `json:"eyeBallStyle"`
	EyeFrameColor OptionalColor `json:"eyeFrameColor"`
	EyeBallColor  OptionalColor `json:"eyeBallColor"`

	MaskShape            MaskShape    `json:"maskShape"`
	ErrorCorrectionLevel matrix.Level `json:"errorCorrectionLevel"`

	GradientEnabled bool         `json:"gradientEnabled"`
	GradientColor   Color        `json:"gradientColor"`
	GradientType    GradientType `json:"gradientType"`

	ShadowEnabled bool  `json:"shadowEnabled"`
	ShadowColor   Color `json:"shadowColor"`
	GlowEnabled   bool  `json:"glowEnabled"`
	GlowColor     Color `json:"glowColor"`

	FrameStyle       FrameStyle `json:"frameStyle"`
	FrameColor       Color      `json:"frameColor"`
	FrameAccentColor Color      `json:"frameAccentColor"`
	FrameText        string     `json:"frameText"`

	LogoURL  string `json:"logoUrl,omitempty"`
	LogoSize int    `json:"logoSize"`

	LabelText  string `json:"labelText"`
	LabelColor Color  `json:"labelColor"`
	ShowLabel  bool   `json:"showLabel"`
}

// Default mirrors the initial state of the designer.
func Default() Config {
	return Config{
		FgColor:              MustColor("#1e40af"),
		BgColor:              MustColor("#ffffff"),
		DotStyle:             DotSquare,
		EyeFrameStyle:        EyeSquare,
		EyeBallStyle:         EyeSquare,
		MaskShape:            MaskNone,
		ErrorCorrectionLevel: matrix.LevelM,
		GradientColor:        MustColor("#7c3aed"),
		GradientType:         GradientLinear,
		ShadowColor:          MustColor("#00000066"),
		GlowColor:            MustColor("#60a5fa"),
		FrameStyle:           FrameNone,
		FrameColor:           MustColor("#1e40af"),
		FrameAccentColor:     MustColor("#0f172a"),
		LogoSize:             DefaultLogoSize,
		LabelText:            "Scan Me!",
		LabelColor:           MustColor("#1e40af"),
		ShowLabel:            true,
	}
}

// WithShadow toggles the drop shadow. Turning it on turns the glow off.
func (c Config) WithShadow(on bool) Config {
	c.ShadowEnabled = on
	if on {
		c.GlowEnabled = false
	}
	return c
}

// WithGlow toggles the glow. Turning it on turns the shadow off.
func (c Config) WithGlow(on bool) Config {
	c.GlowEnabled = on
	if on {
		c.ShadowEnabled = false
	}
	return c
}

// Inverted swaps foreground and background colors.
func (c Config) Inverted() Config {
	c.FgColor, c.BgColor = c.BgColor, c.FgColor
	return c
}

// WithPalette applies a preset palette's colors.
func (c Config) WithPalette(p Palette) Config {
	c.FgColor = p.Fg
	c.BgColor = p.Bg
	c.LabelColor = p.Label
	return c
}

// ClampLogoSize keeps the logo within [MinLogoSize, MaxLogoSize].
func ClampLogoSize(n int) int {
	switch {
	case n < MinLogoSize:
		return MinLogoSize
	case n > MaxLogoSize:
		return MaxLogoSize
	}
	return n
}

// HasLogo reports whether a logo should be composited.
func (c Config) HasLogo() bool { return c.LogoURL != "" }

// InvalidConfigError reports a structurally invalid Config.
type InvalidConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid design %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid design %s %q: %s", e.Field, e.Value, e.Reason)
}

func invalid(field, value, reason string) error {
	return &InvalidConfigError{Field: field, Value: value, Reason: reason}
}

// Validate fails on the first unknown enum value or contradictory setting.
func (c Config) Validate() error {
	if !c.DotStyle.Valid() {
		return invalid("dotStyle", string(c.DotStyle), "expected one of "+names(dotStyles))
	}
	if !c.EyeFrameStyle.ValidFrame() {
		return invalid("eyeFrameStyle", string(c.EyeFrameStyle), "expected one of "+names(eyeFrameStyles))
	}
	if !c.EyeBallStyle.ValidBall() {
		return invalid("eyeBallStyle", string(c.EyeBallStyle), "expected one of "+names(eyeBallStyles))
	}
	if !c.MaskShape.Valid() {
		return invalid("maskShape", string(c.MaskShape), "expected one of "+names(maskShapes))
	}
	if _, err := matrix.ParseLevel(string(c.ErrorCorrectionLevel)); err != nil {
		return invalid("errorCorrectionLevel", string(c.ErrorCorrectionLevel), "expected one of L, M, Q, H")
	}
	if !c.GradientType.Valid() {
		return invalid("gradientType", string(c.GradientType), "expected one of "+names(gradientTypes))
	}
	if !c.FrameStyle.Valid() {
		return invalid("frameStyle", string(c.FrameStyle), "expected one of "+names(frameStyles))
	}
	if c.ShadowEnabled && c.GlowEnabled {
		return invalid("shadowEnabled", "", "shadow and glow are mutually exclusive")
	}
	if c.LogoURL != "" && (c.LogoSize < MinLogoSize || c.LogoSize > MaxLogoSize) {
		return invalid("logoSize", fmt.Sprint(c.LogoSize), fmt.Sprintf("expected %d..%d", MinLogoSize, MaxLogoSize))
	}
	return nil
}
