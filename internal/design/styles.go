package design

import "strings"

// DotStyle is the shape of body modules.
type DotStyle string

const (
	DotSquare  DotStyle = "square"
	DotRounded DotStyle = "rounded"
	DotDots    DotStyle = "dots"
	DotDiamond DotStyle = "diamond"
	DotGlitch  DotStyle = "glitch"
	DotStripe  DotStyle = "stripe"
)

var dotStyles = []DotStyle{DotSquare, DotRounded, DotDots, DotDiamond, DotGlitch, DotStripe}

// EyeStyle is the shape of a finder pattern part. EyeStar is only valid for the ball.
type EyeStyle string

const (
	EyeSquare  EyeStyle = "square"
	EyeRounded EyeStyle = "rounded"
	EyeCircle  EyeStyle = "circle"
	EyeLeaf    EyeStyle = "leaf"
	EyeDiamond EyeStyle = "diamond"
	EyeStar    EyeStyle = "star"
)

var (
	eyeFrameStyles = []EyeStyle{EyeSquare, EyeRounded, EyeCircle, EyeLeaf, EyeDiamond}
	eyeBallStyles  = []EyeStyle{EyeSquare, EyeRounded, EyeCircle, EyeLeaf, EyeDiamond, EyeStar}
)

// MaskShape clips the whole code.
type MaskShape string

const (
	MaskNone   MaskShape = "none"
	MaskCircle MaskShape = "circle"
	MaskHeart  MaskShape = "heart"
	MaskStar   MaskShape = "star"
)

var maskShapes = []MaskShape{MaskNone, MaskCircle, MaskHeart, MaskStar}

type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

var gradientTypes = []GradientType{GradientLinear, GradientRadial}

// FrameStyle is the decoration drawn around the code.
type FrameStyle string

const (
	FrameNone     FrameStyle = "none"
	FrameSimple   FrameStyle = "simple"
	FrameRounded  FrameStyle = "rounded"
	FrameBadge    FrameStyle = "badge"
	FramePhone    FrameStyle = "phone"
	FrameCircle   FrameStyle = "circle"
	FrameBusiness FrameStyle = "business"
	FrameSocial   FrameStyle = "social"
	FrameScan     FrameStyle = "scan"
	FrameGift     FrameStyle = "gift"
)

var frameStyles = []FrameStyle{
	FrameNone, FrameSimple, FrameRounded, FrameBadge, FramePhone,
	FrameCircle, FrameBusiness, FrameSocial, FrameScan, FrameGift,
}

func oneOf[T ~string](v T, set []T) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

func names[T ~string](set []T) string {
	out := make([]string, len(set))
	for i, s := range set {
		out[i] = string(s)
	}
	return strings.Join(out, ", ")
}

func (s DotStyle) Valid() bool     { return oneOf(s, dotStyles) }
func (m MaskShape) Valid() bool    { return oneOf(m, maskShapes) }
func (g GradientType) Valid() bool { return oneOf(g, gradientTypes) }
func (f FrameStyle) Valid() bool   { return oneOf(f, frameStyles) }

// ValidFrame reports whether the style can be used for the eye frame.
func (s EyeStyle) ValidFrame() bool { return oneOf(s, eyeFrameStyles) }

// ValidBall reports whether the style can be used for the eye ball.
func (s EyeStyle) ValidBall() bool { return oneOf(s, eyeBallStyles) }

// DotStyles lists the body module styles in UI order.
func DotStyles() []DotStyle { return append([]DotStyle(nil), dotStyles...) }

// FrameStyles lists the frame styles in UI order.
func FrameStyles() []FrameStyle { return append([]FrameStyle(nil), frameStyles...) }
