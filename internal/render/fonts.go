package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

// BoldFace returns a new Go Bold face at size pixels. The parsed font is
// shared; faces are not, since a face keeps glyph buffers.
func BoldFace(size float64) (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	if boldErr != nil {
		return nil, fmt.Errorf("parse gobold: %w", boldErr)
	}
	f, err := opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("bold face %.1fpx: %w", size, err)
	}
	return f, nil
}
