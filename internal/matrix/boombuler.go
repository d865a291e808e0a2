package matrix

import (
	"fmt"

	bqr "github.com/boombuler/barcode/qr"
)

// Boombuler encodes with github.com/boombuler/barcode/qr.
type Boombuler struct{}

func (Boombuler) Encode(content string, level Level) (*BitMatrix, error) {
	code, err := bqr.Encode(contentOrPlaceholder(content), boombulerLevel(level), bqr.Auto)
	if err != nil {
		return nil, &EncodingError{Backend: "boombuler", Level: level, Err: err}
	}
	b := code.Bounds()
	if b.Dx() != b.Dy() {
		return nil, &EncodingError{Backend: "boombuler", Level: level, Err: fmt.Errorf("non-square symbol %dx%d", b.Dx(), b.Dy())}
	}
	m := New(b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.set(y, x, r < 0x8000)
		}
	}
	return m, nil
}

func boombulerLevel(l Level) bqr.ErrorCorrectionLevel {
	switch l {
	case LevelL:
		return bqr.L
	case LevelQ:
		return bqr.Q
	case LevelH:
		return bqr.H
	default:
		return bqr.M
	}
}
