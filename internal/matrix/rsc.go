package matrix

import (
	rscqr "rsc.io/qr"
)

// RSC encodes with rsc.io/qr.
type RSC struct{}

func (RSC) Encode(content string, level Level) (*BitMatrix, error) {
	code, err := rscqr.Encode(contentOrPlaceholder(content), rscLevel(level))
	if err != nil {
		return nil, &EncodingError{Backend: "rsc", Level: level, Err: err}
	}
	m := New(code.Size)
	for y := 0; y < code.Size; y++ {
		for x := 0; x < code.Size; x++ {
			m.set(y, x, code.Black(x, y))
		}
	}
	return m, nil
}

func rscLevel(l Level) rscqr.Level {
	switch l {
	case LevelL:
		return rscqr.L
	case LevelQ:
		return rscqr.Q
	case LevelH:
		return rscqr.H
	default:
		return rscqr.M
	}
}
