package matrix

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Skip2 encodes with github.com/skip2/go-qrcode.
type Skip2 struct{}

func (Skip2) Encode(content string, level Level) (*BitMatrix, error) {
	q, err := qrcode.New(contentOrPlaceholder(content), skip2Level(level))
	if err != nil {
		return nil, &EncodingError{Backend: "skip2", Level: level, Err: err}
	}
	q.DisableBorder = true
	m, err := FromRows(q.Bitmap())
	if err != nil {
		return nil, &EncodingError{Backend: "skip2", Level: level, Err: err}
	}
	return m, nil
}

func skip2Level(l Level) qrcode.RecoveryLevel {
	switch l {
	case LevelL:
		return qrcode.Low
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}
