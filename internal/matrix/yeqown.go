package matrix

import (
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
)

// Yeqown encodes with github.com/yeqown/go-qrcode/v2.
type Yeqown struct{}

func (Yeqown) Encode(content string, level Level) (*BitMatrix, error) {
	qrc, err := qrcode.NewWith(contentOrPlaceholder(content), yeqownLevel(level))
	if err != nil {
		return nil, &EncodingError{Backend: "yeqown", Level: level, Err: err}
	}
	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, &EncodingError{Backend: "yeqown", Level: level, Err: err}
	}
	return w.m, nil
}

func yeqownLevel(l Level) qrcode.EncodeOption {
	switch l {
	case LevelL:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQ:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelH:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
}

// matrixWriter implements qrcode.Writer and captures the symbol without border.
type matrixWriter struct {
	m *BitMatrix
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	if mat.Width() != mat.Height() {
		return fmt.Errorf("non-square matrix %dx%d", mat.Width(), mat.Height())
	}
	m := New(mat.Width())
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		m.set(y, x, v.IsSet())
	})
	w.m = m
	return nil
}

func (w *matrixWriter) Close() error { return nil }
