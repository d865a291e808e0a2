// Package matrix holds the QR module grid and the encoders that produce it.
package matrix

import "fmt"

// BitMatrix is a square grid of QR modules. A set module is dark.
// It is never modified once an encoder has returned it.
type BitMatrix struct {
	size int
	bits []bool
}

// New returns an empty size x size matrix.
func New(size int) *BitMatrix {
	return &BitMatrix{size: size, bits: make([]bool, size*size)}
}

// FromRows copies a square [][]bool bitmap (rows of columns) into a BitMatrix.
func FromRows(rows [][]bool) (*BitMatrix, error) {
	n := len(rows)
	m := New(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d modules, want %d", r, len(row), n)
		}
		for c, v := range row {
			m.set(r, c, v)
		}
	}
	return m, nil
}

// Size is the number of modules per side.
func (m *BitMatrix) Size() int { return m.size }

// Get reports whether the module at (row, col) is dark. Out of range is light.
func (m *BitMatrix) Get(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.bits[row*m.size+col]
}

// Dark counts the dark modules.
func (m *BitMatrix) Dark() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Equal reports whether both matrices have the same size and modules.
func (m *BitMatrix) Equal(o *BitMatrix) bool {
	if o == nil || m.size != o.size {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

func (m *BitMatrix) set(row, col int, v bool) {
	m.bits[row*m.size+col] = v
}
