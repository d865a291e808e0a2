package main

import (
	"bufio"
	"io"

	"github.com/mdp/qrterminal/v3"

	"github.com/cristianadrielbraun/qrafted/internal/matrix"
)

const terminalQuietZone = 2

// printHalfBlocks draws m two module rows per line. Light modules are
// filled so the code reads on dark terminals.
func printHalfBlocks(w io.Writer, m *matrix.BitMatrix, quiet int) error {
	bw := bufio.NewWriter(w)
	n := m.Size()
	for row := -quiet; row < n+quiet; row += 2 {
		for col := -quiet; col < n+quiet; col++ {
			// Odd total height: the missing bottom half stays dark.
			bottom := true
			if row+1 < n+quiet {
				bottom = m.Get(row+1, col)
			}
			bw.WriteString(halfBlock(m.Get(row, col), bottom))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func halfBlock(topDark, bottomDark bool) string {
	switch {
	case topDark && bottomDark:
		return qrterminal.BLACK_BLACK
	case topDark:
		return qrterminal.BLACK_WHITE
	case bottomDark:
		return qrterminal.WHITE_BLACK
	}
	return qrterminal.WHITE_WHITE
}
