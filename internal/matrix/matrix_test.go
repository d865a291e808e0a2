package matrix

import (
	"errors"
	"strings"
	"testing"
)

func allSources(t *testing.T) map[string]Source {
	t.Helper()
	out := map[string]Source{}
	for _, name := range Backends() {
		src, err := NewSource(name)
		if err != nil {
			t.Fatalf("NewSource(%q): %v", name, err)
		}
		out[name] = src
	}
	return out
}

// finderOK checks the 7x7 finder pattern whose top-left module is (r0, c0).
func finderOK(m *BitMatrix, r0, c0 int) bool {
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			ring := r == 0 || r == 6 || c == 0 || c == 6
			ball := r >= 2 && r <= 4 && c >= 2 && c <= 4
			if m.Get(r0+r, c0+c) != (ring || ball) {
				return false
			}
		}
	}
	return true
}

func TestSourcesProduceStandardSymbols(t *testing.T) {
	for name, src := range allSources(t) {
		for _, lvl := range []Level{LevelL, LevelM, LevelQ, LevelH} {
			m, err := src.Encode("https://example.com", lvl)
			if err != nil {
				t.Fatalf("%s/%s: encode: %v", name, lvl, err)
			}
			n := m.Size()
			if n < 21 || n%2 == 0 || (n-17)%4 != 0 {
				t.Fatalf("%s/%s: invalid symbol size %d", name, lvl, n)
			}
			if !finderOK(m, 0, 0) || !finderOK(m, 0, n-7) || !finderOK(m, n-7, 0) {
				t.Fatalf("%s/%s: finder patterns missing", name, lvl)
			}
			if finderOK(m, n-7, n-7) {
				t.Fatalf("%s/%s: unexpected finder at bottom-right", name, lvl)
			}
			for c := 8; c < n-8; c++ {
				if m.Get(6, c) != (c%2 == 0) {
					t.Fatalf("%s/%s: timing pattern broken at col %d", name, lvl, c)
				}
			}
		}
	}
}

func TestExampleURLIsVersion2AtM(t *testing.T) {
	for name, src := range allSources(t) {
		m, err := src.Encode("https://example.com", LevelM)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if m.Size() != 25 {
			t.Fatalf("%s: expected 25 modules, got %d", name, m.Size())
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	src := Yeqown{}
	a, err := src.Encode("hello world", LevelQ)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	b, _ := src.Encode("hello world", LevelQ)
	if !a.Equal(b) {
		t.Fatalf("expected identical matrices")
	}
}

func TestEmptyContentUsesPlaceholder(t *testing.T) {
	src := Skip2{}
	empty, err := src.Encode("", LevelM)
	if err != nil {
		t.Fatalf("encode empty: %v", err)
	}
	ph, _ := src.Encode(Placeholder, LevelM)
	if !empty.Equal(ph) {
		t.Fatalf("empty content should encode the placeholder")
	}
}

func TestTooLongContentIsEncodingError(t *testing.T) {
	long := strings.Repeat("x", 4000)
	for _, src := range []Source{Skip2{}, RSC{}} {
		_, err := src.Encode(long, LevelH)
		if err == nil {
			t.Fatalf("%T: expected error for oversized content", src)
		}
		var encErr *EncodingError
		if !errors.As(err, &encErr) {
			t.Fatalf("%T: expected EncodingError, got %T", src, err)
		}
		if encErr.Level != LevelH {
			t.Fatalf("%T: level not recorded, got %q", src, encErr.Level)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"l": LevelL, "M": LevelM, " q ": LevelQ, "H": LevelH}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("X"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewSourceUnknown(t *testing.T) {
	if _, err := NewSource("nope"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	src, err := NewSource("")
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if _, ok := src.(Yeqown); !ok {
		t.Fatalf("default backend should be yeqown, got %T", src)
	}
}

func TestFromRowsRejectsRagged(t *testing.T) {
	if _, err := FromRows([][]bool{{true, false}, {true}}); err == nil {
		t.Fatalf("expected error for ragged rows")
	}
	m, err := FromRows([][]bool{{true, false}, {false, true}})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if !m.Get(0, 0) || m.Get(0, 1) || !m.Get(1, 1) || m.Get(5, 5) {
		t.Fatalf("unexpected module values")
	}
	if m.Dark() != 2 {
		t.Fatalf("expected 2 dark modules, got %d", m.Dark())
	}
}
