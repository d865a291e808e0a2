package matrix

import (
	"fmt"
	"sort"
	"strings"
)

// Level is a QR error correction level.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelL, LevelM, LevelQ, LevelH:
		return l, nil
	}
	return "", fmt.Errorf("unknown error correction level %q", s)
}

// Placeholder is encoded instead of empty content so a preview always renders.
const Placeholder = "https://qrafted.app"

func contentOrPlaceholder(content string) string {
	if content == "" {
		return Placeholder
	}
	return content
}

// Source turns content into a module matrix. Implementations must be pure:
// the same content and level always yield the same matrix.
type Source interface {
	Encode(content string, level Level) (*BitMatrix, error)
}

// EncodingError reports content that could not be encoded at the requested level.
// Callers decide whether to retry with a lower level.
type EncodingError struct {
	Backend string
	Level   Level
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode with %s at level %s: %v", e.Backend, e.Level, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

var backends = map[string]func() Source{
	"yeqown":    func() Source { return Yeqown{} },
	"skip2":     func() Source { return Skip2{} },
	"rsc":       func() Source { return RSC{} },
	"boombuler": func() Source { return Boombuler{} },
}

// DefaultBackend is used when no backend is configured.
const DefaultBackend = "yeqown"

// NewSource returns the named encoder backend.
func NewSource(name string) (Source, error) {
	if name == "" {
		name = DefaultBackend
	}
	mk, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown QR encoder %q (available: %s)", name, strings.Join(Backends(), ", "))
	}
	return mk(), nil
}

// Backends lists the registered encoder names.
func Backends() []string {
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
