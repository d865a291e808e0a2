package design

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtinPresets []byte

// Palette is a named color preset.
type Palette struct {
	Name  string `yaml:"name" json:"name"`
	Fg    Color  `yaml:"fg" json:"fg"`
	Bg    Color  `yaml:"bg" json:"bg"`
	Label Color  `yaml:"label" json:"label"`
}

// Slug is the lowercase, dash separated form of the name ("royal-blue").
func (p Palette) Slug() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p.Name)), " ", "-")
}

type Palettes []Palette

// Lookup matches by name or slug, ignoring case.
func (ps Palettes) Lookup(name string) (Palette, bool) {
	want := Palette{Name: name}.Slug()
	for _, p := range ps {
		if p.Slug() == want {
			return p, true
		}
	}
	return Palette{}, false
}

// DecodePalettes reads a YAML list of palettes.
func DecodePalettes(r io.Reader) (Palettes, error) {
	var ps Palettes
	if err := yaml.NewDecoder(r).Decode(&ps); err != nil {
		return nil, fmt.Errorf("decode palettes: %w", err)
	}
	for i, p := range ps {
		if p.Name == "" {
			return nil, fmt.Errorf("decode palettes: entry %d has no name", i)
		}
	}
	return ps, nil
}

// LoadPalettes reads palettes from path, or returns the built-in set when
// path is empty.
func LoadPalettes(path string) (Palettes, error) {
	if path == "" {
		return BuiltinPalettes(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palettes: %w", err)
	}
	defer f.Close()
	return DecodePalettes(f)
}

// BuiltinPalettes returns the embedded palettes.
func BuiltinPalettes() Palettes {
	ps, err := DecodePalettes(strings.NewReader(string(builtinPresets)))
	if err != nil {
		panic(err)
	}
	return ps
}
