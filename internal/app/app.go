// Package app wires the renderer and its collaborators from configuration.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrafted/internal/config"
	"github.com/cristianadrielbraun/qrafted/internal/design"
	"github.com/cristianadrielbraun/qrafted/internal/matrix"
	"github.com/cristianadrielbraun/qrafted/internal/render"
)

type Deps struct {
	Renderer *render.Renderer
	Palettes design.Palettes
	Logos    *render.CachedLoader
}

// Build selects the encoder backend, loads the palettes and puts an LRU
// in front of the logo loader.
func Build(cfg *config.AppConfig, log *logrus.Logger) (*Deps, error) {
	src, err := matrix.NewSource(cfg.Encoder)
	if err != nil {
		return nil, err
	}
	palettes, err := design.LoadPalettes(cfg.PresetsFile)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	logos, err := render.NewCachedLoader(render.NewRefLoader(cfg.UploadDir, cfg.LogoFetchTimeout), cfg.LogoCacheSize)
	if err != nil {
		return nil, fmt.Errorf("logo cache: %w", err)
	}
	log.WithFields(logrus.Fields{
		"encoder":   cfg.Encoder,
		"presets":   len(palettes),
		"logoCache": cfg.LogoCacheSize,
	}).Debug("renderer ready")
	return &Deps{
		Renderer: render.New(src, logos, log),
		Palettes: palettes,
		Logos:    logos,
	}, nil
}
