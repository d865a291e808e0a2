// Command qrafted renders a styled QR code to a file.
//
//	qrafted -content https://example.com -design "dotStyle=dots&frame=scan" -o code.png
//	qrafted -type wifi -form '{"ssid":"Home","password":"secret"}' -format svg -terminal
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrafted/internal/app"
	"github.com/cristianadrielbraun/qrafted/internal/config"
	"github.com/cristianadrielbraun/qrafted/internal/content"
	"github.com/cristianadrielbraun/qrafted/internal/design"
	"github.com/cristianadrielbraun/qrafted/internal/export"
	"github.com/cristianadrielbraun/qrafted/internal/logging"
	"github.com/cristianadrielbraun/qrafted/internal/matrix"
)

type options struct {
	content    string
	kind       string
	form       string
	host       string
	designQS   string
	designFile string
	preset     string
	encoder    string
	format     string
	size       string
	out        string
	terminal   bool
	verbose    bool
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var o options
	flag.StringVar(&o.content, "content", "", "text to encode (ignored when -type is set)")
	flag.StringVar(&o.kind, "type", "", "content type: url, text, wifi, email, sms, call, social, multilink, countdown")
	flag.StringVar(&o.form, "form", "{}", "JSON content form for -type")
	flag.StringVar(&o.host, "host", cfg.PublicURL, "public origin for multilink and countdown pages")
	flag.StringVar(&o.designQS, "design", "", "design as a query string, e.g. \"dotStyle=dots&fg=%23000\"")
	flag.StringVar(&o.designFile, "design-file", "", "JSON design file applied before -design")
	flag.StringVar(&o.preset, "preset", "", "color preset name")
	flag.StringVar(&o.encoder, "encoder", cfg.Encoder, "encoder backend: "+strings.Join(matrix.Backends(), ", "))
	flag.StringVar(&o.format, "format", "png", "png, jpg or svg")
	flag.StringVar(&o.size, "size", "download", "preview, download, batch or pixels")
	flag.StringVar(&o.out, "o", "", "output file (default <product>-qr.<ext>, - for stdout)")
	flag.BoolVar(&o.terminal, "terminal", false, "print a preview to the terminal")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}
	logger := logging.New(level, false)
	cfg.Encoder = o.encoder

	if err := run(context.Background(), cfg, o, logger); err != nil {
		logger.WithError(err).Fatal("qrafted")
	}
}

func run(ctx context.Context, cfg *config.AppConfig, o options, logger *logrus.Logger) error {
	deps, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}

	text, err := buildContent(o)
	if err != nil {
		return err
	}
	dcfg, err := buildDesign(o, deps.Palettes)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}
	limit := cfg.MaxRenderSize
	if limit <= 0 {
		limit = 4000
	}
	size, err := export.ParseSize(o.size, limit)
	if err != nil {
		return err
	}

	out := o.out
	if out == "" {
		out = export.Filename(cfg.ProductName, format)
	}
	w := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.New(deps.Renderer).Encode(ctx, w, text, dcfg, size, format); err != nil {
		return err
	}
	if out != "-" {
		logger.WithField("file", out).Infof("[QR] wrote %dpx %s", size, format)
	}

	if o.terminal {
		// Same encoder and level as the file so both scan identically.
		m, err := deps.Renderer.Source.Encode(text, dcfg.ErrorCorrectionLevel)
		if err != nil {
			return err
		}
		return printHalfBlocks(os.Stderr, m, terminalQuietZone)
	}
	return nil
}

func buildContent(o options) (string, error) {
	if o.kind == "" {
		return o.content, nil
	}
	var form content.Form
	if err := json.Unmarshal([]byte(o.form), &form); err != nil {
		return "", fmt.Errorf("-form: %w", err)
	}
	form.Type = content.Kind(o.kind)
	host := o.host
	if host == "" {
		host = matrix.Placeholder
	}
	return content.Build(form, host)
}

func buildDesign(o options, palettes design.Palettes) (design.Config, error) {
	base := design.Default()
	if o.designFile != "" {
		b, err := os.ReadFile(o.designFile)
		if err != nil {
			return base, err
		}
		if err := json.Unmarshal(b, &base); err != nil {
			return base, fmt.Errorf("%s: %w", o.designFile, err)
		}
	}
	q, err := url.ParseQuery(o.designQS)
	if err != nil {
		return base, fmt.Errorf("-design: %w", err)
	}
	if o.preset != "" {
		q.Set("preset", o.preset)
	}
	return design.FromQuery(q, base, palettes)
}
