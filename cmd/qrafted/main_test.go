package main

import (
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrafted/internal/config"
	"github.com/cristianadrielbraun/qrafted/internal/design"
)

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "code.png")
	cfg := &config.AppConfig{
		Encoder:          "skip2",
		ProductName:      "qrafted",
		UploadDir:        dir,
		LogoFetchTimeout: time.Second,
		LogoCacheSize:    4,
		MaxRenderSize:    1000,
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	o := options{
		kind:     "wifi",
		form:     `{"ssid":"Home","password":"secret"}`,
		designQS: "dotStyle=dots&showLabel=false",
		preset:   "ocean",
		format:   "png",
		size:     "preview",
		out:      out,
		terminal: true,
	}
	if err := run(context.Background(), cfg, o, log); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestBuildDesign(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "design.json")
	if err := os.WriteFile(file, []byte(`{"dotStyle":"diamond","frameStyle":"scan"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := buildDesign(options{designFile: file, designQS: "eyeFrameStyle=circle", preset: "sunset"}, design.BuiltinPalettes())
	if err != nil {
		t.Fatalf("buildDesign: %v", err)
	}
	if cfg.DotStyle != design.DotDiamond || cfg.FrameStyle != design.FrameScan || cfg.EyeFrameStyle != design.EyeCircle {
		t.Fatalf("unexpected design %+v", cfg)
	}
	if cfg.FgColor.Hex() != "#c2410c" {
		t.Fatalf("preset not applied: fg = %s", cfg.FgColor.Hex())
	}

	if _, err := buildDesign(options{designQS: "dotStyle=hexagon"}, design.BuiltinPalettes()); err == nil {
		t.Fatalf("expected invalid design error")
	}
}

func TestBuildContent(t *testing.T) {
	got, err := buildContent(options{kind: "multilink", form: `{"name":"Links","links":[{"title":"a","url":"b.com"}]}`})
	if err != nil {
		t.Fatalf("buildContent: %v", err)
	}
	if !strings.HasPrefix(got, "https://qrafted.app/view?d=") {
		t.Fatalf("content = %q", got)
	}
	if got, _ := buildContent(options{content: "plain"}); got != "plain" {
		t.Fatalf("content = %q", got)
	}
}
