package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "LOG_LEVEL", "QR_ENCODER", "PRODUCT_NAME", "PUBLIC_URL",
		"UPLOAD_DIR", "PRESETS_FILE", "LOGO_FETCH_TIMEOUT", "LOGO_CACHE_SIZE", "MAX_RENDER_SIZE", "MAX_BATCH_ITEMS"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.Encoder != "yeqown" || cfg.ProductName != "qrafted" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.LogoFetchTimeout != 5*time.Second || cfg.LogoCacheSize != 64 || cfg.MaxBatchItems != 50 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Production() {
		t.Fatalf("development env reported as production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("QR_ENCODER", "RSC")
	t.Setenv("PUBLIC_URL", "https://qr.example.com/")
	t.Setenv("LOGO_FETCH_TIMEOUT", "1500ms")
	t.Setenv("MAX_RENDER_SIZE", "1200")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":9000" || !cfg.Production() || cfg.Encoder != "rsc" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.PublicURL != "https://qr.example.com" {
		t.Fatalf("PublicURL = %q", cfg.PublicURL)
	}
	if cfg.LogoFetchTimeout != 1500*time.Millisecond || cfg.MaxRenderSize != 1200 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"LOGO_FETCH_TIMEOUT": "soon",
		"LOGO_CACHE_SIZE":    "-1",
		"MAX_RENDER_SIZE":    "big",
		"MAX_BATCH_ITEMS":    "0",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}
