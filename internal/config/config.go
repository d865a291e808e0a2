package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	Port             string
	Env              string
	LogLevel         string
	Encoder          string
	ProductName      string
	PublicURL        string
	UploadDir        string
	PresetsFile      string
	LogoFetchTimeout time.Duration
	LogoCacheSize    int
	MaxRenderSize    int
	MaxBatchItems    int
}

// Production reports whether APP_ENV selects production behavior.
func (c *AppConfig) Production() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// Addr is the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func Load() (*AppConfig, error) {
	timeout, err := time.ParseDuration(getEnv("LOGO_FETCH_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("LOGO_FETCH_TIMEOUT: %w", err)
	}
	cacheSize, err := getInt("LOGO_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	maxSize, err := getInt("MAX_RENDER_SIZE", 2000)
	if err != nil {
		return nil, err
	}
	maxBatch, err := getInt("MAX_BATCH_ITEMS", 50)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Encoder:          strings.ToLower(getEnv("QR_ENCODER", "yeqown")),
		ProductName:      getEnv("PRODUCT_NAME", "qrafted"),
		PublicURL:        strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		PresetsFile:      getEnv("PRESETS_FILE", ""),
		LogoFetchTimeout: timeout,
		LogoCacheSize:    cacheSize,
		MaxRenderSize:    maxSize,
		MaxBatchItems:    maxBatch,
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func MustLoad() *AppConfig {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Port == "" {
		log.Fatal("PORT required")
	}
	return cfg
}
