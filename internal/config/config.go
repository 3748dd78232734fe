package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Request limits
	MaxBodyBytes   int64
	MaxUploadBytes int64

	// Paywall
	PreviewRatio float64

	// Rendering
	UnsafeHTML      bool
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Localized routing
	DefaultLocale string
	Locales       []string

	// PDF import
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("BLOG_API_KEY"),

		MaxBodyBytes:   envInt64("MAX_BODY_BYTES", 2<<20),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20<<20),

		PreviewRatio: envFloat("PREVIEW_RATIO", 0.3),

		UnsafeHTML:      envBool("UNSAFE_HTML", false),
		CacheTTL:        envDuration("CACHE_TTL", 15*time.Minute),
		CacheMaxEntries: int(envInt64("CACHE_MAX_ENTRIES", 1000)),

		DefaultLocale: envOr("DEFAULT_LOCALE", "en"),
		Locales:       envList("LOCALES", []string{"en", "zh"}),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 2 << 20
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	if cfg.CacheMaxEntries <= 0 {
		cfg.CacheMaxEntries = 1000
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("BLOG_API_KEY is required")
	}
	if !(c.PreviewRatio > 0 && c.PreviewRatio <= 1) {
		return fmt.Errorf("PREVIEW_RATIO must be in (0, 1], got %v", c.PreviewRatio)
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return fmt.Errorf("DEFAULT_LOCALE must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList reads a comma separated list, dropping empty items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
