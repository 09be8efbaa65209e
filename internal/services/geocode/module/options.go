package module

import (
	"time"

	"fadet/internal/platform/config"
)

// Options holds configuration settings for the geocode module
type Options struct {
	BaseURL       string
	GoogleBaseURL string
	GoogleAPIKey  string
	MinInterval   time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	gf := cfg.Prefix("CORE_GEOCODE_")
	return Options{
		BaseURL:       gf.MayString("BASE_URL", ""),
		GoogleBaseURL: gf.MayString("GOOGLE_BASE_URL", ""),
		GoogleAPIKey:  gf.MayString("GOOGLE_API_KEY", ""),
		MinInterval:   time.Duration(gf.MayInt("MIN_INTERVAL_MS", 200)) * time.Millisecond,
	}
}
