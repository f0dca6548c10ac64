package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultServerPort      = "0.0.0.0:7778"
	defaultLanguage        = "fr-FR"
	defaultLanguage2       = "en-US"
	defaultTMDBBaseURL     = "https://api.themoviedb.org/3"
	defaultImageCDNBaseURL = "https://image.tmdb.org/t/p"
	defaultHTTPTimeout     = 10 * time.Second
	defaultPosterTimeout   = 30 * time.Second
)

type Config struct {
	TMDBAPIKey      string
	TMDBBaseURL     string
	ImageCDNBaseURL string
	Language        string
	Language2       string
	WhatsAppURL     string
	WhatsAppUser    string
	WhatsAppPass    string
	WhatsAppPhone   string
	ServerPort      string
	HTTPTimeout     time.Duration
	PosterTimeout   time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		TMDBBaseURL:     getEnvOrDefault("TMDB_BASE_URL", defaultTMDBBaseURL),
		ImageCDNBaseURL: getEnvOrDefault("IMAGE_CDN_BASE_URL", defaultImageCDNBaseURL),
		Language:        getEnvOrDefault("LANGUAGE", defaultLanguage),
		Language2:       getEnvOrDefault("LANGUAGE2", defaultLanguage2),
		ServerPort:      getEnvOrDefault("SERVER_PORT", defaultServerPort),
		HTTPTimeout:     defaultHTTPTimeout,
		PosterTimeout:   defaultPosterTimeout,
	}

	if err := cfg.loadRequired(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadRequired() error {
	required := map[string]*string{
		"TMDB_API_KEY":   &c.TMDBAPIKey,
		"WHATSAPP_URL":   &c.WhatsAppURL,
		"WHATSAPP_USER":  &c.WhatsAppUser,
		"WHATSAPP_PASS":  &c.WhatsAppPass,
		"WHATSAPP_PHONE": &c.WhatsAppPhone,
	}

	for key, ptr := range required {
		value := os.Getenv(key)
		if value == "" {
			return fmt.Errorf("required environment variable missing: %s", key)
		}
		*ptr = value
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ImageCode derives the two-letter image language code from the primary
// language, e.g. "fr-FR" becomes "fr". Poster listings are indexed by the
// short code, not the full locale.
func (c *Config) ImageCode() string {
	if len(c.Language) > 2 {
		return c.Language[:2]
	}
	return c.Language
}
