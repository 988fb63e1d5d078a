package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file from the current working directory and sets
// environment variables. If .env does not exist, Load returns an error but
// callers can ignore it and use system env or defaults. Pass one or more paths
// to load from specific files (e.g. ".env"); with no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvBool returns the boolean value of the environment variable named by
// key, or fallback if the variable is unset, empty, or not a valid boolean.
func GetEnvBool(key string, fallback bool) bool {
	if s := os.Getenv(key); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return fallback
}

// ErrMissingBaseStreamAddress is returned when BASE_STREAM_ADDRESS is unset.
var ErrMissingBaseStreamAddress = errors.New("BASE_STREAM_ADDRESS is required")

// DefaultMediaRoot is the catalog and media directory used when MEDIA_ROOT
// is unset.
const DefaultMediaRoot = "/media"

// MediaRoot returns MEDIA_ROOT, or DefaultMediaRoot when it is unset.
func MediaRoot() string {
	return GetEnv("MEDIA_ROOT", DefaultMediaRoot)
}

// DefaultAddonID is the manifest id clients know the addon by.
const DefaultAddonID = "com.lukashassler.msa"

// Settings is the resolved process configuration.
type Settings struct {
	Port string
	// BaseStreamAddress is prepended to stored media locators to build
	// playable URLs, e.g. "http://192.168.178.20:8080/media/".
	BaseStreamAddress string
	MediaRoot         string
	ServeMedia        bool
	WatchCatalog      bool

	AddonID      string
	ContactEmail string
	Logo         string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// FromEnv builds Settings from the environment and validates them.
func FromEnv() (Settings, error) {
	s := Settings{
		Port:              GetEnv("PORT", "8080"),
		BaseStreamAddress: GetEnv("BASE_STREAM_ADDRESS", ""),
		MediaRoot:         MediaRoot(),
		ServeMedia:        GetEnvBool("SERVE_MEDIA", true),
		WatchCatalog:      GetEnvBool("CATALOG_WATCH", true),
		AddonID:           GetEnv("ADDON_ID", DefaultAddonID),
		ContactEmail:      GetEnv("ADDON_CONTACT_EMAIL", ""),
		Logo:              GetEnv("ADDON_LOGO", ""),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		LogFormat:         GetEnv("LOG_FORMAT", "json"),
		LogFile:           GetEnv("LOG_FILE", ""),
	}
	return s, s.Validate()
}

// Validate checks the settings that have no usable default.
func (s Settings) Validate() error {
	if s.BaseStreamAddress == "" {
		return ErrMissingBaseStreamAddress
	}
	u, err := url.Parse(s.BaseStreamAddress)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BASE_STREAM_ADDRESS %q must be an absolute http(s) URL", s.BaseStreamAddress)
	}
	if _, err := strconv.Atoi(s.Port); err != nil {
		return fmt.Errorf("PORT %q is not a number", s.Port)
	}
	return nil
}
