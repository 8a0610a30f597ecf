// Package config reads server settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/clock-reader-mcp/internal/imaging"
	"github.com/ironsheep/clock-reader-mcp/internal/vision"
)

// Environment variables read by Load.
const (
	EnvLogLevel = "CLOCK_MCP_LOG_LEVEL"
	EnvBackend  = "CLOCK_MCP_BACKEND"
	EnvMaxDim   = "CLOCK_MCP_MAX_DIM"
	EnvOCRLang  = "CLOCK_MCP_OCR_LANG"
)

type Config struct {
	// LogLevel is "info" or "debug".
	LogLevel string

	// Backend names the vision implementation: "purego" or "opencv".
	Backend string

	// MaxDimension is the longest side images are analysed at. Zero disables scaling.
	MaxDimension int

	// OCRLanguage is the Tesseract language used for dial numerals.
	OCRLanguage string
}

func Load() *Config {
	return &Config{
		LogLevel:     strings.ToLower(getEnv(EnvLogLevel, "info")),
		Backend:      strings.ToLower(getEnv(EnvBackend, vision.BackendPureGo)),
		MaxDimension: getEnvInt(EnvMaxDim, imaging.DefaultMaxDimension),
		OCRLanguage:  getEnv(EnvOCRLang, "eng"),
	}
}

// Debug reports whether verbose stage logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := getEnv(key, "")
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		log.Printf("Ignoring %s=%q: not a non-negative integer, using %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}
