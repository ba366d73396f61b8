// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	"scribe/pkg/config"
	"scribe/pkg/llm"
)

// Config holds everything the service reads from the environment,
// except the service token, which stays out of the struct and is read
// directly at startup.
type Config struct {
	Port string

	LLM llm.Config

	GuideRootURL      string
	GuideEnabled      bool
	GuideMaxPages     int
	GuideCacheTTL     time.Duration
	GuideFetchTimeout time.Duration
}

// Load reads the configuration from environment variables, applying
// defaults for everything optional.
func Load() *Config {
	return &Config{
		Port: config.GetEnv("PORT", "8080"),
		LLM:  llm.LoadConfig(),

		GuideRootURL:      config.GetEnv("GUIDE_ROOT_URL", ""),
		GuideEnabled:      config.GetEnvBool("GUIDE_CONTEXT_ENABLED", true),
		GuideMaxPages:     config.GetEnvInt("GUIDE_MAX_PAGES", 24),
		GuideCacheTTL:     config.GetEnvDuration("GUIDE_CACHE_TTL", 6*time.Hour),
		GuideFetchTimeout: config.GetEnvDuration("GUIDE_FETCH_TIMEOUT", 12*time.Second),
	}
}

// Validate checks the loaded values. Guide context quietly turns off
// when no root URL is configured; a malformed root URL is an error.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return fmt.Errorf("LLM_PROVIDER must be set")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL must be set")
	}
	if c.GuideMaxPages <= 0 {
		return fmt.Errorf("GUIDE_MAX_PAGES must be positive, got %d", c.GuideMaxPages)
	}
	if c.GuideCacheTTL <= 0 {
		return fmt.Errorf("GUIDE_CACHE_TTL must be positive, got %s", c.GuideCacheTTL)
	}
	if c.GuideFetchTimeout <= 0 {
		return fmt.Errorf("GUIDE_FETCH_TIMEOUT must be positive, got %s", c.GuideFetchTimeout)
	}

	if c.GuideRootURL == "" {
		c.GuideEnabled = false
		return nil
	}
	u, err := url.Parse(c.GuideRootURL)
	if err != nil {
		return fmt.Errorf("GUIDE_ROOT_URL is not a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("GUIDE_ROOT_URL must be an absolute http(s) URL, got %q", c.GuideRootURL)
	}
	return nil
}
