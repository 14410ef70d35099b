package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validRatingSources = map[string]bool{
	"tmdb": true, "imdb": true, "metacritic": true, "rottenTomatoes": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Radarr validation
	if c.Radarr.URL == "" {
		errs = append(errs, "radarr.url: required")
	} else if u, err := url.Parse(c.Radarr.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Sprintf("radarr.url: must be an http or https URL, got %q", c.Radarr.URL))
	}
	if c.Radarr.APIKey == "" {
		errs = append(errs, "radarr.api_key: required")
	}
	if c.Radarr.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("radarr.timeout_seconds: must be positive, got %d", c.Radarr.TimeoutSeconds))
	}

	// Edition validation
	if !validRatingSources[c.Edition.RatingSource] {
		errs = append(errs, fmt.Sprintf("edition.rating_source: must be one of tmdb, imdb, metacritic, rottenTomatoes; got %q", c.Edition.RatingSource))
	}

	// Sync validation
	if c.Sync.DelayMs < 0 {
		errs = append(errs, fmt.Sprintf("sync.delay_ms: must not be negative, got %d", c.Sync.DelayMs))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
