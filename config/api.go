package config

import "strings"

// DefaultAPIURL is the portal API root used when API_URL is unset.
const DefaultAPIURL = "http://localhost:8080/api"

// APIConfig contains the portal API endpoint configuration.
type APIConfig struct {
	// URL is the API root every request path is joined to.
	URL string `env:"API_URL" envDefault:"http://localhost:8080/api"`

	// UserAgent is sent on every request. Leave empty to use the Go default.
	UserAgent string `env:"API_USER_AGENT" envDefault:"bookportal"`
}

// Sanitize trims the URL and restores the default when it is blank.
func (c *APIConfig) Sanitize() {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if c.URL == "" {
		c.URL = DefaultAPIURL
	}
	c.UserAgent = strings.TrimSpace(c.UserAgent)
}
