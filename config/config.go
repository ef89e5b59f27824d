package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Portal API endpoint
//   - session.go: Credential persistence
//   - redis.go: Redis connection for the shared session backend
//   - log.go: Logging
type AppConfig struct {
	// Portal API configuration
	API APIConfig

	// Session persistence configuration
	Session SessionConfig

	// Redis configuration, used when SESSION_BACKEND=redis
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Logging configuration
	Log LogConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Session.Sanitize()
	c.Redis.Sanitize()
	c.Log.Sanitize()
}
