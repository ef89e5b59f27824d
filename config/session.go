package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects where the credential is persisted.
type SessionBackend string

const (
	// SessionBackendFile stores the credential in a 0600 JSON file (default).
	SessionBackendFile SessionBackend = "file"
	// SessionBackendRedis stores the credential in a Redis hash shared by several clients.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory keeps the credential for the life of the process only.
	SessionBackendMemory SessionBackend = "memory"
)

// ParseSessionBackend maps a configuration value to a SessionBackend.
func ParseSessionBackend(s string) (SessionBackend, error) {
	switch b := SessionBackend(strings.ToLower(strings.TrimSpace(s))); b {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMemory:
		return b, nil
	case "":
		return SessionBackendFile, nil
	default:
		return "", fmt.Errorf("unknown session backend %q (want file, redis or memory)", s)
	}
}

// SessionConfig contains credential persistence configuration.
type SessionConfig struct {
	// Backend is one of file, redis or memory.
	Backend string `env:"SESSION_BACKEND" envDefault:"file"`

	// File overrides the credential file path. Empty means
	// <user config dir>/bookportal/<profile>.json.
	File string `env:"SESSION_FILE"`

	// Profile names the stored credential so several identities can coexist.
	Profile string `env:"SESSION_PROFILE" envDefault:"default"`

	// TTL expires a Redis-stored credential. 0 keeps it until logout.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"0s"`
}

// Sanitize normalises the backend name and profile.
func (c *SessionConfig) Sanitize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = string(SessionBackendFile)
	}
	c.File = strings.TrimSpace(c.File)
	if c.Profile = strings.TrimSpace(c.Profile); c.Profile == "" {
		c.Profile = "default"
	}
	if c.TTL < 0 {
		c.TTL = 0
	}
}

// BackendKind returns the parsed backend.
func (c *SessionConfig) BackendKind() (SessionBackend, error) {
	return ParseSessionBackend(c.Backend)
}
