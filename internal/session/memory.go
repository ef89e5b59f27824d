package session

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/ports"
)

var _ ports.CredentialBackend = (*MemoryBackend)(nil)

// ErrStorageUnavailable is returned by a disabled backend.
var ErrStorageUnavailable = errors.New("credential storage unavailable")

// MemoryBackend keeps the credential in process memory. A disabled backend
// simulates storage that refuses every operation.
type MemoryBackend struct {
	mu       sync.Mutex
	cred     domainauth.Credential
	disabled bool
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(_ context.Context) (domainauth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return domainauth.Credential{}, ErrStorageUnavailable
	}
	return m.cred, nil
}

func (m *MemoryBackend) Save(_ context.Context, cred domainauth.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return ErrStorageUnavailable
	}
	m.cred = cred
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return ErrStorageUnavailable
	}
	m.cred = domainauth.Credential{}
	return nil
}

// SetDisabled toggles the unavailable mode.
func (m *MemoryBackend) SetDisabled(disabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled = disabled
}
