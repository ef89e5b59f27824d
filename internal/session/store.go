// Package session owns the persisted portal credential and derives the
// authenticated/role state from it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/ports"
)

var _ ports.Session = (*Store)(nil)

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	Backend ports.CredentialBackend // Required: durable storage
	Logger  *slog.Logger            // Optional
}

// Store is the session store: a dumb persisted triple (token, role, email)
// with an in-memory snapshot that readers observe atomically.
type Store struct {
	backend ports.CredentialBackend
	logger  *slog.Logger

	// writeMu serializes backend writes with snapshot swaps so the snapshot
	// always matches the last completed write.
	writeMu sync.Mutex
	mu      sync.RWMutex
	cred    domainauth.Credential

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(domainauth.Credential)
}

// NewStore constructs a Store. The snapshot starts empty; call Reload to read the backend.
func NewStore(opts StoreOptions) *Store {
	if opts.Backend == nil {
		panic("CredentialBackend is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: opts.Backend,
		logger:  logger.With("component", "session"),
		subs:    make(map[int]func(domainauth.Credential)),
	}
}

// Open constructs a Store and loads the persisted credential.
func Open(ctx context.Context, opts StoreOptions) *Store {
	s := NewStore(opts)
	s.Reload(ctx)
	return s
}

// Persist writes all three fields to the backend and then publishes them to readers.
func (s *Store) Persist(ctx context.Context, token string, role domainauth.Role, email string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cred := domainauth.Credential{Token: token, Role: role, Email: email}
	if err := s.backend.Save(ctx, cred); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	s.swap(cred)
	return nil
}

// Clear removes the persisted credential. The in-memory snapshot is emptied even
// when the backend delete fails, so the process never keeps acting as the old identity.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.backend.Delete(ctx)
	s.swap(domainauth.Credential{})
	if err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Reload re-reads the backend. An unavailable or unreadable backend degrades to
// the empty credential.
func (s *Store) Reload(ctx context.Context) domainauth.Credential {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cred, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "credential storage unavailable, continuing unauthenticated", "error", err)
		cred = domainauth.Credential{}
	}
	if !cred.Authenticated() {
		cred = domainauth.Credential{}
	}
	s.swap(cred)
	return cred
}

// Credential returns the current triple.
func (s *Store) Credential() domainauth.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

// CurrentToken returns the bearer token, or "" when unauthenticated.
func (s *Store) CurrentToken() string { return s.Credential().Token }

// CurrentRole returns the persisted role, or "" when unauthenticated.
func (s *Store) CurrentRole() domainauth.Role { return s.Credential().Role }

// CurrentEmail returns the persisted email, or "" when unauthenticated.
func (s *Store) CurrentEmail() string { return s.Credential().Email }

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool { return s.Credential().Authenticated() }

// IsAdmin reports whether the current credential is an admin session.
func (s *Store) IsAdmin() bool { return s.Credential().IsAdmin() }

// Subscribe registers fn to be called after every change of the credential.
// Callbacks run synchronously and must not write to the Store.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(domainauth.Credential)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) swap(cred domainauth.Credential) {
	s.mu.Lock()
	changed := s.cred != cred
	s.cred = cred
	s.mu.Unlock()

	if !changed {
		return
	}
	s.subMu.Lock()
	fns := make([]func(domainauth.Credential), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(cred)
	}
}
