package auth

// Package auth contains simple hand-written test doubles for the credential ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialBackend = (*FakeCredentialBackend)(nil)
	_ ports.TokenSource       = StaticTokenSource("")
)

// ErrBackendDown is the default failure injected by FakeCredentialBackend.
var ErrBackendDown = errors.New("credential backend down")

// FakeCredentialBackend stores one credential in memory and lets tests inject
// failures per operation. Call counts are tracked for assertions.
type FakeCredentialBackend struct {
	LoadFunc   func(ctx context.Context) (domainauth.Credential, error)
	SaveFunc   func(ctx context.Context, cred domainauth.Credential) error
	DeleteFunc func(ctx context.Context) error

	// Fail* make the corresponding operation return ErrBackendDown.
	FailLoad   bool
	FailSave   bool
	FailDelete bool

	mu      sync.Mutex
	cred    domainauth.Credential
	loads   int
	saves   int
	deletes int
}

// NewFakeCredentialBackend returns a backend pre-loaded with cred.
func NewFakeCredentialBackend(cred domainauth.Credential) *FakeCredentialBackend {
	return &FakeCredentialBackend{cred: cred}
}

func (f *FakeCredentialBackend) Load(ctx context.Context) (domainauth.Credential, error) {
	f.mu.Lock()
	f.loads++
	fn, fail, cred := f.LoadFunc, f.FailLoad, f.cred
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	if fail {
		return domainauth.Credential{}, ErrBackendDown
	}
	return cred, nil
}

func (f *FakeCredentialBackend) Save(ctx context.Context, cred domainauth.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, cred)
	}
	if f.FailSave {
		return ErrBackendDown
	}
	f.cred = cred
	return nil
}

func (f *FakeCredentialBackend) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx)
	}
	if f.FailDelete {
		return ErrBackendDown
	}
	f.cred = domainauth.Credential{}
	return nil
}

// Stored returns what the backend currently holds.
func (f *FakeCredentialBackend) Stored() domainauth.Credential {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cred
}

// Calls returns the Load, Save and Delete call counts.
func (f *FakeCredentialBackend) Calls() (loads, saves, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads, f.saves, f.deletes
}

// StaticTokenSource always yields the same bearer token.
type StaticTokenSource string

func (s StaticTokenSource) CurrentToken() string { return string(s) }
