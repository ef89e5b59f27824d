// Package ports defines interfaces (hexagonal ports) between the portal controller,
// the session store and the API gateway.
// Implementations live in internal/adapters and internal/session; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/target/mdbook-portal/internal/domain/auth"
)

// CredentialBackend is durable storage for the credential triple.
// Save must replace all three fields in one step; Load returns the zero
// credential (and no error) when nothing is stored.
type CredentialBackend interface {
	Load(ctx context.Context) (domainauth.Credential, error)
	Save(ctx context.Context, cred domainauth.Credential) error
	Delete(ctx context.Context) error
}

// TokenSource yields the bearer token to attach to the next request.
// It is read on every call, never cached by the caller.
type TokenSource interface {
	CurrentToken() string
}

// Session is the controller's view of the session store.
type Session interface {
	TokenSource
	Persist(ctx context.Context, token string, role domainauth.Role, email string) error
	Clear(ctx context.Context) error
	Credential() domainauth.Credential
	// Subscribe registers a change callback and returns its cancel function.
	Subscribe(fn func(domainauth.Credential)) (cancel func())
}
