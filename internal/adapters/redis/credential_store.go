package redis

// Package redis provides Redis-based adapters for the portal client.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/ports"
)

var _ ports.CredentialBackend = (*CredentialStore)(nil)

// Fixed hash field names for the credential triple.
const (
	fieldToken = "token"
	fieldRole  = "role"
	fieldEmail = "email"
)

// CredentialStoreOptions groups settings for CredentialStore.
type CredentialStoreOptions struct {
	Prefix  string        // key prefix, default "bookportal:credential:"
	Profile string        // key suffix, default "default"
	TTL     time.Duration // 0 keeps the credential until cleared
}

// CredentialStore keeps the credential in a Redis hash so several clients can
// share one identity. All three fields are written in a single MULTI/EXEC.
type CredentialStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewCredentialStore creates a Redis-backed credential store.
func NewCredentialStore(client redis.UniversalClient, opts CredentialStoreOptions) *CredentialStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "bookportal:credential:"
	}
	profile := opts.Profile
	if profile == "" {
		profile = "default"
	}
	return &CredentialStore{
		client: client,
		key:    prefix + profile,
		ttl:    opts.TTL,
	}
}

// Key returns the Redis key holding the credential hash.
func (s *CredentialStore) Key() string { return s.key }

func (s *CredentialStore) Load(ctx context.Context) (domainauth.Credential, error) {
	vals, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Credential{}, nil
		}
		return domainauth.Credential{}, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(vals) == 0 {
		return domainauth.Credential{}, nil
	}
	return domainauth.Credential{
		Token: vals[fieldToken],
		Role:  domainauth.ParseRole(vals[fieldRole]),
		Email: vals[fieldEmail],
	}, nil
}

func (s *CredentialStore) Save(ctx context.Context, cred domainauth.Credential) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// Replace, not merge: a stale field must never survive next to a new token.
		pipe.Del(ctx, s.key)
		pipe.HSet(ctx, s.key,
			fieldToken, cred.Token,
			fieldRole, string(cred.Role),
			fieldEmail, cred.Email,
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
