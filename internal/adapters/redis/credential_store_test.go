package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/session"
	"github.com/target/mdbook-portal/internal/testutil"
)

func TestCredentialStore_SaveLoadDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	store := NewCredentialStore(client, CredentialStoreOptions{Profile: "test"})

	t.Run("empty key loads zero credential", func(t *testing.T) {
		cred, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, cred.IsZero())
	})

	t.Run("save writes all fields", func(t *testing.T) {
		want := domainauth.Credential{Token: "T", Role: domainauth.RoleAdmin, Email: "a@x.com"}
		require.NoError(t, store.Save(ctx, want))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		fields, err := client.HGetAll(ctx, store.Key()).Result()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"token": "T", "role": "admin", "email": "a@x.com"}, fields)

		assert.Equal(t, time.Duration(-1), client.TTL(ctx, store.Key()).Val(), "no ttl configured")
	})

	t.Run("delete removes the key", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx))
		exists, err := client.Exists(ctx, store.Key()).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})
}

func TestCredentialStore_TTL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	ttl := 5 * time.Minute
	store := NewCredentialStore(client, CredentialStoreOptions{Prefix: "test:cred:", TTL: ttl})
	require.NoError(t, store.Save(ctx, domainauth.Credential{Token: "T", Role: domainauth.RoleReader, Email: "r@x.com"}))

	actual := client.TTL(ctx, "test:cred:default").Val()
	assert.True(t, actual > 0 && actual <= ttl)
}

func TestCredentialStore_SessionRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	backend := NewCredentialStore(client, CredentialStoreOptions{Profile: "roundtrip"})

	first := session.Open(ctx, session.StoreOptions{Backend: backend})
	require.NoError(t, first.Persist(ctx, "T", domainauth.RoleReader, "r@x.com"))

	second := session.Open(ctx, session.StoreOptions{Backend: backend})
	assert.Equal(t, first.Credential(), second.Credential())

	require.NoError(t, second.Clear(ctx))
	assert.True(t, session.Open(ctx, session.StoreOptions{Backend: backend}).Credential().IsZero())
}

func TestNewCredentialStore_Defaults(t *testing.T) {
	store := NewCredentialStore(nil, CredentialStoreOptions{})
	assert.Equal(t, "bookportal:credential:default", store.Key())
}
