package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mdbook-portal/config"
)

func TestNormalizeAddrs(t *testing.T) {
	got := normalizeAddrs([]string{" a:7000 ", "", "  ", "b:7001"})
	assert.Equal(t, []string{"a:7000", "b:7001"}, got)
}

func TestClusterFallbackFromURI(t *testing.T) {
	tests := []struct {
		name         string
		uri          string
		wantAddr     string
		wantUser     string
		wantPassword string
		wantTLS      bool
	}{
		{name: "empty", uri: " ", wantPassword: "default"},
		{name: "bare address", uri: "cache:6379", wantAddr: "cache:6379", wantPassword: "default"},
		{name: "url with credentials", uri: "redis://bob:pw@cache:6380/0", wantAddr: "cache:6380", wantUser: "bob", wantPassword: "pw"},
		{name: "tls url", uri: "rediss://cache:6390", wantAddr: "cache:6390", wantPassword: "default", wantTLS: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, user, password, tlsCfg, err := clusterFallbackFromURI(tt.uri, "default")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, addr)
			assert.Equal(t, tt.wantUser, user)
			assert.Equal(t, tt.wantPassword, password)
			assert.Equal(t, tt.wantTLS, tlsCfg != nil)
		})
	}
}

func TestConnectRedis_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RedisConfig
		want string
	}{
		{name: "sentinel without nodes", cfg: config.RedisConfig{UseSentinel: true}, want: "at least one sentinel node"},
		{name: "cluster without addresses", cfg: config.RedisConfig{UseCluster: true}, want: "at least one address"},
		{name: "direct without uri", cfg: config.RedisConfig{}, want: "requires a URI"},
		{name: "bad url", cfg: config.RedisConfig{URI: "redis://cache:notaport"}, want: "parse redis url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := ConnectRedis(context.Background(), RedisOptions{Config: tt.cfg})
			require.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
