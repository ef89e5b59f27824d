package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/target/mdbook-portal/config"
	"github.com/target/mdbook-portal/internal/adapters/filestore"
	"github.com/target/mdbook-portal/internal/adapters/portalapi"
	redisadapter "github.com/target/mdbook-portal/internal/adapters/redis"
	"github.com/target/mdbook-portal/internal/ports"
	"github.com/target/mdbook-portal/internal/service"
	"github.com/target/mdbook-portal/internal/session"
)

// PortalOptions contains the inputs needed to assemble a portal client.
type PortalOptions struct {
	Config     config.AppConfig
	Logger     *slog.Logger
	HTTPClient *http.Client // Optional
}

// Portal bundles the wired components of one client process.
type Portal struct {
	Service *service.PortalService
	API     *portalapi.Client
	Session *session.Store

	closers []func() error
}

// NewPortal selects the credential backend, loads the stored session and wires
// the gateway and controller on top of it.
func NewPortal(ctx context.Context, opts PortalOptions) (*Portal, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	backend, closeBackend, err := NewCredentialBackend(ctx, opts.Config, logger)
	if err != nil {
		return nil, err
	}

	store := session.Open(ctx, session.StoreOptions{Backend: backend, Logger: logger})
	api := portalapi.New(portalapi.Options{
		BaseURL:    opts.Config.API.URL,
		Tokens:     store,
		HTTPClient: opts.HTTPClient,
		Logger:     logger,
		UserAgent:  opts.Config.API.UserAgent,
	})
	svc := service.NewPortalService(service.PortalServiceOptions{
		API:     api,
		Session: store,
		Logger:  logger,
	})

	p := &Portal{Service: svc, API: api, Session: store}
	p.closers = append(p.closers, func() error { svc.Close(); return nil })
	if closeBackend != nil {
		p.closers = append(p.closers, closeBackend)
	}
	return p, nil
}

// Close releases the controller subscription and the backend connection.
func (p *Portal) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	p.closers = nil
	return errors.Join(errs...)
}

// NewCredentialBackend builds the backend named by SESSION_BACKEND. The
// returned close func is nil when the backend holds no connection.
func NewCredentialBackend(
	ctx context.Context,
	cfg config.AppConfig,
	logger *slog.Logger,
) (ports.CredentialBackend, func() error, error) {
	kind, err := cfg.Session.BackendKind()
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case config.SessionBackendMemory:
		return session.NewMemoryBackend(), nil, nil

	case config.SessionBackendRedis:
		client, err := ConnectRedis(ctx, RedisOptions{Config: cfg.Redis, Logger: logger})
		if err != nil {
			return nil, nil, fmt.Errorf("connect session redis: %w", err)
		}
		store := redisadapter.NewCredentialStore(client, redisadapter.CredentialStoreOptions{
			Prefix:  cfg.Redis.KeyPrefix,
			Profile: cfg.Session.Profile,
			TTL:     cfg.Session.TTL,
		})
		return store, client.Close, nil

	default:
		path := cfg.Session.File
		if path == "" {
			path, err = filestore.DefaultPath(cfg.Session.Profile)
			if err != nil {
				return nil, nil, fmt.Errorf("resolve session file: %w", err)
			}
		}
		store, err := filestore.NewCredentialStore(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open session file: %w", err)
		}
		logger.DebugContext(ctx, "using session file", "path", store.Path())
		return store, nil, nil
	}
}
