// Package app wires configuration, storage, the platform client and the
// state services into one client.
package app

import (
	"context"
	"errors"
	"fmt"

	restctx "github.com/dtroode/healthyrecipe-client/internal/api/rest/context"
	"github.com/dtroode/healthyrecipe-client/internal/api/rest/client"
	"github.com/dtroode/healthyrecipe-client/internal/config"
	"github.com/dtroode/healthyrecipe-client/internal/logger"
	"github.com/dtroode/healthyrecipe-client/internal/metrics"
	"github.com/dtroode/healthyrecipe-client/internal/model"
	"github.com/dtroode/healthyrecipe-client/internal/repository/memory"
	"github.com/dtroode/healthyrecipe-client/internal/repository/postgres"
	"github.com/dtroode/healthyrecipe-client/internal/repository/sqlite"
	"github.com/dtroode/healthyrecipe-client/internal/service"
	storage "github.com/dtroode/healthyrecipe-client/internal/storage/minio"
	"github.com/dtroode/healthyrecipe-client/internal/token"
	"github.com/dtroode/healthyrecipe-client/internal/transport"
)

// API bundles the platform boundaries the services talk to.
type API interface {
	model.AuthAPI
	model.ProfileAPI
	model.RecipeAPI
	model.FavoriteAPI
	model.AdminAPI
	model.RatingAPI
}

// App is the assembled client.
type App struct {
	Metrics     *metrics.Recorder
	Sessions    *service.SessionStore
	Gate        *service.RoleGate
	Catalog     *service.CatalogCache
	Favorites   *service.FavoritesLedger
	Submissions *service.Submissions
	Admin       *service.Admin
	Ratings     *service.Ratings

	logger  *logger.Logger
	closers []func() error
	unsubs  []func()
}

// New builds the client from cfg: it opens the configured state store and
// connects to the platform API.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	rt, err := transport.New(cfg.API.CAFile, cfg.API.InsecureSkipVerify).RoundTripper()
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to build transport: %w", err)
	}

	api, err := client.New(cfg.API.BaseURL, rt, cfg.API.Timeout, restctx.NewManager(), log.With("api"))
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	a, err := Assemble(api, store, cfg.Catalog.DemoMode, log)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	a.closers = append(a.closers, closeStore)
	return a, nil
}

// Assemble builds the services on top of an API and a state store and
// subscribes them to session changes.
func Assemble(api API, store model.StateStore, demoMode bool, log *logger.Logger) (*App, error) {
	recorder := metrics.NewRecorder()

	sessions := service.NewSessionStore(
		api,
		api,
		store,
		token.NewJWT(),
		restctx.NewManager(),
		recorder,
		log.With("session"),
	)
	gate := service.NewRoleGate(sessions)

	catalog, err := service.NewCatalogCache(api, sessions, demoMode, recorder, log.With("catalog"))
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}
	favorites := service.NewFavoritesLedger(api, sessions, catalog, recorder, log.With("favorites"))

	a := &App{
		Metrics:     recorder,
		Sessions:    sessions,
		Gate:        gate,
		Catalog:     catalog,
		Favorites:   favorites,
		Submissions: service.NewSubmissions(api, sessions, gate, log.With("submissions")),
		Admin:       service.NewAdmin(api, sessions, gate, demoMode, log.With("admin")),
		Ratings:     service.NewRatings(api, sessions, catalog, log.With("ratings")),
		logger:      log,
	}

	// Catalog first so favorites resolve against the public source after
	// a logout.
	a.unsubs = append(a.unsubs,
		sessions.Subscribe(catalog.OnSessionEvent),
		sessions.Subscribe(favorites.OnSessionEvent),
	)

	return a, nil
}

// Start restores the stored session, validates it when present and loads
// the catalog and favorites for whoever is signed in afterwards. A failed
// validation leaves the client signed out and is not returned.
func (a *App) Start(ctx context.Context) (model.LoadReport, error) {
	sess, err := a.Sessions.Restore(ctx)
	if err != nil {
		return model.LoadReport{}, err
	}

	if sess.Authenticated() {
		if _, err := a.Sessions.Validate(ctx); err != nil {
			a.logger.Warn("App: stored session rejected", "error", err.Error())
		}
	}

	return a.loadForSession(ctx), nil
}

// SignIn signs in and loads the new user's catalog and favorites.
func (a *App) SignIn(ctx context.Context, username, password string) (model.Session, model.LoadReport, error) {
	sess, err := a.Sessions.SignIn(ctx, username, password)
	if err != nil {
		return model.Session{}, model.LoadReport{}, err
	}
	return sess, a.loadForSession(ctx), nil
}

func (a *App) loadForSession(ctx context.Context) model.LoadReport {
	report := a.Catalog.Load(ctx)

	if a.Sessions.Current().Authenticated() {
		if err := a.Favorites.Load(ctx); err != nil && !errors.Is(err, model.ErrSessionChanged) {
			a.logger.Warn("App: favorites unavailable", "error", err.Error())
		}
	}
	return report
}

// Close unsubscribes the services and releases the state store.
func (a *App) Close() error {
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil

	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// OpenStore opens the state store selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.Storage) (model.StateStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite state: %w", err)
		}
		return repo, repo.Close, nil
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres state: %w", err)
		}
		return postgres.NewStateRepository(conn), conn.Close, nil
	case config.DriverMinio:
		c, err := storage.NewClient(ctx, storage.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
			Prefix:    cfg.Minio.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open minio state: %w", err)
		}
		return c, noop, nil
	case config.DriverMemory:
		return memory.NewStateRepository(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
