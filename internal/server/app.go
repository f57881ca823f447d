// Package server wires the backend together: database and migrations, the
// revocation store, services and the HTTP API, plus graceful shutdown on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/server/config"
	"github.com/dmitrijs2005/rentkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rentkeeper/internal/server/revocation"
	"github.com/dmitrijs2005/rentkeeper/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	redis        *redis.Client
	repomanager  repomanager.RepositoryManager
	revoked      revocation.Store
	users        *services.UserService
	vehicles     *services.VehicleService
	reservations *services.ReservationService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open(repomanager.DriverName, dsn)
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: repomanager.NewPostgresRepositoryManager(),
	}

	if cfg.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		app.revoked = revocation.NewRedisStore(app.redis)
	} else {
		app.revoked = revocation.NewMemoryStore()
	}

	app.users = services.NewUserService(db, app.repomanager, app.revoked, cfg, logger)
	app.vehicles = services.NewVehicleService(db, app.repomanager, logger)
	app.reservations = services.NewReservationService(db, app.repomanager, logger)

	return app, nil
}

// prepare checks the backing stores and applies migrations when enabled.
func (app *App) prepare(ctx context.Context) error {
	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if app.config.RunMigrations {
		if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
			return err
		}
		app.logger.Info(ctx, "Migrations applied")
	}
	if app.redis != nil {
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		app.logger.Info(ctx, "Revocation list in redis", "addr", app.config.RedisAddr)
	} else {
		app.logger.Warn(ctx, "Revocation list kept in memory; logouts do not survive a restart")
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) handler(ctx context.Context) *httpapi.Server {
	router := httpapi.NewRouter(ctx, app.users, app.vehicles, app.reservations, httpapi.Options{
		CookieSecure:  app.config.CookieSecure,
		AuthRateLimit: app.config.AuthRateLimit,
		AuthRateBurst: app.config.AuthRateBurst,
	}, app.logger.With("module", "http"))
	return httpapi.NewServer(app.config.ListenAddr, router, app.logger)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.handler(ctx).Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	_ = app.db.Close()
}

// Run serves until a signal arrives or the server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.logger.Info(ctx, "Starting app...")

	if err := app.prepare(ctx); err != nil {
		return err
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
