package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/leave_management/internal/config"
	"github.com/Skotchmaster/leave_management/internal/db"
	"github.com/Skotchmaster/leave_management/internal/httpserver"
	"github.com/Skotchmaster/leave_management/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/leave_management/internal/middleware/logging"
	"github.com/Skotchmaster/leave_management/internal/mykafka"
	"github.com/Skotchmaster/leave_management/internal/notify"
	"github.com/Skotchmaster/leave_management/internal/repo"
	"github.com/Skotchmaster/leave_management/internal/service"
	"github.com/Skotchmaster/leave_management/internal/tokens"
)

// Store is what both persistence backends provide.
type Store interface {
	service.UserRepository
	service.LeaveRepository
	Ping(ctx context.Context) error
}

type App struct {
	Cfg    config.Config
	Logger *slog.Logger
	Store  Store
	Users  *service.UserService
	Leaves *service.LeaveService
	Auth   *auth.Authenticator

	closers []func() error
}

// New opens the configured store and builds the services on top of it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.JWTSecret) == 0 {
		logger.Warn("JWT_SECRET is not set; login and protected routes will fail")
	}

	a := &App{Cfg: cfg, Logger: logger}
	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	issuer := tokens.NewIssuer(cfg.JWTSecret)

	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.MailEnabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.ResetURLBase)
	}

	var events service.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := mykafka.NewProducer(cfg.KafkaBrokers)
		a.closers = append(a.closers, producer.Close)
		events = producer
	}

	a.Users = &service.UserService{Users: a.Store, Tokens: issuer, Mailer: mailer, Events: events}
	a.Leaves = &service.LeaveService{Leaves: a.Store, Events: events}
	a.Auth = auth.NewAuthenticator(issuer, a.Users)
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Cfg.DBDriver {
	case config.DriverMongo:
		client, database, err := db.OpenMongo(ctx, a.Cfg.MongoURI, a.Cfg.MongoDatabase)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })
		r := repo.NewMongoRepo(database)
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("create mongo indexes: %w", err)
		}
		a.Store = r
	default:
		gdb, err := db.OpenGorm(ctx, a.Cfg.DBDriver, a.Cfg.DatabaseURL)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() error { return db.CloseGorm(gdb) })
		r := repo.NewGormRepo(gdb)
		if err := r.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		a.Store = r
	}
	return nil
}

// Echo builds the HTTP server with the standard middleware chain and all routes.
func (a *App) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(a.Logger))
	e.Use(middleware.CORS())

	httpserver.Register(e, &httpserver.Deps{
		UserHandler:  &httpserver.UserHTTP{Svc: a.Users},
		LeaveHandler: &httpserver.LeaveHTTP{Svc: a.Leaves},
		Auth:         a.Auth,
		Ready:        a.Store.Ping,
	})
	return e
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
