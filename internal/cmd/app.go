package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/newsdhq/newsd/internal/auth"
	"github.com/newsdhq/newsd/internal/config"
	"github.com/newsdhq/newsd/internal/database"
	"github.com/newsdhq/newsd/internal/httphelper"
	"github.com/newsdhq/newsd/internal/log"
	"github.com/newsdhq/newsd/internal/metrics"
	"github.com/newsdhq/newsd/internal/news"
)

var (
	BuildVersion = "master" //nolint:gochecknoglobals
	BuildCommit  = ""       //nolint:gochecknoglobals
	BuildDate    = ""       //nolint:gochecknoglobals
	SentryDSN    = ""       //nolint:gochecknoglobals
)

type App struct {
	conf      config.Config
	database  database.Database
	news      news.News
	auth      *auth.Authentication
	metrics   metrics.Metrics
	logCloser func()
}

func NewApp(cfgFile string) (*App, error) {
	conf, errConfig := config.Read(cfgFile)
	if errConfig != nil {
		slog.Error("Failed to read config", log.ErrAttr(errConfig))

		return nil, errConfig
	}

	return &App{conf: conf}, nil
}

func (a *App) Init(ctx context.Context) error {
	if a.conf.API.Key == "" {
		return config.ErrAPIKeyUnset
	}

	// This is normally set by build time flags, but can be overwritten by the env var.
	if SentryDSN == "" {
		if value, found := os.LookupEnv("SENTRY_DSN"); found && value != "" {
			SentryDSN = value
		}
	}

	a.setupSentry()

	a.logCloser = log.MustCreateLogger(ctx, a.conf.Log, SentryDSN != "")

	slog.Info("Starting newsd...",
		slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit),
		slog.String("date", BuildDate))

	dbConn := database.New(a.conf.Database.DSN, a.conf.Database.AutoMigrate, a.conf.Database.LogQueries)
	if errConnect := dbConn.Connect(ctx); errConnect != nil {
		slog.Error("Cannot initialize database", log.ErrAttr(errConnect))

		return errConnect
	}

	a.database = dbConn
	a.metrics = metrics.New()
	a.news = news.NewNews(news.NewRepository(dbConn), a.metrics)
	a.auth = auth.NewAuthentication(a.conf.API.Key)

	return nil
}

func (a *App) setupSentry() {
	if SentryDSN == "" {
		return
	}

	if errSentry := sentry.Init(sentry.ClientOptions{
		Dsn:              SentryDSN,
		Release:          BuildVersion,
		EnableTracing:    false,
		AttachStacktrace: true,
	}); errSentry != nil {
		slog.Warn("Failed to setup sentry", log.ErrAttr(errSentry))
	}
}

// Serve runs the HTTP server until the context is cancelled, then performs a
// graceful shutdown.
func (a *App) Serve(ctx context.Context) error {
	router := httphelper.CreateRouter(httphelper.RouterOpts{
		HTTPLogEnabled:    a.conf.Log.HTTPEnabled,
		LogLevel:          a.conf.Log.Level,
		Mode:              a.conf.HTTP.Mode,
		SentryDSN:         SentryDSN,
		Version:           BuildVersion,
		PProfEnabled:      a.conf.HTTP.PProfEnabled,
		PrometheusEnabled: a.conf.HTTP.PrometheusEnabled,
		CORSEnabled:       a.conf.HTTP.CORSEnabled,
		CORSOrigins:       a.conf.HTTP.CORSOrigins,
	})

	news.NewNewsHandler(router, a.news, a.auth)

	if a.conf.HTTP.PrometheusEnabled {
		metrics.NewHandler(router)
	}

	httpServer := httphelper.NewServer(a.conf.HTTP.Addr(), router)

	errChan := make(chan error, 1)

	go func() {
		if errServe := httpServer.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errChan <- errServe
		}
	}()

	slog.Info("HTTP server listening", slog.String("addr", a.conf.HTTP.Addr()))

	select {
	case errServe := <-errChan:
		return errServe
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		if errShutdown := httpServer.Shutdown(shutdownCtx); errShutdown != nil {
			slog.Error("Error shutting down http service", log.ErrAttr(errShutdown))

			return errShutdown
		}

		return nil
	}
}

func (a *App) Close(_ context.Context) error {
	if a.database != nil {
		if errClose := a.database.Close(); errClose != nil {
			return errClose
		}
	}

	if a.logCloser != nil {
		a.logCloser()
	}

	return nil
}
