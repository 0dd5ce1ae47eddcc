package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/config"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/launcher"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
	"github.com/MrSnakeDoc/homedeck/internal/media"
	"github.com/MrSnakeDoc/homedeck/internal/redis"
	"github.com/MrSnakeDoc/homedeck/internal/scheduler"
	"github.com/MrSnakeDoc/homedeck/internal/session"
	"github.com/MrSnakeDoc/homedeck/internal/store/document"
	redisstore "github.com/MrSnakeDoc/homedeck/internal/store/redis"
	"github.com/MrSnakeDoc/homedeck/internal/users"
	"github.com/MrSnakeDoc/homedeck/internal/version"
	"github.com/MrSnakeDoc/homedeck/internal/web"
)

type App struct {
	cfg              *config.Config
	logger           logger.Logger
	server           *httpserver.Server
	redisClient      *goredis.Client
	sweeper          *scheduler.SessionSweeper
	accountsReloader *scheduler.AccountsReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	if cfg.UsesDevSecret() {
		loggerClient.Warn("HOMEDECK_SESSION_SECRET is not set, using the development secret; sessions can be forged")
	}

	// Session backend
	var (
		sessionStore session.Store
		redisClient  *goredis.Client
		sweeper      *scheduler.SessionSweeper
	)
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		sessionStore = redisstore.NewSessionStore(client)
		loggerClient.Info("session backend: redis", logger.String("addr", cfg.RedisAddr))
	default:
		mem := session.NewMemoryStore()
		sessionStore = mem
		sweeper = scheduler.NewSessionSweeper(mem, loggerClient, cfg.SessionSweepInterval)
		loggerClient.Info("session backend: memory")
	}

	documents := document.NewStore(cfg.DataFile, loggerClient)
	directory := users.NewDirectory(documents)

	sessions := session.NewManager(sessionStore, session.Options{
		Secret:     cfg.SessionSecret,
		TTL:        cfg.SessionTTL,
		CookieName: cfg.SessionCookie,
		Secure:     cfg.CookieSecure,
	})
	gate := auth.NewGate(directory, sessions, loggerClient.With(logger.String("component", "auth")))

	pages, err := web.NewRenderer()
	if err != nil {
		loggerClient.Errorf("Failed to load page templates: %v", err)
		os.Exit(1)
	}

	// Accounts provisioning (only if an accounts file is configured)
	var accountsReloader *scheduler.AccountsReloader
	var accountsReloadTrigger chan struct{}
	if cfg.AccountsFile != "" {
		loggerClient.Info("accounts file configured, initializing accounts reloader",
			logger.String("file", cfg.AccountsFile))
		accountsReloadTrigger = make(chan struct{}, 1)
		accountsReloader = scheduler.NewAccountsReloader(
			cfg.AccountsFile,
			directory,
			loggerClient,
			cfg.AccountsReloadInterval,
			accountsReloadTrigger,
		)
	} else {
		loggerClient.Info("accounts file not configured, admin accounts must be added to the data file")
	}

	d := deps.Deps{
		Logger:                loggerClient,
		StartTime:             time.Now(),
		Version:               version.Version,
		Commit:                version.Commit,
		BuildDate:             version.BuildDate,
		GoVersion:             version.GoVersion,
		TimeNow:               time.Now,
		AllowedHosts:          cfg.AllowedHosts,
		AllowedCIDRS:          cfg.AllowedCIDRS,
		TrustProxy:            cfg.TrustProxy,
		RequestTimeout:        cfg.RequestTimeout,
		Documents:             documents,
		Gate:                  gate,
		Sessions:              sessionStore,
		Media:                 media.NewScanner(cfg.MediaRoot),
		Launcher:              launcher.NewOS(loggerClient),
		Pages:                 pages,
		AccountsReloadTrigger: accountsReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:              cfg,
		logger:           loggerClient,
		server:           server,
		redisClient:      redisClient,
		sweeper:          sweeper,
		accountsReloader: accountsReloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting homedeck v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Info(version.String())
	defer func() { _ = a.logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.accountsReloader != nil {
		if err := a.accountsReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start accounts reloader: %w", err)
		}
		a.logger.Info("accounts reloader started",
			logger.Duration("interval", a.cfg.AccountsReloadInterval))
	}

	if a.sweeper != nil {
		a.sweeper.Start(ctx)
		a.logger.Info("session sweeper started",
			logger.Duration("interval", a.cfg.SessionSweepInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.accountsReloader != nil {
		a.accountsReloader.Stop()
	}
	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ homedeck stopped cleanly")
	return nil
}
