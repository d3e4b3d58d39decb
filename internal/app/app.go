package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"charitybridge/database"
	"charitybridge/internal/auth"
	"charitybridge/internal/bus"
	"charitybridge/internal/config"
	"charitybridge/internal/dispatch"
	"charitybridge/internal/email"
	"charitybridge/internal/handlers"
	"charitybridge/internal/logger"
	"charitybridge/internal/metrics"
	"charitybridge/internal/middleware"
	"charitybridge/internal/routes"
	"charitybridge/internal/services"
	"charitybridge/internal/telemetry"
	"charitybridge/internal/validator"
	"charitybridge/internal/workers"
	"charitybridge/pkg/apperrors"
	"charitybridge/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// App holds the wired application. Router can be served directly in tests;
// Start runs the HTTP server together with the background loops.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Router   *gin.Engine
	Services *services.ServiceContainer
	Repos    *services.Repositories
	Worker   *workers.OutboxWorker
	Hub      *ws.WebSocketManager
	Metrics  *metrics.Metrics

	bus    *bus.Bus
	fanout *bus.Fanout
}

// Run is the process entrypoint of cmd/web.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal("Server stopped with error", "error", err)
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		// Трейсинг не критичен, работаем без него
		logger.Warn("Tracing disabled", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	logger.Info("Connecting to database...")
	db, err := database.Connect(ctx, cfg.Database.DSN, database.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Debug:        !cfg.IsProduction(),
	})
	if err != nil {
		return err
	}
	defer database.Close(db)
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	a, err := New(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Start(ctx)
}

// New wires repositories, services, delivery channels, handlers and the
// router on top of an open database.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB) (*App, error) {
	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	a := &App{
		Config:  cfg,
		DB:      db,
		Repos:   services.NewRepositories(),
		Hub:     ws.NewWebSocketManager(),
		Metrics: m,
	}

	if cfg.NATS.URL != "" {
		b, err := bus.New(cfg.NATS.URL)
		if err != nil {
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		if err := b.EnsureStream(cfg.NATS.Stream, []string{cfg.NATS.Subject}, time.Hour); err != nil {
			b.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.NATS.Stream, err)
		}
		a.bus = b
		a.fanout = bus.NewFanout(b, cfg.NATS.Subject, a.Hub)
		logger.Info("NATS fan-out enabled", "subject", cfg.NATS.Subject)
	}

	mailer, err := newEmailProvider(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	var target dispatch.Broadcaster = a.Hub
	if a.fanout != nil {
		target = a.fanout
	}
	channels, err := buildChannels(cfg.Notifier.Channels, a.Repos, mailer, target)
	if err != nil {
		a.Close()
		return nil, err
	}

	dispatcher := dispatch.NewDispatcher(a.Repos.Outbox, a.Repos.User, channels, m, dispatch.Options{
		MaxAttempts: cfg.Notifier.MaxAttempts,
		PublicURL:   cfg.Server.PublicURL,
	})
	a.Worker = workers.NewOutboxWorker(db, dispatcher, a.Repos.Outbox, m, workers.OutboxConfig{
		PollInterval: cfg.Notifier.PollInterval,
		BatchSize:    cfg.Notifier.BatchSize,
		Retention:    time.Duration(cfg.Notifier.RetentionDays) * 24 * time.Hour,
	})
	logger.Info("Outbox dispatcher configured", "channels", dispatcher.Channels())

	// Новое событие в outbox будит воркер сразу после коммита
	a.Services = services.NewServiceContainer(a.Repos, m, a.Worker.Wake)

	if cfg.FirstAdmin.Email != "" {
		if _, err := a.Services.UserService.SeedFirstAdmin(ctx, db, cfg.FirstAdmin.Email, cfg.FirstAdmin.Name); err != nil {
			a.Close()
			return nil, fmt.Errorf("seed first admin: %w", err)
		}
	} else {
		logger.Warn("first_admin.email is not set. Skipping admin seeding.")
	}

	a.Router = a.setupRouter(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	return a, nil
}

func (a *App) setupRouter(metricsHandler http.Handler) *gin.Engine {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(a.Metrics))
	router.Use(middleware.CORSMiddleware(a.Config.Server.AllowedOrigins...))
	router.Use(middleware.DBMiddleware(a.DB))

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		DonationHandler:     handlers.NewDonationHandler(base, a.Services.DonationService),
		ClaimHandler:        handlers.NewClaimHandler(base, a.Services.ClaimService),
		MessageHandler:      handlers.NewMessageHandler(base, a.Services.MessageService),
		NotificationHandler: handlers.NewNotificationHandler(base, a.Services.NotificationService),
		HealthHandler:       handlers.NewHealthHandler(a.DB),
	}
	wsHandler := ws.NewWebSocketHandler(a.Hub, a.Config.Server.AllowedOrigins)

	limiter := middleware.NewRateLimiter(a.Config.RateLimit.RPS, a.Config.RateLimit.Burst, a.Metrics)
	routes.RegisterRoutes(router, appHandlers, wsHandler, metricsHandler,
		middleware.AuthMiddleware(a.Services.UserService, a.DB),
		limiter.Middleware(),
	)
	return router
}

// Start serves HTTP and runs the hub, the outbox worker and the NATS
// listener until ctx is cancelled or one of them fails.
func (a *App) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           telemetry.Handler(a.Router, a.Config.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return a.Hub.Run(gctx) })
	g.Go(func() error { return a.Worker.Run(gctx) })
	if a.fanout != nil {
		g.Go(func() error { return a.fanout.Listen(gctx, a.bus) })
	}

	return g.Wait()
}

// Close releases the NATS connection. The database is owned by the caller.
func (a *App) Close() {
	if a.bus != nil {
		a.bus.Close()
		a.bus = nil
	}
}

func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	templates, err := email.NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}

	if !cfg.Email.Enabled {
		logger.Warn("Email disabled, notifications are written to the log")
		return email.NewLogProvider(templates), nil
	}

	provider := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		Timeout:   10 * time.Second,
	}, templates)
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid smtp config: %w", err)
	}
	return provider, nil
}

func buildChannels(names []string, repos *services.Repositories, mailer email.Provider, target dispatch.Broadcaster) ([]dispatch.Channel, error) {
	channels := make([]dispatch.Channel, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case dispatch.ChannelDatabase:
			channels = append(channels, dispatch.NewDatabaseChannel(repos.Notification))
		case dispatch.ChannelMail:
			channels = append(channels, dispatch.NewMailChannel(mailer))
		case dispatch.ChannelBroadcast:
			channels = append(channels, dispatch.NewBroadcastChannel(target))
		default:
			return nil, fmt.Errorf("unknown notifier channel %q", name)
		}
	}
	if len(channels) == 0 {
		return nil, errors.New("no notifier channels configured")
	}
	return channels, nil
}
