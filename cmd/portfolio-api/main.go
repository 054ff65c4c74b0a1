// cmd/portfolio-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"portfolio-backend/internal/common/aws"
	"portfolio-backend/internal/common/config"
	"portfolio-backend/internal/common/database"
	"portfolio-backend/internal/common/logger"
	"portfolio-backend/internal/common/observability"
	"portfolio-backend/internal/inquiries"
	"portfolio-backend/internal/recommend"
	"portfolio-backend/internal/server"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/tracking"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio-api: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run wires every component and serves until ctx is cancelled. Startup
// failures are returned so deferred closes still run.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting portfolio backend...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
		zap.String("envFile", cfg.EnvFile),
	)

	// --- Rule table ---
	rules, err := recommend.LoadRules(cfg.Rules.Path)
	if err != nil {
		return fmt.Errorf("rule table load failed (%s): %w", cfg.Rules.Path, err)
	}
	zapLog.Info("Rule table loaded", zap.String("path", cfg.Rules.Path), zap.Int("services", rules.Len()))

	// --- Init SQL store with retry ---
	var db *database.SQLClient
	err = retryWithBackoff(func() error {
		var err error
		db, err = database.NewSQL(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return err
		}
		return nil
	}, 15, 2*time.Second, zapLog, "Database connection")
	if err != nil {
		return err
	}
	defer db.Close()
	zapLog.Info("Database connected successfully", zap.String("driver", db.Dialect.Name))

	trackStore := tracking.NewStore(db)
	if err := trackStore.Migrate(ctx); err != nil {
		return fmt.Errorf("tracking schema migration failed: %w", err)
	}
	inquiryStore := inquiries.NewStore(db)
	if err := inquiryStore.Migrate(ctx); err != nil {
		return fmt.Errorf("inquiries schema migration failed: %w", err)
	}

	checks := map[string]server.Pinger{"database": db}

	// --- Session store: Redis when configured, in process otherwise ---
	var sessions session.Store
	if cfg.Database.Redis.Enabled() {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rdb.Ping(ctx); err != nil {
				rdb.Close()
				return err
			}
			return nil
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return err
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")

		sessions = session.NewRedisStore(rdb.Client)
		checks["redis"] = rdb
	} else {
		zapLog.Warn("Redis not configured, sessions are kept in memory")
		sessions = session.NewMemoryStore()
	}

	obs := observability.New(observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
	}, log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		obs.Shutdown(shutdownCtx)
	}()

	// --- Owner notifications ---
	var notifier inquiries.Notifier = inquiries.NoopNotifier{}
	if cfg.Notifications.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return fmt.Errorf("aws config load failed: %w", err)
		}
		var publisher inquiries.Publisher
		if cfg.Notifications.SNS.TopicARN != "" {
			publisher = aws.NewSNSClient(awsCfg, cfg.Notifications.SNS.TopicARN)
		}
		notifier = inquiries.NewOwnerNotifier(
			cfg.Notifications.OwnerEmail,
			aws.NewSESClient(awsCfg, cfg.Notifications.SES.FromEmail),
			publisher,
			log,
		)
		zapLog.Info("Owner notifications enabled",
			zap.String("region", cfg.Notifications.AWS.Region),
			zap.Bool("sns", publisher != nil),
		)
	}

	if len(cfg.Auth.Users) == 0 {
		zapLog.Warn("No auth users configured, every login will be rejected")
	}

	deps := server.Dependencies{
		Recommend: recommend.NewHandler(recommend.NewEngine(rules), obs, log),
		Session: session.NewHandler(
			cfg.Auth.Cookie,
			session.NewAuthenticator(cfg.Auth.Users),
			sessions,
			log,
		),
		Tracking: tracking.NewHandler(&tracking.Config{
			CookieName:     cfg.Auth.Cookie.Name,
			DashboardLimit: cfg.Server.DashboardLimit,
		}, trackStore, log),
		Inquiries: inquiries.NewHandler(&inquiries.Config{}, inquiryStore, notifier, obs, log),
		Checks:    checks,
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.NewRouter(cfg, deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.Run(ctx, srv, config.GetDuration(cfg.Server.ShutdownTimeout), log); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("HTTP server stopped with error: %w", err)
	}
	zapLog.Info("Portfolio backend stopped")
	return nil
}
