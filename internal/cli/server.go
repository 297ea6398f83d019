package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"realorai-service/internal/app"
	"realorai-service/internal/catalog"
	"realorai-service/internal/config"
	"realorai-service/internal/infra/memory"
	pgstats "realorai-service/internal/infra/postgres"
	redisstats "realorai-service/internal/infra/redis"
	sqlitestats "realorai-service/internal/infra/sqlite"
	"realorai-service/internal/logger"
	transport "realorai-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the stats server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func setupLogger(cfg config.Config) {
	logger.SetDefault(logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr))
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogger(cfg)
	log := logger.Default()

	cat, err := catalog.Load(cfg.Quiz.CatalogPath)
	if err != nil {
		return err
	}
	rounds := cfg.RoundsPerQuiz(cat.Len())
	if rounds != cat.Len() {
		log.WithFields(logrus.Fields{
			"rounds_per_quiz": rounds,
			"catalog_pairs":   cat.Len(),
		}).Warn("rounds_per_quiz differs from catalog size; leaderboard averages will not match full plays")
	}

	repo, closeRepo, err := openStatsRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	service := app.NewStatsService(repo, rounds)
	handler := transport.NewHandler(service)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Routes(),
		ReadTimeout:  config.TTLDuration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.TTLDuration(cfg.Server.WriteTimeout, 15*time.Second),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("port", finalPort).Info("starting stats service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		log.WithError(err).Error("failed to start server")
		return fmt.Errorf("listen on :%s: %w", finalPort, err)
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.TTLDuration(cfg.Server.ShutdownTimeout, 5*time.Second))
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStatsRepository connects the configured counter store. The returned func releases it.
func openStatsRepository(ctx context.Context, cfg config.Config) (app.StatsRepository, func(), error) {
	backend, err := cfg.StatsBackend()
	if err != nil {
		return nil, nil, err
	}
	log := logger.Default().WithField("backend", backend)

	switch backend {
	case config.BackendRedis, config.BackendRedisBlob:
		if cfg.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("%s backend: redis addr not configured", backend)
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		closeFn := func() { _ = client.Close() }
		if backend == config.BackendRedisBlob {
			log.Warn("redis-blob backend does read-modify-write; concurrent submissions can be lost")
			return redisstats.NewBlobStatsStore(client), closeFn, nil
		}
		log.Info("using redis stats store")
		return redisstats.NewStatsStore(client), closeFn, nil

	case config.BackendPostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres stats store")
		return pgstats.NewStatsStore(pool), pool.Close, nil

	case config.BackendSQLite:
		path := cfg.SQLite.Path
		if path == "" {
			path = "stats.db"
		}
		db, err := sqlitestats.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", path).Info("using sqlite stats store")
		return sqlitestats.NewStatsStore(db), func() { _ = db.Close() }, nil
	}

	log.Info("using in-memory stats store; counters reset on restart")
	return memory.NewStatsStore(), func() {}, nil
}
