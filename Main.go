package main

import (
	"Marketplace/cache"
	"Marketplace/config"
	"Marketplace/events"
	"Marketplace/handlers"
	"Marketplace/jwt"
	"Marketplace/logger"
	"Marketplace/migrations"
	"Marketplace/models"
	"Marketplace/repository"
	"Marketplace/routers"
	"Marketplace/services"
	"context"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	app := &cli.App{
		Name:  "marketplace",
		Usage: "marketplace order service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/config.yaml",
				EnvVars: []string{"MARKET_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
			},
		},
		Before: func(c *cli.Context) error {
			return config.LoadEnvFile(c.String("env-file"))
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "roll back the last migration"},
				},
				Action: migrate,
			},
			{
				Name:  "token",
				Usage: "print a signed bearer token for local testing",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "user-id", Required: true},
					&cli.StringFlag{Name: "role", Value: models.RoleBuyer},
				},
				Action: token,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return cfg, nil, errors.Wrap(err, "build logger")
	}
	return cfg, log.With(zap.String("service", cfg.ServiceName)), nil
}

func serve(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.JWT.Secret == "" {
		return errors.New("jwt secret is not configured")
	}

	db, err := config.SetupMySQLConnection(cfg.Database)
	if err != nil {
		return errors.Wrap(err, "無法連接到資料庫")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := config.SetupRedisConnection(cfg.Redis)
	if err != nil {
		return errors.Wrap(err, "無法連接到Redis")
	}
	defer rdb.Close()

	var publisher services.EventPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.ServiceName, cfg.Kafka.Buffer, log)
		kafkaPublisher.Start()
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		log.Info("kafka brokers not configured, order events disabled")
	}

	gateway := repository.New(db)
	statsCache := cache.NewStatsCache(rdb, cfg.Redis.StatsTTL)

	gin.SetMode(cfg.Server.Mode)
	router := routers.SetupRouters(routers.Dependencies{
		Orders:    services.NewOrderService(gateway.Orders, statsCache, publisher, log, cfg.Orders.GuardStock),
		Stats:     services.NewStatsService(gateway.Stats, statsCache, log),
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
		HealthChecks: []handlers.HealthCheck{
			{Name: "mysql", Check: sqlDB.PingContext},
			{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.Server.Addr), zap.Bool("guard_stock", cfg.Orders.GuardStock))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	if c.Bool("down") {
		return migrations.Down(cfg.Database.MigrationDSN(), log)
	}
	return migrations.Up(cfg.Database.MigrationDSN(), log)
}

func token(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		return errors.New("jwt secret is not configured")
	}

	tokenString, err := jwt.GenerateToken(cfg.JWT.Secret, c.Uint("user-id"), c.String("role"), time.Now().Add(cfg.JWT.TTL))
	if err != nil {
		return err
	}
	fmt.Println(tokenString)
	return nil
}
