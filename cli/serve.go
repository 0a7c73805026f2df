package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/campus-link/api-go/config"
	"github.com/campus-link/api-go/middleware"
	"github.com/campus-link/api-go/notify"
	"github.com/campus-link/api-go/routes"
	"github.com/campus-link/api-go/services"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log, db)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, db *gorm.DB) error {
	var publisher services.Publisher
	if cfg.NATS.URL != "" {
		nc, err := notify.Connect(cfg.NATS.URL, log)
		if err != nil {
			log.Warn("notification fan-out disabled", zap.Error(err))
		} else {
			defer nc.Close()
			publisher = nc
		}
	}

	var rateLimit gin.HandlerFunc
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, rate limiting fails open", zap.Error(err))
		}
		rateLimit = middleware.RateLimit(middleware.NewRedisCounter(client), cfg.Redis.LimitPerMinute, log, nil)
	}

	notifications := services.NewNotificationService(db, publisher, log, nil)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	routes.SetupRoutes(r, routes.Deps{
		JWTSecret:     cfg.JWT.Secret,
		DefaultPolicy: cfg.RatingPolicy,
		Users:         services.NewUserService(db, cfg.JWT.Secret, cfg.JWT.TTL, nil),
		Favors:        services.NewFavorService(db, notifications, log, nil),
		Ratings:       services.NewRatingService(db, notifications, log, nil),
		Notifications: notifications,
		Reports:       services.NewReportService(db, nil),
		RateLimit:     rateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("port", cfg.Port), zap.String("rating_policy", cfg.RatingPolicy))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
