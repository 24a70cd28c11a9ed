package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/dormshop-backend/internal/api"
	"github.com/baharkarakas/dormshop-backend/internal/api/handlers"
	"github.com/baharkarakas/dormshop-backend/internal/auth"
	"github.com/baharkarakas/dormshop-backend/internal/cache"
	"github.com/baharkarakas/dormshop-backend/internal/config"
	"github.com/baharkarakas/dormshop-backend/internal/db"
	"github.com/baharkarakas/dormshop-backend/internal/geocode"
	"github.com/baharkarakas/dormshop-backend/internal/metrics"
	"github.com/baharkarakas/dormshop-backend/internal/middleware"
	"github.com/baharkarakas/dormshop-backend/internal/repository/postgres"
	"github.com/baharkarakas/dormshop-backend/internal/services"
	"github.com/baharkarakas/dormshop-backend/internal/storage"
	"github.com/baharkarakas/dormshop-backend/internal/worker"
)

const (
	shutdownTimeout = 10 * time.Second
	auditQueueSize  = 1024
	limiterIdle     = 10 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	cfg, log := setup()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Migrate {
		applied, err := db.RunMigrations(ctx, pool)
		if err != nil {
			return err
		}
		log.Info("migrations applied", "count", len(applied))
	}

	m := metrics.New()
	wp := worker.NewPool(cfg.AuditWorkers, auditQueueSize, m.WorkerQueueDepth)
	defer wp.Stop()

	repos := postgres.NewRepositories(pool)
	audit := services.NewAuditor(repos.AuditLogs, wp, m)

	var c *cache.Cache
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		c = cache.New(rdb, cfg.CacheTTL, m)
	}

	// geo stays a nil interface when no key is configured
	var geo services.Geocoder
	if cfg.GeocodingAPIKey != "" {
		gc, err := geocode.NewClient(geocode.Config{
			BaseURL: cfg.GeocodingBaseURL,
			APIKey:  cfg.GeocodingAPIKey,
		}, c)
		if err != nil {
			return err
		}
		geo = gc
	} else {
		log.Warn("GEOCODING_API_KEY not set; geocoding and static maps are disabled")
	}

	uploads, uploadHandler, err := newUploads(cfg)
	if err != nil {
		return err
	}

	hasher := auth.NewHasher(cfg.BcryptCost)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	userSvc := services.NewUserService(repos.Users, repos.Posts, repos.Transactions, hasher, tm, audit, m)
	itemSvc := services.NewItemService(repos.Items, audit)
	postSvc := services.NewPostService(repos.Posts, repos.Items, repos.Locations, audit, m)
	locationSvc := services.NewLocationService(repos.Locations, geo, audit)
	txnSvc := services.NewTransactionService(repos.Transactions, repos.Posts, audit, m)

	limiter := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	go sweepLimiter(ctx, limiter)

	r := api.NewRouter(api.RouterDeps{
		Auth:         middleware.NewAuthMiddleware(tm),
		RateLimiter:  limiter,
		Metrics:      m,
		DB:           pool,
		AuthH:        handlers.NewAuthHandler(userSvc, uploads),
		Users:        handlers.NewUserHandler(userSvc),
		Items:        handlers.NewItemHandler(itemSvc, uploads),
		Posts:        handlers.NewPostHandler(postSvc),
		Locations:    handlers.NewLocationHandler(locationSvc),
		Transactions: handlers.NewTransactionHandler(txnSvc),
		Uploads:      uploadHandler,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newUploads picks the upload backend. Local uploads are also served by the
// API; S3 objects are read from the bucket's public URL.
func newUploads(cfg config.Config) (storage.Store, *handlers.UploadHandler, error) {
	switch cfg.UploadBackend {
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, nil, errors.New("UPLOAD_BACKEND=s3 needs S3_BUCKET")
		}
		return storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicURL:       cfg.S3.PublicURL,
		}), nil, nil
	case "local", "":
		local, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, nil, err
		}
		return local, handlers.NewUploadHandler(local), nil
	default:
		return nil, nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", cfg.UploadBackend)
	}
}

func sweepLimiter(ctx context.Context, rl *middleware.RateLimiter) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rl.Sweep(limiterIdle)
		}
	}
}
