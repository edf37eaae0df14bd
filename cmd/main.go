package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/config"
	"github.com/oksasatya/go-library-backend/internal/container"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-library-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-library-backend/internal/interface/middleware"
	"github.com/oksasatya/go-library-backend/internal/router"
	"github.com/oksasatya/go-library-backend/internal/seed"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
	"github.com/oksasatya/go-library-backend/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	c := container.New(cfg, logger)

	var memStore *memory.Store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("STORE_DRIVER=memory: data is lost on restart")
		memStore = memory.NewStore()
		c.UseMemory(memStore)
	default:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		c.UsePostgres(pool)
	}

	// Redis: sessions and rate limiting
	if rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unreachable; sessions and rate limits disabled")
			_ = rdb.Close()
		} else {
			c.Redis = rdb
			defer func() { _ = rdb.Close() }()
		}
	}

	// GCS: book covers
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		c.GCS = gcsClient
	}

	// Elasticsearch: catalog search
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch disabled")
		} else if _, err := helpers.EnsureIndex(ctx, es, cfg.ESBooksIndex, helpers.BooksIndexMapping); err != nil {
			logger.WithError(err).Warn("elasticsearch unreachable; catalog search disabled")
		} else {
			c.ES = es
		}
	}

	if memStore != nil && cfg.SeedDemo {
		res, err := seed.Run(ctx, seed.NewMemoryWriter(memStore), time.Now(), logger)
		if err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		books := c.BookService()
		for _, b := range res.Books {
			_ = books.IndexBook(ctx, b)
		}
	}

	// RabbitMQ: loan notifications
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQLoanQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unreachable; loan notifications disabled")
		} else {
			defer pub.Close()
			c.Rabbit = pub
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r, logger)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver, "auth_required": cfg.AuthRequired}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
