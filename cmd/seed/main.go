package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-library-backend/config"
	"github.com/oksasatya/go-library-backend/internal/application"
	pginfra "github.com/oksasatya/go-library-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-library-backend/internal/seed"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	res, err := seed.Run(ctx, pginfra.NewSeedWriter(pool), time.Now(), logger)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch: %v", err)
		}
		created, err := helpers.EnsureIndex(ctx, es, cfg.ESBooksIndex, helpers.BooksIndexMapping)
		if err != nil {
			log.Fatalf("failed to prepare index: %v", err)
		}
		if created {
			logger.WithField("index", cfg.ESBooksIndex).Info("index created")
		}
		books := application.NewBookService(pginfra.NewBookRepository(pool), nil, "", es, cfg.ESBooksIndex, logger)
		indexed := 0
		for _, b := range res.Books {
			if err := books.IndexBook(ctx, b); err == nil {
				indexed++
			}
		}
		logger.WithField("indexed", indexed).Info("catalog indexed")
	}

	logger.Infof("demo accounts use password %q", seed.DemoPassword)
}
